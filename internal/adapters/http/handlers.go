package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskmaster/questionbank/internal/domain/entities"
	"github.com/taskmaster/questionbank/internal/infrastructure/logger"
	"github.com/taskmaster/questionbank/internal/ports"
)

const (
	successBody = "Success!"
	failureBody = "Failure!"

	maxEntryBytes = 64 << 10
)

// RecordHandler serves the question bank endpoints
type RecordHandler struct {
	recordService ports.RecordService
	logger        *logger.Logger
}

// NewRecordHandler creates a new record handler
func NewRecordHandler(recordService ports.RecordService, logger *logger.Logger) *RecordHandler {
	return &RecordHandler{
		recordService: recordService,
		logger:        logger.WithComponent("record_handler"),
	}
}

// Register mounts the record routes on g
func (h *RecordHandler) Register(g *echo.Group) {
	g.GET("/viewall", h.ViewAll)
	g.POST("/createQ", h.CreateQuestion)
	g.DELETE("/deleteQ", h.DeleteQuestion)
	g.POST("/editQ", h.EditQuestion)
	g.POST("/filter", h.Filter)
	g.POST("/sort", h.Sort)
}

// ViewAll godoc
// @Summary List every record
// @Tags records
// @Produce json
// @Success 200 {array} entities.Record
// @Router /viewall [get]
func (h *RecordHandler) ViewAll(c echo.Context) error {
	records, err := h.recordService.ListRecords(c.Request().Context())
	if err != nil {
		return h.fail(c, "List records failed", err)
	}
	return c.JSON(http.StatusOK, nonNil(records))
}

// CreateQuestion godoc
// @Summary Append a record
// @Description The body is a raw entry such as "What is 781 + 820?|1601|0540, 6172, 999, -835"
// @Tags records
// @Accept plain
// @Produce plain
// @Success 200 {string} string "Success!"
// @Failure 400 {string} string "Failure!"
// @Router /createQ [post]
func (h *RecordHandler) CreateQuestion(c echo.Context) error {
	entry, err := readBody(c)
	if err != nil {
		return h.fail(c, "Read entry failed", err)
	}

	if _, err := h.recordService.CreateRecord(c.Request().Context(), entry); err != nil {
		return h.fail(c, "Create record failed", err)
	}
	return c.String(http.StatusOK, successBody)
}

// DeleteQuestion godoc
// @Summary Delete every record with a question
// @Description The body is the question text, e.g. "781 + 820?"
// @Tags records
// @Accept plain
// @Produce plain
// @Success 200 {string} string "Success!"
// @Router /deleteQ [delete]
func (h *RecordHandler) DeleteQuestion(c echo.Context) error {
	question, err := readBody(c)
	if err != nil {
		return h.fail(c, "Read question failed", err)
	}

	if _, err := h.recordService.DeleteRecord(c.Request().Context(), question); err != nil {
		return h.fail(c, "Delete record failed", err)
	}
	return c.String(http.StatusOK, successBody)
}

// EditQuestion godoc
// @Summary Replace every record with a question
// @Tags records
// @Accept json
// @Produce plain
// @Param request body ports.EditRecordRequest true "Question and replacement entry"
// @Success 200 {string} string "Success!"
// @Failure 400 {string} string "Failure!"
// @Router /editQ [post]
func (h *RecordHandler) EditQuestion(c echo.Context) error {
	var req ports.EditRecordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.fail(c, "Invalid edit request", err)
	}

	if _, err := h.recordService.EditRecord(c.Request().Context(), req); err != nil {
		return h.fail(c, "Edit record failed", err)
	}
	return c.String(http.StatusOK, successBody)
}

// Filter godoc
// @Summary Find records by field
// @Description operation is FIND, GT or LT; attribute is question, answer or distractors
// @Tags records
// @Accept json
// @Produce json
// @Param request body ports.FilterRecordsRequest true "Filter criteria"
// @Success 200 {array} entities.Record
// @Failure 400 {array} map[string]string
// @Router /filter [post]
func (h *RecordHandler) Filter(c echo.Context) error {
	var req ports.FilterRecordsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.failRecords(c, "Invalid filter request", err)
	}

	records, err := h.recordService.FilterRecords(c.Request().Context(), req)
	if err != nil {
		return h.failRecords(c, "Filter records failed", err)
	}
	return c.JSON(http.StatusOK, nonNil(records))
}

// Sort godoc
// @Summary Reorder and persist the records
// @Description operation is LT (ascending) or GT (descending)
// @Tags records
// @Accept json
// @Produce plain
// @Param request body ports.SortRecordsRequest true "Sort criteria"
// @Success 200 {string} string "Success!"
// @Failure 400 {string} string "Failure!"
// @Router /sort [post]
func (h *RecordHandler) Sort(c echo.Context) error {
	var req ports.SortRecordsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return h.fail(c, "Invalid sort request", err)
	}

	if err := h.recordService.SortRecords(c.Request().Context(), req); err != nil {
		return h.fail(c, "Sort records failed", err)
	}
	return c.String(http.StatusOK, successBody)
}

func (h *RecordHandler) fail(c echo.Context, msg string, err error) error {
	status := StatusFor(err)
	h.logger.Errorw(msg, "error", err, "status", status, "path", c.Path())
	return c.String(status, failureBody)
}

func (h *RecordHandler) failRecords(c echo.Context, msg string, err error) error {
	status := StatusFor(err)
	h.logger.Errorw(msg, "error", err, "status", status, "path", c.Path())
	return c.JSON(status, []map[string]string{{"question": failureBody}})
}

// StatusFor maps a service error onto an HTTP status
func StatusFor(err error) int {
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr.Code
	case errors.Is(err, entities.ErrMalformedEntry),
		errors.Is(err, entities.ErrNotNumeric),
		errors.Is(err, entities.ErrUnsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

func readBody(c echo.Context) (string, error) {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxEntryBytes+1))
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "unreadable body").SetInternal(err)
	}
	if len(body) > maxEntryBytes {
		return "", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "entry too large")
	}
	// clients commonly terminate the body with one newline
	entry := string(body)
	if trimmed, ok := strings.CutSuffix(entry, "\r\n"); ok {
		return trimmed, nil
	}
	return strings.TrimSuffix(entry, "\n"), nil
}

func nonNil(records []entities.Record) []entities.Record {
	if records == nil {
		return []entities.Record{}
	}
	return records
}
