package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/taskmaster/questionbank/internal/adapters/repository"
	"github.com/taskmaster/questionbank/internal/application/services"
	"github.com/taskmaster/questionbank/internal/domain/entities"
	"github.com/taskmaster/questionbank/internal/infrastructure/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const fixture = `question|answer|distractors
What is 1754 - 3936?|-2182|3176, 6529, 6903
What is 6352 + 976?|7328|8263, 7147, 9405
What is 781 + 820?|1601|0540, 6172, 999, -835
`

type structValidator struct {
	validate *validator.Validate
}

func (v *structValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newTestEcho(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0o644))

	store, err := repository.NewRecordStore(path)
	require.NoError(t, err)

	log := logger.NewNop()
	svc := services.NewRecordService(store, nil, log)

	e := echo.New()
	e.Validator = &structValidator{validate: validator.New()}
	NewRecordHandler(svc, log).Register(e.Group("/api"))
	return e, path
}

func do(e *echo.Echo, method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeRecords(t *testing.T, rec *httptest.ResponseRecorder) []entities.Record {
	t.Helper()
	var records []entities.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	return records
}

func TestViewAll(t *testing.T) {
	e, _ := newTestEcho(t)

	rec := do(e, http.MethodGet, "/api/viewall", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	records := decodeRecords(t, rec)
	require.Len(t, records, 3)
	assert.Equal(t, entities.Record{Question: "6352 + 976?", Answer: "7328", Distractors: "8263, 7147, 9405"}, records[1])
}

func TestViewAll_EmptyStoreIsArray(t *testing.T) {
	e, path := newTestEcho(t)
	rec := do(e, http.MethodDelete, "/api/deleteQ", echo.MIMETextPlain, "1754 - 3936?")
	require.Equal(t, http.StatusOK, rec.Code)
	do(e, http.MethodDelete, "/api/deleteQ", echo.MIMETextPlain, "6352 + 976?")
	do(e, http.MethodDelete, "/api/deleteQ", echo.MIMETextPlain, "781 + 820?")

	rec = do(e, http.MethodGet, "/api/viewall", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, entities.Header+"\n", string(data))
}

func TestCreateQuestion(t *testing.T) {
	e, path := newTestEcho(t)

	rec := do(e, http.MethodPost, "/api/createQ", echo.MIMETextPlain, "What is 12 * 12?|144|124, 142, 164")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Success!", rec.Body.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(data), "What is 12 * 12?|144|124, 142, 164\n"))

	rec = do(e, http.MethodPost, "/api/createQ", echo.MIMETextPlain, "garbage")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Failure!", rec.Body.String())
}

func TestCreateQuestion_TrailingNewline(t *testing.T) {
	e, path := newTestEcho(t)

	for _, body := range []string{"What is 1 + 2?|3|4, 5\n", "What is 2 + 2?|4|3, 5\r\n"} {
		rec := do(e, http.MethodPost, "/api/createQ", echo.MIMETextPlain, body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	rec := do(e, http.MethodPost, "/api/createQ", echo.MIMETextPlain, "What is 1 + 2?|3|4, \"5")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	records := decodeRecords(t, do(e, http.MethodGet, "/api/viewall", "", ""))
	require.Len(t, records, 5)
	assert.Equal(t, "4, 5", records[3].Distractors)
	assert.Equal(t, "3, 5", records[4].Distractors)

	reloaded, err := repository.NewRecordStore(path)
	require.NoError(t, err)
	assert.Equal(t, records, reloaded.All())
}

func TestCreateQuestion_TooLarge(t *testing.T) {
	e, _ := newTestEcho(t)

	rec := do(e, http.MethodPost, "/api/createQ", echo.MIMETextPlain, strings.Repeat("x", maxEntryBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "Failure!", rec.Body.String())
}

func TestEditQuestion(t *testing.T) {
	e, _ := newTestEcho(t)

	body := `{"question":"781 + 820?","newQ":"What is 781 + 820?|1601|0540, 6172, 999"}`
	rec := do(e, http.MethodPost, "/api/editQ", echo.MIMEApplicationJSON, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Success!", rec.Body.String())

	records := decodeRecords(t, do(e, http.MethodGet, "/api/viewall", "", ""))
	assert.Equal(t, "0540, 6172, 999", records[2].Distractors)

	rec = do(e, http.MethodPost, "/api/editQ", echo.MIMEApplicationJSON, `{"question":"781 + 820?"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Failure!", rec.Body.String())
}

func TestFilter(t *testing.T) {
	e, _ := newTestEcho(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantAnswer []string
	}{
		{"find answer", `{"operation":"FIND","attribute":"answer","value":"1601"}`, http.StatusOK, []string{"1601"}},
		{"greater answer", `{"operation":"GT","attribute":"answer","value":"0"}`, http.StatusOK, []string{"7328", "1601"}},
		{"less question", `{"operation":"LT","attribute":"question","value":"1000 + 0?"}`, http.StatusOK, []string{"1601"}},
		{"no match", `{"operation":"FIND","attribute":"answer","value":"42"}`, http.StatusOK, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, http.MethodPost, "/api/filter", echo.MIMEApplicationJSON, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code)

			answers := []string{}
			for _, r := range decodeRecords(t, rec) {
				answers = append(answers, r.Answer)
			}
			assert.Equal(t, tt.wantAnswer, answers)
		})
	}
}

func TestFilter_Failure(t *testing.T) {
	e, _ := newTestEcho(t)

	bodies := []string{
		`{"operation":"NE","attribute":"answer","value":"1601"}`,
		`{"operation":"FIND","attribute":"distractors","value":"1, 2, 3"}`,
		`{"operation":"FIND","attribute":"answer","value":"x"}`,
		`{"attribute":"answer","value":"1"}`,
	}

	for _, body := range bodies {
		rec := do(e, http.MethodPost, "/api/filter", echo.MIMEApplicationJSON, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.JSONEq(t, `[{"question":"Failure!"}]`, rec.Body.String(), body)
	}
}

func TestSort(t *testing.T) {
	e, path := newTestEcho(t)

	rec := do(e, http.MethodPost, "/api/sort", echo.MIMEApplicationJSON, `{"operation":"LT","attribute":"answer"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Success!", rec.Body.String())

	records := decodeRecords(t, do(e, http.MethodGet, "/api/viewall", "", ""))
	assert.Equal(t, "-2182", records[0].Answer)
	assert.Equal(t, "7328", records[2].Answer)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	rec = do(e, http.MethodPost, "/api/sort", echo.MIMEApplicationJSON, `{"operation":"LT","attribute":"distractors"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Failure!", rec.Body.String())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&entities.ParseError{Line: "x", Reason: "too few tokens"}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", &entities.ConversionError{Attribute: entities.AttributeAnswer, Value: "x"}), http.StatusBadRequest},
		{&entities.UnsupportedOperationError{Kind: "operation", Value: "NE"}, http.StatusBadRequest},
		{echo.NewHTTPError(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge},
		{&entities.IOError{Op: "write", Path: "q.csv", Err: errors.New("disk full")}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), "%v", tt.err)
	}
}
