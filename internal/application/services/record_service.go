package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/taskmaster/questionbank/internal/domain/entities"
	"github.com/taskmaster/questionbank/internal/infrastructure/logger"
	"github.com/taskmaster/questionbank/internal/ports"
)

// OperationObserver receives the outcome of every store operation
type OperationObserver interface {
	ObserveOperation(operation string, duration time.Duration, err error)
}

type noopObserver struct{}

func (noopObserver) ObserveOperation(string, time.Duration, error) {}

// RecordService handles question bank operations. The underlying store is
// single-threaded, so every call holds mu; this does not protect the file
// against other processes.
type RecordService struct {
	mu       sync.Mutex
	repo     ports.RecordRepository
	observer OperationObserver
	logger   *logger.Logger
}

// NewRecordService creates a new record service. observer may be nil.
func NewRecordService(repo ports.RecordRepository, observer OperationObserver, logger *logger.Logger) *RecordService {
	if observer == nil {
		observer = noopObserver{}
	}
	return &RecordService{
		repo:     repo,
		observer: observer,
		logger:   logger.WithComponent("record_service"),
	}
}

var _ ports.RecordService = (*RecordService)(nil)

// ListRecords returns every record in stored order
func (s *RecordService) ListRecords(ctx context.Context) ([]entities.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.All(), nil
}

// CreateRecord parses entry and appends it to the store
func (s *RecordService) CreateRecord(ctx context.Context, entry string) (*entities.Record, error) {
	var record entities.Record
	err := s.run(ctx, "add", func() (err error) {
		record, err = s.repo.Add(entry)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create record: %w", err)
	}

	s.logger.Infow("Record created", "question", record.Question)
	return &record, nil
}

// DeleteRecord removes every record with the given question
func (s *RecordService) DeleteRecord(ctx context.Context, question string) (int, error) {
	var removed int
	err := s.run(ctx, "delete", func() (err error) {
		removed, err = s.repo.DeleteByQuestion(question)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete record: %w", err)
	}

	s.logger.Infow("Records deleted", "question", question, "removed", removed)
	return removed, nil
}

// EditRecord replaces every record matching req.Question with req.NewQ
func (s *RecordService) EditRecord(ctx context.Context, req ports.EditRecordRequest) (int, error) {
	var edited int
	err := s.run(ctx, "edit", func() (err error) {
		edited, err = s.repo.EditQuestion(req.Question, req.NewQ)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to edit record: %w", err)
	}

	s.logger.Infow("Records edited", "question", req.Question, "edited", edited)
	return edited, nil
}

// FilterRecords returns the records matching req
func (s *RecordService) FilterRecords(ctx context.Context, req ports.FilterRecordsRequest) ([]entities.Record, error) {
	op, err := entities.ParseOperation(req.Operation)
	if err != nil {
		return nil, fmt.Errorf("failed to filter records: %w", err)
	}
	attr, err := entities.ParseAttribute(req.Attribute)
	if err != nil {
		return nil, fmt.Errorf("failed to filter records: %w", err)
	}

	var matched []entities.Record
	err = s.run(ctx, "filter", func() (err error) {
		matched, err = s.repo.FilterBy(op, attr, req.Value)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to filter records: %w", err)
	}

	return matched, nil
}

// SortRecords reorders the store by req and persists the new order
func (s *RecordService) SortRecords(ctx context.Context, req ports.SortRecordsRequest) error {
	op, err := entities.ParseSortOperation(req.Operation)
	if err != nil {
		return fmt.Errorf("failed to sort records: %w", err)
	}
	attr, err := entities.ParseAttribute(req.Attribute)
	if err != nil {
		return fmt.Errorf("failed to sort records: %w", err)
	}

	err = s.run(ctx, "sort", func() error {
		return s.repo.SortBy(op, attr)
	})
	if err != nil {
		return fmt.Errorf("failed to sort records: %w", err)
	}

	s.logger.Infow("Records sorted", "operation", op, "attribute", attr)
	return nil
}

// Count returns the number of stored records
func (s *RecordService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.Count()
}

func (s *RecordService) run(ctx context.Context, operation string, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	err := fn()
	duration := time.Since(start)

	s.observer.ObserveOperation(operation, duration, err)
	s.logger.LogRecordOperation(operation, s.repo.Count(), duration, err)
	return err
}
