package ports

import (
	"context"

	"github.com/taskmaster/questionbank/internal/domain/entities"
)

// RecordService interface for question bank operations
type RecordService interface {
	ListRecords(ctx context.Context) ([]entities.Record, error)
	CreateRecord(ctx context.Context, entry string) (*entities.Record, error)
	DeleteRecord(ctx context.Context, question string) (int, error)
	EditRecord(ctx context.Context, req EditRecordRequest) (int, error)
	FilterRecords(ctx context.Context, req FilterRecordsRequest) ([]entities.Record, error)
	SortRecords(ctx context.Context, req SortRecordsRequest) error
}

// Record related types
type EditRecordRequest struct {
	Question string `json:"question" validate:"required"`
	NewQ     string `json:"newQ" validate:"required"`
}

type FilterRecordsRequest struct {
	Operation string `json:"operation" validate:"required"`
	Attribute string `json:"attribute" validate:"required"`
	Value     string `json:"value"`
}

type SortRecordsRequest struct {
	Operation string `json:"operation" validate:"required"`
	Attribute string `json:"attribute" validate:"required"`
}
