package ports

import "github.com/taskmaster/questionbank/internal/domain/entities"

// RecordRepository defines the interface for record storage operations
type RecordRepository interface {
	Path() string
	Count() int
	All() []entities.Record
	Add(raw string) (entities.Record, error)
	DeleteByQuestion(question string) (int, error)
	EditQuestion(oldQuestion, newRaw string) (int, error)
	Filter(predicate func(entities.Record) bool) []entities.Record
	FilterBy(op entities.Operation, attr entities.Attribute, value string) ([]entities.Record, error)
	SortBy(op entities.Operation, attr entities.Attribute) error
}
