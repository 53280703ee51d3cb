package repository

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/taskmaster/questionbank/internal/domain/entities"
)

// RecordStore keeps an ordered in-memory copy of a question file and
// mirrors every mutation back to disk. It is not safe for concurrent use.
type RecordStore struct {
	path    string
	records []entities.Record
}

// NewRecordStore loads every record from path. The first line is a header
// and is skipped; any malformed line aborts the load.
func NewRecordStore(path string) (*RecordStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &entities.IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	records, err := readRecords(f, path)
	if err != nil {
		return nil, err
	}

	return &RecordStore{
		path:    path,
		records: records,
	}, nil
}

func readRecords(r io.Reader, path string) ([]entities.Record, error) {
	reader := csv.NewReader(r)
	reader.Comma = ' '
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var records []entities.Record
	header := true
	for {
		tokens, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &entities.IOError{Op: "read", Path: path, Err: err}
		}
		if header {
			header = false
			continue
		}

		record, err := entities.ParseTokens(tokens, strings.Join(tokens, " "))
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// Path returns the backing file path
func (s *RecordStore) Path() string {
	return s.path
}

// Count returns the number of records held in memory
func (s *RecordStore) Count() int {
	return len(s.records)
}

// All returns a copy of the records in file order
func (s *RecordStore) All() []entities.Record {
	return slices.Clone(s.records)
}

// Add parses raw, appends the raw entry to the file and the parsed record
// to memory.
func (s *RecordStore) Add(raw string) (entities.Record, error) {
	record, err := entities.ParseEntry(raw)
	if err != nil {
		return entities.Record{}, err
	}

	if err := s.appendLines([]string{raw}); err != nil {
		return entities.Record{}, err
	}

	s.records = append(s.records, record)
	return record, nil
}

// DeleteByQuestion removes every record whose question equals question and
// rewrites the file, even when nothing matched. It returns the number of
// records removed.
func (s *RecordStore) DeleteByQuestion(question string) (int, error) {
	kept := make([]entities.Record, 0, len(s.records))
	for _, record := range s.records {
		if !record.HasQuestion(question) {
			kept = append(kept, record)
		}
	}

	if err := s.rewrite(kept); err != nil {
		return 0, err
	}

	removed := len(s.records) - len(kept)
	s.records = kept
	return removed, nil
}

// EditQuestion replaces the fields of every record whose question equals
// oldQuestion with the record parsed from newRaw, keeping positions. The
// file is rewritten even when nothing matched.
func (s *RecordStore) EditQuestion(oldQuestion, newRaw string) (int, error) {
	replacement, err := entities.ParseEntry(newRaw)
	if err != nil {
		return 0, err
	}

	edited := slices.Clone(s.records)
	matched := 0
	for i := range edited {
		if edited[i].HasQuestion(oldQuestion) {
			edited[i] = replacement
			matched++
		}
	}

	if err := s.rewrite(edited); err != nil {
		return 0, err
	}

	s.records = edited
	return matched, nil
}

// Filter returns the records for which predicate is true
func (s *RecordStore) Filter(predicate func(entities.Record) bool) []entities.Record {
	var matched []entities.Record
	for _, record := range s.records {
		if predicate(record) {
			matched = append(matched, record)
		}
	}
	return matched
}

// FilterBy returns the records whose attribute compares to value as op
// requires.
func (s *RecordStore) FilterBy(op entities.Operation, attr entities.Attribute, value string) ([]entities.Record, error) {
	if _, err := entities.ParseOperation(string(op)); err != nil {
		return nil, err
	}
	target, err := entities.ConvertKey(attr, value)
	if err != nil {
		return nil, err
	}

	var predErr error
	matched := s.Filter(func(record entities.Record) bool {
		if predErr != nil {
			return false
		}
		key, err := record.KeyOf(attr)
		if err != nil {
			predErr = err
			return false
		}
		ok, err := op.Matches(key, target)
		if err != nil {
			predErr = err
			return false
		}
		return ok
	})
	if predErr != nil {
		return nil, predErr
	}
	return matched, nil
}

// SortBy orders the records by attribute, ascending for LT and descending
// for GT, keeping equal keys in their current order, then rewrites the file.
func (s *RecordStore) SortBy(op entities.Operation, attr entities.Attribute) error {
	var descending bool
	switch op {
	case entities.OperationLess:
	case entities.OperationGreater:
		descending = true
	default:
		return &entities.UnsupportedOperationError{Kind: "sort operation", Value: string(op)}
	}

	type keyed struct {
		key    entities.Key
		record entities.Record
	}
	rows := make([]keyed, len(s.records))
	for i, record := range s.records {
		key, err := record.KeyOf(attr)
		if err != nil {
			return err
		}
		rows[i] = keyed{key: key, record: record}
	}

	slices.SortStableFunc(rows, func(a, b keyed) int {
		if descending {
			return b.key.Compare(a.key)
		}
		return a.key.Compare(b.key)
	})

	sorted := make([]entities.Record, len(rows))
	for i, row := range rows {
		sorted[i] = row.record
	}

	if err := s.rewrite(sorted); err != nil {
		return err
	}

	s.records = sorted
	return nil
}

// rewrite replaces the backing file with a header followed by records. The
// new content is written to a sibling temp file and renamed into place.
func (s *RecordStore) rewrite(records []entities.Record) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &entities.IOError{Op: "create", Path: s.path, Err: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	w := bufio.NewWriter(tmp)
	err = writeRow(w, []string{entities.Header})
	for _, record := range records {
		if err != nil {
			break
		}
		err = writeRow(w, strings.Split(record.Line(), ","))
	}
	if err == nil {
		err = w.Flush()
	}
	if err == nil {
		err = tmp.Sync()
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Chmod(tmpPath, mode)
	}
	if err != nil {
		return &entities.IOError{Op: "write", Path: s.path, Err: err}
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return &entities.IOError{Op: "rename", Path: s.path, Err: err}
	}
	return nil
}

func (s *RecordStore) appendLines(entries []string) (err error) {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &entities.IOError{Op: "open", Path: s.path, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = &entities.IOError{Op: "close", Path: s.path, Err: closeErr}
		}
	}()

	w := bufio.NewWriter(f)
	for _, entry := range entries {
		if err := writeRow(w, strings.Split(entry, ",")); err != nil {
			return &entities.IOError{Op: "append", Path: s.path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &entities.IOError{Op: "append", Path: s.path, Err: err}
	}
	return nil
}

// writeRow writes fields comma-separated on one line. Fields keep their
// leading spaces; only fields holding a quote or line break are quoted.
func writeRow(w *bufio.Writer, fields []string) error {
	for i, field := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if strings.ContainsAny(field, "\"\r\n") {
			field = `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
		}
		if _, err := w.WriteString(field); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

// IsNotExist reports whether err was caused by a missing backing file
func IsNotExist(err error) bool {
	var ioErr *entities.IOError
	return errors.As(err, &ioErr) && errors.Is(ioErr.Err, os.ErrNotExist)
}
