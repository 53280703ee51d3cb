package entities

import "cmp"

// Operation selects how a record field is compared against a value.
type Operation string

const (
	OperationFind    Operation = "FIND"
	OperationGreater Operation = "GT"
	OperationLess    Operation = "LT"
)

// Attribute names one of the three record fields.
type Attribute string

const (
	AttributeQuestion    Attribute = "question"
	AttributeAnswer      Attribute = "answer"
	AttributeDistractors Attribute = "distractors"
)

// Record represents one question/answer/distractors triple
type Record struct {
	Question    string `json:"question" yaml:"question"`
	Answer      string `json:"answer" yaml:"answer"`
	Distractors string `json:"distractors" yaml:"distractors"`
}

// Key is the comparable form of a record field. Answers only populate
// First; questions populate both operands.
type Key struct {
	First  float64
	Second float64
}

// Compare orders keys lexicographically: first operand, then second.
func (k Key) Compare(other Key) int {
	if c := cmp.Compare(k.First, other.First); c != 0 {
		return c
	}
	return cmp.Compare(k.Second, other.Second)
}

// ParseOperation maps a request string onto an Operation.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OperationFind, OperationGreater, OperationLess:
		return op, nil
	default:
		return "", &UnsupportedOperationError{Kind: "operation", Value: s}
	}
}

// ParseSortOperation is ParseOperation restricted to the two sort directions.
func ParseSortOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OperationGreater, OperationLess:
		return op, nil
	default:
		return "", &UnsupportedOperationError{Kind: "sort operation", Value: s}
	}
}

// ParseAttribute maps a request string onto an Attribute.
func ParseAttribute(s string) (Attribute, error) {
	switch attr := Attribute(s); attr {
	case AttributeQuestion, AttributeAnswer, AttributeDistractors:
		return attr, nil
	default:
		return "", &UnsupportedOperationError{Kind: "attribute", Value: s}
	}
}

// Field returns the raw text of the named attribute.
func (r Record) Field(attr Attribute) (string, error) {
	switch attr {
	case AttributeQuestion:
		return r.Question, nil
	case AttributeAnswer:
		return r.Answer, nil
	case AttributeDistractors:
		return r.Distractors, nil
	default:
		return "", &UnsupportedOperationError{Kind: "attribute", Value: string(attr)}
	}
}

// KeyOf returns the comparable key of the named attribute.
func (r Record) KeyOf(attr Attribute) (Key, error) {
	v, err := r.Field(attr)
	if err != nil {
		return Key{}, err
	}
	return ConvertKey(attr, v)
}

// Matches reports whether key satisfies op relative to target.
func (op Operation) Matches(key, target Key) (bool, error) {
	c := key.Compare(target)
	switch op {
	case OperationFind:
		return c == 0, nil
	case OperationGreater:
		return c > 0, nil
	case OperationLess:
		return c < 0, nil
	default:
		return false, &UnsupportedOperationError{Kind: "operation", Value: string(op)}
	}
}

// Line renders the record in the stored line form.
func (r Record) Line() string {
	return FormatRecord(r)
}

// HasQuestion reports whether the record is identified by question.
func (r Record) HasQuestion(question string) bool {
	return r.Question == question
}
