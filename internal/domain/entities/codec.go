package entities

import (
	"math"
	"strconv"
	"strings"
)

const (
	// Header is the first line of every rewritten store file.
	Header = "question|answer|distractors"

	// linePrefix is the fixed two-word prefix every stored line starts with.
	linePrefix = "What is "

	fieldSeparator = "|"
	minTokens      = 5
)

// ParseEntry tokenizes a raw entry on single spaces and parses it. Entries
// holding a quote or line break are rejected: the file reader cannot read
// them back as written.
func ParseEntry(raw string) (Record, error) {
	if strings.ContainsAny(raw, "\"\r\n") {
		return Record{}, &ParseError{Line: raw, Reason: "entry contains a quote or line break"}
	}
	return ParseTokens(strings.Split(raw, " "), raw)
}

// ParseTokens builds a Record from a space-tokenized line. Tokens 0 and 1
// are the discarded prefix, 2 and 3 the first operand and operator, and 4
// packs "<operand>?|<answer>|<first distractor>". Anything after token 4
// belongs to the distractors. line is only used for error reporting.
func ParseTokens(tokens []string, line string) (Record, error) {
	if len(tokens) < minTokens {
		return Record{}, &ParseError{
			Line:   line,
			Reason: "expected at least " + strconv.Itoa(minTokens) + " tokens, got " + strconv.Itoa(len(tokens)),
		}
	}

	packed := strings.Split(tokens[4], fieldSeparator)
	if len(packed) < 2 {
		return Record{}, &ParseError{Line: line, Reason: "token " + strconv.Quote(tokens[4]) + " has no answer separator"}
	}

	return Record{
		Question:    tokens[2] + " " + tokens[3] + " " + packed[0],
		Answer:      packed[1],
		Distractors: packed[len(packed)-1] + " " + strings.Join(tokens[5:], " "),
	}, nil
}

// FormatRecord renders a record as a stored line. It restores the fixed
// prefix and packs every distractor behind a single separator.
func FormatRecord(r Record) string {
	return linePrefix + r.Question + fieldSeparator + r.Answer + fieldSeparator + r.Distractors
}

// ConvertKey turns a field value into its comparable key. Answers compare
// as a single number; every other attribute compares as the operand pair
// of a question. Distractors reuse the question rule, so a comma-separated
// distractor list fails conversion.
func ConvertKey(attr Attribute, value string) (Key, error) {
	switch attr {
	case AttributeAnswer:
		n, err := parseNumber(attr, value)
		if err != nil {
			return Key{}, err
		}
		return Key{First: n}, nil
	case AttributeQuestion, AttributeDistractors:
		return operandKey(attr, value)
	default:
		return Key{}, &UnsupportedOperationError{Kind: "attribute", Value: string(attr)}
	}
}

func operandKey(attr Attribute, value string) (Key, error) {
	operands := strings.Split(strings.ReplaceAll(value, "?", ""), " ")
	if len(operands) < 3 {
		return Key{}, &ConversionError{Attribute: attr, Value: value, Err: ErrNotNumeric}
	}

	first, err := parseNumber(attr, strings.Split(value, " ")[0])
	if err != nil {
		return Key{}, err
	}
	second, err := parseNumber(attr, operands[2])
	if err != nil {
		return Key{}, err
	}
	return Key{First: first, Second: second}, nil
}

func parseNumber(attr Attribute, s string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &ConversionError{Attribute: attr, Value: s, Err: err}
	}
	// NaN would compare equal to itself and Inf is not a quiz value.
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, &ConversionError{Attribute: attr, Value: s, Err: ErrNotNumeric}
	}
	return n, nil
}
