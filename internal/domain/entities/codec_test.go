package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokens_PacksAnswerAndDistractors(t *testing.T) {
	tokens := []string{"What", "is", "1754", "-", "3936?|-2182|3176,", "6529,", "6903"}

	record, err := ParseTokens(tokens, "")
	require.NoError(t, err)

	assert.Equal(t, Record{
		Question:    "1754 - 3936?",
		Answer:      "-2182",
		Distractors: "3176, 6529, 6903",
	}, record)
}

func TestParseEntry(t *testing.T) {
	t.Run("multiple distractors", func(t *testing.T) {
		record, err := ParseEntry("What is 781 + 820?|1601|0540, 6172, 999, -835")
		require.NoError(t, err)
		assert.Equal(t, "781 + 820?", record.Question)
		assert.Equal(t, "1601", record.Answer)
		assert.Equal(t, "0540, 6172, 999, -835", record.Distractors)
	})

	t.Run("single distractor keeps trailing space", func(t *testing.T) {
		record, err := ParseEntry("What is 1 + 2?|3|4")
		require.NoError(t, err)
		assert.Equal(t, "4 ", record.Distractors)
	})

	t.Run("single separator reuses answer as last segment", func(t *testing.T) {
		record, err := ParseEntry("What is 1 + 2?|3")
		require.NoError(t, err)
		assert.Equal(t, "3", record.Answer)
		assert.Equal(t, "3 ", record.Distractors)
	})

	t.Run("prefix words are not checked", func(t *testing.T) {
		record, err := ParseEntry("Compute now 5 * 6?|30|31")
		require.NoError(t, err)
		assert.Equal(t, "5 * 6?", record.Question)
	})
}

func TestParseEntry_Malformed(t *testing.T) {
	cases := map[string]string{
		"too few tokens":   "What is 1754?|3",
		"no separator":     "What is 1754 - 3936? -2182 3176",
		"empty entry":      "",
		"double space gap": "What is  1754 - 3936?|-2182|3",
		"trailing newline": "What is 1 + 2?|3|4, 5\n",
		"carriage return":  "What is 1 + 2?|3|4, 5\r\n",
		"embedded quote":   "What is 1 + 2?|3|4, \"5",
	}

	for name, entry := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseEntry(entry)
			require.Error(t, err)

			var parseErr *ParseError
			require.True(t, errors.As(err, &parseErr))
			assert.Equal(t, entry, parseErr.Line)
			assert.ErrorIs(t, err, ErrMalformedEntry)
		})
	}
}

func TestFormatRecord_RoundTrip(t *testing.T) {
	lines := []string{
		"What is 1754 - 3936?|-2182|3176, 6529, 6903",
		"What is 781 + 820?|1601|0540, 6172, 999, -835",
		"What is 1 + 2?|3|4",
		"What is 1 + 2?|3",
		"What is 9 / 3?|3|1|2|4",
	}

	for _, line := range lines {
		t.Run(line, func(t *testing.T) {
			first, err := ParseEntry(line)
			require.NoError(t, err)

			second, err := ParseEntry(FormatRecord(first))
			require.NoError(t, err)

			assert.Equal(t, first, second)
		})
	}
}

func TestFormatRecord(t *testing.T) {
	record := Record{Question: "1754 - 3936?", Answer: "-2182", Distractors: "3176, 6529, 6903"}
	assert.Equal(t, "What is 1754 - 3936?|-2182|3176, 6529, 6903", FormatRecord(record))
	assert.Equal(t, FormatRecord(record), record.Line())
}

func TestConvertKey(t *testing.T) {
	t.Run("answer is numeric", func(t *testing.T) {
		a, err := ConvertKey(AttributeAnswer, "1601")
		require.NoError(t, err)
		b, err := ConvertKey(AttributeAnswer, "1601.0")
		require.NoError(t, err)
		assert.Equal(t, 0, a.Compare(b))
	})

	t.Run("question compares operands", func(t *testing.T) {
		key, err := ConvertKey(AttributeQuestion, "6352 + 976?")
		require.NoError(t, err)
		assert.Equal(t, Key{First: 6352, Second: 976}, key)
	})

	t.Run("question orders by first then second operand", func(t *testing.T) {
		low, err := ConvertKey(AttributeQuestion, "781 + 820?")
		require.NoError(t, err)
		mid, err := ConvertKey(AttributeQuestion, "781 - 900?")
		require.NoError(t, err)
		high, err := ConvertKey(AttributeQuestion, "1754 - 3936?")
		require.NoError(t, err)

		assert.Equal(t, -1, low.Compare(mid))
		assert.Equal(t, -1, mid.Compare(high))
	})

	t.Run("distractors use the question rule", func(t *testing.T) {
		_, err := ConvertKey(AttributeDistractors, "368, 9268, 3949, 1417")
		var convErr *ConversionError
		require.True(t, errors.As(err, &convErr))
		assert.Equal(t, AttributeDistractors, convErr.Attribute)
		assert.ErrorIs(t, err, ErrNotNumeric)

		key, err := ConvertKey(AttributeDistractors, "1 2 3")
		require.NoError(t, err)
		assert.Equal(t, Key{First: 1, Second: 3}, key)
	})

	t.Run("non numeric answer", func(t *testing.T) {
		_, err := ConvertKey(AttributeAnswer, "forty")
		assert.ErrorIs(t, err, ErrNotNumeric)
	})

	t.Run("short question", func(t *testing.T) {
		_, err := ConvertKey(AttributeQuestion, "12?")
		assert.ErrorIs(t, err, ErrNotNumeric)
	})

	t.Run("non finite values", func(t *testing.T) {
		for _, v := range []string{"NaN", "nan", "Inf", "-Inf", "+Infinity"} {
			_, err := ConvertKey(AttributeAnswer, v)
			assert.ErrorIs(t, err, ErrNotNumeric, v)
		}
		_, err := ConvertKey(AttributeQuestion, "NaN + 1?")
		assert.ErrorIs(t, err, ErrNotNumeric)
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := ConvertKey(Attribute("topic"), "x")
		assert.ErrorIs(t, err, ErrUnsupported)
	})
}
