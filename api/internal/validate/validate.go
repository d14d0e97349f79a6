// Package validate checks decoded request values against the configured limits.
// Values are expected to come from a json.Decoder with UseNumber enabled.
package validate

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"bfhl/api/internal/config"
)

const (
	MsgInvalidJSON     = "Invalid JSON"
	MsgExactlyOneKey   = "request must contain exactly one key"
	MsgFibonacciBounds = "fibonacci must be between 0 and MAX_FIB_N"
	MsgArrayLength     = "array length out of bounds"
	MsgArrayValue      = "array value out of bounds"
	MsgQuestionType    = "AI question must be a string"
	MsgQuestionEmpty   = "AI question must be non-empty"
	MsgQuestionLong    = "AI question too long"
	MsgBodyTooLarge    = "request body too large"
)

// Error is a client-side request problem; its message is returned verbatim.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func fail(msg string) error { return &Error{Msg: msg} }

// Integer reports whether v is a JSON number without a fractional part that fits in int64.
func Integer(v any) (int64, bool) {
	switch n := v.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		return floatInt(f)
	case float64:
		return floatInt(n)
	case int:
		return int64(n), true
	case int64:
		return n, true
	default:
		return 0, false
	}
}

func floatInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// IsInteger is true iff v is an integer with min <= v <= max.
func IsInteger(v any, min, max int64) bool {
	n, ok := Integer(v)
	return ok && n >= min && n <= max
}

// Array validates a non-empty bounded integer array. Checks run in order:
// emptiness, length, then the first offending element.
func Array(v any, label string, lim config.Limits) ([]int64, error) {
	arr, ok := v.([]any)
	if !ok || len(arr) == 0 {
		return nil, fail(label + " array must be non-empty")
	}
	if len(arr) > lim.MaxArrayLen {
		return nil, fail(MsgArrayLength)
	}
	out := make([]int64, len(arr))
	for i, el := range arr {
		if !IsInteger(el, -lim.MaxAbsValue, lim.MaxAbsValue) {
			return nil, fail(MsgArrayValue)
		}
		out[i], _ = Integer(el)
	}
	return out, nil
}

// Fibonacci validates the series length n, 0 <= n <= MaxFibN.
func Fibonacci(v any, lim config.Limits) (int, error) {
	if !IsInteger(v, 0, int64(lim.MaxFibN)) {
		return 0, fail(MsgFibonacciBounds)
	}
	n, _ := Integer(v)
	return int(n), nil
}

// Question returns the trimmed AI question. Length is counted in runes.
func Question(v any, lim config.Limits) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fail(MsgQuestionType)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fail(MsgQuestionEmpty)
	}
	if utf8.RuneCountInString(s) > lim.MaxAIQuestionLen {
		return "", fail(MsgQuestionLong)
	}
	return s, nil
}
