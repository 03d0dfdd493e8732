package services

import (
	"encoding/json"
	"strconv"
	"strings"
)

// AnswerKind partitions the heterogeneous answer payloads into the shapes
// the calculators care about.
type AnswerKind int

const (
	AnswerInvalid AnswerKind = iota
	AnswerNumeric
	AnswerText
	AnswerStructured
)

// AnswerValue is an answer payload resolved once at ingestion. Calculators
// consume this instead of re-decoding raw JSON ad hoc.
type AnswerValue struct {
	Kind   AnswerKind
	Number float64
	Text   string
	List   []string
}

// ParseAnswer decodes a raw answer payload. Numbers and strings map to
// scalar kinds; arrays keep their scalar elements as strings; objects stay
// opaque structured values.
func ParseAnswer(raw json.RawMessage) AnswerValue {
	if len(raw) == 0 {
		return AnswerValue{Kind: AnswerInvalid}
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return AnswerValue{Kind: AnswerNumeric, Number: num}
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return AnswerValue{Kind: AnswerText, Text: s}
	}
	var list []any
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, v := range list {
			switch t := v.(type) {
			case string:
				out = append(out, t)
			case float64:
				out = append(out, strconv.FormatFloat(t, 'f', -1, 64))
			}
		}
		return AnswerValue{Kind: AnswerStructured, List: out}
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		return AnswerValue{Kind: AnswerStructured}
	}
	return AnswerValue{Kind: AnswerInvalid}
}

// NumericValue reports the answer as a number when it is one, or when it is
// a string that parses as one. Scale answers arrive both ways upstream.
func (v AnswerValue) NumericValue() (float64, bool) {
	switch v.Kind {
	case AnswerNumeric:
		return v.Number, true
	case AnswerText:
		if n, err := strconv.ParseFloat(strings.TrimSpace(v.Text), 64); err == nil {
			return n, true
		}
	}
	return 0, false
}
