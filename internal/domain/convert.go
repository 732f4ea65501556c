package domain

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseInstant accepts the date shapes a document may carry: time.Time,
// BSON datetimes and ISO-8601 strings (date-only strings are UTC midnight).
func ParseInstant(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case primitive.DateTime:
		return t.Time().UTC(), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range instantLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

// AsInt reports integral numeric values. JSON numbers decode as float64, so
// floats without a fractional part count as integers.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return floatToInt(n)
	case float32:
		return floatToInt(float64(n))
	}
	return 0, false
}

// floatToInt accepts only integral values inside the int64 range.
func floatToInt(f float64) (int64, bool) {
	if f != math.Trunc(f) || f < math.MinInt64 || f >= -math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// AsNumber reports any numeric value as float64.
func AsNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		if math.IsNaN(n) {
			return 0, false
		}
		return n, true
	case primitive.Decimal128:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	}
	return 0, false
}

// AsDecimalString renders decimal-like values in their textual form. The
// extended JSON shape {"$numberDecimal": "12.50"} is accepted as well.
func AsDecimalString(v any) (string, bool) {
	switch n := v.(type) {
	case string:
		return n, true
	case primitive.Decimal128:
		return n.String(), true
	}
	if obj, ok := AsObject(v); ok && len(obj) == 1 {
		s, ok := obj["$numberDecimal"].(string)
		return s, ok
	}
	return "", false
}

// AsStringSlice accepts []string and []any holding only strings.
func AsStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

// AsSlice exposes list values as []any.
func AsSlice(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	case []float64:
		out := make([]any, len(s))
		for i := range s {
			out[i] = s[i]
		}
		return out, true
	case primitive.A:
		return []any(s), true
	}
	return nil, false
}

func stringField(doc Document, path string) string {
	v, ok := doc.Lookup(path)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func timeField(doc Document, path string) (time.Time, bool) {
	v, ok := doc.Lookup(path)
	if !ok {
		return time.Time{}, false
	}
	return ParseInstant(v)
}
