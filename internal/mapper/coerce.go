// Package mapper translates between gateway rows and domain entities.
// Missing or null columns decode to zero values, never to nil slices.
package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-manager/internal/gateway"
)

const (
	dateLayout = "2006-01-02"
	// wall-clock times of day are kept as HH:MM
	clockLayout = "15:04"
)

func str(r gateway.Row, key string) string {
	switch v := r[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(v)
	}
}

func float(r gateway.Row, key string) float64 {
	var f float64
	switch v := r[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		f, _ = v.Float64()
	case string:
		f, _ = strconv.ParseFloat(strings.TrimSpace(v), 64)
	case []byte:
		f, _ = strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func integer(r gateway.Row, key string) int {
	switch v := r[key].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	}
	return int(math.Round(float(r, key)))
}

func boolean(r gateway.Row, key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, _ := strconv.ParseBool(v)
		return b
	case int, int32, int64, float64:
		return float(r, key) != 0
	}
	return false
}

// date reads a calendar day. Timestamps are truncated to their UTC day.
func date(r gateway.Row, key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		y, m, d := v.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case string:
		if v == "" {
			return time.Time{}
		}
		if t, err := time.Parse(dateLayout, v); err == nil {
			return t
		}
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			y, m, d := t.UTC().Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		}
	}
	return time.Time{}
}

func timestamp(r gateway.Row, key string) time.Time {
	switch v := r[key].(type) {
	case time.Time:
		return v.UTC()
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999Z07:00", "2006-01-02 15:04:05", dateLayout} {
			if t, err := time.Parse(layout, v); err == nil {
				return t.UTC()
			}
		}
	}
	return time.Time{}
}

// clock normalises "09:00:00" (Postgres time) to "09:00".
func clock(r gateway.Row, key string) string {
	s := str(r, key)
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t.Format(clockLayout)
	}
	return s
}

// stringList decodes list columns: native slices, JSON arrays, or Postgres
// array literals like {a,b}.
func stringList(r gateway.Row, key string) []string {
	out := []string{}
	switch v := r[key].(type) {
	case []string:
		out = append(out, v...)
	case []any:
		for _, item := range v {
			if item != nil {
				out = append(out, fmt.Sprint(item))
			}
		}
	case []byte:
		return parseList(string(v))
	case string:
		return parseList(v)
	}
	return out
}

func parseList(s string) []string {
	out := []string{}
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return out
	}
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &out); err == nil {
			return out
		}
		return []string{}
	}
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		inner := strings.TrimSpace(s[1 : len(s)-1])
		if inner == "" {
			return out
		}
		for _, part := range strings.Split(inner, ",") {
			out = append(out, strings.Trim(strings.TrimSpace(part), `"`))
		}
		return out
	}
	return []string{s}
}

// --------------------------------------------------
// Wire encoders
// --------------------------------------------------

func wireDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(dateLayout)
}

func wireTimestamp(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// wireRef turns an empty foreign key into NULL.
func wireRef(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func wireList(items []string) []string {
	out := make([]string, len(items))
	copy(out, items)
	return out
}
