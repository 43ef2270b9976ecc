package gateway

import (
	"fmt"
	"strconv"
	"time"
)

// compare orders two wire values. Numbers compare numerically, times
// chronologically, everything else by its string form. nil sorts first.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	if fa, ok := number(a); ok {
		if fb, ok := number(b); ok {
			switch {
			case fa < fb:
				return -1
			case fa > fb:
				return 1
			}
			return 0
		}
	}

	if ta, ok := instant(a); ok {
		if tb, ok := instant(b); ok {
			return ta.Compare(tb)
		}
	}

	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

// instant accepts time values and RFC3339 strings, whose trimmed fractional
// seconds do not sort lexically.
func instant(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		return parsed, err == nil
	}
	return time.Time{}, false
}

func number(v any) (float64, bool) {
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
		return n, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func matches(row Row, f Filter) (bool, error) {
	v := row[f.Column]
	switch f.Op {
	case OpEq:
		return v != nil && compare(v, f.Value) == 0, nil
	case OpNeq:
		return v == nil || compare(v, f.Value) != 0, nil
	case OpGte:
		return v != nil && compare(v, f.Value) >= 0, nil
	case OpLte:
		return v != nil && compare(v, f.Value) <= 0, nil
	case OpIn:
		if v == nil {
			return false, nil
		}
		s := fmt.Sprint(v)
		for _, id := range inValues(f.Value) {
			if id == s {
				return true, nil
			}
		}
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownOp, f.Op)
}

func inValues(v any) []string {
	switch ids := v.(type) {
	case []string:
		return ids
	case []any:
		out := make([]string, 0, len(ids))
		for _, id := range ids {
			out = append(out, fmt.Sprint(id))
		}
		return out
	}
	return nil
}
