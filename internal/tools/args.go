package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alex-user-go/eywa/internal/hotel"
)

// Args is the loosely typed argument bag of a tool call. Keys are read in
// snake_case first, then in camelCase.
type Args map[string]any

func camel(key string) string {
	parts := strings.Split(key, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

func (a Args) lookup(key string) (any, bool) {
	if v, ok := a[key]; ok && v != nil {
		return v, true
	}
	if v, ok := a[camel(key)]; ok && v != nil {
		return v, true
	}
	return nil, false
}

func invalid(key, want string) *hotel.Error {
	return hotel.Errorf(hotel.CodeInvalidRequest, "%s must be %s", key, want)
}

// String returns a trimmed string argument, or "" when absent.
func (a Args) String(key string) (string, error) {
	v, ok := a.lookup(key)
	if !ok {
		return "", nil
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s), nil
	case json.Number:
		return s.String(), nil
	default:
		return "", invalid(key, "a string")
	}
}

// Int returns an integer argument, or 0 when absent. Whole floats and
// numeric strings are accepted.
func (a Args) Int(key string) (int, error) {
	v, ok := a.lookup(key)
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, invalid(key, "an integer")
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, invalid(key, "an integer")
		}
		return int(i), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, invalid(key, "an integer")
		}
		return i, nil
	default:
		return 0, invalid(key, "an integer")
	}
}

// Float returns a numeric argument, or 0 when absent.
func (a Args) Float(key string) (float64, error) {
	v, ok := a.lookup(key)
	if !ok {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, invalid(key, "a number")
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, invalid(key, "a number")
		}
		return f, nil
	default:
		return 0, invalid(key, "a number")
	}
}

// Bool returns a boolean argument, or false when absent.
func (a Args) Bool(key string) (bool, error) {
	v, ok := a.lookup(key)
	if !ok {
		return false, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, invalid(key, "a boolean")
		}
		return parsed, nil
	default:
		return false, invalid(key, "a boolean")
	}
}

// Strings returns a list of strings; a single string is a list of one.
func (a Args) Strings(key string) ([]string, error) {
	v, ok := a.lookup(key)
	if !ok {
		return nil, nil
	}
	switch list := v.(type) {
	case string:
		return []string{list}, nil
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			s, ok := item.(string)
			if !ok {
				return nil, invalid(key, "a list of strings")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalid(key, "a list of strings")
	}
}

// Ints returns a list of integers; a single number is a list of one.
func (a Args) Ints(key string) ([]int, error) {
	v, ok := a.lookup(key)
	if !ok {
		return nil, nil
	}
	list, isList := v.([]any)
	if !isList {
		if ints, ok := v.([]int); ok {
			return ints, nil
		}
		list = []any{v}
	}
	out := make([]int, 0, len(list))
	for i, item := range list {
		n, err := Args{"item": item}.Int("item")
		if err != nil {
			return nil, invalid(fmt.Sprintf("%s[%d]", key, i), "an integer")
		}
		out = append(out, n)
	}
	return out, nil
}

// Object returns a nested argument bag, or nil when absent.
func (a Args) Object(key string) (Args, error) {
	v, ok := a.lookup(key)
	if !ok {
		return nil, nil
	}
	switch m := v.(type) {
	case map[string]any:
		return Args(m), nil
	case Args:
		return m, nil
	default:
		return nil, invalid(key, "an object")
	}
}
