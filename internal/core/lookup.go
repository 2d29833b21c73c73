package core

import (
	"strings"

	"rocrate-convert/internal/types"
)

// LookupPath walks a dot-notation path over a value. "@" denotes the
// value itself. A list hop collects the matching property from every
// element, flattening one level; a miss at any hop returns nil.
func LookupPath(data any, path string) any {
	if path == "@" {
		return data
	}
	current := data
	for _, part := range strings.Split(path, ".") {
		switch v := current.(type) {
		case types.Entity:
			current = v.Get(part)
		case map[string]any:
			current = types.NewEntity(v).Get(part)
		case []any:
			var collected []any
			for _, item := range v {
				m, ok := item.(map[string]any)
				if !ok {
					continue
				}
				val := types.NewEntity(m).Get(part)
				if IsEmptyValue(val) {
					continue
				}
				if list, ok := val.([]any); ok {
					collected = append(collected, list...)
				} else {
					collected = append(collected, val)
				}
			}
			if len(collected) == 0 {
				return nil
			}
			current = collected
		default:
			return nil
		}
		if current == nil {
			return nil
		}
	}
	return current
}

// ResolveSource tries each source path in order and returns the first
// non-empty value. Strict first-match-wins: candidates that also
// resolve are never merged in.
func ResolveSource(data any, sources []string) any {
	for _, source := range sources {
		if val := LookupPath(data, source); !IsEmptyValue(val) {
			return val
		}
	}
	return nil
}

// IsEmptyValue reports whether a value counts as absent for source
// resolution and field omission.
func IsEmptyValue(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
