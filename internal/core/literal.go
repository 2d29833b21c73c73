package core

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"rocrate-convert/internal/types"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// Typographic Unicode to ASCII, matching what the target
	// repositories accept without mangling.
	typographicReplacer = strings.NewReplacer(
		"–", "-", // en dash
		"—", "--", // em dash
		"‘", "'",
		"’", "'",
		"“", "'",
		"”", "'",
		" ", " ",
		"®", "(R)",
		"™", "(TM)",
		"ß", "ss",
		"ä", "ae",
		"ö", "oe",
		"ü", "ue",
		"Ä", "Ae",
		"Ö", "Oe",
		"Ü", "Ue",
		`"`, "'",
	)
)

// CleanText unescapes HTML entities, strips tags, replaces typographic
// characters with ASCII equivalents, and collapses whitespace. It is
// pure and idempotent: cleaning a clean string returns it unchanged.
func CleanText(s string) string {
	s = html.UnescapeString(s)
	s = htmlTagPattern.ReplaceAllString(s, "")
	s = typographicReplacer.Replace(s)
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// LiteralResolver turns any JSON-LD value shape into a clean scalar
// string. Wrapped-value objects are inspected in a fixed key priority;
// the first key yielding a non-empty result wins.
type LiteralResolver struct {
	refs RefResolver
}

func NewLiteralResolver(refs RefResolver) LiteralResolver {
	return LiteralResolver{refs: refs}
}

// maxLiteralDepth bounds resolution through nested shapes and index
// dereferences. Reference cycles in the entity graph are legal JSON-LD;
// past the cap the value renders as its raw form instead of recursing.
const maxLiteralDepth = 32

func (r LiteralResolver) Literal(val any) string {
	return r.literal(val, 0)
}

func (r LiteralResolver) literal(val any, depth int) string {
	if depth > maxLiteralDepth {
		return fmt.Sprint(val)
	}
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return CleanText(v)
	case types.Entity:
		return r.literal(v.Props(), depth+1)
	case []any:
		if len(v) == 0 {
			return ""
		}
		return r.literal(v[0], depth+1)
	case map[string]any:
		return r.objectLiteral(v, depth)
	default:
		return fmt.Sprint(v)
	}
}

func (r LiteralResolver) objectLiteral(v map[string]any, depth int) string {
	// A bare reference resolves through the entity index first.
	if len(v) == 1 {
		if resolved := r.refs.Resolve(v); !sameMap(resolved, v) {
			return r.literal(resolved, depth+1)
		}
	}
	// Entity-style lookup so expanded schema.org keys resolve too.
	node := types.NewEntity(v)
	for _, key := range []string{"@value", "name", "value"} {
		if inner := node.Get(key); inner != nil {
			if lit := r.literal(inner, depth+1); lit != "" {
				return lit
			}
		}
	}
	if node.Get("givenName") != nil || node.Get("familyName") != nil {
		given := r.literal(node.Get("givenName"), depth+1)
		family := r.literal(node.Get("familyName"), depth+1)
		if full := strings.TrimSpace(given + " " + family); full != "" {
			return CleanText(full)
		}
	}
	if inner := node.Get("text"); inner != nil {
		if lit := r.literal(inner, depth+1); lit != "" {
			return lit
		}
	}
	return fmt.Sprint(v)
}

func sameMap(a any, b map[string]any) bool {
	m, ok := a.(map[string]any)
	if !ok {
		return false
	}
	if len(m) != len(b) {
		return false
	}
	for k := range b {
		if _, ok := m[k]; !ok {
			return false
		}
	}
	return true
}
