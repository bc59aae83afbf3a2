package naming

import (
	"strings"
	"unicode"

	"github.com/jinzhu/inflection"
)

// commonInitialisms are lowercased segments that render fully uppercased in
// generated identifiers: the "api" build model becomes the UserAPI type, not
// UserApi.
var commonInitialisms = map[string]string{
	"api":  "API",
	"db":   "DB",
	"id":   "ID",
	"json": "JSON",
	"sql":  "SQL",
	"ui":   "UI",
	"url":  "URL",
	"uuid": "UUID",
}

// Pascal converts a snake_case model name into a PascalCase identifier
// segment, upper-casing well-known initialisms.
func Pascal(s string) string {
	if s == "" {
		return ""
	}
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		if u, ok := commonInitialisms[strings.ToLower(p)]; ok {
			b.WriteString(u)
			continue
		}
		r := []rune(p)
		b.WriteRune(unicode.ToUpper(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

// CamelToSnake converts a CamelCase identifier to snake_case, keeping
// acronyms together: "UserID" → "user_id", "CreatedAt" → "created_at".
func CamelToSnake(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				next := rune(0)
				if i+1 < len(runes) {
					next = runes[i+1]
				}
				if unicode.IsLower(prev) || (unicode.IsUpper(prev) && unicode.IsLower(next)) {
					b.WriteByte('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DefaultCollectionName derives the database collection name from a type
// name by pluralizing it: Mutex → "Mutexes", User → "Users".
func DefaultCollectionName(typeName string) string {
	return inflection.Plural(typeName)
}
