package bundle

import (
	"strings"
)

// AllLanguages is the sentinel that disables language filtering.
const AllLanguages = "all"

// Language pairs a recognized language name with its file extension.
type Language struct {
	Name      string
	Extension string
}

// languages is the fixed lookup table. "pyton" is the accepted spelling.
var languages = []Language{
	{Name: "c", Extension: ".c"},
	{Name: "c++", Extension: ".cpp"},
	{Name: "c#", Extension: ".cs"},
	{Name: "java", Extension: ".java"},
	{Name: "pyton", Extension: ".py"},
	{Name: "javascript", Extension: ".js"},
	{Name: "html", Extension: ".html"},
	{Name: "SQL", Extension: ".sql"},
}

// Languages returns a copy of the language table.
func Languages() []Language {
	return append([]Language(nil), languages...)
}

// LanguageMatch selects how a requested language string is resolved.
type LanguageMatch string

const (
	// MatchContains selects every table name contained in the request string.
	MatchContains LanguageMatch = "contains"
	// MatchExact splits the request on commas and whitespace and selects exact names.
	MatchExact LanguageMatch = "exact"
)

// ParseLanguageMatch validates a language match mode name.
func ParseLanguageMatch(s string) (LanguageMatch, error) {
	switch LanguageMatch(s) {
	case MatchContains, MatchExact:
		return LanguageMatch(s), nil
	case "":
		return MatchContains, nil
	default:
		return "", newInvalidArgument("language match", s, string(MatchContains), string(MatchExact))
	}
}

// ResolveExtensions maps a language request onto the set of extensions it
// selects. Unknown names are dropped. The boolean is false when the request
// is the "all" sentinel.
func ResolveExtensions(request string, match LanguageMatch) (map[string]bool, bool) {
	if request == AllLanguages {
		return nil, false
	}

	selected := make(map[string]bool)
	switch match {
	case MatchExact:
		tokens := strings.FieldsFunc(request, func(r rune) bool {
			return r == ',' || r == ';' || r == ' ' || r == '\t'
		})
		for _, token := range tokens {
			for _, lang := range languages {
				if token == lang.Name {
					selected[lang.Extension] = true
				}
			}
		}
	default:
		for _, lang := range languages {
			if strings.Contains(request, lang.Name) {
				selected[lang.Extension] = true
			}
		}
	}
	return selected, true
}
