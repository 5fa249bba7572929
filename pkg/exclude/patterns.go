package exclude

import (
	"regexp"
	"strings"
)

// Precompiled regular expressions used when translating ignore-file lines.
var (
	doubleStarMiddle   = regexp.MustCompile(`/\*\*/`)
	doubleStarTrailing = regexp.MustCompile(`/\*\*$`)
	doubleStarLeading  = regexp.MustCompile(`^\*\*/`)
	singleStar         = regexp.MustCompile(`\*`)
)

// compileLine turns one ignore-file line into a regular expression and a
// negation flag. It returns nil for blank lines and comments.
func compileLine(line string) (*regexp.Regexp, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false, nil
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// \# and \! escape a literal leading character.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	rooted := strings.HasPrefix(trimmed, "/")
	body := strings.TrimPrefix(trimmed, "/")

	expr := escapeSpecialChars(body)
	expr = handleDoubleStar(expr)
	expr = wildcardToRegex(expr)
	expr = anchor(expr, body, rooted)

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, false, err
	}
	return re, negate, nil
}

// escapeSpecialChars escapes regex metacharacters except '*', '?' and '/'.
func escapeSpecialChars(pattern string) string {
	for _, char := range `\.+()|^$[]{}` {
		pattern = strings.ReplaceAll(pattern, string(char), `\`+string(char))
	}
	return pattern
}

// Placeholders keep '**' expansions away from the single-star pass.
const (
	middleMark   = "\x00m\x00"
	trailingMark = "\x00t\x00"
	leadingMark  = "\x00l\x00"
)

var starExpansions = strings.NewReplacer(
	middleMark, `(/|/.+/)`,
	trailingMark, `(/.*)?`,
	leadingMark, `(.*/)?`,
)

func handleDoubleStar(pattern string) string {
	pattern = doubleStarMiddle.ReplaceAllLiteralString(pattern, middleMark)
	pattern = doubleStarTrailing.ReplaceAllLiteralString(pattern, trailingMark)
	pattern = doubleStarLeading.ReplaceAllLiteralString(pattern, leadingMark)
	return pattern
}

func wildcardToRegex(pattern string) string {
	pattern = singleStar.ReplaceAllLiteralString(pattern, `[^/]*`)
	pattern = strings.ReplaceAll(pattern, "?", "[^/]")
	return starExpansions.Replace(pattern)
}

// anchor makes the expression match a whole slash-separated relative path.
// Directory paths are matched with a trailing slash.
func anchor(pattern, original string, rooted bool) string {
	if strings.HasSuffix(original, "/") {
		pattern += "(.*)$"
	} else {
		pattern += "(/.*)?$"
	}
	if rooted {
		return "^" + pattern
	}
	return "^(|.*/)" + pattern
}
