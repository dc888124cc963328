package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// space is the whitespace set of ECMAScript `\s`. RE2 `\s` covers only ASCII,
// which misses the NBSP and line separators that PDF and DOCX text carries.
const space = `[\t\n\v\f\r \p{Zs}\x{FEFF}\x{2028}\x{2029}]`

// lineChar matches any rune except a line terminator.
const lineChar = `[^\n\r\x{2028}\x{2029}]`

// compile rewrites `\s` and `.*` to their line-terminator aware forms.
func compile(expr string) *regexp.Regexp {
	expr = strings.ReplaceAll(expr, `\s`, space)
	expr = strings.ReplaceAll(expr, `.*`, lineChar+`*`)
	return regexp.MustCompile(expr)
}

func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', 0xFEFF, 0x2028, 0x2029:
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}
