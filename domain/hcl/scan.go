package hcl

// Shared token-scanning helpers used by the validator, the renderer, and the
// plan exporter. All operate on byte offsets into the raw text.

// KnownNamespaces are the interpolation prefixes that pass without warning.
var KnownNamespaces = map[string]bool{
	"var":    true,
	"local":  true,
	"module": true,
	"data":   true,
}

// MatchBrace returns the offset of the '}' matching the '{' at open,
// respecting nested braces. ok is false when the brace is never closed.
func MatchBrace(s string, open int) (end int, ok bool) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// Namespace returns the leading dot-segment of an interpolation expression:
// "var.name" yields "var", "foo" yields "foo".
func Namespace(expr string) string {
	for i := 0; i < len(expr); i++ {
		if expr[i] == '.' {
			return expr[:i]
		}
	}
	return expr
}

// IsIdentifier reports whether s is a plain identifier
// ([A-Za-z_] followed by [A-Za-z0-9_-]).
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	if !isIdentStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return true
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || c == '-' || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// dollarRun measures the run of '$' bytes starting at i and reports whether
// the run ends at a '{'. A run of odd length means the trailing "${" is a
// genuine interpolation start; an even run means it is the "$${" escape.
func dollarRun(s string, i int) (end int, brace bool) {
	j := i
	for j < len(s) && s[j] == '$' {
		j++
	}
	return j, j < len(s) && s[j] == '{'
}
