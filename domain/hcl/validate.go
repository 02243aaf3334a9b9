// Package hcl statically checks template text for structural defects.
//
// This is deliberately not an HCL parser: it builds no syntax tree and
// evaluates nothing. A single left-to-right scan tracks string-literal
// context, a delimiter stack, and interpolation/escape state, and reports
// findings in discovery order.
package hcl

import (
	"fmt"
	"strings"
)

// Result is the outcome of one validation pass. Valid is true iff Errors is
// empty; warnings are advisory and never affect validity.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate scans text and reports structural errors and advisory warnings.
// It never fails: malformed input produces findings, not a Go error.
// This is a PURE function - no side effects, deterministic.
func Validate(text string) Result {
	if strings.TrimSpace(text) == "" {
		return Result{Valid: false, Errors: []string{"template is empty"}}
	}

	s := &scanner{src: text}
	s.run()

	return Result{
		Valid:    len(s.errors) == 0,
		Errors:   s.errors,
		Warnings: s.warnings,
	}
}

// opener records an open delimiter awaiting its closer.
type opener struct {
	ch  byte
	pos int
}

// scanner is the single-pass validation state machine.
type scanner struct {
	src      string
	errors   []string
	warnings []string

	inString bool
	stack    []opener

	blockFound bool

	// resource label tracking: set when the "resource" keyword is seen,
	// cleared at the block opener or on a disqualifying token.
	resPending bool
	resPos     int
	resLabels  int
}

func (s *scanner) errorf(format string, args ...any) {
	s.errors = append(s.errors, fmt.Sprintf(format, args...))
}

func (s *scanner) warnf(format string, args ...any) {
	s.warnings = append(s.warnings, fmt.Sprintf(format, args...))
}

func (s *scanner) run() {
	src := s.src
	n := len(src)

	for i := 0; i < n; {
		c := src[i]

		// Interpolation and escape detection runs in every context,
		// including inside string literals.
		if c == '$' {
			i = s.scanDollars(i)
			continue
		}

		if s.inString {
			switch c {
			case '\\':
				i += 2 // skip the escaped byte
				continue
			case '"':
				s.inString = false
				if s.resPending {
					s.resLabels++
				}
			}
			i++
			continue
		}

		if s.resPending && !isSpace(c) && c != '"' && c != '{' {
			s.errorf("resource block at offset %d must have exactly two quoted labels", s.resPos)
			s.resPending = false
		}

		switch {
		case c == '"':
			s.inString = true
		case c == '{', c == '[', c == '(':
			if c == '{' && s.resPending {
				if s.resLabels != 2 {
					s.errorf("resource block at offset %d must have exactly two quoted labels", s.resPos)
				}
				s.resPending = false
			}
			s.stack = append(s.stack, opener{ch: c, pos: i})
		case c == '}', c == ']', c == ')':
			s.close(c, i)
		case isIdentStart(c):
			i = s.scanWord(i)
			continue
		}
		i++
	}

	s.finish()
}

// scanDollars handles a run of '$' bytes starting at i and returns the offset
// to resume at. Classification follows the escape rule: a trailing "${" is a
// genuine interpolation start iff the dollar run has odd length.
func (s *scanner) scanDollars(i int) int {
	j, brace := dollarRun(s.src, i)
	if !brace {
		return j
	}
	run := j - i

	end, ok := MatchBrace(s.src, j)
	if !ok {
		// Unterminated interpolation; the delimiter scanner reports the
		// dangling '{' when it is outside a string literal.
		return j
	}
	expr := s.src[j+1 : end]
	ns := Namespace(expr)

	if run%2 == 1 {
		if !KnownNamespaces[ns] {
			s.warnf("unknown interpolation namespace: ${%s}", expr)
		}
	} else if !KnownNamespaces[ns] {
		s.warnf("escaped interpolation $${%s} does not reference a known namespace; the $$ escape may be unintentional", expr)
	}
	return j
}

// scanWord consumes an identifier starting at i and returns the offset after
// it, handling the resource-label check and block keyword detection.
func (s *scanner) scanWord(i int) int {
	src := s.src
	if i > 0 && isIdentByte(src[i-1]) {
		return i + 1 // mid-word, not a keyword position
	}
	k := i
	for k < len(src) && isIdentByte(src[k]) {
		k++
	}
	word := src[i:k]

	switch word {
	case "resource", "data", "module":
		// Block keyword when followed by whitespace and a quoted label.
		m := k
		for m < len(src) && isSpace(src[m]) {
			m++
		}
		if m > k && m < len(src) && src[m] == '"' {
			s.blockFound = true
		}
		if word == "resource" {
			s.resPending = true
			s.resPos = i
			s.resLabels = 0
		}
	}
	return k
}

// finish reports findings that can only be decided at end of scan.
func (s *scanner) finish() {
	if s.resPending {
		s.errorf("resource block at offset %d must have exactly two quoted labels", s.resPos)
	}
	for i := len(s.stack) - 1; i >= 0; i-- {
		o := s.stack[i]
		s.errorf("unbalanced delimiters: %q opened at offset %d is never closed", string(o.ch), o.pos)
	}
	if !s.blockFound {
		s.warnf("no resource, data, or module block found (is this intentional?)")
	}
}

// close matches a closing delimiter against the stack. A closer with no open
// delimiter, or one that does not match the innermost opener, is an error;
// mismatched closers are treated as stray so one typo yields one finding.
func (s *scanner) close(c byte, pos int) {
	if len(s.stack) == 0 {
		s.errorf("unbalanced delimiters: unexpected %q at offset %d", string(c), pos)
		return
	}
	top := s.stack[len(s.stack)-1]
	if counterpart(top.ch) != c {
		s.errorf("unbalanced delimiters: %q opened at offset %d closed by %q at offset %d",
			string(top.ch), top.pos, string(c), pos)
		return
	}
	s.stack = s.stack[:len(s.stack)-1]
}

func counterpart(open byte) byte {
	switch open {
	case '{':
		return '}'
	case '[':
		return ']'
	default:
		return ')'
	}
}
