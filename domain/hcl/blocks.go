package hcl

// Block is a top-level resource block extracted from rendered text.
type Block struct {
	Type string
	Name string
	Body string
}

// ResourceBlocks extracts resource blocks of the shape
//
//	resource "type" "name" { body }
//
// using the same lexical discipline as Validate. Blocks with missing labels
// or an unclosed body are skipped; this is an extraction helper, not a
// validity check.
// This is a PURE function.
func ResourceBlocks(text string) []Block {
	var blocks []Block
	inString := false

	for i := 0; i < len(text); {
		c := text[i]

		if inString {
			switch c {
			case '\\':
				i += 2
				continue
			case '"':
				inString = false
			}
			i++
			continue
		}

		if c == '"' {
			inString = true
			i++
			continue
		}

		if isIdentStart(c) && (i == 0 || !isIdentByte(text[i-1])) {
			k := i
			for k < len(text) && isIdentByte(text[k]) {
				k++
			}
			if text[i:k] == "resource" {
				if b, next, ok := readResource(text, k); ok {
					blocks = append(blocks, b)
					i = next
					continue
				}
			}
			i = k
			continue
		}

		i++
	}
	return blocks
}

// readResource parses `"type" "name" { body }` starting after the resource
// keyword at offset i. next is the offset after the closing brace.
func readResource(text string, i int) (b Block, next int, ok bool) {
	typ, i, ok := readQuoted(text, i)
	if !ok {
		return Block{}, 0, false
	}
	name, i, ok := readQuoted(text, i)
	if !ok {
		return Block{}, 0, false
	}
	i = skipSpace(text, i)
	if i >= len(text) || text[i] != '{' {
		return Block{}, 0, false
	}
	end, ok := MatchBrace(text, i)
	if !ok {
		return Block{}, 0, false
	}
	return Block{Type: typ, Name: name, Body: text[i+1 : end]}, end + 1, true
}

// readQuoted skips whitespace and reads one double-quoted string.
func readQuoted(text string, i int) (val string, next int, ok bool) {
	i = skipSpace(text, i)
	if i >= len(text) || text[i] != '"' {
		return "", 0, false
	}
	j := i + 1
	for j < len(text) {
		switch text[j] {
		case '\\':
			j += 2
			continue
		case '"':
			return text[i+1 : j], j + 1, true
		}
		j++
	}
	return "", 0, false
}

func skipSpace(text string, i int) int {
	for i < len(text) && isSpace(text[i]) {
		i++
	}
	return i
}
