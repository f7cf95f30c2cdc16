// Package scan locates notation string literals and call sites in raw host
// document text. It is a leaf dependency: no parsing, no vocabulary.
package scan

import "strings"

// Literal is one quoted region of a document. Body excludes the quotes;
// BodyStart is the byte offset of the first body character.
type Literal struct {
	Body      string
	BodyStart int
}

// Call describes the innermost unclosed call around a cursor position.
type Call struct {
	Name     string
	ArgIndex int
}

// End returns the byte offset just past the literal body.
func (l Literal) End() int {
	return l.BodyStart + len(l.Body)
}

// EnclosingLiteral scans backward from offset for an unescaped quote,
// stopping early at a newline or statement separator, then forward for the
// matching unescaped closing quote, stopping at a newline. Returns false if
// either side fails to close.
func EnclosingLiteral(text string, offset int) (Literal, bool) {
	if offset < 0 || offset > len(text) {
		return Literal{}, false
	}
	var quote byte
	start := -1
	for i := offset - 1; i >= 0; i-- {
		c := text[i]
		if c == '\n' || c == ';' {
			return Literal{}, false
		}
		if (c == '\'' || c == '"') && !escaped(text, i) {
			quote = c
			start = i
			break
		}
	}
	if start < 0 {
		return Literal{}, false
	}
	for i := offset; i < len(text); i++ {
		c := text[i]
		if c == '\n' {
			return Literal{}, false
		}
		if c == quote && !escaped(text, i) {
			return Literal{Body: text[start+1 : i], BodyStart: start + 1}, true
		}
	}
	return Literal{}, false
}

// AllLiterals enumerates every single- or double-quoted literal in the
// document in one escape-aware pass. Unterminated literals are skipped.
func AllLiterals(text string) []Literal {
	var out []Literal
	i := 0
	for i < len(text) {
		c := text[i]
		switch c {
		case '\'', '"':
			end := -1
			for j := i + 1; j < len(text); j++ {
				if text[j] == '\\' {
					j++
					continue
				}
				if text[j] == c {
					end = j
					break
				}
				if text[j] == '\n' {
					break
				}
			}
			if end < 0 {
				i++
				continue
			}
			out = append(out, Literal{Body: text[i+1 : end], BodyStart: i + 1})
			i = end + 1
		case '/':
			// Skip line comments so commented-out patterns stay silent.
			if i+1 < len(text) && text[i+1] == '/' {
				for i < len(text) && text[i] != '\n' {
					i++
				}
				continue
			}
			i++
		default:
			i++
		}
	}
	return out
}

// EnclosingCall scans backward from offset tracking parenthesis depth to the
// nearest unmatched '(' and reads the identifier immediately before it.
// ArgIndex counts top-level commas seen between that '(' and the cursor.
func EnclosingCall(text string, offset int) (Call, bool) {
	if offset < 0 || offset > len(text) {
		return Call{}, false
	}
	depth := 0
	brackets := 0
	args := 0
	open := -1
	for i := offset - 1; i >= 0; i-- {
		c := text[i]
		switch c {
		case '\'', '"':
			// Jump over a string body when its opening quote is in range;
			// an unmatched quote means the cursor sits inside that string.
			j := i - 1
			for j >= 0 && text[j] != '\n' {
				if text[j] == c && !escaped(text, j) {
					break
				}
				j--
			}
			if j >= 0 && text[j] == c {
				i = j
			}
		case ')':
			depth++
		case '(':
			if depth == 0 {
				open = i
			} else {
				depth--
			}
		case ']', '}':
			brackets++
		case '[', '{':
			if brackets > 0 {
				brackets--
			}
		case ',':
			if depth == 0 && brackets == 0 {
				args++
			}
		case '\n', ';':
			return Call{}, false
		}
		if open >= 0 {
			break
		}
	}
	if open < 0 {
		return Call{}, false
	}
	name := identBefore(text, open)
	if name == "" {
		return Call{}, false
	}
	return Call{Name: name, ArgIndex: args}, true
}

// NonNotationBody reports whether a literal body looks like a path, URL, or
// host-language code rather than notation. Such bodies are not validated.
func NonNotationBody(body string) bool {
	if strings.HasPrefix(body, "http") || strings.HasPrefix(body, ".") || strings.HasPrefix(body, "github:") {
		return true
	}
	for _, marker := range []string{"function", "=>", "return"} {
		if strings.Contains(body, marker) {
			return true
		}
	}
	return false
}

func escaped(text string, i int) bool {
	n := 0
	for j := i - 1; j >= 0 && text[j] == '\\'; j-- {
		n++
	}
	return n%2 == 1
}

func identBefore(text string, open int) string {
	end := open
	for end > 0 && isSpace(text[end-1]) {
		end--
	}
	start := end
	for start > 0 && isIdentByte(text[start-1]) {
		start--
	}
	return text[start:end]
}

func isIdentByte(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
