package lexer

import (
	"errors"
	"io"
	"strings"
)

// ErrUnterminatedComment is returned when the input ends inside a block comment.
var ErrUnterminatedComment = errors.New("EOF in comment")

// RemoveComments reads from r and returns the text with all comments
// removed: "--" and "//" run to the end of the line, "(* *)" nests, and
// "/* */" does not. Newlines inside comments are kept so that token
// positions still match the original source. String constants are left
// untouched.
func RemoveComments(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	src := string(data)

	var result strings.Builder
	inLineComment := false
	inString := false
	coolDepth := 0      // nesting of (* *)
	inCComment := false // inside /* */

	for i := 0; i < len(src); {
		c := src[i]
		next := byte(0)
		if i+1 < len(src) {
			next = src[i+1]
		}
		switch {
		case inLineComment:
			if c == '\n' {
				inLineComment = false
				result.WriteByte(c)
			}
			i++
		case coolDepth > 0:
			switch {
			case c == '(' && next == '*':
				coolDepth++
				i += 2
			case c == '*' && next == ')':
				coolDepth--
				i += 2
			default:
				if c == '\n' {
					result.WriteByte(c)
				}
				i++
			}
		case inCComment:
			if c == '*' && next == '/' {
				inCComment = false
				i += 2
			} else {
				if c == '\n' {
					result.WriteByte(c)
				}
				i++
			}
		case inString:
			result.WriteByte(c)
			switch c {
			case '\\':
				if next != 0 {
					result.WriteByte(next)
					i++
				}
			case '"', '\n':
				inString = false
			}
			i++
		default:
			switch {
			case c == '"':
				inString = true
				result.WriteByte(c)
				i++
			case (c == '-' && next == '-') || (c == '/' && next == '/'):
				inLineComment = true
				i += 2
			case c == '(' && next == '*':
				coolDepth = 1
				i += 2
			case c == '/' && next == '*':
				inCComment = true
				i += 2
			default:
				result.WriteByte(c)
				i++
			}
		}
	}
	if coolDepth > 0 || inCComment {
		return result.String(), ErrUnterminatedComment
	}
	return result.String(), nil
}
