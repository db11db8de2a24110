// Package source reads assembly source text and splits it into lexical pieces.
package source

import (
	"bufio"
	"io"
	"strings"
)

const (
	MAX_IDENTIFIER = 31 // Maximum identifier length.
	COMMENT        = ';'
)

// Line is a single line of source text.
type Line struct {
	LineNo     int    // 1-based line number in the source unit.
	Raw        string // Text as read.
	Text       string // Trimmed text.
	Macro      string // Name of the macro that expanded this line, if any.
	CallLineNo int    // Line number of the macro invocation, if any.
}

// Blank is true for an empty line.
func (line Line) Blank() bool {
	return len(line.Text) == 0
}

// Comment is true for a full-line comment.
func (line Line) Comment() bool {
	return len(line.Text) > 0 && line.Text[0] == COMMENT
}

// Ignored is true for lines which never produce code.
func (line Line) Ignored() bool {
	return line.Blank() || line.Comment()
}

// Read reads all lines of a source unit.
func Read(input io.Reader) (lines []Line, err error) {
	scanner := bufio.NewScanner(input)

	lineno := 0
	for scanner.Scan() {
		raw := scanner.Text()
		lineno++
		lines = append(lines, Line{
			LineNo: lineno,
			Raw:    raw,
			Text:   strings.TrimSpace(raw),
		})
	}

	err = scanner.Err()
	if err != nil {
		err = &ErrFatal{LineNo: lineno + 1, Err: err}
	}

	return
}

// Word splits the first whitespace delimited word from text.
func Word(text string) (word, rest string) {
	text = strings.TrimSpace(text)
	end := strings.IndexAny(text, " \t")
	if end < 0 {
		return text, ""
	}
	return text[:end], strings.TrimSpace(text[end:])
}

// StripComment removes a trailing comment outside of a quoted string.
func StripComment(text string) string {
	quoted := false
	for n := range len(text) {
		switch text[n] {
		case '"':
			quoted = !quoted
		case COMMENT:
			if !quoted {
				return strings.TrimSpace(text[:n])
			}
		}
	}
	return text
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Identifier splits the leading run of ASCII letters and digits from text.
func Identifier(text string) (ident, rest string) {
	end := 0
	for end < len(text) && (isLetter(text[end]) || isDigit(text[end])) {
		end++
	}
	return text[:end], text[end:]
}

// CheckIdentifier validates a label, macro, external or entry name.
func CheckIdentifier(name string) (err error) {
	switch {
	case len(name) == 0:
		err = ErrIdentifierEmpty
	case !isLetter(name[0]):
		err = ErrIdentifierStart(name)
	case len(name) > MAX_IDENTIFIER:
		err = ErrIdentifierLength(name)
	default:
		ident, _ := Identifier(name)
		if ident != name {
			err = ErrIdentifierChar(name)
		}
	}
	return
}

// Trailing validates that nothing but a comment follows a statement.
func Trailing(rest string) (err error) {
	rest = StripComment(strings.TrimSpace(rest))
	if len(rest) != 0 {
		err = ErrTrailing(rest)
	}
	return
}

// Numeric reports whether text is an optionally signed run of digits.
func Numeric(text string) bool {
	if len(text) > 0 && (text[0] == '+' || text[0] == '-') {
		text = text[1:]
	}
	if len(text) == 0 {
		return false
	}
	for n := range len(text) {
		if !isDigit(text[n]) {
			return false
		}
	}
	return true
}
