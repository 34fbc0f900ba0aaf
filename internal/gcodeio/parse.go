package gcodeio

import (
	"fmt"
	"io"
)

const (
	stateNormal = iota
	stateComment
	stateEOLComment
	stateWord
)

// ParseError reports a tokenizer failure with its position in the source.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, pos %d: %s", e.Line, e.Column, e.Message)
}

// Parse tokenizes a full program read from r into a Document. Unlike the
// teacher's panic-then-recover translation in gcode/parse.go, malformed
// input is reported as a plain *ParseError return - there is no reason to
// cross a package boundary with a panic in idiomatic Go.
func Parse(r io.Reader) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseString(string(raw))
}

// ParseString tokenizes an in-memory program.
func ParseString(input string) (*Document, error) {
	var (
		document    Document
		curBlock    = Block{Line: 1}
		state       = stateNormal
		lastNewline = 0
		line        = 1
		buffer      string
		address     rune
	)

	input += "\n"

	posError := func(idx int, msg string) error {
		return &ParseError{Line: line, Column: idx - lastNewline + 1, Message: msg}
	}

	var parseNormal func(c rune, idx int) error
	var parseComment func(c rune, idx int) error
	var parseEOLComment func(c rune, idx int) error
	var parseWord func(c rune, idx int) error

	parseNormal = func(c rune, idx int) error {
		switch c {
		case '/':
			if idx-lastNewline == 0 {
				curBlock.BlockDelete = true
				lastNewline--
			} else {
				return posError(idx, "unexpected /")
			}
		case '%':
			curBlock.AppendNode(&Filemarker{})
		case '(':
			state = stateComment
		case ';':
			state = stateEOLComment
		case '\n':
			if len(curBlock.Nodes) > 0 || curBlock.BlockDelete {
				document.AppendBlock(curBlock)
			}
			line++
			curBlock = Block{Line: line}
			lastNewline = idx + 1
		case ' ', '\t', '\r':
			// ignore
		default:
			switch {
			case c >= 'a' && c <= 'z':
				state = stateWord
				address = c - 32
			case (c >= 'A' && c <= 'Z') || c == '@' || c == '^':
				state = stateWord
				address = c
			default:
				return posError(idx, fmt.Sprintf("expected word address, found %q", c))
			}
		}
		return nil
	}

	parseComment = func(c rune, idx int) error {
		switch c {
		case ')':
			state = stateNormal
			curBlock.AppendNode(&Comment{Text: buffer})
			buffer = ""
		case '\n':
			return posError(idx, "non-terminated comment")
		default:
			buffer += string(c)
		}
		return nil
	}

	parseEOLComment = func(c rune, idx int) error {
		switch c {
		case '\n':
			state = stateNormal
			curBlock.AppendNode(&Comment{Text: buffer, IsEOL: true})
			buffer = ""
			return parseNormal(c, idx)
		default:
			buffer += string(c)
		}
		return nil
	}

	parseWord = func(c rune, idx int) error {
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			buffer += string(c)
			return nil
		}
		state = stateNormal
		f, err := parseFloat(buffer)
		if err != nil {
			return posError(idx, fmt.Sprintf("malformed number %q for address %c", buffer, address))
		}
		curBlock.AppendNode(&Word{Address: address, Command: f})
		buffer = ""
		return parseNormal(c, idx)
	}

	for idx, c := range input {
		var err error
		switch state {
		case stateNormal:
			err = parseNormal(c, idx)
		case stateComment:
			err = parseComment(c, idx)
		case stateEOLComment:
			err = parseEOLComment(c, idx)
		case stateWord:
			err = parseWord(c, idx)
		}
		if err != nil {
			return nil, err
		}
	}

	return &document, nil
}
