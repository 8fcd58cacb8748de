// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package assembler

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/lassandro/gohack/pkg/encoding"
)

// Normalize strips comments and whitespace from Hack source and drops blank
// lines. Each surviving line keeps the position of its first character in
// the original input.
func Normalize(input io.Reader) ([]Line, error) {
	var lines []Line
	var builder strings.Builder
	var scanner = bufio.NewScanner(input)

	var cursor = Cursor{Line: 1}
	var comment Cursor
	var inComment bool

	for scanner.Scan() {
		line := scanner.Text()
		first, last := -1, -1

		builder.Reset()
		builder.Grow(len(line))

		for i := 0; i < len(line); i++ {
			char := line[i]
			next := byte(0)

			if i+1 < len(line) {
				next = line[i+1]
			}

			if inComment {
				if char == '*' && next == '/' {
					inComment = false
					i++
				}

				continue
			}

			if char == '/' && next == '/' {
				break
			}

			if char == '/' && next == '*' {
				comment = Cursor{
					Line:     cursor.Line,
					Column:   i + 1,
					Byte:     cursor.LineByte + int64(i),
					Size:     2,
					LineByte: cursor.LineByte,
				}
				inComment = true
				i++
				continue
			}

			if unicode.IsSpace(rune(char)) {
				continue
			}

			if first < 0 {
				first = i
			}

			last = i
			builder.WriteByte(char)
		}

		if builder.Len() > 0 {
			lines = append(lines, Line{
				Text: builder.String(),
				Position: Cursor{
					Line:     cursor.Line,
					Column:   first + 1,
					Byte:     cursor.LineByte + int64(first),
					Size:     int64(last - first + 1),
					LineByte: cursor.LineByte,
				},
			})
		}

		cursor.Line++
		cursor.LineByte += int64(len(line) + 1)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if inComment {
		return nil, &MalformedCommandError{
			Position: comment,
			Text:     "/*",
			Reason:   "Unterminated block comment",
		}
	}

	return lines, nil
}

// ParseCommand classifies a normalized line by its first character and
// splits it into fields. Mnemonics are not checked here.
func ParseCommand(line Line) (Command, error) {
	text := line.Text
	command := Command{Position: line.Position, Text: text}

	malformed := func(format string, args ...interface{}) error {
		return &MalformedCommandError{
			Position: line.Position,
			Text:     text,
			Reason:   fmt.Sprintf(format, args...),
		}
	}

	if len(text) == 0 {
		return command, malformed("Empty command")
	}

	switch text[0] {
	// @value
	case '@':
		command.Type = COMMAND_ADDRESS
		command.Symbol = text[1:]

		if len(command.Symbol) == 0 {
			return command, malformed("Missing address operand")
		}

		if isLiteral(command.Symbol) {
			if _, err := decodeLiteral(command.Symbol); err != nil {
				return command, malformed("%s", err.(*MalformedCommandError).Reason)
			}
		} else if !isSymbol(command.Symbol) {
			return command, malformed("Invalid symbol '%s'", command.Symbol)
		}

	// (LABEL)
	case '(':
		command.Type = COMMAND_LABEL

		if len(text) < 2 || text[len(text)-1] != ')' {
			return command, malformed("Label is missing its closing ')'")
		}

		command.Symbol = text[1 : len(text)-1]

		if !isSymbol(command.Symbol) {
			return command, malformed("Invalid label '%s'", command.Symbol)
		}

	case ')':
		return command, malformed("Unexpected character )")

	// dest=comp;jump
	default:
		command.Type = COMMAND_COMPUTE
		command.Dest = NULL_MNEMONIC
		command.Jump = NULL_MNEMONIC

		rest := text

		if i := strings.IndexByte(rest, '='); i >= 0 {
			command.Dest = rest[:i]
			rest = rest[i+1:]
		}

		if i := strings.IndexByte(rest, ';'); i >= 0 {
			command.Jump = rest[i+1:]
			rest = rest[:i]
		}

		command.Comp = rest

		if len(command.Comp) == 0 {
			return command, malformed("Missing computation")
		}
	}

	return command, nil
}

// Operands starting with a digit or sign are numeric; symbols may not start
// with either.
func isLiteral(operand string) bool {
	if len(operand) == 0 {
		return false
	}

	char := operand[0]
	return (char >= '0' && char <= '9') || char == '-' || char == '+'
}

func decodeLiteral(operand string) (uint16, error) {
	addr, err := encoding.DecodeAddress(operand)

	if err != nil {
		return 0, &MalformedCommandError{
			Reason: fmt.Sprintf(
				"Address literal '%s' must be a decimal between 0 and %d",
				operand,
				ADDRESS_LIMIT-1,
			),
		}
	}

	return addr, nil
}

// Symbols are letters, digits, '_', '.', '$' and ':', not starting with a digit
func isSymbol(name string) bool {
	if len(name) == 0 {
		return false
	}

	for i, char := range name {
		switch {
		case char > unicode.MaxASCII:
			return false
		case unicode.IsDigit(char):
			if i == 0 {
				return false
			}
		case unicode.IsLetter(char):
		case char == '_', char == '.', char == '$', char == ':':
		default:
			return false
		}
	}

	return true
}
