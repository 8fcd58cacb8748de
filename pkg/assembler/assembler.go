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
	"fmt"
	"io"
	"strings"

	"github.com/lassandro/gohack/pkg/encoding"
)

func locate(err error, command *Command) error {
	if target, ok := err.(locatable); ok {
		target.locate(command.Position, command.Text)
	}

	return err
}

// AssembleLines translates normalized lines into machine words. Labels are
// bound in a first pass, so forward references resolve; variables are
// allocated in order of first reference during the second pass. Passing a
// nil symbols table uses a fresh one. symtable, when not nil, receives
// debugging information.
func AssembleLines(lines []Line, symbols *SymbolTable, symtable *SymTable) ([]uint16, error) {
	if symbols == nil {
		symbols = NewSymbolTable()
	}

	commands := make([]Command, 0, len(lines))

	// Label pass:
	// - Bind each label to the address of the next instruction
	// - Keep only A- and C-instructions
	for _, line := range lines {
		command, err := ParseCommand(line)

		if err != nil {
			return nil, err
		}

		if command.Type != COMMAND_LABEL {
			if len(commands) >= PROGRAM_LIMIT {
				return nil, &OversizedBinaryError{
					command.Position, len(commands) + 1,
				}
			}

			commands = append(commands, command)
			continue
		}

		addr := len(commands)

		if addr >= ADDRESS_LIMIT {
			return nil, &OversizedBinaryError{command.Position, addr}
		}

		if err := symbols.RegisterLabel(command.Symbol, uint16(addr)); err != nil {
			return nil, locate(err, &command)
		}

		if symtable != nil {
			symtable.Labels[uint16(addr)] = append(
				symtable.Labels[uint16(addr)], command.Symbol,
			)
		}
	}

	// Encoding pass:
	// - Resolve or allocate A-instruction symbols
	// - Look up C-instruction mnemonics
	result := make([]uint16, 0, len(commands))

	for i := range commands {
		command := &commands[i]

		var word uint16
		var err error

		switch command.Type {
		case COMMAND_ADDRESS:
			fresh := !isLiteral(command.Symbol) &&
				!symbols.Contains(command.Symbol)

			word, err = encodeAddress(command, symbols)

			if err == nil && fresh && symtable != nil {
				symtable.Variables[word] = command.Symbol
			}

		case COMMAND_COMPUTE:
			word, err = encodeCompute(command)
		}

		if err != nil {
			return nil, locate(err, command)
		}

		if symtable != nil {
			symtable.Lines[uint16(i)] = command.Position.Line
		}

		result = append(result, word)
	}

	return result, nil
}

// AssembleHackSource normalizes and assembles a complete source file
func AssembleHackSource(input io.Reader, symbols *SymbolTable, symtable *SymTable) ([]uint16, error) {
	lines, err := Normalize(input)

	if err != nil {
		return nil, err
	}

	return AssembleLines(lines, symbols, symtable)
}

// Translate assembles already normalized lines into newline separated
// binary words, with no trailing newline. Line numbers in errors are
// 1-based indices into lines.
func Translate(lines []string) (string, error) {
	source := make([]Line, 0, len(lines))

	for i, text := range lines {
		source = append(source, Line{
			Text: text,
			Position: Cursor{
				Line:   i + 1,
				Column: 1,
				Size:   int64(len(text)),
			},
		})
	}

	words, err := AssembleLines(source, nil, nil)

	if err != nil {
		return "", err
	}

	return strings.Join(Format(words), "\n"), nil
}

// Format renders each word as 16 binary digits
func Format(words []uint16) []string {
	result := make([]string, 0, len(words))

	for _, word := range words {
		result = append(result, encoding.EncodeWord(word))
	}

	return result
}

// ResolveDataAddress maps a name to a data memory address. Predefined
// symbols come first, then variables recorded in symtable, then numeric
// values. Labels name instruction addresses and are rejected. symtable may
// be nil.
func ResolveDataAddress(name string, symtable *SymTable) (uint16, error) {
	if symbols := NewSymbolTable(); symbols.Contains(name) {
		return symbols.AddressOf(name), nil
	}

	if symtable != nil {
		for addr, variable := range symtable.Variables {
			if variable == name {
				return addr, nil
			}
		}

		for _, labels := range symtable.Labels {
			for _, label := range labels {
				if label == name {
					return 0, fmt.Errorf(
						"'%s' is a program label, not a data address", name,
					)
				}
			}
		}
	}

	addr, err := encoding.DecodeValue(name)

	if err != nil {
		return 0, fmt.Errorf("Unknown address '%s'", name)
	}

	if addr >= ADDRESS_LIMIT {
		return 0, fmt.Errorf("Address '%s' out of range", name)
	}

	return addr, nil
}
