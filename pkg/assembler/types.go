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
)

type CommandType uint
type FieldType uint

func (field FieldType) String() string {
	switch field {
	case FIELD_DEST:
		return "dest"
	case FIELD_COMP:
		return "comp"
	case FIELD_JUMP:
		return "jump"
	}

	return "<invalid>"
}

type Cursor struct {
	Line     int
	Column   int
	Byte     int64
	Size     int64
	LineByte int64
}

// A normalized source line: comments and whitespace removed, never empty.
type Line struct {
	Text     string
	Position Cursor
}

type Command struct {
	Type     CommandType
	Position Cursor
	Text     string

	// Label name or A-instruction operand
	Symbol string

	// C-instruction fields, NULL_MNEMONIC when omitted
	Dest string
	Comp string
	Jump string
}

// Debugging information emitted alongside an assembled program. Labels
// lists every name bound to an instruction address in source order.
type SymTable struct {
	Source    string
	Lines     map[uint16]int
	Labels    map[uint16][]string
	Variables map[uint16]string
}

func NewSymTable(source string) *SymTable {
	return &SymTable{
		Source:    source,
		Lines:     make(map[uint16]int),
		Labels:    make(map[uint16][]string),
		Variables: make(map[uint16]string),
	}
}

type TokenError interface {
	GetPosition() Cursor
}

// Errors raised away from the source (e.g. by the symbol table) are located
// by the driver before being returned.
type locatable interface {
	locate(position Cursor, text string)
}

type InvalidMnemonicError struct {
	Position Cursor
	Text     string
	Field    FieldType
	Received string
}

func (err *InvalidMnemonicError) GetPosition() Cursor {
	return err.Position
}

func (err *InvalidMnemonicError) locate(position Cursor, text string) {
	err.Position, err.Text = position, text
}

func (err *InvalidMnemonicError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Invalid %s mnemonic '%s'\n\tline:%s",
		err.Position.Line,
		err.Position.Column,
		err.Field,
		err.Received,
		err.Text,
	)
}

type DuplicateSymbolError struct {
	Position Cursor
	Text     string
	Received string
	Addr     uint16
}

func (err *DuplicateSymbolError) GetPosition() Cursor {
	return err.Position
}

func (err *DuplicateSymbolError) locate(position Cursor, text string) {
	err.Position, err.Text = position, text
}

func (err *DuplicateSymbolError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Redeclaration of symbol '%s'\n\thave:%d\n\tline:%s",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		err.Addr,
		err.Text,
	)
}

type MalformedCommandError struct {
	Position Cursor
	Text     string
	Reason   string
}

func (err *MalformedCommandError) GetPosition() Cursor {
	return err.Position
}

func (err *MalformedCommandError) locate(position Cursor, text string) {
	err.Position, err.Text = position, text
}

func (err *MalformedCommandError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Malformed command: %s\n\tline:%s",
		err.Position.Line,
		err.Position.Column,
		err.Reason,
		err.Text,
	)
}

type SymbolOverflowError struct {
	Position Cursor
	Text     string
	Received string
}

func (err *SymbolOverflowError) GetPosition() Cursor {
	return err.Position
}

func (err *SymbolOverflowError) locate(position Cursor, text string) {
	err.Position, err.Text = position, text
}

func (err *SymbolOverflowError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: No address left for variable '%s'\n\twant:<%d\n\tline:%s",
		err.Position.Line,
		err.Position.Column,
		err.Received,
		ADDRESS_LIMIT,
		err.Text,
	)
}

type OversizedBinaryError struct {
	Position Cursor
	Received int
}

func (err *OversizedBinaryError) GetPosition() Cursor {
	return err.Position
}

func (err *OversizedBinaryError) Error() string {
	return fmt.Sprintf(
		"%02d:%02d: Binary exceeds allowed size\n\twant:<%d\n\thave:%d",
		err.Position.Line,
		err.Position.Column,
		PROGRAM_LIMIT,
		err.Received,
	)
}
