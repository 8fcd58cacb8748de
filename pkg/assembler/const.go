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

const (
	COMMAND_INVALID CommandType = iota
	COMMAND_ADDRESS
	COMMAND_COMPUTE
	COMMAND_LABEL
)

const (
	FIELD_DEST FieldType = iota
	FIELD_COMP
	FIELD_JUMP
)

const (
	// First address handed out to variables
	VARIABLE_BASE uint16 = 16

	// Exclusive upper bound of any address an A-instruction can load
	ADDRESS_LIMIT = 1 << 15

	// Exclusive upper bound of the instruction memory
	PROGRAM_LIMIT = 1 << 15
)

// Prefix bits of a C-instruction
const COMPUTE_PREFIX uint16 = 0b111 << 13

// Mnemonic used in place of an omitted dest or jump field
const NULL_MNEMONIC = "null"

// Predefined symbols. Several names intentionally share an address.
var predefined = [...]struct {
	Name string
	Addr uint16
}{
	{"SP", 0},
	{"LCL", 1},
	{"ARG", 2},
	{"THIS", 3},
	{"THAT", 4},
	{"R0", 0},
	{"R1", 1},
	{"R2", 2},
	{"R3", 3},
	{"R4", 4},
	{"R5", 5},
	{"R6", 6},
	{"R7", 7},
	{"R8", 8},
	{"R9", 9},
	{"R10", 10},
	{"R11", 11},
	{"R12", 12},
	{"R13", 13},
	{"R14", 14},
	{"R15", 15},
	{"SCREEN", 16384},
	{"KBD", 24576},
}
