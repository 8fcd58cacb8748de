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

// Encodes a dest mnemonic as its 3-bit d1 d2 d3 field (A, D, M). Letters may
// appear in any order but at most once each.
func encodeDest(mnemonic string) (uint16, error) {
	const A_BIT = 0b100
	const D_BIT = 0b010
	const M_BIT = 0b001

	if mnemonic == NULL_MNEMONIC {
		return 0, nil
	}

	if len(mnemonic) == 0 || len(mnemonic) > 3 {
		return 0, &InvalidMnemonicError{Field: FIELD_DEST, Received: mnemonic}
	}

	var bits uint16

	for i := 0; i < len(mnemonic); i++ {
		var bit uint16

		switch mnemonic[i] {
		case 'A':
			bit = A_BIT
		case 'D':
			bit = D_BIT
		case 'M':
			bit = M_BIT
		}

		if bit == 0 || bits&bit != 0 {
			return 0, &InvalidMnemonicError{Field: FIELD_DEST, Received: mnemonic}
		}

		bits |= bit
	}

	return bits, nil
}

// Encodes a jump mnemonic as its 3-bit j1 j2 j3 field (<0, =0, >0)
func encodeJump(mnemonic string) (uint16, error) {
	switch mnemonic {
	case NULL_MNEMONIC:
		return 0b000, nil
	case "JGT":
		return 0b001, nil
	case "JEQ":
		return 0b010, nil
	case "JGE":
		return 0b011, nil
	case "JLT":
		return 0b100, nil
	case "JNE":
		return 0b101, nil
	case "JLE":
		return 0b110, nil
	case "JMP":
		return 0b111, nil
	}

	return 0, &InvalidMnemonicError{Field: FIELD_JUMP, Received: mnemonic}
}

// Encodes a comp mnemonic as its 7-bit a c1..c6 field. The a bit selects M
// over A as the ALU's second operand.
func encodeComp(mnemonic string) (uint16, error) {
	switch mnemonic {
	// a=0
	case "0":
		return 0b0_101010, nil
	case "1":
		return 0b0_111111, nil
	case "-1":
		return 0b0_111010, nil
	case "D":
		return 0b0_001100, nil
	case "A":
		return 0b0_110000, nil
	case "!D":
		return 0b0_001101, nil
	case "!A":
		return 0b0_110001, nil
	case "-D":
		return 0b0_001111, nil
	case "-A":
		return 0b0_110011, nil
	case "D+1":
		return 0b0_011111, nil
	case "A+1":
		return 0b0_110111, nil
	case "D-1":
		return 0b0_001110, nil
	case "A-1":
		return 0b0_110010, nil
	case "D+A":
		return 0b0_000010, nil
	case "D-A":
		return 0b0_010011, nil
	case "A-D":
		return 0b0_000111, nil
	case "D&A":
		return 0b0_000000, nil
	case "D|A":
		return 0b0_010101, nil

	// a=1
	case "M":
		return 0b1_110000, nil
	case "!M":
		return 0b1_110001, nil
	case "-M":
		return 0b1_110011, nil
	case "M+1":
		return 0b1_110111, nil
	case "M-1":
		return 0b1_110010, nil
	case "D+M":
		return 0b1_000010, nil
	case "D-M":
		return 0b1_010011, nil
	case "M-D":
		return 0b1_000111, nil
	case "D&M":
		return 0b1_000000, nil
	case "D|M":
		return 0b1_010101, nil
	}

	return 0, &InvalidMnemonicError{Field: FIELD_COMP, Received: mnemonic}
}

// C    |1 1 1|a|c1 c2 c3 c4 c5 c6|d1 d2 d3|j1 j2 j3| Compute
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func encodeCompute(command *Command) (uint16, error) {
	comp, err := encodeComp(command.Comp)

	if err != nil {
		return 0, err
	}

	dest, err := encodeDest(command.Dest)

	if err != nil {
		return 0, err
	}

	jump, err := encodeJump(command.Jump)

	if err != nil {
		return 0, err
	}

	return COMPUTE_PREFIX | comp<<6 | dest<<3 | jump, nil
}

// A    |0|value15                            | Address
// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
func encodeAddress(command *Command, symbols *SymbolTable) (uint16, error) {
	if isLiteral(command.Symbol) {
		// Already validated by ParseCommand
		addr, err := decodeLiteral(command.Symbol)

		if err != nil {
			return 0, err
		}

		return addr, nil
	}

	if symbols.Contains(command.Symbol) {
		return symbols.AddressOf(command.Symbol), nil
	}

	return symbols.AllocateVariable(command.Symbol)
}
