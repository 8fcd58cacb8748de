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

package encoding

import (
	"errors"
	"strconv"
	"strings"
)

// Width of a Hack machine word in bits
const WordBits = 16

// Width of an A-instruction operand in bits
const AddressBits = 15

// Decodes a hexidecimal string in the formats: 0xFFFF, xFFFF, 0xFF, xFF
func DecodeHex(s string) (uint16, error) {
	if i := strings.IndexAny(s, "xX"); i == 0 {
		s = "0" + s
	} else if i == -1 || i != 1 {
		return 0, errors.New("Invalid hex string")
	}

	result, err := strconv.ParseUint(s, 0, 16)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes a base-10 string in the formats: #123, 123, -123
func DecodeInt(s string) (int16, error) {
	if i := strings.Index(s, "#"); i == 0 {
		s = s[1:]
	}

	result, err := strconv.ParseInt(s, 10, 16)

	if err != nil {
		return 0, err
	}

	return int16(result), nil
}

// Decodes either a hex or a base-10 string into a machine word. Negative
// base-10 values are stored in two's complement.
func DecodeValue(s string) (uint16, error) {
	if strings.ContainsAny(s, "xX") {
		return DecodeHex(s)
	}

	result, err := DecodeInt(s)

	if err != nil {
		return 0, err
	}

	return uint16(result), nil
}

// Decodes an A-instruction literal. Only plain non-negative base-10 digits
// are accepted and the value must fit in 15 bits.
func DecodeAddress(s string) (uint16, error) {
	if len(s) == 0 {
		return 0, errors.New("Empty address literal")
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errors.New("Invalid address literal")
		}
	}

	result, err := strconv.ParseUint(s, 10, AddressBits)

	if err != nil {
		return 0, errors.New("Address literal exceeds 15 bits")
	}

	return uint16(result), nil
}

// Encodes a word as a zero-padded string of 16 binary digits
func EncodeWord(value uint16) string {
	var builder strings.Builder
	builder.Grow(WordBits)

	for i := WordBits - 1; i >= 0; i-- {
		if (value>>uint(i))&0x1 == 1 {
			builder.WriteByte('1')
		} else {
			builder.WriteByte('0')
		}
	}

	return builder.String()
}

// Decodes a string of exactly 16 binary digits
func DecodeWord(s string) (uint16, error) {
	if len(s) != WordBits {
		return 0, errors.New("Invalid word length")
	}

	var result uint16

	for i := 0; i < len(s); i++ {
		result <<= 1

		switch s[i] {
		case '0':
		case '1':
			result |= 0x1
		default:
			return 0, errors.New("Invalid binary digit")
		}
	}

	return result, nil
}
