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

package assembler_test

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/lassandro/gohack/pkg/assembler"
)

func TestPredefined(t *testing.T) {
	symbols := assembler.NewSymbolTable()

	want := map[string]uint16{
		"SP": 0, "LCL": 1, "ARG": 2, "THIS": 3, "THAT": 4,
		"SCREEN": 16384, "KBD": 24576,
	}

	for i := 0; i < 16; i++ {
		want["R"+strconv.Itoa(i)] = uint16(i)
	}

	if have := symbols.Entries(); !reflect.DeepEqual(have, want) {
		t.Fatalf("Predefined symbols mismatch\nwant:%v\nhave:%v", want, have)
	}

	if have := symbols.Aliases(3); !reflect.DeepEqual(have, []string{"THIS", "R3"}) {
		t.Fatalf("Alias mismatch\nwant:[THIS R3]\nhave:%v", have)
	}
}

func TestRegisterLabel(t *testing.T) {
	symbols := assembler.NewSymbolTable()

	if err := symbols.RegisterLabel("LOOP", 4); err != nil {
		t.Fatal(err)
	}

	if !symbols.Contains("LOOP") || symbols.AddressOf("LOOP") != 4 {
		t.Fatalf("LOOP not bound to 4")
	}

	// Sharing an address with predefined names is only reported
	if have := symbols.Aliases(4); !reflect.DeepEqual(have, []string{"THAT", "R4", "LOOP"}) {
		t.Fatalf("Alias mismatch\nwant:[THAT R4 LOOP]\nhave:%v", have)
	}

	for _, name := range []string{"LOOP", "R1", "SCREEN"} {
		err := symbols.RegisterLabel(name, 4)

		if _, ok := err.(*assembler.DuplicateSymbolError); !ok {
			t.Fatalf(
				"RegisterLabel(%q) produced error of incorrect type"+
					"\nwant:*assembler.DuplicateSymbolError\nhave:%T",
				name,
				err,
			)
		}
	}

	if symbols.AddressOf("R1") != 1 {
		t.Fatalf("Failed registration mutated R1")
	}
}

func TestAllocateVariable(t *testing.T) {
	symbols := assembler.NewSymbolTable()

	if err := symbols.RegisterLabel("L17", 17); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		Name string
		Addr uint16
	}{
		{"a", 16},
		{"b", 18},
		{"c", 19},
	}

	for _, test := range tests {
		addr, err := symbols.AllocateVariable(test.Name)

		if err != nil {
			t.Fatal(err)
		}

		if addr != test.Addr {
			t.Fatalf(
				"Variable address mismatch\nwant:%d (%s)\nhave:%d",
				test.Addr,
				test.Name,
				addr,
			)
		}
	}

	if _, err := symbols.AllocateVariable("a"); err == nil {
		t.Fatal("Reallocating a variable succeeded")
	} else if _, ok := err.(*assembler.DuplicateSymbolError); !ok {
		t.Fatalf("want:*assembler.DuplicateSymbolError\nhave:%T", err)
	}

	if _, err := symbols.AllocateVariable("KBD"); err == nil {
		t.Fatal("Allocating a predefined symbol succeeded")
	}
}

func TestAllocateVariableOverflow(t *testing.T) {
	symbols := assembler.NewSymbolTable()

	// 16..32767 minus SCREEN and KBD
	const capacity = assembler.ADDRESS_LIMIT - 16 - 2

	for i := 0; i < capacity; i++ {
		addr, err := symbols.AllocateVariable("v" + strconv.Itoa(i))

		if err != nil {
			t.Fatalf("Allocation %d failed: %s", i, err)
		}

		if addr == 16384 || addr == 24576 {
			t.Fatalf("Variable v%d reused predefined address %d", i, addr)
		}
	}

	_, err := symbols.AllocateVariable("overflow")

	if _, ok := err.(*assembler.SymbolOverflowError); !ok {
		t.Fatalf("want:*assembler.SymbolOverflowError\nhave:%T", err)
	}
}
