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

package main

import (
	"encoding/gob"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lassandro/gohack/pkg/assembler"
)

func resetFlags() {
	debugvar = false
	binaryvar = false
	symbolsvar = false
	outvar = ""
}

func TestOutputName(t *testing.T) {
	defer resetFlags()

	tests := []struct {
		Input  string
		Binary bool
		Want   string
	}{
		{"Max.asm", false, "Max.hack"},
		{"Max.asm", true, "Max.bin"},
		{"prog", false, "prog.hack"},
		{"", false, "out.hack"},
	}

	for _, test := range tests {
		binaryvar = test.Binary

		if have := outputName(test.Input); have != test.Want {
			t.Errorf(
				"Output name mismatch\nwant:%s (%s)\nhave:%s",
				test.Want,
				test.Input,
				have,
			)
		}
	}
}

func TestAssembleFile(t *testing.T) {
	defer resetFlags()

	dir := t.TempDir()
	source := filepath.Join(dir, "Loop.asm")

	err := os.WriteFile(source, []byte("// loop\n(LOOP)\n  @LOOP\n  0;JMP\n"), 0666)

	if err != nil {
		t.Fatal(err)
	}

	outvar = filepath.Join(dir, "Loop.hack")
	debugvar = true

	if code := hackasm([]string{source}); code != 0 {
		t.Fatalf("Exit status mismatch\nwant:0\nhave:%d", code)
	}

	have, err := os.ReadFile(outvar)

	if err != nil {
		t.Fatal(err)
	}

	want := "0000000000000000\n1110101010000111"

	if string(have) != want {
		t.Fatalf("Output mismatch\nwant:%q\nhave:%q", want, have)
	}

	file, err := os.Open(filepath.Join(dir, "Loop.hackdb"))

	if err != nil {
		t.Fatal(err)
	}

	defer file.Close()

	var symtable assembler.SymTable

	if err := gob.NewDecoder(file).Decode(&symtable); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(symtable.Labels[0], []string{"LOOP"}) || symtable.Lines[1] != 4 {
		t.Fatalf("Symbol table mismatch\nhave:%+v", symtable)
	}
}

func TestAssembleFileError(t *testing.T) {
	defer resetFlags()

	dir := t.TempDir()
	source := filepath.Join(dir, "Bad.asm")

	if err := os.WriteFile(source, []byte("@0\nD=Q\n"), 0666); err != nil {
		t.Fatal(err)
	}

	outvar = filepath.Join(dir, "Bad.hack")

	if code := hackasm([]string{source}); code != 1 {
		t.Fatalf("Exit status mismatch\nwant:1\nhave:%d", code)
	}

	if _, err := os.Stat(outvar); !os.IsNotExist(err) {
		t.Fatal("Output written for a failed translation")
	}
}
