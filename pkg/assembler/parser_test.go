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
	"strings"
	"testing"

	"github.com/lassandro/gohack/pkg/assembler"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		Input string
		Want  assembler.Command
	}{
		{"@17", assembler.Command{Type: assembler.COMMAND_ADDRESS, Symbol: "17"}},
		{"@sum", assembler.Command{Type: assembler.COMMAND_ADDRESS, Symbol: "sum"}},
		{"(LOOP)", assembler.Command{Type: assembler.COMMAND_LABEL, Symbol: "LOOP"}},
		{
			"AM=M-1;JNE",
			assembler.Command{
				Type: assembler.COMMAND_COMPUTE,
				Dest: "AM", Comp: "M-1", Jump: "JNE",
			},
		},
		{
			"D+1",
			assembler.Command{
				Type: assembler.COMMAND_COMPUTE,
				Dest: "null", Comp: "D+1", Jump: "null",
			},
		},
		{
			"0;JMP",
			assembler.Command{
				Type: assembler.COMMAND_COMPUTE,
				Dest: "null", Comp: "0", Jump: "JMP",
			},
		},
		{
			"A=D=M",
			assembler.Command{
				Type: assembler.COMMAND_COMPUTE,
				Dest: "A", Comp: "D=M", Jump: "null",
			},
		},
	}

	for _, test := range tests {
		t.Run(test.Input, func(t *testing.T) {
			have, err := assembler.ParseCommand(
				assembler.Line{Text: test.Input},
			)

			if err != nil {
				t.Fatal(err)
			}

			test.Want.Text = test.Input

			if have != test.Want {
				t.Fatalf("Command mismatch\nwant:%+v\nhave:%+v", test.Want, have)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	const source = "// comment\n" +
		"  @R0   // load\n" +
		"\n" +
		"\tD = M /* a */ + 1\n" +
		"/* one\n" +
		"   two */ (END)\n"

	lines, err := assembler.Normalize(strings.NewReader(source))

	if err != nil {
		t.Fatal(err)
	}

	want := []assembler.Line{
		{
			Text: "@R0",
			Position: assembler.Cursor{
				Line: 2, Column: 3, Byte: 13, Size: 3, LineByte: 11,
			},
		},
		{
			Text: "D=M+1",
			Position: assembler.Cursor{
				Line: 4, Column: 2, Byte: 29, Size: 17, LineByte: 28,
			},
		},
		{
			Text: "(END)",
			Position: assembler.Cursor{
				Line: 6, Column: 11, Byte: 64, Size: 5, LineByte: 54,
			},
		},
	}

	if len(lines) != len(want) {
		t.Fatalf("Line count mismatch\nwant:%d\nhave:%d", len(want), len(lines))
	}

	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf(
				"Line mismatch\nwant:%+v (want[%d])\nhave:%+v",
				want[i],
				i,
				lines[i],
			)
		}
	}
}
