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
	"fmt"
	"io"

	"github.com/lassandro/gohack/pkg/machine"
)

// Prints count words from addr, four to a row, each as hex and signed
// decimal. Zero words are dimmed.
func printMem(w io.Writer, mc *machine.MachineState, addr, count uint16) {
	for i := 0; i < int(count); i++ {
		cell := int(addr) + i

		if i == 0 {
			fmt.Fprintf(w, "\033[1m[%#04x]\033[0m ", cell)
		} else if i%4 == 0 {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "\033[1m[%#04x]\033[0m ", cell)
		}

		result := mc.Memory[cell]

		if result == 0 {
			fmt.Fprintf(w, "\033[1;30m%#04x %6d\033[0m ", result, 0)
		} else {
			fmt.Fprintf(w, "%#04x %6d ", result, int16(result))
		}
	}

	fmt.Fprintln(w)
}
