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
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/lassandro/gohack/pkg/assembler"
	"github.com/lassandro/gohack/pkg/encoding"
	"github.com/lassandro/gohack/pkg/machine"
)

var cyclesvar uint
var setvar []string
var dumpvar string
var displayvar bool
var speedvar int

var status int

var rootCmd = &cobra.Command{
	Use:   "hack [--cycles n] [--set name=value]... [--dump lo:hi] [--display] filename",
	Short: "Runs a Hack machine program",
	Long: `hack loads a .hack (binary text) or .bin (big-endian words) program into
the Hack machine and runs it until it parks in its end-of-program loop or the
cycle limit is reached. Symbols from a neighbouring .hackdb file, written by
hack-asm -debug, may be used wherever an address is expected.`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		flag.CommandLine.Parse(nil)
	},
	Run: func(cmd *cobra.Command, args []string) {
		status = hack(args[0])
	},
}

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	log.SetOutput(os.Stderr)
}

func init() {
	flag.Set("logtostderr", "true")

	flags := rootCmd.Flags()
	flags.UintVar(
		&cyclesvar, "cycles", 1000000,
		"Maximum number of instructions to execute",
	)
	flags.StringArrayVar(
		&setvar, "set", nil,
		"Presets a memory cell before running, e.g. R0=3 or 0x4000=-1",
	)
	flags.StringVar(
		&dumpvar, "dump", "",
		"Prints the memory range lo:hi (inclusive) after running",
	)
	flags.BoolVar(
		&displayvar, "display", false,
		"Opens a window showing the screen and feeding the keyboard",
	)
	flags.IntVar(
		&speedvar, "speed", 20000,
		"Instructions executed per frame with -display",
	)

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func loadSymTable(program string) *assembler.SymTable {
	filename := strings.TrimSuffix(program, filepath.Ext(program)) + ".hackdb"

	file, err := os.Open(filename)

	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		log.Println("Error loading symbol file")
		log.Println(err)
		return nil
	}

	defer file.Close()

	var symtable assembler.SymTable

	if err := gob.NewDecoder(file).Decode(&symtable); err != nil {
		log.Println("Error loading symbol file")
		log.Println(err)
		return nil
	}

	return &symtable
}

func parseRange(s string, symtable *assembler.SymTable) (uint16, uint16, error) {
	lo, hi, found := strings.Cut(s, ":")

	if !found {
		hi = lo
	}

	from, err := assembler.ResolveDataAddress(lo, symtable)

	if err != nil {
		return 0, 0, err
	}

	to, err := assembler.ResolveDataAddress(hi, symtable)

	if err != nil {
		return 0, 0, err
	}

	if to < from {
		return 0, 0, fmt.Errorf("Invalid range '%s'", s)
	}

	return from, to - from + 1, nil
}

func run(mc *machine.Machine, symtable *assembler.SymTable, limit uint) uint {
	if !glog.V(2) || symtable == nil {
		return mc.Run(limit)
	}

	var cycles uint

	for cycles < limit && !mc.Halted() {
		if line, exists := symtable.Lines[mc.State.Program]; exists {
			glog.Infof("%#04x line %d", mc.State.Program, line)
		}

		mc.Step()
		cycles++
	}

	return cycles
}

func hack(filename string) int {
	file, err := os.Open(filename)

	if err != nil {
		log.Println(err)
		return 1
	}

	defer file.Close()

	var mc machine.Machine

	if strings.EqualFold(filepath.Ext(filename), ".bin") {
		err = mc.LoadBin(file)
	} else {
		err = mc.LoadHack(file)
	}

	if err != nil {
		log.Println(err)
		return 1
	}

	symtable := loadSymTable(filename)

	for _, assignment := range setvar {
		name, value, found := strings.Cut(assignment, "=")

		if !found {
			log.Printf("Invalid assignment '%s'", assignment)
			return 1
		}

		addr, err := assembler.ResolveDataAddress(name, symtable)

		if err != nil {
			log.Println(err)
			return 1
		}

		word, err := encoding.DecodeValue(value)

		if err != nil {
			log.Printf("Invalid value '%s'", value)
			return 1
		}

		mc.State.Memory[addr] = word
	}

	if displayvar {
		if err := runDisplay(&mc, filepath.Base(filename), speedvar); err != nil {
			log.Println(err)
			return 1
		}
	} else {
		cycles := run(&mc, symtable, cyclesvar)
		where := fmt.Sprintf("%#04x", mc.State.Program)

		if symtable != nil {
			if labels, exists := symtable.Labels[mc.State.Program]; exists {
				where += " (" + strings.Join(labels, ", ") + ")"
			}
		}

		if mc.Halted() {
			log.Printf("Halted at %s after %d cycles", where, cycles)
		} else {
			log.Printf("Stopped at %s after %d cycles", where, cycles)
		}
	}

	if dumpvar != "" {
		addr, count, err := parseRange(dumpvar, symtable)

		if err != nil {
			log.Println(err)
			return 1
		}

		printMem(os.Stdout, &mc.State, addr, count)
	}

	return 0
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}

	os.Exit(status)
}
