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
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/lassandro/gohack/pkg/assembler"
)

var debugvar bool
var binaryvar bool
var symbolsvar bool
var outvar string

var colorvar bool
var status int

var rootCmd = &cobra.Command{
	Use:   "hack-asm [-debug] [-binary] [-o outfile] [filename]",
	Short: "Assembles Hack assembly into machine code",
	Long: `hack-asm translates a Hack assembly file into machine code: one line of
16 binary digits per instruction, or big-endian words with -binary. The
source is read from stdin when it is piped.`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// glog only honours its flags once the go flag set is parsed
		flag.CommandLine.Parse(nil)
	},
}

func init() {
	log.SetFlags(0)
	log.SetOutput(os.Stderr)
}

func init() {
	flag.Set("logtostderr", "true")

	// assigned here to break the rootCmd -> hackasm -> rootCmd init cycle
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		status = hackasm(args)
	}

	flags := rootCmd.Flags()
	flags.BoolVar(
		&debugvar, "debug", false,
		"Specifies whether to generate debugging information as a symbol "+
			"table. The table will use the output filename with extension "+
			"'.hackdb'",
	)
	flags.BoolVar(
		&binaryvar, "binary", false,
		"Writes big-endian 16-bit words instead of binary text",
	)
	flags.BoolVar(
		&symbolsvar, "symbols", false,
		"Dumps the final symbol table to stderr",
	)
	flags.StringVarP(
		&outvar, "out", "o", "",
		"Specifies a precise name for the output file, "+
			"overriding the default means of determining it",
	)

	rootCmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
}

func style(code string, text string) string {
	if !colorvar {
		return text
	}

	return "\033[" + code + "m" + text + "\033[0m"
}

func printError(err error, input io.ReadSeeker) {
	tokenErr, ok := err.(assembler.TokenError)

	if !ok {
		log.Println(err)
		return
	}

	cursor := tokenErr.GetPosition()

	if _, err := input.Seek(cursor.LineByte, io.SeekStart); err != nil {
		panic(err)
	}

	line, _ := bufio.NewReader(input).ReadString('\n')
	line = strings.TrimRight(line, "\r\n")

	size := int(cursor.Size)

	if size < 1 {
		size = 1
	}

	underlinefmt := fmt.Sprintf(
		"%% %ds%s",
		int(cursor.Byte-cursor.LineByte)+1,
		strings.Repeat("~", size-1),
	)

	log.Printf(
		"%s\n%s\n%s",
		err,
		line,
		style("31", fmt.Sprintf(underlinefmt, "^")),
	)
}

func outputName(filename string) string {
	ext := ".hack"

	if binaryvar {
		ext = ".bin"
	}

	if filename == "" {
		return "out" + ext
	}

	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ext
}

func hackasm(args []string) int {
	var infile string
	var source []byte
	var err error

	colorvar = isTerminal(os.Stderr.Fd())
	pp.ColoringEnabled = colorvar

	if stat, _ := os.Stdin.Stat(); len(args) == 0 && stat != nil && stat.Mode()&os.ModeCharDevice == 0 {
		log.SetPrefix(style("1", "<stdin>:"))

		if source, err = io.ReadAll(os.Stdin); err != nil {
			log.Println(err)
			return 1
		}
	} else {
		if len(args) != 1 {
			log.Println(rootCmd.Use)
			return 1
		}

		if stat, err := os.Stat(args[0]); err != nil {
			log.Println(err)
			return 1
		} else if stat.IsDir() {
			log.Printf("%s is not a valid Hack assembly file", args[0])
			return 1
		}

		if source, err = os.ReadFile(args[0]); err != nil {
			log.Println(err)
			return 1
		}

		infile = args[0]
		log.SetPrefix(style("1", filepath.Base(infile)+":"))
	}

	if outvar == "" && infile == "" {
		outvar = outputName("")
	} else if outvar == "" {
		outvar = outputName(filepath.Base(infile))
	}

	var symtable *assembler.SymTable

	if debugvar {
		abs := ""

		if infile != "" {
			if abs, err = filepath.Abs(infile); err != nil {
				log.Println(err)
				abs = ""
			}
		}

		symtable = assembler.NewSymTable(abs)
	}

	input := bytes.NewReader(source)
	symbols := assembler.NewSymbolTable()
	result, err := assembler.AssembleHackSource(input, symbols, symtable)

	if err != nil {
		printError(err, input)
		return 1
	}

	if symbolsvar {
		pp.Fprintf(os.Stderr, "Symbols: %v\n", symbols.Entries())
	}

	{
		buffer := new(bytes.Buffer)

		if binaryvar {
			err = binary.Write(buffer, binary.BigEndian, result)
		} else {
			_, err = buffer.WriteString(
				strings.Join(assembler.Format(result), "\n"),
			)
		}

		if err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}

		if err := os.WriteFile(outvar, buffer.Bytes(), 0666); err != nil {
			log.Println("Error writing output file")
			log.Println(err)
			return 1
		}
	}

	if debugvar {
		filename := filepath.Join(
			filepath.Dir(outvar),
			strings.TrimSuffix(filepath.Base(outvar), filepath.Ext(outvar))+".hackdb",
		)

		if file, err := os.Create(filename); err == nil {
			defer file.Close()

			if err := gob.NewEncoder(file).Encode(symtable); err != nil {
				log.Println("Error writing symbol table")
				log.Println(err)
				return 1
			}
		} else {
			log.Println("Error creating symbol table")
			log.Println(err)
			return 1
		}
	}

	return 0
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}

	os.Exit(status)
}
