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

package machine

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/golang/glog"

	"github.com/lassandro/gohack/pkg/encoding"
)

// Clears registers and data memory. The loaded program is kept.
func (mc *MachineState) Reset() {
	mc.A = 0
	mc.D = 0
	mc.Program = 0

	for i := range mc.Memory {
		mc.Memory[i] = 0x0000
	}
}

func (mc *MachineState) clearROM() {
	for i := range mc.ROM {
		mc.ROM[i] = 0x0000
	}
}

// Loads a program written as one 16-digit binary word per line
func (mc *Machine) LoadHack(reader io.Reader) error {
	mc.State.Reset()
	mc.State.clearROM()

	scanner := bufio.NewScanner(reader)
	index := 0
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		if len(text) == 0 {
			continue
		}

		if index >= ROM_SIZE {
			return errors.New("Program exceeds ROM size")
		}

		word, err := encoding.DecodeWord(text)

		if err != nil {
			return fmt.Errorf("Line %d: %s", line, err)
		}

		mc.State.ROM[index] = word
		index++
	}

	return scanner.Err()
}

// Loads a program written as big-endian words
func (mc *Machine) LoadBin(reader io.Reader) error {
	mc.State.Reset()
	mc.State.clearROM()

	scratch := make([]byte, 2)
	index := 0

	for {
		_, err := io.ReadFull(reader, scratch)

		if err == io.EOF {
			return nil
		} else if err == io.ErrUnexpectedEOF {
			return errors.New("Error reading binary: odd number of bytes")
		} else if err != nil {
			return err
		}

		if index >= ROM_SIZE {
			return errors.New("Program exceeds ROM size")
		}

		mc.State.ROM[index] = binary.BigEndian.Uint16(scratch)
		index++
	}
}

func (mc *Machine) read(addr uint16) uint16 {
	addr &= MEMORY_SIZE - 1

	if addr == DEV_KBD && mc.Devices != nil && mc.Devices.Keyboard != nil {
		mc.State.Memory[DEV_KBD] = mc.Devices.Keyboard.Key()
	}

	return mc.State.Memory[addr]
}

func (mc *Machine) write(addr uint16, value uint16) {
	addr &= MEMORY_SIZE - 1

	// Keyboard register is read-only
	if addr != DEV_KBD {
		mc.State.Memory[addr] = value
	}
}

func compute(instr, x, y uint16) uint16 {
	if instr&COMP_ZX != 0 {
		x = 0
	}

	if instr&COMP_NX != 0 {
		x = ^x
	}

	if instr&COMP_ZY != 0 {
		y = 0
	}

	if instr&COMP_NY != 0 {
		y = ^y
	}

	var out uint16

	if instr&COMP_F != 0 {
		out = x + y
	} else {
		out = x & y
	}

	if instr&COMP_NO != 0 {
		out = ^out
	}

	return out
}

func jumps(instr, out uint16) bool {
	switch {
	case out == 0:
		return instr&JUMP_EQ != 0
	case out>>15 == 1:
		return instr&JUMP_LT != 0
	default:
		return instr&JUMP_GT != 0
	}
}

func (mc *Machine) Step() {
	state := &mc.State
	pc := state.Program & (ROM_SIZE - 1)
	instr := state.ROM[pc]

	if glog.V(3) {
		glog.Infof(
			"pc=%#04x instr=%s A=%#04x D=%#04x",
			pc, encoding.EncodeWord(instr), state.A, state.D,
		)
	}

	// A    |0|value15                            | Address
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	if instr&INSTR_COMPUTE == 0 {
		state.A = instr
		state.Program = (pc + 1) & (ROM_SIZE - 1)
		return
	}

	// C    |1 1 1|a|c1 c2 c3 c4 c5 c6|d1 d2 d3|j1 j2 j3| Compute
	// ---- [ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ _ ]
	addr := state.A
	y := state.A

	if instr&COMP_A != 0 {
		y = mc.read(addr)
	}

	out := compute(instr, state.D, y)
	next := pc + 1

	if jumps(instr, out) {
		next = addr
	}

	if instr&DEST_M != 0 {
		mc.write(addr, out)
	}

	if instr&DEST_A != 0 {
		state.A = out
	}

	if instr&DEST_D != 0 {
		state.D = out
	}

	state.Program = next & (ROM_SIZE - 1)
}

func isLoopJump(instr uint16) bool {
	const jumpAll = JUMP_LT | JUMP_EQ | JUMP_GT
	const destAny = DEST_A | DEST_D | DEST_M

	return instr&INSTR_COMPUTE != 0 &&
		instr&destAny == 0 &&
		instr&jumpAll == jumpAll
}

// Reports whether the machine is parked in the conventional end-of-program
// loop, `(END) @END 0;JMP`, or in a jump to itself.
func (mc *Machine) Halted() bool {
	state := &mc.State
	pc := state.Program & (ROM_SIZE - 1)
	instr := state.ROM[pc]

	if instr&INSTR_COMPUTE == 0 {
		return instr == pc && isLoopJump(state.ROM[(pc+1)&(ROM_SIZE-1)])
	}

	if !isLoopJump(instr) {
		return false
	}

	if state.A == pc {
		return true
	}

	return pc > 0 && state.A == pc-1 && state.ROM[pc-1] == pc-1
}

// Steps until the machine halts or limit instructions have executed.
// Returns the number of instructions executed.
func (mc *Machine) Run(limit uint) uint {
	var cycles uint

	for cycles < limit && !mc.Halted() {
		mc.Step()
		cycles++
	}

	return cycles
}

// Renders SCREEN memory into pix as SCREEN_WIDTH x SCREEN_HEIGHT RGBA
// pixels. Set bits are black. The least significant bit of each word is
// the leftmost pixel.
func (mc *MachineState) Framebuffer(pix []byte) {
	if len(pix) < SCREEN_WIDTH*SCREEN_HEIGHT*4 {
		panic("Framebuffer too small")
	}

	for y := 0; y < SCREEN_HEIGHT; y++ {
		row := int(MEMSPACE_SCREEN) + y*SCREEN_PITCH

		for x := 0; x < SCREEN_WIDTH; x++ {
			word := mc.Memory[row+x/16]
			shade := byte(0xFF)

			if (word>>uint(x%16))&0x1 == 1 {
				shade = 0x00
			}

			offset := (y*SCREEN_WIDTH + x) * 4
			pix[offset+0] = shade
			pix[offset+1] = shade
			pix[offset+2] = shade
			pix[offset+3] = 0xFF
		}
	}
}
