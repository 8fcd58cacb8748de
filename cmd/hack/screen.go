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
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/lassandro/gohack/pkg/machine"
)

var specialKeys = []struct {
	Key  ebiten.Key
	Code uint16
}{
	{ebiten.KeyEnter, machine.KEY_NEWLINE},
	{ebiten.KeyBackspace, machine.KEY_BACKSPACE},
	{ebiten.KeyArrowLeft, machine.KEY_LEFT},
	{ebiten.KeyArrowUp, machine.KEY_UP},
	{ebiten.KeyArrowRight, machine.KEY_RIGHT},
	{ebiten.KeyArrowDown, machine.KEY_DOWN},
	{ebiten.KeyHome, machine.KEY_HOME},
	{ebiten.KeyEnd, machine.KEY_END},
	{ebiten.KeyPageUp, machine.KEY_PAGEUP},
	{ebiten.KeyPageDown, machine.KEY_PAGEDOWN},
	{ebiten.KeyInsert, machine.KEY_INSERT},
	{ebiten.KeyDelete, machine.KEY_DELETE},
	{ebiten.KeyEscape, machine.KEY_ESCAPE},
	{ebiten.KeyF1, machine.KEY_F1},
	{ebiten.KeyF2, machine.KEY_F1 + 1},
	{ebiten.KeyF3, machine.KEY_F1 + 2},
	{ebiten.KeyF4, machine.KEY_F1 + 3},
	{ebiten.KeyF5, machine.KEY_F1 + 4},
	{ebiten.KeyF6, machine.KEY_F1 + 5},
	{ebiten.KeyF7, machine.KEY_F1 + 6},
	{ebiten.KeyF8, machine.KEY_F1 + 7},
	{ebiten.KeyF9, machine.KEY_F1 + 8},
	{ebiten.KeyF10, machine.KEY_F1 + 9},
	{ebiten.KeyF11, machine.KEY_F1 + 10},
	{ebiten.KeyF12, machine.KEY_F1 + 11},
}

type display struct {
	mc     *machine.Machine
	speed  int
	key    uint16
	image  *ebiten.Image
	pixels []byte
}

func (d *display) Key() uint16 {
	return d.key
}

// The keyboard register holds the key currently down, so a typed character
// stays latched until every key is released.
func (d *display) scanKeyboard() {
	for _, special := range specialKeys {
		if ebiten.IsKeyPressed(special.Key) {
			d.key = special.Code
			return
		}
	}

	if chars := ebiten.AppendInputChars(nil); len(chars) > 0 {
		if char := chars[len(chars)-1]; char < 128 {
			d.key = uint16(char)
			return
		}
	}

	if len(inpututil.AppendPressedKeys(nil)) == 0 || d.key >= 128 {
		d.key = 0
	}
}

func (d *display) Update() error {
	d.scanKeyboard()

	for i := 0; i < d.speed && !d.mc.Halted(); i++ {
		d.mc.Step()
	}

	return nil
}

func (d *display) Draw(screen *ebiten.Image) {
	if d.image == nil {
		d.image = ebiten.NewImage(machine.SCREEN_WIDTH, machine.SCREEN_HEIGHT)
		d.pixels = make([]byte, machine.SCREEN_WIDTH*machine.SCREEN_HEIGHT*4)
	}

	d.mc.State.Framebuffer(d.pixels)
	d.image.WritePixels(d.pixels)

	screen.DrawImage(d.image, &ebiten.DrawImageOptions{})
}

func (d *display) Layout(outsideWidth, outsideHeight int) (int, int) {
	return machine.SCREEN_WIDTH, machine.SCREEN_HEIGHT
}

func runDisplay(mc *machine.Machine, title string, speed int) error {
	d := &display{mc: mc, speed: speed}
	mc.Devices = &machine.DeviceHandler{Keyboard: d}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(machine.SCREEN_WIDTH*2, machine.SCREEN_HEIGHT*2)
	ebiten.SetWindowTitle("Hack - " + title)

	return ebiten.RunGame(d)
}
