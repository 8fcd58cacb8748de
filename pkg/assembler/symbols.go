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

import (
	"github.com/golang/glog"
)

// Maps symbol names to addresses. Predefined names may share an address;
// labels and variables never share a name with anything else.
type SymbolTable struct {
	entries map[string]uint16
	owners  map[uint16][]string
	next    uint32
}

func NewSymbolTable() *SymbolTable {
	st := &SymbolTable{
		entries: make(map[string]uint16, len(predefined)),
		owners:  make(map[uint16][]string, len(predefined)),
		next:    uint32(VARIABLE_BASE),
	}

	for _, symbol := range predefined {
		st.entries[symbol.Name] = symbol.Addr
		st.owners[symbol.Addr] = append(st.owners[symbol.Addr], symbol.Name)
	}

	return st
}

func (st *SymbolTable) Contains(name string) bool {
	_, exists := st.entries[name]
	return exists
}

// Returns the address bound to name. Callers check Contains first; an
// unknown name yields 0.
func (st *SymbolTable) AddressOf(name string) uint16 {
	return st.entries[name]
}

// Returns every name bound to addr in the order they were added
func (st *SymbolTable) Aliases(addr uint16) []string {
	return append([]string(nil), st.owners[addr]...)
}

// Returns a copy of every binding
func (st *SymbolTable) Entries() map[string]uint16 {
	result := make(map[string]uint16, len(st.entries))

	for name, addr := range st.entries {
		result[name] = addr
	}

	return result
}

func (st *SymbolTable) RegisterLabel(name string, addr uint16) error {
	if existing, exists := st.entries[name]; exists {
		return &DuplicateSymbolError{Received: name, Addr: existing}
	}

	st.bind(name, addr)
	glog.V(2).Infof("label %s = %d", name, addr)

	return nil
}

func (st *SymbolTable) AllocateVariable(name string) (uint16, error) {
	if existing, exists := st.entries[name]; exists {
		return 0, &DuplicateSymbolError{Received: name, Addr: existing}
	}

	for st.next < ADDRESS_LIMIT && len(st.owners[uint16(st.next)]) > 0 {
		st.next++
	}

	if st.next >= ADDRESS_LIMIT {
		return 0, &SymbolOverflowError{Received: name}
	}

	addr := uint16(st.next)
	st.next++

	st.bind(name, addr)
	glog.V(2).Infof("variable %s = %d", name, addr)

	return addr, nil
}

func (st *SymbolTable) bind(name string, addr uint16) {
	if others := st.owners[addr]; len(others) > 0 {
		glog.V(1).Infof(
			"symbol %s shares address %d with %v", name, addr, others,
		)
	}

	st.entries[name] = addr
	st.owners[addr] = append(st.owners[addr], name)
}
