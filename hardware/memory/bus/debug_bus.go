// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package bus defines the memory bus concept. For an explanation see the
// package documentation.
package bus

// NamedRegisterBus lets a debugger or diagnostics dump address a custom
// chip register by its canonical name ("DMACON", "COP1LC", ...) instead of
// its bus address, for use in tooling where the address table is an
// implementation detail.
type NamedRegisterBus interface {
	PeekRegister(name string) (uint16, error)
	PokeRegister(name string, value uint16) error
}
