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

// Package instance defines those parts of the emulation that might change
// from instance to instance of the Core type, but is not actually the Core
// itself.
//
// Particularly useful when running more than one instance of the emulation
// in parallel, for example a headless regression instance alongside an
// interactive one.
package instance

import (
	"github.com/agnusgo/chipset/assert"
	"github.com/agnusgo/chipset/prefs"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the Core type, but is not actually the Core
// itself.
type Instance struct {
	Prefs *prefs.Preferences

	// GoroutineLock enforces the single-thread contract: every call into
	// the core's TickDMA must come from the same goroutine.
	GoroutineLock assert.GoroutineLock
}

// NewInstance is the preferred method of initialisation for the Instance
// type. filename is the preferences file this instance persists to; it
// must not be empty, and an empty name returns the error from
// prefs.NewPreferences.
func NewInstance(filename string) (*Instance, error) {
	ins := &Instance{}

	var err error
	ins.Prefs, err = prefs.NewPreferences(filename)
	if err != nil {
		return nil, err
	}

	return ins, nil
}

// Normalise ensures the emulation instance is in a known default state.
// Useful for regression testing where the initial state must be the same
// for every run of the test.
func (ins *Instance) Normalise() {
	ins.Prefs.SetDefaults()
	ins.GoroutineLock.Reset()
}
