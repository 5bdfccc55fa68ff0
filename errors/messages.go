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

package errors

// error messages used throughout the chipset core. grouped by the
// component that raises them.
const (
	// scheduler
	SchedulerInvariant = "scheduler error: %v"
	EventInThePast     = "scheduler error: event scheduled for a past cycle (%v)"
	UnknownSlot        = "scheduler error: unknown slot (%v)"

	// sequencer / display window
	DDFWindowError = "sequencer error: %v"

	// register queue
	RegisterDropped   = "register write dropped: %v"
	RegQueueSaturated = "register queue saturated: %v"

	// memory
	MemoryFault = "memory fault: %v"

	// configuration
	ConfigError      = "config error: %v"
	UnknownRevision  = "config error: unknown chipset revision (%v)"
	InvalidPalette   = "config error: invalid palette entry (%v)"
	OptionOutOfRange = "config error: option out of range (%v)"

	// state machine
	InvalidTransition = "state machine error: invalid transition %v -> %v"
	Halted            = "emulator halted: %v"

	// prefs persistence
	Prefs         = "prefs: %v"
	PrefsNoFile   = "prefs: no file (%s)"
	PrefsNotValid = "prefs: not a valid prefs file (%s)"
)
