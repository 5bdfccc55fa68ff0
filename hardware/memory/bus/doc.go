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

// Package bus defines the access patterns the chipset core and its external
// collaborators use to reach custom chip registers and chip RAM. The CPU
// reaches registers through CPUBus; the register dispatch table itself is
// reached through ChipBus, which queues writes onto the register-change
// queue instead of applying them synchronously; chip RAM is reached through
// ChipRAMBus, which is aware of the current bus owner.
//
// DebuggerBus and NamedRegisterBus are for the exclusive use of debuggers
// and diagnostics tooling and sit outside the chipset's own read/write
// path.
package bus
