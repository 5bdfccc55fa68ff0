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

// Package clocks defines the constant values that define the speed of the
// Amiga master clock, in MHz, for the two video standards the chipset core
// supports.
//
// The master clock is the unit every other rate in the system is derived
// from: one DMA cycle, the unit of slot arbitration, is eight master
// cycles, and the core renders four pixels per DMA cycle (one pixel per
// two master cycles).
package clocks

const (
	PAL  = 7.09379
	NTSC = 7.15909
)

// DMA is the DMA (slot-arbitration) cycle rate: one eighth of the master
// clock.
const (
	PAL_DMA  = PAL / MasterCyclesPerDMACycle
	NTSC_DMA = NTSC / MasterCyclesPerDMACycle
)

// MasterCyclesPerDMACycle is the fixed ratio between master clock ticks and
// DMA cycles, true for both video standards.
const MasterCyclesPerDMACycle = 8
