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

// Package beamclock tracks the raster beam's horizontal and vertical
// position against the master cycle counter, and the frame's long/short
// parity. It is the leaf of the core's data flow: the core (hardware/vcs)
// drives it one DMA cycle at a time and reacts to the HSYNC/VSYNC edges it
// reports.
package beamclock

import "github.com/agnusgo/chipset/hardware/clocks"

// HPOSCount is the number of DMA cycles in a scanline. The real hardware
// alternates 227/228 cycle lines to track the colour subcarrier; this core
// treats the line length as fixed so that startOfFrame()+DMA_CYCLES(pos)
// stays an exact multiply-add identity rather than a running sum over
// variable-length lines.
const HPOSCount = 227

// HPOSMax is the last valid column of a line, where BPL_EOL is pinned.
const HPOSMax = HPOSCount - 1

const (
	linesLong  = 313
	linesShort = 312
)

// Position identifies a single DMA cycle by its line and column.
type Position struct {
	V int
	H int
}

// BeamClock advances the raster position one DMA cycle at a time and
// reports HSYNC/VSYNC edges to whatever owns the line- and frame-level
// bookkeeping (the sequencer and display window rebuild on those edges).
type BeamClock struct {
	clock        int64
	pos          Position
	longFrame    bool
	interlace    bool
	startOfFrame int64

	onHSYNC func()
	onVSYNC func()
}

// NewBeamClock creates a BeamClock at the start of a long frame.
func NewBeamClock() *BeamClock {
	return &BeamClock{longFrame: true}
}

// OnHSYNC registers the callback invoked every time pos.H wraps to zero,
// after pos.V has been incremented.
func (b *BeamClock) OnHSYNC(fn func()) { b.onHSYNC = fn }

// OnVSYNC registers the callback invoked every time pos.V wraps to zero,
// after the long/short frame flag has been updated.
func (b *BeamClock) OnVSYNC(fn func()) { b.onVSYNC = fn }

// SetInterlace toggles whether VSYNC alternates the long/short frame flag.
// Non-interlace frames are always long.
func (b *BeamClock) SetInterlace(interlace bool) {
	b.interlace = interlace
	if !interlace {
		b.longFrame = true
	}
}

// Interlace reports the current interlace setting.
func (b *BeamClock) Interlace() bool { return b.interlace }

// Position returns the current beam position.
func (b *BeamClock) Position() Position { return b.pos }

// Clock returns the current master cycle count.
func (b *BeamClock) Clock() int64 { return b.clock }

// LongFrame reports whether the current frame has linesLong rasterlines.
func (b *BeamClock) LongFrame() bool { return b.longFrame }

// NumLines returns the number of rasterlines in the current frame.
func (b *BeamClock) NumLines() int {
	if b.longFrame {
		return linesLong
	}
	return linesShort
}

// StartOfFrame returns the master cycle at which the current frame began.
func (b *BeamClock) StartOfFrame() int64 { return b.startOfFrame }

// TickDMA advances the beam by one DMA cycle, firing HSYNC/VSYNC callbacks
// on wrap.
func (b *BeamClock) TickDMA() {
	b.clock += clocks.MasterCyclesPerDMACycle
	b.pos.H++

	if b.pos.H < HPOSCount {
		return
	}

	b.pos.H = 0
	b.pos.V++

	if b.onHSYNC != nil {
		b.onHSYNC()
	}

	if b.pos.V < b.NumLines() {
		return
	}

	b.pos.V = 0
	if b.interlace {
		b.longFrame = !b.longFrame
	}
	b.startOfFrame = b.clock

	if b.onVSYNC != nil {
		b.onVSYNC()
	}
}

// BeamToCycle returns the master cycle at which pos occurs within the
// current frame.
func (b *BeamClock) BeamToCycle(pos Position) int64 {
	return b.startOfFrame + int64(pos.V*HPOSCount+pos.H)*clocks.MasterCyclesPerDMACycle
}

// CycleToBeam returns the beam position corresponding to cycle, which must
// fall within the current frame.
func (b *BeamClock) CycleToBeam(cycle int64) Position {
	offset := (cycle - b.startOfFrame) / clocks.MasterCyclesPerDMACycle
	return Position{V: int(offset) / HPOSCount, H: int(offset) % HPOSCount}
}

// BelongsToCurrentFrame reports whether cycle falls within [startOfFrame,
// startOfFrame + frame length).
func (b *BeamClock) BelongsToCurrentFrame(cycle int64) bool {
	frameLen := int64(b.NumLines()*HPOSCount) * clocks.MasterCyclesPerDMACycle
	return cycle >= b.startOfFrame && cycle < b.startOfFrame+frameLen
}

// BelongsToPreviousFrame reports whether cycle precedes the current frame.
func (b *BeamClock) BelongsToPreviousFrame(cycle int64) bool {
	return cycle < b.startOfFrame
}

// BelongsToNextFrame reports whether cycle falls at or beyond the end of
// the current frame.
func (b *BeamClock) BelongsToNextFrame(cycle int64) bool {
	frameLen := int64(b.NumLines()*HPOSCount) * clocks.MasterCyclesPerDMACycle
	return cycle >= b.startOfFrame+frameLen
}
