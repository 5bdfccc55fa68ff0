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

// Package sequencer owns the per-line bitplane and DAS (disk/audio/sprite)
// DMA event tables: the precomputed ideal-event lookups indexed by
// resolution and active-plane/enable-bit count, the runtime arrays rebuilt
// against the current display-data-fetch window, and their jump-table
// companions.
package sequencer

import "github.com/agnusgo/chipset/hardware/agnus/beamclock"

// BplEvent identifies the bitplane DMA event due at a column, if any.
type BplEvent int

const (
	BplNone BplEvent = iota
	BplL1
	BplL2
	BplL3
	BplL4
	BplL5
	BplL6
	BplH1
	BplH2
	BplH3
	BplH4
	BplEOL
)

// DasEvent identifies the disk/audio/sprite DMA event due at a column, if
// any.
type DasEvent int

const (
	DasNone DasEvent = iota
	DasRefresh
	DasDisk0
	DasDisk1
	DasDisk2
	DasAudio0
	DasAudio1
	DasAudio2
	DasAudio3
	DasSprite0
	DasSprite1
	DasSprite2
	DasSprite3
	DasSprite4
	DasSprite5
	DasSprite6
	DasSprite7
	DasSDMA
)

// RefreshColumn and SDMAColumn are the fixed columns spec.md pins refresh
// and the sprite-DMA strobe to, independent of the DMACON enable mask.
const (
	RefreshColumn = 1
	SDMAColumn    = 0xDF
)

// bplPlanesLores and bplPlanesHires list the lores and hires bitplane
// events in fetch order, used to build the ideal per-cycle table for a
// given active-plane count.
var bplPlanesLores = [6]BplEvent{BplL1, BplL2, BplL3, BplL4, BplL5, BplL6}
var bplPlanesHires = [4]BplEvent{BplH1, BplH2, BplH3, BplH4}

// LoresFetchUnit and HiresFetchUnit are the DMA-cycle quantum of a
// bitplane fetch block for each resolution.
const (
	LoresFetchUnit = 8
	HiresFetchUnit = 4
)

// buildIdealBplTable returns the per-cycle ideal bitplane event table for
// one (hires, bpu) combination: each active plane is fetched once per
// fetch unit, at a distinct phase within it, cycling across the whole
// line.
func buildIdealBplTable(hires bool, bpu int) [beamclock.HPOSCount]BplEvent {
	var table [beamclock.HPOSCount]BplEvent

	unit := LoresFetchUnit
	planes := bplPlanesLores[:]
	if hires {
		unit = HiresFetchUnit
		planes = bplPlanesHires[:]
	}
	if bpu > len(planes) {
		bpu = len(planes)
	}

	for h := 0; h < beamclock.HPOSCount; h++ {
		phase := h % unit
		if phase < bpu {
			table[h] = planes[phase]
		}
	}
	table[beamclock.HPOSMax] = BplEOL

	return table
}

// BplDMA is the precomputed ideal-event table indexed by [hires][bpu].
// bpu ranges 0..6; hires tables only use phases 0..3.
var BplDMA [2][7][beamclock.HPOSCount]BplEvent

func init() {
	for hires := 0; hires < 2; hires++ {
		for bpu := 0; bpu <= 6; bpu++ {
			BplDMA[hires][bpu] = buildIdealBplTable(hires == 1, bpu)
		}
	}
}

// buildIdealDasTable returns the per-cycle ideal DAS event table for the
// low six DMACON enable bits. Only three bits are read: bit0 gates the
// three disk slots (columns 3, 5, 7), bit1 gates the four audio slots
// (columns 9, 11, 13, 15) and bit2 gates the eight sprite slots (every
// second column from 0x18); bits 3-5 are ignored. Refresh and the SDMA
// strobe are pinned at their fixed columns regardless of the mask.
func buildIdealDasTable(dmaconLow6 uint8) [beamclock.HPOSCount]DasEvent {
	var table [beamclock.HPOSCount]DasEvent

	table[RefreshColumn] = DasRefresh
	table[SDMAColumn] = DasSDMA

	diskEnabled := dmaconLow6&0x01 != 0
	audioEnabled := dmaconLow6&0x02 != 0
	spriteEnabled := dmaconLow6&0x04 != 0

	if diskEnabled {
		table[3] = DasDisk0
		table[5] = DasDisk1
		table[7] = DasDisk2
	}
	if audioEnabled {
		table[9] = DasAudio0
		table[11] = DasAudio1
		table[13] = DasAudio2
		table[15] = DasAudio3
	}
	if spriteEnabled {
		sprites := [8]DasEvent{
			DasSprite0, DasSprite1, DasSprite2, DasSprite3,
			DasSprite4, DasSprite5, DasSprite6, DasSprite7,
		}
		for i, ev := range sprites {
			table[0x18+i*2] = ev
		}
	}

	return table
}

// DasDMA is the precomputed ideal-event table indexed by the low six bits
// of DMACON.
var DasDMA [64][beamclock.HPOSCount]DasEvent

func init() {
	for mask := 0; mask < 64; mask++ {
		DasDMA[mask] = buildIdealDasTable(uint8(mask))
	}
}

// Tables holds a single line's runtime bitplane/DAS event arrays and their
// jump-table companions.
type Tables struct {
	BplEvent     [beamclock.HPOSCount]BplEvent
	NextBplEvent [beamclock.HPOSCount]int
	DasEvent     [beamclock.HPOSCount]DasEvent
	NextDasEvent [beamclock.HPOSCount]int
}

// NewTables creates an empty Tables with every jump-table cell pointing to
// HPOSMax, matching a line with no pending events.
func NewTables() *Tables {
	t := &Tables{}
	for h := range t.NextBplEvent {
		t.NextBplEvent[h] = beamclock.HPOSMax
		t.NextDasEvent[h] = beamclock.HPOSMax
	}
	t.BplEvent[beamclock.HPOSMax] = BplEOL
	return t
}

// RebuildBpl clears BplEvent outside [strt, stop), copies the ideal table
// for (hires, bpu) within it, and rebuilds NextBplEvent in reverse so that
// traversal from any h finds the next event in O(1) amortized per line.
func (t *Tables) RebuildBpl(hires bool, bpu int, strt, stop int) {
	hiresIdx := 0
	if hires {
		hiresIdx = 1
	}
	if bpu < 0 {
		bpu = 0
	}
	if bpu > 6 {
		bpu = 6
	}
	ideal := BplDMA[hiresIdx][bpu]

	for h := 0; h < beamclock.HPOSCount; h++ {
		if h >= strt && h < stop {
			t.BplEvent[h] = ideal[h]
		} else {
			t.BplEvent[h] = BplNone
		}
	}
	t.BplEvent[beamclock.HPOSMax] = BplEOL

	next := beamclock.HPOSMax
	for h := beamclock.HPOSMax; h >= 0; h-- {
		if t.BplEvent[h] != BplNone {
			next = h
		}
		t.NextBplEvent[h] = next
	}
}

// RebuildDas copies the ideal DAS table for dmaconLow6 into the runtime
// array and rebuilds NextDasEvent in reverse, the same way RebuildBpl does
// for bitplanes.
func (t *Tables) RebuildDas(dmaconLow6 uint8) {
	ideal := DasDMA[dmaconLow6&0x3f]
	copy(t.DasEvent[:], ideal[:])

	next := beamclock.HPOSMax
	for h := beamclock.HPOSMax; h >= 0; h-- {
		if t.DasEvent[h] != DasNone {
			next = h
		}
		t.NextDasEvent[h] = next
	}
}
