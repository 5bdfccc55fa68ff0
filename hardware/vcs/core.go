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

// Package vcs assembles the Agnus/Denise core: the beam clock, the bus
// scheduler, the sequencer's DMA event tables, the display window, the
// two coprocessor agents, the register-change queue and the Denise
// pixel pipeline, behind a single State machine and register poke
// surface that an external CPU collaborator drives.
package vcs

import (
	"fmt"

	"github.com/agnusgo/chipset/environment"
	"github.com/agnusgo/chipset/errors"
	"github.com/agnusgo/chipset/hardware/agnus/beamclock"
	"github.com/agnusgo/chipset/hardware/agnus/coprocessor"
	"github.com/agnusgo/chipset/hardware/agnus/displaywindow"
	"github.com/agnusgo/chipset/hardware/agnus/regqueue"
	"github.com/agnusgo/chipset/hardware/agnus/scheduler"
	"github.com/agnusgo/chipset/hardware/agnus/sequencer"
	"github.com/agnusgo/chipset/hardware/clocks"
	"github.com/agnusgo/chipset/hardware/denise/colorizer"
	"github.com/agnusgo/chipset/hardware/denise/prioritymixer"
	"github.com/agnusgo/chipset/hardware/denise/shiftengine"
	"github.com/agnusgo/chipset/hardware/instance"
)

// State is one of the core's valid operating states.
type State int

const (
	StateOff State = iota
	StatePaused
	StateRunning
	StateSuspended
	StateHalted
)

func (s State) String() string {
	switch s {
	case StateOff:
		return "OFF"
	case StatePaused:
		return "PAUSED"
	case StateRunning:
		return "RUNNING"
	case StateSuspended:
		return "SUSPENDED"
	case StateHalted:
		return "HALTED"
	default:
		return "UNKNOWN"
	}
}

// validTransitions enumerates every state change the core accepts.
var validTransitions = map[State]map[State]bool{
	StateOff:       {StatePaused: true},
	StatePaused:    {StateRunning: true, StateOff: true},
	StateRunning:   {StateSuspended: true, StatePaused: true, StateHalted: true},
	StateSuspended: {StateRunning: true},
	StateHalted:    {},
}

const (
	HPixels = beamclock.HPOSCount * int(clocks.MasterCyclesPerDMACycle) / 2
	VPixels = 313
)

// Frame is one double-buffer slot: a full RGBA raster plus the frame
// geometry flags it was rendered under.
type Frame struct {
	Pixels    [HPixels * VPixels]uint32
	LongFrame bool
	Interlace bool
}

// Register identifiers for the poke surface's named targets, keyed by
// their canonical Amiga mnemonic rather than their bus address.
const (
	RegDMACON  = regqueue.RegID("DMACON")
	RegDIWSTRT = regqueue.RegID("DIWSTRT")
	RegDIWSTOP = regqueue.RegID("DIWSTOP")
	RegDDFSTRT = regqueue.RegID("DDFSTRT")
	RegDDFSTOP = regqueue.RegID("DDFSTOP")
	RegBPLCON0 = regqueue.RegID("BPLCON0")
	RegBPLCON1 = regqueue.RegID("BPLCON1")
	RegBPLCON2 = regqueue.RegID("BPLCON2")
)

// RegBPLxDAT names the parallel-to-serial latch register for bitplane
// plane (0..5); writing plane 0 (BPL1DAT) triggers the shift fill.
func RegBPLxDAT(plane int) regqueue.RegID {
	return regqueue.RegID(fmt.Sprintf("BPL%dDAT", plane+1))
}

// RegColor names one of the 32 colour registers (0..31).
func RegColor(reg int) regqueue.RegID {
	return regqueue.RegID(fmt.Sprintf("COLOR%02d", reg))
}

// RegPointer names one of the DMA pointer registers (DSKPT, BPL1PT..
// BPL6PT, AUD0PT..AUD3PT, SPR0PT..SPR7PT), subject to the pointer-write-
// drop rule through Core.OwnsPointer.
func RegPointer(channel string) regqueue.RegID {
	return regqueue.RegID(channel + "PT")
}

// pointerOwners maps each pointer register to the DMA agent whose bus
// activity on the preceding column causes a pending write to it to be
// dropped.
var pointerOwners = map[regqueue.RegID]scheduler.BusOwner{
	RegPointer("DSK"):  scheduler.OwnerDisk,
	RegPointer("BPL1"): scheduler.OwnerBitplane,
	RegPointer("BPL2"): scheduler.OwnerBitplane,
	RegPointer("BPL3"): scheduler.OwnerBitplane,
	RegPointer("BPL4"): scheduler.OwnerBitplane,
	RegPointer("BPL5"): scheduler.OwnerBitplane,
	RegPointer("BPL6"): scheduler.OwnerBitplane,
	RegPointer("AUD0"): scheduler.OwnerAudio,
	RegPointer("AUD1"): scheduler.OwnerAudio,
	RegPointer("AUD2"): scheduler.OwnerAudio,
	RegPointer("AUD3"): scheduler.OwnerAudio,
	RegPointer("SPR0"): scheduler.OwnerSprite,
	RegPointer("SPR1"): scheduler.OwnerSprite,
	RegPointer("SPR2"): scheduler.OwnerSprite,
	RegPointer("SPR3"): scheduler.OwnerSprite,
	RegPointer("SPR4"): scheduler.OwnerSprite,
	RegPointer("SPR5"): scheduler.OwnerSprite,
	RegPointer("SPR6"): scheduler.OwnerSprite,
	RegPointer("SPR7"): scheduler.OwnerSprite,
}

// DMACON bit layout. The low six bits the sequencer rebuilds its DAS table
// from are a condensed disk/audio/sprite summary, not these raw bits.
const (
	dmaconBLTPRI = 1 << 10
	dmaconDMAEN  = 1 << 9
	dmaconBPLEN  = 1 << 8
	dmaconCOPEN  = 1 << 7
	dmaconBLTEN  = 1 << 6
	dmaconSPREN  = 1 << 5
	dmaconDSKEN  = 1 << 4
	dmaconAUDEN  = 0x0f
)

// BPLCON0 bit layout.
const (
	bplcon0Hires = 1 << 15
	bplcon0HAM   = 1 << 11
	bplcon0DBLPF = 1 << 10
)

func bplcon0BPU(v uint16) int { return int((v >> 12) & 0x7) }

// BPLCON2 bit layout: the three-bit PF1P/PF2P priority fields and the
// PF2PRI tie-break bit.
const bplcon2PF2PRI = 1 << 6

func bplcon2PF1P(v uint16) uint8 { return uint8(v & 0x7) }
func bplcon2PF2P(v uint16) uint8 { return uint8((v >> 3) & 0x7) }

func minPriority(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// Core owns every Agnus/Denise component and the register poke surface
// the external CPU collaborator drives through RegQueue.
type Core struct {
	Env *environment.Environment
	Ins *instance.Instance

	Beam      *beamclock.BeamClock
	Scheduler *scheduler.Scheduler
	Tables    *sequencer.Tables
	Window    *displaywindow.Window
	Copper    *coprocessor.Interface
	Blitter   *coprocessor.Interface
	Regs      *regqueue.Queue

	Shift     *shiftengine.Engine
	Colorizer *colorizer.Colorizer
	Collide   prioritymixer.Collisions

	state State

	front, back *Frame
	registers   map[regqueue.RegID]uint16

	dmacon  uint16
	bplcon0 uint16
	bplcon1 uint16
	bplcon2 uint16

	ddfstrt, ddfstop int
	diwstrt, diwstop uint16

	pendingBpl [6]uint16
}

// NewCore creates a Core in the OFF state, wired to env. Register writes
// committed through Regs land in the internal shadow map RegisterValue
// reads back from, and are also dispatched to the relevant Agnus/Denise
// component: DMACON rebuilds the DAS table and the blitter's priority
// flag, DDFSTRT/DDFSTOP/BPLCON0 rebuild the bitplane table and the DDF
// window, DIWSTRT/DIWSTOP set the display window, BPLCON1 sets the shift
// engine's per-plane scroll, BPLxDAT latches shift data (plane 0
// triggering the fill), and COLORxx programs the colorizer.
func NewCore(env *environment.Environment, ins *instance.Instance) *Core {
	c := &Core{
		Env:       env,
		Ins:       ins,
		Beam:      beamclock.NewBeamClock(),
		Scheduler: scheduler.NewScheduler(),
		Tables:    sequencer.NewTables(),
		Window:    displaywindow.NewWindow(),
		Shift:     shiftengine.NewEngine(),
		Colorizer: colorizer.NewColorizer(),
		state:     StateOff,
		front:     &Frame{},
		back:      &Frame{},
		registers: make(map[regqueue.RegID]uint16),
	}
	c.Copper = coprocessor.NewCopper(c.Scheduler)
	c.Blitter = coprocessor.NewBlitter(c.Scheduler)
	c.Regs = regqueue.NewQueue(c.applyRegister)

	c.Beam.OnHSYNC(func() {
		c.Scheduler.ClearBusOwners()
		c.Window.NewLine()
		c.Colorizer.PrepareForHAM()
	})
	c.Beam.OnVSYNC(func() {
		c.front, c.back = c.back, c.front
		c.front.LongFrame = c.Beam.LongFrame()
		c.front.Interlace = c.Beam.Interlace()
	})

	return c
}

// State returns the core's current operating state.
func (c *Core) State() State { return c.state }

// Transition attempts to move the core to next, rejecting any move not
// listed in validTransitions.
func (c *Core) Transition(next State) error {
	if !validTransitions[c.state][next] {
		return errors.Errorf(errors.InvalidTransition, c.state, next)
	}
	c.state = next
	return nil
}

// applyRegister is the register sink RegQueue commits every deferred
// write through. It always records the raw value for RegisterValue, then
// dispatches to whichever component the register actually governs.
func (c *Core) applyRegister(reg regqueue.RegID, value uint16) {
	c.registers[reg] = value

	switch reg {
	case RegDMACON:
		c.applyDMACON(value)
	case RegBPLCON0:
		c.bplcon0 = value
		c.Shift.SetDualPlayfield(value&bplcon0DBLPF != 0)
		c.rebuildDDF()
	case RegBPLCON1:
		c.bplcon1 = value
		c.applyScroll()
	case RegBPLCON2:
		c.bplcon2 = value
	case RegDIWSTRT:
		c.diwstrt = value
		c.applyDIW()
	case RegDIWSTOP:
		c.diwstop = value
		c.applyDIW()
	case RegDDFSTRT:
		c.ddfstrt = int(value)
		c.rebuildDDF()
	case RegDDFSTOP:
		c.ddfstop = int(value)
		c.rebuildDDF()
	default:
		if plane, ok := parseBplDat(reg); ok {
			c.applyBplDat(plane, value)
		} else if idx, ok := parseColorReg(reg); ok {
			c.Colorizer.SetColorRegister(idx, value)
		}
	}
}

// applyDMACON applies DMACON's set/clear addressing (bit 15 selects
// whether the remaining bits are ORed into or AND-NOT'd out of the
// running register) and rebuilds the DAS table and blitter priority flag
// from the result.
func (c *Core) applyDMACON(value uint16) {
	if value&0x8000 != 0 {
		c.dmacon |= value &^ 0x8000
	} else {
		c.dmacon &^= value
	}

	c.Tables.RebuildDas(c.dasEnableMask())
	c.Blitter.ClaimPriority(c.dmacon&dmaconBLTPRI != 0)
}

// dasEnableMask condenses the decoded disk/audio/sprite enable flags into
// the three-bit summary sequencer.Tables.RebuildDas expects.
func (c *Core) dasEnableMask() uint8 {
	if c.dmacon&dmaconDMAEN == 0 {
		return 0
	}

	var mask uint8
	if c.dmacon&dmaconDSKEN != 0 {
		mask |= 0x01
	}
	if c.dmacon&dmaconAUDEN != 0 {
		mask |= 0x02
	}
	if c.dmacon&dmaconSPREN != 0 {
		mask |= 0x04
	}
	return mask
}

func (c *Core) bitplaneDMAEnabled() bool {
	return c.dmacon&dmaconDMAEN != 0 && c.dmacon&dmaconBPLEN != 0
}

func (c *Core) copperDMAEnabled() bool {
	return c.dmacon&dmaconDMAEN != 0 && c.dmacon&dmaconCOPEN != 0
}

func (c *Core) blitterDMAEnabled() bool {
	return c.dmacon&dmaconDMAEN != 0 && c.dmacon&dmaconBLTEN != 0
}

// applyScroll sets the shift engine's per-plane scroll delay from
// BPLCON1's PF1H/PF2H nibbles: PF1H scrolls the odd planes (playfield 1),
// PF2H scrolls the even planes (playfield 2).
func (c *Core) applyScroll() {
	pf1h := uint8(c.bplcon1 & 0x0f)
	pf2h := uint8((c.bplcon1 >> 4) & 0x0f)

	for p := 0; p < 6; p++ {
		if p%2 == 0 {
			c.Shift.SetScroll(p, pf1h)
		} else {
			c.Shift.SetScroll(p, pf2h)
		}
	}
}

// applyDIW decodes DIWSTRT/DIWSTOP's packed vertical/horizontal trigger
// columns, including the documented H8=1, V8=!V7 extension bits DIWSTOP
// carries, and programs the display window.
func (c *Core) applyDIW() {
	vStart := int(c.diwstrt >> 8)
	hStart := int(c.diwstrt & 0xff)

	vStopByte := uint8(c.diwstop >> 8)
	vStop := int(vStopByte)
	if vStopByte&0x80 == 0 {
		vStop |= 0x100
	}
	hStop := int(c.diwstop&0xff) | 0x100

	c.Window.SetDIW(vStart, vStop, hStart, hStop)
}

// rebuildDDF resolves the DDF window for the current revision, resolution
// and raw DDFSTRT/DDFSTOP values, then rebuilds both the display window's
// DDF flops and the sequencer's bitplane event table from it.
func (c *Core) rebuildDDF() {
	hires := c.bplcon0&bplcon0Hires != 0
	bpu := bplcon0BPU(c.bplcon0)

	strt, stop := displaywindow.ResolveDDF(c.Env.Prefs.GetRevision(), hires, c.ddfstrt, c.ddfstop)
	c.Window.SetDDF(strt, stop)
	c.Tables.RebuildBpl(hires, bpu, strt, stop)
}

// applyBplDat latches a freshly fetched bitplane word. Plane 0 (BPL1DAT)
// is fetched last in hardware order, so its write is what triggers the
// shift-register fill for all six planes from their latched words.
func (c *Core) applyBplDat(plane int, value uint16) {
	c.pendingBpl[plane] = value
	if plane != 0 {
		return
	}
	for p := 0; p < 6; p++ {
		c.Shift.Load(p, c.pendingBpl[p])
	}
}

// OwnsPointer implements regqueue.PointerOwner: it reports whether the DMA
// channel that owns reg's pointer register already took the bus on the
// immediately preceding column, in which case a pending write to reg
// should be dropped rather than committed.
func (c *Core) OwnsPointer(reg regqueue.RegID) bool {
	owner, ok := pointerOwners[reg]
	if !ok {
		return false
	}

	h := c.Beam.Position().H - 1
	if h < 0 {
		h = beamclock.HPOSMax
	}
	return c.Scheduler.BusOwnerAt(h) == owner
}

func parseBplDat(reg regqueue.RegID) (plane int, ok bool) {
	var n int
	if _, err := fmt.Sscanf(string(reg), "BPL%dDAT", &n); err != nil || n < 1 || n > 6 {
		return 0, false
	}
	return n - 1, true
}

func parseColorReg(reg regqueue.RegID) (index int, ok bool) {
	var n int
	if _, err := fmt.Sscanf(string(reg), "COLOR%d", &n); err != nil || n < 0 || n > 63 {
		return 0, false
	}
	return n, true
}

// RegisterValue returns the last value committed to reg, or zero if it
// has never been written.
func (c *Core) RegisterValue(reg regqueue.RegID) uint16 {
	return c.registers[reg]
}

// FrontBuffer returns the most recently completed frame.
func (c *Core) FrontBuffer() *Frame { return c.front }

// BackBuffer returns the frame currently being rendered into.
func (c *Core) BackBuffer() *Frame { return c.back }

// TickDMA advances the beam clock and scheduler by one DMA cycle. It is
// the unit of progress the external CPU collaborator's bus Sync call
// drives: each cycle it allocates the bus from the sequencer's tables (or
// lets the two coprocessors contend for it), then shifts, mixes and
// colorizes the four pixels of display that DMA cycle covers into the
// back buffer.
func (c *Core) TickDMA() error {
	if c.state != StateRunning {
		return errors.Errorf(errors.InvalidTransition, c.state, StateRunning)
	}
	c.Ins.GoroutineLock.Check()

	target := c.Beam.Clock() + clocks.MasterCyclesPerDMACycle
	if err := c.Scheduler.ExecuteUntil(target); err != nil {
		return err
	}

	h := c.Beam.Position().H
	c.serviceDMA(h)
	c.renderCycle(h)

	c.Beam.TickDMA()
	c.Regs.Tick()
	c.Window.TickH(c.Beam.Position().H)
	c.Window.TickV(c.Beam.Position().V)

	return nil
}

// serviceDMA allocates column h's bus slot for whichever agent the
// sequencer's tables say is due there, falling back to letting the two
// coprocessors contend for it when neither table has an event.
func (c *Core) serviceDMA(h int) {
	if bpl := c.Tables.BplEvent[h]; bpl != sequencer.BplNone && bpl != sequencer.BplEOL && c.bitplaneDMAEnabled() {
		c.Scheduler.AllocateBus(scheduler.OwnerBitplane, h, uint16(bpl))
		return
	}
	if das := c.Tables.DasEvent[h]; das != sequencer.DasNone {
		if owner := dasOwner(das); owner != scheduler.OwnerNone {
			c.Scheduler.AllocateBus(owner, h, uint16(das))
			return
		}
	}

	if c.Copper.Step(h, c.copperDMAEnabled(), 0) {
		return
	}
	c.Blitter.Step(h, c.blitterDMAEnabled(), 0)
}

func dasOwner(ev sequencer.DasEvent) scheduler.BusOwner {
	switch ev {
	case sequencer.DasRefresh:
		return scheduler.OwnerRefresh
	case sequencer.DasDisk0, sequencer.DasDisk1, sequencer.DasDisk2:
		return scheduler.OwnerDisk
	case sequencer.DasAudio0, sequencer.DasAudio1, sequencer.DasAudio2, sequencer.DasAudio3:
		return scheduler.OwnerAudio
	case sequencer.DasSprite0, sequencer.DasSprite1, sequencer.DasSprite2, sequencer.DasSprite3,
		sequencer.DasSprite4, sequencer.DasSprite5, sequencer.DasSprite6, sequencer.DasSprite7,
		sequencer.DasSDMA:
		return scheduler.OwnerSprite
	default:
		return scheduler.OwnerNone
	}
}

// renderCycle advances the shift registers by the four pixels column h's
// DMA cycle covers and writes each visible one into the back buffer at
// its colorizer.PixelColumn position.
func (c *Core) renderCycle(h int) {
	v := c.Beam.Position().V
	if v < 0 || v >= VPixels {
		return
	}
	baseCol := colorizer.PixelColumn(h)

	for i := 0; i < 4; i++ {
		planes := c.Shift.Shift()
		if !c.Window.Visible() {
			continue
		}

		col := baseCol + i
		if col < 0 || col >= HPixels {
			continue
		}
		c.back.Pixels[v*HPixels+col] = c.resolvePixel(planes)
	}
}

// resolvePixel turns one pixel's six raw plane bits into an RGBA value,
// either through the hold-and-modify path (BPLCON0's HAM bit) or through
// the priority mixer and colour register lookup.
func (c *Core) resolvePixel(planes uint8) uint32 {
	index1, index2 := c.Shift.Translate(planes)

	if c.bplcon0&bplcon0HAM != 0 {
		cmd, payload := colorizer.DecodeHAM(index1)
		return c.Colorizer.ComputeHAM(cmd, payload, c.Colorizer.RegisterRGBA(int(payload)))
	}

	px := prioritymixer.Pixel{
		PF1Index:      index1,
		PF2Index:      index2,
		DualPlayfield: c.bplcon0&bplcon0DBLPF != 0,
		PFPriority:    minPriority(bplcon2PF1P(c.bplcon2), bplcon2PF2P(c.bplcon2)),
		PF2Priority:   c.bplcon2&bplcon2PF2PRI != 0,
	}

	_, reg := prioritymixer.Mix(px, &c.Collide)
	return c.Colorizer.RegisterRGBA(int(reg))
}
