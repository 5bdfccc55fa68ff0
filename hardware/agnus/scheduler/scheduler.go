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

// Package scheduler arbitrates the shared memory bus between the agents
// that contend for it (refresh, disk, audio, sprites, bitplanes, the CPU,
// and the two coprocessors) on a per-slot basis, and drains a fixed set of
// named event slots in trigger-cycle order.
package scheduler

import (
	"math"

	"github.com/agnusgo/chipset/errors"
	"github.com/agnusgo/chipset/hardware/agnus/beamclock"
)

// Never marks a slot as inactive.
const Never = int64(math.MaxInt64)

// Slot names one of the scheduler's fixed event slots. Priority among
// slots triggering on the same cycle follows declaration order.
type Slot int

const (
	SlotRAS Slot = iota
	SlotCIAA
	SlotCIAB
	SlotSecondary
	SlotKeyboard
	SlotVBL
	SlotIRQ
	SlotBitplane
	SlotDAS
	SlotCoprocessor
	SlotBlitter
	SlotRegisterChange
	numSlots
)

// BusOwner identifies which agent, if any, holds a DMA cycle's bus slot.
type BusOwner int

const (
	OwnerNone BusOwner = iota
	OwnerDisk
	OwnerAudio
	OwnerBitplane
	OwnerSprite
	OwnerCopper
	OwnerBlitter
	OwnerCPU
	OwnerRefresh
)

func (o BusOwner) String() string {
	switch o {
	case OwnerNone:
		return "NONE"
	case OwnerDisk:
		return "DISK"
	case OwnerAudio:
		return "AUDIO"
	case OwnerBitplane:
		return "BITPLANE"
	case OwnerSprite:
		return "SPRITE"
	case OwnerCopper:
		return "COPPER"
	case OwnerBlitter:
		return "BLITTER"
	case OwnerCPU:
		return "CPU"
	case OwnerRefresh:
		return "REFRESH"
	default:
		return "UNKNOWN"
	}
}

// RefreshColumn is the fixed column the first coprocessor is denied at,
// reserved for memory refresh.
const RefreshColumn = 0xE0

type event struct {
	trigger int64
	payload func()
	active  bool
}

// Scheduler owns the slot table, the per-cycle bus-owner vector, and the
// blitter-slowdown line.
type Scheduler struct {
	slots [numSlots]event
	clock int64

	busOwner        [beamclock.HPOSCount]BusOwner
	busValue        [beamclock.HPOSCount]uint16
	blitterSlowdown bool

	busStats map[BusOwner]int64
}

// NewScheduler creates a Scheduler with every slot inactive.
func NewScheduler() *Scheduler {
	s := &Scheduler{busStats: make(map[BusOwner]int64)}
	for i := range s.slots {
		s.slots[i].trigger = Never
	}
	return s
}

// Clock returns the scheduler's current DMA-aligned master cycle.
func (s *Scheduler) Clock() int64 { return s.clock }

// ScheduleAbs arms slot to fire payload at the given absolute cycle.
func (s *Scheduler) ScheduleAbs(slot Slot, cycle int64, payload func()) {
	s.slots[slot] = event{trigger: cycle, payload: payload, active: true}
}

// ScheduleRel arms slot to fire payload delta cycles from now.
func (s *Scheduler) ScheduleRel(slot Slot, delta int64, payload func()) {
	s.ScheduleAbs(slot, s.clock+delta, payload)
}

// RescheduleAbs moves an already-armed slot to a new absolute cycle without
// touching its payload.
func (s *Scheduler) RescheduleAbs(slot Slot, cycle int64) {
	s.slots[slot].trigger = cycle
}

// Cancel disarms slot.
func (s *Scheduler) Cancel(slot Slot) {
	s.slots[slot].trigger = Never
	s.slots[slot].active = false
}

// nextSlot returns the index of the active slot with the smallest trigger
// cycle, slot declaration order breaking ties.
func (s *Scheduler) nextSlot() (Slot, bool) {
	best := Slot(-1)
	bestTrigger := Never
	for i := range s.slots {
		if !s.slots[i].active || s.slots[i].trigger == Never {
			continue
		}
		if s.slots[i].trigger < bestTrigger {
			bestTrigger = s.slots[i].trigger
			best = Slot(i)
		}
	}
	if best < 0 {
		return 0, false
	}
	return best, true
}

// ExecuteUntil drains every slot whose trigger cycle is at or before
// target, in slot-priority order, then advances the clock to target
// aligned down to the DMA-cycle grid.
func (s *Scheduler) ExecuteUntil(target int64) error {
	if target < s.clock {
		return errors.Errorf(errors.SchedulerInvariant, "target clock precedes current clock")
	}

	for {
		slot, ok := s.nextSlot()
		if !ok || s.slots[slot].trigger > target {
			break
		}
		if s.slots[slot].trigger < s.clock {
			return errors.Errorf(errors.EventInThePast, s.slots[slot].trigger)
		}

		s.clock = s.slots[slot].trigger
		payload := s.slots[slot].payload
		s.slots[slot].trigger = Never
		s.slots[slot].active = false
		payload()
	}

	s.clock = target - target%8
	return nil
}

// ClearBusOwners resets the bus-owner vector and the blitter-slowdown line.
// Called once per HSYNC.
func (s *Scheduler) ClearBusOwners() {
	for i := range s.busOwner {
		s.busOwner[i] = OwnerNone
		s.busValue[i] = 0
	}
	s.blitterSlowdown = false
}

// BusOwnerAt returns the agent that holds column h's bus slot.
func (s *Scheduler) BusOwnerAt(h int) BusOwner { return s.busOwner[h] }

// BlitterSlowdown reports whether the slowdown line is currently asserted.
func (s *Scheduler) BlitterSlowdown() bool { return s.blitterSlowdown }

// BusStats returns the number of cycles each agent has held the bus across
// the scheduler's lifetime, for diagnostics.
func (s *Scheduler) BusStats() map[BusOwner]int64 {
	out := make(map[BusOwner]int64, len(s.busStats))
	for k, v := range s.busStats {
		out[k] = v
	}
	return out
}

// BusIsFreeCopper reports whether the display-list processor (the first
// coprocessor) may take column h's bus slot.
func (s *Scheduler) BusIsFreeCopper(h int, dmaEnabled bool) bool {
	if s.busOwner[h] != OwnerNone {
		return false
	}
	if !dmaEnabled {
		return false
	}
	if h == RefreshColumn {
		return false
	}
	return true
}

// BusIsFreeBlitter reports whether the block-transfer engine (the second
// coprocessor) may take column h's bus slot. priorityClaimed is the
// blitter's own priority-negotiation flag.
func (s *Scheduler) BusIsFreeBlitter(h int, dmaEnabled, priorityClaimed bool) bool {
	if s.busOwner[h] != OwnerNone {
		return false
	}
	if !dmaEnabled {
		return false
	}
	if s.blitterSlowdown && !priorityClaimed {
		return false
	}
	return true
}

// AllocateBus is the only writer of busOwner. It records owner at column h
// and the transferred word for downstream debuggers, and bumps the agent's
// cycle counter. It returns false without effect if the slot is already
// owned.
func (s *Scheduler) AllocateBus(owner BusOwner, h int, value uint16) bool {
	if s.busOwner[h] != OwnerNone {
		return false
	}
	s.busOwner[h] = owner
	s.busValue[h] = value
	s.busStats[owner]++
	return true
}

// BusValueAt returns the word transferred during column h's allocation, for
// downstream debuggers.
func (s *Scheduler) BusValueAt(h int) uint16 { return s.busValue[h] }

// ExecuteUntilBusIsFree spins stepOneCycle while column h's slot remains
// occupied, asserting the blitter-slowdown line after two contested
// cycles, then stamps column h as owned by the CPU. It returns the number
// of DMA cycles spent waiting, which the caller converts into CPU
// wait-states.
func (s *Scheduler) ExecuteUntilBusIsFree(h int, stepOneCycle func()) int {
	contested := 0
	for s.busOwner[h] != OwnerNone {
		stepOneCycle()
		contested++
		if contested >= 2 {
			s.blitterSlowdown = true
		}
	}
	s.busOwner[h] = OwnerCPU
	s.busStats[OwnerCPU]++
	return contested
}
