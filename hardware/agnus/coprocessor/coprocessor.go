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

// Package coprocessor gives the display-list processor and the
// block-transfer engine a common, narrow trait for contending on the
// scheduler's shared bus: each cycle they ask whether the bus is free for
// them, and if so latch the transferred value through AllocateBus.
package coprocessor

import "github.com/agnusgo/chipset/hardware/agnus/scheduler"

// Agent identifies which of the two coprocessors a Step call is for.
type Agent int

const (
	AgentCopper Agent = iota
	AgentBlitter
)

// Interface is the narrow allocate/deny trait shared by the two
// coprocessors. Both run as pure state machines driven one DMA cycle at a
// time by Step; neither owns a goroutine.
type Interface struct {
	agent Agent
	sched *scheduler.Scheduler

	priorityClaimed bool
	owner           scheduler.BusOwner
}

// NewCopper creates a coprocessor Interface for the display-list
// processor.
func NewCopper(sched *scheduler.Scheduler) *Interface {
	return &Interface{agent: AgentCopper, sched: sched, owner: scheduler.OwnerCopper}
}

// NewBlitter creates a coprocessor Interface for the block-transfer
// engine.
func NewBlitter(sched *scheduler.Scheduler) *Interface {
	return &Interface{agent: AgentBlitter, sched: sched, owner: scheduler.OwnerBlitter}
}

// ClaimPriority asserts or clears the blitter's priority-negotiation flag.
// It has no effect for the copper.
func (c *Interface) ClaimPriority(claimed bool) {
	c.priorityClaimed = claimed
}

// BusIsFree reports whether column h's bus slot is available to this
// coprocessor under dmaEnabled, without taking it.
func (c *Interface) BusIsFree(h int, dmaEnabled bool) bool {
	switch c.agent {
	case AgentCopper:
		return c.sched.BusIsFreeCopper(h, dmaEnabled)
	case AgentBlitter:
		return c.sched.BusIsFreeBlitter(h, dmaEnabled, c.priorityClaimed)
	default:
		return false
	}
}

// Step attempts to allocate column h's bus slot for this coprocessor and
// transfer value. It returns false if the slot was denied or already
// owned; callers retry on a later cycle.
func (c *Interface) Step(h int, dmaEnabled bool, value uint16) bool {
	if !c.BusIsFree(h, dmaEnabled) {
		return false
	}
	return c.sched.AllocateBus(c.owner, h, value)
}
