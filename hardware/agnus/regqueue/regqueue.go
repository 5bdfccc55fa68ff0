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

// Package regqueue defers CPU register writes to the master cycle at which
// the chip is specified to observe them, built on top of the future
// package's event-countdown primitive. At most one entry is pending per
// (register, cycle) pair, and a write to a pointer register is dropped if
// the DMA agent that owns that pointer already took the bus on the
// preceding cycle.
package regqueue

import (
	"fmt"

	"github.com/agnusgo/chipset/errors"
	"github.com/agnusgo/chipset/hardware/agnus/future"
)

// RegID names a chip register as a queue target.
type RegID string

// PointerOwner reports, for a given pointer register, which DMA agent's
// bus activity on the preceding cycle should cause a pending write to
// that register to be dropped. Implementations are supplied by the
// scheduler-owning core; regqueue has no notion of bus ownership itself.
type PointerOwner interface {
	OwnsPointer(reg RegID) bool
}

// Queue is an ordered deferred-write buffer keyed by master cycle.
type Queue struct {
	ticker  *future.Ticker
	pending map[key]*future.Event
	apply   func(reg RegID, value uint16)
}

type key struct {
	cycle int64
	reg   RegID
}

// NewQueue creates a Queue whose writes are committed via apply once their
// delay elapses.
func NewQueue(apply func(reg RegID, value uint16)) *Queue {
	return &Queue{
		ticker:  future.NewTicker("regqueue"),
		pending: make(map[key]*future.Event),
		apply:   apply,
	}
}

// Schedule enqueues a write of value to reg, delay DMA cycles from now,
// tagged with the absolute cycle it will land on so duplicate writes to
// the same (reg, cycle) pair collapse to the latest one. owner, if
// non-nil, is consulted immediately before the write commits; if it
// reports the agent already owns the bus for reg's pointer, the write is
// dropped instead of applied.
func (q *Queue) Schedule(now int64, delay int, reg RegID, value uint16, owner PointerOwner) error {
	if delay < 0 {
		return errors.Errorf(errors.SchedulerInvariant, fmt.Sprintf("negative register delay for %s", reg))
	}

	k := key{cycle: now + int64(delay), reg: reg}
	if existing, ok := q.pending[k]; ok {
		existing.Drop()
		delete(q.pending, k)
	}

	ev := q.ticker.Schedule(delay, func() {
		delete(q.pending, k)
		if owner != nil && owner.OwnsPointer(reg) {
			return
		}
		q.apply(reg, value)
	}, fmt.Sprintf("write %s", reg))

	q.pending[k] = ev
	return nil
}

// Tick advances every pending write by one DMA cycle, committing those
// whose delay has elapsed.
func (q *Queue) Tick() {
	_ = q.ticker.Tick()
}

// Pending reports how many writes are still queued.
func (q *Queue) Pending() int {
	return len(q.pending)
}

// String renders the queue's pending entries, for diagnostics.
func (q *Queue) String() string {
	return q.ticker.String()
}
