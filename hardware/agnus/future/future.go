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

// Package future implements the deferred-event primitive the rest of the
// chipset core schedules against: a payload that fires after a fixed
// number of ticks. The register-change queue is built on a Ticker; the
// scheduler keeps its own slot table and does not use this package.
package future

import (
	"fmt"
	"strings"
)

// Event is a single scheduled payload. It is returned by Schedule so the
// caller can query its progress or cancel it early.
type Event struct {
	label     string
	payload   func()
	remaining int
	delay     int
	done      bool
}

// JustStarted returns true if the event has not yet been ticked since it
// was scheduled.
func (ev *Event) JustStarted() bool {
	return ev.remaining == ev.delay
}

// AboutToEnd returns true if the event will fire on the very next Tick.
func (ev *Event) AboutToEnd() bool {
	return !ev.done && ev.remaining == 0
}

// RemainingCycles returns the number of ticks before the event fires, or -1
// if it has already fired, been forced, or been dropped.
func (ev *Event) RemainingCycles() int {
	if ev.done {
		return -1
	}
	return ev.remaining
}

// Force runs the event's payload immediately and marks it as finished,
// regardless of how many cycles remained.
func (ev *Event) Force() {
	if ev.done {
		return
	}
	ev.done = true
	ev.payload()
}

// Drop cancels the event without running its payload.
func (ev *Event) Drop() {
	ev.done = true
}

func (ev *Event) String() string {
	return fmt.Sprintf("%s -> %d", ev.label, ev.remaining)
}

// Ticker holds a sequence of pending Events and advances them one tick at a
// time. label identifies the ticker for diagnostic output (the
// register-change queue runs one Ticker).
type Ticker struct {
	label  string
	events []*Event
}

// NewTicker creates an empty Ticker.
func NewTicker(label string) *Ticker {
	return &Ticker{label: label}
}

// Schedule queues payload to run after delay ticks. A delay less than zero
// runs the payload immediately and returns an already-finished Event. A
// delay of zero runs the payload on the very next Tick call.
func (t *Ticker) Schedule(delay int, payload func(), label string) *Event {
	ev := &Event{label: label, payload: payload, remaining: delay, delay: delay}
	if delay < 0 {
		ev.done = true
		payload()
		return ev
	}
	t.events = append(t.events, ev)
	return ev
}

// Tick advances every pending event by one cycle, running the payload of
// any event that reaches its deadline and removing it from the pending
// list. It returns an error if no event fired this tick.
func (t *Ticker) Tick() error {
	fired := false

	live := t.events[:0]
	for _, ev := range t.events {
		if ev.done {
			continue
		}
		ev.remaining--
		if ev.remaining < 0 {
			ev.done = true
			ev.payload()
			fired = true
			continue
		}
		live = append(live, ev)
	}
	t.events = live

	if !fired {
		return fmt.Errorf("future: no event fired this tick")
	}
	return nil
}

// String renders every pending event, oldest first, one per line.
func (t *Ticker) String() string {
	var s strings.Builder
	first := true
	for _, ev := range t.events {
		if ev.done {
			continue
		}
		if !first {
			s.WriteString("\n")
		}
		first = false
		fmt.Fprintf(&s, "%s: %s", t.label, ev.String())
	}
	return s.String()
}
