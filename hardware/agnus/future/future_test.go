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

package future_test

import (
	"testing"

	"github.com/agnusgo/chipset/hardware/agnus/future"
	"github.com/agnusgo/chipset/internal/xtest"
)

func TestSchedulingDelays(t *testing.T) {
	tck := future.NewTicker("test")

	var ev *future.Event

	// ticking with no entries
	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectFailure(t, tck.Tick())

	// scheduling delay of -1. this means that the payload should run
	// immediately. subsequent calls to Tick() should fail
	tck.Schedule(-1, func() {}, "test event")
	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectFailure(t, tck.Tick())

	// scheduling delay of 0. this means that the payload should run on the
	// first Tick(). subsequent ticks should fail
	ev = tck.Schedule(0, func() {}, "test event")
	xtest.ExpectSuccess(t, ev.JustStarted())
	xtest.ExpectSuccess(t, ev.AboutToEnd())
	xtest.ExpectSuccess(t, tck.Tick())
	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectFailure(t, tck.Tick())

	// scheduling delay of 1. this means that the payload should run on the
	// second Tick(). subsequent ticks should fail
	ev = tck.Schedule(1, func() {}, "test event")
	xtest.ExpectSuccess(t, ev.JustStarted())
	xtest.ExpectFailure(t, ev.AboutToEnd())
	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectSuccess(t, ev.AboutToEnd())
	xtest.ExpectSuccess(t, tck.Tick())
	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectFailure(t, tck.Tick())

	sentinal := false

	// scheduling delay of 2. this means that the payload should run on the
	// third Tick(). subsequent ticks should fail
	ev = tck.Schedule(2, func() { sentinal = true }, "test event")
	xtest.ExpectSuccess(t, ev.JustStarted())
	xtest.ExpectFailure(t, ev.AboutToEnd())
	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectEquality(t, ev.RemainingCycles(), 1)
	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectSuccess(t, ev.AboutToEnd())
	xtest.ExpectSuccess(t, tck.Tick())

	// for this test we've made sure the payload does something
	xtest.ExpectSuccess(t, sentinal)

	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectFailure(t, tck.Tick())
}

func TestForce(t *testing.T) {
	tck := future.NewTicker("test")

	sentinal := false

	ev := tck.Schedule(2, func() { sentinal = true }, "test event")
	xtest.ExpectSuccess(t, ev.JustStarted())
	xtest.ExpectFailure(t, ev.AboutToEnd())
	xtest.ExpectEquality(t, ev.RemainingCycles(), 2)
	ev.Force()
	xtest.ExpectEquality(t, ev.RemainingCycles(), -1)
	xtest.ExpectSuccess(t, sentinal)
	xtest.ExpectFailure(t, tck.Tick())
}

func TestDrop(t *testing.T) {
	tck := future.NewTicker("test")

	sentinal := false

	ev := tck.Schedule(2, func() { sentinal = true }, "test event")
	xtest.ExpectSuccess(t, ev.JustStarted())
	xtest.ExpectFailure(t, ev.AboutToEnd())
	xtest.ExpectEquality(t, ev.RemainingCycles(), 2)
	ev.Drop()
	xtest.ExpectEquality(t, ev.RemainingCycles(), -1)
	xtest.ExpectFailure(t, sentinal)
	xtest.ExpectFailure(t, tck.Tick())
}

func TestDropAmongstPending(t *testing.T) {
	tck := future.NewTicker("test")

	tck.Schedule(5, func() {}, "test event")
	ev := tck.Schedule(3, func() {}, "test event")
	xtest.ExpectFailure(t, tck.Tick())
	xtest.ExpectEquality(t, tck.String(), "test: test event -> 4\ntest: test event -> 2")
	ev.Drop()
	xtest.ExpectEquality(t, tck.String(), "test: test event -> 4")
}
