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

package regqueue_test

import (
	"testing"

	"github.com/agnusgo/chipset/hardware/agnus/regqueue"
	"github.com/agnusgo/chipset/internal/xtest"
)

type fakeOwner struct {
	owns map[regqueue.RegID]bool
}

func (f fakeOwner) OwnsPointer(reg regqueue.RegID) bool { return f.owns[reg] }

func TestScheduleCommitsAfterDelay(t *testing.T) {
	var applied []uint16
	q := regqueue.NewQueue(func(reg regqueue.RegID, value uint16) {
		applied = append(applied, value)
	})

	xtest.ExpectSuccess(t, q.Schedule(0, 3, "BPLCON0", 0x1234, nil))

	for i := 0; i < 3; i++ {
		q.Tick()
	}
	xtest.ExpectEquality(t, len(applied), 0)

	q.Tick()
	xtest.ExpectEquality(t, applied, []uint16{0x1234})
	xtest.ExpectEquality(t, q.Pending(), 0)
}

func TestScheduleCollapsesDuplicateCycle(t *testing.T) {
	var applied []uint16
	q := regqueue.NewQueue(func(reg regqueue.RegID, value uint16) {
		applied = append(applied, value)
	})

	xtest.ExpectSuccess(t, q.Schedule(0, 2, "COLOR00", 1, nil))
	xtest.ExpectSuccess(t, q.Schedule(0, 2, "COLOR00", 2, nil))

	q.Tick()
	q.Tick()
	q.Tick()
	xtest.ExpectEquality(t, applied, []uint16{2})
}

func TestPointerWriteDroppedWhenOwnerHoldsBus(t *testing.T) {
	var applied []uint16
	q := regqueue.NewQueue(func(reg regqueue.RegID, value uint16) {
		applied = append(applied, value)
	})

	owner := fakeOwner{owns: map[regqueue.RegID]bool{"BPL1PTH": true}}
	xtest.ExpectSuccess(t, q.Schedule(0, 1, "BPL1PTH", 0xaa, owner))

	q.Tick()
	q.Tick()
	xtest.ExpectEquality(t, len(applied), 0)
}

func TestNegativeDelayRejected(t *testing.T) {
	q := regqueue.NewQueue(func(regqueue.RegID, uint16) {})
	xtest.ExpectFailure(t, q.Schedule(0, -1, "DMACON", 0, nil))
}
