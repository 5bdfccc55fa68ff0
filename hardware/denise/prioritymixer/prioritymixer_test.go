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

package prioritymixer_test

import (
	"testing"

	"github.com/agnusgo/chipset/hardware/denise/prioritymixer"
	"github.com/agnusgo/chipset/internal/xtest"
)

func TestSpriteBeatsLowerPriorityPlayfield(t *testing.T) {
	px := prioritymixer.Pixel{
		PF1Index:   3,
		PFPriority: 2,
	}
	px.SpriteIndex[0] = 1

	var c prioritymixer.Collisions
	z, reg := prioritymixer.Mix(px, &c)

	xtest.ExpectEquality(t, z&prioritymixer.BitS0, uint16(prioritymixer.BitS0))
	xtest.ExpectEquality(t, reg, uint8(16+1))
}

func TestPlayfieldBeatsLaterSpritePair(t *testing.T) {
	px := prioritymixer.Pixel{
		PF1Index:   3,
		PFPriority: 0,
	}
	px.SpriteIndex[2] = 1

	var c prioritymixer.Collisions
	z, reg := prioritymixer.Mix(px, &c)

	xtest.ExpectEquality(t, z&prioritymixer.BitP0, uint16(prioritymixer.BitP0))
	xtest.ExpectEquality(t, reg, uint8(3))
}

func TestEmptyPixelResolvesToBackground(t *testing.T) {
	var c prioritymixer.Collisions
	z, reg := prioritymixer.Mix(prioritymixer.Pixel{}, &c)
	xtest.ExpectEquality(t, z, uint16(0))
	xtest.ExpectEquality(t, reg, uint8(0))
}

func TestSpriteSpriteCollisionRecorded(t *testing.T) {
	px := prioritymixer.Pixel{}
	px.SpriteIndex[0] = 1
	px.SpriteIndex[3] = 2

	var c prioritymixer.Collisions
	prioritymixer.Mix(px, &c)

	xtest.ExpectSuccess(t, c.SpriteSprite[0][3])
	xtest.ExpectSuccess(t, c.SpriteSprite[3][0])
}

func TestDualPlayfieldMutualCollision(t *testing.T) {
	px := prioritymixer.Pixel{
		DualPlayfield: true,
		PF1Index:      1,
		PF2Index:      2,
		PFPriority:    4,
	}

	var c prioritymixer.Collisions
	prioritymixer.Mix(px, &c)

	xtest.ExpectSuccess(t, c.PlayfieldMutual)
}

func TestPF1WinsOverPF2WhenPF2PriorityClear(t *testing.T) {
	px := prioritymixer.Pixel{
		DualPlayfield: true,
		PF1Index:      1,
		PF2Index:      2,
		PFPriority:    4,
		PF2Priority:   false,
	}

	var c prioritymixer.Collisions
	_, reg := prioritymixer.Mix(px, &c)

	xtest.ExpectEquality(t, reg, px.PF1Index)
}

func TestPF2WinsOverPF1WhenPF2PrioritySet(t *testing.T) {
	px := prioritymixer.Pixel{
		DualPlayfield: true,
		PF1Index:      1,
		PF2Index:      2,
		PFPriority:    4,
		PF2Priority:   true,
	}

	var c prioritymixer.Collisions
	_, reg := prioritymixer.Mix(px, &c)

	xtest.ExpectEquality(t, reg, uint8(8+px.PF2Index))
}
