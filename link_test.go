package slump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockLink(t *testing.T) {
	t.Run("key lock climbs instead of lifting", func(t *testing.T) {
		g := testGenerator(t, nil)
		g.start(0)
		k := &Link{Type: BasicLink, Bits: LinkLift | LinkTwin, FloorDelta: 96, Core: 64, Sep: 64}
		lock := &Quest{Goal: GoalKey}

		g.lockLink(k, lock)

		assert.True(t, k.Has(LinkNearDoor))
		assert.False(t, k.Has(LinkLift))
		assert.False(t, k.Has(LinkTwin))
		assert.Zero(t, k.Sep)
		assert.True(t, k.Has(LinkSteps))
		assert.Equal(t, 4, k.StepCount)
		assert.Equal(t, 128, k.Core)
		assert.True(t, linkFitsQ(k, lock))
	})

	t.Run("floor switch raises the core", func(t *testing.T) {
		g := testGenerator(t, nil)
		g.start(0)
		k := &Link{Type: BasicLink, Bits: LinkSteps | LinkNukage, FloorDelta: -64, Core: 32}
		lock := &Quest{Goal: GoalSwitch, Type: LineS1FloorLowest}

		g.lockLink(k, lock)

		assert.True(t, k.Has(LinkLockCore))
		assert.False(t, k.Has(LinkSteps|LinkNukage))
		assert.Equal(t, -maxStep, k.FloorDelta)
		assert.Equal(t, 64, k.Core)
		assert.True(t, linkFitsQ(k, lock))
	})

	t.Run("no bars across stairs", func(t *testing.T) {
		g := testGenerator(t, nil)
		g.start(0)
		g.l.params.maxBars = 10
		k := &Link{Type: BasicLink, Bits: LinkSteps, FloorDelta: 48, StepCount: 2, Core: 64}
		lock := &Quest{Goal: GoalSwitch, Type: LineS1DoorOpen}

		g.lockLink(k, lock)

		assert.False(t, k.Has(LinkBars))
		assert.True(t, k.Has(LinkNearDoor))
		assert.True(t, linkFitsQ(k, lock))
	})
}

func TestLinkFitsH(t *testing.T) {
	tests := []struct {
		name string
		k    Link
		n    int
		ok   bool
	}{
		{"gate needs a pad", Link{Type: GateLink}, 63, false},
		{"gate", Link{Type: GateLink}, 64, true},
		{"open", Link{Type: OpenLink, Width: 128}, 128, true},
		{"open too wide", Link{Type: OpenLink, Width: 128}, 120, false},
		{"basic with margins", Link{Type: BasicLink, Width: 64}, 64 + 2*linkMargin, true},
		{"basic without margins", Link{Type: BasicLink, Width: 64}, 64, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ok, linkFitsH(&tt.k, tt.n))
		})
	}
}

// testRoom builds a free-standing square room of the given size and floor
// with its lower left corner at (x,y), returning it and its walls.
func testRoom(g *Generator, x, y, size, floor int) (SectorID, []LinedefID) {
	st := g.copyStyle(nil, 0, 0)
	room := g.newRoom(st, floor)
	return room, g.makeBox(Rect{x, y, x + size, y + size}, room)
}

func TestAdjustLinkBarsDropAlcove(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	g.l.params.maxBars = 10
	_, walls := testRoom(g, 0, 0, 256, 0)
	lock := &Quest{Goal: GoalSwitch, Type: LineS1DoorOpen}

	bars := 0
	for seed := int64(1); seed <= 60; seed++ {
		g.rng = newStream(seed)
		k := &Link{Type: BasicLink, Width: 64, Core: 64, Recess: 16, Alcove: 32,
			Bits: LinkAlcove | LinkRecess | LinkNearDoor | LinkFarDoor}

		g.adjustLink(k, walls[0], lock)

		if k.Has(LinkBars) {
			bars++
			assert.False(t, k.Has(LinkAlcove), "seed %d", seed)
			assert.Zero(t, k.Alcove, "seed %d", seed)
		}
		assert.True(t, linkFitsQ(k, lock), "seed %d", seed)
	}
	require.NotZero(t, bars)
}

func TestAdjustLinkNukageRise(t *testing.T) {
	tests := []struct {
		name  string
		bits  LinkBits
		delta int
		want  int
	}{
		{"climb out of the core", LinkNukage, 24, maxStep - nukageDrop},
		{"drop out of the core", LinkNukage, -24, -24},
		{"small climb", LinkNukage, 8, 8},
		{"no nukage", 0, 24, 24},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGenerator(t, nil)
			g.start(0)
			_, walls := testRoom(g, 0, 0, 256, 0)
			k := &Link{Type: BasicLink, Width: 64, Core: 64, Bits: tt.bits, FloorDelta: tt.delta}

			g.adjustLink(k, walls[0], nil)

			assert.Equal(t, tt.want, k.FloorDelta)
			// Every floor the player crosses is within a step of the last
			core := -nukageDrop
			if !k.Has(LinkNukage) {
				core = 0
			}
			assert.LessOrEqual(t, k.FloorDelta-core, maxStep)
		})
	}
}

func TestAdjustLinkFloorLimit(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	_, walls := testRoom(g, 0, 0, 256, floorLimit-16)
	k := &Link{Type: BasicLink, Width: 64, Core: 96, Bits: LinkSteps, FloorDelta: 48, StepCount: 2}

	g.adjustLink(k, walls[0], nil)

	assert.Equal(t, -48, k.FloorDelta)
	assert.True(t, k.Has(LinkSteps))
}

func TestRandomLinkIsFinal(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	g.rollParams(g.cfg.slot(0))
	room, walls := testRoom(g, 0, 0, 512, 0)
	st := g.l.Sector(room).Style

	for i := 0; i < 200; i++ {
		k := g.randomLink(walls[i%4], st, nil)
		if k.Type != BasicLink {
			continue
		}
		if k.Has(LinkAlcove) {
			assert.True(t, k.nearStage() && k.farStage(), "alcove core touches a room")
		}
		if k.Has(LinkNukage) {
			assert.LessOrEqual(t, k.FloorDelta, maxStep-nukageDrop)
		}
		if !k.Has(LinkSteps | LinkLift) {
			assert.LessOrEqual(t, abs(k.FloorDelta), maxStep)
		}
	}
}
