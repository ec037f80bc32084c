package slump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceObjectTooSmall(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	s := g.l.newSector(&Sector{})
	g.makeBox(Rect{0, 0, 256, 256}, s)
	imp := &Genus{ID: 3001, Width: 20}
	g.rng = newStream(77)

	id := g.placeObjectInRegion(s, Rect{0, 0, 30, 256}, imp, allTiers, 0)

	assert.Equal(t, NoThing, id)
	assert.Empty(t, g.l.Things())
	twin := newStream(77)
	assert.Equal(t, twin.Int63(), g.rng.Int63(), "no draws taken")
}

func TestPlaceObject(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	s := g.l.newSector(&Sector{})
	g.makeBox(Rect{0, 0, 256, 256}, s)
	imp := &Genus{ID: 3001, Width: 20}

	var placed []ThingID
	for i := 0; i < 4; i++ {
		id := g.placeObject(s, imp, allTiers, 90)
		require.NotEqual(t, NoThing, id)
		placed = append(placed, id)
	}

	for i, a := range placed {
		ta := g.l.Thing(a)
		assert.Equal(t, 90, ta.Angle)
		assert.Equal(t, allTiers, ta.Options)
		assert.True(t, ta.X >= 18 && ta.X <= 238 && ta.Y >= 18 && ta.Y <= 238, "thing %d too close to a wall", i)
		for _, b := range placed[i+1:] {
			tb := g.l.Thing(b)
			assert.False(t, abs(ta.X-tb.X) < 20 && abs(ta.Y-tb.Y) < 20, "things overlap")
		}
	}
}

func TestRoomAtBlocked(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	l := g.l
	s := l.newSector(&Sector{})
	g.makeBox(Rect{0, 0, 256, 256}, s)

	assert.True(t, l.roomAt(s, 128, 128, 20))
	assert.False(t, l.roomAt(s, 10, 128, 20), "too close to the west wall")
	assert.False(t, l.roomAt(s, 300, 128, 20), "outside the room")

	l.blocked = append(l.blocked, Rect{100, 100, 160, 160})
	assert.False(t, l.roomAt(s, 128, 128, 20))
	assert.True(t, l.roomAt(s, 40, 40, 20))
}

func TestPlaceInner(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	s := g.l.newSector(&Sector{})
	g.makeBox(Rect{0, 0, 256, 256}, s)

	r, ok := g.placeInner(s, 64, 64, 32)
	require.True(t, ok)
	assert.GreaterOrEqual(t, r.MinX, 32)
	assert.LessOrEqual(t, r.MaxX, 224)
	assert.Equal(t, 64, r.Width())
	assert.Zero(t, r.MinX%8)

	_, ok = g.placeInner(s, 256, 64, 32)
	assert.False(t, ok)
}

func TestCandidateSpots(t *testing.T) {
	tests := []struct {
		name string
		r    Rect
		n    int
	}{
		{"room", Rect{0, 0, 256, 256}, 16},
		{"corridor", Rect{0, 0, 64, 256}, 12},
		{"just fits", Rect{0, 0, 36, 36}, 12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGenerator(t, nil)
			g.start(0)

			spots := g.candidateSpots(tt.r, 18)

			assert.Len(t, spots, tt.n)
			for _, p := range spots {
				assert.True(t, p.x >= tt.r.MinX+18 && p.x <= tt.r.MaxX-18, "x %d", p.x)
				assert.True(t, p.y >= tt.r.MinY+18 && p.y <= tt.r.MaxY-18, "y %d", p.y)
			}
		})
	}
}
