package slump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwellBoundary(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	room, _ := testRoom(g, 0, 0, 512, 0)

	require.True(t, g.swellBoundary(room))

	l := g.l
	lines := l.boundaryOf(room)
	assert.Len(t, lines, 8)
	diagonal := 0
	from, to := map[VertexID]int{}, map[VertexID]int{}
	for _, ld := range lines {
		if !l.isOrthogonal(ld) {
			diagonal++
		}
		line := l.Linedef(ld)
		assert.Equal(t, room, l.rightSector(ld))
		from[line.From]++
		to[line.To]++
	}
	assert.Equal(t, 2, diagonal)
	// Still one closed loop
	assert.Equal(t, from, to)

	r := l.Bounds(room)
	grown := r.Width() + r.Height() - 1024
	assert.Contains(t, []int{16, 24}, grown)
	assert.NoError(t, l.CheckBoundingRects())
}

func TestSwellBoundaryKeepsThingsInside(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	room, _ := testRoom(g, 0, 0, 256, 0)
	require.True(t, g.swellBoundary(room))
	barrel := g.lookup(IDBarrel)
	require.NotNil(t, barrel)

	for i := 0; i < 40; i++ {
		g.placeObject(room, barrel, allTiers, 0)
	}
	require.NotEmpty(t, g.l.Things())
	for _, id := range g.l.Things() {
		th := g.l.Thing(id)
		assert.True(t, insideSector(g.l, room, th.X, th.Y), "thing at (%d,%d)", th.X, th.Y)
	}
}

// insideSector reports whether (x,y) is inside the walls of s, by counting
// the walls a ray to the right crosses.
func insideSector(l *Level, s SectorID, x, y int) bool {
	in := false
	for _, ld := range l.boundaryOf(s) {
		a, b := l.ends(ld)
		if (a.Y > y) == (b.Y > y) {
			continue
		}
		// x of the crossing, compared without dividing
		if (x-a.X)*(b.Y-a.Y) < (b.X-a.X)*(y-a.Y) == (b.Y > a.Y) {
			in = !in
		}
	}
	return in
}

func TestSwellBoundaryNeedsWholeWall(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	room, walls := testRoom(g, 0, 0, 512, 0)
	for _, ld := range walls {
		g.l.centerOf(ld, 64)
	}

	assert.False(t, g.swellBoundary(room))
	assert.Len(t, g.l.boundaryOf(room), 12)
}
