package slump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// linesOfType returns the live linedefs of type kind.
func linesOfType(l *Level, kind LineType) []LinedefID {
	var ids []LinedefID
	for _, ld := range l.Linedefs() {
		if l.Linedef(ld).Type == kind {
			ids = append(ids, ld)
		}
	}
	return ids
}

func TestPlaceExitCrampedRoom(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	room, _ := testRoom(g, 0, 0, 48, 0)

	var got SectorID
	require.NotPanics(t, func() { got = g.placeExit(room) })

	assert.Equal(t, room, got)
	exits := linesOfType(g.l, LineS1Exit)
	require.Len(t, exits, 1)
	assert.Equal(t, room, g.l.rightSector(exits[0]))
	assert.Equal(t, 1, g.l.Warnings[warnNoSwitchWall])
}

func TestPlaceSwitchOnAnyWall(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	room, walls := testRoom(g, 0, 0, 256, 0)
	for _, ld := range walls {
		g.l.Sidedef(g.l.Linedef(ld).Right).IsBoundary = false
	}

	require.NotPanics(t, func() { g.placeSwitch(room, LineS1DoorOpen, 5) })

	switches := linesOfType(g.l, LineS1DoorOpen)
	require.Len(t, switches, 1)
	assert.Equal(t, 5, g.l.Linedef(switches[0]).Tag)
	assert.Contains(t, walls, switches[0])
}

func TestPlaceExitSpareRoom(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	g.rollParams(g.cfg.slot(0))
	first, _ := testRoom(g, 0, 0, 256, 0)
	g.l.FirstRoom = first
	room, walls := testRoom(g, 2048, 2048, 48, 0)
	for _, ld := range walls {
		line := g.l.Linedef(ld)
		line.Type = LineWRLiftMonsters
		g.l.Sidedef(line.Right).IsBoundary = false
	}

	var got SectorID
	require.NotPanics(t, func() { got = g.placeExit(room) })

	l := g.l
	require.Len(t, l.Rooms, 3)
	assert.Equal(t, l.Rooms[2], got)
	require.NotEmpty(t, l.Links)
	last := l.Links[len(l.Links)-1]
	assert.Equal(t, first, last.From)
	assert.Equal(t, got, last.To)
	exits := linesOfType(l, LineS1Exit)
	require.Len(t, exits, 1)
	assert.Equal(t, got, l.Sector(l.rightSector(exits[0])).Room)
	assert.True(t, l.populated.Has(got))
}

func TestExitPad(t *testing.T) {
	tests := []struct {
		kind  padKind
		warns int
	}{
		{padRaised, 1},
		{padHole, 0},
		{padGate, 0},
	}
	for _, tt := range tests {
		g := testGenerator(t, nil)
		g.start(0)
		room, _ := testRoom(g, 0, 0, 512, 0)
		st := g.l.Sector(room).Style

		require.True(t, g.exitPad(room, tt.kind))

		l := g.l
		pads := sectorsOfKind(l, KindInner)
		require.Len(t, pads, 1)
		pad := l.Sector(pads[0])
		lines := linesOfType(l, LineW1Exit)
		assert.Len(t, lines, 4)
		for _, ld := range lines {
			assert.Equal(t, pads[0], l.rightSector(ld))
		}
		switch tt.kind {
		case padHole:
			assert.Equal(t, -128, pad.FloorHeight)
		case padGate:
			assert.Equal(t, 8, pad.FloorHeight)
			assert.Equal(t, TypeBlink05, pad.Special)
			assert.Same(t, st.GateFlat, pad.FloorFlat)
			assert.Same(t, st.GateTex, l.Sidedef(l.Linedef(lines[0]).Left).Lower)
		default:
			assert.Equal(t, 8, pad.FloorHeight)
		}
		assert.Equal(t, tt.warns, l.Warnings[warnNoExit], "pad %d", tt.kind)
	}
}

func TestPlaceExitAsGate(t *testing.T) {
	p := NewParamMap().Set("p_gate_ends_level", "100")
	g := testGenerator(t, p)
	g.start(0)
	room, _ := testRoom(g, 0, 0, 512, 0)

	assert.Equal(t, room, g.placeExit(room))

	pads := sectorsOfKind(g.l, KindInner)
	require.Len(t, pads, 1)
	assert.Equal(t, TypeBlink05, g.l.Sector(pads[0]).Special)
	assert.Len(t, linesOfType(g.l, LineW1Exit), 4)
	assert.Empty(t, linesOfType(g.l, LineS1Exit))
}

func TestKeyPit(t *testing.T) {
	p := NewParamMap().Set("p_rising_room", "100")
	g := testGenerator(t, p)
	g.start(0)
	room, _ := testRoom(g, 0, 0, 512, 0)
	g.l.FirstRoom = room
	q := newQuest(GoalKey, room, 1)
	q.Thing = g.mustGenus(IDRedSkull)

	g.placeKey(q)

	l := g.l
	pits := sectorsOfKind(l, KindInner)
	require.Len(t, pits, 1)
	pit := l.Sector(pits[0])
	assert.LessOrEqual(t, pit.FloorHeight, -64)
	require.NotZero(t, pit.Tag)
	lines := linesOfType(l, LineW1FloorNextUp)
	assert.Len(t, lines, 4)
	for _, ld := range lines {
		assert.Equal(t, pit.Tag, l.Linedef(ld).Tag)
		assert.Equal(t, pits[0], l.rightSector(ld))
	}
	things := l.Things()
	require.Len(t, things, 1)
	key := l.Thing(things[0])
	assert.Equal(t, pits[0], l.sectorAt(key.X, key.Y))
	assert.Empty(t, l.surprises)
	assert.Equal(t, NoLinedef, q.Surprise)
	assert.True(t, l.reachable().Has(pits[0]))
}

func TestKeyPedestal(t *testing.T) {
	p := NewParamMap().Set("p_rising_room", "0")
	g := testGenerator(t, p)
	g.start(0)
	room, _ := testRoom(g, 0, 0, 512, 0)
	q := newQuest(GoalKey, room, 1)
	q.Thing = g.mustGenus(IDBlueCard)

	g.placeKey(q)

	l := g.l
	pads := sectorsOfKind(l, KindInner)
	require.Len(t, pads, 1)
	assert.Greater(t, l.Sector(pads[0]).FloorHeight, 0)
	assert.Zero(t, l.Sector(pads[0]).Tag)
	assert.Empty(t, linesOfType(l, LineW1FloorNextUp))
	assert.True(t, l.Sector(room).HasKey)
}

func TestWireSurprises(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)
	l := g.l
	room, _ := testRoom(g, 0, 0, 512, 0)
	pad := g.newSectorFrom(room, KindInner)
	lines := g.innerBox(room, Rect{128, 128, 192, 192}, pad)
	l.Linedef(lines[2]).Type = LineW1Exit
	q := newQuest(GoalKey, room, 1)
	q.AuxTag, q.Surprise = 12, lines[0]
	l.surprises = append(l.surprises, q)

	g.closeQuestFinal()

	for i, ld := range lines {
		line := l.Linedef(ld)
		if i == 2 {
			assert.Equal(t, LineW1Exit, line.Type, "a line with a job keeps it")
			continue
		}
		assert.Equal(t, LineW1DoorOpen, line.Type)
		assert.Equal(t, 12, line.Tag)
	}
	assert.Empty(t, l.surprises)
}
