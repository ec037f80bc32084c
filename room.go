package slump

import "github.com/sirupsen/logrus"

const (
	minRoom     = 128
	minGateRoom = 256
	floorLimit  = 1024
)

// parallelAt returns a new linedef, without sidedefs, antiparallel to the
// width units of ld that start off units in, depth units to its left.
func (l *Level) parallelAt(ld LinedefID, off, width, depth int) LinedefID {
	x1, y1 := l.pointFrom(ld, off+width, depth)
	x2, y2 := l.pointFrom(ld, off, depth)
	return l.newLinedef(l.newVertex(x1, y1), l.newVertex(x2, y2), NoSector)
}

// roomShape is a rectangle on the right of an anchor linedef: it runs before
// units back from the anchor's start, after units on past its end, and depth
// units away from it.
type roomShape struct {
	before, after, depth int
}

func (l *Level) shapeRect(ld LinedefID, sh roomShape) Rect {
	n := l.linelen(ld)
	x1, y1 := l.pointFrom(ld, -sh.before, 0)
	x2, y2 := l.pointFrom(ld, n+sh.after, -sh.depth)
	return rectOf(point{x1, y1}, point{x2, y2})
}

// generateRoomOutline picks a size for a room on the right of anchor and
// shrinks it until it fits in free space. It fails when the room would have
// to get smaller than minSize. A nonzero size asks for a square room of that
// size instead of a random one.
func (g *Generator) generateRoomOutline(anchor LinedefID, size, minSize int) (roomShape, bool) {
	l := g.l
	n := l.linelen(anchor)
	w, d := size, size
	if size == 0 {
		w, d = g.pick32(256, 512), g.pick32(256, 512)
		if g.rollpercent(g.cfg.PBigify) {
			w += g.pick32(0, 512)
			d += g.pick32(0, 384)
		}
	}
	w = max(w, n, minSize)
	sh := roomShape{depth: d}
	sh.before = 8 * g.roll((w-n)/8+1)
	sh.after = w - n - sh.before

	for !l.emptyRect(l.shapeRect(anchor, sh), NoSector) {
		w = n + sh.before + sh.after
		switch {
		case sh.depth-32 >= minSize && (sh.depth >= w || w-32 < max(n, minSize)):
			sh.depth -= 32
		case w-32 >= max(n, minSize):
			// Take the width from the longer side
			if sh.before >= sh.after {
				sh.before = max(0, sh.before-32)
				sh.after = w - 32 - n - sh.before
			} else {
				sh.after = max(0, sh.after-32)
				sh.before = w - 32 - n - sh.after
			}
		default:
			return roomShape{}, false
		}
	}
	return sh, true
}

// newRoom makes an empty room sector styled st.
func (g *Generator) newRoom(st *Style, floor int) SectorID {
	l := g.l
	id := l.newSector(&Sector{
		FloorHeight:   floor,
		CeilingHeight: floor + st.WallHeight,
		FloorFlat:     st.Floor0,
		CeilingFlat:   st.Ceiling0,
		Light:         st.RoomLight,
		Style:         st,
		Kind:          KindRoom,
	})
	l.Sector(id).Room = id
	l.Sector(id).entry = NoLinedef
	l.Rooms = append(l.Rooms, id)
	return id
}

// firstRoom builds the room the player starts in, around the origin.
func (g *Generator) firstRoom() SectorID {
	var st *Style
	if t := g.l.params.secretTheme; t >= 0 {
		st = g.copyStyle(nil, t, 0)
	} else {
		st = g.copyStyle(nil, g.randomTheme(), 0)
	}
	w, d := g.pick32(256, 512), g.pick32(256, 512)
	s := g.newRoom(st, 0)
	g.makeBox(Rect{-w / 2, -d / 2, w - w/2, d - d/2}, s)
	g.l.FirstRoom = s
	return s
}

// makeNextRoom tries to build a room joined to from by a link. A non-nil
// lock is the quest whose reward must open the link. It returns NoSector if
// no wall of from has room for both.
func (g *Generator) makeNextRoom(from SectorID, lock *Quest) SectorID {
	return g.linkRoom(from, lock, 0)
}

// linkRoom is makeNextRoom for a room of the given size, or a random one
// when size is 0.
func (g *Generator) linkRoom(from SectorID, lock *Quest, size int) SectorID {
	l := g.l
	st := g.newStyle(l.Sector(from).Style, lock != nil)
	for _, ld := range g.boundaryWalls(from, 64) {
		for try := 0; try < 3; try++ {
			k := g.randomLink(ld, st, lock)
			n := l.linelen(ld)
			if !linkFitsQ(k, lock) || !linkFitsH(k, n) {
				continue
			}
			span, margin := k.span(), linkMargin
			switch k.Type {
			case GateLink:
				span = 64
			case OpenLink:
				span, margin = k.Width, 0
			}
			off := margin + 8*g.roll((n-span-2*margin)/8+1)
			if !g.linkFitsV(ld, off, k) {
				continue
			}
			if room := g.buildRoom(from, ld, off, span, k, st, lock, size); room != NoSector {
				return room
			}
		}
	}
	return NoSector
}

// buildRoom builds the room beyond the span units of ld starting off units
// in, and then the link to it. Nothing is left behind if the room does not
// fit.
func (g *Generator) buildRoom(from SectorID, ld LinedefID, off, span int, k *Link, st *Style, lock *Quest, size int) SectorID {
	l := g.l
	depth, minSize := k.depth(), minRoom
	if k.Type == GateLink {
		depth, minSize = g.pick32(256, 768), minGateRoom
	}
	if size > 0 {
		minSize = size * 3 / 4
	}
	anchor := l.parallelAt(ld, off, span, depth)
	sh, ok := g.generateRoomOutline(anchor, size, minSize)
	if !ok {
		l.deleteLinedef(anchor)
		return NoSector
	}

	room := g.newRoom(st, l.Sector(from).FloorHeight+k.FloorDelta)
	g.roomOnRight(anchor, sh.before, sh.after, sh.depth, room)
	sec := l.Sector(room)
	n := l.linelen(anchor)
	sec.EntryX, sec.EntryY = l.pointFrom(anchor, n/2, -32)

	goal := GoalNull
	if lock != nil {
		goal = lock.Goal
	}
	if k.Type == GateLink {
		g.gateLanding(room, lock)
	} else {
		near := l.splitOut(ld, off, span)
		g.establishLink(near, anchor, k, from, room, lock)
		sec.entry = anchor
	}
	l.Links = append(l.Links, RoomLink{From: from, To: room, Link: k, Lock: goal})
	g.log.WithFields(logrus.Fields{
		"room": room, "from": from, "link": k.Type, "bits": k.Bits, "lock": goal.String(),
	}).Debug("Made room")
	return room
}
