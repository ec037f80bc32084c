package slump

// closet is a small rectangular sector carved out behind a room wall.
type closet struct {
	sector SectorID
	entry  LinedefID // the piece of room wall it opens from
	back   LinedefID // the wall opposite the entry
	sides  []LinedefID
}

// boundaryWalls returns room's exterior walls of at least minLen, in a
// random order.
func (g *Generator) boundaryWalls(room SectorID, minLen int) []LinedefID {
	l := g.l
	var walls []LinedefID
	for i, ld := range l.linedefs {
		if ld.dead || ld.Left != NoSidedef || ld.Right == NoSidedef {
			continue
		}
		sd := l.sidedefs[ld.Right]
		if sd.Sector != room || !sd.IsBoundary {
			continue
		}
		id := LinedefID(i)
		if !l.isOrthogonal(id) || l.linelen(id) < minLen {
			continue
		}
		walls = append(walls, id)
	}
	g.shuffle(len(walls), func(i, j int) { walls[i], walls[j] = walls[j], walls[i] })
	return walls
}

// findClosetWall returns a wall of room with free space width wide and depth
// deep behind it, and the offset along the wall where that space starts.
func (g *Generator) findClosetWall(room SectorID, width, depth int) (LinedefID, int, bool) {
	for _, ld := range g.boundaryWalls(room, width+2*linkMargin) {
		n := g.l.linelen(ld)
		off := linkMargin + 8*g.roll((n-width-2*linkMargin)/8+1)
		if g.l.emptyRect(g.l.leftRectAt(ld, off, width, depth, 0), NoSector) {
			return ld, off, true
		}
	}
	return NoLinedef, 0, false
}

// carveCloset builds a closet width by depth behind a wall of room. The
// closet copies the room's heights and look.
func (g *Generator) carveCloset(room SectorID, width, depth int, kind SectorKind) (closet, bool) {
	ld, off, ok := g.findClosetWall(room, width, depth)
	if !ok {
		return closet{}, false
	}
	entry := g.l.splitOut(ld, off, width)
	s := g.newSectorFrom(room, kind)
	box := g.lefthandBox(entry, depth, s)
	return closet{
		sector: s,
		entry:  entry,
		back:   box.far,
		sides:  append(box.fromSide, box.toSide...),
	}, true
}

// switchCloset puts a switch of type kind, tagged tag, at the back of a
// shallow closet in room.
func (g *Generator) switchCloset(room SectorID, kind LineType, tag int, tex *Texture) bool {
	l := g.l
	c, ok := g.carveCloset(room, 64, 16, KindCloset)
	if !ok {
		return false
	}
	sec := l.Sector(c.sector)
	st := sec.Style
	sec.CeilingHeight = sec.FloorHeight + 72
	sec.Light = min(255, sec.Light+16)
	back := l.Linedef(c.back)
	back.Type, back.Tag = kind, tag
	back.Flags |= LineLowerUnpegged
	l.Sidedef(back.Right).Middle = tex
	for _, ld := range c.sides {
		l.Sidedef(l.Linedef(ld).Right).Middle = st.Support0
	}
	return true
}

// ambushCloset hides monsters behind a wall of room that opens like a door
// when something triggers tag.
func (g *Generator) ambushCloset(room SectorID, tag int) (SectorID, bool) {
	l := g.l
	st := l.Sector(room).Style
	c, ok := g.carveCloset(room, st.ClosetWidth, st.ClosetDepth, KindCloset)
	if !ok {
		return NoSector, false
	}
	sec := l.Sector(c.sector)
	sec.CeilingHeight = sec.FloorHeight
	sec.Tag = tag
	sec.Light = st.ClosetLight
	l.Sidedef(l.Linedef(c.entry).Right).Upper = st.Wall0
	return c.sector, true
}

// fillAmbush puts timely monsters in closet s, which is closed until tag
// fires. The door's ceiling height is the room's.
func (g *Generator) fillAmbush(s SectorID, room SectorID) int {
	l := g.l
	r := l.findRec(s)
	theme := l.Sector(room).Style.Theme
	n := 0
	for i := 0; i < 3; i++ {
		m, mask := g.timelyMonster(theme, min(r.Width(), r.Height())-8, false)
		if m == nil || mask == 0 {
			break
		}
		t := g.placeObjectInRegion(s, r, m, mask|ThingAmbush, 0)
		if t == NoThing {
			break
		}
		g.updateHAAForMonster(m, mask)
		n++
		if !g.rollpercent(50) {
			break
		}
	}
	return n
}
