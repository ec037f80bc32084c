package slump

// boxSides describes a rectangular sector just built against a linedef: the
// wall opposite the starting line, and the walls running from the starting
// line's From end and To end.
type boxSides struct {
	sector   SectorID
	far      LinedefID
	fromSide []LinedefID
	toSide   []LinedefID
}

// newSectorFrom makes a sector that copies heights and look from model.
func (g *Generator) newSectorFrom(model SectorID, kind SectorKind) SectorID {
	m := g.l.Sector(model)
	return g.l.newSector(&Sector{
		FloorHeight:   m.FloorHeight,
		CeilingHeight: m.CeilingHeight,
		FloorFlat:     m.FloorFlat,
		CeilingFlat:   m.CeilingFlat,
		Light:         m.Light,
		Style:         m.Style,
		Kind:          kind,
		Room:          m.Room,
	})
}

// makeTwoSided gives ld a left sidedef facing s.
func (l *Level) makeTwoSided(ld LinedefID, s SectorID) {
	line := l.Linedef(ld)
	line.Left = l.newSidedef(s, false)
	line.Flags |= LineTwoSided
	line.Flags &^= LineImpassable
	if line.Right != NoSidedef {
		l.sidedefs[line.Right].IsBoundary = false
		l.invalidateSector(l.sidedefs[line.Right].Sector)
	}
}

// lefthandBoxExt builds sector s as a rectangle depth units deep on the left
// of ld, extended along the line by before and after. ld becomes two-sided.
// Extensions must lie in open space.
func (g *Generator) lefthandBoxExt(ld LinedefID, depth, before, after int, s SectorID) boxSides {
	l := g.l
	n := l.linelen(ld)
	line := l.Linedef(ld)
	from, to := line.From, line.To
	l.makeTwoSided(ld, s)

	a, b := from, to
	if before > 0 {
		a = l.newVertex(l.pointFrom(ld, -before, 0))
	}
	if after > 0 {
		b = l.newVertex(l.pointFrom(ld, n+after, 0))
	}
	d := l.newVertex(l.pointFrom(ld, -before, depth))
	c := l.newVertex(l.pointFrom(ld, n+after, depth))

	out := boxSides{sector: s}
	if before > 0 {
		out.fromSide = append(out.fromSide, l.newLinedef(from, a, s))
	}
	out.fromSide = append(out.fromSide, l.newLinedef(a, d, s))
	out.far = l.newLinedef(d, c, s)
	out.toSide = append(out.toSide, l.newLinedef(c, b, s))
	if after > 0 {
		out.toSide = append(out.toSide, l.newLinedef(b, to, s))
	}
	l.invalidateSector(s)
	return out
}

// lefthandBox is lefthandBoxExt without extensions.
func (g *Generator) lefthandBox(ld LinedefID, depth int, s SectorID) boxSides {
	return g.lefthandBoxExt(ld, depth, 0, 0, s)
}

// boxBetween builds sector s between ld and target, an antiparallel linedef
// of the same length lying to ld's left. Both become two-sided.
func (g *Generator) boxBetween(ld, target LinedefID, s SectorID) boxSides {
	l := g.l
	a, t := l.Linedef(ld), l.Linedef(target)
	l.makeTwoSided(ld, s)
	l.makeTwoSided(target, s)
	out := boxSides{
		sector:   s,
		far:      target,
		fromSide: []LinedefID{l.newLinedef(a.From, t.To, s)},
		toSide:   []LinedefID{l.newLinedef(t.From, a.To, s)},
	}
	l.invalidateSector(s)
	return out
}

// roomOnRight builds sector s as a rectangle depth units deep on the right of
// ld, extended along the line by before and after. The new walls are returned
// clockwise starting after ld.
func (g *Generator) roomOnRight(ld LinedefID, before, after, depth int, s SectorID) []LinedefID {
	l := g.l
	n := l.linelen(ld)
	line := l.Linedef(ld)
	from, to := line.From, line.To
	if line.Right == NoSidedef {
		line.Right = l.newSidedef(s, true)
	}
	a, b := from, to
	if before > 0 {
		a = l.newVertex(l.pointFrom(ld, -before, 0))
	}
	if after > 0 {
		b = l.newVertex(l.pointFrom(ld, n+after, 0))
	}
	c := l.newVertex(l.pointFrom(ld, n+after, -depth))
	d := l.newVertex(l.pointFrom(ld, -before, -depth))

	var walls []LinedefID
	if after > 0 {
		walls = append(walls, l.newLinedef(to, b, s))
	}
	walls = append(walls, l.newLinedef(b, c, s), l.newLinedef(c, d, s), l.newLinedef(d, a, s))
	if before > 0 {
		walls = append(walls, l.newLinedef(a, from, s))
	}
	// Collinear pieces align with ld
	if after > 0 {
		l.chain(ld, walls[0])
	}
	if before > 0 {
		l.chain(walls[len(walls)-1], ld)
	}
	l.invalidateSector(s)
	return walls
}

// chain puts next after prev in prev's texture alignment group.
func (l *Level) chain(prev, next LinedefID) {
	p, n := l.Linedef(prev), l.Linedef(next)
	if p.GroupNext != NoLinedef || n.GroupPrev != NoLinedef {
		return
	}
	p.GroupNext, n.GroupPrev = next, prev
}

// makeBox builds a free-standing rectangular sector s with boundary walls
// running clockwise from the top left corner.
func (g *Generator) makeBox(r Rect, s SectorID) []LinedefID {
	l := g.l
	tl := l.newVertex(r.MinX, r.MaxY)
	tr := l.newVertex(r.MaxX, r.MaxY)
	br := l.newVertex(r.MaxX, r.MinY)
	bl := l.newVertex(r.MinX, r.MinY)
	lines := []LinedefID{
		l.newLinedef(tl, tr, s),
		l.newLinedef(tr, br, s),
		l.newLinedef(br, bl, s),
		l.newLinedef(bl, tl, s),
	}
	l.invalidateSector(s)
	return lines
}

// innerBox builds a rectangle inside sector outer. With s set it is a
// two-sided sector s surrounded by outer; with NoSector it is a solid pillar
// whose walls face outer.
func (g *Generator) innerBox(outer SectorID, r Rect, s SectorID) []LinedefID {
	l := g.l
	tl := l.newVertex(r.MinX, r.MaxY)
	tr := l.newVertex(r.MaxX, r.MaxY)
	br := l.newVertex(r.MaxX, r.MinY)
	bl := l.newVertex(r.MinX, r.MinY)
	if s == NoSector {
		lines := []LinedefID{
			l.newLinedef(tl, bl, outer),
			l.newLinedef(bl, br, outer),
			l.newLinedef(br, tr, outer),
			l.newLinedef(tr, tl, outer),
		}
		for _, ld := range lines {
			l.sidedefs[l.linedefs[ld].Right].IsBoundary = false
		}
		l.invalidateSector(outer)
		return lines
	}
	lines := []LinedefID{
		l.newLinedef(tl, tr, s),
		l.newLinedef(tr, br, s),
		l.newLinedef(br, bl, s),
		l.newLinedef(bl, tl, s),
	}
	for _, ld := range lines {
		l.makeTwoSided(ld, outer)
	}
	l.invalidateSector(s)
	return lines
}
