package slump

// makeDecroom fills the space enclosed by near, far and the flanks of two
// twin passages with a sector the player can see into but not enter.
func (g *Generator) makeDecroom(near, far LinedefID, left, right []LinedefID, from SectorID) {
	l := g.l
	walls := append([]LinedefID{near, far}, left...)
	walls = append(walls, right...)
	s := g.newSectorFrom(from, KindDecroom)
	sec := l.Sector(s)
	st := sec.Style
	hi := sec.FloorHeight
	for _, ld := range walls {
		hi = max(hi, l.Sector(l.rightSector(ld)).FloorHeight)
	}
	if g.rollpercent(40) {
		sec.FloorHeight = hi - 16 - 8*g.roll(3)
		sec.FloorFlat = st.Nukage
		sec.Special = TypeDamage5
	} else {
		sec.FloorHeight = hi + 32 + 8*g.roll(4)
		sec.FloorFlat = g.randomFlat0(st.Theme, FlatFloor)
	}
	sec.CeilingHeight = sec.FloorHeight + 64 + 32*g.roll(3)
	sec.Light = clamp(sec.Light+16*g.between(-2, 2), 96, 255)
	for _, ld := range walls {
		line := l.Linedef(ld)
		l.makeTwoSided(ld, s)
		line.Flags |= LineImpassable
		right := l.Sidedef(line.Right)
		right.Middle = nil
		if st.Grated && st.Grating != nil {
			right.Middle = st.Grating
			l.Sidedef(line.Left).Middle = st.Grating
		}
	}
	if g.rollpercent(40) {
		r := l.findRec(s)
		if m, mask := g.timelyMonster(st.Theme, min(r.Width(), r.Height())-16, false); m != nil && mask != 0 {
			if g.placeObjectInRegion(s, r, m, mask, 0) != NoThing {
				g.updateHAAForMonster(m, mask)
			}
		}
	}
}

// slitify cuts a narrow window between the cores of two close twin passages.
func (g *Generator) slitify(p1, p2 passage) {
	l := g.l
	if p1.coreTo == NoLinedef || p2.coreFrom == NoLinedef {
		return
	}
	const width = 16
	d := l.linelen(p2.coreFrom)
	if d < 2*width || l.linelen(p1.coreTo) != d {
		return
	}
	off := (d - width) / 2
	a := l.splitOut(p2.coreFrom, off, width)
	b := l.splitOut(p1.coreTo, off, width)
	c1, c2 := l.Sector(p1.core), l.Sector(p2.core)
	s := g.newSectorFrom(p1.core, KindWindow)
	sec := l.Sector(s)
	sec.FloorHeight = max(c1.FloorHeight, c2.FloorHeight) + 40
	sec.CeilingHeight = min(sec.FloorHeight+16, min(c1.CeilingHeight, c2.CeilingHeight)-8)
	if sec.CeilingHeight <= sec.FloorHeight {
		sec.CeilingHeight = sec.FloorHeight + 8
	}
	box := g.boxBetween(a, b, s)
	for _, ld := range append(box.fromSide, box.toSide...) {
		l.Sidedef(l.Linedef(ld).Right).Middle = sec.Style.Support0
	}
}

// makeWindow opens a window in a wall of room onto an outdoor sector built
// behind it. A patio is a window with no sill that the player can walk out
// through. When the wall leaves room, the outdoor area is wider than the
// window; otherwise it is an airshaft.
func (g *Generator) makeWindow(room SectorID, patio bool) bool {
	l := g.l
	sec := l.Sector(room)
	st := sec.Style
	if g.sky == nil {
		return false
	}
	width := g.pick32(64, 128)
	sill, outDepth := 16, g.pick32(64, 192)
	for _, ld := range g.boundaryWalls(room, width+2*linkMargin) {
		n := l.linelen(ld)
		off := linkMargin + 8*g.roll((n-width-2*linkMargin)/8+1)
		ext := 0
		if n-width >= 128 && g.rollpercent(60) {
			ext = min(off-linkMargin, n-off-width-linkMargin, g.pick32(32, 96))
			ext = max(ext, 0)
		}
		if !l.emptyRect(l.leftRectAt(ld, off, width, sill, 0), NoSector) ||
			!l.emptyRect(l.leftRectAt(ld, off, width, sill+outDepth, ext), NoSector) {
			continue
		}
		piece := l.splitOut(ld, off, width)
		win := g.newSectorFrom(room, KindWindow)
		ws := l.Sector(win)
		if !patio {
			ws.FloorHeight = sec.FloorHeight + st.SillHeight
			ws.CeilingHeight = min(ws.FloorHeight+st.WindowHeight, sec.CeilingHeight-8)
		}
		box := g.lefthandBox(piece, sill, win)
		for _, s := range append(box.fromSide, box.toSide...) {
			l.Sidedef(l.Linedef(s).Right).Middle = st.Support0
		}
		out := g.newSectorFrom(room, KindOutdoor)
		os := l.Sector(out)
		os.FloorHeight = sec.FloorHeight - 8*g.roll(3)
		if !patio {
			os.FloorHeight = sec.FloorHeight - 16 - 8*g.roll(4)
		}
		os.CeilingHeight = max(sec.CeilingHeight, os.FloorHeight+128) + 32
		os.CeilingFlat = g.sky
		os.FloorFlat = g.randomFlatOr(st.Theme, FlatFloor, st.Floor0)
		os.Light = 192
		ob := g.lefthandBoxExt(box.far, outDepth, ext, ext, out)
		for _, s := range append(append(ob.fromSide, ob.toSide...), ob.far) {
			l.Sidedef(l.Linedef(s).Right).Middle = st.Outside
		}
		if !patio && st.Grated && st.Grating != nil {
			line := l.Linedef(piece)
			line.Flags |= LineImpassable
			l.Sidedef(line.Right).Middle = st.Grating
			l.Sidedef(line.Left).Middle = st.Grating
		}
		return true
	}
	return false
}
