package slump

// embellishRoom adds the decorations a room gets before it is stocked:
// ceiling lights, pillars or constructs, windows, a light strip or a swollen
// wall, plaques with the odd secret closet, ambush closets and lamps.
func (g *Generator) embellishRoom(room SectorID) {
	l := g.l
	p := &l.params
	sec := l.Sector(room)
	st := sec.Style

	if g.rollpercent(p.pLightPanel) {
		g.lightPanel(room)
	}
	switch {
	case st.CenterPillars && g.rollpercent(p.pPillar):
		g.centerPillars(room)
	case g.rollpercent(p.pConstruct):
		g.placeConstruct(room)
	}
	if !g.cfg.ModEnabled("nowindows") && g.rollpercent(p.pWindow) {
		g.makeWindow(room, g.rollpercent(p.pPatio))
	}
	if g.rollpercent(p.pLightstrip) {
		if !g.rollpercent(50) || !g.swellBoundary(room) {
			g.lightstrip(room)
		}
	}
	if g.rollpercent(p.pPlaque) {
		g.plaque(room)
	}
	if g.rollpercent(p.pAmbush) {
		g.ambushRoom(room)
	}
	if st.Lamp != nil && g.rollpercent(p.pLamp) {
		for i := g.between(1, 2); i > 0; i-- {
			g.placeObject(room, st.Lamp, allTiers, 0)
		}
	}
	if g.cfg.BoringRooms {
		return
	}
	switch r := g.roll(100); {
	case r < 3:
		sec.Special = TypeBlinkRandom
	case r < 6:
		sec.Special = TypeFlickerRandom
	case r < 8:
		sec.Special = TypeOscillate
	case r < 12 && g.sky != nil && room != l.FirstRoom:
		sec.CeilingFlat = g.sky
		sec.CeilingHeight += 32
	}
}

// lightPanel puts a bright ceiling panel somewhere in room.
func (g *Generator) lightPanel(room SectorID) {
	l := g.l
	size := g.pick32(64, 128)
	r, ok := g.placeInner(room, size, size, 32)
	if !ok {
		return
	}
	s := g.newSectorFrom(room, KindInner)
	sec := l.Sector(s)
	sec.CeilingFlat = sec.Style.CeilingLight
	sec.Light = min(255, sec.Light+32+16*g.roll(2))
	if sec.Style.LightBoxes {
		sec.CeilingHeight -= 8
	}
	g.innerBox(room, r, s)
}

// centerPillars stands one solid pillar in the middle of room, or four in a
// square in a big room.
func (g *Generator) centerPillars(room SectorID) {
	l := g.l
	outer := l.findRec(room)
	if outer.Width() < 256 || outer.Height() < 256 {
		return
	}
	size := g.pick32(32, 96)
	cx, cy := (outer.MinX+outer.MaxX)/2, (outer.MinY+outer.MaxY)/2
	centres := []point{{cx, cy}}
	if outer.Width() >= 512 && outer.Height() >= 512 {
		dx, dy := outer.Width()/4, outer.Height()/4
		centres = []point{{cx - dx, cy - dy}, {cx + dx, cy - dy}, {cx + dx, cy + dy}, {cx - dx, cy + dy}}
	}
	st := l.Sector(room).Style
	for _, c := range centres {
		r := Rect{c.x - size/2, c.y - size/2, c.x + size/2, c.y + size/2}
		if !l.innerFree(room, r) {
			continue
		}
		for _, ld := range g.innerBox(room, r, NoSector) {
			l.Sidedef(l.Linedef(ld).Right).Middle = st.Support0
		}
		l.blocked = append(l.blocked, r)
	}
}

// placeConstruct builds one of the theme's constructs, a raised box with its
// primary texture on one face.
func (g *Generator) placeConstruct(room SectorID) {
	l := g.l
	st := l.Sector(room).Style
	c := g.randomConstruct(st.Theme, st.ConstructFamily)
	if c == nil {
		c = g.randomConstruct(st.Theme, 0)
	}
	if c == nil || c.Primary == nil {
		return
	}
	r, ok := g.placeInner(room, c.Width, c.Depth, 32)
	if !ok {
		return
	}
	room0 := l.Sector(room)
	s := g.newSectorFrom(room, KindInner)
	sec := l.Sector(s)
	sec.FloorHeight = min(room0.FloorHeight+c.Height, room0.CeilingHeight-16)
	if c.Top != nil {
		sec.FloorFlat = c.Top
	}
	lines := g.innerBox(room, r, s)
	face := g.roll(len(lines))
	for i, ld := range lines {
		side := l.Sidedef(l.Linedef(ld).Left)
		switch {
		case i == face:
			side.Lower = c.Primary
			side.XOffset = c.PrimaryOffset
		case len(c.Secondary) > 0:
			side.Lower = c.Secondary[g.roll(len(c.Secondary))]
		default:
			side.Lower = c.Primary
		}
	}
	l.blocked = append(l.blocked, r)
}

// lightstrip cuts a shallow lit slot into a wall of room.
func (g *Generator) lightstrip(room SectorID) {
	l := g.l
	c, ok := g.carveCloset(room, g.pick32(64, 128), 8, KindCloset)
	if !ok {
		return
	}
	rs := l.Sector(room)
	st := rs.Style
	sec := l.Sector(c.sector)
	sec.FloorHeight = rs.FloorHeight + 32
	sec.CeilingHeight = max(sec.FloorHeight+24, rs.CeilingHeight-24)
	sec.Light = min(255, rs.Light+48)
	entry := l.Linedef(c.entry)
	entry.Flags |= LineImpassable
	l.Sidedef(entry.Right).Lower = st.Support0
	for _, ld := range append(c.sides, c.back) {
		l.Sidedef(l.Linedef(ld).Right).Middle = st.LightTex
	}
}

// swellBoundary pushes the middle of an untouched wall of room outwards,
// turning it into three walls with the outer two on the diagonal.
func (g *Generator) swellBoundary(room SectorID) bool {
	l := g.l
	outer := l.findRec(room)
	depth := 8 * g.between(2, 3)
	for _, ld := range g.boundaryWalls(room, 256) {
		a, b := l.ends(ld)
		n := l.linelen(ld)
		if (a.Y == b.Y && n != outer.Width()) || (a.X == b.X && n != outer.Height()) {
			continue
		}
		if !l.emptyLeftSide(ld, depth) {
			continue
		}
		w := 8 * ((n / 2) / 8)
		piece := l.centerOf(ld, w)
		x1, y1 := l.pointFrom(piece, depth, depth)
		x2, y2 := l.pointFrom(piece, w-depth, depth)
		line := l.Linedef(piece)
		end := line.To
		bulge := l.newVertex(x1, y1)
		far := l.newVertex(x2, y2)
		line.To = bulge
		for _, e := range [][2]VertexID{{bulge, far}, {far, end}} {
			id := l.newLinedef(e[0], e[1], NoSector)
			l.Linedef(id).Right = l.cloneSidedef(line.Right)
		}
		l.Sidedef(line.Right).IsBoundary = false
		l.invalidateSector(room)
		return true
	}
	return false
}

// plaque decorates a wall of room with a plaque, or hides a secret closet
// behind one.
func (g *Generator) plaque(room SectorID) {
	l := g.l
	st := l.Sector(room).Style
	if g.rollpercent(l.params.pSecret) {
		exit := l.secretExit.want && !l.secretExit.placed && g.rollpercent(50)
		if g.secretCloset(room, exit) {
			return
		}
	}
	if st.Plaque == nil {
		return
	}
	walls := g.boundaryWalls(room, 128)
	if len(walls) == 0 {
		return
	}
	width := min(st.Plaque.Width, 64)
	ld := l.centerOf(walls[0], width)
	sd := l.Sidedef(l.Linedef(ld).Right)
	sd.Middle = st.Plaque
	sd.XOffset = 0
	sd.YOffset = st.Plaque.YBias
	sd.IsBoundary = false
}

// ambushRoom hides monsters in closets that open when the player comes in.
// The room's entry line is the trigger, so it must not have a job already.
func (g *Generator) ambushRoom(room SectorID) {
	l := g.l
	entry := l.Sector(room).entry
	if entry == NoLinedef || l.Linedef(entry).Type != LineNone {
		return
	}
	tag := l.newTag()
	n := 0
	for i := g.between(1, 2); i > 0; i-- {
		c, ok := g.ambushCloset(room, tag)
		if !ok {
			break
		}
		n += g.fillAmbush(c, room)
	}
	if n == 0 {
		return
	}
	line := l.Linedef(entry)
	line.Type, line.Tag = LineW1DoorOpen, tag
}
