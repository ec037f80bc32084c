package slump

const (
	objectTries  = 10 // candidate spots tried per object
	wallGap      = 8  // space kept between a thing and a wall
)

// populate stocks room with monsters and the pickups the economy says the
// player needs. The kinds are handled in a random order.
func (g *Generator) populate(room SectorID) {
	kinds := []func(SectorID){
		g.populateMonsters,
		g.populateHealth,
		g.populateAmmo,
		g.populateArmor,
		g.populateWeapons,
	}
	g.shuffle(len(kinds), func(i, j int) { kinds[i], kinds[j] = kinds[j], kinds[i] })
	for _, k := range kinds {
		k(room)
	}
	if g.rollpercent(g.l.params.pBarrel) {
		g.populateBarrels(room)
	}
	g.populatePowerups(room)
}

// populatePowerups drops a radiation suit in the first nukage room and, now
// and then, the level's only computer map.
func (g *Generator) populatePowerups(room SectorID) {
	l := g.l
	if f := l.Sector(room).FloorFlat; !l.seenSuits && f != nil && f.Is(FlatNukage) {
		if suit := g.lookup(IDRadSuit); suit != nil && g.placeObject(room, suit, allTiers, 0) != NoThing {
			l.seenSuits = true
		}
	}
	if !l.seenMap && g.rollpercent(5) {
		if m := g.lookup(IDComputerMap); m != nil && g.placeObject(room, m, allTiers, 0) != NoThing {
			l.seenMap = true
		}
	}
}

func (g *Generator) populateMonsters(room SectorID) {
	l := g.l
	r := l.findRec(room)
	theme := l.Sector(room).Style.Theme
	n := 1 + r.Width()*r.Height()/(192*192)
	n = min(g.between(n/2, n), 8)
	if g.cfg.ImmediateMonsters {
		n = max(n, 1)
	}
	for i := 0; i < n; i++ {
		m, mask := g.timelyMonster(theme, min(r.Width(), r.Height())/2, false)
		if m == nil || mask == 0 {
			return
		}
		if g.rollpercent(20) {
			mask |= ThingAmbush
		}
		if g.placeObject(room, m, mask, g.between(0, 7)*45) != NoThing {
			g.updateHAAForMonster(m, mask)
		}
	}
}

func (g *Generator) populateHealth(room SectorID) {
	for i := 0; i < 3; i++ {
		item, mask := g.timelyHealth()
		if item == nil || g.placeObject(room, item, mask, 0) == NoThing {
			return
		}
		g.updateHAAForPickup(item, mask)
	}
}

func (g *Generator) populateAmmo(room SectorID) {
	for i := 0; i < 4; i++ {
		item, mask := g.timelyAmmo()
		if item == nil || g.placeObject(room, item, mask, 0) == NoThing {
			return
		}
		g.updateHAAForPickup(item, mask)
	}
}

func (g *Generator) populateArmor(room SectorID) {
	item, mask := g.timelyArmor()
	if item == nil || !g.rollpercent(60) {
		return
	}
	if g.placeObject(room, item, mask, 0) != NoThing {
		g.updateHAAForPickup(item, mask)
	}
}

// populateWeapons hands out the next weapon, always when some tier still has
// only the pistol.
func (g *Generator) populateWeapons(room SectorID) {
	item, mask := g.timelyWeapon()
	if item == nil {
		return
	}
	pistol := false
	for t := range g.haa.Tiers {
		pistol = pistol || !g.haa.Tiers[t].goodRanged()
	}
	if !pistol && !g.rollpercent(40) {
		return
	}
	if g.placeObject(room, item, mask, 0) != NoThing {
		g.updateHAAForPickup(item, mask)
	}
}

func (g *Generator) populateBarrels(room SectorID) {
	barrel := g.lookup(IDBarrel)
	if barrel == nil {
		return
	}
	for i := g.between(1, 4); i > 0; i-- {
		g.placeObject(room, barrel, allTiers, 0)
	}
}

// placeObject puts a thing of genus gen somewhere free in room.
func (g *Generator) placeObject(room SectorID, gen *Genus, opts ThingOptions, angle int) ThingID {
	return g.placeObjectInRegion(room, g.l.findRec(room), gen, opts, angle)
}

// placeObjectInRegion puts a thing of genus gen in the part r of sector s.
// Candidates are the four corners, eight random spots and, when r is big
// enough for them to differ from the corners, the middles of its four
// quadrants. Up to objectTries of them are tried in random order. A region
// too small for the thing fails without drawing from the stream.
func (g *Generator) placeObjectInRegion(s SectorID, r Rect, gen *Genus, opts ThingOptions, angle int) ThingID {
	l := g.l
	half := gen.Width/2 + wallGap
	if r.Width() < 2*half || r.Height() < 2*half {
		return NoThing
	}
	deck := g.candidateSpots(r, half)
	for try := 0; try < objectTries && len(deck) > 0; try++ {
		i := g.roll(len(deck))
		p := deck[i]
		deck[i] = deck[len(deck)-1]
		deck = deck[:len(deck)-1]
		if l.roomAt(s, p.x, p.y, gen.Width) {
			return l.newThing(p.x, p.y, angle, gen, opts)
		}
	}
	return NoThing
}

// candidateSpots lists where placeObjectInRegion may try a thing kept half
// units from the edges of r.
func (g *Generator) candidateSpots(r Rect, half int) []point {
	lo, hi := point{r.MinX + half, r.MinY + half}, point{r.MaxX - half, r.MaxY - half}
	deck := []point{
		lo, {hi.x, lo.y}, hi, {lo.x, hi.y},
	}
	for i := 0; i < 8; i++ {
		deck = append(deck, point{g.between(lo.x, hi.x), g.between(lo.y, hi.y)})
	}
	if r.Width() < 4*half || r.Height() < 4*half {
		return deck
	}
	mid := point{(r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2}
	for _, q := range [][2]int{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
		x := clamp(mid.x+q[0]*r.Width()/4, lo.x, hi.x)
		y := clamp(mid.y+q[1]*r.Height()/4, lo.y, hi.y)
		deck = append(deck, point{x, y})
	}
	return deck
}

// roomAt reports whether a thing width wide fits at (x,y) in sector s: clear
// of walls, of other things and of the floor space inner sectors take up.
func (l *Level) roomAt(s SectorID, x, y, width int) bool {
	half := width/2 + wallGap
	box := Rect{x - half, y - half, x + half, y + half}
	outer := l.findRec(s)
	if box.MinX < outer.MinX || box.MaxX > outer.MaxX || box.MinY < outer.MinY || box.MaxY > outer.MaxY {
		return false
	}
	for _, ld := range l.linedefs {
		if ld.dead {
			continue
		}
		a, b := l.vertices[ld.From], l.vertices[ld.To]
		if segmentInRect(point{a.X, a.Y}, point{b.X, b.Y}, box) {
			return false
		}
	}
	for _, b := range l.blocked {
		if b.Overlaps(box) {
			return false
		}
	}
	for _, t := range l.things {
		if t.dead {
			continue
		}
		th := t.Genus.Width / 2
		if (Rect{t.X - th, t.Y - th, t.X + th, t.Y + th}).Overlaps(box) {
			return false
		}
	}
	return true
}

// placeInner finds a free w by h rectangle in room at least margin from its
// walls, for a pad, pillar or other inner sector. The caller adds it to the
// blocked list once built.
func (g *Generator) placeInner(room SectorID, w, h, margin int) (Rect, bool) {
	l := g.l
	outer := l.findRec(room)
	spanX, spanY := outer.Width()-2*margin-w, outer.Height()-2*margin-h
	if spanX < 0 || spanY < 0 {
		return Rect{}, false
	}
	for try := 0; try < 8; try++ {
		x := outer.MinX + margin + 8*g.roll(spanX/8+1)
		y := outer.MinY + margin + 8*g.roll(spanY/8+1)
		r := Rect{x, y, x + w, y + h}
		if l.innerFree(room, r) {
			return r, true
		}
	}
	return Rect{}, false
}

// innerFree reports whether r, inside room, is clear of walls, other inner
// sectors, blocked space and things.
func (l *Level) innerFree(room SectorID, r Rect) bool {
	grown := Rect{r.MinX - wallGap, r.MinY - wallGap, r.MaxX + wallGap, r.MaxY + wallGap}
	if !l.emptyRect(grown, room) {
		return false
	}
	for _, b := range l.blocked {
		if b.Overlaps(grown) {
			return false
		}
	}
	for _, t := range l.things {
		if t.dead {
			continue
		}
		th := t.Genus.Width / 2
		if (Rect{t.X - th, t.Y - th, t.X + th, t.Y + th}).Overlaps(grown) {
			return false
		}
	}
	return true
}
