package slump

// patchTextures fills every texture slot the engine will draw but the
// builders left empty, and every missing flat. One-sided walls get their
// sector's main wall texture; steps in floor or ceiling between two sectors
// get the higher side's look.
func (g *Generator) patchTextures() {
	l := g.l
	wall := func(s SectorID) *Texture {
		if st := l.Sector(s).Style; st != nil && st.Wall0 != nil {
			return st.Wall0
		}
		return g.errorTexture
	}
	for _, ld := range l.linedefs {
		if ld.dead || ld.Right == NoSidedef {
			continue
		}
		right := l.sidedefs[ld.Right]
		if ld.Left == NoSidedef {
			if right.Middle == nil {
				right.Middle = wall(right.Sector)
			}
			continue
		}
		left := l.sidedefs[ld.Left]
		rs, ls := l.Sector(right.Sector), l.Sector(left.Sector)
		patchSide(right, rs, ls, wall(right.Sector))
		patchSide(left, ls, rs, wall(left.Sector))
	}
	for _, s := range l.sectors {
		if s.dead {
			continue
		}
		if s.FloorFlat == nil {
			s.FloorFlat = g.errorFlat
		}
		if s.CeilingFlat == nil {
			s.CeilingFlat = g.errorFlat
		}
	}
}

// patchSide gives sd, which faces own across a line from other, the upper
// and lower textures the height difference exposes.
func patchSide(sd *Sidedef, own, other *Sector, tex *Texture) {
	if other.CeilingHeight < own.CeilingHeight && sd.Upper == nil {
		sd.Upper = tex
	}
	if other.FloorHeight > own.FloorHeight && sd.Lower == nil {
		sd.Lower = tex
	}
}

// alignGroups runs along each alignment group and offsets every piece so its
// texture continues from the previous piece.
func (g *Generator) alignGroups() {
	l := g.l
	for i, ld := range l.linedefs {
		if ld.dead || ld.GroupPrev != NoLinedef || ld.GroupNext == NoLinedef || ld.Right == NoSidedef {
			continue
		}
		prev := LinedefID(i)
		for next := ld.GroupNext; next != NoLinedef; next = l.linedefs[next].GroupNext {
			nl := l.linedefs[next]
			if nl.dead || nl.Right == NoSidedef {
				break
			}
			p, n := l.sidedefs[l.linedefs[prev].Right], l.sidedefs[nl.Right]
			if p.Middle != nil && p.Middle == n.Middle {
				n.XOffset = (p.XOffset + l.linelen(prev)) % max(1, n.Middle.Width)
			}
			prev = next
		}
	}
}
