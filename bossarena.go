package slump

import "github.com/sirupsen/logrus"

type ArenaProps uint8

const (
	ArenaPillars ArenaProps = 1 << iota
	ArenaLamps
	ArenaLit
	ArenaDais
)

// Arena is the boss fight that ends some levels: a big room, with a dais in
// the middle holding the exit, a boss and the weapon and ammo to beat it.
type Arena struct {
	Outer, Inner SectorID
	Boss         *Genus
	Count        int
	Weapon       *Genus
	Ammo         *Genus
	Props        ArenaProps
}

const maxArenaAmmo = 16

// chooseBoss picks the boss monster and how many of them. Levels too early
// for a real boss get a pair of the biggest ordinary monster.
func (g *Generator) chooseBoss(theme int) (*Genus, int) {
	if boss, ok := pickNth(g, g.cat.genera, func(m *Genus) bool {
		return m.Is(GenusBoss) && g.properMonster(m, theme, 256, true)
	}); ok {
		return boss, 1
	}
	var best *Genus
	for _, m := range g.cat.genera {
		if !m.Is(GenusBig) || !g.properMonster(m, theme, 128, false) {
			continue
		}
		if best == nil || m.AmmoToKill[tierHard] > best.AmmoToKill[tierHard] {
			best = m
		}
	}
	if best != nil {
		return best, 2
	}
	// A forced arena early in the game: anything that is not a boss
	for _, m := range g.cat.genera {
		if !m.Is(GenusMonster) || m.Is(GenusBoss) || !m.Games.allows(g.cfg.Game) || m.Width > 128 {
			continue
		}
		if best == nil || m.AmmoToKill[tierHard] > best.AmmoToKill[tierHard] {
			best = m
		}
	}
	return best, 3
}

// chooseArenaWeapon returns the weapon to hand out before the fight and the
// ammo that feeds it.
func (g *Generator) chooseArenaWeapon() (*Genus, *Genus) {
	if g.rollpercent(50) {
		if w, a := g.lookup(IDPlasma), g.lookup(IDCellPack); w != nil && a != nil && w.MinMap <= g.l.params.slot.number() {
			return w, a
		}
	}
	if w, a := g.lookup(IDRocketLauncher), g.lookup(IDRocketBox); w != nil && a != nil {
		return w, a
	}
	return g.lookup(IDShotgun), g.lookup(IDShellBox)
}

// buildArena builds the arena off q's last room and puts the exit in it. It
// returns the arena sector, or NoSector when there was no space.
func (g *Generator) buildArena(q *Quest) SectorID {
	l := g.l
	theme := l.Sector(q.Current).Style.Theme
	boss, count := g.chooseBoss(theme)
	if boss == nil {
		internalf("arena missing a boss")
	}
	room := g.linkRoom(q.Current, nil, g.pick32(640, 1024))
	if room == NoSector {
		return NoSector
	}
	sec := l.Sector(room)
	sec.Kind = KindArena
	st := sec.Style
	a := &Arena{Outer: room, Inner: NoSector, Boss: boss, Count: count}
	a.Weapon, a.Ammo = g.chooseArenaWeapon()
	sec.Arena = a
	l.Arenas = append(l.Arenas, a)
	l.populated.Put(room)

	sec.CeilingHeight = max(sec.CeilingHeight, sec.FloorHeight+256)
	if g.sky != nil && g.rollpercent(50) {
		sec.CeilingFlat = g.sky
	}
	if g.rollpercent(50) {
		a.Props |= ArenaLit
		sec.Light = 208
	}

	// Dais with the exit
	outer := l.findRec(room)
	cx, cy := (outer.MinX+outer.MaxX)/2, (outer.MinY+outer.MaxY)/2
	dais := Rect{cx - 64, cy - 64, cx + 64, cy + 64}
	if l.innerFree(room, dais) {
		s := g.newSectorFrom(room, KindInner)
		ds := l.Sector(s)
		ds.FloorHeight += 16
		ds.FloorFlat = st.GateFlat
		ds.Light = min(255, ds.Light+32)
		for _, ld := range g.innerBox(room, dais, s) {
			l.Sidedef(l.Linedef(ld).Left).Lower = st.Support0
		}
		l.blocked = append(l.blocked, dais)
		a.Inner = s
		a.Props |= ArenaDais
	}
	if g.rollpercent(50) {
		a.Props |= ArenaPillars
		g.centerPillars(room)
	}
	if st.Lamp != nil && g.rollpercent(60) {
		a.Props |= ArenaLamps
		for i := 0; i < 4; i++ {
			g.placeObject(room, st.Lamp, allTiers, 0)
		}
	}

	g.equipForArena(room, a)
	for i := 0; i < count; i++ {
		if g.placeObject(room, boss, allTiers, g.between(0, 7)*45) != NoThing {
			g.updateHAAForMonster(boss, allTiers)
		}
	}
	if a.Inner != NoSector {
		g.placeExitOnDais(a.Inner)
	} else {
		g.placeExit(room)
	}
	g.log.WithFields(logrus.Fields{"boss": boss.Name, "count": count, "room": room}).Info("Built arena")
	return room
}

// equipForArena hands out the arena weapon, then ammo until every tier can
// afford the fight, then health.
func (g *Generator) equipForArena(room SectorID, a *Arena) {
	if a.Weapon != nil && g.placeObject(room, a.Weapon, allTiers, 0) != NoThing {
		g.updateHAAForPickup(a.Weapon, allTiers)
		g.haaUnpend()
	}
	if a.Ammo != nil {
		for i := 0; i < maxArenaAmmo; i++ {
			mask := g.neediest(func(t *Tier) float64 { return t.Ammo - a.ammoNeeded(t) }, 0)
			if mask == 0 || g.placeObject(room, a.Ammo, mask, 0) == NoThing {
				break
			}
			g.updateHAAForPickup(a.Ammo, mask)
		}
	}
	for i := 0; i < 3; i++ {
		item, mask := g.timelyHealth()
		if item == nil || g.placeObject(room, item, mask, 0) == NoThing {
			break
		}
		g.updateHAAForPickup(item, mask)
	}
}

// ammoNeeded is the ammo tier t will spend on the bosses, with a margin.
func (a *Arena) ammoNeeded(t *Tier) float64 {
	need := 0.0
	for tier := range a.Boss.AmmoToKill {
		need = max(need, a.Boss.AmmoToKill[tier])
	}
	if t.melee() {
		need /= 2
	}
	return need * float64(a.Count) * 1.1
}

// placeExitOnDais makes the edges of the dais end the level.
func (g *Generator) placeExitOnDais(dais SectorID) {
	l := g.l
	for _, ld := range l.boundaryOf(dais) {
		l.Linedef(ld).Type = LineW1Exit
	}
}
