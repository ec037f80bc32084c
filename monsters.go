package slump

// healthMargin is the health a tier is expected to keep after a fight.
func (g *Generator) healthMargin() float64 {
	return 30 * (1 - g.cfg.MachoH)
}

// affordMask returns the tiers that can take on m now.
func (g *Generator) affordMask(m *Genus) ThingOptions {
	var mask ThingOptions
	for t := range g.haa.Tiers {
		ti := &g.haa.Tiers[t]
		health, ammo := ti.cost(m, t)
		if ti.Ammo >= ammo && ti.Health-health >= g.healthMargin() {
			mask |= tierBit(t)
		}
	}
	return mask
}

// properMonster reports whether m suits this level and a space width wide.
func (g *Generator) properMonster(m *Genus, theme, width int, bossOK bool) bool {
	if !m.Is(GenusMonster) || !g.genusFits(m, theme) || m.Width > width {
		return false
	}
	if m.Is(GenusBoss) && !bossOK {
		return false
	}
	if m.Is(GenusSpecial) && !g.cat.Themes[theme].Secret {
		return false
	}
	if m.MinMap > g.l.params.slot.number() {
		return false
	}
	if m.Props&g.cfg.RequiredMonsterBits != g.cfg.RequiredMonsterBits || m.Props&g.cfg.ForbiddenMonsterBits != 0 {
		return false
	}
	return true
}

// timelyMonster picks a monster the player can afford at as many tiers as
// possible and returns it with the tiers that can afford it. When nothing is
// affordable it returns the cheapest proper monster, whose mask may be empty.
// It returns nil only if no monster suits the level at all.
func (g *Generator) timelyMonster(theme, width int, bossOK bool) (*Genus, ThingOptions) {
	var proper []*Genus
	for _, m := range g.cat.genera {
		if g.properMonster(m, theme, width, bossOK) {
			proper = append(proper, m)
		}
	}
	if len(proper) == 0 {
		return nil, 0
	}
	masks := make(map[*Genus]ThingOptions, len(proper))
	for _, m := range proper {
		masks[m] = g.affordMask(m)
	}
	if m, ok := pickNth(g, proper, func(m *Genus) bool { return masks[m] == allTiers }); ok {
		return m, masks[m]
	}
	if m, ok := pickNth(g, proper, func(m *Genus) bool { return masks[m] != 0 }); ok {
		return m, masks[m]
	}
	cheapest := proper[0]
	for _, m := range proper[1:] {
		if m.AmmoToKill[tierHard] < cheapest.AmmoToKill[tierHard] {
			cheapest = m
		}
	}
	mask := masks[cheapest]
	if g.cfg.MachoU > 0 && g.rollpercent(int(g.cfg.MachoU*100)) {
		mask = allTiers
	}
	return cheapest, mask
}

// neediest returns the tiers whose value is below want.
func (g *Generator) neediest(value func(*Tier) float64, want float64) ThingOptions {
	var mask ThingOptions
	for t := range g.haa.Tiers {
		if value(&g.haa.Tiers[t]) < want {
			mask |= tierBit(t)
		}
	}
	return mask
}

func (g *Generator) lookup(id int) *Genus {
	gen, ok := g.cat.LookupGenus(id)
	if !ok || !gen.Games.allows(g.cfg.Game) {
		return nil
	}
	return gen
}

// timelyHealth picks a health item for the tiers that need one.
func (g *Generator) timelyHealth() (*Genus, ThingOptions) {
	mask := g.neediest(func(t *Tier) float64 { return t.Health }, 80)
	if mask == 0 {
		return nil, 0
	}
	worst := 100.0
	for t := range g.haa.Tiers {
		worst = min(worst, g.haa.Tiers[t].Health)
	}
	id := IDStimpack
	switch {
	case worst < 40 && g.rollpercent(15):
		id = IDSoulsphere
	case worst < 60:
		id = IDMedikit
	}
	gen := g.lookup(id)
	if gen == nil {
		return nil, 0
	}
	return gen, mask
}

// timelyArmor picks an armor item for the tiers that need one.
func (g *Generator) timelyArmor() (*Genus, ThingOptions) {
	mask := g.neediest(func(t *Tier) float64 { return t.Armor }, 50)
	if mask == 0 {
		return nil, 0
	}
	id := IDArmorBonus
	switch r := g.roll(100); {
	case r < 10:
		id = IDBlueArmor
	case r < 50:
		id = IDGreenArmor
	}
	gen := g.lookup(id)
	if gen == nil {
		return nil, 0
	}
	return gen, mask
}

// ammoWanted is the ammo a tier should carry into the next room.
func (g *Generator) ammoWanted() float64 {
	return 300 + 40*float64(g.l.params.slot.number())
}

// timelyAmmo picks ammo usable by the weapons the needy tiers have.
func (g *Generator) timelyAmmo() (*Genus, ThingOptions) {
	mask := g.neediest(func(t *Tier) float64 { return t.Ammo }, g.ammoWanted())
	if mask == 0 {
		return nil, 0
	}
	var has Weapons = ^Weapons(0)
	for t := range g.haa.Tiers {
		if mask&tierBit(t) != 0 {
			has &= g.haa.Tiers[t].Has | g.haa.Tiers[t].Pending
		}
	}
	ids := []int{IDClip}
	if has&WeaponShotgun != 0 {
		ids = append(ids, IDShells, IDShells, IDShellBox)
	}
	if has&WeaponChaingun != 0 {
		ids = append(ids, IDBulletBox)
	}
	if has&WeaponRockets != 0 {
		ids = append(ids, IDRocket, IDRocketBox)
	}
	if has&WeaponCells != 0 {
		ids = append(ids, IDCell, IDCellPack)
	}
	gen := g.lookup(ids[g.roll(len(ids))])
	if gen == nil {
		return nil, 0
	}
	return gen, mask
}

var weaponOrder = []int{IDShotgun, IDChaingun, IDSuperShotgun, IDChainsaw, IDRocketLauncher, IDPlasma, IDBFG}

// timelyWeapon returns the next weapon some tier lacks that suits the level.
func (g *Generator) timelyWeapon() (*Genus, ThingOptions) {
	for _, id := range weaponOrder {
		w := g.lookup(id)
		if w == nil || w.MinMap > g.l.params.slot.number() {
			continue
		}
		mask := g.neediest(func(t *Tier) float64 {
			if (t.Has|t.Pending)&w.Gives == w.Gives {
				return 1
			}
			return 0
		}, 1)
		if mask != 0 {
			return w, mask
		}
	}
	return nil, 0
}
