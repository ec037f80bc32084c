package slump

// Weapons is a set of weapon capabilities.
type Weapons uint16

const (
	WeaponShotgun Weapons = 1 << iota
	WeaponSuperShotgun
	WeaponChaingun
	WeaponRockets
	WeaponCells
	WeaponBFG
	WeaponChainsaw
	WeaponBerserk
)

const (
	tierEasy = iota
	tierMedium
	tierHard
	numTiers
)

const allTiers = ThingEasy | ThingMedium | ThingHard

func tierBit(t int) ThingOptions { return ThingEasy << uint(t) }

// Tier is the economy estimate for one difficulty level. Amounts are in
// damage points: health and armor as the player sees them, ammo as the damage
// it can deal.
type Tier struct {
	Health  float64
	Ammo    float64
	Armor   float64
	Has     Weapons
	Pending Weapons // picked up in the current room, usable once it is cleared
}

// HAA tracks the player's expected health, ammo and armor at each difficulty
// as the level is built room by room.
type HAA struct {
	Tiers [numTiers]Tier
}

func newHAA() *HAA {
	h := &HAA{}
	for t := range h.Tiers {
		h.Tiers[t] = Tier{Health: 100, Ammo: 300}
	}
	return h
}

// goodRanged reports whether the player has something better than the pistol.
func (t *Tier) goodRanged() bool {
	return t.Has&(WeaponShotgun|WeaponChaingun|WeaponRockets|WeaponCells) != 0
}

func (t *Tier) melee() bool {
	return t.Has&(WeaponChainsaw|WeaponBerserk) != 0
}

// cost returns the health and ammo a fight with m would take at tier t.
func (t *Tier) cost(m *Genus, tier int) (health, ammo float64) {
	dmg := m.Damage[tier]
	if !t.goodRanged() {
		dmg *= 2
	}
	ammo = m.AmmoToKill[tier]
	if t.melee() {
		ammo /= 2
	}
	return dmg - min(dmg/3, t.Armor), ammo
}

// haaUnpend commits weapons picked up during a fight.
func (g *Generator) haaUnpend() {
	for t := range g.haa.Tiers {
		g.haa.Tiers[t].Has |= g.haa.Tiers[t].Pending
		g.haa.Tiers[t].Pending = 0
	}
}

// updateHAAForMonster charges the fight with m to the tiers in mask and
// credits whatever m drops.
func (g *Generator) updateHAAForMonster(m *Genus, mask ThingOptions) {
	for t := range g.haa.Tiers {
		if mask&tierBit(t) == 0 {
			continue
		}
		ti := &g.haa.Tiers[t]
		dmg := m.Damage[t]
		if !ti.goodRanged() {
			dmg *= 2
		}
		absorbed := min(dmg/3, ti.Armor)
		ti.Armor -= absorbed
		ti.Health -= dmg - absorbed
		ammo := m.AmmoToKill[t]
		if ti.melee() {
			ammo /= 2
		}
		ti.Ammo -= ammo
		if ti.Ammo < 0 {
			g.warn(warnNegativeAmmo, "tier", t, "monster", m.Name)
			ti.Ammo = 0
		}
		if ti.Health < 1 {
			g.warn(warnPlayerDies, "tier", t, "monster", m.Name)
			ti.Health = 1
		}
		ti.Ammo += m.AmmoProvides
		ti.Pending |= m.Gives
	}
}

// updateHAAForPickup credits item to the tiers in mask.
func (g *Generator) updateHAAForPickup(item *Genus, mask ThingOptions) {
	for t := range g.haa.Tiers {
		if mask&tierBit(t) == 0 {
			continue
		}
		ti := &g.haa.Tiers[t]
		ti.Ammo += item.AmmoProvides
		ti.Armor = max(ti.Armor, min(ti.Armor+item.Armor, armorCap(item)))
		ti.Health = max(ti.Health, min(ti.Health+item.Health, healthCap(item)))
		if item.Is(GenusWeapon) {
			ti.Pending |= item.Gives
		} else {
			ti.Has |= item.Gives & (WeaponBerserk)
		}
	}
}

func healthCap(item *Genus) float64 {
	if item.Is(GenusPowerup) || item.ID == IDHealthBonus {
		return 200
	}
	return 100
}

func armorCap(item *Genus) float64 {
	if item.Armor >= 200 || item.ID == IDArmorBonus {
		return 200
	}
	return 100
}
