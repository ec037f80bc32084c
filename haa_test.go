package slump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func haaGenerator(t *testing.T) *Generator {
	t.Helper()
	g := testGenerator(t, nil)
	g.start(0)
	return g
}

func TestHAAStartingTiers(t *testing.T) {
	h := newHAA()
	for _, ti := range h.Tiers {
		assert.Equal(t, Tier{Health: 100, Ammo: 300}, ti)
	}
	assert.Equal(t, allTiers, tierBit(tierEasy)|tierBit(tierMedium)|tierBit(tierHard))
}

func TestHAAMonsterArmorAbsorbs(t *testing.T) {
	g := haaGenerator(t)
	imp := &Genus{Name: "imp", AmmoToKill: [3]float64{30, 40, 50}, Damage: [3]float64{15, 30, 45}, AmmoProvides: 5}
	for i := range g.haa.Tiers {
		g.haa.Tiers[i].Has = WeaponShotgun
	}
	g.haa.Tiers[tierEasy].Armor = 100
	g.haa.Tiers[tierMedium].Armor = 4

	g.updateHAAForMonster(imp, allTiers)

	easy := g.haa.Tiers[tierEasy]
	assert.Equal(t, 95.0, easy.Armor, "a third of the damage goes to armor")
	assert.Equal(t, 90.0, easy.Health)
	assert.Equal(t, 300.0-30+5, easy.Ammo)

	med := g.haa.Tiers[tierMedium]
	assert.Equal(t, 0.0, med.Armor, "armor absorbs no more than it has")
	assert.Equal(t, 100.0-26, med.Health)

	hard := g.haa.Tiers[tierHard]
	assert.Equal(t, 55.0, hard.Health)
	assert.Equal(t, 300.0-50+5, hard.Ammo)
}

func TestHAAMonsterWeaponsChangeCost(t *testing.T) {
	g := haaGenerator(t)
	imp := &Genus{Name: "imp", AmmoToKill: [3]float64{40, 40, 40}, Damage: [3]float64{10, 10, 10}}
	g.haa.Tiers[tierMedium].Has = WeaponShotgun
	g.haa.Tiers[tierHard].Has = WeaponShotgun | WeaponChainsaw

	g.updateHAAForMonster(imp, allTiers)

	assert.Equal(t, 80.0, g.haa.Tiers[tierEasy].Health, "pistol only doubles damage taken")
	assert.Equal(t, 90.0, g.haa.Tiers[tierMedium].Health)
	assert.Equal(t, 260.0, g.haa.Tiers[tierMedium].Ammo)
	assert.Equal(t, 280.0, g.haa.Tiers[tierHard].Ammo, "melee halves ammo spent")
}

func TestHAAMaskLimitsTiers(t *testing.T) {
	g := haaGenerator(t)
	imp := &Genus{Name: "imp", AmmoToKill: [3]float64{40, 40, 40}, Damage: [3]float64{10, 10, 10}}

	g.updateHAAForMonster(imp, ThingHard)

	assert.Equal(t, 300.0, g.haa.Tiers[tierEasy].Ammo)
	assert.Equal(t, 300.0, g.haa.Tiers[tierMedium].Ammo)
	assert.Equal(t, 260.0, g.haa.Tiers[tierHard].Ammo)
}

func TestHAANegativeAmmoAndDeath(t *testing.T) {
	g := haaGenerator(t)
	cyb := &Genus{Name: "cyberdemon", AmmoToKill: [3]float64{4000, 4000, 4000}, Damage: [3]float64{500, 500, 500}, AmmoProvides: 7}

	g.updateHAAForMonster(cyb, ThingEasy)

	easy := g.haa.Tiers[tierEasy]
	assert.Equal(t, 7.0, easy.Ammo, "clamped to zero before the drop is added")
	assert.Equal(t, 1.0, easy.Health)
	assert.Equal(t, 1, g.l.Warnings[warnNegativeAmmo])
	assert.Equal(t, 1, g.l.Warnings[warnPlayerDies])
}

func TestHAAPendingWeapons(t *testing.T) {
	g := haaGenerator(t)
	cat := g.cat
	shotgun, ok := cat.LookupGenus(IDShotgun)
	require.True(t, ok)

	g.updateHAAForPickup(shotgun, allTiers)

	for _, ti := range g.haa.Tiers {
		assert.False(t, ti.goodRanged(), "not usable until the room is cleared")
		assert.Equal(t, WeaponShotgun, ti.Pending)
		assert.Equal(t, 300.0+shotgun.AmmoProvides, ti.Ammo)
	}

	g.haaUnpend()

	for _, ti := range g.haa.Tiers {
		assert.True(t, ti.goodRanged())
		assert.Zero(t, ti.Pending)
	}
}

func TestHAAPickupCaps(t *testing.T) {
	g := haaGenerator(t)
	stim := &Genus{ID: IDStimpack, Props: GenusPickable | GenusHealth, Health: 10}
	bonus := &Genus{ID: IDHealthBonus, Props: GenusPickable | GenusHealth, Health: 1}
	green := &Genus{ID: IDGreenArmor, Props: GenusPickable | GenusArmor, Armor: 100}
	blue := &Genus{ID: 2019, Props: GenusPickable | GenusArmor, Armor: 200}

	g.haa.Tiers[tierEasy].Health = 95
	g.updateHAAForPickup(stim, ThingEasy)
	assert.Equal(t, 100.0, g.haa.Tiers[tierEasy].Health, "stimpacks stop at 100")

	g.updateHAAForPickup(bonus, ThingEasy)
	assert.Equal(t, 101.0, g.haa.Tiers[tierEasy].Health, "bonuses go past 100")

	g.haa.Tiers[tierEasy].Health = 150
	g.updateHAAForPickup(stim, ThingEasy)
	assert.Equal(t, 150.0, g.haa.Tiers[tierEasy].Health, "a pickup never lowers health")

	g.updateHAAForPickup(green, ThingMedium)
	g.updateHAAForPickup(green, ThingMedium)
	assert.Equal(t, 100.0, g.haa.Tiers[tierMedium].Armor)
	g.updateHAAForPickup(blue, ThingMedium)
	assert.Equal(t, 200.0, g.haa.Tiers[tierMedium].Armor)
}

func TestTierCost(t *testing.T) {
	sarg := &Genus{AmmoToKill: [3]float64{60, 60, 60}, Damage: [3]float64{30, 30, 30}}
	ti := Tier{Armor: 5, Has: WeaponBerserk}

	health, ammo := ti.cost(sarg, tierMedium)

	assert.Equal(t, 60.0-5, health)
	assert.Equal(t, 30.0, ammo)
}
