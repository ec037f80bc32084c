package slump

// Doom thing type numbers the generator places by identity.
const (
	IDPlayer1         = 1
	IDPlayer2         = 2
	IDPlayer3         = 3
	IDPlayer4         = 4
	IDBlueCard        = 5
	IDYellowCard      = 6
	IDDMStart         = 11
	IDRedCard         = 13
	IDTeleportLanding = 14
	IDRedSkull        = 38
	IDYellowSkull     = 39
	IDBlueSkull       = 40
	IDBackpack        = 8
	IDChainsaw        = 2005
	IDShotgun         = 2001
	IDSuperShotgun    = 82
	IDChaingun        = 2002
	IDRocketLauncher  = 2003
	IDPlasma          = 2004
	IDBFG             = 2006
	IDClip            = 2007
	IDShells          = 2008
	IDRocket          = 2010
	IDCell            = 2047
	IDShellBox        = 2049
	IDBulletBox       = 2048
	IDRocketBox       = 2046
	IDCellPack        = 17
	IDBerserk         = 2023
	IDSoulsphere      = 2013
	IDMegasphere      = 83
	IDStimpack        = 2011
	IDMedikit         = 2012
	IDHealthBonus     = 2014
	IDArmorBonus      = 2015
	IDGreenArmor      = 2018
	IDBlueArmor       = 2019
	IDBarrel          = 2035
	IDRadSuit         = 2025
	IDComputerMap     = 2026
	IDCyberdemon      = 16
	IDSpiderMind      = 7
	IDBaron           = 3003
	IDWolfSS          = 84
)

const allDoom2 = Doom2 | DoomC | DoomI

type hardGenus struct {
	id     int
	name   string
	props  GenusProps
	width  int
	height int
	games  GameMask
	ammo   [3]float64
	damage [3]float64
	drops  float64
	gives  Weapons
	minMap int
}

// Monster numbers are in damage points: ammo is what it takes to kill the
// monster at each tier's accuracy, damage is what the player is expected to
// lose doing it.
var hardMonsters = []hardGenus{
	{3004, "trooper", GenusMonster | GenusShoots, 40, 56, 0, [3]float64{30, 25, 20}, [3]float64{6, 4, 3}, 50, 0, 0},
	{9, "sergeant", GenusMonster | GenusShoots, 40, 56, 0, [3]float64{45, 38, 30}, [3]float64{12, 9, 6}, 280, WeaponShotgun, 0},
	{65, "chaingunner", GenusMonster | GenusShoots, 40, 56, allDoom2, [3]float64{100, 85, 70}, [3]float64{30, 22, 15}, 100, WeaponChaingun, 3},
	{3001, "imp", GenusMonster | GenusShoots, 40, 56, 0, [3]float64{90, 75, 60}, [3]float64{12, 8, 5}, 0, 0, 0},
	{3002, "demon", GenusMonster, 60, 56, 0, [3]float64{220, 185, 150}, [3]float64{20, 12, 8}, 0, 0, 1},
	{58, "spectre", GenusMonster, 60, 56, 0, [3]float64{250, 200, 160}, [3]float64{25, 15, 10}, 0, 0, 2},
	{3006, "lost soul", GenusMonster | GenusFlies, 32, 56, 0, [3]float64{150, 120, 100}, [3]float64{15, 10, 6}, 0, 0, 2},
	{3005, "cacodemon", GenusMonster | GenusFlies | GenusShoots | GenusBig, 62, 56, 0, [3]float64{600, 500, 400}, [3]float64{35, 25, 18}, 0, 0, 3},
	{71, "pain elemental", GenusMonster | GenusFlies | GenusBig, 62, 56, allDoom2, [3]float64{700, 600, 500}, [3]float64{45, 35, 25}, 0, 0, 6},
	{69, "hell knight", GenusMonster | GenusShoots | GenusBig, 48, 64, allDoom2, [3]float64{750, 600, 500}, [3]float64{45, 30, 20}, 0, 0, 5},
	{3003, "baron", GenusMonster | GenusShoots | GenusBig, 48, 64, 0, [3]float64{1500, 1200, 1000}, [3]float64{80, 55, 40}, 0, 0, 6},
	{66, "revenant", GenusMonster | GenusShoots, 40, 56, allDoom2, [3]float64{450, 380, 300}, [3]float64{50, 35, 25}, 0, 0, 6},
	{68, "arachnotron", GenusMonster | GenusShoots | GenusBig, 128, 64, allDoom2, [3]float64{750, 620, 500}, [3]float64{60, 45, 30}, 0, 0, 7},
	{67, "mancubus", GenusMonster | GenusShoots | GenusBig, 96, 64, allDoom2, [3]float64{900, 750, 600}, [3]float64{70, 50, 35}, 0, 0, 7},
	{64, "arch-vile", GenusMonster | GenusShoots, 40, 56, allDoom2, [3]float64{1100, 900, 700}, [3]float64{100, 70, 50}, 0, 0, 10},
	{16, "cyberdemon", GenusMonster | GenusShoots | GenusBig | GenusBoss, 80, 110, 0, [3]float64{6000, 5000, 4000}, [3]float64{200, 150, 100}, 0, 0, 8},
	{7, "spider mastermind", GenusMonster | GenusShoots | GenusBig | GenusBoss, 256, 100, 0, [3]float64{4500, 3800, 3000}, [3]float64{200, 150, 100}, 0, 0, 8},
	{84, "wolfenstein ss", GenusMonster | GenusShoots | GenusSpecial, 40, 56, allDoom2, [3]float64{70, 60, 50}, [3]float64{15, 10, 7}, 50, 0, 0},
}

type hardItem struct {
	id     int
	name   string
	props  GenusProps
	games  GameMask
	ammo   float64
	health float64
	armor  float64
	gives  Weapons
	minMap int
}

var hardItems = []hardItem{
	{IDChainsaw, "chainsaw", GenusPickable | GenusWeapon, 0, 0, 0, 0, WeaponChainsaw, 0},
	{IDShotgun, "shotgun", GenusPickable | GenusWeapon, 0, 560, 0, 0, WeaponShotgun, 0},
	{IDSuperShotgun, "super shotgun", GenusPickable | GenusWeapon, allDoom2, 1200, 0, 0, WeaponShotgun | WeaponSuperShotgun, 2},
	{IDChaingun, "chaingun", GenusPickable | GenusWeapon, 0, 200, 0, 0, WeaponChaingun, 1},
	{IDRocketLauncher, "rocket launcher", GenusPickable | GenusWeapon, 0, 400, 0, 0, WeaponRockets, 3},
	{IDPlasma, "plasma rifle", GenusPickable | GenusWeapon, Doom1 | allDoom2, 800, 0, 0, WeaponCells, 5},
	{IDBFG, "bfg9000", GenusPickable | GenusWeapon, Doom1 | allDoom2, 1600, 0, 0, WeaponCells | WeaponBFG, 10},
	{IDClip, "clip", GenusPickable | GenusAmmo, 0, 100, 0, 0, 0, 0},
	{IDBulletBox, "box of bullets", GenusPickable | GenusAmmo, 0, 500, 0, 0, 0, 0},
	{IDShells, "shells", GenusPickable | GenusAmmo, 0, 280, 0, 0, WeaponShotgun, 0},
	{IDShellBox, "box of shells", GenusPickable | GenusAmmo, 0, 1400, 0, 0, WeaponShotgun, 0},
	{IDRocket, "rocket", GenusPickable | GenusAmmo, 0, 100, 0, 0, WeaponRockets, 0},
	{IDRocketBox, "box of rockets", GenusPickable | GenusAmmo, 0, 500, 0, 0, WeaponRockets, 0},
	{IDCell, "cell", GenusPickable | GenusAmmo, Doom1 | allDoom2, 400, 0, 0, WeaponCells, 0},
	{IDCellPack, "cell pack", GenusPickable | GenusAmmo, Doom1 | allDoom2, 2000, 0, 0, WeaponCells, 0},
	{IDBackpack, "backpack", GenusPickable | GenusAmmo, 0, 600, 0, 0, 0, 0},
	{IDHealthBonus, "health bonus", GenusPickable | GenusHealth, 0, 0, 1, 0, 0, 0},
	{IDStimpack, "stimpack", GenusPickable | GenusHealth, 0, 0, 10, 0, 0, 0},
	{IDMedikit, "medikit", GenusPickable | GenusHealth, 0, 0, 25, 0, 0, 0},
	{IDSoulsphere, "soulsphere", GenusPickable | GenusHealth | GenusPowerup, 0, 0, 100, 0, 0, 0},
	{IDMegasphere, "megasphere", GenusPickable | GenusHealth | GenusArmor | GenusPowerup, allDoom2, 0, 200, 200, 0, 0},
	{IDBerserk, "berserk", GenusPickable | GenusHealth | GenusPowerup, 0, 0, 100, 0, WeaponBerserk, 0},
	{IDArmorBonus, "armor bonus", GenusPickable | GenusArmor, 0, 0, 0, 1, 0, 0},
	{IDGreenArmor, "green armor", GenusPickable | GenusArmor, 0, 0, 0, 100, 0, 0},
	{IDBlueArmor, "blue armor", GenusPickable | GenusArmor, 0, 0, 0, 200, 0, 0},
	{2022, "invulnerability", GenusPickable | GenusPowerup, 0, 0, 0, 0, 0, 0},
	{2024, "partial invisibility", GenusPickable | GenusPowerup, 0, 0, 0, 0, 0, 0},
	{2025, "radiation suit", GenusPickable | GenusPowerup, 0, 0, 0, 0, 0, 0},
	{2026, "computer map", GenusPickable | GenusPowerup, 0, 0, 0, 0, 0, 0},
	{2045, "light amplification", GenusPickable | GenusPowerup, 0, 0, 0, 0, 0, 0},
	{IDBlueCard, "blue keycard", GenusPickable | GenusKey, 0, 0, 0, 0, 0, 0},
	{IDYellowCard, "yellow keycard", GenusPickable | GenusKey, 0, 0, 0, 0, 0, 0},
	{IDRedCard, "red keycard", GenusPickable | GenusKey, 0, 0, 0, 0, 0, 0},
	{IDRedSkull, "red skull key", GenusPickable | GenusKey, 0, 0, 0, 0, 0, 0},
	{IDYellowSkull, "yellow skull key", GenusPickable | GenusKey, 0, 0, 0, 0, 0, 0},
	{IDBlueSkull, "blue skull key", GenusPickable | GenusKey, 0, 0, 0, 0, 0, 0},
}

type hardDecoration struct {
	id     int
	name   string
	props  GenusProps
	width  int
	height int
	games  GameMask
}

var hardDecor = []hardDecoration{
	{IDPlayer1, "player 1 start", GenusStart, 32, 56, 0},
	{IDPlayer2, "player 2 start", GenusStart, 32, 56, 0},
	{IDPlayer3, "player 3 start", GenusStart, 32, 56, 0},
	{IDPlayer4, "player 4 start", GenusStart, 32, 56, 0},
	{IDDMStart, "deathmatch start", GenusStart, 32, 56, 0},
	{IDTeleportLanding, "teleport landing", GenusStart, 32, 56, 0},
	{IDBarrel, "barrel", GenusExplodes | GenusObstacle, 22, 42, 0},
	{2028, "floor lamp", GenusLight | GenusObstacle, 32, 48, 0},
	{85, "tall techno lamp", GenusLight | GenusObstacle, 32, 80, allDoom2},
	{86, "short techno lamp", GenusLight | GenusObstacle, 32, 60, allDoom2},
	{34, "candle", GenusLight, 20, 16, 0},
	{35, "candelabra", GenusLight | GenusObstacle, 32, 56, 0},
	{44, "tall blue firestick", GenusLight | GenusObstacle, 32, 128, 0},
	{45, "tall green firestick", GenusLight | GenusObstacle, 32, 128, 0},
	{46, "tall red firestick", GenusLight | GenusObstacle, 32, 128, 0},
	{55, "short blue firestick", GenusLight | GenusObstacle, 32, 64, 0},
	{56, "short green firestick", GenusLight | GenusObstacle, 32, 64, 0},
	{57, "short red firestick", GenusLight | GenusObstacle, 32, 64, 0},
	{48, "tall techno column", GenusObstacle, 32, 128, 0},
	{30, "tall green pillar", GenusObstacle, 32, 128, 0},
	{32, "tall red pillar", GenusObstacle, 32, 128, 0},
}

// addHardwired merges the built-in genus table into c. Existing entries keep
// their theme compatibility.
func addHardwired(c *Catalog) {
	for _, h := range hardMonsters {
		g := c.FindGenus(h.id)
		g.Name, g.Props, g.Width, g.Height = h.name, h.props, h.width, h.height
		g.Games, g.AmmoToKill, g.Damage = h.games, h.ammo, h.damage
		g.AmmoProvides, g.Gives, g.MinMap = h.drops, h.gives, h.minMap
	}
	for _, h := range hardItems {
		g := c.FindGenus(h.id)
		g.Name, g.Props, g.Width, g.Height, g.Games = h.name, h.props, 20, 16, h.games
		g.AmmoProvides, g.Health, g.Armor = h.ammo, h.health, h.armor
		g.Gives, g.MinMap = h.gives, h.minMap
	}
	for _, h := range hardDecor {
		g := c.FindGenus(h.id)
		g.Name, g.Props, g.Width, g.Height, g.Games = h.name, h.props, h.width, h.height, h.games
	}
}
