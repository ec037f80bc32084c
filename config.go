package slump

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Config holds the typed generation parameters.
type Config struct {
	Seed     int64
	Game     GameMask
	Episode  int // 1-based, Doom 1 style games only
	Mission  int // 1-based, Doom 1 style games only
	Map      int // 1-based, Doom 2 style games only
	Levels   int
	MinRooms int

	Forkiness    int // percent chance per room of starting a side quest
	MaxForks     int // side quests started from one room at most
	PPushQuest   int
	PBigify      int
	RadNewTheme  int
	NormNewTheme int
	RadVary      int
	NormVary     int

	Gates             bool
	Deathmatch        bool
	ForceArena        bool
	ForceSecret       bool
	MajorNukage       bool
	ImmediateMonsters bool
	BoringRooms       bool
	MachoH            float64 // how much health the player is willing to risk, 0..1
	MachoU            float64 // fraction of monsters placed regardless of cost, 0..1
	PHoleEndsLevel    int
	PGateEndsLevel    int // exit dressed as a teleporter, when gates are on
	PRisingRoom       int // key sunk in a pit that rises when entered
	PUseSteps         int

	RequiredMonsterBits  GenusProps
	ForbiddenMonsterBits GenusProps

	ErrorTexture string
	ErrorFlat    string

	mods Params
}

// DefaultConfig returns the configuration used when no parameters are given.
func DefaultConfig() *Config {
	return &Config{
		Seed:           1,
		Game:           Doom2,
		Episode:        1,
		Mission:        1,
		Map:            1,
		Levels:         1,
		MinRooms:       18,
		Forkiness:      25,
		MaxForks:       3,
		PPushQuest:     25,
		PBigify:        30,
		RadNewTheme:    100,
		NormNewTheme:   10,
		RadVary:        25,
		NormVary:       75,
		Gates:          true,
		PHoleEndsLevel: 3,
		PGateEndsLevel: 15,
		PRisingRoom:    20,
		PUseSteps:      50,
		ErrorTexture:   "BROWN1",
		ErrorFlat:      "FLAT1",
		mods:           NewParamMap(),
	}
}

var gameNames = map[string]GameMask{
	"doom0": Doom0,
	"doom1": Doom1,
	"doom2": Doom2,
	"doomc": DoomC,
	"doomi": DoomI,
}

// NewConfig converts host parameters into a Config, using defaults for
// anything p does not set.
func NewConfig(p Params) (*Config, error) {
	c := DefaultConfig()
	c.mods = p
	var err error
	num := func(name string, dst *int) {
		if err != nil {
			return
		}
		s := p.Get(name)
		if s == "" {
			return
		}
		n, perr := strconv.Atoi(s)
		if perr != nil {
			err = errors.Errorf("parameter %s: %q is not a number", name, s)
			return
		}
		*dst = n
	}
	flag := func(name string, dst *bool) {
		if err != nil {
			return
		}
		s := p.Get(name)
		if s == "" {
			return
		}
		b, perr := strconv.ParseBool(s)
		if perr != nil {
			err = errors.Errorf("parameter %s: %q is not a boolean", name, s)
			return
		}
		*dst = b
	}
	frac := func(name string, dst *float64) {
		if err != nil {
			return
		}
		s := p.Get(name)
		if s == "" {
			return
		}
		f, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			err = errors.Errorf("parameter %s: %q is not a number", name, s)
			return
		}
		*dst = clamp(f, 0, 1)
	}

	if s := p.Get("seed"); s != "" {
		c.Seed, err = strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, errors.Errorf("parameter seed: %q is not a number", s)
		}
	}
	if s := p.Get("game"); s != "" {
		g, ok := gameNames[strings.ToLower(s)]
		if !ok {
			return nil, errors.Errorf("parameter game: unknown game %q", s)
		}
		c.Game = g
	}
	num("episode", &c.Episode)
	num("mission", &c.Mission)
	num("map", &c.Map)
	num("levels", &c.Levels)
	num("minrooms", &c.MinRooms)
	num("forkiness", &c.Forkiness)
	num("max_forks", &c.MaxForks)
	num("p_pushquest", &c.PPushQuest)
	num("p_bigify", &c.PBigify)
	num("rad_newtheme", &c.RadNewTheme)
	num("norm_newtheme", &c.NormNewTheme)
	num("rad_vary", &c.RadVary)
	num("norm_vary", &c.NormVary)
	num("p_hole_ends_level", &c.PHoleEndsLevel)
	num("p_gate_ends_level", &c.PGateEndsLevel)
	num("p_rising_room", &c.PRisingRoom)
	num("p_use_steps", &c.PUseSteps)
	flag("gates", &c.Gates)
	flag("dm", &c.Deathmatch)
	flag("arena", &c.ForceArena)
	flag("secret", &c.ForceSecret)
	flag("nukage", &c.MajorNukage)
	flag("immediate_monsters", &c.ImmediateMonsters)
	flag("boring_rooms", &c.BoringRooms)
	frac("machoh", &c.MachoH)
	frac("machou", &c.MachoU)
	var req, forb int
	num("required_monster_bits", &req)
	num("forbidden_monster_bits", &forb)
	if err != nil {
		return nil, err
	}
	c.RequiredMonsterBits, c.ForbiddenMonsterBits = GenusProps(req), GenusProps(forb)
	if s := p.Get("error_texture"); s != "" {
		c.ErrorTexture = s
	}
	if s := p.Get("error_flat"); s != "" {
		c.ErrorFlat = s
	}
	if c.ModEnabled("nogates") {
		c.Gates = false
	}

	switch {
	case c.Levels < 1:
		return nil, errors.Errorf("parameter levels: must be at least 1, got %d", c.Levels)
	case c.MinRooms < 1:
		return nil, errors.Errorf("parameter minrooms: must be at least 1, got %d", c.MinRooms)
	case c.MaxForks < 1:
		return nil, errors.Errorf("parameter max_forks: must be at least 1, got %d", c.MaxForks)
	case c.Episode < 1 || c.Episode > 4, c.Mission < 1 || c.Mission > 9:
		return nil, errors.Errorf("episode %d mission %d out of range", c.Episode, c.Mission)
	case c.Map < 1 || c.Map > 32:
		return nil, errors.Errorf("map %d out of range", c.Map)
	}
	return c, nil
}

// ModEnabled reports whether the host switched on the named mod.
func (c *Config) ModEnabled(name string) bool {
	return c.mods != nil && c.mods.ModEnabled(name)
}

// doom1Style reports whether levels are named ExMy.
func (c *Config) doom1Style() bool {
	return c.Game == Doom0 || c.Game == Doom1
}

// levelSlot identifies one level of a run.
type levelSlot struct {
	episode, mission, mapnum int
}

// slot returns the level n levels after the configured first one.
func (c *Config) slot(n int) levelSlot {
	if c.doom1Style() {
		m := c.Mission - 1 + n
		return levelSlot{episode: c.Episode + m/9, mission: m%9 + 1}
	}
	return levelSlot{mapnum: c.Map + n}
}

func (s levelSlot) name() string {
	if s.mapnum > 0 {
		return fmt.Sprintf("MAP%02d", s.mapnum)
	}
	return fmt.Sprintf("E%dM%d", s.episode, s.mission)
}

// number is the level's position in the game, used to scale the monster mix.
func (s levelSlot) number() int {
	if s.mapnum > 0 {
		return s.mapnum
	}
	return (s.episode-1)*8 + s.mission
}

func (s levelSlot) isBoss() bool {
	if s.mapnum > 0 {
		return s.mapnum == 7 || s.mapnum == 30
	}
	return s.mission == 8
}

// hasSecretExit reports whether the level leads to a secret level.
func (s levelSlot) hasSecretExit() bool {
	if s.mapnum > 0 {
		return s.mapnum == 15 || s.mapnum == 31
	}
	return s.mission == 3 && s.episode < 4 || s.episode == 4 && s.mission == 2
}

func (s levelSlot) isSecret() bool {
	if s.mapnum > 0 {
		return s.mapnum >= 31
	}
	return s.mission == 9
}

// deriveSeed returns the seed of level n of a run.
func deriveSeed(seed int64, n int) int64 {
	if n == 0 {
		return seed
	}
	x := uint64(seed) + uint64(n)*0x9E3779B97F4A7C15
	x = (x ^ x>>30) * 0xBF58476D1CE4E5B9
	x = (x ^ x>>27) * 0x94D049BB133111EB
	return int64((x ^ x>>31) >> 1)
}
