package slump

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	c, err := NewConfig(NewParamMap())
	require.NoError(t, err)

	want := DefaultConfig()
	assert.Equal(t, want.Seed, c.Seed)
	assert.Equal(t, Doom2, c.Game)
	assert.Equal(t, 18, c.MinRooms)
	assert.Equal(t, 1, c.Levels)
	assert.True(t, c.Gates)
	assert.Equal(t, "BROWN1", c.ErrorTexture)
	assert.False(t, c.ModEnabled("nogates"))
}

func TestNewConfig(t *testing.T) {
	p := NewParamMap().
		Set("seed", "-42").
		Set("game", "DOOM1").
		Set("episode", "3").
		Set("minrooms", "7").
		Set("dm", "true").
		Set("machoh", "1.5").
		Set("forbidden_monster_bits", "4").
		Set("max_forks", "5").
		Set("p_gate_ends_level", "40").
		Set("p_rising_room", "0").
		Enable("nogates")
	c, err := NewConfig(p)
	require.NoError(t, err)

	assert.Equal(t, int64(-42), c.Seed)
	assert.Equal(t, Doom1, c.Game)
	assert.Equal(t, 3, c.Episode)
	assert.Equal(t, 7, c.MinRooms)
	assert.True(t, c.Deathmatch)
	assert.Equal(t, 1.0, c.MachoH, "fractions are clamped")
	assert.Equal(t, GenusProps(4), c.ForbiddenMonsterBits)
	assert.Equal(t, 5, c.MaxForks)
	assert.Equal(t, 40, c.PGateEndsLevel)
	assert.Zero(t, c.PRisingRoom)
	assert.False(t, c.Gates)
	assert.True(t, c.ModEnabled("nogates"))
}

func TestNewConfigErrors(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"seed", "seed", "twelve"},
		{"game", "game", "heretic"},
		{"number", "minrooms", "lots"},
		{"flag", "dm", "maybe"},
		{"fraction", "machou", "most"},
		{"levels", "levels", "0"},
		{"minrooms", "minrooms", "0"},
		{"max forks", "max_forks", "0"},
		{"episode", "episode", "5"},
		{"mission", "mission", "10"},
		{"map", "map", "33"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(NewParamMap().Set(tt.key, tt.value))
			assert.Error(t, err)
		})
	}
}

func TestLevelSlots(t *testing.T) {
	doom1 := &Config{Game: Doom1, Episode: 1, Mission: 7}
	tests := []struct {
		slot    levelSlot
		name    string
		number  int
		boss    bool
		secretX bool
		secret  bool
	}{
		{doom1.slot(0), "E1M7", 7, false, false, false},
		{doom1.slot(1), "E1M8", 8, true, false, false},
		{doom1.slot(2), "E1M9", 9, false, false, true},
		{doom1.slot(3), "E2M1", 9, false, false, false},
		{levelSlot{episode: 1, mission: 3}, "E1M3", 3, false, true, false},
		{levelSlot{episode: 4, mission: 2}, "E4M2", 26, false, true, false},
		{levelSlot{mapnum: 7}, "MAP07", 7, true, false, false},
		{levelSlot{mapnum: 15}, "MAP15", 15, false, true, false},
		{levelSlot{mapnum: 30}, "MAP30", 30, true, false, false},
		{levelSlot{mapnum: 31}, "MAP31", 31, false, true, true},
		{levelSlot{mapnum: 32}, "MAP32", 32, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.slot.name())
			assert.Equal(t, tt.number, tt.slot.number())
			assert.Equal(t, tt.boss, tt.slot.isBoss())
			assert.Equal(t, tt.secretX, tt.slot.hasSecretExit())
			assert.Equal(t, tt.secret, tt.slot.isSecret())
		})
	}
}

func TestDeriveSeed(t *testing.T) {
	assert.Equal(t, int64(99), deriveSeed(99, 0), "the first level uses the seed as given")
	assert.NotEqual(t, deriveSeed(99, 1), deriveSeed(99, 2))
	assert.Equal(t, deriveSeed(99, 3), deriveSeed(99, 3))
	assert.GreaterOrEqual(t, deriveSeed(-1, 5), int64(0))
}

func TestReadParams(t *testing.T) {
	const doc = `
seed: 12345
game: doom2
machoh: 0.5
dm: true
mods:
  - NoGates
  - nosecret
`
	p, err := ReadParams(strings.NewReader(doc))
	require.NoError(t, err)

	assert.Equal(t, "12345", p.Get("seed"))
	assert.Equal(t, "doom2", p.Get("game"))
	assert.Equal(t, "0.5", p.Get("machoh"))
	assert.Equal(t, "true", p.Get("dm"))
	assert.True(t, p.ModEnabled("nogates"))
	assert.True(t, p.ModEnabled("nosecret"))
	assert.False(t, p.ModEnabled("noarena"))

	c, err := NewConfig(p)
	require.NoError(t, err)
	assert.Equal(t, int64(12345), c.Seed)
	assert.Equal(t, 0.5, c.MachoH)
	assert.False(t, c.Gates)
}

func TestReadParamsEmpty(t *testing.T) {
	p, err := ReadParams(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p.Values)
}

func TestReadParamsErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"not a mapping":  "- seed\n- game\n",
		"nested value":   "seed:\n  low: 1\n",
		"malformed yaml": "seed: [1\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadParams(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}
