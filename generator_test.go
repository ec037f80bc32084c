package slump

import (
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator(t *testing.T, p *ParamMap) *Generator {
	t.Helper()
	if p == nil {
		p = NewParamMap()
	}
	cfg, err := NewConfig(p)
	require.NoError(t, err)
	cat, err := DefaultCatalog()
	require.NoError(t, err)
	return NewGenerator(cfg, cat)
}

func TestDefaultCatalog(t *testing.T) {
	cat, err := DefaultCatalog()
	require.NoError(t, err)

	assert.NotEmpty(t, cat.Themes)
	assert.NotEmpty(t, cat.Textures())
	assert.NotEmpty(t, cat.Flats())
	assert.NotEmpty(t, cat.Constructs)
	for _, id := range []int{IDPlayer1, IDDMStart, IDTeleportLanding, IDShotgun, IDBlueCard, IDBaron,
		IDShellBox, IDBulletBox, IDRocketBox, IDCellPack} {
		_, ok := cat.LookupGenus(id)
		assert.True(t, ok, "genus %d", id)
	}
}

func TestGenerateScenario(t *testing.T) {
	p := NewParamMap().
		Set("seed", "12345").
		Set("minrooms", "10").
		Set("game", "doom2").
		Set("forkiness", "0").
		Enable("nogates")
	g := testGenerator(t, p)

	l, err := g.Generate(0)
	require.NoError(t, err)

	assert.Equal(t, "MAP01", l.Name)
	assert.Zero(t, l.Warnings[warnShortQuest])
	assert.Len(t, l.Rooms, 10)
	assert.Len(t, l.Links, 9)
	for i, k := range l.Links {
		assert.Equal(t, GoalNull, k.Lock, "link %d is locked", i)
		assert.Equal(t, l.Rooms[i], k.From)
		assert.Equal(t, l.Rooms[i+1], k.To)
	}
	assert.Empty(t, l.Arenas)
	assert.Empty(t, l.Gates)
	assert.Equal(t, 0, g.QuestDepth())
	assert.Equal(t, 1, l.Stats().MaxQuestDepth)

	require.NotEqual(t, NoSector, l.Watermark)
	assert.Equal(t, KindWatermark, l.Sector(l.Watermark).Kind)
	assert.Equal(t, l.FirstRoom, l.Sector(l.Watermark).Room)

	require.NotEqual(t, NoSector, l.GoalRoom)
	assert.Equal(t, l.Rooms[len(l.Rooms)-1], l.GoalRoom)
	exits := 0
	for _, id := range l.Linedefs() {
		ld := l.Linedef(id)
		if ld.Type != LineS1Exit && ld.Type != LineW1Exit {
			continue
		}
		s := l.rightSector(id)
		if s == NoSector {
			s = l.sideSector(ld.Left)
		}
		if l.Sector(s).Room == l.GoalRoom {
			exits++
		}
	}
	assert.NotZero(t, exits, "last room has no exit trigger")

	assert.NoError(t, l.CheckOverlap())
	assert.NoError(t, l.CheckReachable())
	assert.NoError(t, l.CheckBoundingRects())
}

func TestNoForksIsOneChain(t *testing.T) {
	for seed := 1; seed <= 20; seed++ {
		p := NewParamMap().
			Set("seed", strconv.Itoa(seed)).
			Set("minrooms", "10").
			Set("forkiness", "0").
			Enable("nogates")
		l, err := testGenerator(t, p).Generate(0)
		require.NoError(t, err, "seed %d", seed)

		for i, k := range l.Links {
			assert.Equal(t, l.Rooms[i], k.From, "seed %d link %d", seed, i)
			assert.Equal(t, l.Rooms[i+1], k.To, "seed %d link %d", seed, i)
		}
	}
}

func TestForksPushSiblings(t *testing.T) {
	p := NewParamMap().
		Set("seed", "4242").
		Set("minrooms", "20").
		Set("forkiness", "100").
		Set("max_forks", "3")
	g := testGenerator(t, p)
	l, err := g.Generate(0)
	require.NoError(t, err)

	assert.Greater(t, l.Stats().MaxQuestDepth, 2)
	assert.Equal(t, 0, g.QuestDepth())
	assert.NoError(t, l.CheckOverlap())
}

func TestGenerateIsDeterministic(t *testing.T) {
	p := NewParamMap().Set("seed", "777").Set("minrooms", "8")

	var sinks [2]recordSink
	for i := range sinks {
		l, err := testGenerator(t, p).Generate(0)
		require.NoError(t, err)
		require.NoError(t, l.Emit(&sinks[i]))
	}
	assert.Equal(t, sinks[0].vertices, sinks[1].vertices)
	assert.Equal(t, sinks[0].sectors, sinks[1].sectors)
	assert.Equal(t, sinks[0].sidedefs, sinks[1].sidedefs)
	assert.Equal(t, sinks[0].linedefs, sinks[1].linedefs)
	assert.Equal(t, sinks[0].things, sinks[1].things)

	other, err := testGenerator(t, NewParamMap().Set("seed", "778").Set("minrooms", "8")).Generate(0)
	require.NoError(t, err)
	var sink recordSink
	require.NoError(t, other.Emit(&sink))
	assert.NotEqual(t, sinks[0].vertices, sink.vertices)
}

func TestGenerateReusesGenerator(t *testing.T) {
	g := testGenerator(t, NewParamMap().Set("seed", "31").Set("minrooms", "6"))
	a, err := g.Generate(0)
	require.NoError(t, err)
	var first recordSink
	require.NoError(t, a.Emit(&first))

	_, err = g.Generate(1)
	require.NoError(t, err)

	b, err := g.Generate(0)
	require.NoError(t, err)
	var again recordSink
	require.NoError(t, b.Emit(&again))
	assert.Equal(t, first.linedefs, again.linedefs)
	assert.Equal(t, first.things, again.things)
}

func TestGenerateSeedSweep(t *testing.T) {
	seeds := 40
	if testing.Short() {
		seeds = 8
	}
	for seed := 1; seed <= seeds; seed++ {
		p := NewParamMap().Set("seed", strconv.Itoa(seed)).Set("minrooms", "12")
		g := testGenerator(t, p)
		l, err := g.Generate(0)
		require.NoError(t, err, "seed %d", seed)

		assert.NoError(t, l.CheckOverlap(), "seed %d", seed)
		assert.NoError(t, l.CheckReachable(), "seed %d", seed)
		assert.NoError(t, l.CheckBoundingRects(), "seed %d", seed)
		assert.Zero(t, l.Warnings[warnNegativeAmmo], "seed %d", seed)
		assert.Zero(t, g.QuestDepth(), "seed %d", seed)
		for _, tier := range l.Stats().HAA.Tiers {
			assert.GreaterOrEqual(t, tier.Ammo, 0.0, "seed %d", seed)
			assert.GreaterOrEqual(t, tier.Armor, 0.0, "seed %d", seed)
		}
	}
}

func TestGenerateAllNamesLevels(t *testing.T) {
	tests := []struct {
		game  string
		want  []string
		extra map[string]string
	}{
		{"doom2", []string{"MAP01", "MAP02", "MAP03"}, nil},
		{"doom1", []string{"E1M1", "E1M2", "E1M3"}, nil},
		{"doom1", []string{"E2M8", "E2M9", "E3M1"}, map[string]string{"episode": "2", "mission": "8"}},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.want, ","), func(t *testing.T) {
			p := NewParamMap().Set("game", tt.game).Set("levels", "3").Set("minrooms", "4")
			for k, v := range tt.extra {
				p.Set(k, v)
			}
			levels, err := testGenerator(t, p).GenerateAll()
			require.NoError(t, err)
			var names []string
			for _, l := range levels {
				names = append(names, l.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestBossLevelGetsArena(t *testing.T) {
	p := NewParamMap().Set("map", "7").Set("minrooms", "6").Set("seed", "5")
	l, err := testGenerator(t, p).Generate(0)
	require.NoError(t, err)

	if l.Warnings[warnNoArena] > 0 {
		t.Skip("no space for an arena on this seed")
	}
	if assert.Len(t, l.Arenas, 1) {
		a := l.Arenas[0]
		require.NotNil(t, a.Boss)
		assert.True(t, a.Boss.Is(GenusMonster))
		assert.Equal(t, l.GoalRoom, a.Outer)
	}
	assert.NoError(t, l.CheckReachable())
}

func TestNoArenaMod(t *testing.T) {
	p := NewParamMap().Set("map", "30").Set("minrooms", "5").Enable("noarena")
	l, err := testGenerator(t, p).Generate(0)
	require.NoError(t, err)
	assert.Empty(t, l.Arenas)
}

func TestSecretExitLevel(t *testing.T) {
	p := NewParamMap().Set("map", "15").Set("minrooms", "8").Set("seed", "99")
	l, err := testGenerator(t, p).Generate(0)
	require.NoError(t, err)

	secretExits := 0
	for _, id := range l.Linedefs() {
		if l.Linedef(id).Type == LineS1SecretExit {
			secretExits++
		}
	}
	if l.Warnings[warnSecretUnreachable] == 0 {
		assert.Equal(t, 1, secretExits)
		assert.NotZero(t, l.Stats().Secrets)
	}
}

func TestDeathmatchStarts(t *testing.T) {
	p := NewParamMap().Set("dm", "true").Set("minrooms", "10").Set("seed", "3")
	l, err := testGenerator(t, p).Generate(0)
	require.NoError(t, err)

	starts := 0
	for _, id := range l.Things() {
		if l.Thing(id).Genus.ID == IDDMStart {
			starts++
		}
	}
	assert.LessOrEqual(t, starts, 8)
	if l.Warnings[warnFewDMStarts] == 0 {
		assert.GreaterOrEqual(t, starts, 4)
	}
}

func TestPlayerStarts(t *testing.T) {
	l, err := testGenerator(t, nil).Generate(0)
	require.NoError(t, err)

	found := map[int]bool{}
	for _, id := range l.Things() {
		th := l.Thing(id)
		if th.Genus.Is(GenusStart) {
			found[th.Genus.ID] = true
			r := l.Bounds(l.FirstRoom)
			assert.True(t, r.MinX < th.X && th.X < r.MaxX && r.MinY < th.Y && th.Y < r.MaxY, "start outside the first room")
		}
	}
	for id := IDPlayer1; id < IDPlayer1+4; id++ {
		assert.True(t, found[id], "player %d start", id)
	}
}

func TestErrorTextureFallback(t *testing.T) {
	// A theme with no wall textures of its own.
	const cfg = `
[THEMES]
theme bare
theme tech
texture STARTAN3 wall core tech
flat FLOOR4_8 floor ceiling core tech
`
	cat, err := ParseConfig(strings.NewReader(cfg))
	require.NoError(t, err)
	c, err := NewConfig(NewParamMap().Set("error_texture", "OOPS").Set("error_flat", "OOPSFLAT"))
	require.NoError(t, err)
	g := NewGenerator(c, cat)
	g.start(0)

	bare, ok := cat.FindTheme("bare")
	require.True(t, ok)
	tex := g.randomWall0(bare)
	require.NotNil(t, tex)
	assert.Equal(t, "OOPS", tex.Name)
	assert.Equal(t, "OOPSFLAT", g.randomFlat0(bare, FlatFloor).Name)
	_, added := cat.LookupTexture("OOPS")
	assert.False(t, added, "error texture must not leak into a shared catalog")

	tech, _ := cat.FindTheme("tech")
	assert.Equal(t, "STARTAN3", g.randomWall0(tech).Name)
}

func TestGenerateReportsInternalErrors(t *testing.T) {
	// The catalog has no things at all, not even player starts.
	const cfg = `
[THEMES]
theme tech
texture STARTAN3 wall core tech
flat FLOOR4_8 floor ceiling core tech
`
	cat, err := ParseConfig(strings.NewReader(cfg))
	require.NoError(t, err)
	c, err := NewConfig(NewParamMap().Set("minrooms", "2"))
	require.NoError(t, err)

	_, err = NewGenerator(c, cat).Generate(0)

	require.Error(t, err)
	var fe *FatalError
	require.True(t, errors.As(errors.Cause(err), &fe))
	assert.Equal(t, ExitInternal, fe.Code)
}
