package wad

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuarthighley/slump"
)

func generate(t *testing.T, p *slump.ParamMap) []*slump.Level {
	t.Helper()
	cfg, err := slump.NewConfig(p)
	require.NoError(t, err)
	cat, err := slump.DefaultCatalog()
	require.NoError(t, err)
	levels, err := slump.NewGenerator(cfg, cat).GenerateAll()
	require.NoError(t, err)
	return levels
}

func TestRoundTrip(t *testing.T) {
	levels := generate(t, slump.NewParamMap().Set("seed", "4242").Set("levels", "2").Set("minrooms", "8"))

	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, l := range levels {
		require.NoError(t, l.Emit(w))
	}
	require.NoError(t, w.AddLump("slumpsd", []byte("4242")))
	require.NoError(t, w.Close())

	r, err := NewWADReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.False(t, r.IsIWAD())
	assert.Equal(t, []string{"MAP01", "MAP02"}, r.LevelNames())

	seed, err := r.ReadLump("SLUMPSD")
	require.NoError(t, err)
	assert.Equal(t, "4242", string(seed))

	for _, l := range levels {
		t.Run(l.Name, func(t *testing.T) {
			got, err := r.ReadLevel(l.Name)
			require.NoError(t, err)

			assert.Len(t, got.Things, len(l.Things()))
			assert.Len(t, got.Lines, len(l.Linedefs()))
			assert.Len(t, got.Sides, len(l.Sidedefs()))
			assert.Len(t, got.Vertexes, len(l.Vertices()))
			require.Len(t, got.Sectors, len(l.Sectors()))

			for i, id := range l.Sectors() {
				bb := got.Sectors[i].BoundBox
				if bb.Empty() {
					continue
				}
				want := l.Bounds(id)
				assert.Equal(t, want, slump.Rect{MinX: bb.Left, MinY: bb.Bottom, MaxX: bb.Right, MaxY: bb.Top}, "sector %d", i)
				assert.Equal(t, l.Sector(id).FloorHeight, got.Sectors[i].FloorHeight)
			}
			for i, id := range l.Things() {
				th := l.Thing(id)
				assert.Equal(t, th.X, got.Things[i].X)
				assert.Equal(t, th.Genus.ID, got.Things[i].Type)
			}
			for _, li := range got.Lines {
				assert.NotNil(t, li.FrontSector, "every linedef has a right side")
			}
		})
	}
}

func TestWriterErrors(t *testing.T) {
	t.Run("long level name", func(t *testing.T) {
		w := NewWriter(&bytes.Buffer{})
		assert.Error(t, w.BeginLevel("MAPNUMBER1"))
	})
	t.Run("no level open", func(t *testing.T) {
		w := NewWriter(&bytes.Buffer{})
		assert.Error(t, w.Vertex(0, 0))
		assert.Error(t, w.EndLevel())
	})
	t.Run("coordinate out of range", func(t *testing.T) {
		w := NewWriter(&bytes.Buffer{})
		require.NoError(t, w.BeginLevel("MAP01"))
		assert.Error(t, w.Vertex(40000, 0))
		assert.NoError(t, w.Vertex(-32768, 32767))
	})
	t.Run("bad references", func(t *testing.T) {
		w := NewWriter(&bytes.Buffer{})
		require.NoError(t, w.BeginLevel("MAP01"))
		require.NoError(t, w.Vertex(0, 0))
		require.NoError(t, w.Vertex(64, 0))
		assert.Error(t, w.Sidedef(slump.EmitSidedef{Sector: 0, Upper: "-", Lower: "-", Middle: "-"}), "no sectors yet")
		require.NoError(t, w.Sector(slump.EmitSector{FloorFlat: "FLOOR4_8", CeilingFlat: "CEIL3_5"}))
		require.NoError(t, w.Sidedef(slump.EmitSidedef{Sector: 0, Upper: "-", Lower: "-", Middle: "STARTAN3"}))
		assert.Error(t, w.Sidedef(slump.EmitSidedef{Sector: 0, Middle: "TOOLONGNAME"}))
		assert.Error(t, w.Linedef(slump.EmitLinedef{From: 0, To: 2, Right: 0, Left: slump.NoIndex}))
		assert.Error(t, w.Linedef(slump.EmitLinedef{From: 0, To: 1, Right: 1, Left: slump.NoIndex}))
		assert.NoError(t, w.Linedef(slump.EmitLinedef{From: 0, To: 1, Right: 0, Left: slump.NoIndex}))
	})
	t.Run("close with level open", func(t *testing.T) {
		w := NewWriter(&bytes.Buffer{})
		require.NoError(t, w.BeginLevel("MAP01"))
		assert.Error(t, w.Close())
		assert.Error(t, w.AddLump("NOTE", nil))
		assert.Error(t, w.BeginLevel("MAP02"))
	})
	t.Run("closed", func(t *testing.T) {
		w := NewWriter(&bytes.Buffer{})
		require.NoError(t, w.Close())
		assert.NoError(t, w.Close())
		assert.Error(t, w.BeginLevel("MAP01"))
	})
}

func TestReaderErrors(t *testing.T) {
	_, err := NewWADReader(strings.NewReader("JUNKxxxxxxxx"))
	assert.ErrorContains(t, err, "bad magic")

	_, err = NewWADReader(strings.NewReader("PW"))
	assert.Error(t, err)

	// A map marker followed only by THINGS lacks the rest of its geometry.
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.AddLump("MAP01", nil))
	require.NoError(t, w.AddLump("THINGS", nil))
	require.NoError(t, w.Close())
	r, err := NewWADReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	_, err = r.ReadLevel("MAP01")
	assert.ErrorContains(t, err, "missing LINEDEFS")
	_, err = r.ReadLevel("MAP02")
	assert.Error(t, err)
}

func TestEmptyPWAD(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf).Close())

	r, err := NewWADReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, r.LevelNames())
	assert.False(t, r.HasFlat("FLOOR4_8"))
	_, _, ok := r.TextureSize("STARTAN3")
	assert.False(t, ok)
	assert.NoError(t, r.Close())
}
