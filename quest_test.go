package slump

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestStack(t *testing.T) {
	var s questStack
	assert.True(t, s.empty())

	a := newQuest(GoalLevelEnd, 0, 5)
	b := newQuest(GoalKey, 3, 2)
	s.push(a)
	s.push(b)
	assert.Equal(t, 2, s.depth)

	assert.Same(t, b, s.pop())
	assert.Same(t, a, s.pop())
	assert.True(t, s.empty())
	assert.Equal(t, 0, s.depth)
	assert.Equal(t, s.pushes, s.pops)
	assert.Nil(t, b.next)
}

func TestQuestStackPopEmptyPanics(t *testing.T) {
	var s questStack
	defer func() {
		r := recover()
		require.NotNil(t, r)
		fe, ok := r.(*FatalError)
		require.True(t, ok, "panicked with %T", r)
		assert.Equal(t, ExitInternal, fe.Code)
	}()
	s.pop()
}

func TestNewQuest(t *testing.T) {
	q := newQuest(GoalSwitch, 4, 3)
	assert.Equal(t, SectorID(4), q.Room)
	assert.Equal(t, SectorID(4), q.Current)
	assert.Equal(t, NoLinedef, q.Surprise)
	assert.Zero(t, q.Count)
	assert.Equal(t, []SectorID{4}, q.rooms)
}

func TestEnoughQuest(t *testing.T) {
	tests := []struct {
		name  string
		slot  levelSlot
		p     *ParamMap
		count int
		ok    bool
		goal  Goal
	}{
		{"too few rooms", levelSlot{mapnum: 7}, NewParamMap(), 2, false, GoalLevelEnd},
		{"plain level", levelSlot{mapnum: 3}, NewParamMap(), 3, true, GoalLevelEnd},
		{"boss level", levelSlot{mapnum: 7}, NewParamMap(), 3, true, GoalArena},
		{"forced arena", levelSlot{mapnum: 3}, NewParamMap().Set("arena", "true"), 3, true, GoalArena},
		{"arenas switched off", levelSlot{mapnum: 30}, NewParamMap().Enable("noarena"), 3, true, GoalLevelEnd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testGenerator(t, tt.p)
			g.start(0)
			g.l.params.slot = tt.slot
			q := newQuest(GoalLevelEnd, 0, 3)
			q.Count = tt.count

			assert.Equal(t, tt.ok, g.enoughQuest(q))
			assert.Equal(t, tt.goal, q.Goal)
		})
	}
}

func TestNextKey(t *testing.T) {
	g := testGenerator(t, nil)
	g.start(0)

	colours := map[LineType]bool{}
	for i := 0; i < 3; i++ {
		key := g.nextKey()
		require.NotNil(t, key)
		assert.True(t, key.Is(GenusKey))
		colours[keyDoorType(key)] = true
	}
	assert.Len(t, colours, 3, "each colour is used once")
	assert.Nil(t, g.nextKey())
	assert.Len(t, g.l.keysUsed, 3)
}

func TestMaybePushQuest(t *testing.T) {
	g := testGenerator(t, NewParamMap().Set("forkiness", "100").Set("max_forks", "1"))
	g.start(0)
	root := newQuest(GoalLevelEnd, 0, 10)
	root.Count = 1
	g.quests.push(root)

	g.maybePushQuest(root)

	require.Equal(t, 2, g.quests.depth)
	child := g.quests.top
	assert.Equal(t, SectorID(0), child.Room)
	assert.GreaterOrEqual(t, child.MinRooms, 1)
	assert.LessOrEqual(t, child.MinRooms, 5)
	assert.Equal(t, 10-child.MinRooms, root.MinRooms, "the branch takes rooms from its parent")
	assert.Equal(t, 2, g.l.maxQuest)
	if child.Goal == GoalSwitch || child.Goal == GoalGate {
		assert.NotZero(t, child.Tag)
	}
}

func TestMaybePushQuestNeedsRooms(t *testing.T) {
	g := testGenerator(t, NewParamMap().Set("forkiness", "100"))
	g.start(0)
	root := newQuest(GoalLevelEnd, 0, 3)
	root.Count = 2
	g.quests.push(root)

	g.maybePushQuest(root)

	assert.Equal(t, 1, g.quests.depth)
}

func TestMaybePushQuestSiblings(t *testing.T) {
	g := testGenerator(t, NewParamMap().Set("forkiness", "100").Set("max_forks", "3"))
	g.start(0)
	root := newQuest(GoalLevelEnd, 0, 20)
	root.Count = 1
	g.quests.push(root)

	g.maybePushQuest(root)

	require.Greater(t, g.quests.depth, 2)
	assert.LessOrEqual(t, g.quests.depth, 4)
	taken := 0
	for q := g.quests.top; q != root; q = q.next {
		assert.Equal(t, SectorID(0), q.Room, "siblings branch off the same room")
		assert.GreaterOrEqual(t, q.MinRooms, 1)
		taken += q.MinRooms
	}
	assert.Equal(t, 20-taken, root.MinRooms)
	assert.GreaterOrEqual(t, root.MinRooms-root.Count, 1)
}
