package slump

import "github.com/sirupsen/logrus"

// Goal is what finishing a quest gives the player.
type Goal int

const (
	GoalNull     Goal = iota // a dead-end branch with a bonus at the end
	GoalLevelEnd             // the exit
	GoalKey
	GoalSwitch
	GoalGate // a teleporter into the rest of the level
	GoalArena
)

func (g Goal) String() string {
	switch g {
	case GoalNull:
		return "null"
	case GoalLevelEnd:
		return "level end"
	case GoalKey:
		return "key"
	case GoalSwitch:
		return "switch"
	case GoalGate:
		return "gate"
	case GoalArena:
		return "arena"
	}
	return "unknown"
}

// Quest is one frame of the goal stack. The rooms built while it is on top
// form its branch; when it closes, its reward is installed in the last of
// them and the quest below builds the matching lock next to Room.
type Quest struct {
	Goal     Goal
	Tag      int      // tag of whatever the reward opens
	Tag2     int      // second tag, for gates
	Type     LineType // line type of a switch reward
	Count    int      // rooms built so far
	MinRooms int
	Room     SectorID // room the branch started from
	Current  SectorID // last room of the branch
	AuxTag   int      // deferred trigger, e.g. monsters released when the key is taken
	Surprise LinedefID
	Thing    *Genus // the key, for key quests
	rooms    []SectorID
	next     *Quest
}

type questStack struct {
	top    *Quest
	depth  int
	pushes int
	pops   int
}

func (s *questStack) push(q *Quest) {
	q.next = s.top
	s.top = q
	s.depth++
	s.pushes++
}

func (s *questStack) pop() *Quest {
	q := s.top
	if q == nil {
		internalf("pop from empty quest stack")
	}
	s.top = q.next
	q.next = nil
	s.depth--
	s.pops++
	return q
}

func (s *questStack) empty() bool { return s.top == nil }

// newQuest starts a quest branching off room.
func newQuest(goal Goal, room SectorID, minRooms int) *Quest {
	return &Quest{
		Goal:     goal,
		MinRooms: minRooms,
		Room:     room,
		Current:  room,
		Surprise: NoLinedef,
		rooms:    []SectorID{room},
	}
}

// enoughQuest reports whether q has all the rooms it needs. The level end
// quest turns into an arena finale on boss levels or when one is forced.
func (g *Generator) enoughQuest(q *Quest) bool {
	if q.Count < q.MinRooms {
		return false
	}
	if q.Goal == GoalLevelEnd && !g.cfg.ModEnabled("noarena") {
		if g.l.params.slot.isBoss() || g.cfg.ForceArena {
			q.Goal = GoalArena
		}
	}
	return true
}

// maybePushQuest may start up to MaxForks side branches off q's current
// room. Each takes some of q's remaining rooms; the ones pushed later sit
// behind the locks of the ones above them.
func (g *Generator) maybePushQuest(q *Quest) {
	if g.cfg.Forkiness <= 0 {
		return
	}
	for n := 0; n < g.cfg.MaxForks; n++ {
		left := q.MinRooms - q.Count
		if left < 2 || !g.rollpercent(g.cfg.Forkiness) {
			return
		}
		g.pushQuest(q, 1+g.roll(left/2))
	}
}

// pushQuest starts a side branch of budget rooms off q's current room.
func (g *Generator) pushQuest(q *Quest, budget int) {
	child := newQuest(GoalSwitch, q.Current, budget)
	switch {
	case budget == 1 && g.rollpercent(50):
		child.Goal = GoalNull
	case g.rollpercent(g.cfg.PPushQuest):
		if key := g.nextKey(); key != nil {
			child.Goal = GoalKey
			child.Thing = key
		} else if g.gatesEnabled() {
			child.Goal = GoalGate
		}
	}
	switch child.Goal {
	case GoalSwitch:
		child.Tag = g.l.newTag()
		child.Type = LineS1DoorOpen
		if g.rollpercent(30) {
			child.Type = LineS1FloorLowest
		}
	case GoalGate:
		child.Tag = g.l.newTag()
		child.Tag2 = g.l.newTag()
	}
	q.MinRooms -= budget
	g.quests.push(child)
	g.l.maxQuest = max(g.l.maxQuest, g.quests.depth)
	g.log.WithFields(logrus.Fields{"goal": child.Goal.String(), "rooms": budget, "depth": g.quests.depth}).Debug("Pushed quest")
}

func (g *Generator) gatesEnabled() bool {
	return g.cfg.Gates && !g.cfg.ModEnabled("nogates")
}

var keyOrder = [][2]int{
	{IDBlueCard, IDBlueSkull},
	{IDYellowCard, IDYellowSkull},
	{IDRedCard, IDRedSkull},
}

// nextKey returns a key colour not used yet on this level, or nil.
func (g *Generator) nextKey() *Genus {
	for _, pair := range keyOrder {
		used := false
		for _, k := range g.l.keysUsed {
			if k.ID == pair[0] || k.ID == pair[1] {
				used = true
			}
		}
		if used {
			continue
		}
		id := pair[0]
		if g.rollpercent(50) {
			id = pair[1]
		}
		key, ok := g.cat.LookupGenus(id)
		if !ok {
			continue
		}
		g.l.keysUsed = append(g.l.keysUsed, key)
		return key
	}
	return nil
}

// keyDoorType is the door line type opened by key.
func keyDoorType(key *Genus) LineType {
	switch key.ID {
	case IDBlueCard, IDBlueSkull:
		return LineDRBlueDoor
	case IDRedCard, IDRedSkull:
		return LineDRRedDoor
	}
	return LineDRYellowDoor
}
