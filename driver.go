package slump

import "github.com/sirupsen/logrus"

// makeLevel runs the quest stack until the level-end quest closes, then
// finishes the level as a whole.
func (g *Generator) makeLevel() {
	l := g.l
	first := g.firstRoom()
	g.placeStarts(first)
	g.makeWatermark(first)

	root := newQuest(GoalLevelEnd, first, g.cfg.MinRooms)
	root.Count = 1
	g.quests.push(root)
	l.maxQuest = 1

	for !g.quests.empty() {
		q := g.quests.top
		if !g.enoughQuest(q) {
			if g.extend(q) {
				continue
			}
			g.warn(warnShortQuest, "goal", q.Goal.String(), "rooms", q.Count, "wanted", q.MinRooms)
		}
		g.closeQuest(q)
		g.finishRoom(q.Current)
		g.quests.pop()
		if parent := g.quests.top; parent != nil {
			g.lockQuest(parent, q)
		}
	}

	g.closeQuestFinal()
	if g.cfg.Deathmatch {
		g.deathmatchStarts()
	}
	g.patchTextures()
	g.alignGroups()
	l.finalHAA = *g.haa
}

// extend adds a room to q's branch. When the newest room has no space left
// for a room of the usual size it settles for a small one. With forking on,
// it then falls back to the earlier rooms of the branch, newest first; with
// forking off the branch stays a single chain.
func (g *Generator) extend(q *Quest) bool {
	if len(q.rooms) == 0 {
		q.rooms = []SectorID{q.Current}
	}
	oldest := len(q.rooms) - 1
	if g.cfg.Forkiness > 0 {
		oldest = 0
	}
	for i := len(q.rooms) - 1; i >= oldest; i-- {
		from := q.rooms[i]
		room := g.makeNextRoom(from, nil)
		if room == NoSector && i == len(q.rooms)-1 {
			room = g.linkRoom(from, nil, minRoom)
		}
		if room == NoSector {
			continue
		}
		g.finishRoom(q.Current)
		q.Current = room
		q.rooms = append(q.rooms, room)
		q.Count++
		g.maybePushQuest(q)
		return true
	}
	return false
}

// lockQuest builds the link, opened by child's reward, through which parent
// continues from the room child branched off.
func (g *Generator) lockQuest(parent, child *Quest) {
	if child.Goal == GoalNull {
		return
	}
	room := g.makeNextRoom(child.Room, child)
	if room == NoSector {
		g.warn(warnLockFailed, "goal", child.Goal.String(), "room", child.Room)
		return
	}
	parent.Current = room
	parent.rooms = []SectorID{room}
	parent.Count++
	g.log.WithFields(logrus.Fields{"goal": child.Goal.String(), "room": room}).Debug("Locked quest")
	g.maybePushQuest(parent)
}

// finishRoom decorates and stocks room once the driver has moved past it.
func (g *Generator) finishRoom(room SectorID) {
	l := g.l
	if l.populated.Has(room) {
		return
	}
	l.populated.Put(room)
	g.embellishRoom(room)
	g.populate(room)
	g.haaUnpend()
}
