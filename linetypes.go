package slump

// LineType is a linedef action code. Only the actions the generator wires are
// named here; the prefix gives the trigger (D manual, S switch, W walk-over,
// G gunfire) and 1 or R for once or repeatable.
type LineType int

const (
	LineNone             LineType = 0
	LineDRDoor           LineType = 1   // DR Door
	LineW1DoorOpen       LineType = 2   // W1 Door Stay Open
	LineW1Door           LineType = 4   // W1 Door
	LineS1Exit           LineType = 11  // S1 Exit (Normal)
	LineW1Lift           LineType = 10  // W1 Lift Also Monsters
	LineW1LightMax       LineType = 13  // W1 Light To 255
	LineW1FloorHighest   LineType = 19  // W1 Floor To Highest Adjacent Floor
	LineS1FloorLowest    LineType = 23  // S1 Floor To Lowest Adjacent Floor
	LineDRBlueDoor       LineType = 26  // DR Door Blue Key
	LineDRYellowDoor     LineType = 27  // DR Door Yellow Key
	LineDRRedDoor        LineType = 28  // DR Door Red Key
	LineD1DoorOpen       LineType = 31  // D1 Door Stay Open
	LineD1BlueDoor       LineType = 32  // D1 Door Blue Key
	LineD1RedDoor        LineType = 33  // D1 Door Red Key
	LineD1YellowDoor     LineType = 34  // D1 Door Yellow Key
	LineW1FloorLowest    LineType = 38  // W1 Floor To Lowest Adjacent Floor
	LineW1Teleport       LineType = 39  // W1 Teleport
	LineScrollLeft       LineType = 48  // Scrolling Wall Left
	LineS1SecretExit     LineType = 51  // S1 Exit (Secret)
	LineW1Exit           LineType = 52  // W1 Exit (Normal)
	LineSRLift           LineType = 62  // SR Lift
	LineSRDoor           LineType = 63  // SR Door
	LineWRCrusherSlow    LineType = 73  // WR Start Crusher, Slow Damage
	LineWRLiftMonsters   LineType = 88  // WR Lift Also Monsters
	LineWRTeleport       LineType = 97  // WR Teleport
	LineS1FloorUp        LineType = 101 // S1 Floor To Lowest Adjacent Ceiling
	LineS1DoorOpen       LineType = 103 // S1 Door Stay Open
	LineWRDoorFast       LineType = 105 // WR Door Fast
	LineW1DoorOpenFast   LineType = 109 // W1 Door Stay Open Fast
	LineDRDoorFast       LineType = 117 // DR Door Fast
	LineW1SecretExit     LineType = 124 // W1 Exit (Secret)
	LineW1FloorNextUp    LineType = 119 // W1 Floor To Next Higher Floor
	LineWRTeleportMonstr LineType = 126 // WR Teleport Monsters Only
	LineSRBlueDoorFast   LineType = 99  // SR Door Blue Key Fast
)

// isExit reports whether t ends the level.
func (t LineType) isExit() bool {
	switch t {
	case LineS1Exit, LineW1Exit, LineS1SecretExit, LineW1SecretExit:
		return true
	}
	return false
}

// isKeyDoor reports whether t opens only for a key.
func (t LineType) isKeyDoor() bool {
	switch t {
	case LineDRBlueDoor, LineDRYellowDoor, LineDRRedDoor:
		return true
	}
	return false
}

func (t LineType) isTeleport() bool {
	return t == LineW1Teleport || t == LineWRTeleport
}
