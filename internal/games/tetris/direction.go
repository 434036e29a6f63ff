package tetris

// Direction is one of the four orientations of a piece.
// South is the canonical orientation stored in the catalog.
type Direction uint8

const (
	South Direction = iota
	East
	North
	West
)

// clockwise and counterClockwise are the transition tables of the rotation ring.
var (
	clockwise        = [4]Direction{South: East, East: North, North: West, West: South}
	counterClockwise = [4]Direction{South: West, West: North, North: East, East: South}
)

// Clockwise returns the orientation after a clockwise quarter turn.
func (d Direction) Clockwise() Direction {
	return clockwise[d&3]
}

// CounterClockwise returns the orientation after a counter-clockwise quarter turn.
func (d Direction) CounterClockwise() Direction {
	return counterClockwise[d&3]
}

// String returns the orientation name.
func (d Direction) String() string {
	switch d {
	case South:
		return "South"
	case East:
		return "East"
	case North:
		return "North"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}
