package world

import "math"

// Location is a position in a named world with a viewing direction given as
// yaw and pitch in degrees.
type Location struct {
	// World is the name of the world the location belongs to.
	World string `json:"world" yaml:"world"`
	// Pos is the position inside the world.
	Pos Vector `json:"pos" yaml:",inline"`
	// Yaw is the rotation around the y-axis in degrees.
	Yaw float64 `json:"yaw" yaml:"yaw"`
	// Pitch is the vertical rotation in degrees. Positive values look down.
	Pitch float64 `json:"pitch" yaml:"pitch"`
}

// Add returns a copy of the location moved by the given vector.
func (l Location) Add(v Vector) Location {
	l.Pos = l.Pos.Add(v)
	return l
}

// DistanceSquared returns the squared distance to the other location. Worlds
// are not compared.
func (l Location) DistanceSquared(o Location) float64 {
	return l.Pos.DistanceSquared(o.Pos)
}

// Distance returns the distance to the other location.
func (l Location) Distance(o Location) float64 {
	return l.Pos.Distance(o.Pos)
}

// Direction returns the unit vector the location is facing.
func (l Location) Direction() Vector {
	yaw := l.Yaw * math.Pi / 180
	pitch := l.Pitch * math.Pi / 180
	xz := math.Cos(pitch)
	return Vector{
		X: -xz * math.Sin(yaw),
		Y: -math.Sin(pitch),
		Z: xz * math.Cos(yaw),
	}
}
