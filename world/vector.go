package world

import "math"

// Vector is an immutable three-dimensional vector. All operations return new
// values.
type Vector struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Add returns the sum of both vectors.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Subtract returns v - o.
func (v Vector) Subtract(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Multiply scales the vector by the given factor.
func (v Vector) Multiply(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// LengthSquared returns the squared euclidean length.
func (v Vector) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the euclidean length.
func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns the unit vector with the same direction. The zero vector
// stays zero.
func (v Vector) Normalize() Vector {
	l := v.Length()
	if l == 0 {
		return Vector{}
	}
	return v.Multiply(1 / l)
}

// Midpoint returns the point halfway between both vectors.
func (v Vector) Midpoint(o Vector) Vector {
	return Vector{X: (v.X + o.X) / 2, Y: (v.Y + o.Y) / 2, Z: (v.Z + o.Z) / 2}
}

// DistanceSquared returns the squared distance between both points.
func (v Vector) DistanceSquared(o Vector) float64 {
	return v.Subtract(o).LengthSquared()
}

// Distance returns the distance between both points.
func (v Vector) Distance(o Vector) float64 {
	return math.Sqrt(v.DistanceSquared(o))
}
