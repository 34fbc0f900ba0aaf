package geom

import (
	"fmt"
	"math"
)

// Point is a sample endpoint along a toolpath: a millimeter position plus
// the extrusion delta consumed by the move that arrives at it.
type Point struct {
	X, Y, Z   float64
	ERelative float64
}

// Midpoint returns the componentwise average of p1 and p2. The resulting
// point contributes no extrusion of its own.
func Midpoint(p1, p2 Point) Point {
	return Point{
		X: (p1.X + p2.X) / 2.0,
		Y: (p1.Y + p2.Y) / 2.0,
		Z: (p1.Z + p2.Z) / 2.0,
	}
}

// Sub returns the vector from o to p.
func (p Point) Sub(o Point) Vector {
	return Vector{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Add returns the point translated by v, carrying ERelative through.
func (p Point) Add(v Vector) Point {
	return Point{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z, ERelative: p.ERelative}
}

func (p Point) String() string {
	return fmt.Sprintf("Point{X: %f, Y: %f, Z: %f, E: %f}", p.X, p.Y, p.Z, p.ERelative)
}

// CartesianDistance2D is the XY-plane Euclidean distance between two points.
func CartesianDistance2D(x1, y1, x2, y2 float64) float64 {
	return math.Sqrt((x1-x2)*(x1-x2) + (y1-y2)*(y1-y2))
}

// Vector is a 3D displacement: subtraction of points, scalar multiplication,
// and magnitude.
type Vector struct {
	X, Y, Z float64
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vector) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// CrossMagnitudeXY is the signed twice-area of the triangle formed by v1 and
// v2, projected onto XY. Its sign determines arc direction.
func CrossMagnitudeXY(v1, v2 Vector) float64 {
	return v1.X*v2.Y - v1.Y*v2.X
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector{X: %f, Y: %f, Z: %f}", v.X, v.Y, v.Z)
}
