package kinematics

import "math"

// Vec2 is a point or vector in the XY plane.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// V2 is a shorthand constructor for Vec2.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + u.
func (v Vec2) Add(u Vec2) Vec2 {
	return Vec2{v.X + u.X, v.Y + u.Y}
}

// Sub returns v - u.
func (v Vec2) Sub(u Vec2) Vec2 {
	return Vec2{v.X - u.X, v.Y - u.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the Euclidean length of the vector.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the Euclidean distance between v and u.
func (v Vec2) Distance(u Vec2) float64 {
	return v.Sub(u).Length()
}

// Normalize returns the unit vector in the same direction.
// ok is false, and the zero vector returned, when v has zero length.
func (v Vec2) Normalize() (unit Vec2, ok bool) {
	l := v.Length()
	if l == 0 || math.IsNaN(l) {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Extend lifts v into 3D at depth z.
func (v Vec2) Extend(z float64) Vec3 {
	return Vec3{v.X, v.Y, z}
}

// Vec3 is a world position; Z is the draw depth layer.
type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// XY drops the depth component.
func (v Vec3) XY() Vec2 {
	return Vec2{v.X, v.Y}
}

// Add returns v + u.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{v.X + u.X, v.Y + u.Y, v.Z + u.Z}
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Vec2 `yaml:"min"`
	Max Vec2 `yaml:"max"`
}

// RectFromCenter builds a rectangle of the given size centred on center.
// Negative sizes are treated as their absolute value.
func RectFromCenter(center Vec2, width, height float64) Rect {
	half := Vec2{math.Abs(width) / 2, math.Abs(height) / 2}
	return Rect{Min: center.Sub(half), Max: center.Add(half)}
}

// Contains reports whether p lies inside r. Edges count as inside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Center returns the midpoint of r.
func (r Rect) Center() Vec2 {
	return r.Min.Add(r.Max).Scale(0.5)
}

// Size returns the width and height of r.
func (r Rect) Size() (width, height float64) {
	return r.Max.X - r.Min.X, r.Max.Y - r.Min.Y
}

// wrapAngle folds an angle into (-2π, 2π) without changing its orientation.
func wrapAngle(a float64) float64 {
	return math.Mod(a, 2*math.Pi)
}
