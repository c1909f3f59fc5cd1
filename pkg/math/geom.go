// pkg/math/geom.go
// Copyright(c) 2022-2025 readback contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// [2]float32 point/vector utilities

func Add2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

func Mid2f(a [2]float32, b [2]float32) [2]float32 {
	return Scale2f(Add2f(a, b), 0.5)
}

func Dot(a [2]float32, b [2]float32) float32 {
	return a[0]*b[0] + a[1]*b[1]
}

func Length2f(v [2]float32) float32 {
	return Sqrt(Sqr(v[0]) + Sqr(v[1]))
}

func Normalize2f(v [2]float32) [2]float32 {
	l := Length2f(v)
	if l == 0 {
		return [2]float32{0, 0}
	}
	return Scale2f(v, 1/l)
}

// Distance2f returns the Euclidean distance between two points.
func Distance2f(a [2]float32, b [2]float32) float32 {
	return Length2f(Sub2f(b, a))
}
