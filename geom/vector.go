package geom

import "math"

type Element = float32

type Vector2 struct {
	X Element
	Y Element
}

func NewVector2(x, y Element) *Vector2 {
	return &Vector2{X: x, Y: y}
}

type Vector3 struct {
	X Element
	Y Element
	Z Element
}

func NewVector3(x, y, z Element) *Vector3 {
	return &Vector3{X: x, Y: y, Z: z}
}

func NewVector3FromArray(arr [3]Element) *Vector3 {
	return &Vector3{X: arr[0], Y: arr[1], Z: arr[2]}
}

func NewVector3FromSlice(arr []Element) *Vector3 {
	return &Vector3{X: arr[0], Y: arr[1], Z: arr[2]}
}

func (v *Vector3) Add(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X + v2.X, Y: v.Y + v2.Y, Z: v.Z + v2.Z}
}

func (v *Vector3) Sub(v2 *Vector3) *Vector3 {
	return &Vector3{X: v.X - v2.X, Y: v.Y - v2.Y, Z: v.Z - v2.Z}
}

func (v *Vector3) Scale(s Element) *Vector3 {
	return &Vector3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v *Vector3) Len() Element {
	return Element(math.Sqrt(float64(v.X*v.X + v.Y*v.Y + v.Z*v.Z)))
}

func (v *Vector3) Min(v2 *Vector3) *Vector3 {
	return &Vector3{X: min(v.X, v2.X), Y: min(v.Y, v2.Y), Z: min(v.Z, v2.Z)}
}

func (v *Vector3) Max(v2 *Vector3) *Vector3 {
	return &Vector3{X: max(v.X, v2.X), Y: max(v.Y, v2.Y), Z: max(v.Z, v2.Z)}
}

// Quaternion is a rotation (x, y, z, w).
type Quaternion struct {
	X Element
	Y Element
	Z Element
	W Element
}

func NewQuaternionFromArray(arr [4]Element) *Quaternion {
	return &Quaternion{X: arr[0], Y: arr[1], Z: arr[2], W: arr[3]}
}

// Mul returns q * q2 (q2 applied first).
func (q *Quaternion) Mul(q2 *Quaternion) *Quaternion {
	return &Quaternion{
		X: q.W*q2.X + q.X*q2.W + q.Y*q2.Z - q.Z*q2.Y,
		Y: q.W*q2.Y - q.X*q2.Z + q.Y*q2.W + q.Z*q2.X,
		Z: q.W*q2.Z + q.X*q2.Y - q.Y*q2.X + q.Z*q2.W,
		W: q.W*q2.W - q.X*q2.X - q.Y*q2.Y - q.Z*q2.Z,
	}
}

func axisAngle(x, y, z Element, deg Element) *Quaternion {
	rad := float64(deg) * math.Pi / 180
	s := Element(math.Sin(rad / 2))
	return &Quaternion{X: x * s, Y: y * s, Z: z * s, W: Element(math.Cos(rad / 2))}
}

// NewQuaternionFromEulerXYZ converts Euler angles in degrees applied in
// X, Y, Z order.
func NewQuaternionFromEulerXYZ(x, y, z Element) *Quaternion {
	return axisAngle(0, 0, 1, z).Mul(axisAngle(0, 1, 0, y)).Mul(axisAngle(1, 0, 0, x))
}
