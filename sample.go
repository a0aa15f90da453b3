package vfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const tau = 2 * math.Pi

var (
	axisX = mgl32.Vec3{1, 0, 0}
	axisY = mgl32.Vec3{0, 1, 0}
	axisZ = mgl32.Vec3{0, 0, 1}
)

// sampleShape draws a birth position from s.
func sampleShape(s Shape, rng Rand) mgl32.Vec3 {
	switch s := s.(type) {
	case PointShape:
		return s.Position
	case SphereShape:
		r := s.Radius.Sample(rng)
		return s.Center.Add(randomUnitSphere(rng).Mul(r))
	case BoxShape:
		return s.Center.Add(mgl32.Vec3{
			(rng.Float32()*2 - 1) * s.HalfExtents[0],
			(rng.Float32()*2 - 1) * s.HalfExtents[1],
			(rng.Float32()*2 - 1) * s.HalfExtents[2],
		})
	case CircleShape:
		r := s.Radius.Sample(rng)
		a := rng.Float32() * tau
		tangent, bitangent := basis(s.Axis)
		dir := tangent.Mul(cos32(a)).Add(bitangent.Mul(sin32(a)))
		return s.Center.Add(dir.Mul(r))
	case EdgeShape:
		t := rng.Float32()
		return s.Start.Add(s.End.Sub(s.Start).Mul(t))
	case ConeShape:
		a := rng.Float32() * tau
		h := rng.Float32() * s.Height
		r := s.Radius * (h / max(s.Height, 0.001)) * float32(math.Tan(float64(s.Angle)))
		return mgl32.Vec3{cos32(a) * r, h, sin32(a) * r}
	}
	return mgl32.Vec3{}
}

// sampleVelocity draws a birth velocity. position is the particle's position
// at the time the modifier runs.
func sampleVelocity(m VelocityMode, position mgl32.Vec3, rng Rand) mgl32.Vec3 {
	switch m := m.(type) {
	case RadialVelocity:
		dir, ok := normalize(position.Sub(m.Center))
		if !ok {
			dir = randomUnitSphere(rng)
		}
		return dir.Mul(m.Speed.Sample(rng))
	case DirectionalVelocity:
		dir, _ := normalize(m.Direction)
		return dir.Mul(m.Speed.Sample(rng))
	case TangentVelocity:
		dir, ok := normalize(m.Axis.Cross(position))
		if !ok {
			dir = randomUnitSphere(rng)
		}
		return dir.Mul(m.Speed.Sample(rng))
	case ConeVelocity:
		return randomCone(m.Direction, m.Angle, rng).Mul(m.Speed.Sample(rng))
	case RandomVelocity:
		return randomUnitSphere(rng).Mul(m.Speed.Sample(rng))
	}
	return mgl32.Vec3{}
}

// sampleOrientation returns the birth orientation for modes that do not
// depend on velocity.
func sampleOrientation(mode OrientMode, rng Rand) mgl32.Quat {
	switch mode {
	case OrientRandomY:
		return mgl32.QuatRotate(rng.Float32()*tau, axisY)
	case OrientRandomFull:
		return randomQuat(rng)
	}
	return mgl32.QuatIdent()
}

// alignTo returns the rotation taking +Z onto v, or identity for a zero v.
func alignTo(v mgl32.Vec3) mgl32.Quat {
	dir, ok := normalize(v)
	if !ok {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(axisZ, dir)
}

// randomUnitSphere returns a uniformly distributed unit vector by rejection
// sampling inside the unit cube.
func randomUnitSphere(rng Rand) mgl32.Vec3 {
	for {
		v := mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
		if l2 := v.Dot(v); l2 > 0.001 && l2 <= 1 {
			return v.Mul(1 / sqrt32(l2))
		}
	}
}

// randomQuat returns a random unit quaternion.
func randomQuat(rng Rand) mgl32.Quat {
	for {
		q := mgl32.Quat{
			W: rng.Float32()*2 - 1,
			V: mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1},
		}
		if l2 := q.Dot(q); l2 > 0.001 {
			return q.Scale(1 / sqrt32(l2))
		}
	}
}

// randomCone returns a unit vector within halfAngle radians of direction,
// uniform over the spherical cap.
func randomCone(direction mgl32.Vec3, halfAngle float32, rng Rand) mgl32.Vec3 {
	dir, ok := normalize(direction)
	if !ok {
		return randomUnitSphere(rng)
	}
	right, up := basis(dir)
	a := rng.Float32() * tau
	cosTheta := 1 - rng.Float32()*(1-cos32(halfAngle))
	sinTheta := sqrt32(max(1-cosTheta*cosTheta, 0))
	v := dir.Mul(cosTheta).
		Add(right.Mul(sinTheta * cos32(a))).
		Add(up.Mul(sinTheta * sin32(a)))
	out, _ := normalize(v)
	return out
}

// basis returns two unit vectors perpendicular to axis and to each other.
func basis(axis mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	up := axisY
	if abs32(axis[1]) >= 0.99 {
		up = axisX
	}
	t, ok := normalize(axis.Cross(up))
	if !ok {
		return axisX, axisZ
	}
	b, _ := normalize(axis.Cross(t))
	return t, b
}

// normalize returns v scaled to unit length, or zero and false when v is
// too short to have a direction.
func normalize(v mgl32.Vec3) (mgl32.Vec3, bool) {
	l2 := v.Dot(v)
	if l2 < 1e-12 || l2 != l2 {
		return mgl32.Vec3{}, false
	}
	return v.Mul(1 / sqrt32(l2)), true
}

func sqrt32(v float32) float32 { return float32(math.Sqrt(float64(v))) }
func sin32(v float32) float32  { return float32(math.Sin(float64(v))) }
func cos32(v float32) float32  { return float32(math.Cos(float64(v))) }

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
