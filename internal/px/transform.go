package px

import "github.com/go-gl/mathgl/mgl64"

// Transform is a rigid pose: a rotation followed by a translation.
// Composition follows the usual convention: (a.Mul(b)) applies b first, then a.
type Transform struct {
	P mgl64.Vec3
	Q mgl64.Quat
}

// TransformIdent returns the identity transform.
func TransformIdent() Transform {
	return Transform{Q: mgl64.QuatIdent()}
}

// NewTransform returns a transform at position p with rotation q.
func NewTransform(p mgl64.Vec3, q mgl64.Quat) Transform {
	return Transform{P: p, Q: q}
}

// Mul composes two transforms: result.P = t.P + t.Q·rot(o.P), result.Q = t.Q * o.Q.
func (t Transform) Mul(o Transform) Transform {
	return Transform{
		P: t.P.Add(t.Q.Rotate(o.P)),
		Q: t.Q.Mul(o.Q).Normalize(),
	}
}

// Inverse returns the transform u such that t.Mul(u) is the identity.
func (t Transform) Inverse() Transform {
	qi := t.Q.Inverse()
	return Transform{
		P: qi.Rotate(t.P).Mul(-1),
		Q: qi,
	}
}

// TransformPoint maps a local-space point into the transform's space.
func (t Transform) TransformPoint(p mgl64.Vec3) mgl64.Vec3 {
	return t.P.Add(t.Q.Rotate(p))
}
