package entity

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Schebb/bug-mcjointcoll/internal/px"
)

// BodyKind tags which physics body variant an entity owns.
type BodyKind int

const (
	KindDynamic BodyKind = iota
	KindStatic
)

// Entity is a rendered object backed by one rigid body. Position and Rotation
// mirror the body's world pose (written back by World.SyncTransforms); Scale is
// the full draw size of the box.
type Entity struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    mgl64.Vec3

	Kind    BodyKind
	Dynamic *px.RigidDynamic
	Static  *px.RigidStatic
}

// Body returns the physics actor behind the entity, whichever kind it is.
func (e *Entity) Body() px.RigidActor {
	if e.Kind == KindDynamic {
		return e.Dynamic
	}
	return e.Static
}

// ModelMatrix composes scale, rotation, then translation into the model transform
// handed to the renderer.
func (e *Entity) ModelMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(float32(e.Position.X()), float32(e.Position.Y()), float32(e.Position.Z()))
	q := mgl32.Quat{
		W: float32(e.Rotation.W),
		V: mgl32.Vec3{float32(e.Rotation.V.X()), float32(e.Rotation.V.Y()), float32(e.Rotation.V.Z())},
	}
	r := q.Normalize().Mat4()
	s := mgl32.Scale3D(float32(e.Scale.X()), float32(e.Scale.Y()), float32(e.Scale.Z()))
	return t.Mul4(r.Mul4(s))
}
