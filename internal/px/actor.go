package px

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ActorTypeFlags selects actor kinds in Scene.GetActors / Scene.GetNbActors.
type ActorTypeFlags uint32

const (
	ActorTypeRigidStatic ActorTypeFlags = 1 << iota
	ActorTypeRigidDynamic
)

// RigidActor is the shared surface of static and dynamic rigid bodies.
type RigidActor interface {
	// ID is a scene-unique identifier, usable as a side-table key.
	ID() uint32
	GlobalPose() Transform
	SetGlobalPose(pose Transform)
	Shapes() []*Shape
	Release()

	typeFlag() ActorTypeFlags
}

// rigidActor holds what both actor kinds share: identity, pose, attached shapes,
// and the scene the actor currently belongs to.
type rigidActor struct {
	id     uint32
	pose   Transform
	shapes []*Shape
	scene  *Scene
}

func (a *rigidActor) ID() uint32 { return a.id }

func (a *rigidActor) GlobalPose() Transform { return a.pose }

func (a *rigidActor) SetGlobalPose(pose Transform) { a.pose = pose }

func (a *rigidActor) Shapes() []*Shape {
	out := make([]*Shape, len(a.shapes))
	copy(out, a.shapes)
	return out
}

func (a *rigidActor) Release() { a.shapes = nil }

// RigidStatic is an immovable rigid body with infinite mass.
type RigidStatic struct {
	rigidActor
}

func (a *RigidStatic) typeFlag() ActorTypeFlags { return ActorTypeRigidStatic }

// CreateShape attaches a new box shape to the actor and returns it.
func (a *RigidStatic) CreateShape(geom BoxGeometry, material *Material) *Shape {
	s := &Shape{Geometry: geom, Material: material}
	a.shapes = append(a.shapes, s)
	return s
}

// RigidDynamic is a movable rigid body integrated by the scene each step.
type RigidDynamic struct {
	rigidActor

	mass     float64
	invMass  float64
	velocity mgl64.Vec3
	angular  mgl64.Vec3

	inertiaLocal    mgl64.Mat3
	invInertiaLocal mgl64.Mat3
}

func (a *RigidDynamic) typeFlag() ActorTypeFlags { return ActorTypeRigidDynamic }

// CreateShape attaches a new box shape to the actor and returns it.
func (a *RigidDynamic) CreateShape(geom BoxGeometry, material *Material) *Shape {
	s := &Shape{Geometry: geom, Material: material}
	a.shapes = append(a.shapes, s)
	return s
}

// Mass returns the current mass.
func (a *RigidDynamic) Mass() float64 { return a.mass }

// SetMass overrides the mass without touching the inertia tensor.
func (a *RigidDynamic) SetMass(mass float64) {
	a.mass = mass
	if mass > 0 && !math.IsInf(mass, 1) {
		a.invMass = 1.0 / mass
	} else {
		a.invMass = 0
	}
}

// UpdateMassAndInertia recomputes mass and local inertia from the attached shapes'
// geometry and the given reference density. With no shapes attached it leaves the
// body massless, which the solver treats as immovable.
func (a *RigidDynamic) UpdateMassAndInertia(density float64) {
	var mass float64
	inertia := mgl64.Mat3{}
	for _, s := range a.shapes {
		m := density * s.Geometry.Volume()
		mass += m
		inertia = addMat3(inertia, s.Geometry.Inertia(m))
	}
	a.SetMass(mass)
	a.inertiaLocal = inertia
	if mass > 0 {
		a.invInertiaLocal = inertia.Inv()
	} else {
		a.invInertiaLocal = mgl64.Mat3{}
	}
}

// LinearVelocity returns the current linear velocity.
func (a *RigidDynamic) LinearVelocity() mgl64.Vec3 { return a.velocity }

// SetLinearVelocity sets the linear velocity.
func (a *RigidDynamic) SetLinearVelocity(v mgl64.Vec3) { a.velocity = v }

// AngularVelocity returns the current angular velocity.
func (a *RigidDynamic) AngularVelocity() mgl64.Vec3 { return a.angular }

// SetAngularVelocity sets the angular velocity.
func (a *RigidDynamic) SetAngularVelocity(v mgl64.Vec3) { a.angular = v }

func addMat3(a, b mgl64.Mat3) mgl64.Mat3 {
	var out mgl64.Mat3
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

// worldAABB returns the world-space bounds of an actor's box shapes at its pose,
// from the rotated corners of each box.
func worldAABB(a RigidActor) (mgl64.Vec3, mgl64.Vec3, bool) {
	pose := a.GlobalPose()
	first := true
	var lo, hi mgl64.Vec3
	for _, s := range a.Shapes() {
		h := s.Geometry.HalfExtents
		for i := 0; i < 8; i++ {
			corner := mgl64.Vec3{
				sign(i&1 == 0) * h.X(),
				sign(i&2 == 0) * h.Y(),
				sign(i&4 == 0) * h.Z(),
			}
			w := pose.TransformPoint(corner)
			if first {
				lo, hi = w, w
				first = false
				continue
			}
			for k := 0; k < 3; k++ {
				lo[k] = math.Min(lo[k], w[k])
				hi[k] = math.Max(hi[k], w[k])
			}
		}
	}
	return lo, hi, !first
}

func sign(positive bool) float64 {
	if positive {
		return 1
	}
	return -1
}
