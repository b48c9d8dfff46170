package px

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Physics is the factory for materials, actors, and scenes.
type Physics struct {
	foundation *Foundation
	scale      TolerancesScale
	nextID     uint32
	released   bool
}

// CreatePhysics returns the physics factory for a foundation.
func CreatePhysics(version uint32, foundation *Foundation, scale TolerancesScale) (*Physics, error) {
	if version>>24 != PhysicsVersion>>24 {
		return nil, errors.New("px: physics version mismatch")
	}
	if foundation == nil || foundation.released {
		return nil, errors.New("px: physics requires a live foundation")
	}
	return &Physics{foundation: foundation, scale: scale}, nil
}

// TolerancesScale returns the scale the factory was created with.
func (p *Physics) TolerancesScale() TolerancesScale { return p.scale }

// CreateMaterial returns a new material with the given friction and restitution
// coefficients. Restitution outside [0,1] is clamped and reported through the
// foundation's error callback.
func (p *Physics) CreateMaterial(staticFriction, dynamicFriction, restitution float64) *Material {
	if restitution < 0 || restitution > 1 {
		p.foundation.reportError("px: material restitution clamped to [0,1]")
		restitution = math.Min(1, math.Max(0, restitution))
	}
	return &Material{
		StaticFriction:  staticFriction,
		DynamicFriction: dynamicFriction,
		Restitution:     restitution,
	}
}

// CreateRigidDynamic returns a movable rigid body at the given pose. It has no
// shapes and no mass until the caller attaches geometry and computes mass data.
func (p *Physics) CreateRigidDynamic(pose Transform) *RigidDynamic {
	p.nextID++
	return &RigidDynamic{rigidActor: rigidActor{id: p.nextID, pose: pose}}
}

// CreateRigidStatic returns an immovable rigid body at the given pose.
func (p *Physics) CreateRigidStatic(pose Transform) *RigidStatic {
	p.nextID++
	return &RigidStatic{rigidActor: rigidActor{id: p.nextID, pose: pose}}
}

// CreateScene returns a new scene configured by desc. A nil filter shader falls
// back to DefaultSimulationFilterShader, a nil dispatcher to a single worker.
func (p *Physics) CreateScene(desc SceneDesc) *Scene {
	if desc.FilterShader == nil {
		desc.FilterShader = DefaultSimulationFilterShader
	}
	if desc.CpuDispatcher == nil {
		desc.CpuDispatcher = DefaultCpuDispatcherCreate(1)
	}
	return &Scene{
		gravity:    desc.Gravity,
		dispatcher: desc.CpuDispatcher,
		filter:     desc.FilterShader,
		fetched:    closedChan(),
	}
}

// Release invalidates the factory.
func (p *Physics) Release() {
	p.released = true
}

func closedChan() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

// DefaultSimulationFilterShader suppresses a pair when either shape's Word0 category
// bits intersect the other's Word1 mask bits. All-zero filter words always collide.
func DefaultSimulationFilterShader(a, b FilterData) bool {
	if a.Word0&b.Word1 != 0 || b.Word0&a.Word1 != 0 {
		return false
	}
	return true
}

// SceneDesc configures scene creation.
type SceneDesc struct {
	Gravity       mgl64.Vec3
	CpuDispatcher *CpuDispatcher
	FilterShader  func(a, b FilterData) bool
}
