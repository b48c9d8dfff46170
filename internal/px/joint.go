package px

import "github.com/go-gl/mathgl/mgl64"

// ConstraintFlag is a per-joint behavior toggle.
type ConstraintFlag uint32

const (
	// ConstraintFlagCollisionEnabled controls whether the two jointed bodies still
	// generate contacts against each other. Enabled on creation.
	ConstraintFlagCollisionEnabled ConstraintFlag = 1 << 0
)

// jointFilterMarker is the high bit the internal pair filter plants in Word3 when
// it rewrites a shape's filter words (see SetConstraintFlag).
const jointFilterMarker uint32 = 0x80000000

// FixedJoint locks the relative pose between two bodies' anchor frames.
type FixedJoint struct {
	id             uint32
	actor0, actor1 *RigidDynamic
	frame0, frame1 Transform
	flags          ConstraintFlag
	scene          *Scene
	released       bool
}

// FixedJointCreate creates a fixed joint anchored at localFrame0 on actor0 and
// localFrame1 on actor1, and registers it with the scene actor0 belongs to.
func FixedJointCreate(p *Physics, actor0 *RigidDynamic, localFrame0 Transform, actor1 *RigidDynamic, localFrame1 Transform) *FixedJoint {
	p.nextID++
	j := &FixedJoint{
		id:     p.nextID,
		actor0: actor0,
		actor1: actor1,
		frame0: localFrame0,
		frame1: localFrame1,
		flags:  ConstraintFlagCollisionEnabled,
	}
	if actor0 != nil {
		j.scene = actor0.scene
	}
	if j.scene == nil && actor1 != nil {
		j.scene = actor1.scene
	}
	if j.scene != nil {
		j.scene.joints = append(j.scene.joints, j)
	}
	return j
}

// Actors returns the two jointed bodies in creation-argument order.
func (j *FixedJoint) Actors() (*RigidDynamic, *RigidDynamic) {
	return j.actor0, j.actor1
}

// ConstraintFlags returns the current flag set.
func (j *FixedJoint) ConstraintFlags() ConstraintFlag { return j.flags }

// SetConstraintFlag sets or clears one flag.
//
// Clearing ConstraintFlagCollisionEnabled carries the engine defect this harness
// exists to demonstrate: refreshing the internal pair filter rewrites the
// simulation filter data of every shape on the joint's second actor, replacing
// whatever words the caller had stored with an internal marker. Re-enabling the
// flag restores nothing.
func (j *FixedJoint) SetConstraintFlag(flag ConstraintFlag, value bool) {
	if value {
		j.flags |= flag
	} else {
		j.flags &^= flag
	}

	if flag&ConstraintFlagCollisionEnabled != 0 && !value && j.actor1 != nil {
		for _, s := range j.actor1.Shapes() {
			s.SetSimulationFilterData(FilterData{Word3: jointFilterMarker | j.id})
		}
	}
}

// connects reports whether the joint links the two given actors.
func (j *FixedJoint) connects(a, b RigidActor) bool {
	if j.actor0 == nil || j.actor1 == nil {
		return false
	}
	return (j.actor0.ID() == a.ID() && j.actor1.ID() == b.ID()) ||
		(j.actor0.ID() == b.ID() && j.actor1.ID() == a.ID())
}

// Release detaches the joint from its scene.
func (j *FixedJoint) Release() {
	j.released = true
	if j.scene == nil {
		return
	}
	for i, sj := range j.scene.joints {
		if sj == j {
			j.scene.joints = append(j.scene.joints[:i], j.scene.joints[i+1:]...)
			break
		}
	}
	j.scene = nil
}

// project pulls both bodies toward coincident joint frames, splitting the
// correction by inverse mass, then aligns their velocities so the solved pose
// does not drift apart on the next integration.
func (j *FixedJoint) project() {
	a0, a1 := j.actor0, j.actor1
	if a0 == nil || a1 == nil {
		return
	}
	total := a0.invMass + a1.invMass
	if total == 0 {
		return
	}
	k0 := a0.invMass / total
	k1 := a1.invMass / total

	target0 := a1.pose.Mul(j.frame1).Mul(j.frame0.Inverse())
	target1 := a0.pose.Mul(j.frame0).Mul(j.frame1.Inverse())
	a0.pose = blendTransform(a0.pose, target0, k0)
	a1.pose = blendTransform(a1.pose, target1, k1)

	m0 := massOrZero(a0)
	m1 := massOrZero(a1)
	if m0+m1 > 0 {
		v := a0.velocity.Mul(m0 / (m0 + m1)).Add(a1.velocity.Mul(m1 / (m0 + m1)))
		w := a0.angular.Mul(m0 / (m0 + m1)).Add(a1.angular.Mul(m1 / (m0 + m1)))
		a0.velocity, a1.velocity = v, v
		a0.angular, a1.angular = w, w
	}
}

func massOrZero(a *RigidDynamic) float64 {
	if a.invMass == 0 {
		return 0
	}
	return a.mass
}

func blendTransform(from, to Transform, k float64) Transform {
	if k <= 0 {
		return from
	}
	if k >= 1 {
		return to
	}
	return Transform{
		P: from.P.Add(to.P.Sub(from.P).Mul(k)),
		Q: mgl64.QuatNlerp(from.Q, to.Q, k),
	}
}
