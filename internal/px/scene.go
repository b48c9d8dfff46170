package px

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// jointIterations is how many projection passes the solver runs per step. A few
// passes are enough for the short chains this engine targets.
const jointIterations = 4

// Scene owns a set of rigid actors and joints and advances them in fixed steps.
//
// All scene mutation happens from the caller's thread; during a Simulate /
// FetchResults window the engine's worker pool owns the data instead, so callers
// must not touch the scene until FetchResults returns (no internal locking).
type Scene struct {
	gravity    mgl64.Vec3
	dispatcher *CpuDispatcher
	filter     func(a, b FilterData) bool

	statics  []*RigidStatic
	dynamics []*RigidDynamic
	joints   []*FixedJoint

	fetched  chan struct{}
	released bool
}

// Gravity returns the scene's gravity vector.
func (s *Scene) Gravity() mgl64.Vec3 { return s.gravity }

// AddActor registers an actor with the scene.
func (s *Scene) AddActor(a RigidActor) {
	switch actor := a.(type) {
	case *RigidDynamic:
		actor.scene = s
		s.dynamics = append(s.dynamics, actor)
	case *RigidStatic:
		actor.scene = s
		s.statics = append(s.statics, actor)
	}
}

// RemoveActor unregisters an actor. Joints referencing it are left in place;
// releasing them is the caller's job.
func (s *Scene) RemoveActor(a RigidActor) {
	switch actor := a.(type) {
	case *RigidDynamic:
		for i, d := range s.dynamics {
			if d == actor {
				s.dynamics = append(s.dynamics[:i], s.dynamics[i+1:]...)
				break
			}
		}
		actor.scene = nil
	case *RigidStatic:
		for i, st := range s.statics {
			if st == actor {
				s.statics = append(s.statics[:i], s.statics[i+1:]...)
				break
			}
		}
		actor.scene = nil
	}
}

// GetNbActors returns how many actors match the type selection flags.
func (s *Scene) GetNbActors(flags ActorTypeFlags) int {
	n := 0
	if flags&ActorTypeRigidDynamic != 0 {
		n += len(s.dynamics)
	}
	if flags&ActorTypeRigidStatic != 0 {
		n += len(s.statics)
	}
	return n
}

// GetActors returns the actors matching the type selection flags, dynamics first,
// each group in insertion order.
func (s *Scene) GetActors(flags ActorTypeFlags) []RigidActor {
	out := make([]RigidActor, 0, s.GetNbActors(flags))
	if flags&ActorTypeRigidDynamic != 0 {
		for _, d := range s.dynamics {
			out = append(out, d)
		}
	}
	if flags&ActorTypeRigidStatic != 0 {
		for _, st := range s.statics {
			out = append(out, st)
		}
	}
	return out
}

// Simulate starts advancing the scene by dt on the engine's workers and returns
// immediately. Results become visible after FetchResults. Starting a new step
// before fetching the previous one is a caller error, unchecked.
func (s *Scene) Simulate(dt float64) {
	done := make(chan struct{})
	s.fetched = done
	go func() {
		s.step(dt)
		close(done)
	}()
}

// FetchResults waits for the in-flight step when block is true, and reports
// whether results are available.
func (s *Scene) FetchResults(block bool) bool {
	if block {
		<-s.fetched
		return true
	}
	select {
	case <-s.fetched:
		return true
	default:
		return false
	}
}

// Release drops all actors and joints. The dispatcher is owned by the caller and
// stays running.
func (s *Scene) Release() {
	for _, d := range s.dynamics {
		d.scene = nil
	}
	for _, st := range s.statics {
		st.scene = nil
	}
	s.dynamics, s.statics, s.joints = nil, nil, nil
	s.released = true
}

func (s *Scene) step(dt float64) {
	s.integrate(dt)
	for i := 0; i < jointIterations; i++ {
		for _, j := range s.joints {
			if !j.released {
				j.project()
			}
		}
	}
	s.solveContacts()
}

// integrate advances every dynamic body, fanned out across the dispatcher pool.
func (s *Scene) integrate(dt float64) {
	s.dispatcher.parallelFor(len(s.dynamics), func(i int) {
		s.dynamics[i].integrate(dt, s.gravity)
	})
}

func (a *RigidDynamic) integrate(dt float64, gravity mgl64.Vec3) {
	if a.invMass == 0 {
		return
	}
	a.velocity = a.velocity.Add(gravity.Mul(dt))
	a.pose.P = a.pose.P.Add(a.velocity.Mul(dt))

	omega := mgl64.Quat{W: 0, V: a.angular}
	qdot := omega.Mul(a.pose.Q).Scale(0.5)
	a.pose.Q = a.pose.Q.Add(qdot.Scale(dt)).Normalize()
}

// solveContacts resolves overlapping actor pairs along the axis of minimum
// penetration, pushing them apart weighted by inverse mass.
func (s *Scene) solveContacts() {
	actors := s.GetActors(ActorTypeRigidDynamic | ActorTypeRigidStatic)

	boxes := make([]aabbBounds, len(actors))
	for i, a := range actors {
		boxes[i].lo, boxes[i].hi, boxes[i].ok = worldAABB(a)
	}

	for i := 0; i < len(actors); i++ {
		ai := actors[i]
		if !boxes[i].ok {
			continue
		}
		for k := i + 1; k < len(actors); k++ {
			ak := actors[k]
			if !boxes[k].ok {
				continue
			}
			wi, wk := invMassOf(ai), invMassOf(ak)
			if wi == 0 && wk == 0 {
				continue
			}
			if !s.pairEnabled(ai, ak) {
				continue
			}
			depth, axis := penetrationAxis(boxes[i], boxes[k])
			if axis < 0 {
				continue
			}
			// Push k away from i along the axis on which their centers differ.
			dir := 1.0
			if ak.GlobalPose().P[axis] < ai.GlobalPose().P[axis] {
				dir = -1.0
			}
			total := wi + wk
			moveI := -dir * depth * (wi / total)
			moveK := dir * depth * (wk / total)
			rest := pairRestitution(ai, ak)

			applyPush(ai, axis, moveI, rest)
			applyPush(ak, axis, moveK, rest)
			boxes[i].lo, boxes[i].hi, boxes[i].ok = worldAABB(ai)
			boxes[k].lo, boxes[k].hi, boxes[k].ok = worldAABB(ak)
		}
	}
}

// pairEnabled applies the two suppression layers in order: joints whose collision
// flag is cleared, then the scene filter shader over the shapes' filter words.
func (s *Scene) pairEnabled(a, b RigidActor) bool {
	for _, j := range s.joints {
		if !j.released && j.flags&ConstraintFlagCollisionEnabled == 0 && j.connects(a, b) {
			return false
		}
	}
	for _, sa := range a.Shapes() {
		for _, sb := range b.Shapes() {
			if !s.filter(sa.SimulationFilterData(), sb.SimulationFilterData()) {
				return false
			}
		}
	}
	return true
}

type aabbBounds struct {
	lo, hi mgl64.Vec3
	ok     bool
}

// penetrationAxis returns the overlap depth and axis index (0=X, 1=Y, 2=Z) of the
// smallest overlap, or (0, -1) when the bounds are separated.
func penetrationAxis(a, b aabbBounds) (float64, int) {
	depth := math.MaxFloat64
	axis := -1
	for i := 0; i < 3; i++ {
		overlap := math.Min(a.hi[i], b.hi[i]) - math.Max(a.lo[i], b.lo[i])
		if overlap <= 0 {
			return 0, -1
		}
		if overlap < depth {
			depth = overlap
			axis = i
		}
	}
	return depth, axis
}

func applyPush(a RigidActor, axis int, move, restitution float64) {
	d, ok := a.(*RigidDynamic)
	if !ok || d.invMass == 0 || move == 0 {
		return
	}
	pose := d.pose
	pose.P[axis] += move
	d.pose = pose
	d.velocity[axis] *= -restitution
}

func invMassOf(a RigidActor) float64 {
	if d, ok := a.(*RigidDynamic); ok {
		return d.invMass
	}
	return 0
}

// pairRestitution averages the restitution of the first material on each side,
// matching how the repro scenes share one default material.
func pairRestitution(a, b RigidActor) float64 {
	var ra, rb float64
	if sa := a.Shapes(); len(sa) > 0 && sa[0].Material != nil {
		ra = sa[0].Material.Restitution
	}
	if sb := b.Shapes(); len(sb) > 0 && sb[0].Material != nil {
		rb = sb[0].Material.Restitution
	}
	return (ra + rb) / 2.0
}
