package px

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestPhysics(t *testing.T) *Physics {
	t.Helper()
	foundation, err := CreateFoundation(PhysicsVersion, nil)
	if err != nil {
		t.Fatalf("CreateFoundation: %v", err)
	}
	physics, err := CreatePhysics(PhysicsVersion, foundation, DefaultTolerancesScale())
	if err != nil {
		t.Fatalf("CreatePhysics: %v", err)
	}
	return physics
}

func newTestScene(t *testing.T, p *Physics, gravity mgl64.Vec3) *Scene {
	t.Helper()
	dispatcher := DefaultCpuDispatcherCreate(2)
	t.Cleanup(dispatcher.Release)
	return p.CreateScene(SceneDesc{Gravity: gravity, CpuDispatcher: dispatcher})
}

func stepScene(s *Scene, dt float64, steps int) {
	for i := 0; i < steps; i++ {
		s.Simulate(dt)
		s.FetchResults(true)
	}
}

func addBox(p *Physics, s *Scene, m *Material, mass float64, half, pos mgl64.Vec3) *RigidDynamic {
	body := p.CreateRigidDynamic(NewTransform(pos, mgl64.QuatIdent()))
	body.CreateShape(BoxGeometry{HalfExtents: half}, m)
	body.UpdateMassAndInertia(10)
	body.SetMass(mass)
	s.AddActor(body)
	return body
}

func TestCreateFoundationVersionMismatch(t *testing.T) {
	if _, err := CreateFoundation(999<<24&0xFFFFFFFF, nil); err == nil {
		t.Fatal("expected version mismatch error")
	}
}

func TestGetActorsTypeFilter(t *testing.T) {
	p := newTestPhysics(t)
	s := newTestScene(t, p, mgl64.Vec3{})
	m := p.CreateMaterial(0.5, 0.5, 0)

	addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 5, 0})
	addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{5, 5, 0})
	ground := p.CreateRigidStatic(TransformIdent())
	ground.CreateShape(BoxGeometry{HalfExtents: mgl64.Vec3{10, 0.5, 10}}, m)
	s.AddActor(ground)

	tests := []struct {
		name  string
		flags ActorTypeFlags
		want  int
	}{
		{"dynamics only", ActorTypeRigidDynamic, 2},
		{"statics only", ActorTypeRigidStatic, 1},
		{"both", ActorTypeRigidDynamic | ActorTypeRigidStatic, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.GetNbActors(tt.flags); got != tt.want {
				t.Errorf("GetNbActors = %d, want %d", got, tt.want)
			}
			if got := len(s.GetActors(tt.flags)); got != tt.want {
				t.Errorf("len(GetActors) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRemoveActor(t *testing.T) {
	p := newTestPhysics(t)
	s := newTestScene(t, p, mgl64.Vec3{})
	m := p.CreateMaterial(0.5, 0.5, 0)

	body := addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{})
	s.RemoveActor(body)
	if got := s.GetNbActors(ActorTypeRigidDynamic); got != 0 {
		t.Errorf("GetNbActors after remove = %d, want 0", got)
	}
}

func TestGravityFall(t *testing.T) {
	p := newTestPhysics(t)
	s := newTestScene(t, p, mgl64.Vec3{0, -9.81, 0})
	m := p.CreateMaterial(0.5, 0.5, 0)

	body := addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 10, 0})
	stepScene(s, 1.0/60.0, 60)

	pose := body.GlobalPose()
	if pose.P.Y() >= 10 {
		t.Errorf("body did not fall: y = %v", pose.P.Y())
	}
	if body.LinearVelocity().Y() >= 0 {
		t.Errorf("velocity not downward: %v", body.LinearVelocity())
	}
	// After one second of free fall, y ≈ 10 - g/2.
	want := 10.0 - 9.81/2.0
	if math.Abs(pose.P.Y()-want) > 0.2 {
		t.Errorf("free-fall y = %v, want about %v", pose.P.Y(), want)
	}
}

func TestRestOnStaticGround(t *testing.T) {
	p := newTestPhysics(t)
	s := newTestScene(t, p, mgl64.Vec3{0, -9.81, 0})
	m := p.CreateMaterial(0.5, 0.5, 0)

	ground := p.CreateRigidStatic(TransformIdent())
	ground.CreateShape(BoxGeometry{HalfExtents: mgl64.Vec3{10, 0.5, 10}}, m)
	s.AddActor(ground)

	body := addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 3, 0})
	stepScene(s, 1.0/60.0, 600)

	// Box bottom resting on ground top: center at 0.5 + 0.5 = 1.
	y := body.GlobalPose().P.Y()
	if math.Abs(y-1.0) > 0.05 {
		t.Errorf("resting y = %v, want about 1", y)
	}
}

func TestFilterShaderSuppression(t *testing.T) {
	p := newTestPhysics(t)
	s := newTestScene(t, p, mgl64.Vec3{})
	m := p.CreateMaterial(0.5, 0.5, 0)

	a := addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{})
	b := addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0.25, 0, 0})

	// Category bit of a matches mask bit of b: pair suppressed.
	a.Shapes()[0].SetSimulationFilterData(FilterData{Word0: 1})
	b.Shapes()[0].SetSimulationFilterData(FilterData{Word1: 1})

	stepScene(s, 1.0/60.0, 10)

	if got := a.GlobalPose().P; !vecNear(got, mgl64.Vec3{}, epsilon) {
		t.Errorf("suppressed pair still pushed a to %v", got)
	}
	if got := b.GlobalPose().P; !vecNear(got, mgl64.Vec3{0.25, 0, 0}, epsilon) {
		t.Errorf("suppressed pair still pushed b to %v", got)
	}
}

func TestOverlapResolvedWhenNotFiltered(t *testing.T) {
	p := newTestPhysics(t)
	s := newTestScene(t, p, mgl64.Vec3{})
	m := p.CreateMaterial(0.5, 0.5, 0)

	a := addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{})
	b := addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0.25, 0, 0})

	stepScene(s, 1.0/60.0, 10)

	gap := b.GlobalPose().P.X() - a.GlobalPose().P.X()
	if gap < 1.0-1e-6 {
		t.Errorf("overlap not resolved: center distance %v, want >= 1", gap)
	}
}

func TestDefaultSimulationFilterShader(t *testing.T) {
	tests := []struct {
		name string
		a, b FilterData
		want bool
	}{
		{"all zero collides", FilterData{}, FilterData{}, true},
		{"category vs mask kills", FilterData{Word0: 0b0010}, FilterData{Word1: 0b0010}, false},
		{"mask vs category kills symmetric", FilterData{Word1: 0b1000}, FilterData{Word0: 0b1000}, false},
		{"disjoint bits collide", FilterData{Word0: 1}, FilterData{Word1: 2}, true},
		{"word2 and word3 ignored", FilterData{Word2: 7, Word3: 0xffffffff}, FilterData{Word2: 7, Word3: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DefaultSimulationFilterShader(tt.a, tt.b); got != tt.want {
				t.Errorf("DefaultSimulationFilterShader = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchResultsBeforeSimulate(t *testing.T) {
	p := newTestPhysics(t)
	s := newTestScene(t, p, mgl64.Vec3{})
	if !s.FetchResults(false) {
		t.Error("FetchResults before any Simulate should report available")
	}
}

func TestSimulateThenBlockingFetch(t *testing.T) {
	p := newTestPhysics(t)
	s := newTestScene(t, p, mgl64.Vec3{0, -9.81, 0})
	m := p.CreateMaterial(0.5, 0.5, 0)
	body := addBox(p, s, m, 1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 10, 0})

	s.Simulate(1.0 / 60.0)
	if !s.FetchResults(true) {
		t.Fatal("blocking FetchResults returned false")
	}
	if body.GlobalPose().P.Y() >= 10 {
		t.Error("step results not visible after FetchResults")
	}
}

func TestUpdateMassAndInertia(t *testing.T) {
	p := newTestPhysics(t)
	m := p.CreateMaterial(0.5, 0.5, 0)

	body := p.CreateRigidDynamic(TransformIdent())
	body.CreateShape(BoxGeometry{HalfExtents: mgl64.Vec3{0.5, 0.5, 0.5}}, m)
	body.UpdateMassAndInertia(10)

	if got := body.Mass(); math.Abs(got-10.0) > epsilon {
		t.Errorf("mass from density = %v, want 10", got)
	}
	body.SetMass(50)
	if got := body.Mass(); got != 50 {
		t.Errorf("mass after override = %v, want 50", got)
	}
}

func TestMaterialRestitutionClamped(t *testing.T) {
	p := newTestPhysics(t)
	m := p.CreateMaterial(0.5, 0.5, 1.7)
	if m.Restitution != 1 {
		t.Errorf("restitution = %v, want clamped to 1", m.Restitution)
	}
}
