// Package session owns the physics engine handles for one process: foundation,
// dispatcher, cooking stage, physics factory, default material, and scene. They
// are created together and released together, in reverse dependency order.
package session

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Schebb/bug-mcjointcoll/internal/logger"
	"github.com/Schebb/bug-mcjointcoll/internal/px"
)

// dispatcherWorkers sizes the engine's CPU worker pool.
const dispatcherWorkers = 2

// Session holds every engine handle. Zero value is uninitialized; Init builds all
// handles, Deinit clears them. Both are safe to call in any order any number of
// times.
type Session struct {
	Foundation *px.Foundation
	Dispatcher *px.CpuDispatcher
	Cooking    *px.Cooking
	Physics    *px.Physics
	Material   *px.Material
	Scene      *px.Scene

	log *logger.Logger
}

// New returns an uninitialized session logging through log.
func New(log *logger.Logger) *Session {
	return &Session{log: log}
}

// logCallback routes engine diagnostics into the session's logger.
type logCallback struct {
	log *logger.Logger
}

func (c logCallback) ReportError(msg string) {
	if c.log != nil {
		c.log.Log(msg)
	}
}

// Initialized reports whether the session currently holds live handles.
func (s *Session) Initialized() bool {
	return s.Foundation != nil
}

// Init constructs foundation, physics, dispatcher, cooking stage, default
// material, and scene. It returns an error if the session is already
// initialized. A cooking-stage failure is logged and tolerated: the handle stays
// nil and everything else proceeds.
func (s *Session) Init() error {
	if s.Initialized() {
		return errors.New("session: physics already initialized")
	}

	foundation, err := px.CreateFoundation(px.PhysicsVersion, logCallback{log: s.log})
	if err != nil {
		return err
	}
	s.Foundation = foundation

	scale := px.DefaultTolerancesScale()
	s.Physics, err = px.CreatePhysics(px.PhysicsVersion, s.Foundation, scale)
	if err != nil {
		s.Foundation.Release()
		s.Foundation = nil
		return err
	}

	s.Dispatcher = px.DefaultCpuDispatcherCreate(dispatcherWorkers)

	s.Cooking, err = px.CreateCooking(px.PhysicsVersion, s.Foundation, px.CookingParams{Scale: scale})
	if err != nil && s.log != nil {
		s.log.Log("session: cooking stage creation failed: " + err.Error())
	}

	// static friction, dynamic friction, restitution
	s.Material = s.Physics.CreateMaterial(0.5, 0.5, 0.6)

	s.Scene = s.Physics.CreateScene(px.SceneDesc{
		Gravity:       mgl64.Vec3{0, -9.81, 0},
		CpuDispatcher: s.Dispatcher,
		FilterShader:  px.DefaultSimulationFilterShader,
	})

	return nil
}

// Deinit releases scene, dispatcher, physics, cooking stage, and foundation, in
// that order, and clears every handle. No-op when the session is not initialized.
func (s *Session) Deinit() {
	if !s.Initialized() {
		return
	}

	s.Scene.Release()
	s.Dispatcher.Release()
	s.Physics.Release()
	s.Cooking.Release()
	s.Foundation.Release()

	s.Scene = nil
	s.Material = nil
	s.Dispatcher = nil
	s.Physics = nil
	s.Cooking = nil
	s.Foundation = nil
}
