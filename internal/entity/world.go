package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Schebb/bug-mcjointcoll/internal/px"
	"github.com/Schebb/bug-mcjointcoll/internal/session"
)

// referenceDensity feeds UpdateMassAndInertia before the requested mass overrides
// the computed one; the inertia tensor keeps the reference-density proportions.
const referenceDensity = 10.0

// World creates entities, registers their bodies with the physics scene, and maps
// body identifiers back to entities for state sync. The map replaces the untyped
// per-actor user-data pointer the engine API would otherwise be handed.
type World struct {
	session  *session.Session
	entities []*Entity
	byBody   map[uint32]*Entity
}

// NewWorld returns an empty world building into the given session's scene.
func NewWorld(s *session.Session) *World {
	return &World{
		session: s,
		byBody:  make(map[uint32]*Entity),
	}
}

// Entities returns all entities in creation order.
func (w *World) Entities() []*Entity {
	return w.entities
}

// AddBox creates a movable box entity at position with identity orientation. The
// body's mass data is computed from the reference density, then the mass is
// overridden with the requested value. Inputs are passed to the engine
// uninspected.
func (w *World) AddBox(mass float64, halfExtents, position mgl64.Vec3) *Entity {
	e := &Entity{
		Position: position,
		Rotation: mgl64.QuatIdent(),
		Scale:    halfExtents.Mul(2),
		Kind:     KindDynamic,
	}

	body := w.session.Physics.CreateRigidDynamic(px.NewTransform(position, mgl64.QuatIdent()))
	body.CreateShape(px.BoxGeometry{HalfExtents: halfExtents}, w.session.Material)
	body.UpdateMassAndInertia(referenceDensity)
	body.SetMass(mass)
	e.Dynamic = body

	w.byBody[body.ID()] = e
	w.session.Scene.AddActor(body)
	w.entities = append(w.entities, e)
	return e
}

// AddGround creates an immovable box entity, same shape setup as AddBox but with
// no mass data.
func (w *World) AddGround(halfExtents, position mgl64.Vec3) *Entity {
	e := &Entity{
		Position: position,
		Rotation: mgl64.QuatIdent(),
		Scale:    halfExtents.Mul(2),
		Kind:     KindStatic,
	}

	body := w.session.Physics.CreateRigidStatic(px.NewTransform(position, mgl64.QuatIdent()))
	body.CreateShape(px.BoxGeometry{HalfExtents: halfExtents}, w.session.Material)
	e.Static = body

	w.byBody[body.ID()] = e
	w.session.Scene.AddActor(body)
	w.entities = append(w.entities, e)
	return e
}

// SyncTransforms copies each movable body's world pose back into its entity. Run
// once per step, after FetchResults and before drawing.
func (w *World) SyncTransforms() {
	for _, a := range w.session.Scene.GetActors(px.ActorTypeRigidDynamic) {
		e, ok := w.byBody[a.ID()]
		if !ok {
			continue
		}
		pose := a.GlobalPose()
		e.Position = pose.P
		e.Rotation = pose.Q
	}
}
