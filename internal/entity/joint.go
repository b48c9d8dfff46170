package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Schebb/bug-mcjointcoll/internal/px"
)

// AddFixedJoint teleports entity a so that anchor point anchorA on a coincides
// with anchor point anchorB on b, then locks the two bodies together with a fixed
// joint and disables collision between them.
//
// Disabling intra-joint collision resets a's per-shape filter data (the engine
// defect this harness demonstrates; a is passed as the joint's second body, the
// argument position the defect hits). With useWorkaround the filter data is
// snapshotted before the disable call and restored after it, so the disable is
// still in effect but the words survive. Without it the corruption is left in
// place on purpose.
func (w *World) AddFixedJoint(a *Entity, anchorA mgl64.Vec3, b *Entity, anchorB mgl64.Vec3, useWorkaround bool) *px.FixedJoint {
	meAnchor := px.NewTransform(anchorA, mgl64.QuatIdent())
	otherAnchor := px.NewTransform(anchorB, mgl64.QuatIdent())

	otherPose := b.Dynamic.GlobalPose()
	newPose := meAnchor.Inverse().Mul(otherPose).Mul(otherAnchor)
	a.Dynamic.SetGlobalPose(newPose)

	joint := px.FixedJointCreate(w.session.Physics, b.Dynamic, otherAnchor, a.Dynamic, meAnchor)

	if useWorkaround {
		fd := a.FilterData()
		joint.SetConstraintFlag(px.ConstraintFlagCollisionEnabled, false)
		a.SetFilterData(fd)
	} else {
		joint.SetConstraintFlag(px.ConstraintFlagCollisionEnabled, false)
	}

	return joint
}
