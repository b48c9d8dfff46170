package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Schebb/bug-mcjointcoll/internal/px"
)

func TestAddFixedJointAnchorsCoincide(t *testing.T) {
	tests := []struct {
		name             string
		posA, posB       mgl64.Vec3
		anchorA, anchorB mgl64.Vec3
	}{
		{
			name: "zero anchors",
			posA: mgl64.Vec3{0, 5, 0}, posB: mgl64.Vec3{0, 4, 0},
		},
		{
			name: "vertical anchors",
			posA: mgl64.Vec3{0, 2, 0}, posB: mgl64.Vec3{0, 4, 0},
			anchorA: mgl64.Vec3{0, 1, 0}, anchorB: mgl64.Vec3{0, -1, 0},
		},
		{
			name: "offset anchors",
			posA: mgl64.Vec3{3, 1, -2}, posB: mgl64.Vec3{-1, 6, 0},
			anchorA: mgl64.Vec3{0.5, 0, 0.5}, anchorB: mgl64.Vec3{-0.5, -0.25, 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			a := w.AddBox(50, mgl64.Vec3{0.5, 0.5, 0.5}, tt.posA)
			b := w.AddBox(1000, mgl64.Vec3{8, 0.25, 1.5}, tt.posB)

			w.AddFixedJoint(a, tt.anchorA, b, tt.anchorB, false)

			// Before any simulation step, the snap alone must have placed the two
			// world anchor points on top of each other.
			anchorWorldA := a.Dynamic.GlobalPose().TransformPoint(tt.anchorA)
			anchorWorldB := b.Dynamic.GlobalPose().TransformPoint(tt.anchorB)
			if !vec3Near(anchorWorldA, anchorWorldB, 1e-9) {
				t.Errorf("anchors apart after snap: a %v, b %v", anchorWorldA, anchorWorldB)
			}
		})
	}
}

func TestAddFixedJointRestingStack(t *testing.T) {
	w := newTestWorld(t)
	w.AddGround(mgl64.Vec3{90, 0.5, 90}, mgl64.Vec3{})
	a := w.AddBox(1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 2, 0})
	b := w.AddBox(1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 4, 0})

	// Anchors chosen so b ends up directly on top of a, touching faces.
	w.AddFixedJoint(b, mgl64.Vec3{0, -0.5, 0}, a, mgl64.Vec3{0, 0.5, 0}, false)

	// The snap leaves b's anchor at zero offset from a's anchor.
	offset := b.Dynamic.GlobalPose().TransformPoint(mgl64.Vec3{0, -0.5, 0}).
		Sub(a.Dynamic.GlobalPose().TransformPoint(mgl64.Vec3{0, 0.5, 0}))
	if !vec3Near(offset, mgl64.Vec3{}, 1e-9) {
		t.Fatalf("relative anchor offset after snap = %v, want zero", offset)
	}

	scene := w.session.Scene
	for i := 0; i < 300; i++ {
		scene.Simulate(1.0 / 60.0)
		scene.FetchResults(true)
	}
	w.SyncTransforms()

	// b rides exactly one box height above a for the whole fall and landing.
	gap := b.Position.Y() - a.Position.Y()
	if gap < 0.9 || gap > 1.1 {
		t.Errorf("stacked gap = %v, want about 1", gap)
	}
}

func TestWorkaroundPreservesFilterData(t *testing.T) {
	w := newTestWorld(t)
	a := w.AddBox(50, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 5, 0})
	b := w.AddBox(1000, mgl64.Vec3{8, 0.25, 1.5}, mgl64.Vec3{0, 4, 0})

	want := []px.FilterData{{Word0: 0xDEAD, Word1: 0xBEEF, Word2: 1, Word3: 2}}
	a.SetFilterData(want)

	before := a.FilterData()
	w.AddFixedJoint(a, mgl64.Vec3{}, b, mgl64.Vec3{}, true)
	after := a.FilterData()

	if len(before) != len(after) {
		t.Fatalf("shape count changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("shape %d filter data changed: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestNoWorkaroundCorruptsFilterData(t *testing.T) {
	w := newTestWorld(t)
	a := w.AddBox(50, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{0, 5, 0})
	b := w.AddBox(1000, mgl64.Vec3{8, 0.25, 1.5}, mgl64.Vec3{0, 4, 0})

	bBefore := b.FilterData()
	before := a.FilterData()
	w.AddFixedJoint(a, mgl64.Vec3{}, b, mgl64.Vec3{}, false)
	after := a.FilterData()

	changed := false
	for i := range before {
		if before[i] != after[i] {
			changed = true
		}
	}
	if !changed {
		t.Error("expected the joint's second body to lose its filter data")
	}

	// The first joint body is untouched.
	bAfter := b.FilterData()
	for i := range bBefore {
		if bBefore[i] != bAfter[i] {
			t.Errorf("first joint body shape %d changed: %+v -> %+v", i, bBefore[i], bAfter[i])
		}
	}
}

func TestFilterDataRoundTrip(t *testing.T) {
	w := newTestWorld(t)
	e := w.AddBox(1, mgl64.Vec3{0.5, 0.5, 0.5}, mgl64.Vec3{})

	want := []px.FilterData{{Word0: 1, Word1: 2, Word2: 3, Word3: 4}}
	e.SetFilterData(want)
	got := e.FilterData()
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestBinaryWord(t *testing.T) {
	tests := []struct {
		name string
		word uint32
		want string
	}{
		{"zero", 0, "00000000000000000000000000000000"},
		{"bit zero first", 1, "10000000000000000000000000000000"},
		{"high bit last", 0x80000000, "00000000000000000000000000000001"},
		{"mixed", 0b1010, "01010000000000000000000000000000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := binaryWord(tt.word); got != tt.want {
				t.Errorf("binaryWord(%#x) = %s, want %s", tt.word, got, tt.want)
			}
		})
	}
}
