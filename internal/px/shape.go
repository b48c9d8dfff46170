package px

import "github.com/go-gl/mathgl/mgl64"

// FilterData is the four-word bit pattern the broad-phase filter shader reads for
// each shape. The words are opaque to the engine core; only the filter shader and
// the internal joint pair-filter interpret them.
type FilterData struct {
	Word0, Word1, Word2, Word3 uint32
}

// BoxGeometry describes a box collision shape by its half-extents.
type BoxGeometry struct {
	HalfExtents mgl64.Vec3
}

// Volume returns the full box volume (8 * hx * hy * hz).
func (g BoxGeometry) Volume() float64 {
	return 8.0 * g.HalfExtents.X() * g.HalfExtents.Y() * g.HalfExtents.Z()
}

// Inertia returns the local inertia tensor of a solid box of the given mass.
func (g BoxGeometry) Inertia(mass float64) mgl64.Mat3 {
	x := g.HalfExtents.X() * 2
	y := g.HalfExtents.Y() * 2
	z := g.HalfExtents.Z() * 2

	factor := mass / 12.0
	return mgl64.Mat3{
		factor * (y*y + z*z), 0, 0,
		0, factor * (x*x + z*z), 0,
		0, 0, factor * (x*x + y*y),
	}
}

// Material holds surface response coefficients shared by any number of shapes.
type Material struct {
	StaticFriction  float64
	DynamicFriction float64
	Restitution     float64

	released bool
}

// Release marks the material as released. Shapes still referencing it keep their
// pointer; using them afterwards is a caller error, unchecked.
func (m *Material) Release() {
	m.released = true
}

// Shape is a collision geometry attached to one rigid actor.
type Shape struct {
	Geometry BoxGeometry
	Material *Material

	simulationFilterData FilterData
}

// SimulationFilterData returns the shape's current filter words.
func (s *Shape) SimulationFilterData() FilterData {
	return s.simulationFilterData
}

// SetSimulationFilterData overwrites the shape's filter words.
func (s *Shape) SetSimulationFilterData(fd FilterData) {
	s.simulationFilterData = fd
}
