package px

import "errors"

// TolerancesScale feeds engine-wide tolerances into scene and cooking creation.
type TolerancesScale struct {
	// Length is the typical object size, in simulation units.
	Length float64
	// Speed is the typical speed of moving objects.
	Speed float64
}

// DefaultTolerancesScale returns the tolerances the engine is tuned for.
func DefaultTolerancesScale() TolerancesScale {
	return TolerancesScale{Length: 1, Speed: 10}
}

// CookingParams configures a cooking stage.
type CookingParams struct {
	Scale TolerancesScale
}

// Cooking is the offline-preparation stage for mesh geometry. Box-only scenes never
// call into it, but sessions create and release it alongside the other handles.
type Cooking struct {
	params   CookingParams
	released bool
}

// CreateCooking returns a cooking stage for the foundation, or an error when the
// tolerances are unusable.
func CreateCooking(version uint32, foundation *Foundation, params CookingParams) (*Cooking, error) {
	if version>>24 != PhysicsVersion>>24 {
		return nil, errors.New("px: cooking version mismatch")
	}
	if foundation == nil || foundation.released {
		return nil, errors.New("px: cooking requires a live foundation")
	}
	if params.Scale.Length <= 0 || params.Scale.Speed <= 0 {
		return nil, errors.New("px: cooking tolerances must be positive")
	}
	return &Cooking{params: params}, nil
}

// Release invalidates the cooking stage.
func (c *Cooking) Release() {
	if c != nil {
		c.released = true
	}
}
