package game

import (
	"iter"
	"slices"

	"github.com/plus3/gearjump/ecs"
	"github.com/plus3/gearjump/kinematics"
)

// GearHit is a gear returned by a registry query.
type GearHit struct {
	Id        ecs.EntityId
	Candidate kinematics.Candidate
	Distance  float64
}

// GearRegistry is the set of active gears, in registration order.
type GearRegistry struct {
	components *Components
	order      []ecs.EntityId
}

// NewGearRegistry creates an empty registry reading gear state from components.
func NewGearRegistry(components *Components) *GearRegistry {
	return &GearRegistry{components: components}
}

// Register adds a gear. The entity must carry Transform, Spin and BoundingBox.
// Registering the same gear twice is a no-op.
func (r *GearRegistry) Register(id ecs.EntityId) {
	if slices.Contains(r.order, id) {
		return
	}
	r.order = append(r.order, id)
}

// Unregister removes a gear. Returns false if it was not registered.
func (r *GearRegistry) Unregister(id ecs.EntityId) bool {
	i := slices.Index(r.order, id)
	if i < 0 {
		return false
	}
	r.order = slices.Delete(r.order, i, i+1)
	return true
}

// Len returns the number of registered gears.
func (r *GearRegistry) Len() int {
	return len(r.order)
}

// All yields registered gears that still have their components, in registration order.
func (r *GearRegistry) All() iter.Seq2[ecs.EntityId, kinematics.Candidate] {
	return func(yield func(ecs.EntityId, kinematics.Candidate) bool) {
		for _, id := range r.order {
			candidate, ok := r.candidate(id)
			if !ok {
				continue
			}
			if !yield(id, candidate) {
				return
			}
		}
	}
}

// QueryContaining finds the gear whose bounding box contains point, skipping
// any gear positioned at anchor. When several boxes overlap at point the gear
// with the nearest centre wins, and equal distances go to the earliest
// registered gear.
func (r *GearRegistry) QueryContaining(point, anchor kinematics.Vec2) (GearHit, bool) {
	var best GearHit
	found := false

	for id, candidate := range r.All() {
		if candidate.Position == anchor || !candidate.Bounds.Contains(point) {
			continue
		}
		distance := candidate.Position.Distance(point)
		if !found || distance < best.Distance {
			best = GearHit{Id: id, Candidate: candidate, Distance: distance}
			found = true
		}
	}

	return best, found
}

func (r *GearRegistry) candidate(id ecs.EntityId) (kinematics.Candidate, bool) {
	transform := r.components.Transforms.Get(id)
	spin := r.components.Spins.Get(id)
	bounds := r.components.Bounds.Get(id)
	if transform == nil || spin == nil || bounds == nil {
		return kinematics.Candidate{}, false
	}
	return kinematics.Candidate{
		Position: transform.Position.XY(),
		Spin:     *spin,
		Bounds:   bounds.Rect,
	}, true
}
