package systems

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/troop-sim/troop/config"
)

// ResourceKind distinguishes the food types in the field.
type ResourceKind uint8

const (
	ResourcePlant ResourceKind = iota
	ResourceMeat
)

// String returns the display name of the kind.
func (k ResourceKind) String() string {
	if k == ResourcePlant {
		return "plant"
	}
	return "meat"
}

// ParseResourceKind resolves a diet/config name to a resource kind.
func ParseResourceKind(name string) (ResourceKind, error) {
	switch name {
	case "plant":
		return ResourcePlant, nil
	case "meat":
		return ResourceMeat, nil
	}
	return 0, fmt.Errorf("unknown resource kind %q", name)
}

// Resource is one food item. Amount is the nutrition value transferred on
// consumption.
type Resource struct {
	ID     uint32
	Kind   ResourceKind
	X, Y   float64
	Amount float64

	consumed bool
}

// Obstacle is an axis-aligned blocked region.
type Obstacle struct {
	X, Y, W, H float64
}

// CenterX returns the obstacle's horizontal center.
func (o Obstacle) CenterX() float64 { return o.X + o.W/2 }

// CenterY returns the obstacle's vertical center.
func (o Obstacle) CenterY() float64 { return o.Y + o.H/2 }

// Contains reports whether the point lies inside the obstacle.
func (o Obstacle) Contains(x, y float64) bool {
	return x >= o.X && x < o.X+o.W && y >= o.Y && y < o.Y+o.H
}

// Environment owns the bounded field: dynamic food resources and static
// obstacles. Plants cluster around high-value cells of a fixed noise field so
// foraging has persistent hotspots; meat drops uniformly.
type Environment struct {
	width, height float64

	resources  []*Resource
	obstacles  []Obstacle
	spawnTimer int
	nextID     uint32

	veg opensimplex.Noise
	rng *rand.Rand
}

// NewEnvironment creates the field with obstacles and an initial resource
// stock at half the configured caps.
func NewEnvironment(width, height float64, seed int64, rng *rand.Rand) *Environment {
	env := &Environment{
		width:  width,
		height: height,
		veg:    opensimplex.NewNormalized(seed),
		rng:    rng,
	}
	env.createObstacles()

	cfg := &config.Cfg().Resources
	for i := 0; i < cfg.MaxPlant/2; i++ {
		env.SpawnResource(ResourcePlant)
	}
	for i := 0; i < cfg.MaxMeat/2; i++ {
		env.SpawnResource(ResourceMeat)
	}
	return env
}

// createObstacles scatters a few axis-aligned blocks away from the edges.
func (e *Environment) createObstacles() {
	const numObstacles = 5
	for i := 0; i < numObstacles; i++ {
		w := 30 + e.rng.Float64()*30
		h := 30 + e.rng.Float64()*30
		x := 50 + e.rng.Float64()*(e.width-100-w)
		y := 50 + e.rng.Float64()*(e.height-100-h)
		e.obstacles = append(e.obstacles, Obstacle{X: x, Y: y, W: w, H: h})
	}
}

// Update advances the spawn timer, spawns a resource when it elapses, and
// compacts consumed resources.
func (e *Environment) Update() {
	cfg := &config.Cfg().Resources

	e.spawnTimer++
	if e.spawnTimer >= cfg.SpawnInterval {
		e.spawnTimer = 0
		if e.rng.Float64() < cfg.PlantChance {
			e.SpawnResource(ResourcePlant)
		} else {
			e.SpawnResource(ResourceMeat)
		}
	}

	e.compact()
}

// compact drops consumed resources from the active list.
func (e *Environment) compact() {
	live := e.resources[:0]
	for _, r := range e.resources {
		if !r.consumed {
			live = append(live, r)
		}
	}
	e.resources = live
}

// SpawnResource adds one resource of the given kind if under its cap.
func (e *Environment) SpawnResource(kind ResourceKind) {
	cfg := &config.Cfg().Resources

	count := 0
	for _, r := range e.resources {
		if !r.consumed && r.Kind == kind {
			count++
		}
	}
	maxCount := cfg.MaxPlant
	amount := cfg.PlantNutrition
	if kind == ResourceMeat {
		maxCount = cfg.MaxMeat
		amount = cfg.MeatNutrition
	}
	if count >= maxCount {
		return
	}

	x, y := e.placeResource(kind)
	e.nextID++
	e.resources = append(e.resources, &Resource{
		ID:     e.nextID,
		Kind:   kind,
		X:      x,
		Y:      y,
		Amount: amount,
	})
}

// placeResource picks a spawn point. Candidate points avoid obstacles (up to
// 10 attempts); for plants, the candidate with the richest vegetation-noise
// value wins, which clusters plants into hotspots.
func (e *Environment) placeResource(kind ResourceKind) (float64, float64) {
	cfg := &config.Cfg().Resources

	candidates := 1
	if kind == ResourcePlant && cfg.ClusterCandidates > 1 {
		candidates = cfg.ClusterCandidates
	}

	var bestX, bestY float64
	bestVal := -1.0
	for c := 0; c < candidates; c++ {
		x, y := e.randomPoint()
		for attempt := 0; attempt < 10 && e.blocked(x, y); attempt++ {
			x, y = e.randomPoint()
		}
		val := e.veg.Eval2(x*cfg.ClusterScale, y*cfg.ClusterScale)
		if val > bestVal {
			bestVal = val
			bestX, bestY = x, y
		}
	}
	return bestX, bestY
}

// randomPoint returns a uniform point inset 20 units from the field edges.
func (e *Environment) randomPoint() (float64, float64) {
	x := 20 + e.rng.Float64()*(e.width-40)
	y := 20 + e.rng.Float64()*(e.height-40)
	return x, y
}

// blocked reports whether the point lies inside any obstacle.
func (e *Environment) blocked(x, y float64) bool {
	for _, o := range e.obstacles {
		if o.Contains(x, y) {
			return true
		}
	}
	return false
}

// ResourcesWithin returns all unconsumed resources within radius of the
// point. Order follows spawn order, so results are deterministic.
func (e *Environment) ResourcesWithin(x, y, radius float64) []*Resource {
	var nearby []*Resource
	rSq := radius * radius
	for _, r := range e.resources {
		if r.consumed {
			continue
		}
		if distanceSq(x, y, r.X, r.Y) <= rSq {
			nearby = append(nearby, r)
		}
	}
	return nearby
}

// RemoveResource marks a resource consumed. Removing an already-removed
// resource is a no-op; the slot is compacted on the next Update.
func (e *Environment) RemoveResource(r *Resource) {
	if r == nil {
		return
	}
	r.consumed = true
}

// Obstacles returns the static obstacle snapshot.
func (e *Environment) Obstacles() []Obstacle {
	return e.obstacles
}

// ResourceCounts returns the current live plant and meat counts.
func (e *Environment) ResourceCounts() (plants, meat int) {
	for _, r := range e.resources {
		if r.consumed {
			continue
		}
		if r.Kind == ResourcePlant {
			plants++
		} else {
			meat++
		}
	}
	return plants, meat
}

// Bounds returns the field dimensions.
func (e *Environment) Bounds() (width, height float64) {
	return e.width, e.height
}
