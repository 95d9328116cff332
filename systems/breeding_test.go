package systems

import (
	"math"
	"testing"

	"github.com/troop-sim/troop/components"
	"github.com/troop-sim/troop/config"
)

// fertileAgent returns an agent inside the fertile window with the cooldown
// elapsed.
func fertileAgent(id uint32, species uint8, stats *SpeciesStats, x, y float64) Agent {
	a := newTestAgent(id, species, stats, x, y)
	a.Vit.Age = config.Cfg().Reproduction.MinAge + 1
	a.Vit.SinceRepro = stats.ReproductionCooldown + 1
	return a
}

func TestCanReproduce(t *testing.T) {
	repro := config.Cfg().Reproduction

	tests := []struct {
		name  string
		setup func(a *Agent)
		want  bool
	}{
		{"fertile", func(a *Agent) {}, true},
		{"too young", func(a *Agent) { a.Vit.Age = repro.MinAge - 1 }, false},
		{"too old", func(a *Agent) { a.Vit.Age = repro.MinAge + repro.FertileWindow + 1 }, false},
		{"on cooldown", func(a *Agent) { a.Vit.SinceRepro = 0 }, false},
		{"low energy", func(a *Agent) { a.Vit.Energy = a.Vit.MaxEnergy * repro.VitalityFloor }, false},
		{"low hp", func(a *Agent) { a.Vit.HP = a.Vit.MaxHP * repro.VitalityFloor }, false},
		{"dead", func(a *Agent) { a.Beh.State = components.StateDead }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := fertileAgent(1, 0, gorillaStats(), 400, 400)
			tt.setup(&a)
			if got := CanReproduce(&a); got != tt.want {
				t.Errorf("CanReproduce = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReproductionPassPairsAndCosts(t *testing.T) {
	cfg := config.Cfg()
	stats := gorillaStats()
	a := fertileAgent(1, 0, stats, 400, 400)
	b := fertileAgent(2, 0, stats, 420, 400)
	peers := NewPeers([]Agent{a, b})

	births := RunReproductionPass(peers, testRNG())

	if len(births) != 1 {
		t.Fatalf("births = %d, want 1", len(births))
	}
	child := births[0]
	if child.Species != 0 {
		t.Errorf("child species = %d, want 0", child.Species)
	}

	inset := cfg.World.EdgeInset
	if child.X < inset || child.X > cfg.World.Width-inset ||
		child.Y < inset || child.Y > cfg.World.Height-inset {
		t.Errorf("child at (%v, %v), outside the inset bounds", child.X, child.Y)
	}
	// Spawn jitter keeps the child near the parents' midpoint.
	if math.Abs(child.X-410) > cfg.Reproduction.SpawnJitter {
		t.Errorf("child x = %v, want within jitter of 410", child.X)
	}

	if math.Abs(distSum(child.Foraging[:])-1.0) > 1e-9 {
		t.Errorf("child foraging sum = %v, want 1.0", distSum(child.Foraging[:]))
	}
	if child.HungerThreshold < 0.2 || child.HungerThreshold > 0.8 {
		t.Errorf("child hunger threshold = %v, outside [0.2, 0.8]", child.HungerThreshold)
	}

	for i := range peers.Agents {
		p := &peers.Agents[i]
		wantEnergy := p.Vit.MaxEnergy - p.Vit.MaxEnergy*cfg.Reproduction.EnergyCost
		if math.Abs(p.Vit.Energy-wantEnergy) > 1e-9 {
			t.Errorf("parent %d energy = %v, want %v", p.ID, p.Vit.Energy, wantEnergy)
		}
		wantHP := p.Vit.MaxHP - p.Vit.MaxHP*cfg.Reproduction.HPCost
		if math.Abs(p.Vit.HP-wantHP) > 1e-9 {
			t.Errorf("parent %d hp = %v, want %v", p.ID, p.Vit.HP, wantHP)
		}
		if p.Vit.SinceRepro != 0 {
			t.Errorf("parent %d cooldown not reset", p.ID)
		}
		if p.Cnt.Offspring != 1 {
			t.Errorf("parent %d offspring = %d, want 1", p.ID, p.Cnt.Offspring)
		}
	}
}

func TestReproductionPassNoDoubleMating(t *testing.T) {
	stats := gorillaStats()
	agents := []Agent{
		fertileAgent(1, 0, stats, 400, 400),
		fertileAgent(2, 0, stats, 410, 400),
		fertileAgent(3, 0, stats, 420, 400),
	}
	peers := NewPeers(agents)

	births := RunReproductionPass(peers, testRNG())

	// Three fertile agents can form at most one pair.
	if len(births) != 1 {
		t.Errorf("births = %d, want 1", len(births))
	}
	mated := 0
	for i := range peers.Agents {
		if peers.Agents[i].Cnt.Offspring > 0 {
			mated++
		}
	}
	if mated != 2 {
		t.Errorf("mated agents = %d, want 2", mated)
	}
}

func TestReproductionPassRespectsRangeAndSpecies(t *testing.T) {
	t.Run("out of mating range", func(t *testing.T) {
		stats := gorillaStats()
		a := fertileAgent(1, 0, stats, 100, 100)
		b := fertileAgent(2, 0, stats, 700, 700)
		peers := NewPeers([]Agent{a, b})

		if births := RunReproductionPass(peers, testRNG()); len(births) != 0 {
			t.Errorf("births = %d, want 0", len(births))
		}
	})

	t.Run("different species", func(t *testing.T) {
		a := fertileAgent(1, 0, gorillaStats(), 400, 400)
		b := fertileAgent(2, 1, chimpStats(), 410, 400)
		peers := NewPeers([]Agent{a, b})

		if births := RunReproductionPass(peers, testRNG()); len(births) != 0 {
			t.Errorf("births = %d, want 0", len(births))
		}
	})
}

func TestInheritDistMutatedAverage(t *testing.T) {
	rng := testRNG()
	a := []float64{1, 0, 0, 0}
	b := []float64{0, 1, 0, 0}
	child := make([]float64, 4)

	inheritDist(child, a, b, 0.05, rng)

	if math.Abs(distSum(child)-1.0) > 1e-9 {
		t.Errorf("sum = %v, want 1.0", distSum(child))
	}
	// Average is 0.5/0.5; mutation is at most 0.05 before renormalizing.
	if child[0] < 0.3 || child[0] > 0.7 || child[1] < 0.3 || child[1] > 0.7 {
		t.Errorf("child = %v, want near the parental average", child)
	}
	for _, v := range child {
		if v < 0 {
			t.Errorf("child = %v, has a negative entry", child)
		}
	}
}

func TestInheritDistZeroFallsBackToUniform(t *testing.T) {
	// Mutation disabled and all-zero parents force the uniform fallback.
	child := make([]float64, 4)
	inheritDist(child, []float64{0, 0, 0, 0}, []float64{0, 0, 0, 0}, 0, testRNG())

	for _, v := range child {
		if math.Abs(v-0.25) > 1e-9 {
			t.Errorf("child = %v, want uniform", child)
		}
	}
}

func TestOffspringBehavior(t *testing.T) {
	o := Offspring{
		Species:         1,
		Foraging:        [components.NumForaging]float64{0, 0, 1, 0},
		Combat:          [components.NumCombat]float64{1, 0, 0},
		Flee:            [components.NumFlee]float64{0, 1, 0},
		HungerThreshold: 0.5,
	}

	b := o.Behavior(testRNG())

	if b.State != components.StateIdle {
		t.Errorf("state = %v, want idle", b.State)
	}
	if b.CurForaging != components.ForageRandomWalk {
		t.Errorf("current foraging = %v, want the inherited certainty", b.CurForaging)
	}
	if b.CurCombat != components.CombatAggressive {
		t.Errorf("current combat = %v, want the inherited certainty", b.CurCombat)
	}
	if b.CurFlee != components.FleeHide {
		t.Errorf("current flee = %v, want the inherited certainty", b.CurFlee)
	}
}
