package systems

import (
	"testing"

	"github.com/troop-sim/troop/components"
)

func TestEat(t *testing.T) {
	env := emptyEnvironment(800, 800)
	r := addResource(env, ResourcePlant, 405, 400, 30)
	a := newTestAgent(1, 0, gorillaStats(), 400, 400)
	a.Vit.Energy = 50
	a.Vit.HP = 100

	Eat(&a, env)

	if a.Vit.Energy != 80 {
		t.Errorf("energy = %v, want 80", a.Vit.Energy)
	}
	if a.Vit.HP != 115 {
		t.Errorf("hp = %v, want 115", a.Vit.HP)
	}
	if a.Cnt.Meals != 1 {
		t.Errorf("meals = %d, want 1", a.Cnt.Meals)
	}
	if got := env.ResourcesWithin(400, 400, 50); len(got) != 0 {
		t.Errorf("resource still present after eating: %v", r)
	}
}

func TestEatCappedAtMaxima(t *testing.T) {
	env := emptyEnvironment(800, 800)
	addResource(env, ResourcePlant, 405, 400, 30)
	a := newTestAgent(1, 0, gorillaStats(), 400, 400)

	Eat(&a, env)

	if a.Vit.Energy != a.Vit.MaxEnergy {
		t.Errorf("energy = %v, want capped at %v", a.Vit.Energy, a.Vit.MaxEnergy)
	}
	if a.Vit.HP != a.Vit.MaxHP {
		t.Errorf("hp = %v, want capped at %v", a.Vit.HP, a.Vit.MaxHP)
	}
}

func TestEatRespectsRangeAndDiet(t *testing.T) {
	t.Run("out of range", func(t *testing.T) {
		env := emptyEnvironment(800, 800)
		addResource(env, ResourcePlant, 500, 400, 30)
		a := newTestAgent(1, 0, gorillaStats(), 400, 400)
		a.Vit.Energy = 50

		Eat(&a, env)

		if a.Cnt.Meals != 0 {
			t.Error("ate a resource out of range")
		}
	})

	t.Run("wrong diet", func(t *testing.T) {
		env := emptyEnvironment(800, 800)
		addResource(env, ResourceMeat, 405, 400, 60)
		a := newTestAgent(1, 0, gorillaStats(), 400, 400) // herbivore
		a.Vit.Energy = 50

		Eat(&a, env)

		if a.Cnt.Meals != 0 {
			t.Error("herbivore ate meat")
		}
		if plants, meat := env.ResourceCounts(); plants != 0 || meat != 1 {
			t.Errorf("counts = (%d, %d), want (0, 1)", plants, meat)
		}
	})
}

func TestForagingSeeksNearestEdible(t *testing.T) {
	env := emptyEnvironment(800, 800)
	addResource(env, ResourcePlant, 500, 400, 30) // farther
	addResource(env, ResourcePlant, 450, 400, 30) // nearer
	a := newTestAgent(1, 0, gorillaStats(), 400, 400)
	a.Beh.Foraging = [components.NumForaging]float64{1, 0, 0, 0}
	a.Beh.CurForaging = components.ForageWideView

	ExecForaging(&a, env, NewPeers(nil), testRNG())

	if a.Vel.X <= 0 {
		t.Errorf("vel.x = %v, want movement toward food", a.Vel.X)
	}
	if a.Vel.Y != 0 {
		t.Errorf("vel.y = %v, want 0 for a straight-line target", a.Vel.Y)
	}
	// Nearer resource was spawned second, so its id is 2.
	if a.Mem.TargetResource != 2 {
		t.Errorf("target = %d, want 2 (the nearer resource)", a.Mem.TargetResource)
	}
}

func TestForagingVariantSpeeds(t *testing.T) {
	stats := gorillaStats()

	run := func(strategy components.ForagingStrategy) float64 {
		env := emptyEnvironment(800, 800)
		addResource(env, ResourcePlant, 450, 400, 30)
		a := newTestAgent(1, 0, stats, 400, 400)
		var d [components.NumForaging]float64
		d[strategy] = 1
		a.Beh.Foraging = d
		a.Beh.CurForaging = strategy
		ExecForaging(&a, env, NewPeers(nil), testRNG())
		return a.Vel.X
	}

	wide := run(components.ForageWideView)
	fast := run(components.ForageFastMove)

	if wide != stats.BaseSpeed*0.7 {
		t.Errorf("wide-view speed = %v, want %v", wide, stats.BaseSpeed*0.7)
	}
	if fast != stats.BaseSpeed*1.5 {
		t.Errorf("fast-move speed = %v, want %v", fast, stats.BaseSpeed*1.5)
	}
}

func TestForagingAmbushHoldsPosition(t *testing.T) {
	env := emptyEnvironment(800, 800)
	// Food in normal view range but outside the ambush's narrowed view.
	addResource(env, ResourcePlant, 500, 400, 30)
	a := newTestAgent(1, 0, gorillaStats(), 400, 400)
	a.Beh.Foraging = [components.NumForaging]float64{0, 0, 0, 1}
	a.Beh.CurForaging = components.ForageAmbush

	ExecForaging(&a, env, NewPeers(nil), testRNG())

	if a.Vel.X != 0 || a.Vel.Y != 0 {
		t.Errorf("vel = (%v, %v), want ambush to hold still", a.Vel.X, a.Vel.Y)
	}
}
