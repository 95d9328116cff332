package systems

import (
	"testing"

	"github.com/troop-sim/troop/config"
)

func TestNewEnvironmentInitialStock(t *testing.T) {
	cfg := &config.Cfg().Resources
	env := NewEnvironment(800, 800, 1, testRNG())

	plants, meat := env.ResourceCounts()
	if plants != cfg.MaxPlant/2 {
		t.Errorf("plants = %d, want %d", plants, cfg.MaxPlant/2)
	}
	if meat != cfg.MaxMeat/2 {
		t.Errorf("meat = %d, want %d", meat, cfg.MaxMeat/2)
	}
	if len(env.Obstacles()) != 5 {
		t.Errorf("obstacles = %d, want 5", len(env.Obstacles()))
	}
}

func TestSpawnResourceRespectsCaps(t *testing.T) {
	cfg := &config.Cfg().Resources
	env := NewEnvironment(800, 800, 1, testRNG())

	for i := 0; i < cfg.MaxPlant*2; i++ {
		env.SpawnResource(ResourcePlant)
	}

	plants, _ := env.ResourceCounts()
	if plants != cfg.MaxPlant {
		t.Errorf("plants = %d, want capped at %d", plants, cfg.MaxPlant)
	}
}

func TestSpawnResourceAvoidsObstacles(t *testing.T) {
	env := NewEnvironment(800, 800, 1, testRNG())

	for _, r := range env.ResourcesWithin(400, 400, 1000) {
		if env.blocked(r.X, r.Y) {
			t.Errorf("resource %d spawned inside an obstacle at (%v, %v)", r.ID, r.X, r.Y)
		}
	}
}

func TestRemoveResourceIdempotent(t *testing.T) {
	cfg := &config.Cfg().Resources
	env := emptyEnvironment(800, 800)
	r := addResource(env, ResourcePlant, 400, 400, cfg.PlantNutrition)

	env.RemoveResource(r)
	env.RemoveResource(r)
	env.RemoveResource(nil)

	if plants, _ := env.ResourceCounts(); plants != 0 {
		t.Errorf("plants = %d, want 0", plants)
	}
	// The consumed slot must not block a respawn.
	env.SpawnResource(ResourcePlant)
	if plants, _ := env.ResourceCounts(); plants != 1 {
		t.Errorf("plants = %d, want 1 after respawn", plants)
	}
}

func TestResourcesWithin(t *testing.T) {
	env := emptyEnvironment(800, 800)
	addResource(env, ResourcePlant, 400, 400, 30)
	addResource(env, ResourcePlant, 450, 400, 30)
	addResource(env, ResourcePlant, 700, 700, 30)

	got := env.ResourcesWithin(400, 400, 60)
	if len(got) != 2 {
		t.Fatalf("in range = %d, want 2", len(got))
	}
	// Spawn order is preserved.
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("order = [%d %d], want [1 2]", got[0].ID, got[1].ID)
	}

	consumed := got[0]
	env.RemoveResource(consumed)
	if again := env.ResourcesWithin(400, 400, 60); len(again) != 1 {
		t.Errorf("in range after removal = %d, want 1", len(again))
	}
}

func TestEnvironmentUpdateSpawnsOnInterval(t *testing.T) {
	cfg := &config.Cfg().Resources
	env := emptyEnvironment(800, 800)

	for i := 0; i < cfg.SpawnInterval; i++ {
		env.Update()
	}

	plants, meat := env.ResourceCounts()
	if plants+meat != 1 {
		t.Errorf("resources = %d, want exactly 1 after one interval", plants+meat)
	}
}

func TestObstacleContains(t *testing.T) {
	o := Obstacle{X: 100, Y: 100, W: 40, H: 20}

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"center", 120, 110, true},
		{"top-left corner", 100, 100, true},
		{"right edge exclusive", 140, 110, false},
		{"outside", 50, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := o.Contains(tt.x, tt.y); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}
