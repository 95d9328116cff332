package systems

import (
	"math"
	"testing"

	"github.com/troop-sim/troop/components"
)

func TestLearnFromRequiresFitterTeacher(t *testing.T) {
	student := newTestAgent(1, 0, gorillaStats(), 400, 400)
	teacher := newTestAgent(2, 0, gorillaStats(), 410, 400)
	teacher.Vit.HP = 50 // teacher less fit

	before := student.Beh.Foraging
	if LearnFrom(&student, &teacher, 0.1) {
		t.Error("learned from a less fit teacher")
	}
	if student.Beh.Foraging != before {
		t.Error("distributions changed without learning")
	}
	if student.Cnt.Communications != 0 {
		t.Error("communication counted without learning")
	}
}

func TestLearnFromEqualFitnessIsNoOp(t *testing.T) {
	student := newTestAgent(1, 0, gorillaStats(), 400, 400)
	teacher := newTestAgent(2, 0, gorillaStats(), 410, 400)

	if LearnFrom(&student, &teacher, 0.1) {
		t.Error("learned from an equally fit teacher")
	}
}

func TestLearnFromBlendsTowardTeacher(t *testing.T) {
	student := newTestAgent(1, 0, gorillaStats(), 400, 400)
	student.Vit.HP = 50 // student less fit
	student.Beh.Foraging = [components.NumForaging]float64{1, 0, 0, 0}
	student.Beh.HungerThreshold = 0.4

	teacher := newTestAgent(2, 0, gorillaStats(), 410, 400)
	teacher.Beh.Foraging = [components.NumForaging]float64{0, 1, 0, 0}
	teacher.Beh.HungerThreshold = 0.6

	if !LearnFrom(&student, &teacher, 0.1) {
		t.Fatal("did not learn from a fitter teacher")
	}

	if math.Abs(student.Beh.Foraging[0]-0.9) > 1e-9 || math.Abs(student.Beh.Foraging[1]-0.1) > 1e-9 {
		t.Errorf("foraging = %v, want [0.9 0.1 0 0]", student.Beh.Foraging)
	}
	if math.Abs(student.Beh.HungerThreshold-0.42) > 1e-9 {
		t.Errorf("hunger threshold = %v, want 0.42", student.Beh.HungerThreshold)
	}

	// Blend preserves the simplex.
	if math.Abs(distSum(student.Beh.Foraging[:])-1.0) > 1e-9 {
		t.Errorf("foraging sum = %v, want 1.0", distSum(student.Beh.Foraging[:]))
	}

	// The teacher's own profile is untouched.
	if teacher.Beh.Foraging[1] != 1 {
		t.Error("teaching mutated the teacher")
	}
	if student.Cnt.Communications != 1 {
		t.Error("communication not counted for the learner")
	}
	if teacher.Cnt.Communications != 0 {
		t.Error("communication counted for the teacher")
	}
}

func TestRunLearningPass(t *testing.T) {
	weak := newTestAgent(1, 0, gorillaStats(), 400, 400)
	weak.Vit.HP = 50
	strong := newTestAgent(2, 0, gorillaStats(), 440, 400) // within interaction radius
	outside := newTestAgent(3, 0, gorillaStats(), 400, 700)
	outside.Vit.HP = 10
	peers := NewPeers([]Agent{weak, strong, outside})

	events := RunLearningPass(peers)

	// Only weak-learns-from-strong is in radius and strictly fitter.
	if events != 1 {
		t.Errorf("events = %d, want 1", events)
	}
}

func TestRunLearningPassSkipsDead(t *testing.T) {
	weak := newTestAgent(1, 0, gorillaStats(), 400, 400)
	weak.Vit.HP = 50
	dead := newTestAgent(2, 0, gorillaStats(), 410, 400)
	dead.Beh.State = components.StateDead
	peers := NewPeers([]Agent{weak, dead})

	if events := RunLearningPass(peers); events != 0 {
		t.Errorf("events = %d, want 0 with a dead neighbour", events)
	}
}
