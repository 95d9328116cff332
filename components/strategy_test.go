package components

import "testing"

func TestParseStrategyRoundTrip(t *testing.T) {
	for i, name := range ForagingStrategies() {
		got, err := ParseForagingStrategy(name)
		if err != nil || got != ForagingStrategy(i) {
			t.Errorf("ParseForagingStrategy(%q) = %v, %v", name, got, err)
		}
		if got.String() != name {
			t.Errorf("String() = %q, want %q", got.String(), name)
		}
	}
	for i, name := range CombatStrategies() {
		got, err := ParseCombatStrategy(name)
		if err != nil || got != CombatStrategy(i) {
			t.Errorf("ParseCombatStrategy(%q) = %v, %v", name, got, err)
		}
	}
	for i, name := range FleeStrategies() {
		got, err := ParseFleeStrategy(name)
		if err != nil || got != FleeStrategy(i) {
			t.Errorf("ParseFleeStrategy(%q) = %v, %v", name, got, err)
		}
	}
}

func TestParseStrategyUnknown(t *testing.T) {
	if _, err := ParseForagingStrategy("Teleport"); err == nil {
		t.Error("unknown foraging strategy accepted")
	}
	if _, err := ParseCombatStrategy("Teleport"); err == nil {
		t.Error("unknown combat strategy accepted")
	}
	if _, err := ParseFleeStrategy("Teleport"); err == nil {
		t.Error("unknown flee strategy accepted")
	}
}
