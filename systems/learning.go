package systems

import "github.com/troop-sim/troop/config"

// LearnFrom blends the teacher's strategy distributions and hunger threshold
// into the student's when the teacher is strictly fitter. Returns whether
// any learning happened.
func LearnFrom(student, teacher *Agent, alpha float64) bool {
	if teacher.Fitness() <= student.Fitness() {
		return false
	}
	blendDist(student.Beh.Foraging[:], teacher.Beh.Foraging[:], alpha)
	blendDist(student.Beh.Combat[:], teacher.Beh.Combat[:], alpha)
	blendDist(student.Beh.Flee[:], teacher.Beh.Flee[:], alpha)
	student.Beh.HungerThreshold = (1-alpha)*student.Beh.HungerThreshold + alpha*teacher.Beh.HungerThreshold
	student.Cnt.Communications++
	return true
}

// RunLearningPass lets every live agent observe every fitter live neighbour
// within the interaction radius, in snapshot order. Returns the number of
// learning events.
func RunLearningPass(peers *Peers) int {
	cfg := config.Cfg().Learning
	rSq := cfg.InteractionRadius * cfg.InteractionRadius
	events := 0
	for i := range peers.Agents {
		student := &peers.Agents[i]
		if !student.Alive() {
			continue
		}
		for j := range peers.Agents {
			if i == j {
				continue
			}
			teacher := &peers.Agents[j]
			if !teacher.Alive() {
				continue
			}
			if distanceSq(student.Pos.X, student.Pos.Y, teacher.Pos.X, teacher.Pos.Y) > rSq {
				continue
			}
			if LearnFrom(student, teacher, cfg.Rate) {
				events++
			}
		}
	}
	return events
}
