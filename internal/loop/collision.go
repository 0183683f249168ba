package loop

import (
	"github.com/tomz197/kurve/internal/object"
)

// checkDeaths kills every enabled, living player that left the arena, crossed
// its own trail, or crossed the trail of another enabled player (dead or
// alive). Each death scores deadCount. A player dies at most once per tick.
func checkDeaths(players []*object.Player, deadCount int) {
	for _, p := range players {
		if !p.Enabled || p.Dead {
			continue
		}

		if p.Suicide() {
			killPlayer(p, deadCount)
			continue
		}

		for _, other := range players {
			if other == p || !other.Enabled {
				continue
			}
			if p.CollideWith(other) {
				killPlayer(p, deadCount)
				break
			}
		}
	}
}

// killPlayer marks p dead and pays it the frozen dead count.
func killPlayer(p *object.Player, deadCount int) {
	p.Score += deadCount
	p.Dead = true
}
