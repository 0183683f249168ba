package loop

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// It shares no memory with the live game, so it may cross goroutines.
type Snapshot struct {
	Mode         string           `msgpack:"mode" json:"mode"`
	EnabledCount int              `msgpack:"enabled" json:"enabled"`
	Round        int              `msgpack:"round" json:"round"`
	Arena        ArenaSnapshot    `msgpack:"arena" json:"arena"`
	Players      []PlayerSnapshot `msgpack:"players" json:"players"`
}

// ArenaSnapshot carries the arena size and the playable width.
type ArenaSnapshot struct {
	Width         float64 `msgpack:"w" json:"w"`
	Height        float64 `msgpack:"h" json:"h"`
	PlayableWidth float64 `msgpack:"pw" json:"pw"`
}

// PlayerSnapshot is one roster entry.
type PlayerSnapshot struct {
	Name    string               `msgpack:"n" json:"n"`
	Color   string               `msgpack:"c" json:"c"`
	Enabled bool                 `msgpack:"e" json:"e"`
	Alive   bool                 `msgpack:"a" json:"a"`
	Score   int                  `msgpack:"s" json:"s"`
	X       float64              `msgpack:"x" json:"x"`
	Y       float64              `msgpack:"y" json:"y"`
	Trail   []TrailPointSnapshot `msgpack:"t" json:"t"`
}

// TrailPointSnapshot is a trail point; Gap hides the segment leading into it.
type TrailPointSnapshot struct {
	X   float64 `msgpack:"x" json:"x"`
	Y   float64 `msgpack:"y" json:"y"`
	Gap bool    `msgpack:"g,omitempty" json:"g,omitempty"`
}

// Snapshot copies the current state for rendering.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	snap := Snapshot{
		Mode:         s.Mode.String(),
		EnabledCount: s.EnabledCount,
		Round:        s.Round,
		Arena: ArenaSnapshot{
			Width:         s.Arena.Width,
			Height:        s.Arena.Height,
			PlayableWidth: s.Arena.PlayableWidth(),
		},
		Players: make([]PlayerSnapshot, len(s.Players)),
	}

	for i, p := range s.Players {
		trail := make([]TrailPointSnapshot, len(p.Trail))
		for j, tp := range p.Trail {
			trail[j] = TrailPointSnapshot{X: tp.X, Y: tp.Y, Gap: tp.Gap}
		}
		snap.Players[i] = PlayerSnapshot{
			Name:    p.Name,
			Color:   p.Color.Hex(),
			Enabled: p.Enabled,
			Alive:   p.Alive(),
			Score:   p.Score,
			X:       p.X,
			Y:       p.Y,
			Trail:   trail,
		}
	}
	return snap
}
