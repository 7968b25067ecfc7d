package behaviour

// Player is anything advanced once per frame, such as a timeline.
type Player interface {
	Advance(dt float64)
	Done() bool
}

type playerWrapper struct {
	player  Player
	removed bool
}

// PlayerManager advances players in the order they were added. That order is
// the write order between players that touch the same property: a player
// added later writes later in the frame and wins.
type PlayerManager struct {
	players   []*playerWrapper
	pending   []*playerWrapper
	advancing bool
}

func NewPlayerManager() *PlayerManager {
	return &PlayerManager{}
}

// Add registers p. Players added while a frame is being advanced start on the
// next frame.
func (m *PlayerManager) Add(p Player) {
	if p == nil {
		return
	}
	w := &playerWrapper{player: p}
	if m.advancing {
		m.pending = append(m.pending, w)
		return
	}
	m.players = append(m.players, w)
}

// Remove unregisters p, keeping the order of the others.
func (m *PlayerManager) Remove(p Player) {
	for _, list := range [][]*playerWrapper{m.players, m.pending} {
		for _, w := range list {
			if w.player == p {
				w.removed = true
			}
		}
	}
	if !m.advancing {
		m.compact()
	}
}

// Clear removes all players from the manager
func (m *PlayerManager) Clear() {
	for _, w := range m.players {
		w.removed = true
	}
	m.pending = nil
	if !m.advancing {
		m.compact()
	}
}

// Len counts the players that will run on the next frame.
func (m *PlayerManager) Len() int {
	n := 0
	for _, list := range [][]*playerWrapper{m.players, m.pending} {
		for _, w := range list {
			if !w.removed {
				n++
			}
		}
	}
	return n
}

func (m *PlayerManager) Advance(dt float64) {
	m.advancing = true
	for _, w := range m.players {
		if w.removed {
			continue
		}
		w.player.Advance(dt)
	}
	m.advancing = false
	m.compact()
}

func (m *PlayerManager) compact() {
	kept := m.players[:0]
	for _, w := range m.players {
		if !w.removed && !w.player.Done() {
			kept = append(kept, w)
		}
	}
	for i := len(kept); i < len(m.players); i++ {
		m.players[i] = nil
	}
	m.players = kept

	for _, w := range m.pending {
		if !w.removed {
			m.players = append(m.players, w)
		}
	}
	m.pending = nil
}
