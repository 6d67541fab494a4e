package compositor

import (
	"github.com/Carmen-Shannon/oxy-moon/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-moon/engine/scene"
)

// stash holds the original materials of blacked-out renderables for the span of one bright pass. Entries are
// indexed by the renderable's position in the frozen renderable list, so slots[i] and originals[i] are parallel.
type stash struct {
	originals []material.Material
	slots     []bool
	count     int
}

// reset prepares the stash for a renderable list of length n. The backing arrays are reused across frames.
func (s *stash) reset(n int) {
	if cap(s.originals) < n {
		s.originals = make([]material.Material, n)
		s.slots = make([]bool, n)
	}
	s.originals = s.originals[:n]
	s.slots = s.slots[:n]
}

// swap replaces the material of every drawable non-bloom renderable with placeholder. It returns the number of
// materials swapped.
func (s *stash) swap(renderables []*scene.Node, placeholder material.Material) int {
	s.reset(len(renderables))
	for i, n := range renderables {
		if !n.Drawable() || n.BloomMember() {
			continue
		}
		s.originals[i] = n.Material
		s.slots[i] = true
		s.count++
		n.Material = placeholder
	}
	return s.count
}

// restore puts every stashed material back and empties the stash.
func (s *stash) restore(renderables []*scene.Node) {
	for i := range s.slots {
		if !s.slots[i] {
			continue
		}
		renderables[i].Material = s.originals[i]
		s.originals[i] = nil
		s.slots[i] = false
	}
	s.count = 0
}

// empty reports whether no material is currently stashed.
func (s *stash) empty() bool {
	return s.count == 0
}
