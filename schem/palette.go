package schem

// Palette is the grid-owned bijection between block states and the compact
// ids the block store holds. Air is always id 0. Ids are handed out in
// first-use order and never reused or renumbered while the grid lives; the
// palette only grows. Its size therefore counts every distinct state ever
// written, air included, not the states currently present.
type Palette struct {
	entries []BlockState
	index   map[BlockState]int
}

func NewPalette() *Palette {
	return &Palette{
		entries: []BlockState{Air},
		index:   map[BlockState]int{Air: 0},
	}
}

// Add interns s, allocating the next id on first use.
func (p *Palette) Add(s BlockState) int {
	if id, ok := p.index[s]; ok {
		return id
	}
	id := len(p.entries)
	p.entries = append(p.entries, s)
	p.index[s] = id
	return id
}

// ID reports the id for s without interning it.
func (p *Palette) ID(s BlockState) (int, bool) {
	id, ok := p.index[s]
	return id, ok
}

// ByID returns the state registered under id.
func (p *Palette) ByID(id int) (BlockState, bool) {
	if id < 0 || id >= len(p.entries) {
		return BlockState{}, false
	}
	return p.entries[id], true
}

func (p *Palette) Len() int {
	return len(p.entries)
}

// States returns a copy of the entries in id order.
func (p *Palette) States() []BlockState {
	out := make([]BlockState, len(p.entries))
	copy(out, p.entries)
	return out
}
