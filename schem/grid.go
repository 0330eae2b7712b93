package schem

import "fmt"

// Item is one occupied slot of a container inventory.
type Item struct {
	Slot  byte
	ID    string
	Count byte
}

// BlockEntity carries the extra data attached to one block position: an
// inventory for containers, four text lines for signs. Entities ride along
// with the grid and are serialized next to the block store.
type BlockEntity struct {
	ID      string
	X, Y, Z int
	Items   []Item
	Lines   [4]string
}

const (
	chestEntityID        = "minecraft:chest"
	trappedChestEntityID = "minecraft:trapped_chest"
	signEntityID         = "minecraft:sign"
)

func (e BlockEntity) IsContainer() bool {
	return e.ID == chestEntityID || e.ID == trappedChestEntityID
}

func (e BlockEntity) IsSign() bool {
	return e.ID == signEntityID
}

// Grid is a dense block store of fixed dimensions with a grid-owned palette.
// Cell (x,y,z) lives at flat offset (y*length+z)*width+x, the same order the
// serialized block data uses. Reads outside the bounds return Air and writes
// outside the bounds are dropped without error, so shape-drawing code can
// poke past the edges freely.
type Grid struct {
	width, height, length int

	blocks   []int
	palette  *Palette
	entities []BlockEntity
}

// NewGrid allocates an air-filled grid. Every dimension must be at least 1.
func NewGrid(width, height, length int) (*Grid, error) {
	if width < 1 || height < 1 || length < 1 {
		return nil, fmt.Errorf("schem: grid dimensions %dx%dx%d, all must be >= 1", width, height, length)
	}
	return &Grid{
		width:   width,
		height:  height,
		length:  length,
		blocks:  make([]int, width*height*length),
		palette: NewPalette(),
	}, nil
}

func (g *Grid) offset(x, y, z int) int {
	return (y*g.length+z)*g.width + x
}

func (g *Grid) inBounds(x, y, z int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height && z >= 0 && z < g.length
}

// Get returns the state at (x,y,z), Air when out of bounds.
func (g *Grid) Get(x, y, z int) BlockState {
	if !g.inBounds(x, y, z) {
		return Air
	}
	s, _ := g.palette.ByID(g.blocks[g.offset(x, y, z)])
	return s
}

// Set stores s at (x,y,z). Out-of-bounds writes are dropped and do not touch
// the palette.
func (g *Grid) Set(x, y, z int, s BlockState) {
	if !g.inBounds(x, y, z) {
		return
	}
	g.blocks[g.offset(x, y, z)] = g.palette.Add(s)
}

// clip normalizes an inclusive box to per-axis min/max order and intersects
// it with the grid. ok is false when nothing remains.
func (g *Grid) clip(x0, y0, z0, x1, y1, z1 int) (bx0, by0, bz0, bx1, by1, bz1 int, ok bool) {
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)
	z0, z1 = min(z0, z1), max(z0, z1)
	x0, x1 = max(x0, 0), min(x1, g.width-1)
	y0, y1 = max(y0, 0), min(y1, g.height-1)
	z0, z1 = max(z0, 0), min(z1, g.length-1)
	return x0, y0, z0, x1, y1, z1, x0 <= x1 && y0 <= y1 && z0 <= z1
}

// Fill sets every cell of the inclusive box to s. Corners may be given in any
// order per axis and the box may reach past the edges; only in-bounds cells
// are written.
func (g *Grid) Fill(x0, y0, z0, x1, y1, z1 int, s BlockState) {
	x0, y0, z0, x1, y1, z1, ok := g.clip(x0, y0, z0, x1, y1, z1)
	if !ok {
		return
	}
	id := g.palette.Add(s)
	for y := y0; y <= y1; y++ {
		for z := z0; z <= z1; z++ {
			row := g.offset(x0, y, z)
			for x := x0; x <= x1; x++ {
				g.blocks[row] = id
				row++
			}
		}
	}
}

// Clear resets the box to air.
func (g *Grid) Clear(x0, y0, z0, x1, y1, z1 int) {
	g.Fill(x0, y0, z0, x1, y1, z1, Air)
}

// Walls builds the four vertical faces of the box in s, leaving the interior,
// floor and ceiling untouched.
func (g *Grid) Walls(x0, y0, z0, x1, y1, z1 int, s BlockState) {
	x0, x1 = min(x0, x1), max(x0, x1)
	y0, y1 = min(y0, y1), max(y0, y1)
	z0, z1 = min(z0, z1), max(z0, z1)
	g.Fill(x0, y0, z0, x1, y1, z0, s)
	g.Fill(x0, y0, z1, x1, y1, z1, s)
	g.Fill(x0, y0, z0, x0, y1, z1, s)
	g.Fill(x1, y0, z0, x1, y1, z1, s)
}

// AddContainer places a chest at (x,y,z) and attaches its inventory as a
// block entity, keeping the caller's slot order. Out-of-bounds positions are
// dropped like any other write.
func (g *Grid) AddContainer(x, y, z int, facing string, items []Item, trapped bool) {
	if !g.inBounds(x, y, z) {
		return
	}
	g.Set(x, y, z, Chest(facing, trapped))
	id := chestEntityID
	if trapped {
		id = trappedChestEntityID
	}
	var inv []Item
	if len(items) > 0 {
		inv = append(inv, items...)
	}
	g.entities = append(g.entities, BlockEntity{ID: id, X: x, Y: y, Z: z, Items: inv})
}

// AddSign places a wall sign at (x,y,z) and attaches its text. Lines beyond
// the fourth are dropped and missing lines become empty strings, so the
// entity always carries exactly four.
func (g *Grid) AddSign(x, y, z int, facing string, lines []string) {
	if !g.inBounds(x, y, z) {
		return
	}
	g.Set(x, y, z, WallSign(facing))
	e := BlockEntity{ID: signEntityID, X: x, Y: y, Z: z}
	copy(e.Lines[:], lines)
	g.entities = append(g.entities, e)
}

// LoadFromArray replaces the whole grid content with states, given in flat
// (y*length+z)*width+x order. The slice length must equal Volume; otherwise
// an error is returned and the grid is left exactly as it was. On success the
// palette is rebuilt from scratch (air at 0, then first-use order) and all
// block entities are cleared.
func (g *Grid) LoadFromArray(states []BlockState) error {
	if len(states) != g.Volume() {
		return fmt.Errorf("schem: got %d states for a %dx%dx%d grid, want %d",
			len(states), g.width, g.height, g.length, g.Volume())
	}
	pal := NewPalette()
	blocks := make([]int, len(states))
	for i, s := range states {
		blocks[i] = pal.Add(s)
	}
	g.palette = pal
	g.blocks = blocks
	g.entities = nil
	return nil
}

// CountNonAir reports how many cells hold something other than air.
func (g *Grid) CountNonAir() int {
	n := 0
	for _, id := range g.blocks {
		if id != 0 {
			n++
		}
	}
	return n
}

// Dimensions returns width, height and length.
func (g *Grid) Dimensions() (int, int, int) {
	return g.width, g.height, g.length
}

// Volume is the total cell count, occupied or not.
func (g *Grid) Volume() int {
	return g.width * g.height * g.length
}

// Palette returns the interned states in id order.
func (g *Grid) Palette() []BlockState {
	return g.palette.States()
}

// BlockEntities returns a copy of the attached entities in insertion order.
func (g *Grid) BlockEntities() []BlockEntity {
	out := make([]BlockEntity, len(g.entities))
	copy(out, g.entities)
	for i := range out {
		if out[i].Items != nil {
			out[i].Items = append([]Item(nil), out[i].Items...)
		}
	}
	return out
}

// To3D materializes the grid as [y][z][x] block states for renderers and
// other read-only consumers.
func (g *Grid) To3D() [][][]BlockState {
	out := make([][][]BlockState, g.height)
	for y := range out {
		out[y] = make([][]BlockState, g.length)
		for z := range out[y] {
			row := make([]BlockState, g.width)
			base := g.offset(0, y, z)
			for x := range row {
				s, _ := g.palette.ByID(g.blocks[base+x])
				row[x] = s
			}
			out[y][z] = row
		}
	}
	return out
}
