package gen

import (
	"github.com/tribixbite/craftmatic-sub003/schem"
)

// BuildVillage lays out a hamlet around its well: gravel cross paths, four
// cottages facing the center, lamp posts along the paths and a stocked
// storehouse.
func BuildVillage(cfg Config) (*schem.Grid, error) {
	m, err := cfg.materials()
	if err != nil {
		return nil, err
	}
	w, h, l := dims(cfg, 48, 12, 48, 24, 8, 24)
	g, err := schem.NewGrid(w, h, l)
	if err != nil {
		return nil, err
	}
	r := rng(cfg)

	g.Fill(0, 0, 0, w-1, 0, l-1, m.ground)

	cx, cz := w/2, l/2
	g.Fill(1, 0, cz, w-2, 0, cz, gravel)
	g.Fill(cx, 0, 1, cx, 0, l-2, gravel)

	well(g, m, cx, cz)
	markerSign(g, cfg, "village", cx-2, 2, cz-1, "west")

	// One cottage per quadrant, nudged by the seed, door toward the center
	// path.
	const cw, ch, cl = 7, 5, 7
	quads := [][2]int{
		{cx/2 - cw/2, cz/2 - cl/2},
		{cx + cx/2 - cw/2, cz/2 - cl/2},
		{cx/2 - cw/2, cz + cz/2 - cl/2},
		{cx + cx/2 - cw/2, cz + cz/2 - cl/2},
	}
	var store [2]int
	for i, q := range quads {
		x0 := q[0] + r.Intn(3) - 1
		z0 := q[1] + r.Intn(3) - 1
		cottage(g, m, x0, z0, cw, ch, cl, i < 2)
		if i == 0 {
			store = [2]int{x0, z0}
		}
	}
	lootChest(g, cfg, store[0]+1, 1, store[1]+1, "south", false)

	for _, lx := range []int{cx / 2, cx + cx/2} {
		lamp(g, m, lx, cz-1)
	}
	for _, lz := range []int{cz / 2, cz + cz/2} {
		lamp(g, m, cx-1, lz)
	}
	return g, nil
}

// cottage raises one village house with its door on the side facing the
// village center.
func cottage(g *schem.Grid, m materials, x0, z0, cw, ch, cl int, doorSouth bool) {
	x1, z1 := x0+cw-1, z0+cl-1
	g.Fill(x0, 0, z0, x1, 0, z1, m.floor)
	g.Walls(x0, 1, z0, x1, ch-2, z1, m.wall)
	g.Fill(x0, ch-1, z0, x1, ch-1, z1, m.roof)

	dx := x0 + cw/2
	dz, facing := z0, "north"
	if doorSouth {
		dz, facing = z1, "south"
	}
	g.Clear(dx, 1, dz, dx, 2, dz)
	g.Set(dx, 1, dz, door(facing, "lower"))
	g.Set(dx, 2, dz, door(facing, "upper"))

	g.Set(x0, 2, z0+cl/2, m.accent)
	g.Set(x1, 2, z0+cl/2, m.accent)
	g.Set(x1-1, 2, z1-1, torch)
}

// well digs the village well: a masonry rim holding the water column, two
// posts and a slab roof.
func well(g *schem.Grid, m materials, cx, cz int) {
	g.Clear(cx-1, 0, cz-1, cx+1, 0, cz+1)
	g.Walls(cx-1, 0, cz-1, cx+1, 1, cz+1, m.floor)
	g.Set(cx, 0, cz, water)
	g.Set(cx, 1, cz, water)
	g.Fill(cx-1, 2, cz-1, cx-1, 3, cz-1, m.trunk)
	g.Fill(cx+1, 2, cz+1, cx+1, 3, cz+1, m.trunk)
	g.Fill(cx-1, 4, cz-1, cx+1, 4, cz+1, m.roof)
}

// lamp plants a torch post beside a path.
func lamp(g *schem.Grid, m materials, x, z int) {
	g.Fill(x, 1, z, x, 2, z, m.trunk)
	g.Set(x, 3, z, torch)
}
