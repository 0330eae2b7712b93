package gen

import (
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

var (
	dirt  = schem.Block("minecraft:dirt")
	stone = schem.Block("minecraft:stone")
)

// BuildGarden lays noise-rolled terrain under a planted grove: stone core,
// dirt blanket, grass skin, seeded trees and wildflowers, a signpost and the
// gardener's cache.
func BuildGarden(cfg Config) (*schem.Grid, error) {
	m, err := cfg.materials()
	if err != nil {
		return nil, err
	}
	w, h, l := dims(cfg, 24, 10, 24, 8, 6, 8)
	g, err := schem.NewGrid(w, h, l)
	if err != nil {
		return nil, err
	}
	r := rng(cfg)

	// Terrain keeps to the lower half so the trees have headroom.
	relief := max(2, h/2)
	p := perlin.NewPerlin(2, 2, 3, cfg.Seed)
	height := func(x, z int) int {
		n := (p.Noise2D(float64(x)*0.1, float64(z)*0.1) + 1) / 2
		return 1 + int(n*float64(relief-1)+0.5)
	}

	for z := 0; z < l; z++ {
		for x := 0; x < w; x++ {
			top := height(x, z)
			for y := 0; y < top; y++ {
				switch {
				case y == top-1:
					g.Set(x, y, z, m.ground)
				case y >= top-3:
					g.Set(x, y, z, dirt)
				default:
					g.Set(x, y, z, stone)
				}
			}
		}
	}

	for i := 0; i < max(1, w*l/72); i++ {
		tx := 2 + r.Intn(w-4)
		tz := 2 + r.Intn(l-4)
		plantTree(g, m, r, tx, height(tx, tz), tz)
	}

	for i := 0; i < w*l/24; i++ {
		fx := r.Intn(w)
		fz := r.Intn(l)
		fy := height(fx, fz)
		if g.Get(fx, fy, fz).IsAir() && g.Get(fx, fy-1, fz) == m.ground {
			f := poppy
			if r.Intn(2) == 0 {
				f = dandelion
			}
			g.Set(fx, fy, fz, f)
		}
	}

	// Signpost at the center, cache beside it.
	px, pz := w/2, l/2
	py := height(px, pz)
	g.Set(px, py, pz, m.trunk)
	markerSign(g, cfg, "garden", px, py, pz-1, "north")
	lootChest(g, cfg, px+1, height(px+1, pz), pz, "west", false)
	return g, nil
}

// plantTree grows a trunk with a leaf crown at (x, z), rooted on the terrain
// surface at y. Crown cells past the grid edges are dropped by the grid.
func plantTree(g *schem.Grid, m materials, r *rand.Rand, x, y, z int) {
	trunk := 3 + r.Intn(2)
	g.Fill(x-1, y+trunk-1, z-1, x+1, y+trunk-1, z+1, m.leaves)
	g.Fill(x-1, y+trunk, z-1, x+1, y+trunk, z+1, m.leaves)
	g.Set(x, y+trunk+1, z, m.leaves)
	for dy := 0; dy < trunk; dy++ {
		g.Set(x, y+dy, z, m.trunk)
	}
}
