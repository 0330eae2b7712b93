package gen

import (
	"github.com/tribixbite/craftmatic-sub003/schem"
)

// BuildCastle walls a bailey: crenellated curtain walls with corner turrets
// and a gatehouse, a gravel approach to the central keep, and a trapped
// treasury chest behind the keep door.
func BuildCastle(cfg Config) (*schem.Grid, error) {
	m, err := cfg.materials()
	if err != nil {
		return nil, err
	}
	w, h, l := dims(cfg, 29, 12, 29, 15, 8, 15)
	g, err := schem.NewGrid(w, h, l)
	if err != nil {
		return nil, err
	}
	r := rng(cfg)

	g.Fill(0, 0, 0, w-1, 0, l-1, m.ground)

	// Curtain wall with merlons, masonry throughout.
	curtain := min(h-2, 2*h/3)
	g.Walls(0, 1, 0, w-1, curtain, l-1, m.floor)
	crenellate(g, curtain+1, 0, 0, w-1, l-1, 0, m.floor)

	// Corner turrets, one step taller than the curtain.
	const t = 5
	towerH := min(h-1, curtain+2)
	for _, c := range [][2]int{{0, 0}, {w - t, 0}, {0, l - t}, {w - t, l - t}} {
		x0, z0 := c[0], c[1]
		g.Walls(x0, 1, z0, x0+t-1, towerH-1, z0+t-1, m.floor)
		crenellate(g, towerH, x0, z0, x0+t-1, z0+t-1, (x0+z0)%2, m.floor)
	}

	// Gatehouse: a three-wide opening flanked by raised pillars.
	gx := w / 2
	g.Clear(gx-1, 1, 0, gx+1, 3, 0)
	g.Fill(gx-2, 1, 0, gx-2, curtain+1, 0, m.floor)
	g.Fill(gx+2, 1, 0, gx+2, curtain+1, 0, m.floor)
	g.Set(gx-2, curtain+2, 0, torch)
	g.Set(gx+2, curtain+2, 0, torch)

	// Central keep, the tallest mass inside the bailey.
	kw, kl := max(5, w/3), max(5, l/3)
	kx0, kz0 := (w-kw)/2, (l-kl)/2
	keepH := h - 1
	g.Fill(kx0, 0, kz0, kx0+kw-1, 0, kz0+kl-1, m.floor)
	g.Walls(kx0, 1, kz0, kx0+kw-1, keepH-1, kz0+kl-1, m.wall)
	g.Fill(kx0, keepH, kz0, kx0+kw-1, keepH, kz0+kl-1, m.roof)

	kdx := w / 2
	g.Clear(kdx, 1, kz0, kdx, 2, kz0)
	g.Set(kdx, 1, kz0, door("north", "lower"))
	g.Set(kdx, 2, kz0, door("north", "upper"))

	// Keep windows under the roof line, phase drawn from the seed.
	if keepH >= 5 {
		for x := kx0 + 2 + r.Intn(2); x < kx0+kw-2; x += 2 {
			g.Set(x, keepH-2, kz0, m.accent)
			g.Set(x, keepH-2, kz0+kl-1, m.accent)
		}
	}

	// Gravel approach from the gate to the keep door, torch-lit.
	g.Fill(gx, 0, 1, gx, 0, kz0-1, gravel)
	for z := 2; z < kz0; z += 3 {
		g.Set(gx-1, 1, z, torch)
	}

	// Courtyard wildflowers on open ground.
	for i := 0; i < w*l/48; i++ {
		fx := 1 + r.Intn(w-2)
		fz := 1 + r.Intn(l-2)
		if g.Get(fx, 0, fz) == m.ground && g.Get(fx, 1, fz).IsAir() {
			f := poppy
			if r.Intn(2) == 0 {
				f = dandelion
			}
			g.Set(fx, 1, fz, f)
		}
	}

	lootChest(g, cfg, kx0+1, 1, kz0+1, "south", true)
	markerSign(g, cfg, "castle", kdx+1, 2, kz0+1, "south")
	return g, nil
}
