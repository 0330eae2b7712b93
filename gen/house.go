package gen

import (
	"github.com/tribixbite/craftmatic-sub003/schem"
)

// BuildHouse raises a gabled cottage: stone floor, walled shell with a front
// door and glass windows, a pitched roof, and a stocked chest plus the marker
// sign inside.
func BuildHouse(cfg Config) (*schem.Grid, error) {
	m, err := cfg.materials()
	if err != nil {
		return nil, err
	}
	w, h, l := dims(cfg, 9, 8, 9, 5, 5, 5)
	g, err := schem.NewGrid(w, h, l)
	if err != nil {
		return nil, err
	}
	r := rng(cfg)

	// The roof slopes converge two columns per layer from each side; the
	// walls get whatever height remains below them.
	roofLayers := (w + 3) / 4
	wallTop := max(2, h-1-roofLayers)

	g.Fill(0, 0, 0, w-1, 0, l-1, m.floor)
	g.Walls(0, 1, 0, w-1, wallTop, l-1, m.wall)

	// Front door, cut into the z=0 face.
	dx := w / 2
	g.Clear(dx, 1, 0, dx, 2, 0)
	g.Set(dx, 1, 0, door("north", "lower"))
	g.Set(dx, 2, 0, door("north", "upper"))

	// Window band at eye height; the phase shifts with the seed.
	if wallTop >= 3 {
		phase := r.Intn(2)
		for z := 2 + phase; z < l-2; z += 2 {
			g.Set(0, 2, z, m.accent)
			g.Set(w-1, 2, z, m.accent)
		}
		for x := 2 + phase; x < w-2; x += 2 {
			if x != dx {
				g.Set(x, 2, 0, m.accent)
			}
			g.Set(x, 2, l-1, m.accent)
		}
	}

	// Gable roof: two-column slopes, wall-material gables closing the z
	// faces, a ridge fill once the slopes meet.
	x0, x1 := 0, w-1
	for y := wallTop + 1; y < h; y++ {
		if x1-x0 <= 2 {
			g.Fill(x0, y, 0, x1, y, l-1, m.roof)
			break
		}
		g.Fill(x0, y, 0, x0+1, y, l-1, m.roof)
		g.Fill(x1-1, y, 0, x1, y, l-1, m.roof)
		g.Fill(x0+2, y, 0, x1-2, y, 0, m.wall)
		g.Fill(x0+2, y, l-1, x1-2, y, l-1, m.wall)
		x0 += 2
		x1 -= 2
	}

	g.Set(1, 2, 1, torch)
	g.Set(w-2, 2, l-2, torch)
	lootChest(g, cfg, 1, 1, l-2, "south", false)
	markerSign(g, cfg, "house", dx+1, 2, 1, "south")
	return g, nil
}
