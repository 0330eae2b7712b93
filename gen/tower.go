package gen

import (
	"github.com/tribixbite/craftmatic-sub003/schem"
)

// BuildTower raises a square watchtower: a hollow shaft with a ladder column
// and arrow slits, an open deck behind a crenellated parapet, and a supply
// chest at the base.
func BuildTower(cfg Config) (*schem.Grid, error) {
	m, err := cfg.materials()
	if err != nil {
		return nil, err
	}
	w, h, l := dims(cfg, 7, 13, 7, 5, 7, 5)
	g, err := schem.NewGrid(w, h, l)
	if err != nil {
		return nil, err
	}
	r := rng(cfg)

	deck := h - 2
	g.Fill(0, 0, 0, w-1, 0, l-1, m.floor)
	g.Walls(0, 1, 0, w-1, deck-1, l-1, m.wall)
	g.Fill(0, deck, 0, w-1, deck, l-1, m.floor)
	crenellate(g, h-1, 0, 0, w-1, l-1, r.Intn(2), m.wall)

	// Door on the z=0 face.
	dx := w / 2
	g.Clear(dx, 1, 0, dx, 2, 0)
	g.Set(dx, 1, 0, door("north", "lower"))
	g.Set(dx, 2, 0, door("north", "upper"))

	// Arrow slits every third row, each on a face drawn from the seed.
	for y := 3; y < deck-1; y += 3 {
		switch r.Intn(4) {
		case 0:
			g.Set(dx, y, 0, m.accent)
		case 1:
			g.Set(dx, y, l-1, m.accent)
		case 2:
			g.Set(0, y, l/2, m.accent)
		case 3:
			g.Set(w-1, y, l/2, m.accent)
		}
	}

	// Ladder up the back wall, through a hatch in the deck.
	for y := 1; y < deck; y++ {
		g.Set(dx, y, l-2, ladderNorth)
	}
	g.Clear(dx, deck, l-2, dx, deck, l-2)

	g.Set(1, h-1, 1, torch)
	g.Set(w-2, h-1, 1, torch)
	g.Set(1, h-1, l-2, torch)
	g.Set(w-2, h-1, l-2, torch)

	lootChest(g, cfg, 1, 1, 1, "east", false)
	markerSign(g, cfg, "tower", dx+1, 1, 1, "south")
	return g, nil
}
