package gen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

var builders = map[string]func(Config) (*schem.Grid, error){
	"house":   BuildHouse,
	"tower":   BuildTower,
	"castle":  BuildCastle,
	"garden":  BuildGarden,
	"village": BuildVillage,
}

// Kinds lists the available structure kinds in stable order.
func Kinds() []string {
	kinds := make([]string, 0, len(builders))
	for k := range builders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Build fills cfg's empty fields with defaults, validates it and runs the
// builder registered under kind.
func Build(kind string, cfg Config) (*schem.Grid, error) {
	b, ok := builders[kind]
	if !ok {
		return nil, fmt.Errorf("gen: unknown kind %q, have %v", kind, Kinds())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("gen: config: %w", err)
	}
	return b(cfg)
}

// rng is the only randomness source builders may draw from; seeding it from
// the config keeps every build reproducible.
func rng(cfg Config) *rand.Rand {
	return rand.New(rand.NewSource(cfg.Seed))
}

// dims applies a builder's default footprint where the config left zeros and
// clamps each axis to the smallest size the builder can shape.
func dims(cfg Config, defW, defH, defL, minW, minH, minL int) (int, int, int) {
	w, h, l := defW, defH, defL
	if cfg.Width > 0 {
		w = cfg.Width
	}
	if cfg.Height > 0 {
		h = cfg.Height
	}
	if cfg.Length > 0 {
		l = cfg.Length
	}
	return max(w, minW), max(h, minH), max(l, minL)
}

// markerSign stamps a build with its kind and seed.
func markerSign(g *schem.Grid, cfg Config, kind string, x, y, z int, facing string) {
	g.AddSign(x, y, z, facing, []string{"Craftmatic", "v1", kind, fmt.Sprintf("seed:%d", cfg.Seed)})
}

// lootChest places a chest stocked from the config loot table, slots assigned
// in table order.
func lootChest(g *schem.Grid, cfg Config, x, y, z int, facing string, trapped bool) {
	items := make([]schem.Item, len(cfg.Loot))
	for i, l := range cfg.Loot {
		items[i] = schem.Item{Slot: byte(i), ID: l.ID, Count: byte(l.Count)}
	}
	g.AddContainer(x, y, z, facing, items, trapped)
}

// perimeter visits every cell of the rectangle outline exactly once.
func perimeter(x0, z0, x1, z1 int, visit func(x, z int)) {
	for x := x0; x <= x1; x++ {
		visit(x, z0)
		if z1 != z0 {
			visit(x, z1)
		}
	}
	for z := z0 + 1; z < z1; z++ {
		visit(x0, z)
		if x1 != x0 {
			visit(x1, z)
		}
	}
}

// crenellate drops merlons on alternating outline cells of a ring.
func crenellate(g *schem.Grid, y, x0, z0, x1, z1, parity int, s schem.BlockState) {
	perimeter(x0, z0, x1, z1, func(x, z int) {
		if (x+z)%2 == parity {
			g.Set(x, y, z, s)
		}
	})
}

// Fixture states shared by the builders. Structural materials come from the
// config; these are the fixed trimmings.
var (
	torch       = schem.Block("minecraft:torch")
	gravel      = schem.Block("minecraft:gravel")
	water       = schem.Block("minecraft:water")
	poppy       = schem.Block("minecraft:poppy")
	dandelion   = schem.Block("minecraft:dandelion")
	ladderNorth = schem.NewBlockState("minecraft:ladder", map[string]string{"facing": "north"})
)

func door(facing, half string) schem.BlockState {
	return schem.NewBlockState("minecraft:oak_door", map[string]string{"facing": facing, "half": half})
}
