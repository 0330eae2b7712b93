package gen

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

func build(t *testing.T, kind string, seed int64) *schem.Grid {
	t.Helper()
	g, err := Build(kind, Config{Seed: seed})
	if err != nil {
		t.Fatalf("build %s: %v", kind, err)
	}
	return g
}

func marshalGrid(t *testing.T, g *schem.Grid) []byte {
	t.Helper()
	raw, err := schem.Snapshot(g).Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return raw
}

func findEntity(g *schem.Grid, want func(schem.BlockEntity) bool) (schem.BlockEntity, bool) {
	for _, e := range g.BlockEntities() {
		if want(e) {
			return e, true
		}
	}
	return schem.BlockEntity{}, false
}

func TestKindsStable(t *testing.T) {
	want := []string{"castle", "garden", "house", "tower", "village"}
	if got := Kinds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestBuildUnknownKind(t *testing.T) {
	if _, err := Build("pyramid", Config{}); err == nil {
		t.Fatal("unknown kind built")
	}
}

func TestBuildersDeterministic(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			a := marshalGrid(t, build(t, kind, 7))
			b := marshalGrid(t, build(t, kind, 7))
			if !bytes.Equal(a, b) {
				t.Fatal("same seed produced different documents")
			}
			c := marshalGrid(t, build(t, kind, 8))
			if bytes.Equal(a, c) {
				t.Fatal("different seeds produced identical documents")
			}
		})
	}
}

func TestBuildEmptyConfig(t *testing.T) {
	g := build(t, "house", 0)
	w, h, l := g.Dimensions()
	if w != 9 || h != 8 || l != 9 {
		t.Fatalf("default house is %dx%dx%d", w, h, l)
	}
	if g.CountNonAir() == 0 {
		t.Fatal("house is empty")
	}
}

func TestBuildClampsBelowMinimum(t *testing.T) {
	g, err := Build("tower", Config{Seed: 1, Width: 1, Height: 1, Length: 1})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if w, h, l := g.Dimensions(); w != 5 || h != 7 || l != 5 {
		t.Fatalf("clamped tower is %dx%dx%d", w, h, l)
	}
}

func TestMarkerSign(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind, func(t *testing.T) {
			g := build(t, kind, 42)
			sign, ok := findEntity(g, schem.BlockEntity.IsSign)
			if !ok {
				t.Fatal("no sign entity")
			}
			want := [4]string{"Craftmatic", "v1", kind, "seed:42"}
			if sign.Lines != want {
				t.Fatalf("sign lines %q, want %q", sign.Lines, want)
			}
			if s := g.Get(sign.X, sign.Y, sign.Z); s.Name() != "minecraft:oak_wall_sign" {
				t.Fatalf("sign cell holds %s", s)
			}
		})
	}
}

func TestLootChestStocked(t *testing.T) {
	g := build(t, "house", 5)
	chest, ok := findEntity(g, schem.BlockEntity.IsContainer)
	if !ok {
		t.Fatal("no container entity")
	}
	if len(chest.Items) != 3 {
		t.Fatalf("chest holds %d stacks", len(chest.Items))
	}
	if chest.Items[0] != (schem.Item{Slot: 0, ID: "minecraft:bread", Count: 6}) {
		t.Fatalf("first slot = %+v", chest.Items[0])
	}
}

func TestHouseLayout(t *testing.T) {
	g := build(t, "house", 3)
	w, h, l := g.Dimensions()
	if got := g.Get(w/2, 1, 0).Name(); got != "minecraft:oak_door" {
		t.Fatalf("door cell holds %s", got)
	}
	half, _ := g.Get(w/2, 2, 0).Property("half")
	if half != "upper" {
		t.Fatalf("upper door half = %q", half)
	}
	if got := g.Get(w/2, h-1, l/2).Name(); got != "minecraft:dark_oak_planks" {
		t.Fatalf("roof ridge holds %s", got)
	}
	if got := g.Get(0, 1, 0).Name(); got != "minecraft:oak_planks" {
		t.Fatalf("wall corner holds %s", got)
	}
}

func TestHouseCustomMaterials(t *testing.T) {
	g, err := Build("house", Config{Seed: 3, Blocks: BlockSet{Wall: "minecraft:sandstone"}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if got := g.Get(0, 1, 0).Name(); got != "minecraft:sandstone" {
		t.Fatalf("wall holds %s", got)
	}
	if got := g.Get(0, 0, 0).Name(); got != "minecraft:stone_bricks" {
		t.Fatalf("floor lost its default, holds %s", got)
	}
}

func TestTowerLayout(t *testing.T) {
	g := build(t, "tower", 9)
	w, h, l := g.Dimensions()
	deck := h - 2
	if got := g.Get(w/2, deck/2, l-2).Name(); got != "minecraft:ladder" {
		t.Fatalf("ladder column holds %s", got)
	}
	if !g.Get(w/2, deck, l-2).IsAir() {
		t.Fatal("deck hatch is blocked")
	}
	if got := g.Get(1, deck, 1).Name(); got != "minecraft:stone_bricks" {
		t.Fatalf("deck slab holds %s", got)
	}
	// Merlons alternate, so exactly one of two neighboring rim cells is
	// filled whichever parity the seed drew.
	a := g.Get(0, h-1, 0).IsAir()
	b := g.Get(1, h-1, 0).IsAir()
	if a == b {
		t.Fatal("parapet rim is not crenellated")
	}
}

func TestCastleLayout(t *testing.T) {
	g := build(t, "castle", 11)
	w, h, l := g.Dimensions()
	gx := w / 2
	for x := gx - 1; x <= gx+1; x++ {
		if !g.Get(x, 1, 0).IsAir() {
			t.Fatalf("gate blocked at x=%d", x)
		}
	}
	if got := g.Get(gx-4, 1, 0).Name(); got != "minecraft:stone_bricks" {
		t.Fatalf("curtain wall holds %s", got)
	}
	if got := g.Get(w/2, h-1, l/2).Name(); got != "minecraft:dark_oak_planks" {
		t.Fatalf("keep roof holds %s", got)
	}
	chest, ok := findEntity(g, schem.BlockEntity.IsContainer)
	if !ok {
		t.Fatal("no treasury chest")
	}
	if chest.ID != "minecraft:trapped_chest" {
		t.Fatalf("treasury chest is %s", chest.ID)
	}
	if got := g.Get(chest.X, chest.Y, chest.Z).Name(); got != "minecraft:trapped_chest" {
		t.Fatalf("treasury cell holds %s", got)
	}
}

func TestGardenLayout(t *testing.T) {
	g := build(t, "garden", 13)
	w, _, l := g.Dimensions()
	for _, c := range [][2]int{{0, 0}, {w - 1, 0}, {0, l - 1}, {w - 1, l - 1}, {w / 2, l / 2}} {
		if g.Get(c[0], 0, c[1]).IsAir() {
			t.Fatalf("terrain hole at (%d,0,%d)", c[0], c[1])
		}
	}
	var trunks, leaves bool
	for _, s := range g.Palette() {
		switch s.Name() {
		case "minecraft:oak_log":
			trunks = true
		case "minecraft:oak_leaves":
			leaves = true
		}
	}
	if !trunks || !leaves {
		t.Fatalf("grove missing trunks=%v leaves=%v", trunks, leaves)
	}
}

func TestVillageLayout(t *testing.T) {
	g := build(t, "village", 17)
	w, _, l := g.Dimensions()
	cx, cz := w/2, l/2
	if got := g.Get(cx, 1, cz).Name(); got != "minecraft:water" {
		t.Fatalf("well holds %s", got)
	}
	if got := g.Get(cx/2+2, 0, cz).Name(); got != "minecraft:gravel" {
		t.Fatalf("path holds %s", got)
	}
	if got := g.Get(cx/2, 3, cz-1).Name(); got != "minecraft:torch" {
		t.Fatalf("lamp post holds %s", got)
	}
	doors := 0
	for y := 1; y <= 2; y++ {
		for z := 0; z < l; z++ {
			for x := 0; x < w; x++ {
				if g.Get(x, y, z).Name() == "minecraft:oak_door" {
					doors++
				}
			}
		}
	}
	if doors != 8 {
		t.Fatalf("found %d door cells, want 8", doors)
	}
}
