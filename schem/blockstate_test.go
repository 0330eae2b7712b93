package schem

import "testing"

func TestBlockStateCanonical(t *testing.T) {
	a := NewBlockState("minecraft:oak_door", map[string]string{"half": "lower", "facing": "north"})
	b := NewBlockState("minecraft:oak_door", map[string]string{"facing": "north", "half": "lower"})
	if a != b {
		t.Fatalf("property order leaked into identity: %q vs %q", a, b)
	}
	if a.String() != "minecraft:oak_door[facing=north,half=lower]" {
		t.Fatalf("canonical form = %q", a.String())
	}
	if a == NewBlockState("minecraft:oak_door", map[string]string{"facing": "south", "half": "lower"}) {
		t.Fatal("different property values compare equal")
	}
}

func TestParseBlockState(t *testing.T) {
	s, err := ParseBlockState("minecraft:oak_door[half=lower,facing=north]")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if s.String() != "minecraft:oak_door[facing=north,half=lower]" {
		t.Fatalf("parse did not canonicalize: %q", s.String())
	}
	plain, err := ParseBlockState("minecraft:stone")
	if err != nil {
		t.Fatalf("parse plain: %v", err)
	}
	if plain.Name() != "minecraft:stone" || plain.Properties() != nil {
		t.Fatalf("plain state = %q with props %v", plain.Name(), plain.Properties())
	}

	bad := []string{
		"",
		"[facing=north]",
		"minecraft:x[",
		"minecraft:x[]",
		"minecraft:x[a]",
		"minecraft:x[a=]",
		"minecraft:x[=b]",
		"minecraft:x[a=b,a=c]",
	}
	for _, in := range bad {
		if _, err := ParseBlockState(in); err == nil {
			t.Fatalf("parse(%q) accepted", in)
		}
	}
}

func TestAirIdentity(t *testing.T) {
	if !Air.IsAir() {
		t.Fatal("Air is not air")
	}
	if Block("minecraft:air") != Air {
		t.Fatal("propless air built by name differs from Air")
	}
	if Block("minecraft:stone").IsAir() {
		t.Fatal("stone is air")
	}
	parsed, err := ParseBlockState("minecraft:air")
	if err != nil || parsed != Air {
		t.Fatalf("parsed air = %q, %v", parsed, err)
	}
}

func TestDomainStates(t *testing.T) {
	s := WallSign("east")
	if s.Name() != "minecraft:oak_wall_sign" {
		t.Fatalf("wall sign name = %q", s.Name())
	}
	if v, ok := s.Property("facing"); !ok || v != "east" {
		t.Fatalf("wall sign facing = %q, %v", v, ok)
	}
	c := Chest("", true)
	if c.Name() != "minecraft:trapped_chest" {
		t.Fatalf("trapped chest name = %q", c.Name())
	}
	if v, _ := c.Property("facing"); v != "north" {
		t.Fatalf("default facing = %q, want north", v)
	}
}
