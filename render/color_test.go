package render

import (
	"testing"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

func TestParseHexColor(t *testing.T) {
	rgba, err := ParseHexColor("#ff0080")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rgba != [4]float32{1, 0, 128.0 / 255, 1} {
		t.Fatalf("rgba = %v", rgba)
	}
	rgba, err = ParseHexColor("#00000080")
	if err != nil {
		t.Fatalf("parse with alpha: %v", err)
	}
	if rgba[3] != 128.0/255 {
		t.Fatalf("alpha = %v", rgba[3])
	}
	for _, bad := range []string{"", "ff0000", "#ff00", "#zzzzzz"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Fatalf("ParseHexColor(%q) accepted", bad)
		}
	}
}

func TestTableEntriesParse(t *testing.T) {
	for name, hex := range blockColors {
		if _, err := ParseHexColor(hex); err != nil {
			t.Fatalf("table entry %s: %v", name, err)
		}
	}
}

func TestColorOfKnownBlock(t *testing.T) {
	got := ColorOf(schem.Block("minecraft:stone"))
	want, _ := ParseHexColor(blockColors["minecraft:stone"])
	if got != want {
		t.Fatalf("stone = %v, want %v", got, want)
	}
	// Properties must not change the color.
	withProps := ColorOf(schem.NewBlockState("minecraft:glass", map[string]string{"waterlogged": "false"}))
	if withProps != ColorOf(schem.Block("minecraft:glass")) {
		t.Fatal("properties changed the color")
	}
	if withProps[3] >= 1 {
		t.Fatal("glass is opaque")
	}
}

func TestColorOfFallbackDeterministic(t *testing.T) {
	s := schem.Block("minecraft:end_stone")
	a := ColorOf(s)
	b := ColorOf(s)
	if a != b {
		t.Fatalf("fallback not deterministic: %v vs %v", a, b)
	}
	if a == ColorOf(schem.Block("minecraft:netherrack")) {
		t.Fatal("distinct unknown blocks collide")
	}
	if a[3] != 1 {
		t.Fatalf("fallback alpha = %v", a[3])
	}
}
