package render

import (
	"fmt"
	"strconv"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

// blockColors maps block names to display colors. Properties never change a
// block's color, so keys are names without the property suffix.
var blockColors = map[string]string{
	"minecraft:stone":             "#7f7f7f",
	"minecraft:stone_bricks":      "#737373",
	"minecraft:cobblestone":       "#6e6e6e",
	"minecraft:mossy_cobblestone": "#5f6e55",
	"minecraft:gravel":            "#84807b",
	"minecraft:dirt":              "#8a5a3c",
	"minecraft:grass_block":       "#5d923a",
	"minecraft:sand":              "#dbcf9e",
	"minecraft:oak_planks":        "#b8945f",
	"minecraft:dark_oak_planks":   "#4f3218",
	"minecraft:spruce_planks":     "#7a5a35",
	"minecraft:oak_log":           "#6d5532",
	"minecraft:oak_leaves":        "#3c7a1eCC",
	"minecraft:glass":             "#d8eff066",
	"minecraft:glass_pane":        "#d8eff066",
	"minecraft:bricks":            "#96614c",
	"minecraft:oak_door":          "#a07b4a",
	"minecraft:oak_fence":         "#b8945f",
	"minecraft:torch":             "#ffd966",
	"minecraft:ladder":            "#a8793f",
	"minecraft:chest":             "#9a6b2f",
	"minecraft:trapped_chest":     "#9a6b2f",
	"minecraft:oak_wall_sign":     "#c7a36a",
	"minecraft:water":             "#3d57d699",
	"minecraft:poppy":             "#c0392b",
	"minecraft:dandelion":         "#e5d23a",
	"minecraft:oak_sapling":       "#4a7a2a",
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa" into normalized RGBA.
func ParseHexColor(hex string) ([4]float32, error) {
	if len(hex) == 0 || hex[0] != '#' {
		return [4]float32{}, fmt.Errorf("render: invalid hex color %q", hex)
	}
	h := hex[1:]
	var r, g, b, a uint64
	var err error
	switch len(h) {
	case 6:
		r, err = strconv.ParseUint(h[0:2], 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(h[2:4], 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(h[4:6], 16, 8)
		}
		a = 255
	case 8:
		r, err = strconv.ParseUint(h[0:2], 16, 8)
		if err == nil {
			g, err = strconv.ParseUint(h[2:4], 16, 8)
		}
		if err == nil {
			b, err = strconv.ParseUint(h[4:6], 16, 8)
		}
		if err == nil {
			a, err = strconv.ParseUint(h[6:8], 16, 8)
		}
	default:
		return [4]float32{}, fmt.Errorf("render: invalid hex color length %q", hex)
	}
	if err != nil {
		return [4]float32{}, err
	}
	return [4]float32{float32(r) / 255, float32(g) / 255, float32(b) / 255, float32(a) / 255}, nil
}

// ColorOf returns the display color for a state. Unknown blocks get a
// deterministic color derived from the name hash, so every material stays
// distinguishable without a table entry.
func ColorOf(s schem.BlockState) [4]float32 {
	if hex, ok := blockColors[s.Name()]; ok {
		if rgba, err := ParseHexColor(hex); err == nil {
			return rgba
		}
	}
	h := xxhash.Sum64String(s.Name())
	return [4]float32{
		0.25 + float32(h&0xFF)/512,
		0.25 + float32((h>>8)&0xFF)/512,
		0.25 + float32((h>>16)&0xFF)/512,
		1,
	}
}
