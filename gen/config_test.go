package gen

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "build.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Blocks.Wall != "minecraft:oak_planks" {
		t.Fatalf("default wall = %q", cfg.Blocks.Wall)
	}
	if len(cfg.Loot) != 3 {
		t.Fatalf("default loot has %d entries", len(cfg.Loot))
	}
}

func TestLoadConfigLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `seed: 11
width: 12
blocks:
  wall: minecraft:mud_bricks
loot:
  - id: minecraft:emerald
    count: 3
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed != 11 || cfg.Width != 12 {
		t.Fatalf("seed=%d width=%d", cfg.Seed, cfg.Width)
	}
	if cfg.Blocks.Wall != "minecraft:mud_bricks" {
		t.Fatalf("wall = %q", cfg.Blocks.Wall)
	}
	if cfg.Blocks.Floor != "minecraft:stone_bricks" {
		t.Fatalf("floor lost its default: %q", cfg.Blocks.Floor)
	}
	if len(cfg.Loot) != 1 || cfg.Loot[0].ID != "minecraft:emerald" {
		t.Fatalf("loot = %+v", cfg.Loot)
	}
}

func TestLoadConfigRejectsBadDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"unclosed block state", "blocks:\n  wall: \"minecraft:oak_planks[\"\n"},
		{"zero loot count", "loot:\n  - id: minecraft:bread\n    count: 0\n"},
		{"oversized width", "width: 40000\n"},
		{"loot without id", "loot:\n  - count: 4\n"},
		{"not yaml", "{{{\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tc.doc)); err == nil {
				t.Fatal("config accepted")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestValidateDimensionRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("negative width accepted")
	}
	cfg.Width = 32767
	if err := cfg.Validate(); err != nil {
		t.Fatalf("maximal width rejected: %v", err)
	}
}
