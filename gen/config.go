// Package gen builds voxel structures into grids. Builders touch grids only
// through the public mutation surface (Set, Fill, Walls, AddContainer,
// AddSign), are deterministic for a given seed and config, and stamp every
// build with a marker sign naming the kind and seed.
package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

// Config drives the builders. Zero fields fall back to per-kind defaults, so
// an empty config still builds.
type Config struct {
	Seed   int64 `yaml:"seed"`
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Length int   `yaml:"length"`

	Blocks BlockSet   `yaml:"blocks"`
	Loot   []LootItem `yaml:"loot"`
}

// BlockSet names the materials a builder uses. Entries take the canonical
// block state form, properties included.
type BlockSet struct {
	Wall   string `yaml:"wall"`
	Floor  string `yaml:"floor"`
	Roof   string `yaml:"roof"`
	Accent string `yaml:"accent"`
	Ground string `yaml:"ground"`
	Trunk  string `yaml:"trunk"`
	Leaves string `yaml:"leaves"`
}

// LootItem is one chest slot of the builders' loot chests. Slots are assigned
// in table order.
type LootItem struct {
	ID    string `yaml:"id"`
	Count int    `yaml:"count"`
}

// DefaultConfig returns the material and loot table the builders use when a
// config names nothing.
func DefaultConfig() Config {
	return Config{
		Seed: 1,
		Blocks: BlockSet{
			Wall:   "minecraft:oak_planks",
			Floor:  "minecraft:stone_bricks",
			Roof:   "minecraft:dark_oak_planks",
			Accent: "minecraft:glass",
			Ground: "minecraft:grass_block",
			Trunk:  "minecraft:oak_log[axis=y]",
			Leaves: "minecraft:oak_leaves[persistent=true]",
		},
		Loot: []LootItem{
			{ID: "minecraft:bread", Count: 6},
			{ID: "minecraft:torch", Count: 16},
			{ID: "minecraft:iron_ingot", Count: 4},
		},
	}
}

// LoadConfig reads a YAML config, layering it over the defaults. An empty
// path returns the defaults untouched.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("gen: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("gen: %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills material and loot fields the config left empty.
// Dimensions stay zero here; each builder has its own default footprint.
func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.Blocks.Wall == "" {
		c.Blocks.Wall = def.Blocks.Wall
	}
	if c.Blocks.Floor == "" {
		c.Blocks.Floor = def.Blocks.Floor
	}
	if c.Blocks.Roof == "" {
		c.Blocks.Roof = def.Blocks.Roof
	}
	if c.Blocks.Accent == "" {
		c.Blocks.Accent = def.Blocks.Accent
	}
	if c.Blocks.Ground == "" {
		c.Blocks.Ground = def.Blocks.Ground
	}
	if c.Blocks.Trunk == "" {
		c.Blocks.Trunk = def.Blocks.Trunk
	}
	if c.Blocks.Leaves == "" {
		c.Blocks.Leaves = def.Blocks.Leaves
	}
	if len(c.Loot) == 0 {
		c.Loot = def.Loot
	}
}

// Validate rejects configs no builder could honor.
func (c Config) Validate() error {
	for _, d := range []struct {
		name string
		v    int
	}{
		{"width", c.Width}, {"height", c.Height}, {"length", c.Length},
	} {
		if d.v < 0 || d.v > 32767 {
			return fmt.Errorf("%s %d out of range", d.name, d.v)
		}
	}
	if _, err := c.materials(); err != nil {
		return err
	}
	for i, l := range c.Loot {
		if l.ID == "" {
			return fmt.Errorf("loot entry %d has no id", i)
		}
		if l.Count < 1 || l.Count > 64 {
			return fmt.Errorf("loot entry %d count %d out of range", i, l.Count)
		}
	}
	return nil
}

// materials parses the configured block names into states.
type materials struct {
	wall, floor, roof, accent, ground, trunk, leaves schem.BlockState
}

func (c Config) materials() (materials, error) {
	var m materials
	for _, f := range []struct {
		name string
		src  string
		dst  *schem.BlockState
	}{
		{"wall", c.Blocks.Wall, &m.wall},
		{"floor", c.Blocks.Floor, &m.floor},
		{"roof", c.Blocks.Roof, &m.roof},
		{"accent", c.Blocks.Accent, &m.accent},
		{"ground", c.Blocks.Ground, &m.ground},
		{"trunk", c.Blocks.Trunk, &m.trunk},
		{"leaves", c.Blocks.Leaves, &m.leaves},
	} {
		s, err := schem.ParseBlockState(f.src)
		if err != nil {
			return materials{}, fmt.Errorf("block %s: %w", f.name, err)
		}
		*f.dst = s
	}
	return m, nil
}
