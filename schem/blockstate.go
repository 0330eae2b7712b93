// Package schem models voxel structures the way schematic files store them: a
// dense block grid with a grid-owned palette, block entities for containers
// and signs, and the palette-compressed document framing used on disk.
package schem

import (
	"fmt"
	"sort"
	"strings"
)

// BlockState identifies a block: a namespaced name plus named property
// key/value pairs. States are canonical by construction (properties sorted by
// key and rendered once), so == and map keys compare whole canonical values.
type BlockState struct {
	name  string
	props string
}

// Air is the default content of every grid cell and always holds palette id 0.
var Air = BlockState{name: "minecraft:air"}

// NewBlockState builds a state from a name and optional properties.
func NewBlockState(name string, props map[string]string) BlockState {
	if len(props) == 0 {
		return BlockState{name: name}
	}
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var sb strings.Builder
	sb.WriteByte('[')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(props[k])
	}
	sb.WriteByte(']')
	return BlockState{name: name, props: sb.String()}
}

// Block is shorthand for a state without properties.
func Block(name string) BlockState {
	return BlockState{name: name}
}

// ParseBlockState inverts String: "minecraft:stone" or
// "minecraft:oak_door[facing=north,half=lower]".
func ParseBlockState(s string) (BlockState, error) {
	if s == "" {
		return BlockState{}, fmt.Errorf("schem: empty block state")
	}
	i := strings.IndexByte(s, '[')
	if i < 0 {
		return BlockState{name: s}, nil
	}
	if i == 0 || !strings.HasSuffix(s, "]") {
		return BlockState{}, fmt.Errorf("schem: malformed block state %q", s)
	}
	name, body := s[:i], s[i+1:len(s)-1]
	if body == "" {
		return BlockState{}, fmt.Errorf("schem: empty property list in %q", s)
	}
	props := make(map[string]string)
	for _, kv := range strings.Split(body, ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" || v == "" {
			return BlockState{}, fmt.Errorf("schem: bad property %q in %q", kv, s)
		}
		if _, dup := props[k]; dup {
			return BlockState{}, fmt.Errorf("schem: duplicate property %q in %q", k, s)
		}
		props[k] = v
	}
	return NewBlockState(name, props), nil
}

// Name returns the namespaced block name without properties.
func (s BlockState) Name() string {
	return s.name
}

// String returns the canonical form used as the palette key on disk.
func (s BlockState) String() string {
	return s.name + s.props
}

func (s BlockState) IsAir() bool {
	return s == Air
}

// Properties returns a fresh map of the property pairs.
func (s BlockState) Properties() map[string]string {
	if s.props == "" {
		return nil
	}
	body := s.props[1 : len(s.props)-1]
	props := make(map[string]string)
	for _, kv := range strings.Split(body, ",") {
		k, v, _ := strings.Cut(kv, "=")
		props[k] = v
	}
	return props
}

// Property looks up a single property value.
func (s BlockState) Property(key string) (string, bool) {
	v, ok := s.Properties()[key]
	return v, ok
}

// Chest returns the state the container helpers place. Facing defaults to
// north when empty.
func Chest(facing string, trapped bool) BlockState {
	name := "minecraft:chest"
	if trapped {
		name = "minecraft:trapped_chest"
	}
	return NewBlockState(name, map[string]string{"facing": normalizeFacing(facing)})
}

// WallSign returns the state the sign helper places.
func WallSign(facing string) BlockState {
	return NewBlockState("minecraft:oak_wall_sign", map[string]string{"facing": normalizeFacing(facing)})
}

func normalizeFacing(f string) string {
	if f == "" {
		return "north"
	}
	return f
}
