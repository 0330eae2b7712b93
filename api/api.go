// Package api exposes generation, rendering and editing as in-memory byte
// conversions, the shared surface of the wasm bridge and the CLI helpers.
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/tribixbite/craftmatic-sub003/gen"
	"github.com/tribixbite/craftmatic-sub003/render"
	"github.com/tribixbite/craftmatic-sub003/schem"
)

// GenerateSchem builds the named structure kind from a seed and returns it as
// gzip-framed schematic bytes.
func GenerateSchem(kind string, seed int64) ([]byte, error) {
	g, err := gen.Build(kind, gen.Config{Seed: seed})
	if err != nil {
		return nil, err
	}
	return schem.SaveGridToBytes(g)
}

// SchemToGLB renders schematic or bundle bytes to a binary glTF scene.
// Bundles come back as one laid-out node per entry.
func SchemToGLB(data []byte) ([]byte, error) {
	b, _, err := schem.UnmarshalBundle(data)
	if err == nil {
		return render.BundleToGLB(b)
	}
	if !errors.Is(err, schem.ErrNotBundle) {
		return nil, err
	}
	g, err := schem.LoadGridFromBytes(data)
	if err != nil {
		return nil, err
	}
	return render.GridToGLB(g)
}

// ApplyEdits loads schematic bytes, applies a JSON edit map of "x,y,z" keys
// to block state values and returns the re-encoded document. Edits land in
// key order so one blob always yields the same bytes; positions outside the
// grid are dropped like any out-of-bounds write.
func ApplyEdits(data, editsJSON []byte) ([]byte, error) {
	g, err := schem.LoadGridFromBytes(data)
	if err != nil {
		return nil, err
	}
	var edits map[string]string
	if err := json.Unmarshal(editsJSON, &edits); err != nil {
		return nil, fmt.Errorf("failed to parse edits: %w", err)
	}
	keys := make([]string, 0, len(edits))
	for k := range edits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		x, y, z, err := parsePos(k)
		if err != nil {
			return nil, err
		}
		s, err := schem.ParseBlockState(edits[k])
		if err != nil {
			return nil, fmt.Errorf("edit %q: %w", k, err)
		}
		g.Set(x, y, z, s)
	}
	return schem.SaveGridToBytes(g)
}

func parsePos(key string) (x, y, z int, err error) {
	parts := strings.Split(key, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("bad position %q, want \"x,y,z\"", key)
	}
	var c [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0, 0, 0, fmt.Errorf("bad position %q: %w", key, err)
		}
		c[i] = v
	}
	return c[0], c[1], c[2], nil
}

// DocSummary is the per-document shape Summary emits.
type DocSummary struct {
	Type          string `json:"type,omitempty"`
	Name          string `json:"name,omitempty"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Length        int    `json:"length"`
	PaletteSize   int    `json:"paletteSize"`
	NonAirBlocks  int    `json:"nonAirBlocks"`
	BlockEntities int    `json:"blockEntities"`
}

// BundleSummary is the shape Summary emits for a bundle.
type BundleSummary struct {
	Type        string       `json:"type"`
	Compression string       `json:"compression"`
	Entries     []DocSummary `json:"entries"`
}

// Summary inspects schematic or bundle bytes and reports their stats as JSON.
func Summary(data []byte) ([]byte, error) {
	b, comp, err := schem.UnmarshalBundle(data)
	if err == nil {
		out := BundleSummary{
			Type:        "bundle",
			Compression: comp.String(),
			Entries:     make([]DocSummary, 0, len(b.Entries)),
		}
		for _, e := range b.Entries {
			s, err := schem.Unmarshal(e.Raw)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", e.Name, err)
			}
			ds, err := summarize(s)
			if err != nil {
				return nil, fmt.Errorf("entry %q: %w", e.Name, err)
			}
			ds.Name = e.Name
			out.Entries = append(out.Entries, ds)
		}
		return json.Marshal(out)
	}
	if !errors.Is(err, schem.ErrNotBundle) {
		return nil, err
	}
	s, err := schem.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	ds, err := summarize(s)
	if err != nil {
		return nil, err
	}
	ds.Type = "schematic"
	return json.Marshal(ds)
}

func summarize(s *schem.Schematic) (DocSummary, error) {
	g, err := s.Grid()
	if err != nil {
		return DocSummary{}, err
	}
	return DocSummary{
		Width:         s.Width,
		Height:        s.Height,
		Length:        s.Length,
		PaletteSize:   len(s.Palette),
		NonAirBlocks:  g.CountNonAir(),
		BlockEntities: len(s.BlockEntities),
	}, nil
}
