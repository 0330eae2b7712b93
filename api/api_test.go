package api

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

func genHouse(t *testing.T, seed int64) []byte {
	t.Helper()
	data, err := GenerateSchem("house", seed)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	return data
}

func TestGenerateSchemRoundTrip(t *testing.T) {
	g, err := schem.LoadGridFromBytes(genHouse(t, 7))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if w, h, l := g.Dimensions(); w != 9 || h != 8 || l != 9 {
		t.Fatalf("house is %dx%dx%d", w, h, l)
	}
	if g.CountNonAir() == 0 {
		t.Fatal("house is empty")
	}
}

func TestGenerateSchemUnknownKind(t *testing.T) {
	if _, err := GenerateSchem("bridge", 1); err == nil {
		t.Fatal("unknown kind generated")
	}
}

func TestGenerateSchemDeterministic(t *testing.T) {
	if !bytes.Equal(genHouse(t, 3), genHouse(t, 3)) {
		t.Fatal("same seed produced different bytes")
	}
}

func TestSchemToGLB(t *testing.T) {
	glb, err := SchemToGLB(genHouse(t, 1))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(glb) < 4 || string(glb[:4]) != "glTF" {
		t.Fatal("output is not binary glTF")
	}
}

func TestSchemToGLBBundle(t *testing.T) {
	var b schem.Bundle
	for i, kind := range []string{"house", "tower"} {
		data, err := GenerateSchem(kind, int64(i+1))
		if err != nil {
			t.Fatalf("generate %s: %v", kind, err)
		}
		g, err := schem.LoadGridFromBytes(data)
		if err != nil {
			t.Fatalf("load %s: %v", kind, err)
		}
		if err := b.AddGrid(kind, g); err != nil {
			t.Fatalf("add %s: %v", kind, err)
		}
	}
	packed, err := b.Marshal(schem.BundleZstd)
	if err != nil {
		t.Fatalf("marshal bundle: %v", err)
	}
	glb, err := SchemToGLB(packed)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(glb) < 4 || string(glb[:4]) != "glTF" {
		t.Fatal("output is not binary glTF")
	}
}

func TestApplyEdits(t *testing.T) {
	g, err := schem.NewGrid(4, 4, 4)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	data, err := schem.SaveGridToBytes(g)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	edits := []byte(`{"1,1,1": "minecraft:stone", "2,2,2": "minecraft:oak_door[facing=north,half=lower]", "99,99,99": "minecraft:stone"}`)
	out, err := ApplyEdits(data, edits)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, err := schem.LoadGridFromBytes(out)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Get(1, 1, 1).Name() != "minecraft:stone" {
		t.Fatalf("cell (1,1,1) holds %s", got.Get(1, 1, 1))
	}
	if f, _ := got.Get(2, 2, 2).Property("facing"); f != "north" {
		t.Fatalf("door facing = %q", f)
	}
}

func TestApplyEditsStableAcrossRuns(t *testing.T) {
	data := genHouse(t, 2)
	edits := []byte(`{"0,0,0": "minecraft:gold_block", "1,0,0": "minecraft:iron_block", "2,0,0": "minecraft:diamond_block"}`)
	a, err := ApplyEdits(data, edits)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	b, err := ApplyEdits(data, edits)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("same edits produced different bytes")
	}
}

func TestApplyEditsRejectsBadInput(t *testing.T) {
	data := genHouse(t, 1)
	cases := []struct {
		name  string
		edits string
	}{
		{"not json", "{"},
		{"short position", `{"1,2": "minecraft:stone"}`},
		{"letters", `{"a,b,c": "minecraft:stone"}`},
		{"empty state", `{"1,1,1": ""}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ApplyEdits(data, []byte(tc.edits)); err == nil {
				t.Fatal("edits accepted")
			}
		})
	}
}

func TestSummarySchematic(t *testing.T) {
	out, err := Summary(genHouse(t, 5))
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var ds DocSummary
	if err := json.Unmarshal(out, &ds); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ds.Type != "schematic" || ds.Width != 9 || ds.Height != 8 || ds.Length != 9 {
		t.Fatalf("summary = %+v", ds)
	}
	if ds.NonAirBlocks == 0 || ds.BlockEntities != 2 {
		t.Fatalf("summary = %+v", ds)
	}
}

func TestSummaryBundle(t *testing.T) {
	var b schem.Bundle
	for _, name := range []string{"a", "b"} {
		g, err := schem.NewGrid(2, 2, 2)
		if err != nil {
			t.Fatalf("grid: %v", err)
		}
		g.Set(0, 0, 0, schem.Block("minecraft:stone"))
		if err := b.AddGrid(name, g); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	packed, err := b.Marshal(schem.BundleZlib)
	if err != nil {
		t.Fatalf("marshal bundle: %v", err)
	}
	out, err := Summary(packed)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	var bs BundleSummary
	if err := json.Unmarshal(out, &bs); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if bs.Type != "bundle" || bs.Compression != "zlib" || len(bs.Entries) != 2 {
		t.Fatalf("summary = %+v", bs)
	}
	if bs.Entries[0].Name != "a" || bs.Entries[0].NonAirBlocks != 1 {
		t.Fatalf("entry = %+v", bs.Entries[0])
	}
}

func TestSummaryGarbage(t *testing.T) {
	if _, err := Summary([]byte("not a document")); err == nil {
		t.Fatal("garbage summarized")
	}
}
