package render

import (
	"testing"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

var stone = schem.Block("minecraft:stone")

func mustGrid(t *testing.T, w, h, l int) *schem.Grid {
	t.Helper()
	g, err := schem.NewGrid(w, h, l)
	if err != nil {
		t.Fatalf("NewGrid(%d,%d,%d): %v", w, h, l, err)
	}
	return g
}

func TestMeshEmptyGrid(t *testing.T) {
	m := BuildMesh(mustGrid(t, 4, 4, 4))
	if len(m.Vertices) != 0 || len(m.Indices) != 0 {
		t.Fatalf("empty grid meshed to %d vertices, %d indices", len(m.Vertices), len(m.Indices))
	}
}

func TestMeshLoneVoxel(t *testing.T) {
	g := mustGrid(t, 3, 3, 3)
	g.Set(1, 1, 1, stone)
	m := BuildMesh(g)
	// 6 faces, 4 vertices and 2 triangles each.
	if len(m.Vertices) != 24 {
		t.Fatalf("%d vertices, want 24", len(m.Vertices))
	}
	if len(m.Indices) != 36 {
		t.Fatalf("%d indices, want 36", len(m.Indices))
	}
	for i, v := range m.Vertices {
		if m.States[v.State] != stone {
			t.Fatalf("vertex %d carries %q", i, m.States[v.State])
		}
		for axis, c := range v.Position {
			if c < 1 || c > 2 {
				t.Fatalf("vertex %d axis %d at %v, outside the unit cell", i, axis, c)
			}
		}
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestMeshMergesRuns(t *testing.T) {
	g := mustGrid(t, 4, 1, 1)
	for x := 0; x < 4; x++ {
		g.Set(x, 0, 0, stone)
	}
	// A 4x1x1 bar of one material still meshes to exactly 6 quads.
	m := BuildMesh(g)
	if len(m.Vertices) != 24 {
		t.Fatalf("%d vertices, want 24", len(m.Vertices))
	}
}

func TestMeshHidesSharedFaces(t *testing.T) {
	g := mustGrid(t, 2, 1, 1)
	g.Set(0, 0, 0, stone)
	g.Set(1, 0, 0, schem.Block("minecraft:oak_planks"))
	// Two different materials share one hidden face pair: 10 visible quads.
	m := BuildMesh(g)
	if len(m.Vertices) != 40 {
		t.Fatalf("%d vertices, want 40", len(m.Vertices))
	}
}

func TestMeshStatesMatchPalette(t *testing.T) {
	g := mustGrid(t, 2, 1, 1)
	g.Set(0, 0, 0, stone)
	m := BuildMesh(g)
	if len(m.States) != 2 || !m.States[0].IsAir() || m.States[1] != stone {
		t.Fatalf("states = %v", m.States)
	}
}
