// Package render turns grids into viewer-facing artifacts: greedy triangle
// meshes, binary glTF scenes and top-down PNG previews. Everything here works
// off the grid's read-only projections and never mutates.
package render

import (
	"github.com/tribixbite/craftmatic-sub003/schem"
)

// Vertex is one corner of a mesh quad. State indexes Mesh.States.
type Vertex struct {
	Position [3]float32
	State    int
}

// Mesh is an indexed triangle mesh of a grid's visible faces. States holds the
// block states the vertices reference, in the source grid's palette order, so
// a mesh stays renderable after the grid it came from is gone.
type Mesh struct {
	States   []schem.BlockState
	Vertices []Vertex
	Indices  []uint32
}

type dirSpec struct {
	normal [3]float32
	u, v   int
	du, dv [3]int
}

var directions = []dirSpec{
	{[3]float32{1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{-1, 0, 0}, 1, 2, [3]int{0, 1, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, -1, 0}, 0, 2, [3]int{1, 0, 0}, [3]int{0, 0, 1}},
	{[3]float32{0, 0, 1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
	{[3]float32{0, 0, -1}, 0, 1, [3]int{1, 0, 0}, [3]int{0, 1, 0}},
}

func addQuad(mesh *Mesh, dir dirSpec, start [3]int, w, h int, state int, perp int) {
	base := [3]float32{}
	base[perp] = float32(start[0])
	if dir.normal[perp] > 0 {
		base[perp] += 1
	}
	base[dir.u] = float32(start[1])
	base[dir.v] = float32(start[2])

	verts := [4]Vertex{
		{Position: base, State: state},
		{Position: [3]float32{base[0] + float32(dir.du[0]*h), base[1] + float32(dir.du[1]*h), base[2] + float32(dir.du[2]*h)}, State: state},
		{Position: [3]float32{base[0] + float32(dir.du[0]*h) + float32(dir.dv[0]*w), base[1] + float32(dir.du[1]*h) + float32(dir.dv[1]*w), base[2] + float32(dir.du[2]*h) + float32(dir.dv[2]*w)}, State: state},
		{Position: [3]float32{base[0] + float32(dir.dv[0]*w), base[1] + float32(dir.dv[1]*w), base[2] + float32(dir.dv[2]*w)}, State: state},
	}

	swap := (dir.normal[perp] < 0) != (perp == 1)
	if swap {
		verts[1], verts[3] = verts[3], verts[1]
	}

	baseIdx := uint32(len(mesh.Vertices))
	mesh.Vertices = append(mesh.Vertices, verts[:]...)
	mesh.Indices = append(mesh.Indices, baseIdx, baseIdx+1, baseIdx+2, baseIdx, baseIdx+2, baseIdx+3)
}

// BuildMesh produces a greedy mesh of g: runs of neighboring cells with the
// same state merge into single quads, and faces between two occupied cells are
// skipped. Faces on the grid boundary are always emitted.
func BuildMesh(g *schem.Grid) *Mesh {
	width, height, length := g.Dimensions()
	dims := [3]int{width, height, length}
	states := g.Palette()
	index := make(map[schem.BlockState]int, len(states))
	for i, s := range states {
		index[s] = i
	}
	cells := g.To3D()
	at := func(x, y, z int) int {
		if x < 0 || x >= width || y < 0 || y >= height || z < 0 || z >= length {
			return 0
		}
		return index[cells[y][z][x]]
	}

	mesh := &Mesh{States: states}
	for _, dir := range directions {
		perp := 3 - dir.u - dir.v

		for p := 0; p < dims[perp]; p++ {
			mask := make([][]int, dims[dir.u])
			visited := make([][]bool, dims[dir.u])
			for i := range mask {
				mask[i] = make([]int, dims[dir.v])
				visited[i] = make([]bool, dims[dir.v])
			}

			for u := 0; u < dims[dir.u]; u++ {
				for v := 0; v < dims[dir.v]; v++ {
					pos := [3]int{}
					pos[dir.u] = u
					pos[dir.v] = v
					pos[perp] = p

					voxel := at(pos[0], pos[1], pos[2])
					if voxel == 0 {
						continue
					}

					adj := pos
					if dir.normal[perp] < 0 {
						adj[perp] = p - 1
					} else {
						adj[perp] = p + 1
					}

					if adj[perp] < 0 || adj[perp] >= dims[perp] || at(adj[0], adj[1], adj[2]) == 0 {
						mask[u][v] = voxel
					}
				}
			}

			for u := 0; u < dims[dir.u]; u++ {
				for v := 0; v < dims[dir.v]; {
					if mask[u][v] == 0 || visited[u][v] {
						v++
						continue
					}
					state := mask[u][v]
					runV := 1
					for w := v + 1; w < dims[dir.v] && mask[u][w] == state && !visited[u][w]; w++ {
						runV++
					}
					runU := 1
					stop := false
					for h := u + 1; h < dims[dir.u] && !stop; h++ {
						for w := v; w < v+runV; w++ {
							if mask[h][w] != state || visited[h][w] {
								stop = true
								break
							}
						}
						if !stop {
							runU++
						}
					}
					for hu := u; hu < u+runU; hu++ {
						for hv := v; hv < v+runV; hv++ {
							visited[hu][hv] = true
						}
					}
					addQuad(mesh, dir, [3]int{p, u, v}, runV, runU, state, perp)
					v += runV
				}
			}
		}
	}
	return mesh
}
