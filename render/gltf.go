package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/tribixbite/craftmatic-sub003/schem"
)

// GridToGLB meshes g and encodes it as a single-node binary glTF document.
func GridToGLB(g *schem.Grid) ([]byte, error) {
	mesh := BuildMesh(g)
	if len(mesh.Vertices) == 0 {
		return nil, fmt.Errorf("render: grid has no visible faces")
	}
	doc := gltf.NewDocument()
	doc.Asset.Generator = "craftmatic"
	hasAlpha := appendMeshNode(doc, mesh, "Structure", [3]float64{})
	addMaterial(doc, hasAlpha)
	return encodeGLB(doc)
}

// BundleToGLB renders every entry of a bundle into one scene, one node per
// entry, laid out on a square ground grid so the structures sit side by side.
func BundleToGLB(b *schem.Bundle) ([]byte, error) {
	if len(b.Entries) == 0 {
		return nil, fmt.Errorf("render: bundle has no entries")
	}
	doc := gltf.NewDocument()
	doc.Asset.Generator = "craftmatic"

	// Cell size is the largest footprint plus a gap, so entries never overlap.
	var stepX, stepZ float64
	grids := make([]*schem.Grid, len(b.Entries))
	for i, e := range b.Entries {
		g, err := e.Grid()
		if err != nil {
			return nil, fmt.Errorf("render: entry %q: %w", e.Name, err)
		}
		grids[i] = g
		w, _, l := g.Dimensions()
		stepX = max(stepX, float64(w)+2)
		stepZ = max(stepZ, float64(l)+2)
	}

	cols := int(math.Ceil(math.Sqrt(float64(len(grids)))))
	hasAlpha := false
	placed := 0
	for i, g := range grids {
		mesh := BuildMesh(g)
		if len(mesh.Vertices) == 0 {
			continue
		}
		row := placed / cols
		col := placed % cols
		translation := [3]float64{float64(col) * stepX, 0, float64(row) * stepZ}
		if appendMeshNode(doc, mesh, b.Entries[i].Name, translation) {
			hasAlpha = true
		}
		placed++
	}
	if placed == 0 {
		return nil, fmt.Errorf("render: no entry has visible faces")
	}
	addMaterial(doc, hasAlpha)
	return encodeGLB(doc)
}

// appendMeshNode writes the mesh's buffers into doc and hangs a named node in
// the default scene. All primitives share material 0, which addMaterial
// appends after the last mesh so the alpha mode can cover every node.
func appendMeshNode(doc *gltf.Document, m *Mesh, name string, translation [3]float64) bool {
	positions := make([][3]float32, len(m.Vertices))
	colors := make([][4]float32, len(m.Vertices))
	hasAlpha := false
	for i, v := range m.Vertices {
		positions[i] = v.Position
		rgba := ColorOf(m.States[v.State])
		colors[i] = rgba
		if rgba[3] < 1.0 {
			hasAlpha = true
		}
	}
	indices := make([]uint32, len(m.Indices))
	copy(indices, m.Indices)
	normals := flatNormals(positions, indices)

	posAccessor := modeler.WritePosition(doc, positions)
	normalAccessor := modeler.WriteNormal(doc, normals)
	colorAccessor := modeler.WriteColor(doc, colors)
	indicesAccessor := modeler.WriteIndices(doc, indices)

	prim := &gltf.Primitive{
		Attributes: map[string]int{
			gltf.POSITION: posAccessor,
			gltf.NORMAL:   normalAccessor,
			gltf.COLOR_0:  colorAccessor,
		},
		Indices:  gltf.Index(indicesAccessor),
		Material: gltf.Index(0),
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: name, Primitives: []*gltf.Primitive{prim}})
	node := &gltf.Node{Name: name, Mesh: gltf.Index(len(doc.Meshes) - 1), Translation: translation}
	doc.Nodes = append(doc.Nodes, node)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, len(doc.Nodes)-1)
	return hasAlpha
}

func addMaterial(doc *gltf.Document, hasAlpha bool) {
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{1, 1, 1, 1},
		MetallicFactor:  gltf.Float(0),
		RoughnessFactor: gltf.Float(1),
	}
	material := &gltf.Material{PBRMetallicRoughness: pbr}
	if hasAlpha {
		material.AlphaMode = gltf.AlphaBlend
	} else {
		material.AlphaMode = gltf.AlphaOpaque
	}
	doc.Materials = []*gltf.Material{material}
}

// flatNormals assigns each vertex the normal of the last face using it. Quads
// never share vertices across faces, so every face ends up uniformly lit.
func flatNormals(positions [][3]float32, indices []uint32) [][3]float32 {
	normals := make([][3]float32, len(positions))
	for i := 0; i+2 < len(indices); i += 3 {
		v0, v1, v2 := indices[i], indices[i+1], indices[i+2]
		p0, p1, p2 := positions[v0], positions[v1], positions[v2]
		vec1 := [3]float32{p1[0] - p0[0], p1[1] - p0[1], p1[2] - p0[2]}
		vec2 := [3]float32{p2[0] - p0[0], p2[1] - p0[1], p2[2] - p0[2]}
		cross := [3]float32{
			vec1[1]*vec2[2] - vec1[2]*vec2[1],
			vec1[2]*vec2[0] - vec1[0]*vec2[2],
			vec1[0]*vec2[1] - vec1[1]*vec2[0],
		}
		length := float32(math.Sqrt(float64(cross[0]*cross[0] + cross[1]*cross[1] + cross[2]*cross[2])))
		if length > 0 {
			cross[0] /= length
			cross[1] /= length
			cross[2] /= length
		}
		normals[v0] = cross
		normals[v1] = cross
		normals[v2] = cross
	}
	return normals
}

func encodeGLB(doc *gltf.Document) ([]byte, error) {
	var out bytes.Buffer
	enc := gltf.NewEncoder(&out)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
