package wavefront

import (
	"github.com/achilleasa/wavefront/types"
)

// The attribute stores of a single load. They are append-only and shared
// by all meshes assembled from the same source.
type attributeStores struct {
	positions []types.Vec3
	texcoords []types.Vec2
	normals   []types.Vec3

	// Inline vertex colours, parallel to positions.
	colors    []types.Vec3
	hasColors bool
}

func (s *attributeStores) lens() storeLens {
	return storeLens{
		positions: len(s.positions),
		texcoords: len(s.texcoords),
		normals:   len(s.normals),
	}
}

// Marks the face where a group opens a new sub mesh range.
type subMeshMark struct {
	name      string
	firstFace int
}

// meshAssembler turns queued faces into flat mesh buffers. The material ids
// it emits are material slots that the loader maps to table ids once all
// material libraries have been read.
type meshAssembler struct {
	opts   LoadOptions
	stores *attributeStores
	cache  vertexCache

	useTexcoords bool
	useNormals   bool

	// Scratch space for the vertex records of the face being emitted.
	verts []uint32
}

func newMeshAssembler(opts LoadOptions, stores *attributeStores) *meshAssembler {
	return &meshAssembler{
		opts:   opts,
		stores: stores,
	}
}

// Assemble faces into mesh. The faces reference corners in the arena.
func (a *meshAssembler) assemble(mesh *Mesh, faces []face, arena []corner, marks []subMeshMark) {
	a.useTexcoords, a.useNormals = false, false
	for _, f := range faces {
		for _, c := range arena[f.first : f.first+f.count] {
			a.useTexcoords = a.useTexcoords || c.t >= 0
			a.useNormals = a.useNormals || c.n >= 0
		}
	}
	if a.opts.SingleIndex {
		a.cache.reset()
	}

	if len(marks) != 0 && marks[0].firstFace > 0 {
		marks = append([]subMeshMark{{name: defaultGroupName}}, marks...)
	}
	nextMark := 0

	for faceIndex, f := range faces {
		for nextMark < len(marks) && marks[nextMark].firstFace == faceIndex {
			a.openSubMesh(mesh, marks[nextMark].name)
			nextMark++
		}

		a.verts = a.verts[:0]
		for _, c := range arena[f.first : f.first+f.count] {
			a.verts = append(a.verts, a.emitVertex(mesh, c))
		}
		a.emitPrimitives(mesh, f)
	}

	if len(mesh.SubMeshes) != 0 {
		a.closeSubMesh(mesh)
		mesh.SubMeshes = pruneEmptySubMeshes(mesh.SubMeshes)
	}
}

// Emit the vertex record for a corner and return its index.
func (a *meshAssembler) emitVertex(mesh *Mesh, c corner) uint32 {
	next := uint32(mesh.NumVertices())
	if a.opts.SingleIndex {
		if idx, exists := a.cache.lookupOrAdd(c, next); exists {
			return idx
		}
	}

	p := a.stores.positions[c.v]
	mesh.Positions = append(mesh.Positions, p[0], p[1], p[2])
	if a.stores.hasColors {
		col := a.stores.colors[c.v]
		mesh.Colors = append(mesh.Colors, col[0], col[1], col[2])
	}

	// Corners without an attribute get zeroes to keep the buffers 1:1
	if a.useTexcoords {
		var uv types.Vec2
		if c.t >= 0 {
			uv = a.stores.texcoords[c.t]
		}
		mesh.Texcoords = append(mesh.Texcoords, uv[0], uv[1])
	}
	if a.useNormals {
		var n types.Vec3
		if c.n >= 0 {
			n = a.stores.normals[c.n]
		}
		mesh.Normals = append(mesh.Normals, n[0], n[1], n[2])
	}

	if !a.opts.SingleIndex {
		mesh.PositionIndices = append(mesh.PositionIndices, c.v)
		if a.useTexcoords {
			mesh.TexcoordIndices = append(mesh.TexcoordIndices, c.t)
		}
		if a.useNormals {
			mesh.NormalIndices = append(mesh.NormalIndices, c.n)
		}
	}
	return next
}

// Emit the primitives for a face whose vertex records are in a.verts.
func (a *meshAssembler) emitPrimitives(mesh *Mesh, f face) {
	v := a.verts
	if !a.opts.Triangulate {
		mesh.Indices = append(mesh.Indices, v...)
		mesh.FaceArities = append(mesh.FaceArities, uint32(len(v)))
		a.tagPrimitive(mesh, f)
		return
	}

	switch f.kind {
	case primitivePoint:
		mesh.Indices = append(mesh.Indices, v[0], v[0], v[0])
		a.tagPrimitive(mesh, f)
	case primitiveLine:
		mesh.Indices = append(mesh.Indices, v[0], v[1], v[1])
		a.tagPrimitive(mesh, f)
	default:
		fanTriangulate(len(v), func(i0, i1, i2 int) {
			mesh.Indices = append(mesh.Indices, v[i0], v[i1], v[i2])
			a.tagPrimitive(mesh, f)
		})
	}
}

func (a *meshAssembler) tagPrimitive(mesh *Mesh, f face) {
	mesh.MaterialIDs = append(mesh.MaterialIDs, f.material)
	mesh.SmoothingGroups = append(mesh.SmoothingGroups, f.smoothing)
}

func (a *meshAssembler) openSubMesh(mesh *Mesh, name string) {
	if len(mesh.SubMeshes) != 0 {
		a.closeSubMesh(mesh)
	}
	mesh.SubMeshes = append(mesh.SubMeshes, SubMesh{
		Name:           name,
		FirstPrimitive: mesh.NumPrimitives(),
		FirstIndex:     len(mesh.Indices),
	})
}

func (a *meshAssembler) closeSubMesh(mesh *Mesh) {
	last := &mesh.SubMeshes[len(mesh.SubMeshes)-1]
	last.NumPrimitives = mesh.NumPrimitives() - last.FirstPrimitive
	last.NumIndices = len(mesh.Indices) - last.FirstIndex
}

func pruneEmptySubMeshes(subMeshes []SubMesh) []SubMesh {
	kept := subMeshes[:0]
	for _, sm := range subMeshes {
		if sm.NumPrimitives != 0 {
			kept = append(kept, sm)
		}
	}
	return kept
}
