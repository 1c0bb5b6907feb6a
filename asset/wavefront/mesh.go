package wavefront

import (
	"github.com/achilleasa/wavefront/types"
)

// NoMaterial is the material id of primitives without a resolved material.
const NoMaterial = -1

// A SubMesh is a contiguous range of primitives opened by a group directive
// when meshes are split per object.
type SubMesh struct {
	Name string

	FirstPrimitive int
	NumPrimitives  int

	FirstIndex int
	NumIndices int
}

// A Mesh contains flat, renderer-ready buffers for one run of primitives.
// Attribute buffers are 1:1: vertex record i owns Positions[3i:3i+3],
// Normals[3i:3i+3], Texcoords[2i:2i+2] and Colors[3i:3i+3]. Buffers for
// attributes that no corner of the mesh references are left empty.
type Mesh struct {
	Name   string
	Object string
	Groups []string

	Positions []float32
	Normals   []float32
	Texcoords []float32
	Colors    []float32

	// Vertex record indices. When triangulating every primitive uses 3
	// entries; otherwise FaceArities lists the entries per primitive.
	Indices     []uint32
	FaceArities []uint32

	// Per primitive data.
	MaterialIDs     []int
	SmoothingGroups []uint32

	// Source attribute index (zero-based) of every vertex record; -1 when
	// the corner did not reference the attribute. Only populated when
	// vertex records are not shared.
	PositionIndices []int32
	TexcoordIndices []int32
	NormalIndices   []int32

	SubMeshes []SubMesh
}

// NumVertices returns the number of vertex records.
func (m *Mesh) NumVertices() int {
	return len(m.Positions) / 3
}

// NumPrimitives returns the number of emitted primitives.
func (m *Mesh) NumPrimitives() int {
	return len(m.MaterialIDs)
}

// UniformMaterial returns the material shared by all primitives in the mesh.
// The second result is false if the mesh mixes materials or is empty.
func (m *Mesh) UniformMaterial() (int, bool) {
	if len(m.MaterialIDs) == 0 {
		return NoMaterial, false
	}
	id := m.MaterialIDs[0]
	for _, other := range m.MaterialIDs[1:] {
		if other != id {
			return NoMaterial, false
		}
	}
	return id, true
}

// PrimitiveRange returns the [start, end) range of Indices used by
// primitive p.
func (m *Mesh) PrimitiveRange(p int) (int, int) {
	if len(m.FaceArities) == 0 {
		return p * 3, p*3 + 3
	}
	start := 0
	for _, arity := range m.FaceArities[:p] {
		start += int(arity)
	}
	return start, start + int(m.FaceArities[p])
}

// BBox returns the min and max corners of the box enclosing all positions.
func (m *Mesh) BBox() [2]types.Vec3 {
	if len(m.Positions) < 3 {
		return [2]types.Vec3{}
	}
	min := types.XYZ(m.Positions[0], m.Positions[1], m.Positions[2])
	max := min
	for i := 3; i+2 < len(m.Positions); i += 3 {
		p := types.XYZ(m.Positions[i], m.Positions[i+1], m.Positions[i+2])
		min = types.MinVec3(min, p)
		max = types.MaxVec3(max, p)
	}
	return [2]types.Vec3{min, max}
}

// Center returns the center of the mesh bounding box.
func (m *Mesh) Center() types.Vec3 {
	bbox := m.BBox()
	return bbox[0].Add(bbox[1]).Mul(0.5)
}

// Extent returns the longest side of the mesh bounding box.
func (m *Mesh) Extent() float32 {
	bbox := m.BBox()
	return bbox[1].Sub(bbox[0]).MaxComponent()
}
