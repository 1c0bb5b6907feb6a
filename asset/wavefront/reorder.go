package wavefront

import (
	"sort"
)

// Sort key for a material id; primitives without a material go last.
func materialSortKey(id int) int {
	if id == NoMaterial {
		return int(^uint(0) >> 1)
	}
	return id
}

// reorderByMaterial permutes the primitives of mesh so primitives sharing a
// material are contiguous. The sort is stable and is applied separately to
// every sub mesh range. Vertex buffers are not touched.
func reorderByMaterial(mesh *Mesh) {
	if len(mesh.SubMeshes) == 0 {
		reorderRange(mesh, 0, mesh.NumPrimitives(), 0)
		return
	}
	for _, sm := range mesh.SubMeshes {
		reorderRange(mesh, sm.FirstPrimitive, sm.NumPrimitives, sm.FirstIndex)
	}
}

// Reorder numPrims primitives starting at firstPrim whose indices start at
// firstIndex.
func reorderRange(mesh *Mesh, firstPrim, numPrims, firstIndex int) {
	if numPrims < 2 {
		return
	}

	materials := mesh.MaterialIDs[firstPrim : firstPrim+numPrims]
	sorted := sort.SliceIsSorted(materials, func(i, j int) bool {
		return materialSortKey(materials[i]) < materialSortKey(materials[j])
	})
	if sorted {
		return
	}

	// Index offset of every primitive relative to firstIndex
	offsets := make([]int, numPrims+1)
	for p := 0; p < numPrims; p++ {
		arity := 3
		if len(mesh.FaceArities) != 0 {
			arity = int(mesh.FaceArities[firstPrim+p])
		}
		offsets[p+1] = offsets[p] + arity
	}

	perm := make([]int, numPrims)
	for p := range perm {
		perm[p] = p
	}
	sort.SliceStable(perm, func(i, j int) bool {
		return materialSortKey(materials[perm[i]]) < materialSortKey(materials[perm[j]])
	})

	indices := mesh.Indices[firstIndex : firstIndex+offsets[numPrims]]
	newIndices := make([]uint32, 0, len(indices))
	newMaterials := make([]int, numPrims)
	newSmoothing := make([]uint32, numPrims)
	var newArities []uint32
	if len(mesh.FaceArities) != 0 {
		newArities = make([]uint32, numPrims)
	}

	for dst, src := range perm {
		newIndices = append(newIndices, indices[offsets[src]:offsets[src+1]]...)
		newMaterials[dst] = materials[src]
		newSmoothing[dst] = mesh.SmoothingGroups[firstPrim+src]
		if newArities != nil {
			newArities[dst] = mesh.FaceArities[firstPrim+src]
		}
	}

	copy(indices, newIndices)
	copy(materials, newMaterials)
	copy(mesh.SmoothingGroups[firstPrim:], newSmoothing)
	if newArities != nil {
		copy(mesh.FaceArities[firstPrim:], newArities)
	}
}
