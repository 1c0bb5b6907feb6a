package wavefront

import (
	"strconv"
	"strings"
)

type primitiveKind uint8

const (
	primitivePolygon primitiveKind = iota
	primitiveLine
	primitivePoint
)

// A corner holds zero-based indices into the attribute stores; -1 marks an
// absent texcoord or normal.
type corner struct {
	v, t, n int32
}

// A face references a run of corners in the shared corner arena.
type face struct {
	kind      primitiveKind
	first     int
	count     int
	material  int
	smoothing uint32
}

// The lengths of the attribute stores at the time a directive is processed.
type storeLens struct {
	positions int
	texcoords int
	normals   int
}

// Given an index for a face coord type (vertex, normal, tex) calculate the
// proper offset into the coord list. Wavefront format can also use negative
// indices to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int, coordType string) (int32, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, fieldError(ErrMalformedNumber, err, "could not parse %s index %q", coordType, indexToken)
	}

	var offset int64
	switch {
	case index == 0:
		return -1, fieldError(ErrInvalidFaceIndex, nil, "%s index 0 is not valid; indices are 1-based", coordType)
	case index < 0:
		offset = int64(coordListLen) + index
	default:
		offset = index - 1
	}
	if offset < 0 || offset >= int64(coordListLen) {
		return -1, fieldError(ErrInvalidFaceIndex, nil, "%s index %d out of bounds; %d %s(s) defined so far", coordType, index, coordListLen, coordType)
	}
	return int32(offset), nil
}

// Parse a single face corner in one of the v, v/t, v/t/n or v//n forms.
func parseCorner(token string, lens storeLens) (corner, error) {
	c := corner{v: -1, t: -1, n: -1}

	parts := strings.Split(token, "/")
	if len(parts) > 3 {
		return c, fieldError(ErrInvalidFaceIndex, nil, "face corner %q has %d components; expected at most 3", token, len(parts))
	}

	// Faces must at least define a vertex coord
	if parts[0] == "" {
		return c, fieldError(ErrInvalidFaceIndex, nil, "face corner %q does not include a vertex index", token)
	}

	var err error
	if c.v, err = selectFaceCoordIndex(parts[0], lens.positions, "vertex"); err != nil {
		return c, err
	}
	if len(parts) > 1 && parts[1] != "" {
		if c.t, err = selectFaceCoordIndex(parts[1], lens.texcoords, "texcoord"); err != nil {
			return c, err
		}
	}
	if len(parts) > 2 && parts[2] != "" {
		if c.n, err = selectFaceCoordIndex(parts[2], lens.normals, "normal"); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Parse a list of corner tokens and append them to the arena.
func appendCorners(arena []corner, tokens []string, lens storeLens) ([]corner, error) {
	for _, token := range tokens {
		c, err := parseCorner(token, lens)
		if err != nil {
			return arena, err
		}
		arena = append(arena, c)
	}
	return arena, nil
}

// Map the corner count of an "f" directive to a primitive kind. Faces with
// fewer than 3 corners degrade to points and lines.
func faceKind(numCorners int) primitiveKind {
	switch numCorners {
	case 1:
		return primitivePoint
	case 2:
		return primitiveLine
	}
	return primitivePolygon
}

// Fan-triangulate a polygon with k corners, invoking emit with the local
// corner offsets of each of the k-2 triangles.
func fanTriangulate(k int, emit func(a, b, c int)) {
	for i := 1; i+1 < k; i++ {
		emit(0, i, i+1)
	}
}
