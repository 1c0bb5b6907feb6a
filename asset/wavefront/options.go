package wavefront

import (
	"fmt"
	"strings"
)

// Granularity controls where the loader starts a new Mesh.
type Granularity int

const (
	// Start a new mesh on every object/group directive and whenever the
	// active material changes.
	GranularityMaterial Granularity = iota

	// Start a new mesh on every object/group directive. Material changes
	// are tracked per primitive.
	GranularityGroup

	// Start a new mesh on every object directive. Group directives open
	// a new SubMesh range inside the current mesh.
	GranularityObject
)

var granularityNames = []string{"material", "group", "object"}

func (g Granularity) String() string {
	if g < 0 || int(g) >= len(granularityNames) {
		return fmt.Sprintf("Granularity(%d)", int(g))
	}
	return granularityNames[g]
}

// MarshalText implements encoding.TextMarshaler.
func (g Granularity) MarshalText() ([]byte, error) {
	if g < 0 || int(g) >= len(granularityNames) {
		return nil, fmt.Errorf("unknown granularity %d", int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Granularity) UnmarshalText(text []byte) error {
	parsed, err := ParseGranularity(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGranularity maps a granularity name to its value.
func ParseGranularity(name string) (Granularity, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for idx, n := range granularityNames {
		if n == name {
			return Granularity(idx), nil
		}
	}
	return GranularityMaterial, fmt.Errorf("unknown granularity %q; expected one of %s", name, strings.Join(granularityNames, ", "))
}

// LoadOptions govern how geometry is assembled. The zero value keeps the
// data as close to the source as possible: polygons are not triangulated,
// every face corner gets its own vertex and points/lines are recorded.
type LoadOptions struct {
	// Fan-triangulate polygons; points and lines become degenerate triangles.
	Triangulate bool `toml:"triangulate" yaml:"triangulate"`

	// Share one vertex record between corners that reference the same
	// position/texcoord/normal index triple.
	SingleIndex bool `toml:"single_index" yaml:"single_index"`

	// Make primitives that share a material contiguous, keeping their
	// relative source order.
	ReorderByMaterial bool `toml:"reorder_by_material" yaml:"reorder_by_material"`

	// Drop line (l) primitives.
	IgnoreLines bool `toml:"ignore_lines" yaml:"ignore_lines"`

	// Drop point (p) primitives.
	IgnorePoints bool `toml:"ignore_points" yaml:"ignore_points"`

	// Where to split meshes.
	Granularity Granularity `toml:"granularity" yaml:"granularity"`
}

// Typical options for meshes uploaded to a GPU: triangles only, a single
// shared index buffer and no degenerate primitives.
var GPULoadOptions = LoadOptions{
	Triangulate:  true,
	SingleIndex:  true,
	IgnorePoints: true,
	IgnoreLines:  true,
}

// Typical options for offline renderers: polygons are kept as-is, one mesh
// per group with primitives grouped by material.
var OfflineLoadOptions = LoadOptions{
	ReorderByMaterial: true,
	IgnorePoints:      true,
	IgnoreLines:       true,
	Granularity:       GranularityGroup,
}

// Validate checks the options for unsupported values.
func (o LoadOptions) Validate() error {
	if o.Granularity < GranularityMaterial || o.Granularity > GranularityObject {
		return &ParseError{Kind: ErrInvalidOptions, Msg: fmt.Sprintf("unknown granularity %d", int(o.Granularity))}
	}
	return nil
}
