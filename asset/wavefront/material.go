package wavefront

import (
	"context"
	"io"
	"strings"

	"github.com/achilleasa/wavefront/types"
)

// Material holds the properties of a named material-library record.
// Texture map entries are kept verbatim, including any map options.
type Material struct {
	Name string

	Ambient            types.Vec3
	Diffuse            types.Vec3
	Specular           types.Vec3
	Emissive           types.Vec3
	TransmissionFilter types.Vec3

	Shininess      float32
	Dissolve       float32
	OpticalDensity float32

	// -1 when the record does not define an illumination model.
	IlluminationModel int

	AmbientTexture   string
	DiffuseTexture   string
	SpecularTexture  string
	EmissiveTexture  string
	ShininessTexture string
	DissolveTexture  string
	NormalTexture    string

	// Directives without a dedicated field, keyed by directive keyword.
	UnknownParams map[string]string
}

// Create a material with the format defaults.
func NewMaterial(name string) *Material {
	return &Material{
		Name:              name,
		Dissolve:          1.0,
		OpticalDensity:    1.0,
		IlluminationModel: -1,
		UnknownParams:     make(map[string]string),
	}
}

// MaterialTable stores materials in declaration order. Material ids are
// positions in the table; name lookups are case-sensitive.
type MaterialTable struct {
	Materials []*Material

	nameToIndex map[string]int
}

// Create an empty material table.
func NewMaterialTable() *MaterialTable {
	return &MaterialTable{
		nameToIndex: make(map[string]int),
	}
}

// Len returns the number of materials.
func (t *MaterialTable) Len() int {
	return len(t.Materials)
}

// Lookup returns the id of the material with the given name.
func (t *MaterialTable) Lookup(name string) (int, bool) {
	id, exists := t.nameToIndex[name]
	return id, exists
}

// Get returns the material with the given id or nil if id is out of range.
func (t *MaterialTable) Get(id int) *Material {
	if id < 0 || id >= len(t.Materials) {
		return nil
	}
	return t.Materials[id]
}

// Add a material and return its id. A material with the same name as an
// existing entry replaces it and inherits its id.
func (t *MaterialTable) Add(mat *Material) int {
	if id, exists := t.nameToIndex[mat.Name]; exists {
		t.Materials[id] = mat
		return id
	}
	t.Materials = append(t.Materials, mat)
	t.nameToIndex[mat.Name] = len(t.Materials) - 1
	return len(t.Materials) - 1
}

// Merge the materials of other into this table in declaration order.
func (t *MaterialTable) Merge(other *MaterialTable) {
	for _, mat := range other.Materials {
		t.Add(mat)
	}
}

// materialParser interprets the directives of a material library.
type materialParser struct {
	file  string
	table *MaterialTable

	curMaterial *Material
}

// Parse a material library.
func parseMaterialLibrary(ctx context.Context, file string, r io.Reader) (*MaterialTable, error) {
	logger.Infof(`parsing material library "%s"`, file)

	p := &materialParser{
		file:  file,
		table: NewMaterialTable(),
	}

	scanner := newLineScanner(ctx, file, r)
	for scanner.Scan() {
		if err := p.process(scanner.Directive()); err != nil {
			return nil, locate(err, file, scanner.Directive())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	logger.Debugf(`parsed %d material(s) from "%s"`, p.table.Len(), file)
	return p.table, nil
}

func (p *materialParser) process(d directive) error {
	if d.keyword == "newmtl" {
		if d.args == "" {
			logger.Warningf(`[%s: %d] ignoring "newmtl" without a material name`, p.file, d.line)
			p.curMaterial = nil
			return nil
		}
		p.curMaterial = NewMaterial(d.args)
		p.table.Add(p.curMaterial)
		return nil
	}

	if p.curMaterial == nil {
		logger.Debugf(`[%s: %d] ignoring "%s" outside of a material definition`, p.file, d.line, d.keyword)
		return nil
	}

	var err error
	mat := p.curMaterial
	tokens := d.fields()
	switch d.keyword {
	case "Ka", "Kd", "Ks", "Ke", "Tf":
		// Spectral curves and CIEXYZ colours have no dedicated field
		if len(tokens) != 0 && (tokens[0] == "spectral" || tokens[0] == "xyz") {
			mat.UnknownParams[d.keyword] = d.args
			return nil
		}

		var target *types.Vec3
		switch d.keyword {
		case "Ka":
			target = &mat.Ambient
		case "Kd":
			target = &mat.Diffuse
		case "Ks":
			target = &mat.Specular
		case "Ke":
			target = &mat.Emissive
		case "Tf":
			target = &mat.TransmissionFilter
		}
		*target, err = parseColor(d.keyword, tokens)
	case "Ns", "Ni", "d":
		var target *float32
		switch d.keyword {
		case "Ns":
			target = &mat.Shininess
		case "Ni":
			target = &mat.OpticalDensity
		case "d":
			target = &mat.Dissolve
			if len(tokens) == 2 && tokens[0] == "-halo" {
				tokens = tokens[1:]
			}
		}
		if len(tokens) != 1 {
			return fieldError(ErrMalformedNumber, nil, `unsupported syntax for "%s"; expected 1 argument; got %d`, d.keyword, len(tokens))
		}
		*target, err = parseFloat32(d.keyword, tokens[0])
	case "illum":
		if len(tokens) != 1 {
			return fieldError(ErrMalformedNumber, nil, `unsupported syntax for "%s"; expected 1 argument; got %d`, d.keyword, len(tokens))
		}
		mat.IlluminationModel, err = parseInt(d.keyword, tokens[0])
	case "map_Ka", "map_Kd", "map_Ks", "map_Ke", "map_Ns", "map_ns", "map_NS", "map_d", "map_Bump", "map_bump", "bump", "norm":
		if d.args == "" {
			logger.Warningf(`[%s: %d] ignoring "%s" without a texture reference`, p.file, d.line, d.keyword)
			return nil
		}

		var target *string
		switch d.keyword {
		case "map_Ka":
			target = &mat.AmbientTexture
		case "map_Kd":
			target = &mat.DiffuseTexture
		case "map_Ks":
			target = &mat.SpecularTexture
		case "map_Ke":
			target = &mat.EmissiveTexture
		case "map_Ns", "map_ns", "map_NS":
			target = &mat.ShininessTexture
		case "map_d":
			target = &mat.DissolveTexture
		default:
			target = &mat.NormalTexture
		}
		*target = d.args
	default:
		mat.UnknownParams[d.keyword] = d.args
	}

	return err
}

// TextureFile returns the file name of a texture map entry, skipping any
// leading map options such as "-s 1 1 1" or "-clamp on".
func TextureFile(entry string) string {
	tokens := strings.Fields(entry)
	if len(tokens) == 0 {
		return ""
	}

	// Map options and the number of values they take
	optionArgs := map[string]int{
		"-blendu": 1, "-blendv": 1, "-boost": 1, "-bm": 1, "-cc": 1,
		"-clamp": 1, "-imfchan": 1, "-mm": 2, "-texres": 1, "-type": 1,
		"-o": 3, "-s": 3, "-t": 3,
	}
	i := 0
	for i < len(tokens)-1 {
		numArgs, isOption := optionArgs[tokens[i]]
		if !isOption {
			break
		}
		i++
		// -o, -s and -t accept 1 to 3 numeric values
		for consumed := 0; consumed < numArgs && i < len(tokens)-1; consumed++ {
			if consumed > 0 && !isNumeric(tokens[i]) {
				break
			}
			i++
		}
	}
	return strings.Join(tokens[i:], " ")
}

func isNumeric(token string) bool {
	_, err := parseFloat32("", token)
	return err == nil
}
