package wavefront

import (
	"context"
	"io"
	"strings"

	"github.com/achilleasa/wavefront/types"
)

const defaultGroupName = "default"

// objReader interprets the directives of a geometry source and accumulates
// the meshes, material libraries and warnings of a single load.
type objReader struct {
	ctx      context.Context
	opts     LoadOptions
	file     string
	resolver MaterialResolver

	stores    attributeStores
	assembler *meshAssembler

	// Pending faces of the mesh being built and their corners.
	faces   []face
	corners []corner
	marks   []subMeshMark

	meshName  string
	named     bool
	object    string
	groups    []string
	smoothing uint32

	// Material names referenced by usemtl in order of first use. Faces
	// refer to them by slot until all libraries have been read.
	material      int
	materialNames []string
	materialLines []int
	slotByName    map[string]int

	meshes    []*Mesh
	materials *MaterialTable
	libraries []string
	warnings  []Warning
}

func newObjReader(ctx context.Context, file string, resolver MaterialResolver, opts LoadOptions) *objReader {
	r := &objReader{
		ctx:        ctx,
		opts:       opts,
		file:       file,
		resolver:   resolver,
		meshName:   defaultGroupName,
		material:   NoMaterial,
		slotByName: make(map[string]int),
		materials:  NewMaterialTable(),
	}
	r.assembler = newMeshAssembler(opts, &r.stores)
	return r
}

// Parse the geometry source and return the assembled result.
func (r *objReader) read(src io.Reader) (*Result, error) {
	numDirectives := 0
	scanner := newLineScanner(r.ctx, r.file, src)
	for scanner.Scan() {
		numDirectives++
		d := scanner.Directive()
		if err := r.process(d); err != nil {
			if isContextError(err) {
				return nil, err
			}
			return nil, locate(err, r.file, d)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if numDirectives == 0 {
		return nil, &ParseError{File: r.file, Line: scanner.Line(), Kind: ErrEmptyOrTruncatedFile, Msg: "no directives found"}
	}

	r.flush()
	r.resolveMaterials()
	if r.opts.ReorderByMaterial {
		for _, mesh := range r.meshes {
			reorderByMaterial(mesh)
		}
	}

	return &Result{
		Meshes:            r.meshes,
		Materials:         r.materials,
		MaterialLibraries: r.libraries,
		Warnings:          r.warnings,
	}, nil
}

// Dispatch a directive.
func (r *objReader) process(d directive) error {
	tokens := d.fields()
	switch d.keyword {
	case "v":
		return r.parseVertex(tokens)
	case "vn":
		if len(tokens) != 3 {
			return fieldError(ErrMalformedNumber, nil, `unsupported syntax for "vn"; expected 3 arguments; got %d`, len(tokens))
		}
		n, err := parseVec3(d.keyword, tokens)
		if err != nil {
			return err
		}
		r.stores.normals = append(r.stores.normals, n)
	case "vt":
		uv, err := parseTexcoord(d.keyword, tokens)
		if err != nil {
			return err
		}
		r.stores.texcoords = append(r.stores.texcoords, uv)
	case "f":
		if len(tokens) == 0 {
			return fieldError(ErrInvalidFaceIndex, nil, `unsupported syntax for "f"; expected at least 1 vertex`)
		}
		return r.queueFace(faceKind(len(tokens)), tokens)
	case "l":
		if len(tokens) < 2 {
			return fieldError(ErrInvalidFaceIndex, nil, `unsupported syntax for "l"; expected at least 2 vertices; got %d`, len(tokens))
		}
		if r.opts.IgnoreLines {
			return nil
		}
		// A polyline becomes a run of segments
		for i := 0; i+1 < len(tokens); i++ {
			if err := r.queueFace(primitiveLine, tokens[i:i+2]); err != nil {
				return err
			}
		}
	case "p":
		if len(tokens) == 0 {
			return fieldError(ErrInvalidFaceIndex, nil, `unsupported syntax for "p"; expected at least 1 vertex`)
		}
		if r.opts.IgnorePoints {
			return nil
		}
		for i := range tokens {
			if err := r.queueFace(primitivePoint, tokens[i:i+1]); err != nil {
				return err
			}
		}
	case "o":
		r.flush()
		r.object = strings.Join(tokens, " ")
		r.groups = nil
		r.meshName = r.object
		if r.meshName == "" {
			r.meshName = defaultGroupName
		}
		r.named = true
	case "g":
		if len(tokens) == 0 {
			tokens = []string{defaultGroupName}
		}
		name := strings.Join(tokens, " ")
		if r.opts.Granularity == GranularityObject {
			r.groups = append(r.groups, tokens...)
			r.marks = append(r.marks, subMeshMark{name: name, firstFace: len(r.faces)})
			return nil
		}
		r.flush()
		r.groups = tokens
		r.meshName = name
		r.named = true
	case "s":
		return r.parseSmoothingGroup(tokens)
	case "usemtl":
		r.useMaterial(d)
	case "mtllib":
		return r.loadMaterialLibraries(d, tokens)
	default:
		logger.Debugf(`[%s: %d] ignoring unsupported directive "%s"`, r.file, d.line, d.keyword)
	}
	return nil
}

// Parse a vertex position with an optional w component and optional colour.
func (r *objReader) parseVertex(tokens []string) error {
	var colorTokens []string
	switch len(tokens) {
	case 3, 4:
	case 5:
		// x y z plus an incomplete colour
		logger.Debugf(`[%s] ignoring partial vertex colour "%s"`, r.file, strings.Join(tokens[3:], " "))
		tokens = tokens[:3]
	case 6:
		colorTokens = tokens[3:]
	case 7:
		colorTokens = tokens[4:]
	default:
		return fieldError(ErrMalformedNumber, nil, `unsupported syntax for "v"; expected 3 to 7 arguments; got %d`, len(tokens))
	}

	pos, err := parseVec3("v", tokens)
	if err != nil {
		return err
	}
	if len(tokens) == 4 {
		if _, err = parseFloat32("v", tokens[3]); err != nil {
			return err
		}
	}

	col := types.Splat3(1.0)
	if colorTokens != nil {
		if col, err = parseVec3("v", colorTokens); err != nil {
			return err
		}
		r.stores.hasColors = true
	}

	r.stores.positions = append(r.stores.positions, pos)
	r.stores.colors = append(r.stores.colors, col)
	return nil
}

// Parse a smoothing group directive.
func (r *objReader) parseSmoothingGroup(tokens []string) error {
	if len(tokens) != 1 {
		return fieldError(ErrMalformedNumber, nil, `unsupported syntax for "s"; expected 1 argument; got %d`, len(tokens))
	}
	switch tokens[0] {
	case "off":
		r.smoothing = 0
	case "on":
		r.smoothing = 1
	default:
		id, err := parseInt("s", tokens[0])
		if err != nil {
			return err
		}
		if id < 0 {
			return fieldError(ErrMalformedNumber, nil, "smoothing group %d must not be negative", id)
		}
		r.smoothing = uint32(id)
	}
	return nil
}

// Resolve the corners of a primitive and queue it for the current mesh.
func (r *objReader) queueFace(kind primitiveKind, tokens []string) error {
	first := len(r.corners)
	corners, err := appendCorners(r.corners, tokens, r.stores.lens())
	if err != nil {
		r.corners = r.corners[:first]
		return err
	}

	if (kind == primitiveLine && r.opts.IgnoreLines) || (kind == primitivePoint && r.opts.IgnorePoints) {
		r.corners = corners[:first]
		return nil
	}

	r.corners = corners
	r.faces = append(r.faces, face{
		kind:      kind,
		first:     first,
		count:     len(tokens),
		material:  r.material,
		smoothing: r.smoothing,
	})
	return nil
}

// Activate a material by name. Names are mapped to slots; the slots are
// resolved once all material libraries have been read.
func (r *objReader) useMaterial(d directive) {
	name := d.args
	slot, exists := r.slotByName[name]
	switch {
	case name == "":
		slot = NoMaterial
	case !exists:
		slot = len(r.materialNames)
		r.slotByName[name] = slot
		r.materialNames = append(r.materialNames, name)
		r.materialLines = append(r.materialLines, d.line)
	}

	if slot != r.material && r.opts.Granularity == GranularityMaterial && len(r.faces) != 0 {
		r.flush()
	}
	r.material = slot
}

// Load and merge the material libraries referenced by a mtllib directive.
// Libraries that cannot be read or parsed are reported as warnings unless
// the load has been cancelled.
func (r *objReader) loadMaterialLibraries(d directive, names []string) error {
	for _, name := range names {
		r.libraries = append(r.libraries, name)

		table, err := r.readMaterialLibrary(name)
		if err != nil {
			if ctxErr := r.ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			r.warn(Warning{
				File:    r.file,
				Line:    d.line,
				Kind:    WarnMaterialLibraryUnreadable,
				Name:    name,
				Message: err.Error(),
			})
			continue
		}
		r.materials.Merge(table)
	}
	return nil
}

func (r *objReader) readMaterialLibrary(name string) (*MaterialTable, error) {
	if r.resolver == nil {
		return nil, fieldError(ErrMaterialLibraryUnreadable, nil, "no material resolver available for %q", name)
	}

	src, err := r.resolver.Open(name)
	if err != nil {
		return nil, fieldError(ErrMaterialLibraryUnreadable, err, "could not open %q: %s", name, err.Error())
	}
	defer src.Close()

	return parseMaterialLibrary(r.ctx, name, src)
}

// Assemble the pending faces into a new mesh. Meshes without primitives are
// dropped.
func (r *objReader) flush() {
	defer func() {
		r.faces = r.faces[:0]
		r.corners = r.corners[:0]
		r.marks = r.marks[:0]
	}()

	if len(r.faces) == 0 {
		if r.named {
			logger.Warningf(`[%s] dropping mesh "%s" as it contains no primitives`, r.file, r.meshName)
			r.named = false
		}
		return
	}

	mesh := &Mesh{
		Name:   r.meshName,
		Object: r.object,
		Groups: append([]string(nil), r.groups...),
	}
	var marks []subMeshMark
	if r.opts.Granularity == GranularityObject {
		marks = r.marks
	}
	r.assembler.assemble(mesh, r.faces, r.corners, marks)
	r.meshes = append(r.meshes, mesh)
	r.named = false
}

// Map the material slots of all meshes to material table ids.
func (r *objReader) resolveMaterials() {
	slotToID := make([]int, len(r.materialNames))
	for slot, name := range r.materialNames {
		id, exists := r.materials.Lookup(name)
		if !exists {
			id = NoMaterial
			r.warn(Warning{
				File:    r.file,
				Line:    r.materialLines[slot],
				Kind:    WarnUnresolvedMaterial,
				Name:    name,
				Message: "material not defined by any loaded material library",
			})
		}
		slotToID[slot] = id
	}

	for _, mesh := range r.meshes {
		for i, slot := range mesh.MaterialIDs {
			if slot != NoMaterial {
				mesh.MaterialIDs[i] = slotToID[slot]
			}
		}
	}
}

func (r *objReader) warn(w Warning) {
	logger.Warning(w.String())
	r.warnings = append(r.warnings, w)
}
