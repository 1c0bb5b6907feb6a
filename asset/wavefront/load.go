package wavefront

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/achilleasa/wavefront/asset"
	"github.com/achilleasa/wavefront/log"
)

var logger = log.New("wavefront")

// Name reported for sources loaded from in-memory buffers.
const bufferSourceName = "buffer"

// Result contains everything produced by a geometry load. The caller owns
// all of it.
type Result struct {
	Meshes    []*Mesh
	Materials *MaterialTable

	// Material library names in the order they were referenced.
	MaterialLibraries []string

	Warnings []Warning
}

// A MaterialResolver supplies the contents of material libraries referenced
// by a geometry source.
type MaterialResolver interface {
	Open(name string) (io.ReadCloser, error)
}

// MaterialResolverFunc adapts a function that returns the text of a
// material library to the MaterialResolver interface.
type MaterialResolverFunc func(name string) (string, error)

// Open implements MaterialResolver.
func (f MaterialResolverFunc) Open(name string) (io.ReadCloser, error) {
	text, err := f(name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(strings.NewReader(text)), nil
}

// ResourceResolver opens material libraries relative to a parent resource.
type ResourceResolver struct {
	ctx    context.Context
	parent *asset.Resource
}

// Create a resolver for material libraries that live next to parent.
func NewResourceResolver(ctx context.Context, parent *asset.Resource) *ResourceResolver {
	return &ResourceResolver{ctx: ctx, parent: parent}
}

// Open implements MaterialResolver.
func (r *ResourceResolver) Open(name string) (io.ReadCloser, error) {
	res, err := r.parent.Sibling(r.ctx, name)
	if err != nil {
		return nil, err
	}
	if res.IsRemote() {
		logger.Infof(`fetching material library "%s" from %s`, res.Name(), res.Path())
	} else {
		logger.Infof(`reading material library "%s"`, res.Name())
	}
	return res, nil
}

// Load a geometry file from a local path or an http/https URL. Material
// libraries are looked up next to it.
func Load(path string, opts LoadOptions) (*Result, error) {
	return LoadContext(context.Background(), path, opts)
}

// LoadContext is like Load but aborts when ctx is cancelled.
func LoadContext(ctx context.Context, path string, opts LoadOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	res, err := asset.NewResourceContext(ctx, path, nil)
	if err != nil {
		return nil, &ParseError{File: path, Kind: ErrReadFailure, Err: err, Msg: err.Error()}
	}
	defer res.Close()

	return LoadReaderContext(ctx, res.Path(), res, NewResourceResolver(ctx, res), opts)
}

// Load geometry from r. Material libraries are obtained from resolver which
// may be nil, in which case every referenced library is reported as
// unreadable.
func LoadReader(name string, r io.Reader, resolver MaterialResolver, opts LoadOptions) (*Result, error) {
	return LoadReaderContext(context.Background(), name, r, resolver, opts)
}

// LoadReaderContext is like LoadReader but aborts when ctx is cancelled.
func LoadReaderContext(ctx context.Context, name string, r io.Reader, resolver MaterialResolver, opts LoadOptions) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	logger.Infof(`parsing "%s"`, name)

	res, err := newObjReader(ctx, name, resolver, opts).read(r)
	if err != nil {
		return nil, err
	}

	logger.Noticef(`parsed "%s" in %d ms; %d mesh(es), %d material(s), %d warning(s)`,
		name, time.Since(start).Nanoseconds()/1e6, len(res.Meshes), res.Materials.Len(), len(res.Warnings))
	return res, nil
}

// Load geometry from an in-memory buffer. Material libraries are requested
// from resolverFn which may be nil.
func LoadFromBuffers(text string, resolverFn MaterialResolverFunc, opts LoadOptions) (*Result, error) {
	return loadFromBuffers(context.Background(), text, resolverFn, opts)
}

func loadFromBuffers(ctx context.Context, text string, resolverFn MaterialResolverFunc, opts LoadOptions) (*Result, error) {
	var resolver MaterialResolver
	if resolverFn != nil {
		resolver = resolverFn
	}
	src := asset.NewResourceFromStream(bufferSourceName, strings.NewReader(text))
	return LoadReaderContext(ctx, src.Name(), src, resolver, opts)
}

// Parse a standalone material library.
func LoadMaterials(name string, r io.Reader) (*MaterialTable, error) {
	return parseMaterialLibrary(context.Background(), name, r)
}

// Parse a standalone material library from an in-memory buffer.
func LoadMaterialsFromBuffer(text string) (*MaterialTable, error) {
	return LoadMaterials(bufferSourceName, strings.NewReader(text))
}
