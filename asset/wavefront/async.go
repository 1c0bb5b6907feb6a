package wavefront

import (
	"context"
)

// AsyncResult is delivered by the non-blocking load variants.
type AsyncResult struct {
	Result *Result
	Err    error
}

// LoadAsync runs Load in a separate goroutine. The returned channel yields
// exactly one AsyncResult and is then closed. Cancelling ctx aborts the
// load between lines.
func LoadAsync(ctx context.Context, path string, opts LoadOptions) <-chan AsyncResult {
	return runAsync(func() (*Result, error) {
		return LoadContext(ctx, path, opts)
	})
}

// LoadFromBuffersAsync runs LoadFromBuffers in a separate goroutine. See
// LoadAsync.
func LoadFromBuffersAsync(ctx context.Context, text string, resolverFn MaterialResolverFunc, opts LoadOptions) <-chan AsyncResult {
	return runAsync(func() (*Result, error) {
		return loadFromBuffers(ctx, text, resolverFn, opts)
	})
}

func runAsync(loadFn func() (*Result, error)) <-chan AsyncResult {
	resCh := make(chan AsyncResult, 1)
	go func() {
		defer close(resCh)
		res, err := loadFn()
		resCh <- AsyncResult{Result: res, Err: err}
	}()
	return resCh
}
