package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLocalResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	res, err := NewResource(thisFile, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatal("expected local resource not to be flagged as remote")
	}
	if res.Name() != "resource_test.go" {
		t.Fatalf("expected resource name to be resource_test.go; got %s", res.Name())
	}
}

func TestLocalSiblingResource(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "scene.obj"), []byte("v 0 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "scene.mtl"), []byte("newmtl foo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := NewResource(filepath.Join(dir, "scene.obj"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	sibling, err := res.Sibling(context.Background(), "scene.mtl")
	if err != nil {
		t.Fatal(err)
	}
	defer sibling.Close()

	data, err := io.ReadAll(sibling)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "newmtl foo\n" {
		t.Fatalf("expected sibling contents to be 'newmtl foo'; got %q", string(data))
	}

	// Windows-style separators are accepted
	sibling2, err := res.Sibling(context.Background(), `.\scene.mtl`)
	if err != nil {
		t.Fatal(err)
	}
	sibling2.Close()
}

func TestHttpResource(t *testing.T) {
	_, thisFile, _, _ := runtime.Caller(0)
	thisDir := filepath.Dir(thisFile)

	server := httptest.NewServer(http.FileServer(http.Dir(thisDir)))
	defer server.Close()

	fetchUrl := server.URL + "/" + filepath.Base(thisFile)
	res, err := NewResource(fetchUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if !res.IsRemote() {
		t.Fatal("expected http resource to be flagged as remote")
	}
	if res.Name() != filepath.Base(thisFile) {
		t.Fatalf("expected resource name to be %s; got %s", filepath.Base(thisFile), res.Name())
	}

	fetchUrl = server.URL + "/file-not-found.foo"
	expError := fmt.Sprintf("resource: could not fetch '%s': status %d", fetchUrl, 404)
	_, err = NewResource(fetchUrl, nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestRelativeResources(t *testing.T) {
	serverHits := 0
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		serverHits++
		if r.URL.Path == "/foo/scene.obj" || r.URL.Path == "/foo/scene.mtl" {
			w.Write([]byte("OK"))
		} else {
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	res1, err := NewResource(server.URL+"/foo/scene.obj", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res1.Close()
	res2, err := NewResource("scene.mtl", res1)
	if err != nil {
		t.Fatal(err)
	}
	defer res2.Close()

	if serverHits != 2 {
		t.Fatalf("expected server to receive 2 requests; got %d", serverHits)
	}
	if exp := server.URL + "/foo/scene.mtl"; res2.Path() != exp {
		t.Fatalf("expected relative resource path to be %s; got %s", exp, res2.Path())
	}
}

func TestCancelledRemoteResource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResourceContext(ctx, server.URL+"/scene.obj", nil)
	if err == nil || !strings.Contains(err.Error(), "context canceled") {
		t.Fatalf("expected to get a context canceled error; got %v", err)
	}
}

func TestUnsupportedResourceScheme(t *testing.T) {
	expError := "resource: unsupported scheme 'gopher'"
	_, err := NewResource("gopher://digging.go", nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestResourceFromStream(t *testing.T) {
	res := NewResourceFromStream("embedded", strings.NewReader("payload"))
	defer res.Close()

	if res.Path() != "embedded" {
		t.Fatalf("expected path to be 'embedded'; got %s", res.Path())
	}
	data, err := io.ReadAll(res)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "payload" {
		t.Fatalf("expected stream contents to be 'payload'; got %q", string(data))
	}
}
