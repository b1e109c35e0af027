// Copyright 2026 The Jsonnet-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package runtime

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeFS is an in-memory FileSystem keyed by already-absolute paths, so
// resolve's search order can be tested without touching disk.
type fakeFS map[string]string

func (f fakeFS) ReadFile(path string) ([]byte, error) {
	s, ok := f[path]
	if !ok {
		return nil, fmt.Errorf("no such file: %s", path)
	}
	return []byte(s), nil
}

func (f fakeFS) Abs(path string) (string, error) { return path, nil }

func TestResolveRelativeToImportingFile(t *testing.T) {
	fs := fakeFS{"/a/b.jsonnet": "{}"}
	r := New(Config{FileSystem: fs})

	got, err := r.resolve("/a/main.jsonnet", "b.jsonnet")
	require.NoError(t, err)
	assert.Equal(t, "/a/b.jsonnet", got)
}

func TestResolveFallsBackToJpath(t *testing.T) {
	fs := fakeFS{"/lib/b.jsonnet": "{}"}
	r := New(Config{FileSystem: fs, Jpath: []string{"/lib"}})

	got, err := r.resolve("/a/main.jsonnet", "b.jsonnet")
	require.NoError(t, err)
	assert.Equal(t, "/lib/b.jsonnet", got)
}

func TestResolvePrefersImportingFileDir(t *testing.T) {
	fs := fakeFS{
		"/a/b.jsonnet":   "{local: true}",
		"/lib/b.jsonnet": "{local: false}",
	}
	r := New(Config{FileSystem: fs, Jpath: []string{"/lib"}})

	got, err := r.resolve("/a/main.jsonnet", "b.jsonnet")
	require.NoError(t, err)
	assert.Equal(t, "/a/b.jsonnet", got)
}

func TestResolveAbsolutePathUsedAsIs(t *testing.T) {
	fs := fakeFS{"/anywhere/b.jsonnet": "{}"}
	r := New(Config{FileSystem: fs})

	got, err := r.resolve("/a/main.jsonnet", "/anywhere/b.jsonnet")
	require.NoError(t, err)
	assert.Equal(t, "/anywhere/b.jsonnet", got)
}

func TestResolveNotFound(t *testing.T) {
	r := New(Config{FileSystem: fakeFS{}})

	_, err := r.resolve("/a/main.jsonnet", "missing.jsonnet")
	assert.Error(t, err)
}
