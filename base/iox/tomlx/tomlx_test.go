// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tomlx

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStruct struct {
	Name  string
	Count int
	Rate  float32
	Tags  []string
}

func TestSaveOpen(t *testing.T) {
	ts := &testStruct{Name: "sparks", Count: 120, Rate: 2.5, Tags: []string{"fire", "hot"}}
	fn := filepath.Join(t.TempDir(), "test.toml")
	require.NoError(t, Save(ts, fn))

	res := &testStruct{}
	require.NoError(t, Open(res, fn))
	assert.Equal(t, ts, res)

	assert.Error(t, Open(res, filepath.Join(t.TempDir(), "missing.toml")))
}

func TestBytes(t *testing.T) {
	ts := &testStruct{Name: "smoke", Count: 3}
	b, err := WriteBytes(ts)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Name = 'smoke'")

	res := &testStruct{}
	require.NoError(t, ReadBytes(res, b))
	assert.Equal(t, ts.Name, res.Name)
	assert.Equal(t, ts.Count, res.Count)

	fsys := fstest.MapFS{"x.toml": {Data: b}}
	res = &testStruct{}
	require.NoError(t, OpenFS(res, fsys, "x.toml"))
	assert.Equal(t, "smoke", res.Name)

	assert.Error(t, ReadBytes(res, []byte("Name = ")))
}
