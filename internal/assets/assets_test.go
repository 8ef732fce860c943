package assets

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectory_List(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png":         {Data: []byte("a")},
		"PHOTO.JPG":     {Data: []byte("b")},
		"c.Jpeg":        {Data: []byte("c")},
		"d.gif":         {Data: []byte("d")},
		"e.webp":        {Data: []byte("e")},
		"notes.txt":     {Data: []byte("f")},
		"icon.svg":      {Data: []byte("g")},
		"png":           {Data: []byte("h")},
		"archive.png.z": {Data: []byte("i")},
		"album.png/x":   {Data: []byte("j")},
	}

	names, err := NewFS(fsys, nil).List(context.Background())
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"a.png", "PHOTO.JPG", "c.Jpeg", "d.gif", "e.webp"}, names)
}

func TestDirectory_List_configured_extensions(t *testing.T) {
	fsys := fstest.MapFS{
		"a.png":    {Data: []byte("a")},
		"icon.SVG": {Data: []byte("b")},
	}

	names, err := NewFS(fsys, []string{"svg"}).List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"icon.SVG"}, names)
}

func TestDirectory_List_empty(t *testing.T) {
	names, err := NewFS(fstest.MapFS{}, nil).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestDirectory_List_missing_directory(t *testing.T) {
	dir := NewDirectory(filepath.Join(t.TempDir(), "missing"), nil)

	_, err := dir.List(context.Background())

	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.NotErrorIs(t, err, ErrNoAssets)
}

func TestDirectory_List_cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFS(fstest.MapFS{"a.png": {}}, nil).List(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDirectory_Open(t *testing.T) {
	dir := NewFS(fstest.MapFS{
		"a.png":       {Data: []byte("banana")},
		"album.png/x": {Data: []byte("x")},
	}, nil)

	t.Run("existing file", func(t *testing.T) {
		f, err := dir.Open("a.png")
		require.NoError(t, err)
		defer closeAndIgnoreError(f)
		buf, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, "banana", string(buf))
	})

	t.Run("vanished file", func(t *testing.T) {
		_, err := dir.Open("b.png")
		assert.ErrorIs(t, err, ErrReadFailure)
	})

	t.Run("directory", func(t *testing.T) {
		_, err := dir.Open("album.png")
		assert.ErrorIs(t, err, ErrReadFailure)
	})
}

func TestPick(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		_, err := Pick(nil, nil)
		assert.ErrorIs(t, err, ErrNoAssets)
		assert.False(t, errors.Is(err, ErrSourceUnavailable))
	})

	t.Run("uses the index from intn", func(t *testing.T) {
		name, err := Pick([]string{"a", "b", "c"}, func(n int) int {
			assert.Equal(t, 3, n)
			return 2
		})
		require.NoError(t, err)
		assert.Equal(t, "c", name)
	})

	t.Run("every index is reachable", func(t *testing.T) {
		names := []string{"a", "b", "c", "d", "e"}
		seen := make(map[string]int)
		for i := 0; i < 2000; i++ {
			name, err := Pick(names, nil)
			require.NoError(t, err)
			seen[name]++
		}
		assert.Len(t, seen, len(names))
	})

	t.Run("single candidate", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			name, err := Pick([]string{"a.png"}, nil)
			require.NoError(t, err)
			assert.Equal(t, "a.png", name)
		}
	})
}

func TestNormalizeExtensions(t *testing.T) {
	assert.Equal(t, []string{".png", ".jpg", ".gif"}, NormalizeExtensions([]string{"PNG", ".jpg", " gif ", "", ".", "png"}))
}

func TestContentType(t *testing.T) {
	for _, tt := range []struct {
		Name string
		Type string
	}{
		{Name: "a.png", Type: "image/png"},
		{Name: "PHOTO.JPG", Type: "image/jpeg"},
		{Name: "b.jpeg", Type: "image/jpeg"},
		{Name: "c.gif", Type: "image/gif"},
		{Name: "d.webp", Type: "image/webp"},
		{Name: "e.unknown-ext", Type: "application/octet-stream"},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			assert.Equal(t, tt.Type, ContentType(tt.Name))
		})
	}
}
