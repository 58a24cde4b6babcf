package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	pgzip "github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shardOne = `[
	{"id": "P001", "name": "iPhone 15 Pro Max", "category": "Smartphone", "brand": "Apple",
	 "price": 21999000, "rating": 4.8, "description": "Flagship", "in_stock": true}
]`

const shardTwo = `[
	{"id": "P002", "name": "Galaxy A54", "category": "Smartphone", "brand": "Samsung",
	 "price": 5999000, "rating": 4.4, "description": "Mid-range", "in_stock": true}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func writeGzFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoadBytes(t *testing.T) {
	s, err := LoadBytes([]byte(shardOne))
	require.NoError(t, err)
	require.Equal(t, 1, s.Len())

	p, err := s.GetByID("P001")
	require.NoError(t, err)
	assert.Equal(t, "iPhone 15 Pro Max", p.Name)
	assert.Equal(t, "21999000", p.Price.String())
	assert.InDelta(t, 4.8, p.Rating, 1e-9)
	assert.True(t, p.InStock)
}

func TestLoadBytes_Malformed(t *testing.T) {
	_, err := LoadBytes([]byte(`{"not": "an array"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog JSON")
}

func TestLoad_MergesShardsInArgumentOrder(t *testing.T) {
	one := writeFile(t, "one.json", shardOne)
	two := writeGzFile(t, "two.json.gz", shardTwo)

	s, err := Load(context.Background(), one, two)
	require.NoError(t, err)
	require.Equal(t, 2, s.Len())

	all := s.All()
	assert.Equal(t, "P001", all[0].ID)
	assert.Equal(t, "P002", all[1].ID)
}

func TestLoad_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "absent.json"))
		require.Error(t, err)
	})

	t.Run("no files", func(t *testing.T) {
		_, err := Load(context.Background())
		require.Error(t, err)
	})

	t.Run("duplicate id across shards", func(t *testing.T) {
		one := writeFile(t, "one.json", shardOne)
		dup := writeFile(t, "dup.json", shardOne)

		_, err := Load(context.Background(), one, dup)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "duplicate product id")
	})

	t.Run("corrupt gzip", func(t *testing.T) {
		bad := writeFile(t, "bad.json.gz", "not gzip data")
		_, err := Load(context.Background(), bad)
		require.Error(t, err)
	})
}
