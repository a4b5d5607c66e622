package catalog

import (
	"context"
	"delivery-rate-service/internal/domain"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFileYAML(t *testing.T) {
	path := writeFile(t, "stores.yaml", `
stores:
  - name: Jayanagar
    latitude: 12.9292656
    longitude: 77.5816819
    status: Enabled
  - name: Indiranagar
    latitude: 12.9783692
    longitude: 77.6408356
    status: disabled
  - name: Malleshwaram
    latitude: 13.0035
    longitude: 77.5709
`)

	cat, err := LoadFile(path)
	require.NoError(t, err)

	stores, err := cat.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 3)

	assert.Equal(t, "Jayanagar", stores[0].Name)
	assert.Equal(t, domain.GeoPoint{Latitude: 12.9292656, Longitude: 77.5816819}, stores[0].Location)
	assert.True(t, stores[0].Enabled)
	assert.False(t, stores[1].Enabled)
	assert.True(t, stores[2].Enabled, "missing status means enabled")
}

func TestLoadFileJSON(t *testing.T) {
	path := writeFile(t, "stores.json", `{"stores":[{"name":"Jayanagar","latitude":12.9292656,"longitude":77.5816819,"status":"Enabled"}]}`)

	cat, err := LoadFile(path)
	require.NoError(t, err)

	stores, err := cat.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Jayanagar", stores[0].Name)
}

func TestLoadFileQuotedCoordinates(t *testing.T) {
	want := domain.GeoPoint{Latitude: 12.9292656, Longitude: 77.5816819}

	files := map[string]string{
		"stores.json": `{"stores":[{"name":"Jayanagar","latitude":"12.9292656","longitude":"77.5816819","status":"Enabled"}]}`,
		"stores.yaml": "stores:\n  - name: Jayanagar\n    latitude: \"12.9292656\"\n    longitude: '77.5816819'\n    status: Enabled\n",
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			cat, err := LoadFile(writeFile(t, name, content))
			require.NoError(t, err)

			stores, err := cat.ListStores(context.Background())
			require.NoError(t, err)
			require.Len(t, stores, 1)
			assert.Equal(t, want, stores[0].Location)
		})
	}
}

func TestLoadShippedCatalog(t *testing.T) {
	cat, err := LoadFile(filepath.Join("..", "..", "..", "data", "stores.yaml"))
	require.NoError(t, err)

	stores, err := cat.ListStores(context.Background())
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "Jayanagar", stores[0].Name)
	assert.Equal(t, domain.GeoPoint{Latitude: 12.9292656, Longitude: 77.5816819}, stores[0].Location)
	assert.True(t, stores[0].Enabled)
}

func TestLoadFileErrors(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		content string
		target  error
	}{
		{"out of range latitude", "bad.yaml", "stores:\n  - name: X\n    latitude: 91\n    longitude: 0\n", domain.ErrInvalidCoordinate},
		{"unknown status", "bad.yaml", "stores:\n  - name: X\n    latitude: 1\n    longitude: 1\n    status: paused\n", nil},
		{"empty name", "bad.json", `{"stores":[{"name":" ","latitude":1,"longitude":1}]}`, nil},
		{"unknown yaml field", "bad.yml", "stores:\n  - name: X\n    lat: 1\n", nil},
		{"unsupported extension", "stores.toml", "", nil},
		{"non-numeric json coordinate", "bad.json", `{"stores":[{"name":"X","latitude":"north","longitude":1}]}`, nil},
		{"non-numeric yaml coordinate", "bad.yaml", "stores:\n  - name: X\n    latitude: north\n    longitude: 1\n", nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tc.file, tc.content))
			require.Error(t, err)
			if tc.target != nil {
				assert.True(t, errors.Is(err, tc.target), "err = %v", err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestStaticCatalogReturnsCopy(t *testing.T) {
	cat := NewStaticCatalog([]domain.StoreLocation{{Name: "A", Enabled: true}})

	first, err := cat.ListStores(context.Background())
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := cat.ListStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A", second[0].Name)
}
