package serve

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nms-extractor/feature/extract"
)

func setupTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	dir := t.TempDir()
	app := fiber.New()
	handler := NewHandler(NewService(dir, zap.NewNop()))
	handler.RegisterRoutes(app)
	return app, dir
}

func TestHandleListCatalogs(t *testing.T) {
	app, dir := setupTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Products.json"), []byte(`[{"Id":"CASING"}]`), 0644))

	req := httptest.NewRequest("GET", "/catalogs/", nil)
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var infos []CatalogInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&infos))
	assert.Len(t, infos, len(extract.CatalogOrder))

	byName := make(map[string]CatalogInfo)
	for _, info := range infos {
		byName[info.Name] = info
	}
	assert.Equal(t, 1, byName["Products"].Items)
	// Catalogs not generated yet still appear, with zero counts.
	assert.Equal(t, 0, byName["Fish"].Items)
	assert.Zero(t, byName["Fish"].Bytes)
}

func TestHandleGetCatalog(t *testing.T) {
	app, dir := setupTestApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Trade.json"), []byte(`[{"Id":"CARGO"}]`), 0644))

	t.Run("returns the document", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/catalogs/Trade", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var items []map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
		require.Len(t, items, 1)
		assert.Equal(t, "CARGO", items[0]["Id"])
	})

	t.Run("unknown names are 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/catalogs/passwd", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("known but not generated is 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/catalogs/Fish", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestHandleGetLocalization(t *testing.T) {
	app, dir := setupTestApp(t)

	t.Run("missing table is 404", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/localization", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("returns the table", func(t *testing.T) {
		require.NoError(t, os.WriteFile(
			filepath.Join(dir, extract.LocalizationFile),
			[]byte(`{"CASING_NAME":"Metal Plating"}`), 0644))

		req := httptest.NewRequest("GET", "/localization", nil)
		resp, err := app.Test(req)

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var table map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&table))
		assert.Equal(t, "Metal Plating", table["CASING_NAME"])
	})
}
