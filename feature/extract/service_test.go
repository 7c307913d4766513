package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nms-extractor/core/game"
	"nms-extractor/feature/extract/models"
	"nms-extractor/feature/extract/tables"
)

func writeDoc(t *testing.T, dir, name, rows string) {
	t.Helper()
	doc := `<?xml version="1.0" encoding="utf-8"?><Data><Property name="Table">` + rows + `</Property></Data>`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(doc), 0644))
}

func writeLocale(t *testing.T, dir string, entries map[string]string) {
	t.Helper()
	rows := ""
	for key, text := range entries {
		rows += fmt.Sprintf(
			`<Property name="Table" _id="%s"><Property name="English" value="%s" /></Property>`,
			key, text)
	}
	writeDoc(t, dir, "nms_loc1_english.MXML", rows)
}

func readItems(t *testing.T, path string) []models.Item {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var items []models.Item
	require.NoError(t, json.Unmarshal(data, &items))
	return items
}

func TestServiceRun(t *testing.T) {
	tableDir := t.TempDir()
	outDir := t.TempDir()

	writeLocale(t, tableDir, map[string]string{
		"CASING_NAME": "METAL PLATING",
		"CASING_SUB":  "Crafted Component",
		"CASING_DESC": "A robust shell.",
	})
	writeDoc(t, tableDir, tables.FileProducts, `
<Property name="Table">
	<Property name="ID" value="CASING" />
	<Property name="Name" value="CASING_NAME" />
	<Property name="Subtitle" value="CASING_SUB" />
	<Property name="Description" value="CASING_DESC" />
	<Property name="BaseValue" value="200" />
	<Property name="StackMultiplier" value="5" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\CASING.DDS" /></Property>
</Property>`)

	cfg := game.Config{
		DataDir:   tableDir,
		TableDir:  tableDir,
		OutputDir: outDir,
		Platform:  "Win",
	}
	summary, err := NewService(cfg, zap.NewNop()).Run()
	require.NoError(t, err)

	t.Run("writes every catalog plus the review file", func(t *testing.T) {
		for _, name := range CatalogOrder {
			assert.FileExists(t, filepath.Join(outDir, name+".json"), name)
		}
		assert.FileExists(t, filepath.Join(outDir, UncategorizedFile))
		assert.FileExists(t, filepath.Join(outDir, LocalizationFile))
		assert.Len(t, summary.Files, len(CatalogOrder))
	})

	t.Run("routes the product through categorization", func(t *testing.T) {
		products := readItems(t, filepath.Join(outDir, "Products.json"))
		require.Len(t, products, 1)
		assert.Equal(t, "CASING", products[0].ID())
		assert.Equal(t, "Metal Plating", products[0]["Name"])
		assert.Equal(t, "products/CASING", products[0]["Slug"])
		assert.Equal(t, 1, summary.Categorized)
		assert.Equal(t, 0, summary.Uncategorized)
	})

	t.Run("missing tables degrade to empty catalogs", func(t *testing.T) {
		fish := readItems(t, filepath.Join(outDir, "Fish.json"))
		assert.Empty(t, fish)
	})

	t.Run("localization table holds the merged keys", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(outDir, LocalizationFile))
		require.NoError(t, err)
		var table map[string]string
		require.NoError(t, json.Unmarshal(data, &table))
		assert.Equal(t, "Metal Plating", table["CASING_NAME"])
	})
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.json")

	size, err := WriteJSON(path, []models.Item{{"Id": "A<B"}}, "\t")
	require.NoError(t, err)
	assert.Greater(t, size, int64(0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// HTML escaping stays off so item text keeps its literal characters.
	assert.Contains(t, string(data), "A<B")
}
