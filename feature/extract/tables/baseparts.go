package tables

import (
	"strings"

	"go.uber.org/zap"

	"nms-extractor/feature/extract/models"
)

// BaseParts extracts the buildable base-part product table. Rows are
// product-shaped, so the product extractor does the work; the group is then
// overridden for freighter interior modules, recognizable by a
// space-station subtitle key or a freighter id fragment.
func BaseParts(c *Context, path string) ([]models.Item, error) {
	items, err := Products(c, path)
	if err != nil {
		return nil, err
	}

	subtitleKeys := make(map[string]string)
	if root, loadErr := c.Cache.Load(path); loadErr == nil {
		for _, row := range root.ArrayItems("Table") {
			if id := row.Prop("ID", ""); id != "" {
				subtitleKeys[id] = row.Prop("Subtitle", "")
			}
		}
	}

	for _, item := range items {
		id := item.ID()
		if strings.Contains(subtitleKeys[id], "SPACE") || strings.Contains(id, "FREI") {
			item["Group"] = "Freighter Interior Module"
		}
	}

	c.Log.Info("base parts extracted", zap.Int("items", len(items)))
	return items, nil
}
