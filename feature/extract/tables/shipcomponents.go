package tables

import (
	"go.uber.org/zap"

	"nms-extractor/core/mxml"
	"nms-extractor/core/utils"
	"nms-extractor/feature/extract/models"
)

// shipSubtitleGroups maps modular-ship subtitle keys onto display groups.
var shipSubtitleGroups = map[string]string{
	"UI_DROPSHIP_PART_SUB":   "Hauler Starship Component",
	"UI_FIGHTER_PART_SUB":    "Fighter Starship Component",
	"UI_SAIL_PART_SUB":       "Solar Starship Component",
	"UI_SCIENTIFIC_PART_SUB": "Explorer Starship Component",
	"UI_FOS_BI_BODY_SUB":     "Living Ship Component",
	"UI_FOS_BI_TAIL_SUB":     "Living Ship Component",
	"UI_FOS_HEAD_SUB":        "Living Ship Component",
	"UI_FOS_LIMBS_SUB":       "Living Ship Component",
	"UI_SHIP_CORE_A_SUB":     "Starship Core Component",
	"UI_SHIP_CORE_B_SUB":     "Starship Core Component",
	"UI_SHIP_CORE_C_SUB":     "Starship Core Component",
	"UI_SHIP_CORE_S_SUB":     "Starship Core Component",
}

// ShipComponents extracts the modular ship customization table.
func ShipComponents(c *Context, path string) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	items := []models.Item{}
	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("ID", "")
		nameKey := row.Prop("Name", "")
		subtitleKey := row.Prop("Subtitle", "")
		descKey := row.Prop("Description", "")

		group, ok := shipSubtitleGroups[subtitleKey]
		if !ok {
			group = "Starship Component"
		}

		name := nameKey
		if nameKey != "" {
			name = c.Locale.Translate(nameKey, nameKey)
		}
		description := ""
		if descKey != "" {
			description = c.Locale.Translate(descKey, descKey)
		}

		items = append(items, models.Item{
			"Id":          id,
			"Name":        name,
			"Group":       group,
			"Description": description,
			"BaseValue":   utils.ToInt(mxml.CoerceProp(row, "BaseValue", "0")),
			"Icon":        rowIconPath(row),
		})
	}

	c.Log.Info("ship components extracted", zap.Int("items", len(items)))
	return items, nil
}
