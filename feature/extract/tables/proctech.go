package tables

import (
	"strings"

	"go.uber.org/zap"

	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
)

// qualityClassPrefix maps a procedural upgrade quality onto its class
// label.
var qualityClassPrefix = map[string]string{
	"Normal":    "C-Class",
	"Rare":      "B-Class",
	"Epic":      "A-Class",
	"Legendary": "S-Class",
}

// nodeGroupTokens mark living-ship organ groups, which take a "Node" suffix
// instead of "Upgrade".
var nodeGroupTokens = []string{"Node", "Eyes", "Assembly", "Heart", "Suppressor", "Cortex", "Vents"}

// ProceduralTech extracts the procedurally-rolled upgrade module table.
// Each module's group combines its quality class, translated group name,
// and an Upgrade/Node suffix; icons fall back to the template technology's
// icon when the module ships none of its own.
func ProceduralTech(c *Context, path string) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	templateIcons := c.TemplateIcons()

	items := []models.Item{}
	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("ID", "")
		groupKey := row.Prop("Group", "")
		nameKey := row.Prop("Name", "")
		descKey := row.Prop("Description", "")
		templateID := row.Prop("Template", "")
		quality := row.Prop("Quality", "Normal")

		hasNameTranslation := nameKey != "" && c.Locale.Has(nameKey)
		name := nameKey
		if nameKey != "" {
			name = c.Locale.Translate(nameKey, nameKey)
		}
		description := ""
		if descKey != "" {
			description = c.Locale.Translate(descKey, descKey)
		}

		groupName := id
		if groupKey != "" {
			groupName = c.Locale.Translate(groupKey, groupKey)
		}

		classPrefix, ok := qualityClassPrefix[quality]
		if !ok {
			classPrefix = quality
		}
		group := classPrefix + " " + groupName + " Upgrade"
		for _, token := range nodeGroupTokens {
			if strings.Contains(groupName, token) {
				group = classPrefix + " " + groupName + " Node"
				break
			}
		}

		// Internal-only name keys read better as the translated group.
		if !hasNameTranslation && groupName != "" && groupName != id {
			name = groupName
		}

		iconPath := rowIconPath(row)
		if iconPath == "" && templateID != "" {
			iconPath = templateIcons[templateID]
		}

		items = append(items, models.Item{
			"Id":             id,
			"Icon":           id + ".png",
			"IconPath":       iconPath,
			"Name":           name,
			"Group":          group,
			"Description":    description,
			"Quality":        quality,
			"NumStatsMin":    mxml.CoerceProp(row, "NumStatsMin", "0"),
			"NumStatsMax":    mxml.CoerceProp(row, "NumStatsMax", "0"),
			"WeightingCurve": row.NestedEnum("WeightingCurve", "WeightingCurve", ""),
			"StatLevels":     rowStatLevels(row),
		})
	}

	c.Log.Info("procedural upgrades extracted", zap.Int("items", len(items)))
	return items, nil
}

// TemplateIcons maps technology id to icon path for template fallbacks.
// Built lazily from the technology table, reused per run.
func (c *Context) TemplateIcons() map[string]string {
	if c.templateIcons != nil {
		return c.templateIcons
	}
	c.templateIcons = make(map[string]string)

	root, err := c.Cache.Load(c.Path(FileTechnology))
	if err != nil {
		c.Log.Warn("technology table unavailable for template icons", zap.Error(err))
		return c.templateIcons
	}
	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("ID", "")
		if id == "" {
			continue
		}
		if path := rowIconPath(row); path != "" {
			c.templateIcons[id] = path
		}
	}
	return c.templateIcons
}

// rowStatLevels extracts the procedural roll ranges.
func rowStatLevels(row *mxml.Node) []any {
	levels := []any{}
	prop := row.Find("StatLevels")
	if prop == nil {
		return levels
	}
	for _, stat := range prop.Children {
		if stat.Name != "StatLevels" {
			continue
		}
		statType := stat.NestedEnum("Stat", "StatsType", "")
		if statType == "" {
			continue
		}
		levels = append(levels, map[string]any{
			"StatType":       statType,
			"Name":           statDisplayName(statType),
			"ValueMin":       mxml.CoerceProp(stat, "ValueMin", "0"),
			"ValueMax":       mxml.CoerceProp(stat, "ValueMax", "0"),
			"WeightingCurve": stat.NestedEnum("WeightingCurve", "WeightingCurve", ""),
			"AlwaysChoose":   boolProp(stat, "AlwaysChoose"),
		})
	}
	return levels
}
