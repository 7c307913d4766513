package tables

import (
	"strings"

	"go.uber.org/zap"

	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
)

// Buildings extracts the base-building object table. The table carries no
// display text or icons of its own: names resolve from the object id and
// icons come from the product row named by IconOverrideProductID. Rows
// without a resolvable icon are skipped.
func Buildings(c *Context, path string) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	icons := c.ProductIcons()

	items := []models.Item{}
	counter := 1
	for _, row := range root.ArrayItems("Objects") {
		id := row.Prop("ID", "")
		if id == "" {
			id = numberedID("BUILDING", counter)
		}

		name := c.Locale.Translate(id, titleWords(strings.ReplaceAll(id, "_", " ")))

		group := "Base Building Part"
		groups := []any{}
		if prop := row.Find("Groups"); prop != nil {
			for _, entry := range prop.Children {
				if entry.Name != "Groups" {
					continue
				}
				g := entry.Prop("Group", "")
				if g == "" {
					continue
				}
				groups = append(groups, map[string]any{
					"Group":        g,
					"SubGroupName": orNil(entry.Prop("SubGroupName", "")),
				})
			}
			if len(groups) > 0 {
				first := groups[0].(map[string]any)["Group"].(string)
				group = c.Locale.Translate(first, titleWords(strings.ReplaceAll(first, "_", " ")))
			}
		}

		iconOverride := row.Prop("IconOverrideProductID", "")
		iconPath := ""
		if iconOverride != "" {
			iconPath = icons[iconOverride]
		}
		if iconPath == "" {
			continue
		}

		item := models.Item{
			"Id":                    id,
			"Icon":                  id + ".png",
			"IconPath":              iconPath,
			"Name":                  name,
			"Group":                 group,
			"Description":           "",
			"BaseValueUnits":        1,
			"CurrencyType":          "None",
			"Colour":                "CCCCCC",
			"CdnUrl":                "",
			"Usages":                []string{"HasDevProperties"},
			"BlueprintCost":         1,
			"BlueprintCostType":     "None",
			"BlueprintSource":       0,
			"RequiredItems":         []models.Requirement{},
			"StatBonuses":           []any{},
			"ConsumableRewardTexts": []any{},
			"IconOverrideProductID": orNil(iconOverride),
			"BuildableOnPlanetBase": coerceBool(row, "BuildableOnPlanetBase", true),
			"BuildableOnSpaceBase":  coerceBool(row, "BuildableOnSpaceBase", false),
			"BuildableOnFreighter":  coerceBool(row, "BuildableOnFreighter", false),
		}
		if len(groups) > 0 {
			item["Groups"] = groups
		} else {
			item["Groups"] = nil
		}
		item["LinkGridData"] = rowLinkGridData(row)

		items = append(items, item)
		counter++
	}

	c.Log.Info("buildings extracted", zap.Int("items", len(items)))
	return items, nil
}

// ProductIcons maps product id to normalized icon path across the whole
// product table, with no row filtering. Built lazily, reused per run.
func (c *Context) ProductIcons() map[string]string {
	if c.productIcons != nil {
		return c.productIcons
	}
	c.productIcons = make(map[string]string)

	root, err := c.Cache.Load(c.Path(FileProducts))
	if err != nil {
		c.Log.Warn("product icon lookup unavailable", zap.Error(err))
		return c.productIcons
	}
	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("ID", "")
		if id == "" {
			continue
		}
		if path := rowIconPath(row); path != "" {
			c.productIcons[id] = path
		}
	}
	return c.productIcons
}

func rowLinkGridData(row *mxml.Node) any {
	link := row.Find("LinkGridData")
	if link == nil {
		return nil
	}
	linkType := ""
	if network := link.Find("Network"); network != nil {
		linkType = network.NestedEnum("LinkNetworkType", "LinkNetworkType", "")
	}
	rate := mxml.CoerceProp(link, "Rate", "0")
	storage := mxml.CoerceProp(link, "Storage", "0")
	if linkType == "" && isZeroValue(rate) && isZeroValue(storage) {
		return nil
	}
	return map[string]any{
		"Network": orNil(linkType),
		"Rate":    rate,
		"Storage": storage,
	}
}

func coerceBool(row *mxml.Node, name string, def bool) bool {
	fallback := "false"
	if def {
		fallback = "true"
	}
	b, ok := mxml.CoerceProp(row, name, fallback).(bool)
	if !ok {
		return def
	}
	return b
}
