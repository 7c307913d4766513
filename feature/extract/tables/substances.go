package tables

import (
	"go.uber.org/zap"

	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
)

// Substances extracts the raw-material (substance) table. Rows without an
// icon are skipped.
func Substances(c *Context, path string) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	items := []models.Item{}
	counter := 1
	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("ID", "")
		if id == "" {
			id = numberedID("SUBSTANCE", counter)
		}

		nameKey := row.Prop("Name", "")
		subtitleKey := row.Prop("Subtitle", "")
		descKey := row.Prop("Description", "")

		iconPath := rowIconPath(row)
		if iconPath == "" {
			continue
		}

		symbol := ""
		if symbolKey := row.Prop("Symbol", ""); symbolKey != "" {
			symbol = c.Locale.Translate(symbolKey, "")
		}

		items = append(items, models.Item{
			"Id":                    id,
			"Icon":                  id + ".png",
			"IconPath":              iconPath,
			"Name":                  c.Locale.Translate(nameKey, nameKey),
			"Group":                 c.Locale.Translate(subtitleKey, subtitleKey),
			"Description":           c.Locale.Translate(descKey, descKey),
			"BaseValueUnits":        mxml.CoerceProp(row, "BaseValue", "0"),
			"CurrencyType":          "Credits",
			"Colour":                mxml.Colour(row.Find("Colour")),
			"CdnUrl":                "",
			"Usages":                []any{},
			"BlueprintCost":         0,
			"BlueprintCostType":     "None",
			"BlueprintSource":       0,
			"RequiredItems":         []models.Requirement{},
			"StatBonuses":           []any{},
			"ConsumableRewardTexts": []any{},
			"Category":              orNil(row.NestedEnum("Category", "SubstanceCategory", "")),
			"Rarity":                orNil(row.NestedEnum("Rarity", "Rarity", "")),
			"CookingIngredient":     boolProp(row, "CookingIngredient"),
			"Symbol":                orNil(symbol),
		})
		counter++
	}

	c.Log.Info("raw materials extracted", zap.Int("items", len(items)))
	return items, nil
}
