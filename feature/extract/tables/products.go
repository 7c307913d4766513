package tables

import (
	"go.uber.org/zap"

	"nms-extractor/feature/extract/models"
)

// Products extracts the main product table. Rows with mostly-unresolved
// localization keys or no icon are skipped.
func Products(c *Context, path string) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	items := []models.Item{}
	for _, row := range root.ArrayItems("Table") {
		rec, ok := parseProductRow(c, row, rowOptions{
			includeRequirements: true,
			requireIcon:         true,
			keyDefaults:         true,
		})
		if !ok {
			continue
		}
		items = append(items, productItem(rec))
	}

	c.Log.Info("products extracted", zap.Int("items", len(items)))
	return items, nil
}

// productItem maps a normalized product row onto the uniform record shape.
func productItem(rec *LookupRecord) models.Item {
	return models.Item{
		"Id":                    rec.Id,
		"Icon":                  rec.Id + ".png",
		"IconPath":              rec.IconPath,
		"Name":                  rec.Name,
		"Group":                 rec.Group,
		"Description":           rec.Description,
		"BaseValueUnits":        rec.BaseValueUnits,
		"CurrencyType":          "Credits",
		"MaxStackSize":          rec.MaxStackSize,
		"Colour":                rec.Colour,
		"CdnUrl":                "",
		"Usages":                rec.Usages,
		"BlueprintCost":         rec.BlueprintCost,
		"BlueprintCostType":     "None",
		"BlueprintSource":       0,
		"RequiredItems":         rec.RequiredItems,
		"StatBonuses":           []any{},
		"ConsumableRewardTexts": []any{},
		"Rarity":                orNil(rec.Rarity),
		"Legality":              orNil(rec.Legality),
		"TradeCategory":         orNil(rec.TradeCategory),
		"WikiCategory":          orNil(rec.WikiCategory),
		"Consumable":            rec.Consumable,
		"CookingIngredient":     rec.CookingIngredient,
		"GoodForSelling":        rec.GoodForSelling,
		"EggModifierIngredient": rec.EggModifierIngredient,
		"DeploysInto":           orNil(rec.DeploysInto),
	}
}
