package tables

import (
	"strings"

	"go.uber.org/zap"

	"nms-extractor/feature/extract/models"
)

// Consumables extracts the consumable-item table by joining its product ids
// against the product table, then attaching the effect category and reward
// stats resolved from the reward table. Entries without a matching product
// row or icon are skipped.
func Consumables(c *Context, path string) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	products, err := c.ProductLookup(c.Path(FileProducts), true)
	if err != nil {
		return nil, err
	}

	items := []models.Item{}
	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("ID", "")
		if id == "" {
			continue
		}
		rec, ok := products.Get(id)
		if !ok || rec.IconPath == "" {
			continue
		}

		rewardID := row.Prop("RewardID", "")

		items = append(items, models.Item{
			"Id":                    id,
			"Icon":                  id + ".png",
			"IconPath":              rec.IconPath,
			"Name":                  rec.Name,
			"Group":                 rec.Group,
			"Description":           rec.Description,
			"BaseValueUnits":        rec.BaseValueUnits,
			"CurrencyType":          "Credits",
			"MaxStackSize":          rec.MaxStackSize,
			"Colour":                rec.Colour,
			"CookingValue":          rec.CookingValue,
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
			"RewardID":              orNil(rewardID),
			"EffectCategory":        effectCategory(rewardID),
			"RewardEffectStats":     c.RewardEffects(rewardID),
		})
	}

	c.Log.Info("consumables extracted", zap.Int("items", len(items)))
	return items, nil
}

// effectCategory maps a reward id onto a friendly consumable effect label.
func effectCategory(rewardID string) string {
	rid := strings.ToUpper(rewardID)
	switch {
	case rid == "":
		return "Unknown"
	case strings.HasPrefix(rid, "DE_FOOD_JETPACK"):
		return "Jetpack"
	case strings.HasPrefix(rid, "DE_FOOD_HAZ"):
		return "Hazard Protection"
	case strings.HasPrefix(rid, "DE_FOOD_ENERGY"):
		return "Life Support"
	case strings.HasPrefix(rid, "DE_FOOD_HEALTH"):
		return "Health"
	case strings.HasPrefix(rid, "DE_FOOD_STAMINA"):
		return "Stamina"
	}
	return "Unknown"
}
