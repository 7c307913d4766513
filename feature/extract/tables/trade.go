package tables

import (
	"strings"

	"go.uber.org/zap"

	"nms-extractor/feature/extract/models"
)

// Trade extracts tradeable goods from the product table: rows grouped as
// trade goods (with a real trade category) or smuggled goods, in table row
// order.
func Trade(c *Context, path string) ([]models.Item, error) {
	lookup, err := c.ProductLookup(path, false)
	if err != nil {
		return nil, err
	}

	items := []models.Item{}
	for _, id := range lookup.IDs() {
		rec, _ := lookup.Get(id)

		isTradeGoods := strings.HasPrefix(rec.Group, "Trade Goods")
		isSmuggledGoods := strings.HasPrefix(rec.Group, "Smuggled Goods")
		if !isTradeGoods && !isSmuggledGoods {
			continue
		}
		if isTradeGoods && (rec.TradeCategory == "" || rec.TradeCategory == "None") {
			continue
		}
		if rec.IconPath == "" {
			continue
		}

		group := rec.Group
		if group == "" {
			group = "Trade Goods (" + rec.TradeCategory + ")"
		}

		items = append(items, models.Item{
			"Id":                    id,
			"Icon":                  id + ".png",
			"IconPath":              rec.IconPath,
			"Name":                  rec.Name,
			"Group":                 group,
			"Description":           rec.Description,
			"BaseValueUnits":        rec.BaseValueUnits,
			"CurrencyType":          "Credits",
			"MaxStackSize":          rec.MaxStackSize,
			"Colour":                rec.Colour,
			"CdnUrl":                "",
			"Usages":                []any{},
			"BlueprintCost":         1,
			"BlueprintCostType":     "None",
			"BlueprintSource":       0,
			"RequiredItems":         []models.Requirement{},
			"StatBonuses":           []any{},
			"ConsumableRewardTexts": []any{},
		})
	}

	c.Log.Info("trade goods extracted", zap.Int("items", len(items)))
	return items, nil
}
