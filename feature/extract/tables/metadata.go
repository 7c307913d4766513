package tables

import (
	"os"

	"go.uber.org/zap"

	"nms-extractor/core/mxml"
)

// basePartMetadata extracts the extended product fields shared by the
// corvette and exocraft enrichment lookups.
func basePartMetadata(row *mxml.Node) map[string]any {
	heroIcon := ""
	if hero := row.Find("HeroIcon"); hero != nil {
		heroIcon = mxml.NormalizeIconPath(hero.Prop("Filename", ""))
	}
	return map[string]any{
		"HeroIconPath":              orNil(heroIcon),
		"BuildableShipTechID":       orNil(row.Prop("BuildableShipTechID", "")),
		"GroupID":                   orNil(row.Prop("GroupID", "")),
		"SubstanceCategory":         orNil(row.NestedEnum("Category", "SubstanceCategory", "")),
		"ProductCategory":           orNil(row.NestedEnum("Type", "ProductCategory", "")),
		"Level":                     mxml.CoerceProp(row, "Level", "0"),
		"ChargeValue":               mxml.CoerceProp(row, "ChargeValue", "0"),
		"DefaultCraftAmount":        mxml.CoerceProp(row, "DefaultCraftAmount", "1"),
		"CraftAmountStepSize":       mxml.CoerceProp(row, "CraftAmountStepSize", "1"),
		"CraftAmountMultiplier":     mxml.CoerceProp(row, "CraftAmountMultiplier", "1"),
		"SpecificChargeOnly":        boolProp(row, "SpecificChargeOnly"),
		"NormalisedValueOnWorld":    mxml.CoerceProp(row, "NormalisedValueOnWorld", "0"),
		"NormalisedValueOffWorld":   mxml.CoerceProp(row, "NormalisedValueOffWorld", "0"),
		"IsCraftable":               boolProp(row, "IsCraftable"),
		"PinObjective":              orNil(row.Prop("PinObjective", "")),
		"PinObjectiveTip":           orNil(row.Prop("PinObjectiveTip", "")),
		"PinObjectiveMessage":       orNil(row.Prop("PinObjectiveMessage", "")),
		"PinObjectiveScannableType": orNil(row.NestedEnum("PinObjectiveScannableType", "ScanIconType", "")),
		"PinObjectiveEasyToRefine":  boolProp(row, "PinObjectiveEasyToRefine"),
		"NeverPinnable":             boolProp(row, "NeverPinnable"),
		"CanSendToOtherPlayers":     coerceBool(row, "CanSendToOtherPlayers", true),
	}
}

func (c *Context) partMetadata(files []string, extend func(row *mxml.Node, meta map[string]any)) map[string]map[string]any {
	metadata := make(map[string]map[string]any)
	for _, name := range files {
		path := c.Path(name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		root, err := c.Cache.Load(path)
		if err != nil {
			c.Log.Warn("metadata source unreadable", zap.String("path", path), zap.Error(err))
			continue
		}
		for _, row := range root.ArrayItems("Table") {
			id := row.Prop("ID", "")
			if id == "" {
				continue
			}
			meta := basePartMetadata(row)
			extend(row, meta)
			metadata[id] = meta
		}
	}
	return metadata
}

// CorvettePartMetadata indexes the extended fields for corvette parts from
// the base-part and modular customization tables.
func (c *Context) CorvettePartMetadata() map[string]map[string]any {
	return c.partMetadata([]string{FileBaseParts, FileShipParts}, func(row *mxml.Node, meta map[string]any) {
		meta["CorvettePartCategory"] = orNil(row.NestedEnum("CorvettePartCategory", "CorvettePartCategory", ""))
		meta["CorvetteRewardFrequency"] = mxml.CoerceProp(row, "CorvetteRewardFrequency", "0")
	})
}

// ExocraftPartMetadata indexes the extended fields for exocraft items from
// the product and base-part tables, including economy price modifiers.
func (c *Context) ExocraftPartMetadata() map[string]map[string]any {
	return c.partMetadata([]string{FileProducts, FileBaseParts}, func(row *mxml.Node, meta map[string]any) {
		meta["EconomyInfluenceMultiplier"] = mxml.CoerceProp(row, "EconomyInfluenceMultiplier", "0")
		meta["IsTechbox"] = boolProp(row, "IsTechbox")
		meta["GiveRewardOnSpecialPurchase"] = orNil(row.Prop("GiveRewardOnSpecialPurchase", ""))

		var priceModifiers any
		if cost := row.Find("Cost"); cost != nil {
			priceModifiers = map[string]any{
				"SpaceStationMarkup": mxml.CoerceProp(cost, "SpaceStationMarkup", "0"),
				"LowPriceMod":        mxml.CoerceProp(cost, "LowPriceMod", "0"),
				"HighPriceMod":       mxml.CoerceProp(cost, "HighPriceMod", "0"),
				"BuyBaseMarkup":      mxml.CoerceProp(cost, "BuyBaseMarkup", "0"),
				"BuyMarkupMod":       mxml.CoerceProp(cost, "BuyMarkupMod", "0"),
			}
		}
		meta["PriceModifiers"] = priceModifiers
	})
}
