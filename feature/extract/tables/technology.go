package tables

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
)

// Technology extracts the installed-technology table, including stat
// bonuses, charge sources, and upgrade/core flags.
func Technology(c *Context, path string) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	items := []models.Item{}
	counter := 1
	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("ID", "")
		if id == "" {
			id = numberedID("TECH", counter)
		}

		nameKey := row.Prop("Name", "")
		subtitleKey := row.Prop("Subtitle", "")
		descKey := row.Prop("Description", "")
		if c.unresolvedKeys(nameKey, subtitleKey, descKey) >= 2 {
			continue
		}

		iconPath := rowIconPath(row)
		if iconPath == "" {
			continue
		}

		chargeable := boolProp(row, "Chargeable")
		usages := []string{}
		if chargeable {
			usages = append(usages, "HasChargedBy")
		}
		usages = append(usages, "HasDevProperties")

		chargeBy := []string{}
		if prop := row.Find("ChargeBy"); prop != nil {
			for _, child := range prop.Children {
				if child.Name == "ChargeBy" && child.Value != "" {
					chargeBy = append(chargeBy, child.Value)
				}
			}
		}

		items = append(items, models.Item{
			"Id":                    id,
			"Icon":                  id + ".png",
			"IconPath":              iconPath,
			"Name":                  c.Locale.Translate(nameKey, id),
			"Group":                 c.Locale.Translate(subtitleKey, ""),
			"Description":           c.Locale.Translate(descKey, ""),
			"BaseValueUnits":        mxml.CoerceProp(row, "BaseValue", "1"),
			"CurrencyType":          "None",
			"Colour":                mxml.Colour(row.Find("Colour")),
			"Usages":                usages,
			"BlueprintCost":         1,
			"BlueprintCostType":     "Nanites",
			"BlueprintSource":       0,
			"RequiredItems":         rowRequirements(row),
			"StatBonuses":           rowStatBonuses(row),
			"ConsumableRewardTexts": []any{},
			"Category":              orNil(row.NestedEnum("Category", "TechnologyCategory", "")),
			"Rarity":                orNil(row.NestedEnum("Rarity", "TechnologyRarity", "")),
			"Chargeable":            chargeable,
			"ChargeBy":              chargeBy,
			"Upgrade":               boolProp(row, "Upgrade"),
			"Core":                  boolProp(row, "Core"),
			"ParentTechId":          orNil(row.Prop("ParentTechId", "")),
			"RequiredTech":          orNil(row.Prop("RequiredTech", "")),
		})
		counter++
	}

	c.Log.Info("technologies extracted", zap.Int("items", len(items)))
	return items, nil
}

func rowStatBonuses(row *mxml.Node) []any {
	bonuses := []any{}
	prop := row.Find("StatBonuses")
	if prop == nil {
		return bonuses
	}
	for _, stat := range prop.Children {
		statType := stat.Find("Stat").Prop("StatsType", "")
		if statType == "" {
			continue
		}
		bonus, err := strconv.ParseFloat(stat.Prop("Bonus", "0"), 64)
		if err != nil {
			bonus = 0
		}
		bonuses = append(bonuses, map[string]any{
			"Name":              statDisplayName(statType, "Suit_"),
			"LocaleKeyTemplate": "enabled",
			"Image":             statImage(statType),
			"Value":             strconv.Itoa(int(bonus)),
		})
	}
	return bonuses
}

// statImage derives an icon slug from the stat type's last segment.
func statImage(statType string) string {
	lower := strings.ToLower(statType)
	if i := strings.LastIndex(lower, "_"); i >= 0 {
		return lower[i+1:]
	}
	return "enabled"
}
