package extract

import (
	"strings"

	"nms-extractor/feature/extract/models"
)

// Catalog names, in the fixed order catalogs are created and deduplicated.
// The order decides which catalog keeps an id the cross-file dedup pass
// sees twice.
const (
	CatalogRefinery          = "Refinery"
	CatalogNutrientProcessor = "NutrientProcessor"
	CatalogFish              = "Fish"
	CatalogTrade             = "Trade"
	CatalogRawMaterials      = "RawMaterials"
	CatalogBuildings         = "Buildings"
	CatalogConstructedTech   = "ConstructedTechnology"
	CatalogFood              = "Food"
	CatalogCorvette          = "Corvette"
	CatalogCuriosities       = "Curiosities"
	CatalogExocraft          = "Exocraft"
	CatalogStarships         = "Starships"
	CatalogOthers            = "Others"
	CatalogProducts          = "Products"
	CatalogTechnology        = "Technology"
	CatalogTechnologyModule  = "TechnologyModule"
	CatalogUpgrades          = "Upgrades"
)

// CatalogOrder is the canonical catalog sequence for a run.
var CatalogOrder = []string{
	CatalogRefinery,
	CatalogNutrientProcessor,
	CatalogFish,
	CatalogTrade,
	CatalogRawMaterials,
	CatalogBuildings,
	CatalogConstructedTech,
	CatalogFood,
	CatalogCorvette,
	CatalogCuriosities,
	CatalogExocraft,
	CatalogStarships,
	CatalogOthers,
	CatalogProducts,
	CatalogTechnology,
	CatalogTechnologyModule,
	CatalogUpgrades,
}

// categorizationRule routes an item to one catalog. Rules run in list
// order; the first match wins.
type categorizationRule struct {
	name   string
	target string
	match  func(item models.Item) bool
}

func groupContains(item models.Item, fragments ...string) bool {
	group := item.Str("Group")
	for _, fragment := range fragments {
		if strings.Contains(group, fragment) {
			return true
		}
	}
	return false
}

func hasField(item models.Item, key string) bool {
	v, ok := item[key]
	return ok && v != nil
}

func isTechShaped(item models.Item) bool {
	return hasField(item, "Chargeable")
}

// categorizationRules is the ordered rule set. Shape checks (fields only a
// single extractor emits) run before group-keyword checks so specific
// tables cannot be shadowed by incidental group wording.
var categorizationRules = []categorizationRule{
	{"building-table row", CatalogBuildings, func(i models.Item) bool {
		return hasField(i, "BuildableOnPlanetBase")
	}},
	{"consumable with effect", CatalogFood, func(i models.Item) bool {
		return hasField(i, "EffectCategory")
	}},
	{"procedural upgrade module", CatalogUpgrades, func(i models.Item) bool {
		return hasField(i, "Quality")
	}},
	{"corvette part", CatalogCorvette, func(i models.Item) bool {
		return strings.Contains(i.ID(), "CORVETTE") || groupContains(i, "Corvette")
	}},
	{"starship component", CatalogStarships, func(i models.Item) bool {
		return groupContains(i, "Starship", "Living Ship")
	}},
	{"exocraft item", CatalogExocraft, func(i models.Item) bool {
		return groupContains(i, "Exocraft", "Minotaur")
	}},
	{"freighter or base part", CatalogBuildings, func(i models.Item) bool {
		return groupContains(i, "Freighter Interior Module", "Base Building")
	}},
	{"technology module", CatalogTechnologyModule, func(i models.Item) bool {
		if !isTechShaped(i) {
			return false
		}
		upgrade, _ := i["Upgrade"].(bool)
		return upgrade
	}},
	{"constructed technology", CatalogConstructedTech, func(i models.Item) bool {
		return isTechShaped(i) && groupContains(i, "Constructed", "Portable")
	}},
	{"installed technology", CatalogTechnology, func(i models.Item) bool {
		return isTechShaped(i)
	}},
	{"curiosity", CatalogCuriosities, func(i models.Item) bool {
		return groupContains(i, "Curiosit", "Artifact", "Relic") || i.Str("WikiCategory") == "Curiosity"
	}},
	{"uncategorized trade good", CatalogOthers, func(i models.Item) bool {
		group := i.Str("Group")
		return strings.HasPrefix(group, "Trade Goods") || strings.HasPrefix(group, "Smuggled Goods")
	}},
	{"general product", CatalogProducts, func(i models.Item) bool {
		return hasField(i, "MaxStackSize")
	}},
}

// Categorize maps one item to its destination catalog. The second return
// is false when no rule matches; such items are retained separately for
// review, never silently dropped.
func Categorize(item models.Item) (string, bool) {
	for _, rule := range categorizationRules {
		if rule.match(item) {
			return rule.target, true
		}
	}
	return "", false
}
