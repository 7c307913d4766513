package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nms-extractor/core/locale"
	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
	"nms-extractor/feature/extract/tables"
)

func testRun(t *testing.T) *Run {
	t.Helper()
	resolver := locale.NewResolver(locale.Table{}, "Win", false)
	return &Run{
		Catalogs: models.NewSet(CatalogOrder...),
		Base:     map[string][]models.Item{},
		Tables:   tables.NewContext(mxml.NewCache(), resolver, zap.NewNop(), t.TempDir()),
		Log:      zap.NewNop(),
	}
}

func TestFilterMissingIcons(t *testing.T) {
	r := testRun(t)
	r.Catalogs.Append(CatalogProducts,
		models.Item{"Id": "KEEP", "IconPath": "products/keep.png"},
		models.Item{"Id": "DROP", "IconPath": ""},
	)
	// Recipes never declare an icon path and must pass through.
	r.Catalogs.Append(CatalogRefinery, models.Item{"Id": "RECIPE1"})

	filterMissingIcons(r)

	products := r.Catalogs.Catalog(CatalogProducts).Items
	require.Len(t, products, 1)
	assert.Equal(t, "KEEP", products[0].ID())
	assert.Len(t, r.Catalogs.Catalog(CatalogRefinery).Items, 1)
}

func TestApplySlugsBeforeMove(t *testing.T) {
	r := testRun(t)
	r.Catalogs.Append(CatalogExocraft,
		models.Item{"Id": "ROVER", "Name": "Nomad", "Group": "Exocraft"},
		models.Item{"Id": "ROVER_BOOST", "Name": "Nomad Engine Upgrade", "Group": "Exocraft Upgrade"},
	)

	applySlugs(r)
	moveExocraftUpgrades(r)

	exocraft := r.Catalogs.Catalog(CatalogExocraft).Items
	require.Len(t, exocraft, 1)
	assert.Equal(t, "exocraft/ROVER", exocraft[0]["Slug"])

	// The moved item keeps the slug assigned in its original catalog.
	upgrades := r.Catalogs.Catalog(CatalogUpgrades).Items
	require.Len(t, upgrades, 1)
	assert.Equal(t, "ROVER_BOOST", upgrades[0].ID())
	assert.Equal(t, "exocraft/ROVER_BOOST", upgrades[0]["Slug"])
}

func TestBackfillUpgradeStats(t *testing.T) {
	bonuses := []any{map[string]any{"Name": "Jetpack Tank", "Value": "100"}}

	t.Run("same-id source wins", func(t *testing.T) {
		r := testRun(t)
		r.Base["Technology"] = []models.Item{
			{"Id": "UP_JET1", "StatBonuses": bonuses},
		}
		r.Catalogs.Append(CatalogUpgrades, models.Item{"Id": "UP_JET1", "StatBonuses": []any{}})

		backfillUpgradeStats(r)

		item := r.Catalogs.Catalog(CatalogUpgrades).Items[0]
		assert.Equal(t, bonuses, item["StatBonuses"])
	})

	t.Run("falls back to the deploy target", func(t *testing.T) {
		r := testRun(t)
		r.Base["ProceduralTech"] = []models.Item{
			{"Id": "JETPACK_MOD", "StatLevels": bonuses},
		}
		r.Catalogs.Append(CatalogUpgrades,
			models.Item{"Id": "UP_WRAP", "DeploysInto": "JETPACK_MOD"},
		)

		backfillUpgradeStats(r)

		item := r.Catalogs.Catalog(CatalogUpgrades).Items[0]
		assert.Equal(t, bonuses, item["StatLevels"])
	})

	t.Run("never overwrites populated stats", func(t *testing.T) {
		r := testRun(t)
		own := []any{map[string]any{"Name": "Own"}}
		r.Base["Technology"] = []models.Item{
			{"Id": "UP_JET1", "StatBonuses": bonuses},
		}
		r.Catalogs.Append(CatalogUpgrades, models.Item{"Id": "UP_JET1", "StatBonuses": own})

		backfillUpgradeStats(r)

		item := r.Catalogs.Catalog(CatalogUpgrades).Items[0]
		assert.Equal(t, own, item["StatBonuses"])
	})
}

func TestNormalizeUpgradeNames(t *testing.T) {
	r := testRun(t)
	r.Catalogs.Append(CatalogUpgrades,
		models.Item{"Id": "UP_JET1", "Name": "Zaphiel", "Group": "C-Class Jetpack Upgrade"},
		models.Item{"Id": "TECH_FRAG", "Name": "Tech Fragment", "Group": "Salvaged Technology"},
	)

	normalizeUpgradeNames(r)

	items := r.Catalogs.Catalog(CatalogUpgrades).Items
	assert.Equal(t, "C-Class Jetpack Upgrade", items[0]["Name"])
	// Groups without an upgrade label are left alone.
	assert.Equal(t, "Tech Fragment", items[1]["Name"])
}

func TestBackfillUpgradeDescriptions(t *testing.T) {
	t.Run("wrapper description replaces the placeholder", func(t *testing.T) {
		r := testRun(t)
		r.Catalogs.Append(CatalogUpgrades,
			models.Item{"Id": "JETPACK_MOD", "Description": "Up JETPACK_MOD", "Group": "B-Class Jetpack Upgrade"},
			models.Item{"Id": "UP_WRAP", "DeploysInto": "JETPACK_MOD", "Description": "A finely tuned movement module.", "Group": "B-Class Jetpack Upgrade"},
		)

		backfillUpgradeDescriptions(r)

		items := r.Catalogs.Catalog(CatalogUpgrades).Items
		assert.Equal(t, "A finely tuned movement module.", items[0]["Description"])
	})

	t.Run("generates a description from group and quality", func(t *testing.T) {
		r := testRun(t)
		r.Catalogs.Append(CatalogUpgrades,
			models.Item{"Id": "UP_JET2", "Description": "Up UP_JET2", "Group": "B-Class Jetpack Upgrade", "Quality": "Rare"},
		)

		backfillUpgradeDescriptions(r)

		desc := r.Catalogs.Catalog(CatalogUpgrades).Items[0].Str("Description")
		assert.Contains(t, desc, "A significant upgrade for the Jetpack.")
		assert.Contains(t, desc, "exact upgrade statistics are unknown")
	})

	t.Run("real descriptions are untouched", func(t *testing.T) {
		r := testRun(t)
		r.Catalogs.Append(CatalogUpgrades,
			models.Item{"Id": "UP_JET3", "Description": "Upgrades the jetpack.", "Group": "C-Class Jetpack Upgrade"},
		)

		backfillUpgradeDescriptions(r)

		assert.Equal(t, "Upgrades the jetpack.", r.Catalogs.Catalog(CatalogUpgrades).Items[0]["Description"])
	})
}

func TestIsPlaceholderDescription(t *testing.T) {
	assert.True(t, isPlaceholderDescription("Up JETPACK_MOD"))
	assert.True(t, isPlaceholderDescription("Ut Cr SHIP_CORE"))
	assert.False(t, isPlaceholderDescription("Upgrades the jetpack."))
	assert.False(t, isPlaceholderDescription(""))
}

func TestMergeFoodDuplicates(t *testing.T) {
	r := testRun(t)
	r.Catalogs.Append(CatalogFood,
		models.Item{"Id": "PIE", "Name": "Flaky Pie", "EffectCategory": ""},
		models.Item{"Id": "PIE", "Name": "Flaky Pie", "EffectCategory": "Health", "RewardID": "R_PIE"},
	)

	mergeFoodDuplicates(r)

	food := r.Catalogs.Catalog(CatalogFood).Items
	require.Len(t, food, 1)
	// The kept record absorbs the fields the first extraction lacked.
	assert.Equal(t, "Health", food[0]["EffectCategory"])
	assert.Equal(t, "R_PIE", food[0]["RewardID"])
}

func TestMergeFoodDuplicatesBackfillsIngredients(t *testing.T) {
	r := testRun(t)
	ingredients := []models.Requirement{{Id: "FLOUR", Quantity: 1}}
	r.Catalogs.Append(CatalogFood,
		models.Item{"Id": "PIE", "Name": "Flaky Pie", "RequiredItems": []models.Requirement{}},
		models.Item{"Id": "PIE", "Name": "Flaky Pie", "RequiredItems": ingredients},
	)

	mergeFoodDuplicates(r)

	food := r.Catalogs.Catalog(CatalogFood).Items
	require.Len(t, food, 1)
	// An empty ingredient list counts as missing data, same as any other
	// empty field.
	assert.Equal(t, ingredients, food[0]["RequiredItems"])
}

func TestDedupeAcrossCatalogs(t *testing.T) {
	r := testRun(t)
	r.Catalogs.Append(CatalogFish, models.Item{"Id": "EEL"})
	r.Catalogs.Append(CatalogProducts, models.Item{"Id": "EEL"}, models.Item{"Id": "WIRE"})

	dedupeAcrossCatalogs(r)

	// Fish precedes Products in catalog order, so it owns the shared id.
	assert.Len(t, r.Catalogs.Catalog(CatalogFish).Items, 1)
	products := r.Catalogs.Catalog(CatalogProducts).Items
	require.Len(t, products, 1)
	assert.Equal(t, "WIRE", products[0].ID())
}

func TestDedupeWithinCatalogs(t *testing.T) {
	r := testRun(t)
	r.Catalogs.Append(CatalogTrade,
		models.Item{"Id": "CARGO", "Name": "first"},
		models.Item{"Id": "CARGO", "Name": "second"},
	)

	dedupeWithinCatalogs(r)

	items := r.Catalogs.Catalog(CatalogTrade).Items
	require.Len(t, items, 1)
	assert.Equal(t, "first", items[0]["Name"])
}
