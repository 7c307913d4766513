package tables

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"nms-extractor/core/locale"
	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
)

func writeTable(t *testing.T, dir, name, rows string) string {
	t.Helper()
	doc := `<?xml version="1.0" encoding="utf-8"?><Data><Property name="Table">` + rows + `</Property></Data>`
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func testContext(t *testing.T, dir string, table locale.Table) *Context {
	t.Helper()
	resolver := locale.NewResolver(table, "Win", false)
	return NewContext(mxml.NewCache(), resolver, zap.NewNop(), dir)
}

const productRows = `
<Property name="Table">
	<Property name="ID" value="CASING" />
	<Property name="Name" value="CASING_NAME" />
	<Property name="Subtitle" value="CASING_SUB" />
	<Property name="Description" value="CASING_DESC" />
	<Property name="BaseValue" value="200" />
	<Property name="StackMultiplier" value="5" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\CASING.DDS" /></Property>
	<Property name="IsCraftable" value="True" />
	<Property name="GoodForSelling" value="True" />
	<Property name="Requirements">
		<Property name="Requirements">
			<Property name="ID" value="FUEL1" />
			<Property name="Amount" value="2" />
		</Property>
	</Property>
</Property>
<Property name="Table">
	<Property name="ID" value="GHOST" />
	<Property name="Name" value="GHOST_NAME" />
	<Property name="Subtitle" value="GHOST_SUB" />
	<Property name="Description" value="GHOST_DESC" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\GHOST.DDS" /></Property>
</Property>
<Property name="Table">
	<Property name="ID" value="NOICON" />
	<Property name="Name" value="CASING_NAME" />
	<Property name="Subtitle" value="CASING_SUB" />
	<Property name="Description" value="CASING_DESC" />
</Property>`

func productLocale() locale.Table {
	return locale.Table{
		"CASING_NAME": "Metal Plating",
		"CASING_SUB":  "Crafted Component",
		"CASING_DESC": "A robust shell.",
	}
}

func TestProductLookup(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, FileProducts, productRows)
	c := testContext(t, dir, productLocale())

	lookup, err := c.ProductLookup(path, true)
	require.NoError(t, err)

	t.Run("resolves rows in source order", func(t *testing.T) {
		// Icons are not required at the lookup level, only by extractors.
		assert.Equal(t, []string{"CASING", "NOICON"}, lookup.IDs())

		rec, ok := lookup.Get("CASING")
		require.True(t, ok)
		assert.Equal(t, "Metal Plating", rec.Name)
		assert.Equal(t, "Crafted Component", rec.Group)
		assert.Equal(t, "A robust shell.", rec.Description)
		assert.Equal(t, "textures/ui/casing.dds", rec.IconPath)
		assert.Equal(t, 200, rec.BaseValueUnits)
		assert.Equal(t, 5, rec.MaxStackSize)
		assert.Equal(t, []string{"HasUsedToCraft", "HasDevProperties"}, rec.Usages)
		require.Len(t, rec.RequiredItems, 1)
		assert.Equal(t, models.Requirement{Id: "FUEL1", Quantity: 2}, rec.RequiredItems[0])
	})

	t.Run("skips rows with mostly unresolved keys", func(t *testing.T) {
		_, ok := lookup.Get("GHOST")
		assert.False(t, ok)
	})

	t.Run("memoizes per path and options", func(t *testing.T) {
		again, err := c.ProductLookup(path, true)
		require.NoError(t, err)
		assert.Same(t, lookup, again)

		other, err := c.ProductLookup(path, false)
		require.NoError(t, err)
		assert.NotSame(t, lookup, other)
	})

	t.Run("missing file yields empty lookup", func(t *testing.T) {
		empty, err := c.ProductLookup(filepath.Join(dir, "nope.MXML"), false)
		require.NoError(t, err)
		assert.Zero(t, empty.Len())
	})
}

func TestUnresolvedKeys(t *testing.T) {
	c := testContext(t, t.TempDir(), locale.Table{"KNOWN_NAME": "Known"})

	assert.Equal(t, 0, c.unresolvedKeys("KNOWN_NAME", "", "plain text"))
	assert.Equal(t, 2, c.unresolvedKeys("MISSING_NAME", "MISSING_SUB", "KNOWN_NAME"))
	// Uppercase words without separators are not key-shaped.
	assert.Equal(t, 0, c.unresolvedKeys("CARBON"))
}

func TestProducts(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, FileProducts, productRows)
	c := testContext(t, dir, productLocale())

	items, err := Products(c, path)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "CASING", item.ID())
	assert.Equal(t, "CASING.png", item["Icon"])
	assert.Equal(t, "Credits", item["CurrencyType"])
	assert.Equal(t, "None", item["BlueprintCostType"])
	assert.Equal(t, "FFFFFF", item["Colour"])
	// Enum fields absent from the row serialize as null, not empty string.
	assert.Nil(t, item["Rarity"])
	assert.Nil(t, item["TradeCategory"])
}

func TestItemName(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, FileProducts, `
<Property name="Table">
	<Property name="ID" value="CASING" />
	<Property name="Name" value="CASING_NAME" />
</Property>
<Property name="Table">
	<Property name="ID" value="SHELTER" />
	<Property name="Name" value="SHELTER_NAME" />
</Property>`)
	writeTable(t, dir, FileSubstances, `
<Property name="Table">
	<Property name="ID" value="FUEL1" />
	<Property name="Name" value="FUEL1_NAME" />
</Property>`)
	c := testContext(t, dir, locale.Table{
		"CASING_NAME": "Metal Plating",
		"BUI_SHELTER": "Basic Shelter",
		"FUEL1_NAME":  "Uranium",
	})

	// Own name key first, then the prefixed id conventions.
	assert.Equal(t, "Metal Plating", c.ItemName("CASING"))
	assert.Equal(t, "Basic Shelter", c.ItemName("SHELTER"))
	assert.Equal(t, "Uranium", c.ItemName("FUEL1"))
	// Unknown ids fall through unchanged.
	assert.Equal(t, "MYSTERY", c.ItemName("MYSTERY"))
}

func TestRecipes(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, FileProducts, `
<Property name="Table">
	<Property name="ID" value="GLASS" />
	<Property name="Name" value="GLASS_NAME" />
</Property>`)
	writeTable(t, dir, FileSubstances, `
<Property name="Table">
	<Property name="ID" value="SAND" />
	<Property name="Name" value="SAND_NAME" />
</Property>`)
	path := writeTable(t, dir, FileRecipes, `
<Property name="Table">
	<Property name="Id" value="REFINE_GLASS" />
	<Property name="RecipeName" value="R_NAME_GLASS" />
	<Property name="TimeToMake" value="20" />
	<Property name="Cooking" value="False" />
	<Property name="Result">
		<Property name="Id" value="GLASS" />
		<Property name="Amount" value="1" />
	</Property>
	<Property name="Ingredients">
		<Property name="Ingredients">
			<Property name="Id" value="SAND" />
			<Property name="Amount" value="40" />
		</Property>
	</Property>
</Property>
<Property name="Table">
	<Property name="Id" value="COOK_GLASS" />
	<Property name="RecipeName" value="RECIPE_BAKE" />
	<Property name="TimeToMake" value="1.285" />
	<Property name="Cooking" value="True" />
	<Property name="Result">
		<Property name="Id" value="GLASS" />
		<Property name="Amount" value="1" />
	</Property>
</Property>`)
	c := testContext(t, dir, locale.Table{
		"GLASS_NAME": "Glass",
		"SAND_NAME":  "Silicate Powder",
	})

	t.Run("refinery half", func(t *testing.T) {
		items, err := Refinery(c, path)
		require.NoError(t, err)
		require.Len(t, items, 1)

		item := items[0]
		assert.Equal(t, "REFINE_GLASS", item.ID())
		assert.Equal(t, "Refinery: NAME_GLASS", item["Operation"])
		assert.Equal(t, "20.0", item["Time"])

		inputs := item["Inputs"].([]models.Requirement)
		require.Len(t, inputs, 1)
		assert.Equal(t, models.Requirement{Id: "SAND", Name: "Silicate Powder", Quantity: 40}, inputs[0])

		output := item["Output"].(models.Requirement)
		assert.Equal(t, "Glass", output.Name)
	})

	t.Run("nutrient processor half", func(t *testing.T) {
		items, err := NutrientProcessor(c, path)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "COOK_GLASS", items[0].ID())
		assert.Equal(t, "Recipe: BAKE", items[0]["Operation"])
		assert.Equal(t, "1.28", items[0]["Time"])
	})
}

func TestFormatRecipeTime(t *testing.T) {
	assert.Equal(t, "20.0", formatRecipeTime("20"))
	assert.Equal(t, "1.28", formatRecipeTime("1.285"))
	assert.Equal(t, "0.5", formatRecipeTime("0.5"))
	assert.Equal(t, "0.0", formatRecipeTime("garbage"))
}

func TestTechnology(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, FileTechnology, `
<Property name="Table">
	<Property name="ID" value="JETPACK_MOD" />
	<Property name="Name" value="JET_NAME" />
	<Property name="Subtitle" value="JET_SUB" />
	<Property name="Description" value="JET_DESC" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\JET.DDS" /></Property>
	<Property name="Chargeable" value="True" />
	<Property name="Upgrade" value="True" />
	<Property name="ChargeBy">
		<Property name="ChargeBy" value="Catalyst" />
		<Property name="ChargeBy" value="Fuel" />
	</Property>
	<Property name="StatBonuses">
		<Property name="StatBonuses">
			<Property name="Stat"><Property name="StatsType" value="Suit_Jetpack_Tank" /></Property>
			<Property name="Bonus" value="100" />
		</Property>
	</Property>
</Property>
<Property name="Table">
	<Property name="ID" value="GHOST_TECH" />
	<Property name="Name" value="GHOST_NAME" />
	<Property name="Subtitle" value="GHOST_SUB" />
	<Property name="Description" value="GHOST_DESC" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\GHOST.DDS" /></Property>
</Property>`)
	c := testContext(t, dir, locale.Table{
		"JET_NAME": "Jetpack Booster",
		"JET_SUB":  "Movement System Upgrade",
		"JET_DESC": "Improves thrust.",
	})

	items, err := Technology(c, path)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "JETPACK_MOD", item.ID())
	assert.Equal(t, "Jetpack Booster", item["Name"])
	assert.Equal(t, "Nanites", item["BlueprintCostType"])
	assert.Equal(t, []string{"HasChargedBy", "HasDevProperties"}, item["Usages"])
	assert.Equal(t, []string{"Catalyst", "Fuel"}, item["ChargeBy"])
	assert.Equal(t, true, item["Upgrade"])

	bonuses := item["StatBonuses"].([]any)
	require.Len(t, bonuses, 1)
	bonus := bonuses[0].(map[string]any)
	assert.Equal(t, "Jetpack Tank", bonus["Name"])
	assert.Equal(t, "tank", bonus["Image"])
	assert.Equal(t, "100", bonus["Value"])
}

func TestTrade(t *testing.T) {
	dir := t.TempDir()
	path := writeTable(t, dir, FileProducts, `
<Property name="Table">
	<Property name="ID" value="SALVAGE" />
	<Property name="Name" value="SALVAGE_NAME" />
	<Property name="Subtitle" value="TRADE_SUB" />
	<Property name="Description" value="SALVAGE_DESC" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\SALVAGE.DDS" /></Property>
	<Property name="TradeCategory"><Property name="TradeCategory" value="Scientific" /></Property>
</Property>
<Property name="Table">
	<Property name="ID" value="NOCAT" />
	<Property name="Name" value="SALVAGE_NAME" />
	<Property name="Subtitle" value="TRADE_SUB" />
	<Property name="Description" value="SALVAGE_DESC" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\NOCAT.DDS" /></Property>
	<Property name="TradeCategory"><Property name="TradeCategory" value="None" /></Property>
</Property>
<Property name="Table">
	<Property name="ID" value="CONTRABAND" />
	<Property name="Name" value="SALVAGE_NAME" />
	<Property name="Subtitle" value="SMUGGLED_SUB" />
	<Property name="Description" value="SALVAGE_DESC" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\CONTRABAND.DDS" /></Property>
</Property>`)
	c := testContext(t, dir, locale.Table{
		"SALVAGE_NAME": "Scrap Module",
		"TRADE_SUB":    "Trade Goods (Scientific)",
		"SMUGGLED_SUB": "Smuggled Goods",
		"SALVAGE_DESC": "Valuable cargo.",
	})

	items, err := Trade(c, path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	// Source row order is preserved; trade goods without a real category
	// are dropped, smuggled goods never need one.
	assert.Equal(t, "SALVAGE", items[0].ID())
	assert.Equal(t, "CONTRABAND", items[1].ID())
	assert.Equal(t, "Trade Goods (Scientific)", items[0]["Group"])
}

func writeArray(t *testing.T, dir, name, array, rows string) string {
	t.Helper()
	doc := `<?xml version="1.0" encoding="utf-8"?><Data><Property name="` + array + `">` + rows + `</Property></Data>`
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func TestFish(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, FileProducts, `
<Property name="Table">
	<Property name="ID" value="F_EEL" />
	<Property name="Name" value="F_EEL_NAME" />
	<Property name="BaseValue" value="300" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\EEL.DDS" /></Property>
</Property>`)
	path := writeArray(t, dir, FileFish, "Fish", `
<Property name="Fish">
	<Property name="ProductID" value="F_EEL" />
</Property>
<Property name="Fish">
	<Property name="ProductID" value="S15_GHOSTFISH" />
</Property>`)
	c := testContext(t, dir, locale.Table{})

	items, err := Fish(c, path)
	require.NoError(t, err)
	require.Len(t, items, 2)

	t.Run("derives names for untranslated products", func(t *testing.T) {
		item := items[0]
		assert.Equal(t, "F_EEL", item.ID())
		assert.Equal(t, "Eel", item["Name"])
		assert.Equal(t, "textures/ui/eel.dds", item["Icon"])
		assert.Equal(t, 300, item["BaseValueUnits"])
		assert.Equal(t, "Fish", item["Group"])
		assert.Equal(t, "fish1", item["fishId"])
	})

	t.Run("catches without product rows get defaults", func(t *testing.T) {
		item := items[1]
		assert.Equal(t, "S15_GHOSTFISH", item.ID())
		assert.Equal(t, "curiosities/2.png", item["Icon"])
		assert.Equal(t, 0, item["BaseValueUnits"])
		assert.Equal(t, 1, item["MaxStackSize"])
		assert.Equal(t, "FFFFFF", item["Colour"])
	})
}

func TestReadableNameFromID(t *testing.T) {
	assert.Equal(t, "Jellychild", readableNameFromID("F_JELLYCHILD"))
	assert.Equal(t, "Void Ray", readableNameFromID("S15_VOID_RAY"))
	assert.Equal(t, "Carp", readableNameFromID("CARP"))
}

func TestBuildings(t *testing.T) {
	dir := t.TempDir()
	writeTable(t, dir, FileProducts, `
<Property name="Table">
	<Property name="ID" value="PROD_FLOOR" />
	<Property name="Icon"><Property name="Filename" value="TEXTURES\UI\FLOOR.DDS" /></Property>
</Property>`)
	path := writeArray(t, dir, FileBuildings, "Objects", `
<Property name="Objects">
	<Property name="ID" value="BUILD_FLOOR" />
	<Property name="IconOverrideProductID" value="PROD_FLOOR" />
	<Property name="BuildableOnFreighter" value="True" />
	<Property name="Groups">
		<Property name="Groups">
			<Property name="Group" value="STRUCTURES" />
			<Property name="SubGroupName" value="FLOORS" />
		</Property>
	</Property>
</Property>
<Property name="Objects">
	<Property name="ID" value="BUILD_HIDDEN" />
</Property>`)
	c := testContext(t, dir, locale.Table{
		"BUILD_FLOOR": "Wooden Floor Panel",
		"STRUCTURES":  "Structures",
	})

	items, err := Buildings(c, path)
	require.NoError(t, err)
	// Rows without a resolvable icon are skipped.
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "BUILD_FLOOR", item.ID())
	assert.Equal(t, "Wooden Floor Panel", item["Name"])
	assert.Equal(t, "Structures", item["Group"])
	assert.Equal(t, "textures/ui/floor.dds", item["IconPath"])
	assert.Equal(t, true, item["BuildableOnPlanetBase"])
	assert.Equal(t, true, item["BuildableOnFreighter"])
	assert.Equal(t, false, item["BuildableOnSpaceBase"])

	groups := item["Groups"].([]any)
	require.Len(t, groups, 1)
	assert.Equal(t, "STRUCTURES", groups[0].(map[string]any)["Group"])
}

func TestStatDisplayName(t *testing.T) {
	assert.Equal(t, "Jetpack Tank", statDisplayName("Suit_Jetpack_Tank", "Suit_"))
	assert.Equal(t, "Weapon Damage", statDisplayName("Weapon_Damage"))
	assert.Equal(t, "Armour", statDisplayName("Suit_Armour", "Suit_"))
}

const rewardDoc = `<?xml version="1.0" encoding="utf-8"?><Data>
<Property name="GenericTable">
	<Property name="Table">
		<Property name="Id" value="R_PIE" />
		<Property name="Reward">
			<Property name="GcRewardEnergy">
				<Property name="Amount" value="30" />
			</Property>
		</Property>
	</Property>
</Property>
</Data>`

func TestRewardEffects(t *testing.T) {
	wantStats := map[string]any{"LifeSupportRechargeAmount": 30}

	t.Run("known table name", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "rewardtable.MXML"), []byte(rewardDoc), 0644))
		c := testContext(t, dir, locale.Table{})

		assert.Equal(t, wantStats, c.RewardEffects("R_PIE"))
	})

	t.Run("renamed table found by directory scan", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nms_reality_gcrewardtable_v2.MXML"), []byte(rewardDoc), 0644))
		c := testContext(t, dir, locale.Table{})

		assert.Equal(t, wantStats, c.RewardEffects("R_PIE"))
	})

	t.Run("no table present", func(t *testing.T) {
		c := testContext(t, t.TempDir(), locale.Table{})

		assert.Nil(t, c.RewardEffects("R_PIE"))
	})
}
