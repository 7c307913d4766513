package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"

	"nms-extractor/core/utils"
	"nms-extractor/feature/extract/models"
	"nms-extractor/feature/extract/tables"
)

// Run is the mutable state threaded through the enrichment stages: the
// catalogs being shaped, the raw per-table extractions they were built
// from, and the uncategorized leftovers kept for review.
type Run struct {
	Catalogs      *models.Set
	Base          map[string][]models.Item
	Uncategorized []models.Item
	Tables        *tables.Context
	Log           *zap.Logger
}

// Stage is one named catalog-wide pass. Stages are idempotent on their own
// output; their list order is the contract.
type Stage struct {
	Name string
	Run  func(r *Run)
}

// Pipeline returns the enrichment and deduplication stages in execution
// order. Ordering matters: slugs are assigned before items move between
// catalogs, stat backfill runs before display-name normalization, and both
// dedup passes run last.
func Pipeline() []Stage {
	return []Stage{
		{"filter-missing-icons", filterMissingIcons},
		{"apply-slugs", applySlugs},
		{"backfill-upgrade-stats", backfillUpgradeStats},
		{"move-exocraft-upgrades", moveExocraftUpgrades},
		{"normalize-upgrade-names", normalizeUpgradeNames},
		{"backfill-upgrade-descriptions", backfillUpgradeDescriptions},
		{"inject-corvette-metadata", injectCorvetteMetadata},
		{"link-corvette-tech-labels", linkCorvetteTechLabels},
		{"inject-exocraft-metadata", injectExocraftMetadata},
		{"merge-food-duplicates", mergeFoodDuplicates},
		{"dedupe-within-catalogs", dedupeWithinCatalogs},
		{"dedupe-across-catalogs", dedupeAcrossCatalogs},
	}
}

// slugPrefixes maps each catalog to its slug namespace.
var slugPrefixes = map[string]string{
	CatalogRawMaterials:      "raw/",
	CatalogProducts:          "products/",
	CatalogFood:              "food/",
	CatalogCuriosities:       "curiosities/",
	CatalogCorvette:          "corvette/",
	CatalogFish:              "fish/",
	CatalogConstructedTech:   "technology/",
	CatalogTechnology:        "technology/",
	CatalogTechnologyModule:  "technology/",
	CatalogOthers:            "other/",
	CatalogRefinery:          "refinery/",
	CatalogNutrientProcessor: "nutrient-processor/",
	CatalogBuildings:         "buildings/",
	CatalogTrade:             "other/",
	CatalogExocraft:          "exocraft/",
	CatalogStarships:         "starships/",
	CatalogUpgrades:          "upgrades/",
}

// dropMissingIcons removes items that declare an IconPath field but hold no
// path. Items without the field (recipes, ship components) pass through.
func dropMissingIcons(items []models.Item) ([]models.Item, int) {
	kept := items[:0]
	removed := 0
	for _, item := range items {
		if _, declared := item["IconPath"]; declared && item.Str("IconPath") == "" {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	return kept, removed
}

func filterMissingIcons(r *Run) {
	total := 0
	for _, name := range r.Catalogs.Names() {
		c := r.Catalogs.Catalog(name)
		kept, removed := dropMissingIcons(c.Items)
		if removed > 0 {
			c.Items = kept
			total += removed
			r.Log.Info("dropped iconless items", zap.String("catalog", name), zap.Int("removed", removed))
		}
	}
	var removed int
	r.Uncategorized, removed = dropMissingIcons(r.Uncategorized)
	if removed > 0 {
		r.Log.Info("dropped iconless uncategorized items", zap.Int("removed", removed))
	}
	if total > 0 {
		r.Log.Info("icon filter complete", zap.Int("removed", total))
	}
}

func applySlugs(r *Run) {
	for _, name := range r.Catalogs.Names() {
		prefix, ok := slugPrefixes[name]
		if !ok {
			continue
		}
		for _, item := range r.Catalogs.Catalog(name).Items {
			if id := item.ID(); id != "" {
				item["Slug"] = prefix + id
			}
		}
	}
}

// statFields are the fields the stat backfill copies between records.
var statFields = []string{"StatBonuses", "StatLevels", "NumStatsMin", "NumStatsMax", "WeightingCurve"}

func hasStats(item models.Item) bool {
	if !item.Empty("StatBonuses") || !item.Empty("StatLevels") {
		return true
	}
	minV, minOK := item["NumStatsMin"]
	maxV, maxOK := item["NumStatsMax"]
	return minOK && maxOK && minV != nil && maxV != nil
}

func copyStatFields(target, source models.Item) bool {
	copied := false
	for _, field := range statFields {
		if utils.IsEmpty(source[field]) {
			continue
		}
		if target.SetIfEmpty(field, source[field]) {
			copied = true
		}
	}
	return copied
}

// backfillUpgradeStats copies stat fields onto stat-less upgrades from a
// same-id source record, else from the record the upgrade deploys into.
// The first source that contributes anything wins; populated fields are
// never overwritten.
func backfillUpgradeStats(r *Run) {
	upgrades := r.Catalogs.Catalog(CatalogUpgrades).Items
	if len(upgrades) == 0 {
		return
	}

	sourceByID := make(map[string]models.Item)
	for _, key := range []string{"Technology", "ProceduralTech"} {
		for _, item := range r.Base[key] {
			if id := item.ID(); id != "" && hasStats(item) {
				sourceByID[id] = item
			}
		}
	}
	upgradesByID := make(map[string]models.Item)
	for _, item := range upgrades {
		if id := item.ID(); id != "" {
			upgradesByID[id] = item
		}
	}

	enriched := 0
	for _, item := range upgrades {
		if hasStats(item) {
			continue
		}
		id := item.ID()
		if id == "" {
			continue
		}
		if source, ok := sourceByID[id]; ok && copyStatFields(item, source) {
			enriched++
			continue
		}
		deploy := item.Str("DeploysInto")
		if deploy == "" {
			continue
		}
		source, ok := sourceByID[deploy]
		if !ok {
			source, ok = upgradesByID[deploy]
		}
		if ok && copyStatFields(item, source) {
			enriched++
		}
	}
	if enriched > 0 {
		r.Log.Info("backfilled upgrade stats", zap.Int("items", enriched))
	}
}

func moveExocraftUpgrades(r *Run) {
	exocraft := r.Catalogs.Catalog(CatalogExocraft)
	upgrades := r.Catalogs.Catalog(CatalogUpgrades)

	kept := exocraft.Items[:0]
	moved := 0
	for _, item := range exocraft.Items {
		name := strings.ToLower(item.Str("Name"))
		group := strings.ToLower(item.Str("Group"))
		if strings.Contains(name, "upgrade") || strings.Contains(group, "upgrade") {
			upgrades.Items = append(upgrades.Items, item)
			moved++
			continue
		}
		kept = append(kept, item)
	}
	exocraft.Items = kept
	if moved > 0 {
		r.Log.Info("moved exocraft upgrades", zap.Int("items", moved))
	}
}

// normalizeUpgradeNames sets an upgrade's display name to its group label,
// which already carries the class prefix and module kind.
func normalizeUpgradeNames(r *Run) {
	renamed := 0
	for _, item := range r.Catalogs.Catalog(CatalogUpgrades).Items {
		group := item.Str("Group")
		if group == "" || !strings.Contains(strings.ToLower(group), "upgrade") {
			continue
		}
		if item.Str("Name") != group {
			item["Name"] = group
			renamed++
		}
	}
	if renamed > 0 {
		r.Log.Info("normalized upgrade names", zap.Int("items", renamed))
	}
}

var placeholderDescriptions = []*regexp.Regexp{
	regexp.MustCompile(`^Up [A-Za-z0-9_]+$`),
	regexp.MustCompile(`^Ut Cr [A-Za-z0-9_]+$`),
}

func isPlaceholderDescription(text string) bool {
	value := strings.TrimSpace(text)
	if value == "" {
		return false
	}
	for _, pattern := range placeholderDescriptions {
		if pattern.MatchString(value) {
			return true
		}
	}
	return false
}

var classPrefixPattern = regexp.MustCompile(`(?i)^[CBSA]-Class\s+`)
var upgradeSuffixPattern = regexp.MustCompile(`(?i)\s+Upgrade$`)

// upgradeStrengthByQuality phrases each quality tier for generated
// descriptions.
var upgradeStrengthByQuality = map[string]string{
	"Normal":    "moderate",
	"Rare":      "significant",
	"Epic":      "extremely powerful",
	"Legendary": "supremely powerful",
	"Illegal":   "highly unstable",
}

func buildUpgradeDescription(item models.Item) string {
	group := strings.TrimSpace(item.Str("Group"))
	if group == "" {
		return ""
	}
	target := classPrefixPattern.ReplaceAllString(group, "")
	target = strings.TrimSpace(upgradeSuffixPattern.ReplaceAllString(target, ""))
	if target == "" {
		target = group
	}
	strength, ok := upgradeStrengthByQuality[strings.TrimSpace(item.Str("Quality"))]
	if !ok {
		strength = "powerful"
	}
	return "A " + strength + " upgrade for the " + target +
		". Use [E] to begin upgrade installation process.\n\n" +
		"The module is flexible, and exact upgrade statistics are unknown until installation is complete."
}

// backfillUpgradeDescriptions replaces placeholder descriptions. A wrapper
// item that deploys into a target lends its real description first;
// anything still holding a placeholder gets a generated one.
func backfillUpgradeDescriptions(r *Run) {
	upgrades := r.Catalogs.Catalog(CatalogUpgrades).Items
	if len(upgrades) == 0 {
		return
	}

	byID := make(map[string]models.Item)
	wrappersByTarget := make(map[string][]string)
	for _, item := range upgrades {
		id := item.ID()
		if id != "" {
			byID[id] = item
		}
		if deploy := item.Str("DeploysInto"); deploy != "" && id != "" {
			wrappersByTarget[deploy] = append(wrappersByTarget[deploy], id)
		}
	}

	updated := 0
	for targetID, wrapperIDs := range wrappersByTarget {
		target, ok := byID[targetID]
		if !ok || !isPlaceholderDescription(target.Str("Description")) {
			continue
		}
		replacement := ""
		for _, wrapperID := range wrapperIDs {
			wrapper, ok := byID[wrapperID]
			if !ok {
				continue
			}
			desc := wrapper.Str("Description")
			if strings.TrimSpace(desc) != "" && !isPlaceholderDescription(desc) {
				replacement = desc
				break
			}
		}
		if replacement == "" {
			replacement = buildUpgradeDescription(target)
		}
		if replacement != "" {
			target["Description"] = replacement
			updated++
		}
	}

	for _, item := range upgrades {
		if !isPlaceholderDescription(item.Str("Description")) {
			continue
		}
		if generated := buildUpgradeDescription(item); generated != "" {
			item["Description"] = generated
			updated++
		}
	}
	if updated > 0 {
		r.Log.Info("backfilled upgrade descriptions", zap.Int("items", updated))
	}
}

func injectMetadata(r *Run, catalog string, metadata map[string]map[string]any) int {
	enriched := 0
	for _, item := range r.Catalogs.Catalog(catalog).Items {
		extra, ok := metadata[item.ID()]
		if !ok {
			continue
		}
		for key, value := range extra {
			item[key] = value
		}
		enriched++
	}
	return enriched
}

func injectCorvetteMetadata(r *Run) {
	if len(r.Catalogs.Catalog(CatalogCorvette).Items) == 0 {
		return
	}
	if n := injectMetadata(r, CatalogCorvette, r.Tables.CorvettePartMetadata()); n > 0 {
		r.Log.Info("injected corvette metadata", zap.Int("items", n))
	}
}

// linkCorvetteTechLabels copies name, group, and description from the
// upgrade record a corvette part's buildable tech id points at.
func linkCorvetteTechLabels(r *Run) {
	corvette := r.Catalogs.Catalog(CatalogCorvette).Items
	upgrades := r.Catalogs.Catalog(CatalogUpgrades).Items
	if len(corvette) == 0 {
		return
	}
	upgradesByID := make(map[string]models.Item)
	for _, item := range upgrades {
		if id := item.ID(); id != "" {
			upgradesByID[id] = item
		}
	}
	linked := 0
	for _, item := range corvette {
		techID := item.Str("BuildableShipTechID")
		if techID == "" {
			continue
		}
		tech, ok := upgradesByID[techID]
		if !ok {
			continue
		}
		item["BuildableShipTechName"] = nilWhenBlank(tech.Str("Name"))
		item["BuildableShipTechGroup"] = nilWhenBlank(tech.Str("Group"))
		item["BuildableShipTechDescription"] = nilWhenBlank(tech.Str("Description"))
		linked++
	}
	if linked > 0 {
		r.Log.Info("linked corvette tech labels", zap.Int("items", linked))
	}
}

func injectExocraftMetadata(r *Run) {
	if len(r.Catalogs.Catalog(CatalogExocraft).Items) == 0 {
		return
	}
	if n := injectMetadata(r, CatalogExocraft, r.Tables.ExocraftPartMetadata()); n > 0 {
		r.Log.Info("injected exocraft metadata", zap.Int("items", n))
	}
}

// dedupeByID keeps the first item per id. With merge set, later duplicates
// donate their missing fields to the kept record before being dropped.
func dedupeByID(items []models.Item, merge bool) ([]models.Item, int) {
	kept := items[:0]
	firstByID := make(map[string]models.Item)
	removed := 0
	for _, item := range items {
		id := item.ID()
		if id == "" {
			kept = append(kept, item)
			continue
		}
		existing, ok := firstByID[id]
		if !ok {
			firstByID[id] = item
			kept = append(kept, item)
			continue
		}
		if merge {
			for key, value := range item {
				if utils.IsEmpty(existing[key]) {
					existing[key] = value
				}
			}
		}
		removed++
	}
	return kept, removed
}

// mergeFoodDuplicates collapses duplicate food ids, merging missing fields
// into the first record. Food is the one catalog fed by two extractors for
// the same ids, so field merging recovers data either source lacks.
func mergeFoodDuplicates(r *Run) {
	food := r.Catalogs.Catalog(CatalogFood)
	deduped, removed := dedupeByID(food.Items, true)
	if removed > 0 {
		food.Items = deduped
		r.Log.Info("merged duplicate food items", zap.Int("removed", removed))
	}
}

func dedupeWithinCatalogs(r *Run) {
	total := 0
	for _, name := range r.Catalogs.Names() {
		c := r.Catalogs.Catalog(name)
		deduped, removed := dedupeByID(c.Items, false)
		if removed > 0 {
			c.Items = deduped
			total += removed
			r.Log.Info("removed duplicate ids", zap.String("catalog", name), zap.Int("removed", removed))
		}
	}
	if total > 0 {
		r.Log.Info("intra-catalog dedup complete", zap.Int("removed", total))
	}
}

// dedupeAcrossCatalogs enforces globally unique ids: the first catalog in
// set order owns an id, later occurrences elsewhere are dropped.
func dedupeAcrossCatalogs(r *Run) {
	ownerByID := make(map[string]string)
	total := 0
	for _, name := range r.Catalogs.Names() {
		c := r.Catalogs.Catalog(name)
		kept := c.Items[:0]
		removed := 0
		for _, item := range c.Items {
			id := item.ID()
			if id == "" {
				kept = append(kept, item)
				continue
			}
			if _, taken := ownerByID[id]; taken {
				removed++
				continue
			}
			ownerByID[id] = name
			kept = append(kept, item)
		}
		if removed > 0 {
			c.Items = kept
			total += removed
			r.Log.Info("removed cross-catalog duplicate ids", zap.String("catalog", name), zap.Int("removed", removed))
		}
	}
	if total > 0 {
		r.Log.Info("cross-catalog dedup complete", zap.Int("removed", total))
	}
}

func nilWhenBlank(s string) any {
	if s == "" {
		return nil
	}
	return s
}
