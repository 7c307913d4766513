package extract

import (
	"fmt"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"nms-extractor/core/game"
	"nms-extractor/core/locale"
	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
	"nms-extractor/feature/extract/tables"
)

// UncategorizedFile holds items no categorization rule claimed, kept for
// manual review.
const UncategorizedFile = "none.json"

// LocalizationFile is the flat key-to-text table written alongside the
// catalogs.
const LocalizationFile = "localization.json"

type tableExtractor struct {
	name string
	file string
	run  func(*tables.Context, string) ([]models.Item, error)
}

// extractors lists every source table in extraction order. The first five
// names match catalogs written as-is; the rest feed the categorization
// engine.
var extractors = []tableExtractor{
	{"Refinery", tables.FileRecipes, tables.Refinery},
	{"NutrientProcessor", tables.FileRecipes, tables.NutrientProcessor},
	{"Products", tables.FileProducts, tables.Products},
	{"RawMaterials", tables.FileSubstances, tables.Substances},
	{"Technology", tables.FileTechnology, tables.Technology},
	{"Buildings", tables.FileBuildings, tables.Buildings},
	{"Consumables", tables.FileConsumables, tables.Consumables},
	{"Fish", tables.FileFish, tables.Fish},
	{"Trade", tables.FileProducts, tables.Trade},
	{"ShipComponents", tables.FileShipParts, tables.ShipComponents},
	{"BaseParts", tables.FileBaseParts, tables.BaseParts},
	{"ProceduralTech", tables.FileProceduralTech, tables.ProceduralTech},
}

// categorizedSources are the extractions routed through the categorization
// engine, in routing order.
var categorizedSources = []string{
	"Products", "Technology", "Buildings", "Consumables",
	"ShipComponents", "BaseParts", "ProceduralTech",
}

// directCatalogs maps extractions written through unchanged to their
// catalogs.
var directCatalogs = map[string]string{
	"Refinery":          CatalogRefinery,
	"NutrientProcessor": CatalogNutrientProcessor,
	"Fish":              CatalogFish,
	"Trade":             CatalogTrade,
	"RawMaterials":      CatalogRawMaterials,
}

// FileStat describes one written output file.
type FileStat struct {
	Name  string
	Items int
	Bytes int64
}

// Summary is the accounting for one full extraction run.
type Summary struct {
	Files         []FileStat
	Categorized   int
	Uncategorized int
	TotalItems    int
	Elapsed       time.Duration
}

// Service drives the full extraction run: localization rebuild, per-table
// extraction, categorization, the enrichment pipeline, and the final
// catalog writes.
type Service struct {
	cfg   game.Config
	log   *zap.Logger
	cache *mxml.Cache
}

// NewService builds an extraction service over the configured data
// directories.
func NewService(cfg game.Config, log *zap.Logger) *Service {
	return &Service{cfg: cfg, log: log, cache: mxml.NewCache()}
}

// Run executes the whole pipeline and reports what was written. Individual
// tables degrade to zero records on failure; only an unwritable output
// directory fails the run.
func (s *Service) Run() (*Summary, error) {
	start := time.Now()

	resolver, err := s.rebuildLocalization()
	if err != nil {
		return nil, err
	}
	tctx := tables.NewContext(s.cache, resolver, s.log, s.cfg.TableDir)

	base := s.extractTables(tctx)

	run, categorized := s.categorize(base, tctx)

	for _, stage := range Pipeline() {
		s.log.Debug("running stage", zap.String("stage", stage.Name))
		stage.Run(run)
	}

	summary, err := s.writeCatalogs(run)
	if err != nil {
		return nil, err
	}
	summary.Categorized = categorized
	summary.Uncategorized = len(run.Uncategorized)
	summary.Elapsed = time.Since(start)

	s.log.Info("extraction complete",
		zap.Int("files", len(summary.Files)),
		zap.Int("items", summary.TotalItems),
		zap.Duration("elapsed", summary.Elapsed))
	return summary, nil
}

// RebuildLocalization regenerates only the flat localization table and
// reports how many keys it holds.
func (s *Service) RebuildLocalization() (int, error) {
	table := locale.BuildTable(s.cache, s.cfg.TableDir, s.log)
	if _, err := WriteJSON(s.cfg.OutputPath(LocalizationFile), table, "\t"); err != nil {
		return 0, fmt.Errorf("write localization table: %w", err)
	}
	return len(table), nil
}

// rebuildLocalization merges the locale documents, writes the flat
// localization table, and returns a resolver over it. The document cache
// is cleared afterwards so extraction rereads fresh trees.
func (s *Service) rebuildLocalization() (*locale.Resolver, error) {
	table := locale.BuildTable(s.cache, s.cfg.TableDir, s.log)

	if _, err := WriteJSON(s.cfg.OutputPath(LocalizationFile), table, "\t"); err != nil {
		return nil, fmt.Errorf("write localization table: %w", err)
	}
	s.log.Info("localization table rebuilt", zap.Int("keys", len(table)))

	s.cache.Clear()
	return locale.NewResolver(table, s.cfg.Platform, s.cfg.RawTokens), nil
}

// extractTables runs every extractor, skipping missing tables and
// degrading failed ones to zero records.
func (s *Service) extractTables(tctx *tables.Context) map[string][]models.Item {
	base := make(map[string][]models.Item)
	for i, ex := range extractors {
		path := s.cfg.TablePath(ex.file)
		log := s.log.With(
			zap.String("table", ex.name),
			zap.Int("step", i+1),
			zap.Int("steps", len(extractors)))

		if _, err := os.Stat(path); err != nil {
			log.Warn("source table missing, skipping", zap.String("path", path))
			continue
		}
		items, err := ex.run(tctx, path)
		if err != nil {
			log.Error("table extraction failed", zap.Error(err))
			continue
		}
		base[ex.name] = items
		log.Info("table extracted", zap.Int("items", len(items)))
	}
	return base
}

// categorize seeds the catalog set: the direct extractions pass through,
// everything else is routed by the rule engine or held for review.
func (s *Service) categorize(base map[string][]models.Item, tctx *tables.Context) (*Run, int) {
	set := models.NewSet(CatalogOrder...)
	for source, catalog := range directCatalogs {
		set.Append(catalog, base[source]...)
	}

	categorized := 0
	var uncategorized []models.Item
	for _, source := range categorizedSources {
		for _, item := range base[source] {
			target, ok := Categorize(item)
			if !ok {
				uncategorized = append(uncategorized, item)
				continue
			}
			set.Append(target, item)
			categorized++
		}
	}
	s.log.Info("items categorized",
		zap.Int("categorized", categorized),
		zap.Int("uncategorized", len(uncategorized)))

	return &Run{
		Catalogs:      set,
		Base:          base,
		Uncategorized: uncategorized,
		Tables:        tctx,
		Log:           s.log,
	}, categorized
}

// writeCatalogs persists every catalog plus the review file, in sorted
// file order.
func (s *Service) writeCatalogs(run *Run) (*Summary, error) {
	names := append([]string(nil), run.Catalogs.Names()...)
	sort.Strings(names)

	summary := &Summary{}
	for _, name := range names {
		items := run.Catalogs.Catalog(name).Items
		if items == nil {
			items = []models.Item{}
		}
		filename := name + ".json"
		size, err := WriteJSON(s.cfg.OutputPath(filename), items, "\t")
		if err != nil {
			return nil, err
		}
		summary.Files = append(summary.Files, FileStat{Name: filename, Items: len(items), Bytes: size})
		summary.TotalItems += len(items)
	}

	review := run.Uncategorized
	if review == nil {
		review = []models.Item{}
	}
	if _, err := WriteJSON(s.cfg.OutputPath(UncategorizedFile), review, "  "); err != nil {
		return nil, err
	}

	return summary, nil
}
