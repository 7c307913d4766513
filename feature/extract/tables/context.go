package tables

import (
	"path/filepath"

	"go.uber.org/zap"

	"nms-extractor/core/locale"
	"nms-extractor/core/mxml"
)

// Source table file names as produced by the binary-to-text compiler.
const (
	FileRecipes        = "nms_reality_gcrecipetable.MXML"
	FileProducts       = "nms_reality_gcproducttable.MXML"
	FileSubstances     = "nms_reality_gcsubstancetable.MXML"
	FileTechnology     = "nms_reality_gctechnologytable.MXML"
	FileBuildings      = "basebuildingobjectstable.MXML"
	FileConsumables    = "consumableitemtable.MXML"
	FileFish           = "fishdatatable.MXML"
	FileShipParts      = "nms_modularcustomisationproducts.MXML"
	FileBaseParts      = "nms_basepartproducts.MXML"
	FileProceduralTech = "nms_reality_gcproceduraltechnologytable.MXML"
)

// rewardTableFiles lists the reward table under its known names, probed in
// order.
var rewardTableFiles = []string{
	"rewardtable.MXML",
	"nms_reality_gcrewardtable.MXML",
}

// Context carries the document cache, the localization resolver, and the
// per-run memoized reference lookups shared by all extractors. It is not
// safe for concurrent use; one run drives it sequentially.
type Context struct {
	Cache    *mxml.Cache
	Locale   *locale.Resolver
	Log      *zap.Logger
	TableDir string

	lookups       map[string]*lookupEntry
	itemNames     map[string]string
	productIcons  map[string]string
	templateIcons map[string]string
	rewards       map[string]map[string]any
	rewardsReady  bool
}

// NewContext builds a fresh extractor context over the given table
// directory.
func NewContext(cache *mxml.Cache, resolver *locale.Resolver, log *zap.Logger, tableDir string) *Context {
	return &Context{
		Cache:    cache,
		Locale:   resolver,
		Log:      log,
		TableDir: tableDir,
		lookups:  make(map[string]*lookupEntry),
	}
}

// Path resolves a table file name against the table directory.
func (c *Context) Path(name string) string {
	return filepath.Join(c.TableDir, name)
}

// Reset drops every memoized lookup. Callers invoke it after regenerating
// inputs so later extractions rebuild from fresh documents.
func (c *Context) Reset() {
	c.lookups = make(map[string]*lookupEntry)
	c.itemNames = nil
	c.productIcons = nil
	c.templateIcons = nil
	c.rewards = nil
	c.rewardsReady = false
}
