package tables

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
)

// LookupRecord is one normalized product-table row, shared by every
// extractor that joins against the product table.
type LookupRecord struct {
	Id          string
	Name        string
	Group       string
	Description string
	IconPath    string

	BaseValueUnits any
	MaxStackSize   any
	BlueprintCost  any
	CookingValue   any

	Colour        string
	Usages        []string
	RequiredItems []models.Requirement

	Rarity        string
	Legality      string
	TradeCategory string
	WikiCategory  string

	Consumable            bool
	CookingIngredient     bool
	GoodForSelling        bool
	EggModifierIngredient bool

	DeploysInto string

	// Raw localization keys, kept for extractors that retry resolution
	// with alternate keys.
	SubtitleKey  string
	NameLowerKey string
}

// Lookup is an ordered product lookup: records keyed by id, iterable in
// source-table row order.
type Lookup struct {
	ids     []string
	records map[string]*LookupRecord
}

// Get returns the record for id.
func (l *Lookup) Get(id string) (*LookupRecord, bool) {
	rec, ok := l.records[id]
	return rec, ok
}

// IDs returns every record id in source row order.
func (l *Lookup) IDs() []string {
	return l.ids
}

// Len returns the record count.
func (l *Lookup) Len() int {
	return len(l.ids)
}

func (l *Lookup) add(rec *LookupRecord) {
	if _, ok := l.records[rec.Id]; !ok {
		l.ids = append(l.ids, rec.Id)
	}
	l.records[rec.Id] = rec
}

type lookupEntry struct {
	modTime time.Time
	lookup  *Lookup
}

var keyShaped = regexp.MustCompile(`^[A-Z0-9_]+$`)

// unresolvedKeys counts how many of the given strings still look like
// unresolved localization keys: all-uppercase with separators and absent
// from the localization table.
func (c *Context) unresolvedKeys(keys ...string) int {
	n := 0
	for _, key := range keys {
		if key == "" || !strings.Contains(key, "_") {
			continue
		}
		if keyShaped.MatchString(key) && !c.Locale.Has(key) {
			n++
		}
	}
	return n
}

type rowOptions struct {
	includeRequirements bool
	requireIcon         bool
	// keyDefaults uses the raw localization keys as translation defaults
	// instead of the row id / empty string.
	keyDefaults bool
	fallbackID  string
}

// parseProductRow normalizes one product-table row. The second return is
// false when the row should be skipped: no id, mostly-unresolved
// localization keys, or a missing icon when one is required.
func parseProductRow(c *Context, row *mxml.Node, opts rowOptions) (*LookupRecord, bool) {
	id := row.Prop("ID", opts.fallbackID)
	if id == "" {
		return nil, false
	}

	nameKey := row.Prop("Name", "")
	subtitleKey := row.Prop("Subtitle", "")
	descKey := row.Prop("Description", "")
	if c.unresolvedKeys(nameKey, subtitleKey, descKey) >= 2 {
		return nil, false
	}

	iconPath := rowIconPath(row)
	if opts.requireIcon && iconPath == "" {
		return nil, false
	}

	nameDefault, groupDefault, descDefault := id, "", ""
	if opts.keyDefaults {
		nameDefault, groupDefault, descDefault = nameKey, subtitleKey, descKey
	}

	rec := &LookupRecord{
		Id:          id,
		Name:        c.Locale.Translate(nameKey, nameDefault),
		Group:       c.Locale.Translate(subtitleKey, groupDefault),
		Description: c.Locale.Translate(descKey, descDefault),
		IconPath:    iconPath,

		BaseValueUnits: mxml.CoerceProp(row, "BaseValue", "0"),
		MaxStackSize:   mxml.CoerceProp(row, "StackMultiplier", "1"),
		BlueprintCost:  mxml.CoerceProp(row, "RecipeCost", "0"),
		CookingValue:   mxml.CoerceProp(row, "CookingValue", "0"),

		Colour: mxml.Colour(row.Find("Colour")),

		Rarity:        row.NestedEnum("Rarity", "Rarity", ""),
		Legality:      row.NestedEnum("Legality", "Legality", ""),
		TradeCategory: row.NestedEnum("TradeCategory", "TradeCategory", ""),
		WikiCategory:  row.Prop("WikiCategory", ""),

		DeploysInto:  row.Prop("DeploysInto", ""),
		SubtitleKey:  subtitleKey,
		NameLowerKey: row.Prop("NameLower", ""),
	}

	craftable := boolProp(row, "IsCraftable")
	rec.CookingIngredient = boolProp(row, "CookingIngredient")
	rec.EggModifierIngredient = boolProp(row, "EggModifierIngredient")
	rec.GoodForSelling = boolProp(row, "GoodForSelling")
	rec.Consumable = boolProp(row, "Consumable")

	rec.Usages = []string{}
	if craftable {
		rec.Usages = append(rec.Usages, "HasUsedToCraft")
	}
	if rec.CookingIngredient {
		rec.Usages = append(rec.Usages, "HasCookingProperties")
	}
	if rec.EggModifierIngredient {
		rec.Usages = append(rec.Usages, "IsEggIngredient")
	}
	if rec.GoodForSelling {
		rec.Usages = append(rec.Usages, "HasDevProperties")
	}

	rec.RequiredItems = []models.Requirement{}
	if opts.includeRequirements {
		rec.RequiredItems = rowRequirements(row)
	}

	return rec, true
}

// ProductLookup loads a product-shaped table into an ordered lookup keyed
// by row id. Results are memoized per (path, modification time, options);
// a missing file yields an empty lookup rather than an error.
func (c *Context) ProductLookup(path string, includeRequirements bool) (*Lookup, error) {
	key := fmt.Sprintf("%s|req=%t", path, includeRequirements)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			c.Log.Warn("product table missing, lookup is empty", zap.String("path", path))
			return &Lookup{records: make(map[string]*LookupRecord)}, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if entry, ok := c.lookups[key]; ok && entry.modTime.Equal(info.ModTime()) {
		return entry.lookup, nil
	}

	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	lookup := &Lookup{records: make(map[string]*LookupRecord)}
	for _, row := range root.ArrayItems("Table") {
		rec, ok := parseProductRow(c, row, rowOptions{includeRequirements: includeRequirements})
		if !ok {
			continue
		}
		lookup.add(rec)
	}

	c.lookups[key] = &lookupEntry{modTime: info.ModTime(), lookup: lookup}
	return lookup, nil
}

func rowRequirements(row *mxml.Node) []models.Requirement {
	reqs := []models.Requirement{}
	requirements := row.Find("Requirements")
	if requirements == nil {
		return reqs
	}
	for _, req := range requirements.Children {
		id := req.Prop("ID", "")
		if id == "" {
			continue
		}
		reqs = append(reqs, models.Requirement{
			Id:       id,
			Quantity: mxml.CoerceProp(req, "Amount", "1"),
		})
	}
	return reqs
}

func rowIconPath(row *mxml.Node) string {
	icon := row.Find("Icon")
	if icon == nil {
		return ""
	}
	return mxml.NormalizeIconPath(icon.Prop("Filename", ""))
}

func boolProp(row *mxml.Node, name string) bool {
	b, _ := mxml.CoerceProp(row, name, "false").(bool)
	return b
}

// orNil maps an empty string to a JSON null.
func orNil(s string) any {
	if s == "" {
		return nil
	}
	return s
}
