package locale

import (
	"path/filepath"
	"strings"

	"nms-extractor/core/mxml"

	"go.uber.org/zap"
)

// Table maps localization keys to resolved English display text.
type Table map[string]string

// LocaleFiles is the fixed merge order for English locale documents. Later
// files overwrite earlier keys.
var LocaleFiles = []string{
	"nms_loc1_english.MXML",
	"nms_loc4_english.MXML",
	"nms_loc5_english.MXML",
	"nms_loc6_english.MXML",
	"nms_loc7_english.MXML",
	"nms_loc8_english.MXML",
	"nms_loc9_english.MXML",
	"nms_update3_english.MXML",
}

// ParseDocument reads one locale document into key/text pairs. Name-suffixed
// keys are title-cased at build time so the table stores final display text.
func ParseDocument(cache *mxml.Cache, path string) (Table, error) {
	root, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	table := make(Table)
	for _, entry := range root.ArrayItems("Table") {
		key := entry.ID
		if key == "" {
			key = entry.Prop("Id", "")
		}
		text := entry.Prop("English", "")
		if key == "" || text == "" {
			continue
		}
		text = StripMarkup(text)
		if strings.HasSuffix(key, "_NAME") {
			text = TitleCaseName(text)
		}
		table[key] = text
	}
	return table, nil
}

// BuildTable merges every locale document found in dir, in LocaleFiles
// order. Missing documents are logged and skipped; only an entirely empty
// result is an error for callers to decide on.
func BuildTable(cache *mxml.Cache, dir string, log *zap.Logger) Table {
	merged := make(Table)
	for _, name := range LocaleFiles {
		path := filepath.Join(dir, name)
		table, err := ParseDocument(cache, path)
		if err != nil {
			log.Warn("locale document skipped", zap.String("file", name), zap.Error(err))
			continue
		}
		for k, v := range table {
			merged[k] = v
		}
		log.Info("locale document merged", zap.String("file", name), zap.Int("keys", len(table)))
	}
	return merged
}
