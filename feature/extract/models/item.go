package models

import "nms-extractor/core/utils"

// Requirement is one crafting ingredient reference: an item id and the
// amount consumed.
type Requirement struct {
	Id       string `json:"Id"`
	Name     string `json:"Name,omitempty"`
	Quantity any    `json:"Quantity"`
}

// Item is one normalized output record. Records are open-shaped: table
// extractors emit a uniform core (Id, Icon, IconPath, Name, Group,
// Description, value numerics) plus table-specific fields, and enrichment
// passes add or backfill fields in place.
type Item map[string]any

// ID returns the item's identifier, or empty when unset.
func (i Item) ID() string {
	return utils.ToString(i["Id"])
}

// Str returns a string field, or empty when unset.
func (i Item) Str(key string) string {
	if v, ok := i[key]; ok {
		return utils.ToString(v)
	}
	return ""
}

// Empty reports whether a field is missing or holds no data.
func (i Item) Empty(key string) bool {
	v, ok := i[key]
	return !ok || utils.IsEmpty(v)
}

// SetIfEmpty stores val under key only when the field holds no data, and
// reports whether it stored anything.
func (i Item) SetIfEmpty(key string, val any) bool {
	if !i.Empty(key) || utils.IsEmpty(val) {
		return false
	}
	i[key] = val
	return true
}
