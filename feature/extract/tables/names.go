package tables

import "go.uber.org/zap"

// namePrefixes are the alternate key conventions tried when an item's own
// name key does not resolve. List order is the precedence; the first key
// present in the localization table wins.
var namePrefixes = []string{"BUI_", "TRA_", "EXP_"}

// ItemName resolves an item id to its English display name using the
// products and substances tables. The name index is built lazily on first
// use and reused for the rest of the run.
func (c *Context) ItemName(id string) string {
	if c.itemNames == nil {
		c.buildItemNames()
	}
	if name, ok := c.itemNames[id]; ok {
		return name
	}
	return id
}

func (c *Context) buildItemNames() {
	c.itemNames = make(map[string]string)

	add := func(path string, requireNameKey bool) {
		root, err := c.Cache.Load(path)
		if err != nil {
			c.Log.Warn("name index source unavailable", zap.String("path", path), zap.Error(err))
			return
		}
		for _, row := range root.ArrayItems("Table") {
			id := row.Prop("ID", "")
			nameKey := row.Prop("Name", "")
			if id == "" || (requireNameKey && nameKey == "") {
				continue
			}
			c.itemNames[id] = c.resolveItemName(id, nameKey)
		}
	}

	add(c.Path(FileProducts), false)
	add(c.Path(FileSubstances), true)

	c.Log.Debug("item name index built", zap.Int("names", len(c.itemNames)))
}

// resolveItemName tries the translation patterns in fixed order: the row's
// own name key, then each prefixed key convention against the id, then a
// readable rendering of the name key.
func (c *Context) resolveItemName(id, nameKey string) string {
	if nameKey == "" {
		return id
	}
	if c.Locale.Has(nameKey) {
		return c.Locale.Translate(nameKey, nameKey)
	}
	for _, prefix := range namePrefixes {
		if key := prefix + id; c.Locale.Has(key) {
			return c.Locale.Translate(key, key)
		}
	}
	return c.Locale.Translate(nameKey, id)
}
