package tables

import (
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nms-extractor/core/locale"
	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
)

// fishIDPrefixes are stripped when deriving a readable name directly from a
// catch id with no localization entry.
var fishIDPrefixes = []string{"F_", "S15_", "S19_", "S10_"}

var underscoreRun = regexp.MustCompile(`_+`)

type fishProduct struct {
	Icon           string
	Name           string
	Group          string
	Description    string
	BaseValueUnits any
	MaxStackSize   any
	CookingValue   any
	Colour         string
}

// Fish extracts the fish table. Each entry names a product id that is
// joined against the product table for display data; catches whose product
// rows ship no localization get a readable name derived from the id.
func Fish(c *Context, path string) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	products := c.fishProductDetails()

	items := []models.Item{}
	counter := 1
	for _, row := range root.ArrayItems("Fish") {
		productID := row.Prop("ProductID", "")
		if productID == "" {
			continue
		}

		details, ok := products[productID]
		if !ok {
			details = fishProduct{}
		}

		icon := details.Icon
		if icon == "" {
			icon = "curiosities/" + strconv.Itoa(counter) + ".png"
		}
		name := details.Name
		if name == "" {
			name = productID
		}
		group := details.Group
		if group == "" {
			group = "Fish"
		}

		item := models.Item{
			"Id":                    productID,
			"Icon":                  icon,
			"Name":                  name,
			"Group":                 group,
			"Description":           details.Description,
			"BaseValueUnits":        details.BaseValueUnits,
			"CurrencyType":          "Credits",
			"MaxStackSize":          details.MaxStackSize,
			"Colour":                details.Colour,
			"CookingValue":          details.CookingValue,
			"Usages":                []any{},
			"BlueprintCost":         0,
			"BlueprintCostType":     "None",
			"BlueprintSource":       0,
			"RequiredItems":         []models.Requirement{},
			"StatBonuses":           []any{},
			"ConsumableRewardTexts": []any{},
			"fishId":                "fish" + strconv.Itoa(counter),
		}
		if item["BaseValueUnits"] == nil {
			item["BaseValueUnits"] = 0
		}
		if item["MaxStackSize"] == nil {
			item["MaxStackSize"] = 1
		}
		if item["CookingValue"] == nil {
			item["CookingValue"] = 0
		}
		if details.Colour == "" {
			item["Colour"] = "FFFFFF"
		}

		items = append(items, item)
		counter++
	}

	c.Log.Info("fish extracted", zap.Int("items", len(items)))
	return items, nil
}

// fishProductDetails indexes the whole product table without row filtering:
// fish product rows are often untranslated and must not be dropped by the
// unresolved-key heuristic.
func (c *Context) fishProductDetails() map[string]fishProduct {
	details := make(map[string]fishProduct)

	root, err := c.Cache.Load(c.Path(FileProducts))
	if err != nil {
		c.Log.Warn("fish product lookup unavailable", zap.Error(err))
		return details
	}

	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("ID", "")
		if id == "" {
			continue
		}
		nameKey := row.Prop("Name", "")
		nameLowerKey := row.Prop("NameLower", "")

		name := c.Locale.Translate(nameKey, id)
		if likelyUntranslated(name, id) && nameLowerKey != "" {
			name = c.Locale.Translate(nameLowerKey, name)
		}
		if likelyUntranslated(name, id) {
			name = readableNameFromID(id)
		}

		details[id] = fishProduct{
			Icon:           rowIconPath(row),
			Name:           name,
			Group:          c.Locale.Translate(row.Prop("Subtitle", ""), ""),
			Description:    c.Locale.Translate(row.Prop("Description", ""), ""),
			BaseValueUnits: mxml.CoerceProp(row, "BaseValue", "0"),
			MaxStackSize:   mxml.CoerceProp(row, "StackMultiplier", "1"),
			CookingValue:   mxml.CoerceProp(row, "CookingValue", "0"),
			Colour:         mxml.Colour(row.Find("Colour")),
		}
	}
	return details
}

// likelyUntranslated reports whether a resolved name is just the raw id or
// its title-cased fallback form.
func likelyUntranslated(name, id string) bool {
	if name == "" || id == "" {
		return false
	}
	return name == id || name == locale.TitleCaseName(id)
}

// readableNameFromID derives a display name from a catch id:
// F_JELLYCHILD -> "Jellychild".
func readableNameFromID(id string) string {
	s := strings.TrimSpace(id)
	upper := strings.ToUpper(s)
	for _, prefix := range fishIDPrefixes {
		if strings.HasPrefix(upper, prefix) {
			s = s[len(prefix):]
			break
		}
	}
	s = strings.TrimSpace(underscoreRun.ReplaceAllString(s, " "))
	if s == "" {
		return id
	}
	return locale.TitleCaseName(s)
}
