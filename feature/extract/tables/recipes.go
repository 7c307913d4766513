package tables

import (
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"nms-extractor/core/mxml"
	"nms-extractor/feature/extract/models"
)

// Refinery extracts the non-cooking half of the shared recipe table.
func Refinery(c *Context, path string) ([]models.Item, error) {
	return parseRecipes(c, path, false)
}

// NutrientProcessor extracts the cooking half of the shared recipe table.
func NutrientProcessor(c *Context, path string) ([]models.Item, error) {
	return parseRecipes(c, path, true)
}

// parseRecipes splits the recipe table into two disjoint sets by the
// Cooking flag. Ingredient and result ids resolve to display names through
// the shared item-name index.
func parseRecipes(c *Context, path string, cooking bool) ([]models.Item, error) {
	root, err := c.Cache.Load(path)
	if err != nil {
		return nil, err
	}

	items := []models.Item{}
	counter := 1
	for _, row := range root.ArrayItems("Table") {
		id := row.Prop("Id", "")
		if id == "" {
			id = numberedID("RECIPE", counter)
		}

		if boolProp(row, "Cooking") != cooking {
			continue
		}

		operationKey := row.Prop("RecipeName", "")
		if operationKey == "" {
			operationKey = row.Prop("RecipeType", "")
		}
		var operation string
		switch {
		case c.Locale.Has(operationKey):
			operation = c.Locale.Translate(operationKey, operationKey)
		case strings.HasPrefix(operationKey, "R_"):
			operation = "Refinery: " + operationKey[len("R_"):]
		case strings.HasPrefix(operationKey, "RECIPE_"):
			operation = "Recipe: " + operationKey[len("RECIPE_"):]
		default:
			operation = c.Locale.Translate(operationKey, operationKey)
		}

		inputs := []models.Requirement{}
		if prop := row.Find("Ingredients"); prop != nil {
			for _, ing := range prop.Children {
				ingID := ing.Prop("Id", "")
				if ingID == "" {
					continue
				}
				inputs = append(inputs, models.Requirement{
					Id:       ingID,
					Name:     c.ItemName(ingID),
					Quantity: mxml.CoerceProp(ing, "Amount", "1"),
				})
			}
		}

		output := models.Requirement{}
		if result := row.Find("Result"); result != nil {
			outID := result.Prop("Id", "")
			output = models.Requirement{
				Id:       outID,
				Name:     c.ItemName(outID),
				Quantity: mxml.CoerceProp(result, "Amount", "1"),
			}
		}

		items = append(items, models.Item{
			"Id":        id,
			"Inputs":    inputs,
			"Output":    output,
			"Time":      formatRecipeTime(row.Prop("TimeToMake", "0")),
			"Operation": operation,
		})
		counter++
	}

	kind := "refinery"
	if cooking {
		kind = "nutrient processor"
	}
	c.Log.Info("recipes extracted", zap.String("kind", kind), zap.Int("items", len(items)))
	return items, nil
}

// formatRecipeTime renders a duration rounded to two decimals, always with
// a fractional part ("20" -> "20.0", "1.285" -> "1.28").
func formatRecipeTime(raw string) string {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		f = 0
	}
	f = math.Round(f*100) / 100
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
