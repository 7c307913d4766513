package mxml

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerce(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		assert.Equal(t, "", Coerce(""))
	})

	t.Run("Booleans", func(t *testing.T) {
		assert.Equal(t, true, Coerce("true"))
		assert.Equal(t, true, Coerce("True"))
		assert.Equal(t, false, Coerce("FALSE"))
	})

	t.Run("Integers", func(t *testing.T) {
		assert.Equal(t, 1124, Coerce("1124"))
		assert.Equal(t, -5, Coerce("-5"))
	})

	t.Run("Floats", func(t *testing.T) {
		assert.Equal(t, 0.793, Coerce("0.793"))
		// A decimal separator keeps the value a float even when integral.
		assert.Equal(t, 3.0, Coerce("3.0"))
	})

	t.Run("Strings Pass Through", func(t *testing.T) {
		assert.Equal(t, "GcProductData", Coerce("GcProductData"))
		assert.Equal(t, "12abc", Coerce("12abc"))
	})
}

func TestColour(t *testing.T) {
	t.Run("Missing Node Is White", func(t *testing.T) {
		assert.Equal(t, "FFFFFF", Colour(nil))
	})

	t.Run("Scales Channels", func(t *testing.T) {
		node := &Node{Name: "Colour", Children: []*Node{
			{Name: "R", Value: "1"},
			{Name: "G", Value: "0"},
			{Name: "B", Value: "0.5"},
			{Name: "A", Value: "1"},
		}}
		assert.Equal(t, "FF007F", Colour(node))
	})
}

func TestNormalizeIconPath(t *testing.T) {
	assert.Equal(t,
		"textures/ui/frontend/icons/u4products/product.casing.dds",
		NormalizeIconPath(`TEXTURES\UI\FRONTEND\ICONS\U4PRODUCTS\PRODUCT.CASING.DDS`))
	assert.Equal(t, "", NormalizeIconPath("   "))
}
