package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipebox/internal/domain"
)

func TestWriteThenRead(t *testing.T) {
	in := []domain.Recipe{
		{
			ID:           "1",
			Name:         "Lemonade",
			Ingredients:  []string{"lemon", "sugar", "water"},
			Instructions: "Stir.",
			Category:     domain.CategoryBeverage,
			IsFavorite:   true,
			Servings:     domain.IntPtr(4),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, in))
	assert.Contains(t, buf.String(), "isFavorite: true")
	assert.NotContains(t, buf.String(), "prepTime")

	out, err := ReadYAML(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestReadYAML(t *testing.T) {
	out, err := ReadYAML(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = ReadYAML(strings.NewReader("recipes:\n  - name: Toast\n    category: Snack\n"))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Toast", out[0].Name)
	assert.Equal(t, domain.CategorySnack, out[0].Category)

	_, err = ReadYAML(strings.NewReader("recipes: [unterminated"))
	assert.Error(t, err)
}
