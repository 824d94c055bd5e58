package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)
	require.NotZero(t, c.Len())

	// Every entry carries the full attribute set
	for _, p := range c.Products() {
		assert.NotZero(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Brand)
		assert.NotEmpty(t, p.Category)
		assert.Greater(t, p.Price, 0.0)
		assert.GreaterOrEqual(t, p.Rating, 0.0)
		assert.LessOrEqual(t, p.Rating, 5.0)
	}
}

func TestFind(t *testing.T) {
	c := New([]Product{
		{ID: 1, Name: "Tata Salt", Brand: "Tata", Price: 30, Rating: 4.7},
		{ID: 2, Name: "Amul Butter", Brand: "Amul", Price: 275, Rating: 4.8},
	})

	tests := []struct {
		name   string
		lookup string
		wantID int
		found  bool
	}{
		{name: "exact match", lookup: "Tata Salt", wantID: 1, found: true},
		{name: "case insensitive", lookup: "tata salt", wantID: 1, found: true},
		{name: "surrounding whitespace", lookup: "  Amul Butter ", wantID: 2, found: true},
		{name: "unknown product", lookup: "Quantum Cereal", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := c.Find(tt.lookup)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.wantID, p.ID)
			}
			assert.Equal(t, tt.found, c.Contains(tt.lookup))
		})
	}
}

func TestProductsReturnsCopy(t *testing.T) {
	c := New([]Product{{ID: 1, Name: "Tata Salt"}})

	first := c.Products()
	first[0].Name = "mutated"

	second := c.Products()
	assert.Equal(t, "Tata Salt", second[0].Name)
}

func TestNames(t *testing.T) {
	c := New([]Product{
		{ID: 1, Name: "Tata Salt"},
		{ID: 2, Name: "Amul Butter"},
	})
	assert.Equal(t, []string{"Tata Salt", "Amul Butter"}, c.Names())
}
