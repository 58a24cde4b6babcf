package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProducts() []Product {
	return []Product{
		{
			ID: "P001", Name: "iPhone 15 Pro Max", Category: "Smartphone", Brand: "Apple",
			Price: decimal.NewFromInt(21999000), Rating: 4.8,
			Description: "Flagship with A17 Pro chip", InStock: true,
		},
		{
			ID: "P002", Name: "Galaxy A54", Category: "Smartphone", Brand: "Samsung",
			Price: decimal.NewFromInt(5999000), Rating: 4.4,
			Description: "Mid-range AMOLED phone", InStock: true,
		},
		{
			ID: "P003", Name: "MacBook Pro 14", Category: "Laptop", Brand: "Apple",
			Price: decimal.NewFromInt(28999000), Rating: 4.9,
			Description: "M3 Pro laptop", InStock: true,
		},
		{
			ID: "P004", Name: "Aspire 5", Category: "Laptop", Brand: "Acer",
			Price: decimal.NewFromInt(8499000), Rating: 4.2,
			Description: "Everyday laptop with Core i5", InStock: false,
		},
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(testProducts())
	require.NoError(t, err)
	return s
}

func TestNew_Validation(t *testing.T) {
	base := testProducts()

	tests := []struct {
		name    string
		mutate  func([]Product) []Product
		wantErr string
	}{
		{
			name:    "duplicate id",
			mutate:  func(ps []Product) []Product { ps[1].ID = "P001"; return ps },
			wantErr: "duplicate product id",
		},
		{
			name:    "empty id",
			mutate:  func(ps []Product) []Product { ps[0].ID = ""; return ps },
			wantErr: "empty id",
		},
		{
			name:    "empty name",
			mutate:  func(ps []Product) []Product { ps[2].Name = ""; return ps },
			wantErr: "empty name",
		},
		{
			name: "negative price",
			mutate: func(ps []Product) []Product {
				ps[0].Price = decimal.NewFromInt(-1)
				return ps
			},
			wantErr: "negative price",
		},
		{
			name:    "rating above 5",
			mutate:  func(ps []Product) []Product { ps[3].Rating = 5.1; return ps },
			wantErr: "outside [0, 5]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mutate(testProducts()))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	s, err := New(base)
	require.NoError(t, err)
	assert.Equal(t, len(base), s.Len())
}

func TestStore_All_ReturnsCopyInSourceOrder(t *testing.T) {
	s := newTestStore(t)

	all := s.All()
	require.Len(t, all, 4)
	assert.Equal(t, "P001", all[0].ID)
	assert.Equal(t, "P004", all[3].ID)

	// Mutating the returned slice must not affect the store.
	all[0].ID = "mutated"
	assert.Equal(t, "P001", s.All()[0].ID)
}

func TestStore_GetByID(t *testing.T) {
	s := newTestStore(t)

	p, err := s.GetByID("P002")
	require.NoError(t, err)
	assert.Equal(t, "Galaxy A54", p.Name)

	_, err = s.GetByID("P999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Filter(t *testing.T) {
	s := newTestStore(t)
	minRating := 4.5
	minPrice := decimal.NewFromInt(10000000)
	maxPrice := decimal.NewFromInt(25000000)

	tests := []struct {
		name    string
		filters Filters
		wantIDs []string
	}{
		{"no constraints", Filters{}, []string{"P001", "P002", "P003", "P004"}},
		{"category case-insensitive", Filters{Category: "laptop"}, []string{"P003", "P004"}},
		{"brand", Filters{Brand: "Apple"}, []string{"P001", "P003"}},
		{"min rating", Filters{MinRating: &minRating}, []string{"P001", "P003"}},
		{"price range", Filters{MinPrice: &minPrice, MaxPrice: &maxPrice}, []string{"P001"}},
		{
			"combined AND",
			Filters{Brand: "Apple", Category: "Laptop"},
			[]string{"P003"},
		},
		{"no matches", Filters{Category: "Tablet"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Filter(tt.filters)
			ids := make([]string, len(got))
			for i, p := range got {
				ids[i] = p.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStore_Search(t *testing.T) {
	s := newTestStore(t)

	t.Run("matches name case-insensitively", func(t *testing.T) {
		got := s.Search("iphone")
		require.Len(t, got, 1)
		assert.Equal(t, "P001", got[0].ID)
	})

	t.Run("matches description", func(t *testing.T) {
		got := s.Search("core i5")
		require.Len(t, got, 1)
		assert.Equal(t, "P004", got[0].ID)
	})

	t.Run("matches brand across products", func(t *testing.T) {
		got := s.Search("apple")
		require.Len(t, got, 2)
		assert.Equal(t, "P001", got[0].ID)
		assert.Equal(t, "P003", got[1].ID)
	})

	t.Run("whitespace returns everything", func(t *testing.T) {
		assert.Len(t, s.Search("   "), 4)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		assert.Empty(t, s.Search("zzzznotaproduct"))
	})
}

func TestStore_CategoriesAndBrands(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, []string{"Smartphone", "Laptop"}, s.Categories())
	assert.Equal(t, []string{"Apple", "Samsung", "Acer"}, s.Brands())
}

func TestStore_HasToken(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.HasToken("iphone"))
	assert.True(t, s.HasToken("Laptop"))
	assert.False(t, s.HasToken("zzzznotaproduct"))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t,
		[]string{"which", "iphone", "should", "buy"},
		Tokenize("Which iPhone should I buy?"),
	)
	assert.Empty(t, Tokenize("  ! "))
}
