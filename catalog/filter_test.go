package catalog

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lessence/models"
)

func sampleCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Midnight Oud", Brand: "Maison Noir", Category: "Oud", Gender: models.GenderMen, Price: 100, Notes: "Saffron, Agarwood"},
		{ID: 2, Name: "Rose Petal", Brand: "Fleur", Category: "Floral", Gender: models.GenderWomen, Price: 50, Notes: "Rose, Peony"},
		{ID: 3, Name: "Citrus Wave", Brand: "Aqua", Category: "Fresh", Gender: models.GenderUnisex, Price: 75, Notes: "Bergamot, Lemon"},
		{ID: 4, Name: "Amber Night", Brand: "Maison Noir", Category: "Oriental", Gender: models.GenderMen, Price: 50, Notes: "Amber, Vanilla"},
		{ID: 5, Name: "White Musk", Brand: "Pure", Category: "Floral", Gender: models.GenderUnisex, Price: 1200, Notes: "Musk, Rose"},
	}
}

func ids(products []models.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterAndSort_PriceAscendingScenario(t *testing.T) {
	products := []models.Product{
		{ID: 1, Price: 100, Category: "Oud", Gender: models.GenderMen},
		{ID: 2, Price: 50, Category: "Floral", Gender: models.GenderWomen},
	}
	criteria := models.FilterCriteria{Category: "all", Gender: "all", MaxPrice: 1000, SortOrder: models.SortPriceAscending}

	assert.Equal(t, []int{2, 1}, ids(FilterAndSort(products, criteria)))
}

func TestFilterAndSort_FeaturedKeepsInputOrder(t *testing.T) {
	criteria := models.DefaultFilterCriteria()
	criteria.MaxPrice = 10000

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(FilterAndSort(sampleCatalog(), criteria)))
}

func TestFilterAndSort_StableOnEqualPrices(t *testing.T) {
	criteria := models.DefaultFilterCriteria()

	criteria.SortOrder = models.SortPriceAscending
	assert.Equal(t, []int{2, 4, 3, 1}, ids(FilterAndSort(sampleCatalog(), criteria)))

	criteria.SortOrder = models.SortPriceDescending
	assert.Equal(t, []int{1, 3, 2, 4}, ids(FilterAndSort(sampleCatalog(), criteria)))
}

func TestFilterAndSort_MaxPriceIsInclusive(t *testing.T) {
	criteria := models.DefaultFilterCriteria()
	criteria.MaxPrice = 75

	assert.Equal(t, []int{2, 3, 4}, ids(FilterAndSort(sampleCatalog(), criteria)))
}

func TestFilterAndSort_SearchAcrossNameBrandNotes(t *testing.T) {
	criteria := models.DefaultFilterCriteria()
	criteria.MaxPrice = 10000

	criteria.SearchQuery = "ROSE"
	assert.Equal(t, []int{2, 5}, ids(FilterAndSort(sampleCatalog(), criteria)))

	criteria.SearchQuery = "maison"
	assert.Equal(t, []int{1, 4}, ids(FilterAndSort(sampleCatalog(), criteria)))

	criteria.SearchQuery = "vanilla"
	assert.Equal(t, []int{4}, ids(FilterAndSort(sampleCatalog(), criteria)))
}

func TestFilterAndSort_CategoryAndGender(t *testing.T) {
	criteria := models.DefaultFilterCriteria()
	criteria.MaxPrice = 10000
	criteria.Category = "Floral"

	assert.Equal(t, []int{2, 5}, ids(FilterAndSort(sampleCatalog(), criteria)))

	criteria.Gender = string(models.GenderUnisex)
	assert.Equal(t, []int{5}, ids(FilterAndSort(sampleCatalog(), criteria)))
}

func TestFilterAndSort_EmptyResult(t *testing.T) {
	criteria := models.DefaultFilterCriteria()
	criteria.SearchQuery = "nothing matches this"

	result := FilterAndSort(sampleCatalog(), criteria)
	require.NotNil(t, result)
	assert.Empty(t, result)
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	in := sampleCatalog()
	before := ids(in)

	criteria := models.DefaultFilterCriteria()
	criteria.SortOrder = models.SortPriceAscending
	out := FilterAndSort(in, criteria)
	out[0].Name = "changed"

	assert.Equal(t, before, ids(in))
	assert.NotEqual(t, "changed", in[1].Name)
}

// Every returned product passes all predicates and every passing product is returned.
func TestFilterAndSort_SoundAndComplete(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	categories := []string{"Oud", "Floral", "Fresh"}
	words := []string{"oud", "rose", "musk", "amber", "citrus"}

	for round := 0; round < 200; round++ {
		products := make([]models.Product, rng.Intn(12))
		for i := range products {
			products[i] = models.Product{
				ID:       i + 1,
				Name:     strings.ToUpper(words[rng.Intn(len(words))]),
				Brand:    words[rng.Intn(len(words))],
				Notes:    words[rng.Intn(len(words))],
				Category: categories[rng.Intn(len(categories))],
				Gender:   models.Genders[rng.Intn(len(models.Genders))],
				Price:    float64(rng.Intn(20) * 10),
			}
		}
		criteria := models.FilterCriteria{
			Category:  append([]string{models.All}, categories...)[rng.Intn(len(categories)+1)],
			Gender:    Genders()[rng.Intn(len(models.Genders)+1)],
			MaxPrice:  float64(rng.Intn(20) * 10),
			SortOrder: []models.SortOrder{models.SortFeatured, models.SortPriceAscending, models.SortPriceDescending}[rng.Intn(3)],
		}
		if rng.Intn(2) == 0 {
			criteria.SearchQuery = words[rng.Intn(len(words))][:2]
		}

		result := FilterAndSort(products, criteria)
		query := strings.ToLower(criteria.SearchQuery)

		got := make(map[int]bool)
		for _, p := range result {
			got[p.ID] = true
			assert.True(t, Matches(p, criteria.Category, criteria.Gender, criteria.MaxPrice, query))
		}
		for _, p := range products {
			if Matches(p, criteria.Category, criteria.Gender, criteria.MaxPrice, query) {
				assert.True(t, got[p.ID], "product %d should be included", p.ID)
			}
		}
		assert.Len(t, result, len(got))

		for i := 1; i < len(result); i++ {
			prev, cur := result[i-1], result[i]
			switch criteria.SortOrder {
			case models.SortPriceAscending:
				assert.LessOrEqual(t, prev.Price, cur.Price)
				if prev.Price == cur.Price {
					assert.Less(t, prev.ID, cur.ID)
				}
			case models.SortPriceDescending:
				assert.GreaterOrEqual(t, prev.Price, cur.Price)
				if prev.Price == cur.Price {
					assert.Less(t, prev.ID, cur.ID)
				}
			default:
				assert.Less(t, prev.ID, cur.ID)
			}
		}
	}
}
