package expect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasmiknersesyan/DummyJSON/internal/expect"
	"github.com/hasmiknersesyan/DummyJSON/internal/model"
)

func validProduct() model.Product {
	return model.Product{
		ID:                 7,
		Title:              "Samsung Galaxy Book",
		Description:        "Samsung Galaxy Book S (2020) laptop",
		Price:              1499,
		DiscountPercentage: 4.15,
		Rating:             4.25,
		Stock:              50,
		Brand:              "Samsung",
		Category:           "laptops",
		Thumbnail:          "https://cdn.dummyjson.com/product-images/7/thumbnail.jpg",
		Images:             []string{"https://cdn.dummyjson.com/product-images/7/1.jpg"},
	}
}

func TestCheckProduct_Valid(t *testing.T) {
	require.NoError(t, expect.CheckProduct(validProduct()))
}

func TestCheckProduct_BrandOptional(t *testing.T) {
	p := validProduct()
	p.Brand = ""
	require.NoError(t, expect.CheckProduct(p))
}

func TestCheckProduct_AggregatesViolations(t *testing.T) {
	p := validProduct()
	p.ID = 0
	p.Price = -1
	p.Rating = 6
	p.Thumbnail = "ftp://nope"

	err := expect.CheckProduct(p)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{"id must be positive", "price must be positive", "rating out of [0,5]", "scheme"} {
		assert.Contains(t, msg, want)
	}
}

func TestCheckListing(t *testing.T) {
	l := model.ProductList{Products: []model.Product{validProduct()}, Total: 12, Skip: 0, Limit: 5}
	require.NoError(t, expect.CheckListing(l, 5))

	l.Total = 0
	err := expect.CheckListing(l, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total must be positive")
}

func TestCheckListing_PageExceedsLimit(t *testing.T) {
	l := model.ProductList{
		Products: []model.Product{validProduct(), validProduct(), validProduct()},
		Total:    12, Limit: 2,
	}
	err := expect.CheckListing(l, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds limit 2")
}

func TestCheckPagination(t *testing.T) {
	l := model.ProductList{Total: 12, Skip: 5, Limit: 5, Products: make([]model.Product, 5)}
	require.NoError(t, expect.CheckPagination(l, 5, 5))

	err := expect.CheckPagination(l, 0, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "echoed skip = 5, requested 0")
}

func TestCheckCategoryMembers(t *testing.T) {
	in := validProduct()
	out := validProduct()
	out.ID = 9
	out.Category = "smartphones"
	l := model.ProductList{Products: []model.Product{in, out}, Total: 2}

	err := expect.CheckCategoryMembers(l, "laptops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `product 9: category "smartphones", want "laptops"`)

	// Membership is case-sensitive.
	err = expect.CheckCategoryMembers(model.ProductList{Products: []model.Product{in}}, "Laptops")
	assert.Error(t, err)
}

func TestCheckSearchRelevance(t *testing.T) {
	p := validProduct()
	l := model.ProductList{Products: []model.Product{p}}

	assert.NoError(t, expect.CheckSearchRelevance(l, "LAPTOP"), "case-insensitive title/description match")
	assert.NoError(t, expect.CheckSearchRelevance(l, "samsung"), "brand match")
	assert.NoError(t, expect.CheckSearchRelevance(l, ""), "empty term matches everything")

	err := expect.CheckSearchRelevance(l, "qqqqzzzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no field contains search term")
}

func TestCheckSearchRelevance_AbsentBrandContributesNoMatch(t *testing.T) {
	p := validProduct()
	p.Brand = ""
	l := model.ProductList{Products: []model.Product{p}}

	assert.Error(t, expect.CheckSearchRelevance(l, "samsung"),
		"term only present in the (now absent) brand must not match")
}

func TestCheckPartialMatch(t *testing.T) {
	body := []byte(`{"id":1,"title":"Renamed Product","price":99.5,"stock":12}`)

	require.NoError(t, expect.CheckPartialMatch(map[string]any{
		"title": "Renamed Product",
		"price": 99.5,
	}, body))

	err := expect.CheckPartialMatch(map[string]any{"title": "Other"}, body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "title"`)
}

func TestCheckPartialMatch_ZeroValueIsChecked(t *testing.T) {
	body := []byte(`{"price":10}`)

	// A present key with a zero value is a real expectation, not an
	// omitted field.
	err := expect.CheckPartialMatch(map[string]any{"price": 0}, body)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "price"`)
}

func TestCheckPartialMatch_MissingField(t *testing.T) {
	err := expect.CheckPartialMatch(map[string]any{"brand": "Acme"}, []byte(`{"id":1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "brand": missing`)
}

func TestCheckPartialMatch_NormalizesFixtureTypes(t *testing.T) {
	body := []byte(`{"stock":12,"images":["https://a/1.jpg"]}`)

	require.NoError(t, expect.CheckPartialMatch(map[string]any{
		"stock":  12,                          // int vs decoded float64
		"images": []string{"https://a/1.jpg"}, // []string vs decoded []any
	}, body))
}

func TestWrappers_FailFast(t *testing.T) {
	rec := &recorder{TB: t}
	expect.Product(rec, model.Product{})
	require.True(t, rec.failed)
	assert.True(t, strings.Contains(rec.msg, "invalid product"))
}

// recorder captures Fatalf instead of aborting, so wrapper behavior is
// observable.
type recorder struct {
	testing.TB
	failed bool
	msg    string
}

func (r *recorder) Helper() {}

func (r *recorder) Fatalf(format string, args ...any) {
	r.failed = true
	r.msg = format
}
