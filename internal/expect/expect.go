// Package expect provides structural and semantic checks over
// already-fetched API data. Check* functions are pure and return an
// error naming the violated invariant; the testing.TB wrappers fail
// the test immediately.
package expect

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hasmiknersesyan/DummyJSON/internal/model"
)

// ---- Check predicates ----

// CheckProduct verifies every field constraint of a catalogue entity.
// Brand is optional and carries no constraint when absent.
func CheckProduct(p model.Product) error {
	var errs []error

	if p.ID <= 0 {
		errs = append(errs, fmt.Errorf("id must be positive, got %d", p.ID))
	}
	if p.Title == "" {
		errs = append(errs, fmt.Errorf("product %d: title must not be empty", p.ID))
	}
	if p.Description == "" {
		errs = append(errs, fmt.Errorf("product %d: description must not be empty", p.ID))
	}
	if p.Price <= 0 {
		errs = append(errs, fmt.Errorf("product %d: price must be positive, got %v", p.ID, p.Price))
	}
	if p.DiscountPercentage < 0 || p.DiscountPercentage > 100 {
		errs = append(errs, fmt.Errorf("product %d: discountPercentage out of [0,100], got %v", p.ID, p.DiscountPercentage))
	}
	if p.Rating < 0 || p.Rating > 5 {
		errs = append(errs, fmt.Errorf("product %d: rating out of [0,5], got %v", p.ID, p.Rating))
	}
	if p.Stock < 0 {
		errs = append(errs, fmt.Errorf("product %d: stock must be non-negative, got %d", p.ID, p.Stock))
	}
	if p.Category == "" {
		errs = append(errs, fmt.Errorf("product %d: category must not be empty", p.ID))
	}
	if err := checkURL(p.Thumbnail); err != nil {
		errs = append(errs, fmt.Errorf("product %d: thumbnail: %w", p.ID, err))
	}
	for i, img := range p.Images {
		if err := checkURL(img); err != nil {
			errs = append(errs, fmt.Errorf("product %d: images[%d]: %w", p.ID, i, err))
		}
	}
	return errors.Join(errs...)
}

// CheckListing verifies the shape of a non-empty listing: a sensible
// total, page length within limit, and every product valid. Do not use
// it for deliberately-empty results; assert emptiness directly.
func CheckListing(l model.ProductList, limit int) error {
	var errs []error

	if l.Total <= 0 {
		errs = append(errs, fmt.Errorf("total must be positive, got %d", l.Total))
	}
	if limit > 0 && len(l.Products) > limit {
		errs = append(errs, fmt.Errorf("page has %d products, exceeds limit %d", len(l.Products), limit))
	}
	if len(l.Products) > l.Total {
		errs = append(errs, fmt.Errorf("page has %d products, exceeds total %d", len(l.Products), l.Total))
	}
	for _, p := range l.Products {
		if err := CheckProduct(p); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CheckPagination verifies the envelope echoes the requested window
// and that the page length respects it.
func CheckPagination(l model.ProductList, skip, limit int) error {
	var errs []error

	if l.Skip != skip {
		errs = append(errs, fmt.Errorf("echoed skip = %d, requested %d", l.Skip, skip))
	}
	if l.Limit != limit {
		errs = append(errs, fmt.Errorf("echoed limit = %d, requested %d", l.Limit, limit))
	}
	if limit > 0 && len(l.Products) > limit {
		errs = append(errs, fmt.Errorf("page has %d products, exceeds limit %d", len(l.Products), limit))
	}
	return errors.Join(errs...)
}

// CheckCategoryMembers verifies every product in a filtered listing
// carries exactly the requested category identifier (case-sensitive).
func CheckCategoryMembers(l model.ProductList, canonical string) error {
	var errs []error
	for _, p := range l.Products {
		if p.Category != canonical {
			errs = append(errs, fmt.Errorf("product %d: category %q, want %q", p.ID, p.Category, canonical))
		}
	}
	return errors.Join(errs...)
}

// CheckSearchRelevance verifies the term appears (case-insensitive) in
// title, description or brand of every returned product. An absent
// brand contributes no match.
func CheckSearchRelevance(l model.ProductList, term string) error {
	needle := strings.ToLower(term)

	var errs []error
	for _, p := range l.Products {
		if strings.Contains(strings.ToLower(p.Title), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			(p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), needle)) {
			continue
		}
		errs = append(errs, fmt.Errorf("product %d (%q): no field contains search term %q", p.ID, p.Title, term))
	}
	return errors.Join(errs...)
}

// CheckPartialMatch verifies each field of the expected partial update
// against the actual JSON body. Keys absent from expected are not
// checked; a present key is always checked, zero values included.
func CheckPartialMatch(expected map[string]any, actualBody []byte) error {
	var actual map[string]any
	if err := json.Unmarshal(actualBody, &actual); err != nil {
		return fmt.Errorf("decode actual body: %w", err)
	}

	var errs []error
	for k, want := range expected {
		got, ok := actual[k]
		if !ok {
			errs = append(errs, fmt.Errorf("field %q: missing from actual body", k))
			continue
		}
		if diff := cmp.Diff(normalize(want), got); diff != "" {
			errs = append(errs, fmt.Errorf("field %q: mismatch (-want +got):\n%s", k, diff))
		}
	}
	return errors.Join(errs...)
}

// normalize pushes an expected value through JSON so typed fixtures
// (int, []string) compare against decoded bodies (float64, []any).
func normalize(v any) any {
	buf, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(buf, &out); err != nil {
		return v
	}
	return out
}

func checkURL(s string) error {
	if s == "" {
		return errors.New("url must not be empty")
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url %q: unexpected scheme %q", s, u.Scheme)
	}
	return nil
}

// ---- testing.TB wrappers ----

func Product(t testing.TB, p model.Product) {
	t.Helper()
	if err := CheckProduct(p); err != nil {
		t.Fatalf("invalid product: %v", err)
	}
}

func Listing(t testing.TB, l model.ProductList, limit int) {
	t.Helper()
	if err := CheckListing(l, limit); err != nil {
		t.Fatalf("invalid listing: %v", err)
	}
}

func Pagination(t testing.TB, l model.ProductList, skip, limit int) {
	t.Helper()
	if err := CheckPagination(l, skip, limit); err != nil {
		t.Fatalf("pagination violated: %v", err)
	}
}

func CategoryMembers(t testing.TB, l model.ProductList, canonical string) {
	t.Helper()
	if err := CheckCategoryMembers(l, canonical); err != nil {
		t.Fatalf("category membership violated: %v", err)
	}
}

func SearchRelevance(t testing.TB, l model.ProductList, term string) {
	t.Helper()
	if err := CheckSearchRelevance(l, term); err != nil {
		t.Fatalf("search relevance violated: %v", err)
	}
}

func PartialMatch(t testing.TB, expected map[string]any, actualBody []byte) {
	t.Helper()
	if err := CheckPartialMatch(expected, actualBody); err != nil {
		t.Fatalf("partial match violated: %v", err)
	}
}
