package model

import (
	"encoding/json"
	"time"
)

// Product is the catalogue entity exchanged with the API. Field names
// follow the wire format (camelCase JSON).
type Product struct {
	ID                 int      `json:"id" yaml:"id"`
	Title              string   `json:"title" yaml:"title"`
	Description        string   `json:"description" yaml:"description"`
	Price              float64  `json:"price" yaml:"price"`
	DiscountPercentage float64  `json:"discountPercentage" yaml:"discountPercentage"`
	Rating             float64  `json:"rating" yaml:"rating"`
	Stock              int      `json:"stock" yaml:"stock"`
	Brand              string   `json:"brand,omitempty" yaml:"brand,omitempty"`
	Category           string   `json:"category" yaml:"category"`
	Thumbnail          string   `json:"thumbnail" yaml:"thumbnail"`
	Images             []string `json:"images" yaml:"images"`
}

// ProductList is the paginated listing envelope: a page of products
// plus the collection-wide total and the echoed skip/limit window.
type ProductList struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}

// DeleteResult is the body of a simulated delete: the removed product
// plus deletion metadata. The removal is not persisted server-side.
type DeleteResult struct {
	Product
	IsDeleted bool   `json:"isDeleted"`
	DeletedOn string `json:"deletedOn"`
}

// DeletedAt parses the deletion timestamp.
func (d DeleteResult) DeletedAt() (time.Time, error) {
	return time.Parse(time.RFC3339, d.DeletedOn)
}

// ErrorBody is the payload of a non-2xx application response.
type ErrorBody struct {
	Message string `json:"message"`
}

// Category is polymorphic on the wire: either a bare string or a
// structured {slug,name,url} record. Both forms collapse to one
// canonical identifier via Canonical.
type Category struct {
	Slug string `json:"slug,omitempty"`
	Name string `json:"name,omitempty"`
	URL  string `json:"url,omitempty"`

	raw string // set when the wire form was a bare string
}

// FromSlug builds a Category from a bare identifier.
func FromSlug(s string) Category { return Category{raw: s} }

// Structured reports whether the category was a {slug,name,url}
// record. The bare form is tracked by a non-empty raw string, so an
// empty bare string is indistinguishable from the structured zero
// value; the API never emits empty identifiers, in either form.
func (c Category) Structured() bool { return c.raw == "" }

// Canonical returns slug if present, else name, else the bare string.
func (c Category) Canonical() string {
	switch {
	case c.Slug != "":
		return c.Slug
	case c.Name != "":
		return c.Name
	default:
		return c.raw
	}
}

func (c *Category) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*c = Category{raw: s}
		return nil
	}
	type alias Category
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*c = Category(a)
	return nil
}

// MarshalJSON round-trips whichever form was parsed.
func (c Category) MarshalJSON() ([]byte, error) {
	if c.raw != "" {
		return json.Marshal(c.raw)
	}
	type alias Category
	return json.Marshal(alias(c))
}
