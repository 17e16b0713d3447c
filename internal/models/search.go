package models

import (
	"fmt"
	"net/url"
	"strconv"
)

// SortKey selects one of the catalog orderings.
type SortKey string

const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps unknown values to SortNone.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(s); k {
	case SortPriceAsc, SortPriceDesc, SortNewest:
		return k
	default:
		return SortNone
	}
}

// ProductSearchParams is the transient catalog query. It is mirrored to URL
// query strings so a view can be shared or bookmarked.
//
// MinPrice and MaxPrice are pointers so an explicit zero stays distinguishable
// from an absent bound.
type ProductSearchParams struct {
	Search   string
	Category string
	Brand    string
	MinPrice *float64
	MaxPrice *float64
	SortBy   SortKey
}

// Price returns a pointer to v for use as a price bound.
func Price(v float64) *float64 {
	return &v
}

// Equal compares params by value, including price bounds.
func (p ProductSearchParams) Equal(o ProductSearchParams) bool {
	return p.Search == o.Search &&
		p.Category == o.Category &&
		p.Brand == o.Brand &&
		p.SortBy == o.SortBy &&
		equalBound(p.MinPrice, o.MinPrice) &&
		equalBound(p.MaxPrice, o.MaxPrice)
}

func equalBound(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// Values encodes the params as URL query values, omitting unset fields.
func (p ProductSearchParams) Values() url.Values {
	v := url.Values{}
	if p.Search != "" {
		v.Set("search", p.Search)
	}
	if p.Category != "" {
		v.Set("category", p.Category)
	}
	if p.Brand != "" {
		v.Set("brand", p.Brand)
	}
	if p.MinPrice != nil {
		v.Set("minPrice", strconv.FormatFloat(*p.MinPrice, 'f', -1, 64))
	}
	if p.MaxPrice != nil {
		v.Set("maxPrice", strconv.FormatFloat(*p.MaxPrice, 'f', -1, 64))
	}
	if p.SortBy != SortNone {
		v.Set("sortBy", string(p.SortBy))
	}
	return v
}

// ParseSearchParams decodes URL query values. An unknown sortBy is dropped;
// a malformed price is an error.
func ParseSearchParams(v url.Values) (ProductSearchParams, error) {
	p := ProductSearchParams{
		Search:   v.Get("search"),
		Category: v.Get("category"),
		Brand:    v.Get("brand"),
		SortBy:   ParseSortKey(v.Get("sortBy")),
	}
	var err error
	if p.MinPrice, err = parseBound(v.Get("minPrice")); err != nil {
		return ProductSearchParams{}, fmt.Errorf("invalid minPrice: %w", err)
	}
	if p.MaxPrice, err = parseBound(v.Get("maxPrice")); err != nil {
		return ProductSearchParams{}, fmt.Errorf("invalid maxPrice: %w", err)
	}
	return p, nil
}

func parseBound(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}
