// Package pagination implements the shared ordering and slicing engine used
// by all registry listing operations.
package pagination

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
)

// Direction is the ordering direction of a listing.
type Direction string

const (
	// Asc orders results ascending.
	Asc Direction = "asc"
	// Desc orders results descending.
	Desc Direction = "desc"
)

const (
	// DefaultPage is the page used when the caller does not supply one.
	DefaultPage = 1
	// DefaultPerPage is the page size used when the caller does not supply one.
	DefaultPerPage = 20
	// MaxPerPage caps the page size a caller may request.
	MaxPerPage = 100
)

// Params are the validated listing parameters of a request.
type Params struct {
	Page      int
	PerPage   int
	Order     string
	Direction Direction
}

// Parse extracts listing parameters from query values. The order key must be
// present in the allow-list for the resource being listed; unknown keys are
// rejected rather than silently ignored.
func Parse(query url.Values, allowedOrders []string, defaultOrder string) (Params, error) {
	p := Params{
		Page:      DefaultPage,
		PerPage:   DefaultPerPage,
		Order:     defaultOrder,
		Direction: Asc,
	}

	if raw := query.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return Params{}, fmt.Errorf("invalid page parameter: must be a positive integer")
		}
		p.Page = page
	}

	if raw := query.Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil || perPage < 1 {
			return Params{}, fmt.Errorf("invalid per_page parameter: must be a positive integer")
		}
		if perPage > MaxPerPage {
			return Params{}, fmt.Errorf("invalid per_page parameter: must not exceed %d", MaxPerPage)
		}
		p.PerPage = perPage
	}

	if raw := query.Get("order"); raw != "" {
		if !contains(allowedOrders, raw) {
			return Params{}, fmt.Errorf("invalid order parameter: %q is not supported", raw)
		}
		p.Order = raw
	}

	if raw := query.Get("direction"); raw != "" {
		switch Direction(raw) {
		case Asc, Desc:
			p.Direction = Direction(raw)
		default:
			return Params{}, fmt.Errorf("invalid direction parameter: must be %q or %q", Asc, Desc)
		}
	}

	return p, nil
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// Offset returns the zero-based index of the first item of the page.
func (p Params) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// Apply orders items by the given key and slices out the requested page.
// The input slice is not modified.
func Apply[T any](items []T, p Params, key func(T) string) []T {
	ordered := make([]T, len(items))
	copy(ordered, items)

	sort.SliceStable(ordered, func(i, j int) bool {
		if p.Direction == Desc {
			return key(ordered[i]) > key(ordered[j])
		}
		return key(ordered[i]) < key(ordered[j])
	})

	start := p.Offset()
	if start >= len(ordered) {
		return []T{}
	}
	end := start + p.PerPage
	if end > len(ordered) {
		end = len(ordered)
	}
	return ordered[start:end]
}

// Links holds the navigation URLs of a listing response.
type Links struct {
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
}

// BuildLinks constructs first/prev/next/last links for the listing, keeping
// the order and direction of the current request.
func BuildLinks(basePath string, p Params, total int) Links {
	lastPage := (total + p.PerPage - 1) / p.PerPage
	if lastPage < 1 {
		lastPage = 1
	}

	links := Links{
		First: pageURL(basePath, p, 1),
		Last:  pageURL(basePath, p, lastPage),
	}
	if p.Page > 1 {
		links.Prev = pageURL(basePath, p, p.Page-1)
	}
	if p.Page < lastPage {
		links.Next = pageURL(basePath, p, p.Page+1)
	}
	return links
}

func pageURL(basePath string, p Params, page int) string {
	values := url.Values{}
	values.Set("page", strconv.Itoa(page))
	values.Set("per_page", strconv.Itoa(p.PerPage))
	if p.Order != "" {
		values.Set("order", p.Order)
	}
	values.Set("direction", string(p.Direction))
	return basePath + "?" + values.Encode()
}
