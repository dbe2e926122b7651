package domain

import (
	"cmp"
	"slices"
	"strings"
	"time"
)

type SectionType string

const (
	SectionCategory SectionType = "category"
	SectionDeal     SectionType = "deal"
	SectionBrand    SectionType = "brand"
	SectionTrending SectionType = "trending"
	SectionCustom   SectionType = "custom"
)

func (t SectionType) Valid() bool {
	switch t {
	case SectionCategory, SectionDeal, SectionBrand, SectionTrending, SectionCustom:
		return true
	}
	return false
}

type (
	// A Section is a curated, ordered subset of products shown
	// on the storefront home page.
	Section struct {
		ID           string
		Title        string
		Subtitle     string
		Type         SectionType
		Category     string
		ProductIDs   []string
		DisplayOrder int
		IsActive     bool
		DiscountText string
		CreatedAt    time.Time
	}

	HomeSection struct {
		Section  Section
		Products []Product
	}
)

func (s Section) Validate() error {
	switch {
	case strings.TrimSpace(s.Title) == "":
		return Invalid("title is required")
	case !s.Type.Valid():
		return Invalid("unknown section type %q", s.Type)
	}
	return nil
}

// ActiveSections keeps the active sections and orders them by display
// order. The input must be in insertion order, ties keep it.
func ActiveSections(ss []Section) []Section {
	active := make([]Section, 0, len(ss))
	for _, s := range ss {
		if s.IsActive {
			active = append(active, s)
		}
	}
	slices.SortStableFunc(active, func(a, b Section) int {
		return cmp.Compare(a.DisplayOrder, b.DisplayOrder)
	})
	return active
}
