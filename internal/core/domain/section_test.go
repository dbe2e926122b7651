package domain_test

import (
	"testing"

	"github.com/niksmo/fashion-store/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestActiveSections(t *testing.T) {
	ss := []domain.Section{
		{ID: "a", DisplayOrder: 3, IsActive: true},
		{ID: "b", DisplayOrder: 1, IsActive: true},
		{ID: "c", DisplayOrder: 0, IsActive: false},
		{ID: "d", DisplayOrder: 1, IsActive: true},
	}

	got := domain.ActiveSections(ss)

	ids := make([]string, len(got))
	for i, s := range got {
		ids[i] = s.ID
	}
	assert.Equal(t, []string{"b", "d", "a"}, ids)
	assert.Equal(t, "a", ss[0].ID)
}

func TestSectionValidate(t *testing.T) {
	assert.NoError(t, domain.Section{Title: "Deals", Type: domain.SectionDeal}.Validate())
	assert.ErrorIs(t, domain.Section{Type: domain.SectionDeal}.Validate(), domain.ErrValidation)
	assert.ErrorIs(t, domain.Section{Title: "X", Type: "hero"}.Validate(), domain.ErrValidation)
}
