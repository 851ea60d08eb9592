package settings

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/purnachandra/internal/models"
)

func TestRenderCopyrightReplacesEveryPlaceholder(t *testing.T) {
	now := time.Date(2026, time.October, 17, 0, 0, 0, 0, time.UTC)

	got := RenderCopyright("© {year} PCD. Since 2001–{year}.", now)
	assert.Equal(t, "© 2026 PCD. Since 2001–2026.", got)

	assert.Equal(t, got, RenderCopyright(got, now))
	assert.Equal(t, "no token", RenderCopyright("no token", now))
}

func TestNewPublicViewHidesDisabledLinks(t *testing.T) {
	s := DefaultSiteSettings()
	s.HeaderLinks[1].Enabled = false
	s.SocialLinks.Twitter = ""
	s.FooterSections = []models.FooterSection{
		{Title: "Visible", Links: []models.NavLink{{Name: "A", Path: "/a", Enabled: true}, {Name: "B", Path: "/b"}}},
		{Title: "Hidden", Links: []models.NavLink{{Name: "C", Path: "/c"}}},
	}

	view := NewPublicView(s, time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC))

	assert.Len(t, view.HeaderLinks, 4)
	for _, link := range view.HeaderLinks {
		assert.NotEqual(t, "Services", link.Name)
	}
	assert.Len(t, view.SocialLinks, 4)
	require.Len(t, view.FooterSections, 1)
	assert.Equal(t, []models.NavLink{{Name: "A", Path: "/a", Enabled: true}}, view.FooterSections[0].Links)
	assert.Equal(t, "© 2030 Purna Chandra Diagnostic. All rights reserved.", view.Copyright)

	// The source keeps its template and disabled links.
	assert.Contains(t, s.CopyrightText, YearPlaceholder)
	assert.False(t, s.HeaderLinks[1].Enabled)
}

func TestPatchDecodingDistinguishesOmittedKeys(t *testing.T) {
	var patch Patch
	require.NoError(t, json.Unmarshal([]byte(`{"title":"X","headerLinks":[]}`), &patch))

	require.NotNil(t, patch.Title)
	require.NotNil(t, patch.HeaderLinks)
	assert.Empty(t, *patch.HeaderLinks)
	assert.Nil(t, patch.SocialLinks)
	assert.Nil(t, patch.FooterSections)

	s := DefaultSiteSettings()
	patch.Apply(&s)
	assert.Equal(t, "X", s.Title)
	assert.Empty(t, s.HeaderLinks)
	assert.Equal(t, DefaultSiteSettings().SocialLinks, s.SocialLinks)
}
