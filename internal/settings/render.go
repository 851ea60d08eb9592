package settings

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/purnachandra/internal/models"
)

// YearPlaceholder is substituted with the current year when text is rendered.
const YearPlaceholder = "{year}"

// RenderCopyright replaces every year placeholder with the four-digit year of now.
// Text without a placeholder is returned unchanged.
func RenderCopyright(template string, now time.Time) string {
	return strings.ReplaceAll(template, YearPlaceholder, fmt.Sprintf("%04d", now.Year()))
}

// SocialLink is a visible social network entry.
type SocialLink struct {
	Network string `json:"network"`
	URL     string `json:"url"`
}

// PublicView is what the public pages render: hidden links removed and the
// copyright line already rendered.
type PublicView struct {
	Title          string                 `json:"title"`
	LogoURL        string                 `json:"logoUrl"`
	PhoneNumbers   []string               `json:"phoneNumbers"`
	ContactEmails  []string               `json:"contactEmails"`
	Address        string                 `json:"address"`
	SocialLinks    []SocialLink           `json:"socialLinks"`
	HeaderLinks    []models.NavLink       `json:"headerLinks"`
	FooterSections []models.FooterSection `json:"footerSections"`
	FooterTagline  string                 `json:"footerTagline"`
	Copyright      string                 `json:"copyright"`
}

// NewPublicView projects settings for rendering. Footer sections left without
// any enabled link are dropped.
func NewPublicView(s models.SiteSettings, now time.Time) PublicView {
	s = s.Clone()
	s.Normalize()

	view := PublicView{
		Title:          s.Title,
		LogoURL:        s.LogoURL,
		PhoneNumbers:   s.PhoneNumbers,
		ContactEmails:  s.ContactEmails,
		Address:        s.Address,
		SocialLinks:    visibleSocialLinks(s.SocialLinks),
		HeaderLinks:    enabledLinks(s.HeaderLinks),
		FooterSections: []models.FooterSection{},
		FooterTagline:  s.FooterTagline,
		Copyright:      RenderCopyright(s.CopyrightText, now),
	}

	for _, section := range s.FooterSections {
		links := enabledLinks(section.Links)
		if len(links) == 0 {
			continue
		}
		view.FooterSections = append(view.FooterSections, models.FooterSection{Title: section.Title, Links: links})
	}

	return view
}

func enabledLinks(links []models.NavLink) []models.NavLink {
	out := make([]models.NavLink, 0, len(links))
	for _, link := range links {
		if link.Enabled {
			out = append(out, link)
		}
	}
	return out
}

func visibleSocialLinks(links models.SocialLinks) []SocialLink {
	all := []SocialLink{
		{Network: "facebook", URL: links.Facebook},
		{Network: "twitter", URL: links.Twitter},
		{Network: "instagram", URL: links.Instagram},
		{Network: "linkedin", URL: links.LinkedIn},
		{Network: "youtube", URL: links.Youtube},
	}
	out := make([]SocialLink, 0, len(all))
	for _, link := range all {
		if strings.TrimSpace(link.URL) != "" {
			out = append(out, link)
		}
	}
	return out
}
