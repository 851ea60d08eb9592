package models

import (
	"slices"
	"time"
)

// SiteSettingsID is the primary key of the single settings row.
const SiteSettingsID = "site"

// SocialLinks always carries all five networks. An empty URL hides the icon.
type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Instagram string `json:"instagram"`
	LinkedIn  string `json:"linkedin"`
	Youtube   string `json:"youtube"`
}

// NavLink is a header or footer link. Disabled links stay stored but are not rendered.
type NavLink struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Enabled bool   `json:"enabled"`
}

// FooterSection groups footer links under a heading.
type FooterSection struct {
	Title string    `json:"title"`
	Links []NavLink `json:"links"`
}

// SiteSettings stores the site-wide configuration managed via the admin panel.
// There is only one row (singleton pattern).
type SiteSettings struct {
	ID             string          `gorm:"primaryKey;size:32" json:"-"`
	Title          string          `json:"title"`
	LogoURL        string          `json:"logoUrl"`
	PhoneNumbers   []string        `gorm:"type:text;serializer:json" json:"phoneNumbers"`
	ContactEmails  []string        `gorm:"type:text;serializer:json" json:"contactEmails"`
	Address        string          `json:"address"`
	SocialLinks    SocialLinks     `gorm:"type:text;serializer:json" json:"socialLinks"`
	HeaderLinks    []NavLink       `gorm:"type:text;serializer:json" json:"headerLinks"`
	FooterSections []FooterSection `gorm:"type:text;serializer:json" json:"footerSections"`
	FooterTagline  string          `json:"footerTagline"`
	CopyrightText  string          `json:"copyrightText"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// IsEmpty reports whether the row carries no content at all.
func (s *SiteSettings) IsEmpty() bool {
	return s.Title == "" &&
		s.LogoURL == "" &&
		len(s.PhoneNumbers) == 0 &&
		len(s.ContactEmails) == 0 &&
		s.Address == "" &&
		s.SocialLinks == (SocialLinks{}) &&
		len(s.HeaderLinks) == 0 &&
		len(s.FooterSections) == 0 &&
		s.FooterTagline == "" &&
		s.CopyrightText == ""
}

// Clone returns a deep copy so callers never share slices with a cached value.
func (s SiteSettings) Clone() SiteSettings {
	s.PhoneNumbers = slices.Clone(s.PhoneNumbers)
	s.ContactEmails = slices.Clone(s.ContactEmails)
	s.HeaderLinks = slices.Clone(s.HeaderLinks)
	if s.FooterSections != nil {
		sections := make([]FooterSection, len(s.FooterSections))
		for i, section := range s.FooterSections {
			sections[i] = FooterSection{Title: section.Title, Links: slices.Clone(section.Links)}
		}
		s.FooterSections = sections
	}
	return s
}

// Normalize replaces nil lists with empty ones so they encode as [] rather than null.
func (s *SiteSettings) Normalize() {
	if s.PhoneNumbers == nil {
		s.PhoneNumbers = []string{}
	}
	if s.ContactEmails == nil {
		s.ContactEmails = []string{}
	}
	if s.HeaderLinks == nil {
		s.HeaderLinks = []NavLink{}
	}
	if s.FooterSections == nil {
		s.FooterSections = []FooterSection{}
	}
	for i := range s.FooterSections {
		if s.FooterSections[i].Links == nil {
			s.FooterSections[i].Links = []NavLink{}
		}
	}
}
