package settings

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/example/purnachandra/internal/models"
)

// Patch is a settings document as sent by the admin editor. A nil field was
// omitted from the request and keeps its stored value; a non-nil field
// replaces the stored value as a whole.
type Patch struct {
	Title          *string                 `json:"title"`
	LogoURL        *string                 `json:"logoUrl"`
	PhoneNumbers   *[]string               `json:"phoneNumbers"`
	ContactEmails  *[]string               `json:"contactEmails"`
	Address        *string                 `json:"address"`
	SocialLinks    *models.SocialLinks     `json:"socialLinks"`
	HeaderLinks    *[]models.NavLink       `json:"headerLinks"`
	FooterSections *[]models.FooterSection `json:"footerSections"`
	FooterTagline  *string                 `json:"footerTagline"`
	CopyrightText  *string                 `json:"copyrightText"`
}

// PatchFrom turns a full settings value into a patch that replaces every key.
func PatchFrom(s models.SiteSettings) Patch {
	s = s.Clone()
	s.Normalize()
	return Patch{
		Title:          &s.Title,
		LogoURL:        &s.LogoURL,
		PhoneNumbers:   &s.PhoneNumbers,
		ContactEmails:  &s.ContactEmails,
		Address:        &s.Address,
		SocialLinks:    &s.SocialLinks,
		HeaderLinks:    &s.HeaderLinks,
		FooterSections: &s.FooterSections,
		FooterTagline:  &s.FooterTagline,
		CopyrightText:  &s.CopyrightText,
	}
}

// ValidationError reports a patch the editor must correct.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the fields present in the patch.
func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if p.ContactEmails != nil {
		for i, email := range *p.ContactEmails {
			if _, err := mail.ParseAddress(email); err != nil {
				return &ValidationError{Field: fmt.Sprintf("contactEmails[%d]", i), Message: "invalid email format"}
			}
		}
	}
	if p.HeaderLinks != nil {
		if err := validateLinks("headerLinks", *p.HeaderLinks); err != nil {
			return err
		}
	}
	if p.FooterSections != nil {
		for i, section := range *p.FooterSections {
			field := fmt.Sprintf("footerSections[%d]", i)
			if strings.TrimSpace(section.Title) == "" {
				return &ValidationError{Field: field + ".title", Message: "must not be empty"}
			}
			if err := validateLinks(field+".links", section.Links); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateLinks(field string, links []models.NavLink) error {
	for i, link := range links {
		if strings.TrimSpace(link.Name) == "" {
			return &ValidationError{Field: fmt.Sprintf("%s[%d].name", field, i), Message: "must not be empty"}
		}
		if strings.TrimSpace(link.Path) == "" {
			return &ValidationError{Field: fmt.Sprintf("%s[%d].path", field, i), Message: "must not be empty"}
		}
	}
	return nil
}

// Apply overwrites the present top-level keys of dst.
func (p Patch) Apply(dst *models.SiteSettings) {
	if p.Title != nil {
		dst.Title = strings.TrimSpace(*p.Title)
	}
	if p.LogoURL != nil {
		dst.LogoURL = strings.TrimSpace(*p.LogoURL)
	}
	if p.PhoneNumbers != nil {
		dst.PhoneNumbers = append([]string{}, *p.PhoneNumbers...)
	}
	if p.ContactEmails != nil {
		dst.ContactEmails = append([]string{}, *p.ContactEmails...)
	}
	if p.Address != nil {
		dst.Address = *p.Address
	}
	if p.SocialLinks != nil {
		dst.SocialLinks = *p.SocialLinks
	}
	if p.HeaderLinks != nil {
		dst.HeaderLinks = append([]models.NavLink{}, *p.HeaderLinks...)
	}
	if p.FooterSections != nil {
		sections := make([]models.FooterSection, len(*p.FooterSections))
		for i, section := range *p.FooterSections {
			sections[i] = models.FooterSection{
				Title: section.Title,
				Links: append([]models.NavLink{}, section.Links...),
			}
		}
		dst.FooterSections = sections
	}
	if p.FooterTagline != nil {
		dst.FooterTagline = *p.FooterTagline
	}
	if p.CopyrightText != nil {
		dst.CopyrightText = *p.CopyrightText
	}
}
