package settings

import "github.com/example/purnachandra/internal/models"

// DefaultSiteSettings is served whenever no settings have been saved yet.
// Every call returns a fresh value.
func DefaultSiteSettings() models.SiteSettings {
	return models.SiteSettings{
		ID:            models.SiteSettingsID,
		Title:         "Purna Chandra Diagnostic",
		LogoURL:       "",
		PhoneNumbers:  []string{"+91 98765 43210", "+91 33 2456 7890"},
		ContactEmails: []string{"info@purnachandradiagnostic.com", "appointments@purnachandradiagnostic.com"},
		Address:       "12 Hospital Road, Kolkata, West Bengal 700001, India",
		SocialLinks: models.SocialLinks{
			Facebook:  "https://facebook.com/purnachandradiagnostic",
			Twitter:   "https://twitter.com/purnachandradx",
			Instagram: "https://instagram.com/purnachandradiagnostic",
			LinkedIn:  "https://linkedin.com/company/purnachandradiagnostic",
			Youtube:   "https://youtube.com/@purnachandradiagnostic",
		},
		HeaderLinks: []models.NavLink{
			{Name: "Home", Path: "/", Enabled: true},
			{Name: "Services", Path: "/services", Enabled: true},
			{Name: "Doctors", Path: "/doctors", Enabled: true},
			{Name: "Gallery", Path: "/gallery", Enabled: true},
			{Name: "Contact", Path: "/contact", Enabled: true},
		},
		FooterSections: []models.FooterSection{
			{
				Title: "Quick Links",
				Links: []models.NavLink{
					{Name: "About Us", Path: "/about", Enabled: true},
					{Name: "Our Doctors", Path: "/doctors", Enabled: true},
					{Name: "Our Staff", Path: "/staff", Enabled: true},
					{Name: "Book Appointment", Path: "/appointment", Enabled: true},
					{Name: "Contact", Path: "/contact", Enabled: true},
				},
			},
			{
				Title: "Services",
				Links: []models.NavLink{
					{Name: "Pathology", Path: "/services?category=pathology", Enabled: true},
					{Name: "Radiology", Path: "/services?category=radiology", Enabled: true},
					{Name: "Ultrasonography", Path: "/services?category=ultrasonography", Enabled: true},
					{Name: "Cardiology", Path: "/services?category=cardiology", Enabled: true},
				},
			},
		},
		FooterTagline: "Accurate diagnosis, compassionate care.",
		CopyrightText: "© {year} Purna Chandra Diagnostic. All rights reserved.",
	}
}
