package domain

// BrandingSettings mirrors the tenant display configuration owned by the
// backend. The client holds a read-only overlay of these on its defaults.
type BrandingSettings struct {
	LogoURL              string `json:"logo_url"`
	CompanyName          string `json:"company_name"`
	PrimaryColor         string `json:"primary_color"`
	SecondaryColor       string `json:"secondary_color"`
	AccentColor          string `json:"accent_color"`
	TextOnPrimary        string `json:"text_on_primary"`
	PortalTitle          string `json:"portal_title"`
	PortalWelcomeMessage string `json:"portal_welcome_message"`
	WhiteLabelEnabled    bool   `json:"white_label_enabled"`
}

// DefaultBranding is the client-side fallback applied before (or instead
// of) the server values.
func DefaultBranding() BrandingSettings {
	return BrandingSettings{
		CompanyName:          "FieldOS",
		PrimaryColor:         "#1f6feb",
		SecondaryColor:       "#0d419d",
		AccentColor:          "#f0883e",
		TextOnPrimary:        "#ffffff",
		PortalTitle:          "FieldOS Portal",
		PortalWelcomeMessage: "Welcome back",
	}
}
