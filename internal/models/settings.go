package models

import "time"

// SiteInfo, NotificationSettings, PublishingSettings, SecuritySettings and
// SEOSettings are the groups inside the singleton settings document. Updates
// merge per group.
type SiteInfo struct {
	SiteName        string `json:"siteName"`
	SiteDescription string `json:"siteDescription"`
	SiteURL         string `json:"siteUrl"`
	ContactEmail    string `json:"contactEmail"`
	PhoneNumber     string `json:"phoneNumber"`
}

type NotificationSettings struct {
	EmailNotifications     bool `json:"emailNotifications"`
	PushNotifications      bool `json:"pushNotifications"`
	CommentNotifications   bool `json:"commentNotifications"`
	ReportingNotifications bool `json:"reportingNotifications"`
}

type PublishingSettings struct {
	ModerateComments bool `json:"moderateComments"`
	AutoPublish      bool `json:"autoPublish"`
	RequireApproval  bool `json:"requireApproval"`
	MinContentLength int  `json:"minContentLength"`
}

type SecuritySettings struct {
	EnableTwoFactor  bool `json:"enableTwoFactor"`
	SessionTimeout   int  `json:"sessionTimeout"`
	MaxLoginAttempts int  `json:"maxLoginAttempts"`
	EnforceSSL       bool `json:"enforceSSL"`
}

type SEOSettings struct {
	SiteName          string `json:"siteName"`
	Keywords          string `json:"keywords"`
	MetaDescription   string `json:"metaDescription"`
	GoogleAnalyticsID string `json:"googleAnalyticsId"`
	OGImage           string `json:"ogImage"`
}

// Settings is the portal-wide configuration singleton.
type Settings struct {
	ID            string               `json:"id"`
	SiteInfo      SiteInfo             `json:"siteInfo"`
	Notifications NotificationSettings `json:"notifications"`
	Publishing    PublishingSettings   `json:"publishing"`
	Security      SecuritySettings     `json:"security"`
	SEO           SEOSettings          `json:"seo"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// DefaultSettings returns the settings document created on first access or
// after a reset.
func DefaultSettings() Settings {
	return Settings{
		Notifications: NotificationSettings{
			EmailNotifications:     true,
			PushNotifications:      true,
			CommentNotifications:   true,
			ReportingNotifications: true,
		},
		Publishing: PublishingSettings{
			ModerateComments: true,
			AutoPublish:      false,
			RequireApproval:  true,
			MinContentLength: 100,
		},
		Security: SecuritySettings{
			EnableTwoFactor:  false,
			SessionTimeout:   1800,
			MaxLoginAttempts: 5,
			EnforceSSL:       true,
		},
	}
}
