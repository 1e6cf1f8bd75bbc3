package models

// HoroscopeSign is one of the twelve zodiac signs, slug-addressed.
type HoroscopeSign struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NameEn    string `json:"nameEn"`
	Slug      string `json:"slug"`
	Icon      string `json:"icon,omitempty"`
	Symbol    string `json:"symbol,omitempty"`
	DateRange string `json:"dateRange,omitempty"`
}
