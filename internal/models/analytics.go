package models

import (
	"encoding/json"
	"time"
)

// CountryStat, DeviceStat, ArticleStat and CategoryStat are the ranked
// breakdowns inside a daily snapshot.
type CountryStat struct {
	Country    string  `json:"country"`
	Users      int64   `json:"users"`
	Percentage float64 `json:"percentage"`
}

type DeviceStat struct {
	Device     string  `json:"device"`
	Users      int64   `json:"users"`
	Percentage float64 `json:"percentage"`
}

type ArticleStat struct {
	Title   string  `json:"title"`
	Views   int64   `json:"views"`
	AvgTime float64 `json:"avgTime"`
}

type CategoryStat struct {
	Category string `json:"category"`
	Views    int64  `json:"views"`
}

// AnalyticsSnapshot is one day's worth of aggregated traffic data.
type AnalyticsSnapshot struct {
	ID                 string         `json:"id"`
	Date               time.Time      `json:"date"`
	PageViews          int64          `json:"pageViews"`
	UniqueUsers        int64          `json:"uniqueUsers"`
	Sessions           int64          `json:"sessions"`
	BounceRate         float64        `json:"bounceRate"`
	AvgSessionDuration float64        `json:"avgSessionDuration"`
	TopCountries       []CountryStat  `json:"topCountries"`
	TopDevices         []DeviceStat   `json:"topDevices"`
	TopArticles        []ArticleStat  `json:"topArticles"`
	TopCategories      []CategoryStat `json:"topCategories"`
	BreakdownJSON      string         `json:"-"` // Ranked lists stored as one JSON column
	CreatedAt          time.Time      `json:"createdAt"`
}

type snapshotBreakdown struct {
	TopCountries  []CountryStat  `json:"topCountries"`
	TopDevices    []DeviceStat   `json:"topDevices"`
	TopArticles   []ArticleStat  `json:"topArticles"`
	TopCategories []CategoryStat `json:"topCategories"`
}

// PrepareForDB marshals the ranked lists into the JSON column.
func (a *AnalyticsSnapshot) PrepareForDB() {
	b := snapshotBreakdown{
		TopCountries:  a.TopCountries,
		TopDevices:    a.TopDevices,
		TopArticles:   a.TopArticles,
		TopCategories: a.TopCategories,
	}
	raw, _ := json.Marshal(b)
	a.BreakdownJSON = string(raw)
}

// PrepareForAPI unmarshals the JSON column back into the ranked lists.
func (a *AnalyticsSnapshot) PrepareForAPI() {
	if a.BreakdownJSON == "" {
		return
	}
	var b snapshotBreakdown
	if json.Unmarshal([]byte(a.BreakdownJSON), &b) == nil {
		a.TopCountries = b.TopCountries
		a.TopDevices = b.TopDevices
		a.TopArticles = b.TopArticles
		a.TopCategories = b.TopCategories
	}
}

// AnalyticsReport is the nested structure returned for range queries.
type AnalyticsReport struct {
	Overview struct {
		PageViews          int64   `json:"pageViews"`
		UniqueUsers        int64   `json:"uniqueUsers"`
		Sessions           int64   `json:"sessions"`
		BounceRate         float64 `json:"bounceRate"`
		AvgSessionDuration float64 `json:"avgSessionDuration"`
	} `json:"overview"`
	Audience struct {
		TopCountries []CountryStat `json:"topCountries"`
		TopDevices   []DeviceStat  `json:"topDevices"`
	} `json:"audience"`
	Content struct {
		TopArticles   []ArticleStat  `json:"topArticles"`
		TopCategories []CategoryStat `json:"topCategories"`
	} `json:"content"`
	Realtime struct {
		LiveVisitors  int64   `json:"liveVisitors"`
		CPUPercent    float64 `json:"cpuPercent"`
		MemoryPercent float64 `json:"memoryPercent"`
		UptimeSeconds int64   `json:"uptimeSeconds"`
	} `json:"realtime"`
}
