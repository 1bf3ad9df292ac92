package domain

import "encoding/json"

// Stats are the headline dashboard counters.
type Stats struct {
	TotalUsers     int64 `json:"total_users"`
	TotalPremium   int64 `json:"total_premium"`
	TodaysReadings int64 `json:"todays_readings"`
	TotalCoins     int64 `json:"total_coins"`
}

// Activity is one row of the recent activity feed.
type Activity struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	UserID      string `json:"user_id,omitempty"`
	UserName    string `json:"user_name,omitempty"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// ActivityTypeReading marks activities that are horoscope readings.
const ActivityTypeReading = "reading"

// FilterActivities keeps activities of the given type.
func FilterActivities(items []Activity, kind string) []Activity {
	out := make([]Activity, 0, len(items))
	for _, a := range items {
		if a.Type == kind {
			out = append(out, a)
		}
	}
	return out
}

// Pagination is the paging envelope of list endpoints that report totals.
type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// UsageLogPage is a page of AI model usage logs.
type UsageLogPage struct {
	Data       []json.RawMessage `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// TotalPages returns how many pages of size limit cover total items.
func TotalPages(total, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// TimeRanges are the usage windows the admin API understands.
var TimeRanges = []string{"today", "7d", "30d", "all"}

// DefaultTimeRange is selected when none or an unknown one is requested.
const DefaultTimeRange = "7d"

// NormalizeTimeRange returns r when it is a known window, DefaultTimeRange otherwise.
func NormalizeTimeRange(r string) string {
	for _, known := range TimeRanges {
		if r == known {
			return r
		}
	}
	return DefaultTimeRange
}
