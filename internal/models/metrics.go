package models

import "time"

// Event is one tracked user interaction from the site (pageview, scroll
// depth mark, store/card click). Clients may omit EventID and Timestamp;
// the collector fills them in.
type Event struct {
	EventID   string         `json:"event_id,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	Type      string         `json:"type"`
	SessionID string         `json:"session_id,omitempty"`
	PageURL   string         `json:"page_url,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}
