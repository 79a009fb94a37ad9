package domain

import "time"

// ActivityType is the verb of an audit activity.
type ActivityType string

const (
	ActivityCreate ActivityType = "Create"
	ActivityDelete ActivityType = "Delete"
)

// ActivityActor is who performed an activity.
type ActivityActor struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// ActivityObject is what the activity was performed on.
type ActivityObject struct {
	Type      string `json:"@type"`
	UserID    string `json:"userId,omitempty"`
	PartnerID string `json:"partnerId,omitempty"`
}

// Activity is an audit record persisted in the same transaction as the change it describes.
type Activity struct {
	ActivityID string         `json:"id"`
	Type       ActivityType   `json:"type"`
	Actor      ActivityActor  `json:"actor"`
	Object     ActivityObject `json:"object"`
	Context    string         `json:"context,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}
