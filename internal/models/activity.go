package models

import "time"

// Activity is a row of the activities table. Data holds the JSON encoded activity.
type Activity struct {
	ActivityID string    `db:"activity_id"`
	ActorType  string    `db:"actor_type"`
	ActorID    string    `db:"actor_id"`
	Data       []byte    `db:"data"`
	CreatedAt  time.Time `db:"created_at"`
}
