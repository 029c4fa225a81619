package broadcast

import "time"

// Dispatch is one broadcast handed to a Notifier.
type Dispatch struct {
	ID         string    `json:"id" bson:"dispatchId"`
	Mode       string    `json:"mode" bson:"mode"`
	Message    string    `json:"message" bson:"message"`
	Recipients []string  `json:"recipients" bson:"recipients"`
	CreatedAt  time.Time `json:"createdAt" bson:"createdAt"`
}
