package domain

// Event types carried on the status topic.
const (
	EventWebsiteUp   = "website.up"
	EventWebsiteDown = "website.down"
)

// StatusEvent is the wire contract between workers and the notification
// dispatcher. UserID is set only on down events; the dispatcher needs it to
// look up the owner's integrations. Timestamp is epoch milliseconds.
type StatusEvent struct {
	Type         string    `json:"type"`
	WebsiteID    WebsiteID `json:"websiteId"`
	UserID       string    `json:"userId,omitempty"`
	URL          string    `json:"url"`
	ResponseTime int64     `json:"responseTime"`
	RegionID     string    `json:"regionId"`
	Timestamp    int64     `json:"timestamp"`
}
