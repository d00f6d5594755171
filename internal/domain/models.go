package domain

import "time"

type WebsiteID string

// Website is a monitored target. It is owned and mutated by the management
// API; the pipeline only reads it.
type Website struct {
	ID        WebsiteID `json:"id"`
	URL       string    `json:"url"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Job is the queue payload: everything a regional worker needs to probe one
// website once. It exists only between enqueue and acknowledgment.
type Job struct {
	WebsiteID WebsiteID `json:"id"`
	URL       string    `json:"url"`
}

type TickStatus string

const (
	StatusUp   TickStatus = "up"
	StatusDown TickStatus = "down"
)

// Tick is one recorded probe result for a website in a region. Ticks are
// append-only; a website's status history is its ticks ordered by CreatedAt.
type Tick struct {
	ID             string     `json:"id"`
	WebsiteID      WebsiteID  `json:"website_id"`
	RegionID       string     `json:"region_id"`
	Status         TickStatus `json:"status"`
	ResponseTimeMs int64      `json:"response_time_ms"`
	CreatedAt      time.Time  `json:"created_at"`
}

type IntegrationType string

const (
	IntegrationEmail    IntegrationType = "EMAIL"
	IntegrationWebhook  IntegrationType = "WEBHOOK"
	IntegrationSlack    IntegrationType = "SLACK"
	IntegrationDiscord  IntegrationType = "DISCORD"
	IntegrationTelegram IntegrationType = "TELEGRAM"
)

// Integration is a configured notification destination. Config keys depend
// on Type: "email" for EMAIL, "webhookUrl" for WEBHOOK/SLACK/DISCORD,
// "botToken"/"chatId" for TELEGRAM.
type Integration struct {
	ID      string            `json:"id"`
	UserID  string            `json:"user_id"`
	Type    IntegrationType   `json:"type"`
	Config  map[string]string `json:"config"`
	Enabled bool              `json:"enabled"`
}

type DeliveryStatus string

const (
	DeliverySent   DeliveryStatus = "SENT"
	DeliveryFailed DeliveryStatus = "FAILED"
)

// DeliveryLog records one attempted channel delivery, success or failure.
// One row per (event, integration) attempt; never retried by the pipeline.
type DeliveryLog struct {
	ID            string         `json:"id"`
	EventType     string         `json:"event_type"`
	IntegrationID string         `json:"integration_id"`
	Status        DeliveryStatus `json:"status"`
	Payload       string         `json:"payload"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	SentAt        time.Time      `json:"sent_at"`
}
