package service

import "time"

const (
	// WebhookTimeout bounds every call to the remote webhook.
	WebhookTimeout = 120 * time.Second

	// ImageTimeout bounds every image download.
	ImageTimeout = 30 * time.Second
)
