package domain

import "time"

// GeocodeResult is a cached upstream geocoder response body.
type GeocodeResult struct {
	Query     string    `dynamodbav:"query"`
	Payload   string    `dynamodbav:"payload"`
	ExpiresAt int64     `dynamodbav:"expires_at"`
	CachedAt  time.Time `dynamodbav:"cached_at"`
}
