package cmd

import "time"

// Config carries everything the process needs from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	GeocoderBaseURL string
	PushGatewayURL  string

	InitialRadiusKm        float64
	ExpandedRadiusKm       float64
	InitialSearchDuration  time.Duration
	ExpandedSearchDuration time.Duration
	MaxLocationAge         time.Duration
}
