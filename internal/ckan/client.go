package ckan

import (
	"time"
)

// Client is the interface for interacting with the CKAN open-data portal.
type Client interface {
	// GetPackage fetches package metadata (title + resource listing) by id.
	GetPackage(packageID string) (*Package, error)
	// SearchDatastore fetches up to limit rows from an active datastore resource.
	SearchDatastore(resourceID string, limit int) ([]map[string]any, error)
	// Download streams the body of url into destPath.
	Download(url, destPath string) error
}

// Config holds the connection settings for the CKAN portal.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// NewClient creates a new CKAN client based on the provided configuration.
func NewClient(cfg Config) Client {
	return newHTTPClient(cfg)
}
