package ckan

import "encoding/json"

// Resource is one downloadable or datastore-backed entry within a package.
type Resource struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Format          string `json:"format"`
	URL             string `json:"url"`
	DatastoreActive bool   `json:"datastore_active"`
	LastModified    string `json:"last_modified"`
}

// Package is the CKAN package_show result subset the pipeline needs.
type Package struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Resources []Resource `json:"resources"`
}

// apiEnvelope is the standard CKAN action API response wrapper.
type apiEnvelope struct {
	Success bool            `json:"success"`
	Result  json.RawMessage `json:"result"`
	Error   apiError        `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"__type"`
}

// datastoreResult is the payload of a datastore_search call.
type datastoreResult struct {
	Records []map[string]any `json:"records"`
	Total   int              `json:"total"`
}
