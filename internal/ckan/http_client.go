package ckan

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

type httpClient struct {
	cfg    Config
	client *http.Client
}

func newHTTPClient(cfg Config) *httpClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}
	return &httpClient{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (c *httpClient) get(rawURL string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: unexpected status %s", rawURL, resp.Status)
	}
	return resp, nil
}

// callAction performs a CKAN action API call and unwraps the success envelope.
func (c *httpClient) callAction(action string, params url.Values, out any) error {
	endpoint := fmt.Sprintf("%s/%s?%s", c.cfg.BaseURL, action, params.Encode())

	resp, err := c.get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var envelope apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode %s response: %w", action, err)
	}
	if !envelope.Success {
		msg := envelope.Error.Message
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Errorf("%s request failed: %s", action, msg)
	}

	if err := json.Unmarshal(envelope.Result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", action, err)
	}
	return nil
}

func (c *httpClient) GetPackage(packageID string) (*Package, error) {
	params := url.Values{}
	params.Set("id", packageID)

	var pkg Package
	if err := c.callAction("package_show", params, &pkg); err != nil {
		return nil, err
	}

	log.Debug().
		Str("package", packageID).
		Str("title", pkg.Title).
		Int("resources", len(pkg.Resources)).
		Msg("Fetched package metadata")

	return &pkg, nil
}

func (c *httpClient) SearchDatastore(resourceID string, limit int) ([]map[string]any, error) {
	params := url.Values{}
	params.Set("id", resourceID)
	params.Set("limit", fmt.Sprintf("%d", limit))

	var result datastoreResult
	if err := c.callAction("datastore_search", params, &result); err != nil {
		return nil, err
	}

	log.Debug().
		Str("resource", resourceID).
		Int("records", len(result.Records)).
		Int("total", result.Total).
		Msg("Fetched datastore rows")

	return result.Records, nil
}

func (c *httpClient) Download(rawURL, destPath string) error {
	resp, err := c.get(rawURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	file, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer file.Close()

	written, err := io.Copy(file, resp.Body)
	if err != nil {
		return fmt.Errorf("download %s: %w", rawURL, err)
	}

	log.Debug().
		Str("url", rawURL).
		Str("path", destPath).
		Int64("bytes", written).
		Msg("Download completed")

	return nil
}
