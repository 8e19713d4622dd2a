package repscan

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"url-reputation-poc/config"
)

// Querier is the generic interface implemented by each upstream client.
// Query never returns an error: every failure mode is logged and surfaced
// as a nil fragment.
type Querier interface {
	Name() string
	Query(ctx context.Context, rawurl string) *VerdictFragment
}

// ScoreClient talks to service A, which returns a category plus a numeric
// reputation score. Lookups are GETs with a bearer credential.
type ScoreClient struct {
	name     string
	endpoint string
	apiKey   string
	client   *http.Client
	log      zerolog.Logger
}

func NewScoreClient(svc config.Service, log zerolog.Logger) *ScoreClient {
	return &ScoreClient{
		name:     svc.Name,
		endpoint: svc.Endpoint,
		apiKey:   svc.APIKey,
		client:   &http.Client{Timeout: 8 * time.Second},
		log:      log,
	}
}

func (c *ScoreClient) Name() string { return c.name }

func (c *ScoreClient) Query(ctx context.Context, rawurl string) *VerdictFragment {
	if disabled(c.endpoint) {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?url="+url.QueryEscape(rawurl), nil)
	if err != nil {
		c.log.Warn().Str("service", c.name).Str("url", rawurl).Err(err).Msg("building upstream request failed")
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	body := fetchJSON(c.client, c.log, c.name, req, rawurl)
	if body == nil {
		return nil
	}

	return &VerdictFragment{
		Category: pickString(body, categoryKeys),
		Score:    pickNumber(body, scoreKeys),
		Raw:      body,
	}
}

// ThreatClient talks to service B, which returns a category plus a textual
// threat level. Lookups are JSON POSTs with the credential in a header.
type ThreatClient struct {
	name     string
	endpoint string
	apiKey   string
	client   *http.Client
	log      zerolog.Logger
}

func NewThreatClient(svc config.Service, log zerolog.Logger) *ThreatClient {
	return &ThreatClient{
		name:     svc.Name,
		endpoint: svc.Endpoint,
		apiKey:   svc.APIKey,
		client:   &http.Client{Timeout: 8 * time.Second},
		log:      log,
	}
}

func (c *ThreatClient) Name() string { return c.name }

func (c *ThreatClient) Query(ctx context.Context, rawurl string) *VerdictFragment {
	if disabled(c.endpoint) {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"url": rawurl})
	if err != nil {
		c.log.Warn().Str("service", c.name).Str("url", rawurl).Err(err).Msg("encoding upstream request failed")
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		c.log.Warn().Str("service", c.name).Str("url", rawurl).Err(err).Msg("building upstream request failed")
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	body := fetchJSON(c.client, c.log, c.name, req, rawurl)
	if body == nil {
		return nil
	}

	return &VerdictFragment{
		Category: pickString(body, categoryKeys),
		Threat:   pickString(body, threatKeys),
		Raw:      body,
	}
}

func disabled(endpoint string) bool {
	return endpoint == "" || endpoint == config.Placeholder
}

// fetchJSON executes the request and decodes the body as a generic JSON
// object. Transport failures, non-2xx statuses, and undecodable bodies are
// logged and collapsed to nil.
func fetchJSON(client *http.Client, log zerolog.Logger, name string, req *http.Request, rawurl string) map[string]any {
	resp, err := client.Do(req)
	if err != nil {
		log.Warn().Str("service", name).Str("url", rawurl).Err(err).Msg("upstream request failed")
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn().Str("service", name).Str("url", rawurl).Int("status", resp.StatusCode).Msg("upstream returned non-success status")
		return nil
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Warn().Str("service", name).Str("url", rawurl).Err(err).Msg("decoding upstream response failed")
		return nil
	}
	return body
}
