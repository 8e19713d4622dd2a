package repscan

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyBatch is returned when a scan is requested with no URLs.
var ErrEmptyBatch = errors.New("url batch is empty")

// Fragments holds the supporting evidence behind a classification.
type Fragments struct {
	ServiceA *VerdictFragment `json:"service_a"`
	ServiceB *VerdictFragment `json:"service_b"`
}

// ScanResult is the per-URL outcome. Output order always matches input
// order, including duplicate URLs.
type ScanResult struct {
	URL       string     `json:"url"`
	Status    Status     `json:"status"`
	Label     string     `json:"label"`
	Reason    string     `json:"reason"`
	Fragments Fragments  `json:"fragments"`
	Whois     *WhoisInfo `json:"whois,omitempty"`
}

// Scanner runs batches of URL lookups against both upstream services.
type Scanner struct {
	serviceA Querier
	serviceB Querier
	enrich   *WhoisEnricher // nil disables enrichment
	log      zerolog.Logger
}

func NewScanner(serviceA, serviceB Querier, enrich *WhoisEnricher, log zerolog.Logger) *Scanner {
	return &Scanner{serviceA: serviceA, serviceB: serviceB, enrich: enrich, log: log}
}

// Scan processes the URLs one at a time in input order; for each URL the two
// upstream queries run concurrently and are joined before classification.
// One URL's failure never aborts the rest of the batch.
func (s *Scanner) Scan(ctx context.Context, urls []string) ([]ScanResult, error) {
	if len(urls) == 0 {
		return []ScanResult{}, ErrEmptyBatch
	}

	results := make([]ScanResult, 0, len(urls))
	for _, u := range urls {
		results = append(results, s.scanOne(ctx, u))
	}
	s.log.Info().Int("urls", len(urls)).Msg("scan batch completed")
	return results, nil
}

func (s *Scanner) scanOne(ctx context.Context, rawurl string) ScanResult {
	fragA, fragB, failed := s.queryBoth(ctx, rawurl)
	if failed != "" {
		return ScanResult{
			URL:    rawurl,
			Status: StatusUnknown,
			Label:  "Unsure",
			Reason: fmt.Sprintf("Error querying %s.", failed),
		}
	}

	c := Classify(rawurl, fragA, fragB)
	res := ScanResult{
		URL:       rawurl,
		Status:    c.Status,
		Label:     c.Label,
		Reason:    c.Reason,
		Fragments: Fragments{ServiceA: fragA, ServiceB: fragB},
	}
	if s.enrich != nil {
		res.Whois = s.enrich.Lookup(rawurl)
	}
	return res
}

// queryBoth issues both upstream queries together and waits for the slower
// of the two. The clients' contract is to never fail, so a panic is treated
// as a contract violation and reported via failed (the offending service's
// name) with both fragments dropped.
func (s *Scanner) queryBoth(ctx context.Context, rawurl string) (fragA, fragB *VerdictFragment, failed string) {
	var okA, okB bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fragA, okA = s.safeQuery(gctx, s.serviceA, rawurl)
		return nil
	})
	g.Go(func() error {
		fragB, okB = s.safeQuery(gctx, s.serviceB, rawurl)
		return nil
	})
	_ = g.Wait()

	switch {
	case !okA:
		return nil, nil, s.serviceA.Name()
	case !okB:
		return nil, nil, s.serviceB.Name()
	}
	return fragA, fragB, ""
}

func (s *Scanner) safeQuery(ctx context.Context, q Querier, rawurl string) (frag *VerdictFragment, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Str("service", q.Name()).Str("url", rawurl).Interface("panic", r).Msg("upstream client panicked")
			frag, ok = nil, false
		}
	}()
	return q.Query(ctx, rawurl), true
}
