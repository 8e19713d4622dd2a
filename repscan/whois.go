package repscan

import (
	"net/url"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"
	"github.com/rs/zerolog"
	"golang.org/x/net/publicsuffix"
)

// WhoisInfo is optional registration diagnostics attached to a scan result.
// It never influences the classification.
type WhoisInfo struct {
	RegistrableDomain string `json:"registrable_domain"`
	AgeDays           int    `json:"age_days,omitempty"`
	CreatedOn         string `json:"created_on,omitempty"`
	ExpiresOn         string `json:"expires_on,omitempty"`
}

type WhoisEnricher struct {
	log zerolog.Logger
}

func NewWhoisEnricher(log zerolog.Logger) *WhoisEnricher {
	return &WhoisEnricher{log: log}
}

// Lookup resolves the URL's registrable domain and queries whois for its
// registration dates. Any failure returns nil; enrichment is best effort.
func (e *WhoisEnricher) Lookup(rawurl string) *WhoisInfo {
	domain := registrableDomain(rawurl)
	if domain == "" {
		return nil
	}

	raw, err := whois.Whois(domain)
	if err != nil {
		e.log.Debug().Str("domain", domain).Err(err).Msg("whois lookup failed")
		return nil
	}
	p, err := parser.Parse(raw)
	if err != nil || p.Domain == nil {
		e.log.Debug().Str("domain", domain).Err(err).Msg("whois parse failed")
		return nil
	}

	info := &WhoisInfo{RegistrableDomain: domain}
	if created := parseWhoisDate(p.Domain.CreatedDate); !created.IsZero() {
		info.AgeDays = int(time.Since(created).Hours() / 24)
		info.CreatedOn = created.Format("02/01/2006")
	}
	if expires := parseWhoisDate(p.Domain.ExpirationDate); !expires.IsZero() {
		info.ExpiresOn = expires.Format("02/01/2006")
	}
	return info
}

// Registrars disagree on date formats; try the common layouts in order.
var whoisDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"2006.01.02",
}

func parseWhoisDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, l := range whoisDateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// registrableDomain extracts the eTLD+1 from a raw URL string, falling back
// to the bare hostname when the public suffix list has no answer (IPs,
// localhost).
func registrableDomain(rawurl string) string {
	s := strings.TrimSpace(rawurl)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "http://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" {
		return ""
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return registrable
}
