// Package webprobe implements verify.FactsProvider over live HTTP and DNS.
// All outbound calls share one rate limiter and honor the probe timeout, so
// a battery fan-out cannot hammer a candidate site.
package webprobe

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Thanatos9404/fakecatcher-plus/internal/config"
	"github.com/Thanatos9404/fakecatcher-plus/internal/logger"
	"github.com/Thanatos9404/fakecatcher-plus/internal/verify"
)

const (
	defaultTimeout   = 8 * time.Second
	defaultRate      = 2.0
	defaultBurst     = 4
	defaultUserAgent = "trust-engine/1.0 (+verification)"

	// maxBodyBytes bounds how much of a page the site probe will parse.
	maxBodyBytes = 2 << 20
)

// securityHeaderNames are the four hardening headers the reputation facts
// count.
var securityHeaderNames = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Frame-Options",
	"X-Content-Type-Options",
}

// careersPaths are probed in order until one answers 200.
var careersPaths = []string{
	"/careers", "/jobs", "/career", "/employment", "/join-us", "/opportunities",
}

type hostResolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Probe collects domain, reputation, and site facts from the live network.
type Probe struct {
	client   *http.Client
	limiter  *rate.Limiter
	resolver hostResolver
	config   config.ProbeConfig
	logger   logger.Logger
}

// New creates a probe with the given settings. Zero or negative rate and
// burst values fall back to conservative defaults.
func New(cfg config.ProbeConfig, log logger.Logger) *Probe {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rps := cfg.RateLimit
	if rps <= 0 {
		rps = defaultRate
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(math.Ceil(rps))
		if burst < defaultBurst {
			burst = defaultBurst
		}
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	return &Probe{
		client:   &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		resolver: net.DefaultResolver,
		config:   cfg,
		logger:   log,
	}
}

// DomainFacts confirms the domain by name resolution. The probe carries no
// registration-record client, so facts are always resolution-only; age and
// registrar data come from fixtures when a deployment has them.
func (p *Probe) DomainFacts(ctx context.Context, domain string) (*verify.DomainFacts, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	clean := CleanDomain(domain)
	lookupHost := clean
	if host, _, err := net.SplitHostPort(clean); err == nil {
		lookupHost = host
	}

	addrs, err := p.resolver.LookupHost(ctx, lookupHost)
	if err != nil {
		return nil, fmt.Errorf("domain does not resolve: %w", err)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("domain does not resolve: no addresses for %s", lookupHost)
	}

	p.logger.Debug("domain resolved",
		logger.String("domain", clean),
		logger.Int("addresses", len(addrs)),
	)
	return &verify.DomainFacts{Domain: clean, Registered: true, ResolvedOnly: true}, nil
}

// ReputationFacts fetches the site over HTTPS first, HTTP second, and
// reports transport hygiene. Any answered request counts as accessible.
func (p *Probe) ReputationFacts(ctx context.Context, domain string) (*verify.ReputationFacts, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	clean := CleanDomain(domain)

	var lastErr error
	for _, candidate := range []string{"https://" + clean, "http://" + clean} {
		resp, redirects, err := p.get(ctx, candidate)
		if err != nil {
			lastErr = err
			continue
		}
		facts := &verify.ReputationFacts{
			Accessible:      true,
			SSL:             strings.HasPrefix(candidate, "https://"),
			RedirectCount:   redirects,
			SecurityHeaders: countSecurityHeaders(resp.Header),
		}
		resp.Body.Close()
		return facts, nil
	}
	return nil, fmt.Errorf("site unreachable: %w", lastErr)
}

// SiteFacts fetches and parses the company page. A reachable site that
// answers something other than 200 yields inaccessible facts, not an error.
func (p *Probe) SiteFacts(ctx context.Context, domain string) (*verify.SiteFacts, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	clean := CleanDomain(domain)

	var lastErr error
	for _, candidate := range []string{"https://" + clean, "http://" + clean} {
		resp, _, err := p.get(ctx, candidate)
		if err != nil {
			lastErr = err
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return &verify.SiteFacts{}, nil
		}

		facts, err := parsePageFacts(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("parse company page: %w", err)
		}
		facts.Accessible = true
		facts.SSL = strings.HasPrefix(candidate, "https://")
		facts.CareersPage = p.hasCareersPage(ctx, candidate)
		return facts, nil
	}
	return nil, fmt.Errorf("site unreachable: %w", lastErr)
}

// hasCareersPage probes the common careers paths until one answers 200.
func (p *Probe) hasCareersPage(ctx context.Context, base string) bool {
	for _, path := range careersPaths {
		if err := p.limiter.Wait(ctx); err != nil {
			return false
		}
		resp, _, err := p.get(ctx, base+path)
		if err != nil {
			continue
		}
		status := resp.StatusCode
		resp.Body.Close()
		if status == http.StatusOK {
			return true
		}
	}
	return false
}

// get issues one GET with the probe's user agent and reports how many
// redirects were followed.
func (p *Probe) get(ctx context.Context, rawURL string) (*http.Response, int, error) {
	redirects := 0
	client := *p.client
	client.CheckRedirect = func(_ *http.Request, via []*http.Request) error {
		redirects = len(via)
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", p.config.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, redirects, err
	}
	return resp, redirects, nil
}

func countSecurityHeaders(headers http.Header) int {
	count := 0
	for _, name := range securityHeaderNames {
		if headers.Get(name) != "" {
			count++
		}
	}
	return count
}

// CleanDomain strips the scheme, a leading www prefix, and any path from a
// user-supplied domain, keeping host and port.
func CleanDomain(raw string) string {
	domain := strings.TrimSpace(raw)
	if strings.HasPrefix(domain, "http://") || strings.HasPrefix(domain, "https://") {
		if parsed, err := url.Parse(domain); err == nil && parsed.Host != "" {
			domain = parsed.Host
		}
	}
	if i := strings.IndexByte(domain, '/'); i >= 0 {
		domain = domain[:i]
	}
	return strings.TrimPrefix(domain, "www.")
}
