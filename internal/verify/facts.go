package verify

import (
	"context"
	"sync"
)

// DomainFacts holds registration facts for one domain. AgeDays is zero when
// the registration record carries no usable creation date; ResolvedOnly marks
// domains confirmed only by name resolution, with no registration record.
type DomainFacts struct {
	Domain       string
	Registered   bool
	AgeDays      int
	Registrar    string
	ResolvedOnly bool
}

// ReputationFacts holds transport-level facts about a domain's website.
// SecurityHeaders counts how many of the four standard hardening headers
// (HSTS, CSP, X-Frame-Options, X-Content-Type-Options) the site sends.
type ReputationFacts struct {
	Accessible      bool
	SSL             bool
	RedirectCount   int
	SecurityHeaders int
}

// SiteFacts holds content-level facts about a company website.
type SiteFacts struct {
	Accessible         bool
	SSL                bool
	ProfessionalDesign bool
	ContactInfo        bool
	CareersPage        bool
	ContentQuality     float64
	SuspiciousKeywords []string
}

// FactsProvider supplies the externally observable facts the check batteries
// consume. Implementations must honor the context deadline; a lookup error
// settles the consuming check as failed rather than aborting the battery.
type FactsProvider interface {
	DomainFacts(ctx context.Context, domain string) (*DomainFacts, error)
	ReputationFacts(ctx context.Context, domain string) (*ReputationFacts, error)
	SiteFacts(ctx context.Context, domain string) (*SiteFacts, error)
}

// StaticProvider is a deterministic FactsProvider backed by in-memory
// fixtures. Domains without a fixture settle to neutral facts instead of
// errors, so the batteries keep producing scores with outbound probing
// disabled. It is safe for concurrent use.
type StaticProvider struct {
	mu          sync.RWMutex
	domainFacts map[string]DomainFacts
	domainErrs  map[string]error
	repFacts    map[string]ReputationFacts
	repErrs     map[string]error
	siteFacts   map[string]SiteFacts
	siteErrs    map[string]error
}

// NewStaticProvider returns an empty provider serving neutral defaults.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		domainFacts: make(map[string]DomainFacts),
		domainErrs:  make(map[string]error),
		repFacts:    make(map[string]ReputationFacts),
		repErrs:     make(map[string]error),
		siteFacts:   make(map[string]SiteFacts),
		siteErrs:    make(map[string]error),
	}
}

// SetDomainFacts fixes the registration facts returned for domain.
func (p *StaticProvider) SetDomainFacts(domain string, facts DomainFacts) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.domainFacts[domain] = facts
}

// FailDomainFacts makes registration lookups for domain return err.
func (p *StaticProvider) FailDomainFacts(domain string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.domainErrs[domain] = err
}

// SetReputationFacts fixes the reputation facts returned for domain.
func (p *StaticProvider) SetReputationFacts(domain string, facts ReputationFacts) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.repFacts[domain] = facts
}

// FailReputationFacts makes reputation lookups for domain return err.
func (p *StaticProvider) FailReputationFacts(domain string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.repErrs[domain] = err
}

// SetSiteFacts fixes the site facts returned for domain.
func (p *StaticProvider) SetSiteFacts(domain string, facts SiteFacts) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.siteFacts[domain] = facts
}

// FailSiteFacts makes site lookups for domain return err.
func (p *StaticProvider) FailSiteFacts(domain string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.siteErrs[domain] = err
}

// DomainFacts returns the fixture for domain, or a resolution-only record
// when none is set.
func (p *StaticProvider) DomainFacts(ctx context.Context, domain string) (*DomainFacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.domainErrs[domain]; err != nil {
		return nil, err
	}
	if facts, ok := p.domainFacts[domain]; ok {
		return &facts, nil
	}
	return &DomainFacts{Domain: domain, Registered: true, ResolvedOnly: true}, nil
}

// ReputationFacts returns the fixture for domain, or inaccessible-site
// facts when none is set.
func (p *StaticProvider) ReputationFacts(ctx context.Context, domain string) (*ReputationFacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.repErrs[domain]; err != nil {
		return nil, err
	}
	if facts, ok := p.repFacts[domain]; ok {
		return &facts, nil
	}
	return &ReputationFacts{}, nil
}

// SiteFacts returns the fixture for domain, or inaccessible-site facts
// when none is set.
func (p *StaticProvider) SiteFacts(ctx context.Context, domain string) (*SiteFacts, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if err := p.siteErrs[domain]; err != nil {
		return nil, err
	}
	if facts, ok := p.siteFacts[domain]; ok {
		return &facts, nil
	}
	return &SiteFacts{}, nil
}
