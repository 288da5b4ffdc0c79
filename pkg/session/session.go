// Package session composes passport login, registry resolution and profile
// fetch into one platform session. A Session is safe for concurrent use:
// cache refreshes are deduplicated so one fetch serves simultaneous misses.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/plmio/go-3dx-api-types/access"
	"github.com/plmio/go-3dx-api-types/person"
	"github.com/plmio/go-3dx-api-types/platform"
	"github.com/plmio/go-3dx/pkg/compass"
	"github.com/plmio/go-3dx/pkg/passport"
	"github.com/plmio/go-3dx/pkg/rest"
)

// SpaceServiceName is the logical name of the collaborative-space backend
// in the service registry.
const SpaceServiceName = "3DSpace"

const personPath = "resources/modeler/pno/person"

// field list requested from the person service, fixed by contract.
var personSelects = []string{
	"firstname", "lastname", "email", "address", "phone",
	"isactive", "company", "collabspaces", "preferredcredentials",
}

var (
	// ErrNoPlatformAccess is returned when the logged-in user has no
	// entitlement for the requested platform.
	ErrNoPlatformAccess = errors.New("no access to platform")

	// ErrNoServiceDescriptor is returned when the registry has no entry
	// for the platform.
	ErrNoServiceDescriptor = errors.New("no services descriptor for platform")

	// ErrServiceNotFound is returned when the platform's descriptor does
	// not offer a service with the requested name.
	ErrServiceNotFound = errors.New("service not found on platform")

	// ErrProfileFetch is returned when the person service call fails.
	ErrProfileFetch = errors.New("cannot fetch user profile")
)

const (
	sfKeyAccess   = "access"
	sfKeyRegistry = "registry"
	sfKeyProfile  = "profile"
)

type config struct {
	passportURL string
	compassURL  string
	rest        []rest.Option
	logger      zerolog.Logger
}

type Option func(*config) *config

func WithPassportURL(u string) Option {
	return func(c *config) *config {
		c.passportURL = u
		return c
	}
}

func WithCompassURL(u string) Option {
	return func(c *config) *config {
		c.compassURL = u
		return c
	}
}

// WithRestOptions forwards options (CA trust, timeout) to the HTTP client
// shared by all calls of this session.
func WithRestOptions(options ...rest.Option) Option {
	return func(c *config) *config {
		c.rest = append(c.rest, options...)
		return c
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) *config {
		c.logger = logger
		return c
	}
}

// Session is the outward-facing handle for one user on one tenant.
//
// Cached snapshots (user access, service registry, profile) live for the
// session; useCache=false on the accessors is the explicit refresh path.
type Session struct {
	tenant   string
	passport *passport.Passport
	resolver *compass.Resolver
	logger   zerolog.Logger

	mu       sync.Mutex
	access   *access.UserAccess
	registry *platform.Collection
	profile  *person.UserInfo

	flight singleflight.Group
}

// New builds a Session for the given tenant. The tenant is fixed for the
// session's lifetime.
func New(tenant string, options ...Option) (*Session, error) {
	if tenant == "" {
		return nil, fmt.Errorf("tenant must not be empty")
	}

	conf := &config{
		passportURL: passport.DefaultBaseURL,
		compassURL:  compass.DefaultBaseURL,
		logger:      zerolog.Nop(),
	}
	for _, o := range options {
		conf = o(conf)
	}

	logger := conf.logger.With().Str("tenant", tenant).Logger()

	pp, err := passport.New(
		passport.WithBaseURL(conf.passportURL),
		passport.WithRestOptions(conf.rest...),
		passport.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	resolver, err := compass.NewResolver(
		pp,
		compass.WithBaseURL(conf.compassURL),
		compass.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &Session{
		tenant:   tenant,
		passport: pp,
		resolver: resolver,
		logger:   logger,
	}, nil
}

// Login authenticates against 3DPassport with a compass self-pull
// redirection, so the access snapshot arrives with the login response and
// is cached immediately.
func (s *Session) Login(ctx context.Context, username, password string, rememberMe bool) error {
	payload, err := s.passport.Login(
		ctx, username, password, rememberMe,
		passport.RedirectCompass{SelfPullURL: s.resolver.SelfPullURL()},
	)
	if err != nil {
		return err
	}

	ua := access.UserAccess{}
	if err := json.Unmarshal(payload, &ua); err != nil {
		return errors.Join(compass.ErrAccessInfo, err)
	}

	s.mu.Lock()
	s.access = &ua
	s.registry = nil
	s.profile = nil
	s.mu.Unlock()

	s.logger.Debug().Str("user", ua.Id).Msg("session established")
	return nil
}

// UserAccess returns the cached entitlement snapshot, fetching it fresh
// when useCache is false.
func (s *Session) UserAccess(ctx context.Context, useCache bool) (access.UserAccess, error) {
	if !s.passport.CookieAuthenticated() {
		return access.UserAccess{}, passport.ErrNotAuthenticated
	}
	return s.userAccess(ctx, useCache)
}

func (s *Session) userAccess(ctx context.Context, useCache bool) (access.UserAccess, error) {
	if useCache {
		s.mu.Lock()
		cached := s.access
		s.mu.Unlock()
		if cached != nil {
			return *cached, nil
		}

		// cache requested but never populated: Login did not happen on
		// this handle.
		return access.UserAccess{}, passport.ErrNotAuthenticated
	}

	v, err, _ := s.flight.Do(sfKeyAccess, func() (any, error) {
		ua, err := s.resolver.FetchUserAccess(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.access = &ua
		s.mu.Unlock()
		return ua, nil
	})
	if err != nil {
		return access.UserAccess{}, err
	}
	return v.(access.UserAccess), nil
}

func (s *Session) serviceRegistry(ctx context.Context, useCache bool) (platform.Collection, error) {
	if useCache {
		s.mu.Lock()
		cached := s.registry
		s.mu.Unlock()
		if cached != nil {
			return *cached, nil
		}
	}

	v, err, _ := s.flight.Do(sfKeyRegistry, func() (any, error) {
		col, err := s.resolver.ResolveRegistry(ctx, s.tenant)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.registry = &col
		s.mu.Unlock()
		return col, nil
	})
	if err != nil {
		return platform.Collection{}, err
	}
	return v.(platform.Collection), nil
}

// ServiceURL resolves the URL of a named service on the session's tenant.
//
// The access-list check matches the tenant case-insensitively while the
// registry descriptor must match exactly; the service name matches
// case-insensitively. The asymmetry mirrors the platform's behavior and is
// pinned by tests.
func (s *Session) ServiceURL(ctx context.Context, serviceName string, useCache bool) (string, error) {
	if !s.passport.CookieAuthenticated() {
		return "", passport.ErrNotAuthenticated
	}

	ua, err := s.userAccess(ctx, useCache)
	if err != nil {
		return "", err
	}

	granted := false
	for _, p := range ua.Platforms {
		if strings.EqualFold(p.Id, s.tenant) {
			granted = true
			break
		}
	}
	if !granted {
		return "", fmt.Errorf("%w: %s", ErrNoPlatformAccess, s.tenant)
	}

	registry, err := s.serviceRegistry(ctx, useCache)
	if err != nil {
		return "", err
	}

	var descriptor *platform.Services
	for i, p := range registry.Platforms {
		if p.Id == s.tenant {
			descriptor = &registry.Platforms[i]
			break
		}
	}
	if descriptor == nil {
		return "", fmt.Errorf("%w: %s", ErrNoServiceDescriptor, s.tenant)
	}

	for _, svc := range descriptor.Services {
		if strings.EqualFold(svc.Name, serviceName) {
			s.logger.Debug().
				Str("service", serviceName).
				Str("url", svc.Url).
				Msg("resolved service url")
			return svc.Url, nil
		}
	}

	return "", fmt.Errorf("%w: %s on %s", ErrServiceNotFound, serviceName, s.tenant)
}

// SpaceURL resolves the tenant's 3DSpace backend URL (cached).
func (s *Session) SpaceURL(ctx context.Context) (string, error) {
	return s.ServiceURL(ctx, SpaceServiceName, true)
}

// UserInfo fetches the logged-in user's profile from the tenant's 3DSpace
// person service, caching the snapshot for the session.
func (s *Session) UserInfo(ctx context.Context, useCache bool) (person.UserInfo, error) {
	if !s.passport.CookieAuthenticated() {
		return person.UserInfo{}, passport.ErrNotAuthenticated
	}

	if useCache {
		s.mu.Lock()
		cached := s.profile
		s.mu.Unlock()
		if cached != nil {
			return *cached, nil
		}
	}

	v, err, _ := s.flight.Do(sfKeyProfile, func() (any, error) {
		info, err := s.fetchUserInfo(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.profile = &info
		s.mu.Unlock()
		return info, nil
	})
	if err != nil {
		return person.UserInfo{}, err
	}
	return v.(person.UserInfo), nil
}

func (s *Session) fetchUserInfo(ctx context.Context) (person.UserInfo, error) {
	info := person.UserInfo{}

	spaceURL, err := s.SpaceURL(ctx)
	if err != nil {
		return info, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, rest.JoinURL(spaceURL, personPath), nil,
	)
	if err != nil {
		return info, err
	}
	q := req.URL.Query()
	q.Add("current", "true")
	q.Add("tenant", s.tenant)
	for _, sel := range personSelects {
		q.Add("select", sel)
	}
	req.URL.RawQuery = q.Encode()

	resp, err := s.passport.HTTPClient().Do(req)
	if err != nil {
		return info, err
	}
	defer resp.Body.Close()

	if err := rest.UnmarshalJSONResponse(
		resp, &info,
		rest.MessageFor{
			rest.Status4xx: fmt.Sprintf("%s: rejected by person service (status code = %d)", ErrProfileFetch, resp.StatusCode),
			rest.Status5xx: fmt.Sprintf("%s: person service error (status code = %d)", ErrProfileFetch, resp.StatusCode),
		},
	); err != nil {
		return info, errors.Join(ErrProfileFetch, err)
	}

	return info, nil
}

// SecurityContext renders the user's preferred credentials in the form the
// resource services expect.
func (s *Session) SecurityContext(ctx context.Context) (string, error) {
	info, err := s.UserInfo(ctx, true)
	if err != nil {
		return "", err
	}
	return info.PreferredCredentials.SecurityContext(), nil
}

// Tenant is the platform id this session was built for.
func (s *Session) Tenant() string {
	return s.tenant
}

// Passport exposes the authentication handle for downstream resource
// services.
func (s *Session) Passport() *passport.Passport {
	return s.passport
}

// HTTPClient is the cookie-authenticated client shared by all calls of
// this session.
func (s *Session) HTTPClient() *http.Client {
	return s.passport.HTTPClient()
}
