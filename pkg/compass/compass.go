// Package compass resolves the platform service registry: which backend
// service URLs a tenant is provisioned with, and which platforms the
// logged-in user can access.
package compass

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/plmio/go-3dx-api-types/access"
	"github.com/plmio/go-3dx-api-types/platform"
	"github.com/plmio/go-3dx/pkg/errs"
	"github.com/plmio/go-3dx/pkg/passport"
	"github.com/plmio/go-3dx/pkg/rest"
)

// DefaultBaseURL is the cloud directory ("3DCompass") service.
const DefaultBaseURL = "https://eu1.apps.3dexperience.3ds.com/enovia"

const (
	// HeaderPlatformHash carries the integrity digest the registry
	// endpoint requires. Not a secret: it is derivable from the platform
	// id and a public prefix, an API precondition rather than a security
	// boundary.
	HeaderPlatformHash = "X-3DCompass-Hash"

	hashPrefix = "x3dcompass/platform/"

	registryPath  = "resources/AppsMngt/api/v1/public/services/platform"
	selfPullPath  = "resources/AppsMngt/api/pull/self"
	queryPlatform = "platform"
)

var (
	// ErrRegistryResolution is returned when the tenant services lookup
	// responds with a non-success status.
	ErrRegistryResolution = errors.New("cannot resolve platform services")

	// ErrAccessInfo is returned when the access-info fetch fails.
	ErrAccessInfo = errors.New("cannot fetch user access info")
)

// PlatformHash digests the platform id for the integrity header:
// lowercase hex of sha256(prefix + platformId).
func PlatformHash(platformId string) string {
	sum := sha256.Sum256([]byte(hashPrefix + platformId))
	return hex.EncodeToString(sum[:])
}

type config struct {
	base   string
	logger zerolog.Logger
}

type Option func(*config) *config

func WithBaseURL(base string) Option {
	return func(c *config) *config {
		c.base = base
		return c
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) *config {
		c.logger = logger
		return c
	}
}

// Resolver queries the directory service with the passport's cookie jar.
type Resolver struct {
	base     string
	passport *passport.Passport
	logger   zerolog.Logger
}

func NewResolver(pp *passport.Passport, options ...Option) (*Resolver, error) {
	conf := &config{
		base:   DefaultBaseURL,
		logger: zerolog.Nop(),
	}
	for _, o := range options {
		conf = o(conf)
	}

	if u, err := url.Parse(conf.base); err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("compass base URL is not absolute: %s", conf.base)
	}

	return &Resolver{
		base:     strings.TrimSuffix(conf.base, "/"),
		passport: pp,
		logger:   conf.logger,
	}, nil
}

// SelfPullURL is the access-info URL, also used as the post-login
// redirection target in the cloud deployment.
func (r *Resolver) SelfPullURL() string {
	return rest.JoinURL(r.base, selfPullPath)
}

// ResolveRegistry fetches the full service registry for one platform.
func (r *Resolver) ResolveRegistry(ctx context.Context, platformId string) (platform.Collection, error) {
	collection := platform.Collection{}

	if !r.passport.CookieAuthenticated() {
		return collection, passport.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, rest.JoinURL(r.base, registryPath), nil,
	)
	if err != nil {
		return collection, err
	}
	q := req.URL.Query()
	q.Add(queryPlatform, platformId)
	req.URL.RawQuery = q.Encode()
	req.Header.Add(HeaderPlatformHash, PlatformHash(platformId))

	resp, err := r.passport.HTTPClient().Do(req)
	if err != nil {
		return collection, err
	}
	defer resp.Body.Close()

	if err := rest.UnmarshalJSONResponse(
		resp, &collection,
		rest.MessageFor{
			rest.Status4xx: fmt.Sprintf("%s: %s: rejected by directory service (status code = %d)", ErrRegistryResolution, platformId, resp.StatusCode),
			rest.Status5xx: fmt.Sprintf("%s: %s: directory service error (status code = %d)", ErrRegistryResolution, platformId, resp.StatusCode),
		},
	); err != nil {
		return collection, errs.Wrapf(
			errors.Join(ErrRegistryResolution, err), "platform %s", platformId,
		)
	}

	r.logger.Debug().
		Str("platform", platformId).
		Int("platforms", len(collection.Platforms)).
		Msg("resolved service registry")
	return collection, nil
}

// FetchUserAccess fetches the caller's platform entitlements.
func (r *Resolver) FetchUserAccess(ctx context.Context) (access.UserAccess, error) {
	ua := access.UserAccess{}

	if !r.passport.CookieAuthenticated() {
		return ua, passport.ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, r.SelfPullURL(), nil,
	)
	if err != nil {
		return ua, err
	}

	resp, err := r.passport.HTTPClient().Do(req)
	if err != nil {
		return ua, err
	}
	defer resp.Body.Close()

	if err := rest.UnmarshalJSONResponse(
		resp, &ua,
		rest.MessageFor{
			rest.Status4xx: fmt.Sprintf("%s: rejected by directory service (status code = %d)", ErrAccessInfo, resp.StatusCode),
			rest.Status5xx: fmt.Sprintf("%s: directory service error (status code = %d)", ErrAccessInfo, resp.StatusCode),
		},
	); err != nil {
		return ua, errors.Join(ErrAccessInfo, err)
	}

	r.logger.Debug().
		Str("user", ua.Id).
		Int("platforms", len(ua.Platforms)).
		Msg("fetched user access info")
	return ua, nil
}
