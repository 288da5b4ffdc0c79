// Package passport performs the CAS-style cookie login against the
// 3DPassport identity provider and owns the resulting authenticated
// http.Client.
package passport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/plmio/go-3dx/pkg/errs"
	"github.com/plmio/go-3dx/pkg/rest"
)

// DefaultBaseURL is the cloud identity provider. On-premises deployments
// override it with WithBaseURL.
const DefaultBaseURL = "https://eu1.iam.3dexperience.3ds.com/3DPassport"

var (
	// ErrNotAuthenticated is returned when an operation requiring a
	// cookie-authenticated session is invoked before a successful Login.
	ErrNotAuthenticated = errors.New("not authenticated: login first")

	// ErrLoginFailed is returned when the identity provider rejects the
	// login exchange.
	ErrLoginFailed = errors.New("login failed")
)

type config struct {
	base   string
	rest   []rest.Option
	logger zerolog.Logger
}

type Option func(*config) *config

func WithBaseURL(base string) Option {
	return func(c *config) *config {
		c.base = base
		return c
	}
}

// WithRestOptions forwards options (CA trust, timeout) to the underlying
// http client.
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

// Passport is the authentication handle: it owns the cookie jar written by
// the CAS exchange and authenticates every subsequent platform call made
// through HTTPClient.
type Passport struct {
	base       string
	httpclient *http.Client
	cookieAuth bool
	logger     zerolog.Logger
}

func New(options ...Option) (*Passport, error) {
	conf := &config{
		base:   DefaultBaseURL,
		logger: zerolog.Nop(),
	}
	for _, o := range options {
		conf = o(conf)
	}

	if u, err := url.Parse(conf.base); err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("passport base URL is not absolute: %s", conf.base)
	}

	httpclient, err := rest.NewHTTPClient(conf.rest...)
	if err != nil {
		return nil, err
	}

	return &Passport{
		base:       strings.TrimSuffix(conf.base, "/"),
		httpclient: httpclient,
		logger:     conf.logger,
	}, nil
}

// Login performs the CAS exchange: a single blocking round trip, no retry.
//
// The returned payload is the body of the post-login redirection target
// (shape depends on redirect); for RedirectNone it is the raw CAS result.
// On non-success status the provider response is attached to the error for
// diagnostics.
func (p *Passport) Login(
	ctx context.Context, username, password string, rememberMe bool, redirect Redirect,
) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)
	form.Set("rememberMe", strconv.FormatBool(rememberMe))

	loginURL := rest.JoinURL(p.base, "login")
	if redirect == nil {
		redirect = RedirectNone{}
	}
	if service := redirect.serviceURL(); service != "" {
		loginURL += "?service=" + url.QueryEscape(service)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, loginURL, strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpclient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload := json.RawMessage{}
	if err := rest.UnmarshalJSONResponse(
		resp, &payload,
		rest.MessageFor{
			rest.Status4xx: fmt.Sprintf("%s: rejected by identity provider (status code = %d)", ErrLoginFailed, resp.StatusCode),
			rest.Status5xx: fmt.Sprintf("%s: identity provider error (status code = %d)", ErrLoginFailed, resp.StatusCode),
		},
	); err != nil {
		p.cookieAuth = false
		return nil, errs.Wrapf(errors.Join(ErrLoginFailed, err), "login as %s", username)
	}

	p.cookieAuth = true
	p.logger.Debug().Str("user", username).Msg("passport login succeeded")
	return payload, nil
}

// CookieAuthenticated reports whether a Login has succeeded on this handle.
func (p *Passport) CookieAuthenticated() bool {
	return p.cookieAuth
}

// HTTPClient exposes the cookie-bearing client for collaborators issuing
// authenticated calls. The jar is shared, never copied.
func (p *Passport) HTTPClient() *http.Client {
	return p.httpclient
}

// BaseURL is the identity provider root this handle logs in against.
func (p *Passport) BaseURL() string {
	return p.base
}
