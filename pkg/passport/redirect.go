package passport

import "net/url"

// Redirect tells 3DPassport which backend resource to pull once the CAS
// exchange succeeds. The response payload of Login is whatever that
// resource serves.
//
// This is a closed set: deployments differ only in which of the variants
// below they use, selected at construction time.
type Redirect interface {
	// service query value appended to the login request; empty means no
	// redirection.
	serviceURL() string
}

// RedirectNone performs a bare login. The login response payload carries
// only the CAS transaction result.
type RedirectNone struct{}

func (RedirectNone) serviceURL() string { return "" }

// RedirectCompass pulls the caller's access descriptor from the platform
// directory service right after login. The payload is a UserAccess
// document.
type RedirectCompass struct {
	// access-info ("pull self") URL of the directory service.
	SelfPullURL string
}

func (r RedirectCompass) serviceURL() string { return r.SelfPullURL }

// RedirectService redirects to an arbitrary cookie-protected service
// resource, optionally scoped to a tenant.
type RedirectService struct {
	URL    string
	Tenant string
}

func (r RedirectService) serviceURL() string {
	if r.Tenant == "" {
		return r.URL
	}

	u, err := url.Parse(r.URL)
	if err != nil {
		return r.URL
	}
	q := u.Query()
	q.Set("tenant", r.Tenant)
	u.RawQuery = q.Encode()
	return u.String()
}
