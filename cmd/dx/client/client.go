// Package client defines the platform session surface the dx subcommands
// depend on, so commands can be tested against a mock.
package client

import (
	"context"

	"github.com/plmio/go-3dx-api-types/person"
	"github.com/plmio/go-3dx/pkg/session"
)

type Client interface {
	// Login performs the passport exchange for this session's tenant.
	Login(ctx context.Context, username, password string, rememberMe bool) error

	// UserInfo returns the logged-in user's profile. useCache=false
	// forces a re-fetch.
	UserInfo(ctx context.Context, useCache bool) (person.UserInfo, error)

	// ServiceURL resolves a named service URL on the session's tenant.
	ServiceURL(ctx context.Context, serviceName string, useCache bool) (string, error)

	// SpaceURL resolves the tenant's 3DSpace URL.
	SpaceURL(ctx context.Context) (string, error)

	// SecurityContext returns the user's preferred credentials triple.
	SecurityContext(ctx context.Context) (string, error)

	// Tenant is the platform id the session is bound to.
	Tenant() string
}

var _ Client = &session.Session{}
