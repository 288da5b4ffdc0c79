package mock

import (
	"context"
	"testing"

	"github.com/plmio/go-3dx-api-types/person"

	"github.com/plmio/go-3dx/cmd/dx/client"
)

type LoginArgs struct {
	Username   string
	RememberMe bool
}

type ServiceURLArgs struct {
	ServiceName string
	UseCache    bool
}

func New(t *testing.T) *mockClient {
	return &mockClient{t: t, tenant: "ACME"}
}

type mockClient struct {
	t      *testing.T
	tenant string

	Impl struct {
		Login           func(ctx context.Context, username, password string, rememberMe bool) error
		UserInfo        func(ctx context.Context, useCache bool) (person.UserInfo, error)
		ServiceURL      func(ctx context.Context, serviceName string, useCache bool) (string, error)
		SpaceURL        func(ctx context.Context) (string, error)
		SecurityContext func(ctx context.Context) (string, error)
	}
	Calls struct {
		Login           []LoginArgs
		UserInfo        []bool
		ServiceURL      []ServiceURLArgs
		SpaceURL        int
		SecurityContext int
	}
}

var _ client.Client = &mockClient{}

func (m *mockClient) SetTenant(tenant string) {
	m.tenant = tenant
}

func (m *mockClient) Login(ctx context.Context, username, password string, rememberMe bool) error {
	m.t.Helper()

	m.Calls.Login = append(m.Calls.Login, LoginArgs{Username: username, RememberMe: rememberMe})
	if m.Impl.Login == nil {
		m.t.Fatal("Login is not ready to be called")
	}
	return m.Impl.Login(ctx, username, password, rememberMe)
}

func (m *mockClient) UserInfo(ctx context.Context, useCache bool) (person.UserInfo, error) {
	m.t.Helper()

	m.Calls.UserInfo = append(m.Calls.UserInfo, useCache)
	if m.Impl.UserInfo == nil {
		m.t.Fatal("UserInfo is not ready to be called")
	}
	return m.Impl.UserInfo(ctx, useCache)
}

func (m *mockClient) ServiceURL(ctx context.Context, serviceName string, useCache bool) (string, error) {
	m.t.Helper()

	m.Calls.ServiceURL = append(
		m.Calls.ServiceURL,
		ServiceURLArgs{ServiceName: serviceName, UseCache: useCache},
	)
	if m.Impl.ServiceURL == nil {
		m.t.Fatal("ServiceURL is not ready to be called")
	}
	return m.Impl.ServiceURL(ctx, serviceName, useCache)
}

func (m *mockClient) SpaceURL(ctx context.Context) (string, error) {
	m.t.Helper()

	m.Calls.SpaceURL += 1
	if m.Impl.SpaceURL == nil {
		m.t.Fatal("SpaceURL is not ready to be called")
	}
	return m.Impl.SpaceURL(ctx)
}

func (m *mockClient) SecurityContext(ctx context.Context) (string, error) {
	m.t.Helper()

	m.Calls.SecurityContext += 1
	if m.Impl.SecurityContext == nil {
		m.t.Fatal("SecurityContext is not ready to be called")
	}
	return m.Impl.SecurityContext(ctx)
}

func (m *mockClient) Tenant() string {
	return m.tenant
}
