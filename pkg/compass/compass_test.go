package compass_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plmio/go-3dx-api-types/access"
	"github.com/plmio/go-3dx-api-types/platform"
	"github.com/plmio/go-3dx/pkg/compass"
	"github.com/plmio/go-3dx/pkg/passport"
	"github.com/plmio/go-3dx/pkg/utils/try"
)

func loggedInPassport(t *testing.T) *passport.Passport {
	t.Helper()

	idp := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(idp.Close)

	pp := try.To(passport.New(passport.WithBaseURL(idp.URL))).OrFatal(t)
	try.To(pp.Login(context.Background(), "alice", "s3cret", false, passport.RedirectNone{})).OrFatal(t)
	return pp
}

func TestResolveRegistry(t *testing.T) {
	t.Run("it queries the platform endpoint with the integrity header", func(t *testing.T) {
		expected := platform.Collection{
			Platforms: []platform.Services{
				{
					Id: "ACME",
					Services: []platform.Service{
						{Name: "3DSpace", Url: "https://space.example/enovia"},
						{Name: "3DSwym", Url: "https://swym.example"},
					},
				},
			},
		}

		var request *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			w.Header().Add("Content-Type", "application/json")
			w.Write([]byte(`{
				"platforms": [
					{
						"id": "ACME",
						"services": [
							{"name": "3DSpace", "url": "https://space.example/enovia"},
							{"name": "3DSwym", "url": "https://swym.example"}
						]
					}
				]
			}`))
		}))
		defer server.Close()

		testee := try.To(compass.NewResolver(
			loggedInPassport(t), compass.WithBaseURL(server.URL),
		)).OrFatal(t)

		actual := try.To(testee.ResolveRegistry(context.Background(), "ACME")).OrFatal(t)

		if !actual.Equal(expected) {
			t.Errorf("registry is not equal (actual, expected): %+v, %+v", actual, expected)
		}

		if request.URL.Path != "/resources/AppsMngt/api/v1/public/services/platform" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
		if got := request.URL.Query().Get("platform"); got != "ACME" {
			t.Errorf("platform query: got %q, want ACME", got)
		}
		if got := request.Header.Get(compass.HeaderPlatformHash); got != compass.PlatformHash("ACME") {
			t.Errorf("integrity header: got %q, want %q", got, compass.PlatformHash("ACME"))
		}
	})

	t.Run("the integrity header is a lowercase hex sha256 digest", func(t *testing.T) {
		h := compass.PlatformHash("ACME")

		if len(h) != hex.EncodedLen(sha256.Size) {
			t.Errorf("digest length: got %d", len(h))
		}
		for _, c := range h {
			if ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') {
				continue
			}
			t.Errorf("digest is not lowercase hex: %s", h)
			break
		}

		if compass.PlatformHash("acme") == h {
			t.Error("digest should depend on the platform id case")
		}
	})

	t.Run("a non-success status is a registry-resolution failure naming the tenant", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Content-Type", "application/json")
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message": "hash mismatch"}`))
		}))
		defer server.Close()

		testee := try.To(compass.NewResolver(
			loggedInPassport(t), compass.WithBaseURL(server.URL),
		)).OrFatal(t)

		_, err := testee.ResolveRegistry(context.Background(), "ACME")
		if !errors.Is(err, compass.ErrRegistryResolution) {
			t.Fatalf("error should be ErrRegistryResolution (actual = %v)", err)
		}
	})

	t.Run("without a login, it fails before any network call", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request should be issued")
		}))
		defer server.Close()

		pp := try.To(passport.New()).OrFatal(t)
		testee := try.To(compass.NewResolver(pp, compass.WithBaseURL(server.URL))).OrFatal(t)

		_, err := testee.ResolveRegistry(context.Background(), "ACME")
		if !errors.Is(err, passport.ErrNotAuthenticated) {
			t.Fatalf("error should be ErrNotAuthenticated (actual = %v)", err)
		}
	})
}

func TestFetchUserAccess(t *testing.T) {
	t.Run("it pulls the self descriptor", func(t *testing.T) {
		expected := access.UserAccess{
			Id:        "alice",
			Email:     "alice@example.com",
			Platforms: []access.PlatformAccess{{Id: "ACME", Active: true}},
		}

		var request *http.Request
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			request = r
			w.Header().Add("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": "alice",
				"email": "alice@example.com",
				"platforms": [{"id": "ACME", "active": true}]
			}`))
		}))
		defer server.Close()

		testee := try.To(compass.NewResolver(
			loggedInPassport(t), compass.WithBaseURL(server.URL),
		)).OrFatal(t)

		actual := try.To(testee.FetchUserAccess(context.Background())).OrFatal(t)

		if !actual.Equal(expected) {
			t.Errorf("user access is not equal (actual, expected): %+v, %+v", actual, expected)
		}
		if request.URL.Path != "/resources/AppsMngt/api/pull/self" {
			t.Errorf("unexpected path: %s", request.URL.Path)
		}
	})

	t.Run("a non-success status is an access-info failure", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		testee := try.To(compass.NewResolver(
			loggedInPassport(t), compass.WithBaseURL(server.URL),
		)).OrFatal(t)

		_, err := testee.FetchUserAccess(context.Background())
		if !errors.Is(err, compass.ErrAccessInfo) {
			t.Fatalf("error should be ErrAccessInfo (actual = %v)", err)
		}
	})
}
