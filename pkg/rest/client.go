// Package rest carries the HTTP plumbing shared by every web service
// wrapper: client construction, URL building and typed response decoding.
package rest

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

type config struct {
	cacerts []string
	timeout time.Duration
}

type Option func(*config) *config

// WithCACert trusts an extra CA certificate, given as base64-encoded PEM.
func WithCACert(b64pem string) Option {
	return func(c *config) *config {
		c.cacerts = append(c.cacerts, b64pem)
		return c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *config) *config {
		c.timeout = d
		return c
	}
}

// NewHTTPClient builds the http.Client used for all platform calls.
//
// The client owns a fresh cookie jar; the CAS login writes the session
// cookies into it and every later call is authenticated by them.
func NewHTTPClient(options ...Option) (*http.Client, error) {
	conf := &config{timeout: 30 * time.Second}
	for _, o := range options {
		conf = o(conf)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	httpclient := &http.Client{
		Jar:     jar,
		Timeout: conf.timeout,
	}

	if len(conf.cacerts) != 0 {
		if err := trustCa(httpclient, conf.cacerts); err != nil {
			return nil, err
		}
	}

	return httpclient, nil
}

// JoinURL joins path elements onto a base URL, normalizing slashes.
func JoinURL(base string, path ...string) string {
	elems := make([]string, 0, len(path)+1)
	elems = append(elems, strings.TrimSuffix(base, "/"))
	for _, p := range path {
		elems = append(elems, strings.TrimPrefix(strings.TrimSuffix(p, "/"), "/"))
	}
	return strings.Join(elems, "/")
}

func trustCa(hc *http.Client, cacerts []string) error {
	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig
	if tcc == nil {
		tcc = &tls.Config{}
	} else {
		tcc = tcc.Clone()
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return err
		}

		if !rootcas.AppendCertsFromPEM(bin) {
			return fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return nil
}
