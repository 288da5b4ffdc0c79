package profiles

import (
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/hectane/go-acl"
	yaml "gopkg.in/yaml.v3"
)

var ErrProfileStoreNotFound = errors.New("profile store file is not found")
var ErrCannotSaveProfileStore = errors.New("cannot save profile store file")
var ErrProfileInvalid = errors.New("dx profile is invalid")

// ProfileStore is a map from profile name to Profile.
type ProfileStore map[string]*Profile

type Cert struct {
	// base64 encoded CA certificate
	CA string `yaml:"ca,omitempty"`
}

// Profile identifies one platform tenant and how to reach it.
type Profile struct {
	// platform (tenant) id
	Tenant string `yaml:"tenant"`

	// login name used for the passport exchange
	User string `yaml:"user,omitempty"`

	// identity provider root; empty means the cloud default
	Passport string `yaml:"passport,omitempty"`

	// directory service root; empty means the cloud default
	Compass string `yaml:"compass,omitempty"`

	// cert is an extra CA certificate to trust
	Cert Cert `yaml:"cert,omitempty"`
}

func verifyUrl(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func verifyPEM(b64cert string) bool {
	bin, err := base64.StdEncoding.DecodeString(b64cert)
	if err != nil {
		return false
	}
	blk, _ := pem.Decode(bin)
	return blk != nil
}

// Verify Profile
//
// # Return
//
// nil if it is valid. Otherwise, ErrProfileInvalid error.
func (p *Profile) Verify() error {
	if p.Tenant == "" {
		return fmt.Errorf("%w: tenant is not set", ErrProfileInvalid)
	}
	if p.Passport != "" && !verifyUrl(p.Passport) {
		return fmt.Errorf("%w: passport is not URL: %s", ErrProfileInvalid, p.Passport)
	}
	if p.Compass != "" && !verifyUrl(p.Compass) {
		return fmt.Errorf("%w: compass is not URL: %s", ErrProfileInvalid, p.Compass)
	}
	if p.Cert.CA != "" && !verifyPEM(p.Cert.CA) {
		return fmt.Errorf("%w: cert.ca is not PEM", ErrProfileInvalid)
	}

	return nil
}

// LoadProfileStore loads profile store from file.
func LoadProfileStore(filepath string) (ProfileStore, error) {
	buf, err := os.ReadFile(filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrProfileStoreNotFound, filepath)
		}
		return nil, err
	}
	return Unmarshal(buf)
}

// Unmarshal profile store from yaml in byte array.
func Unmarshal(buf []byte) (ProfileStore, error) {
	ret := map[string]*Profile{}
	err := yaml.Unmarshal(buf, &ret)
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// Save writes the profile store, enforcing owner-only permissions.
//
// The store holds login coordinates, so it is written to a temporary file
// first and moved into place; a half-written store is never observable.
func (ps *ProfileStore) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.FileMode(0700)); err != nil {
		return err
	}

	buf, err := yaml.Marshal(ps)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".profile-*")
	if err != nil {
		return fmt.Errorf("%w: %s", ErrCannotSaveProfileStore, err)
	}
	tmpname := tmp.Name()
	defer os.Remove(tmpname)

	if _, err := tmp.Write(buf); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %s", ErrCannotSaveProfileStore, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %s", ErrCannotSaveProfileStore, err)
	}

	if err := acl.Chmod(tmpname, os.FileMode(0600)); err != nil {
		return fmt.Errorf("%w: %s", ErrCannotSaveProfileStore, err)
	}

	if err := os.Rename(tmpname, path); err != nil {
		return fmt.Errorf("%w: %s", ErrCannotSaveProfileStore, err)
	}

	return nil
}
