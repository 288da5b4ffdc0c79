package access

import (
	"github.com/plmio/go-3dx-api-types/internal/utils/cmp"
)

// PlatformAccess is one platform (tenant) the user is entitled to.
//
// Snapshots are immutable; a refresh replaces the whole UserAccess
// aggregate, entries are never patched in place.
type PlatformAccess struct {
	Id          string `json:"id"`
	DisplayName string `json:"displayName,omitempty"`
	Kind        string `json:"kind,omitempty"`
	Role        string `json:"role,omitempty"`
	Agreement   string `json:"agreement,omitempty"`
	Location    string `json:"location,omitempty"`
	Active      bool   `json:"active"`
	Public      bool   `json:"public"`
}

func (a PlatformAccess) Equal(b PlatformAccess) bool {
	return a == b
}

// UserAccess is the payload of the access-info endpoint
// (GET {compass}/resources/AppsMngt/api/pull/self).
type UserAccess struct {
	Id               string           `json:"id"`
	Uuid             string           `json:"uuid,omitempty"`
	FirstName        string           `json:"firstname,omitempty"`
	LastName         string           `json:"lastname,omitempty"`
	Email            string           `json:"email,omitempty"`
	ShowCoachmark    bool             `json:"showCoachmark,omitempty"`
	Platforms        []PlatformAccess `json:"platforms"`
	Admin            bool             `json:"admin,omitempty"`
	RemovedPlatforms []PlatformAccess `json:"removedPlatforms,omitempty"`
}

func (a UserAccess) Equal(b UserAccess) bool {
	return a.Id == b.Id &&
		a.Uuid == b.Uuid &&
		a.FirstName == b.FirstName &&
		a.LastName == b.LastName &&
		a.Email == b.Email &&
		a.ShowCoachmark == b.ShowCoachmark &&
		a.Admin == b.Admin &&
		cmp.SliceEqualUnordered(a.Platforms, b.Platforms) &&
		cmp.SliceEqualUnordered(a.RemovedPlatforms, b.RemovedPlatforms)
}
