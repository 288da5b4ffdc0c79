package person

import (
	"github.com/plmio/go-3dx-api-types/internal/utils/cmp"
)

// Named is a name-bearing reference (organization, role, collaborative
// space) as the person service returns it.
type Named struct {
	Name  string `json:"name"`
	Title string `json:"title,omitempty"`
}

func (a Named) Equal(b Named) bool {
	return a == b
}

// Couple is one organization/role pair granting membership of a
// collaborative space.
type Couple struct {
	Organization Named `json:"organization"`
	Role         Named `json:"role"`
}

func (a Couple) Equal(b Couple) bool {
	return a == b
}

// CollabSpace is a collaborative space the user belongs to.
type CollabSpace struct {
	Name    string   `json:"name"`
	Couples []Couple `json:"couples,omitempty"`
}

func (a CollabSpace) Equal(b CollabSpace) bool {
	return a.Name == b.Name &&
		cmp.SliceEqualUnordered(a.Couples, b.Couples)
}

// Credentials is the user's preferred collabspace/organization/role triple.
type Credentials struct {
	Collabspace  Named `json:"collabspace"`
	Organization Named `json:"organization"`
	Role         Named `json:"role"`
}

func (a Credentials) Equal(b Credentials) bool {
	return a == b
}

// SecurityContext renders the triple in the "role.organization.collabspace"
// form the resource services expect in their SecurityContext parameter.
func (c Credentials) SecurityContext() string {
	return c.Role.Name + "." + c.Organization.Name + "." + c.Collabspace.Name
}

// UserInfo is the payload of the person endpoint
// (GET {3DSpace}/resources/modeler/pno/person?current=true&tenant=...).
type UserInfo struct {
	Name                 string        `json:"name,omitempty"`
	FirstName            string        `json:"firstname,omitempty"`
	LastName             string        `json:"lastname,omitempty"`
	Email                string        `json:"email,omitempty"`
	Address              string        `json:"address,omitempty"`
	Phone                string        `json:"phone,omitempty"`
	IsActive             bool          `json:"isactive,omitempty"`
	Company              string        `json:"company,omitempty"`
	CollabSpaces         []CollabSpace `json:"collabspaces,omitempty"`
	PreferredCredentials Credentials   `json:"preferredcredentials"`
}

func (a UserInfo) Equal(b UserInfo) bool {
	return a.Name == b.Name &&
		a.FirstName == b.FirstName &&
		a.LastName == b.LastName &&
		a.Email == b.Email &&
		a.Address == b.Address &&
		a.Phone == b.Phone &&
		a.IsActive == b.IsActive &&
		a.Company == b.Company &&
		a.PreferredCredentials == b.PreferredCredentials &&
		cmp.SliceEqualUnordered(a.CollabSpaces, b.CollabSpaces)
}
