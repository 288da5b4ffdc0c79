package platform

import (
	"github.com/plmio/go-3dx-api-types/internal/utils/cmp"
)

// Service maps a logical service name ("3DSpace", "3DSwym", ...) to the
// concrete URL serving it for one platform.
type Service struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name"`
	Url  string `json:"url"`
}

func (a Service) Equal(b Service) bool {
	return a == b
}

// Services is the per-platform entry of the registry: the platform id and
// every service endpoint provisioned for it.
type Services struct {
	Id       string    `json:"id"`
	Services []Service `json:"services"`
}

func (a Services) Equal(b Services) bool {
	return a.Id == b.Id &&
		cmp.SliceEqualUnordered(a.Services, b.Services)
}

// Collection is the payload of the registry endpoint
// (GET {compass}/resources/AppsMngt/api/v1/public/services/platform).
type Collection struct {
	Platforms []Services `json:"platforms"`
}

func (a Collection) Equal(b Collection) bool {
	return cmp.SliceEqualUnordered(a.Platforms, b.Platforms)
}
