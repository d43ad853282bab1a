package company

import (
	"strings"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/common/validation"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
)

type CreateCompanyDTO struct {
	Name string `json:"name"`
}

func (d CreateCompanyDTO) Normalize() CreateCompanyDTO {
	d.Name = strings.TrimSpace(d.Name)
	return d
}

func (d CreateCompanyDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().Length(NameMinLength, NameMaxLength)
	return v.Validate()
}

type UpdateStatusDTO struct {
	PlatformStatusKey string `json:"platform_status_key"`
}

func (d UpdateStatusDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("platform_status_key", d.PlatformStatusKey).
		Required().
		OneOf(internal.ErrCodeInvalidPlatformStatus, func(k string) bool {
			_, ok := status.Platform(k)
			return ok
		})
	return v.Validate()
}

type CompaniesResponse struct {
	Companies []Company            `json:"companies"`
	Total     int64                `json:"total"`
	Page      transport.Pagination `json:"page"`
}

type MembershipsResponse struct {
	Memberships []Membership `json:"memberships"`
}
