package account

import (
	"strings"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/common/validation"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
)

type SaveAccountDTO struct {
	Name     string  `json:"name"`
	UniqueID *string `json:"unique_id"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Country  *string `json:"country"`
	Zip      *string `json:"zip"`
}

// Normalize trims every field and turns blank optional fields into nil.
func (d SaveAccountDTO) Normalize() SaveAccountDTO {
	d.Name = strings.TrimSpace(d.Name)
	for _, f := range []**string{&d.UniqueID, &d.Email, &d.Phone, &d.Address, &d.City, &d.State, &d.Country, &d.Zip} {
		*f = trimmed(*f)
	}
	if d.Email != nil {
		lower := strings.ToLower(*d.Email)
		d.Email = &lower
	}
	return d
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func (d SaveAccountDTO) Validate() *internal.AppError {
	v := validation.NewValidator()
	v.Field("name", d.Name).Required().Length(NameMinLength, NameMaxLength)
	v.Field("unique_id", d.UniqueID).Length(UniqueIDMinLength, UniqueIDMaxLength)
	v.Field("email", d.Email).Email()
	v.Field("phone", d.Phone).Length(PhoneMinLength, PhoneMaxLength)
	v.Field("address", d.Address).Length(AddressMinLength, AddressMaxLength)
	v.Field("city", d.City).Length(RegionMinLength, RegionMaxLength)
	v.Field("state", d.State).Length(RegionMinLength, RegionMaxLength)
	v.Field("country", d.Country).Length(RegionMinLength, RegionMaxLength)
	v.Field("zip", d.Zip).Length(ZipMinLength, ZipMaxLength)
	return v.Validate()
}

type AccountsResponse struct {
	Accounts []Account            `json:"accounts"`
	Total    int64                `json:"total"`
	Page     transport.Pagination `json:"page"`
}
