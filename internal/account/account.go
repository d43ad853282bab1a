package account

import (
	"time"

	accountDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/account"
	"github.com/shopspring/decimal"
)

const (
	NameMinLength     = 3
	NameMaxLength     = 40
	UniqueIDMinLength = 4
	UniqueIDMaxLength = 24
	PhoneMinLength    = 7
	PhoneMaxLength    = 15
	AddressMinLength  = 4
	AddressMaxLength  = 40
	RegionMinLength   = 4
	RegionMaxLength   = 24
	ZipMinLength      = 4
	ZipMaxLength      = 12
)

// Account is a customer or supplier ledger account owned by one company.
type Account struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	Name        string          `json:"name"`
	UniqueID    *string         `json:"unique_id"`
	Email       *string         `json:"email"`
	Phone       *string         `json:"phone"`
	Address     *string         `json:"address"`
	City        *string         `json:"city"`
	State       *string         `json:"state"`
	Country     *string         `json:"country"`
	Zip         *string         `json:"zip"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedByID string          `json:"created_by_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func FromDataModel(a *accountDatamodel.Account) Account {
	return Account{
		ID:          a.ID,
		CompanyID:   a.CompanyID,
		Name:        a.Name,
		UniqueID:    a.UniqueID,
		Email:       a.Email,
		Phone:       a.Phone,
		Address:     a.Address,
		City:        a.City,
		State:       a.State,
		Country:     a.Country,
		Zip:         a.Zip,
		Balance:     a.Balance,
		CreatedByID: a.CreatedByID,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
