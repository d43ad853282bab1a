package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Account struct {
	ID          string          `gorm:"primaryKey"`
	CompanyID   string          `gorm:"column:company_id;not null;index;uniqueIndex:idx_account_company_name"`
	Name        string          `gorm:"column:name;not null;uniqueIndex:idx_account_company_name"`
	UniqueID    *string         `gorm:"column:unique_id"`
	Email       *string         `gorm:"column:email"`
	Phone       *string         `gorm:"column:phone"`
	Address     *string         `gorm:"column:address"`
	City        *string         `gorm:"column:city"`
	State       *string         `gorm:"column:state"`
	Country     *string         `gorm:"column:country"`
	Zip         *string         `gorm:"column:zip"`
	Balance     decimal.Decimal `gorm:"column:balance;type:numeric(14,2);not null;default:0"`
	CreatedByID string          `gorm:"column:created_by_id;not null"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (Account) TableName() string { return "accounts" }

func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
