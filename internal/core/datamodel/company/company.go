package company

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Company struct {
	ID                string    `gorm:"primaryKey"`
	Name              string    `gorm:"column:name;not null"`
	PlatformStatusKey string    `gorm:"column:platform_status_key;not null;default:ACTIVE;index"`
	InvoiceCount      int64     `gorm:"column:invoice_count;not null;default:0"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Company) TableName() string { return "companies" }

func (c *Company) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// UserCompany is the membership of a user in a company.
type UserCompany struct {
	ID        string    `gorm:"primaryKey"`
	UserID    string    `gorm:"column:user_id;not null;uniqueIndex:idx_user_company"`
	CompanyID string    `gorm:"column:company_id;not null;uniqueIndex:idx_user_company"`
	IsOwner   bool      `gorm:"column:is_owner;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (UserCompany) TableName() string { return "user_companies" }

func (uc *UserCompany) BeforeCreate(_ *gorm.DB) error {
	if uc.ID == "" {
		uc.ID = uuid.NewString()
	}
	return nil
}

type UserCompanyRole struct {
	UserCompanyID string `gorm:"column:user_company_id;primaryKey"`
	RoleID        string `gorm:"column:role_id;primaryKey"`
}

func (UserCompanyRole) TableName() string { return "user_company_roles" }
