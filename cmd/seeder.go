package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal/auth"
	accountDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/account"
	companyDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/company"
	purchaseDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/purchase"
	saleDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/sale"
	userDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/user"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/permission"
	"github.com/frahmantamala/tenant-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const seedPassword = "password"

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(configPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		conn, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer conn.Close()

		db, err := initGorm(conn, logger.LoggerWrapper())
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			if err := clearTables(db); err != nil {
				log.Fatalf("failed to clear data: %v", err)
			}
			fmt.Println("Cleared existing data")
		}

		hash, err := auth.HashPassword(seedPassword, cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			return seed(tx, hash)
		}); err != nil {
			log.Fatalf("failed to seed: %v", err)
		}

		fmt.Println("Seed complete; every user logs in with password:", seedPassword)
	},
}

var seedPermissions = []string{
	"read:company-account:any",
	"create:company-account:any",
	"update:company-account:any",
	"read:company-sale:any",
	"create:company-sale:any",
	"read:company-purchase:any",
	"create:company-purchase:any",
	"update:company:any",
}

// role name -> granted permission strings
var seedRoles = map[string][]string{
	"admin":  {"update:company:any"},
	"clerk":  {"read:company-account:any", "read:company-sale:any", "create:company-sale:any", "read:company-purchase:any"},
	"viewer": {"read:company-account:any", "read:company-sale:any", "read:company-purchase:any"},
}

func seed(tx *gorm.DB, hash string) error {
	perms := make(map[string]userDatamodel.Permission, len(seedPermissions))
	for _, s := range seedPermissions {
		p := permission.MustParse(s)
		row := userDatamodel.Permission{Action: p.Action, Entity: p.Entity, Access: p.Access[0]}
		if err := tx.Where(&row).FirstOrCreate(&row).Error; err != nil {
			return fmt.Errorf("permission %s: %w", s, err)
		}
		perms[s] = row
	}

	roles := make(map[string]userDatamodel.Role, len(seedRoles))
	for name, grants := range seedRoles {
		role := userDatamodel.Role{Name: name}
		if err := tx.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return fmt.Errorf("role %s: %w", name, err)
		}
		for _, g := range grants {
			rp := userDatamodel.RolePermission{RoleID: role.ID, PermissionID: perms[g].ID}
			if err := tx.Where(&rp).FirstOrCreate(&rp).Error; err != nil {
				return fmt.Errorf("grant %s to %s: %w", g, name, err)
			}
		}
		roles[name] = role
	}
	fmt.Printf("Seeded %d permissions and %d roles\n", len(perms), len(roles))

	owner, err := seedUser(tx, "owner", "Olivia Owner", hash)
	if err != nil {
		return err
	}
	clerk, err := seedUser(tx, "clerk", "Carl Clerk", hash)
	if err != nil {
		return err
	}
	admin, err := seedUser(tx, "admin", "Ada Admin", hash)
	if err != nil {
		return err
	}

	adminRole := userDatamodel.UserRole{UserID: admin.ID, RoleID: roles["admin"].ID}
	if err := tx.Where(&adminRole).FirstOrCreate(&adminRole).Error; err != nil {
		return fmt.Errorf("admin role: %w", err)
	}

	var company companyDatamodel.Company
	err = tx.Joins("JOIN user_companies uc ON uc.company_id = companies.id AND uc.is_owner").
		Where("uc.user_id = ? AND companies.name = ?", owner.ID, "Demo Trading").
		First(&company).Error
	if err == nil {
		fmt.Println("demo company already exists; skipping ledger data")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("lookup demo company: %w", err)
	}

	company = companyDatamodel.Company{Name: "Demo Trading", PlatformStatusKey: status.PlatformActive.Key}
	if err := tx.Create(&company).Error; err != nil {
		return fmt.Errorf("demo company: %w", err)
	}

	ownerMembership := companyDatamodel.UserCompany{UserID: owner.ID, CompanyID: company.ID, IsOwner: true}
	clerkMembership := companyDatamodel.UserCompany{UserID: clerk.ID, CompanyID: company.ID}
	for _, m := range []*companyDatamodel.UserCompany{&ownerMembership, &clerkMembership} {
		if err := tx.Create(m).Error; err != nil {
			return fmt.Errorf("membership: %w", err)
		}
	}
	if err := tx.Create(&companyDatamodel.UserCompanyRole{UserCompanyID: clerkMembership.ID, RoleID: roles["clerk"].ID}).Error; err != nil {
		return fmt.Errorf("clerk role: %w", err)
	}

	accounts := []*accountDatamodel.Account{
		{CompanyID: company.ID, Name: "Walmart", UniqueID: ptr("WMT-001"), Email: ptr("ap@walmart.example"), CreatedByID: ownerMembership.ID},
		{CompanyID: company.ID, Name: "Target", UniqueID: ptr("TGT-002"), CreatedByID: ownerMembership.ID},
		{CompanyID: company.ID, Name: "Office Supplies Co", UniqueID: ptr("OSC-100"), CreatedByID: ownerMembership.ID},
	}
	if err := tx.Create(&accounts).Error; err != nil {
		return fmt.Errorf("accounts: %w", err)
	}

	if err := seedLedger(tx, &company, ownerMembership.ID, accounts); err != nil {
		return err
	}

	fmt.Println("Seeded demo company:", company.Name)
	return nil
}

func seedLedger(tx *gorm.DB, company *companyDatamodel.Company, createdBy string, accounts []*accountDatamodel.Account) error {
	invoices := []struct {
		to     *accountDatamodel.Account
		amount string
		status status.Status
	}{
		{accounts[0], "1250.00", status.TransactionPaid},
		{accounts[0], "480.50", status.TransactionPending},
		{accounts[1], "99.99", status.TransactionOverdue},
	}
	for i, inv := range invoices {
		row := saleDatamodel.SaleInvoice{
			CompanyID:            company.ID,
			InvoiceNumber:        int64(i + 1),
			IssuedToID:           inv.to.ID,
			TotalAmount:          decimal.RequireFromString(inv.amount),
			TransactionStatusKey: inv.status.Key,
			DateIssued:           time.Now().UTC(),
			IssuedByID:           createdBy,
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("invoice %d: %w", i+1, err)
		}
	}
	if err := tx.Model(company).Update("invoice_count", len(invoices)).Error; err != nil {
		return fmt.Errorf("invoice counter: %w", err)
	}

	bill := purchaseDatamodel.PurchaseBill{
		CompanyID:            company.ID,
		BillNumber:           "OSC-" + strings.ToUpper(company.ID[:8]),
		PaidToAccountID:      accounts[2].ID,
		TotalAmount:          decimal.RequireFromString("312.40"),
		TransactionStatusKey: status.TransactionReceived.Key,
		DateReceived:         time.Now().UTC(),
		RecordedByID:         createdBy,
	}
	if err := tx.Create(&bill).Error; err != nil {
		return fmt.Errorf("bill: %w", err)
	}
	return nil
}

func seedUser(tx *gorm.DB, username, name, hash string) (*userDatamodel.User, error) {
	u := userDatamodel.User{
		Email:        username + "@ledger.local",
		Username:     username,
		Name:         name,
		PasswordHash: hash,
	}
	if err := tx.Where("email = ?", u.Email).FirstOrCreate(&u).Error; err != nil {
		return nil, fmt.Errorf("user %s: %w", username, err)
	}
	fmt.Println("Seeded user:", u.Email)
	return &u, nil
}

func ptr(s string) *string { return &s }

func clearTables(db *gorm.DB) error {
	models := []interface{}{
		&purchaseDatamodel.PurchaseBill{},
		&saleDatamodel.SaleInvoice{},
		&accountDatamodel.Account{},
		&companyDatamodel.UserCompanyRole{},
		&companyDatamodel.UserCompany{},
		&companyDatamodel.Company{},
		&userDatamodel.UserRole{},
		&userDatamodel.RolePermission{},
		&userDatamodel.Permission{},
		&userDatamodel.Role{},
		&userDatamodel.User{},
	}
	return db.Transaction(func(tx *gorm.DB) error {
		all := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		for _, m := range models {
			if err := all.Delete(m).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
