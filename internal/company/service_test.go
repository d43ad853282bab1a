package company_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/company"
	companyPostgres "github.com/frahmantamala/tenant-ledger/internal/company/postgres"
	accountDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/account"
	companyDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/company"
	saleDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/sale"
	userDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/user"
	"github.com/frahmantamala/tenant-ledger/internal/core/events"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var _ = Describe("Company Service", func() {
	var (
		ctx       context.Context
		db        *gorm.DB
		publisher *recordingPublisher
		service   *company.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		db = openDB()
		publisher = &recordingPublisher{}
		service = company.NewService(companyPostgres.NewRepository(db), publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Create", func() {
		It("creates an active company owned by the caller", func() {
			c, err := service.Create(ctx, "u1", company.CreateCompanyDTO{Name: "  Acme Trading "})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Name).To(Equal("Acme Trading"))
			Expect(c.Status).To(Equal(status.PlatformActive))

			var m companyDatamodel.UserCompany
			Expect(db.Where("company_id = ?", c.ID).First(&m).Error).To(Succeed())
			Expect(m.UserID).To(Equal("u1"))
			Expect(m.IsOwner).To(BeTrue())

			Expect(publisher.types()).To(Equal([]string{events.EventTypeCompanyCreated}))
		})

		DescribeTable("rejects names outside 4..60 characters",
			func(name string) {
				_, err := service.Create(ctx, "u1", company.CreateCompanyDTO{Name: name})
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Type).To(Equal(internal.ErrorTypeValidation))
			},
			Entry("empty", ""),
			Entry("three characters", "Abc"),
			Entry("sixty-one characters", strings.Repeat("a", 61)),
		)

		It("rejects a second company with the same name for the same owner", func() {
			_, err := service.Create(ctx, "u1", company.CreateCompanyDTO{Name: "Acme"})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, "u1", company.CreateCompanyDTO{Name: "ACME"})
			Expect(errors.Is(err, internal.ErrCompanyNameTaken)).To(BeTrue())

			_, err = service.Create(ctx, "u2", company.CreateCompanyDTO{Name: "Acme"})
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("ListForUser", func() {
		It("lists memberships with role names", func() {
			acme, err := service.Create(ctx, "u1", company.CreateCompanyDTO{Name: "Acme"})
			Expect(err).NotTo(HaveOccurred())

			clerk := &userDatamodel.Role{Name: "clerk"}
			Expect(db.Create(clerk).Error).To(Succeed())
			m := &companyDatamodel.UserCompany{UserID: "u2", CompanyID: acme.ID}
			Expect(db.Create(m).Error).To(Succeed())
			Expect(db.Create(&companyDatamodel.UserCompanyRole{UserCompanyID: m.ID, RoleID: clerk.ID}).Error).To(Succeed())

			memberships, err := service.ListForUser(ctx, "u2")
			Expect(err).NotTo(HaveOccurred())
			Expect(memberships).To(HaveLen(1))
			Expect(memberships[0].IsOwner).To(BeFalse())
			Expect(memberships[0].Roles).To(Equal([]string{"clerk"}))
			Expect(memberships[0].Company.Name).To(Equal("Acme"))

			memberships, err = service.ListForUser(ctx, "nobody")
			Expect(err).NotTo(HaveOccurred())
			Expect(memberships).NotTo(BeNil())
			Expect(memberships).To(BeEmpty())
		})
	})

	Describe("GetOverview", func() {
		var acme *company.Company

		BeforeEach(func() {
			var err error
			acme, err = service.Create(ctx, "u1", company.CreateCompanyDTO{Name: "Acme"})
			Expect(err).NotTo(HaveOccurred())

			customer := &accountDatamodel.Account{CompanyID: acme.ID, Name: "Walmart", CreatedByID: "m1"}
			Expect(db.Create(customer).Error).To(Succeed())
			Expect(db.Create(&saleDatamodel.SaleInvoice{
				CompanyID: acme.ID, InvoiceNumber: 1, IssuedToID: customer.ID, IssuedByID: "m1",
				TotalAmount: decimal.RequireFromString("99.50"), TransactionStatusKey: "PAID", DateIssued: time.Now(),
			}).Error).To(Succeed())
		})

		It("returns totals for a member of an active company", func() {
			o, err := service.GetOverview(ctx, "u1", acme.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(o.IsOwner).To(BeTrue())
			Expect(o.Totals.Accounts).To(Equal(int64(1)))
			Expect(o.Totals.SaleInvoices).To(Equal(int64(1)))
			Expect(o.Totals.Receivables.Equal(decimal.RequireFromString("99.5"))).To(BeTrue())
			Expect(o.Totals.PurchaseBills).To(BeZero())
			Expect(o.Totals.Payables.IsZero()).To(BeTrue())
		})

		It("hides the company from non-members", func() {
			_, err := service.GetOverview(ctx, "u2", acme.ID)
			Expect(errors.Is(err, internal.ErrCompanyNotFound)).To(BeTrue())
		})

		It("hides a suspended company even from its owner", func() {
			_, err := service.ChangeStatus(ctx, "admin", acme.ID, company.UpdateStatusDTO{PlatformStatusKey: status.PlatformSuspended.Key})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.GetOverview(ctx, "u1", acme.ID)
			Expect(errors.Is(err, internal.ErrCompanyNotFound)).To(BeTrue())
		})
	})

	Describe("administration", func() {
		It("pages through all companies", func() {
			for _, name := range []string{"Acme", "Globex", "Initech"} {
				_, err := service.Create(ctx, "u1", company.CreateCompanyDTO{Name: name})
				Expect(err).NotTo(HaveOccurred())
			}

			companies, total, err := service.List(ctx, transport.Pagination{Skip: 1, Top: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(companies).To(HaveLen(1))
		})

		It("rejects unknown platform statuses", func() {
			acme, _ := service.Create(ctx, "u1", company.CreateCompanyDTO{Name: "Acme"})

			_, err := service.ChangeStatus(ctx, "admin", acme.ID, company.UpdateStatusDTO{PlatformStatusKey: "ARCHIVED"})
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Code).To(Equal(string(internal.ErrCodeInvalidPlatformStatus)))
		})

		It("publishes a status change once", func() {
			acme, _ := service.Create(ctx, "u1", company.CreateCompanyDTO{Name: "Acme"})

			c, err := service.ChangeStatus(ctx, "admin", acme.ID, company.UpdateStatusDTO{PlatformStatusKey: "IN_REVIEW"})
			Expect(err).NotTo(HaveOccurred())
			Expect(c.Status).To(Equal(status.PlatformInReview))

			_, err = service.ChangeStatus(ctx, "admin", acme.ID, company.UpdateStatusDTO{PlatformStatusKey: "IN_REVIEW"})
			Expect(err).NotTo(HaveOccurred())
			Expect(publisher.types()).To(Equal([]string{events.EventTypeCompanyCreated, events.EventTypeCompanyStatusChanged}))
		})

		It("reports unknown companies", func() {
			_, err := service.ChangeStatus(ctx, "admin", "missing", company.UpdateStatusDTO{PlatformStatusKey: "ACTIVE"})
			Expect(errors.Is(err, internal.ErrCompanyNotFound)).To(BeTrue())
		})
	})
})
