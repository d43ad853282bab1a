package sale_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal"
	companyDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/company"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"github.com/frahmantamala/tenant-ledger/internal/sale"
	salePostgres "github.com/frahmantamala/tenant-ledger/internal/sale/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func ptr[T any](v T) *T { return &v }

var _ = Describe("Sale Service", func() {
	var (
		ctx           context.Context
		db            *gorm.DB
		acmeAccount   string
		globexAccount string
		publisher     *recordingPublisher
		service       *sale.Service
	)

	valid := func(accountID string) sale.CreateInvoiceDTO {
		return sale.CreateInvoiceDTO{
			IssuedToID:           accountID,
			TotalAmount:          decimal.RequireFromString("120.00"),
			TransactionStatusKey: "pending",
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		db, acmeAccount, globexAccount = seed()
		publisher = &recordingPublisher{}
		service = sale.NewService(salePostgres.NewRepository(db), publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("Create", func() {
		It("numbers invoices per company", func() {
			first, err := service.Create(ctx, "acme", "m1", valid(acmeAccount))
			Expect(err).NotTo(HaveOccurred())
			second, err := service.Create(ctx, "acme", "m1", valid(acmeAccount))
			Expect(err).NotTo(HaveOccurred())
			other, err := service.Create(ctx, "globex", "m2", valid(globexAccount))
			Expect(err).NotTo(HaveOccurred())

			Expect(first.InvoiceNumber).To(Equal(int64(1)))
			Expect(second.InvoiceNumber).To(Equal(int64(2)))
			Expect(other.InvoiceNumber).To(Equal(int64(1)))

			var acme companyDatamodel.Company
			Expect(db.First(&acme, "id = ?", "acme").Error).To(Succeed())
			Expect(acme.InvoiceCount).To(Equal(int64(2)))
			Expect(publisher.count()).To(Equal(3))
		})

		It("fills defaults and decorates the status", func() {
			inv, err := service.Create(ctx, "acme", "m1", valid(acmeAccount))
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.IssuedByID).To(Equal("m1"))
			Expect(inv.Status).To(Equal(status.TransactionPending))
			Expect(inv.DateIssued).To(BeTemporally("~", time.Now(), time.Minute))
			Expect(inv.Description).To(BeNil())
		})

		It("rejects an account from another company without consuming a number", func() {
			_, err := service.Create(ctx, "acme", "m1", valid(globexAccount))
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Field).To(Equal("issued_to_id"))

			inv, err := service.Create(ctx, "acme", "m1", valid(acmeAccount))
			Expect(err).NotTo(HaveOccurred())
			Expect(inv.InvoiceNumber).To(Equal(int64(1)))
		})

		DescribeTable("validates input",
			func(mutate func(*sale.CreateInvoiceDTO), field string) {
				dto := valid(acmeAccount)
				mutate(&dto)
				_, err := service.Create(ctx, "acme", "m1", dto)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Field).To(Equal(field))
			},
			Entry("zero total", func(d *sale.CreateInvoiceDTO) { d.TotalAmount = decimal.Zero }, "total_amount"),
			Entry("sub-cent total", func(d *sale.CreateInvoiceDTO) { d.TotalAmount = decimal.RequireFromString("1.001") }, "total_amount"),
			Entry("unknown status", func(d *sale.CreateInvoiceDTO) { d.TransactionStatusKey = "LOST" }, "transaction_status_key"),
			Entry("short description", func(d *sale.CreateInvoiceDTO) { d.Description = ptr("abc") }, "description"),
			Entry("long description", func(d *sale.CreateInvoiceDTO) { d.Description = ptr(strings.Repeat("x", 81)) }, "description"),
			Entry("future issue date", func(d *sale.CreateInvoiceDTO) { d.DateIssued = ptr(time.Now().Add(48 * time.Hour)) }, "date_issued"),
			Entry("due before issue", func(d *sale.CreateInvoiceDTO) {
				d.DateIssued = ptr(time.Now().Add(-24 * time.Hour))
				d.DueDate = ptr(time.Now().Add(-72 * time.Hour))
			}, "due_date"),
		)
	})

	Describe("Get and List", func() {
		It("lists newest first within one company", func() {
			for i := 0; i < 3; i++ {
				_, err := service.Create(ctx, "acme", "m1", valid(acmeAccount))
				Expect(err).NotTo(HaveOccurred())
			}

			invoices, total, err := service.List(ctx, "acme", transport.Pagination{Top: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(invoices).To(HaveLen(2))
			Expect(invoices[0].InvoiceNumber).To(Equal(int64(3)))

			invoices, total, err = service.List(ctx, "globex", transport.Pagination{Top: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
			Expect(invoices).To(BeEmpty())
		})

		It("hides invoices of other companies", func() {
			inv, err := service.Create(ctx, "acme", "m1", valid(acmeAccount))
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Get(ctx, "acme", inv.ID)
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Get(ctx, "globex", inv.ID)
			Expect(errors.Is(err, internal.ErrSaleInvoiceNotFound)).To(BeTrue())
		})
	})
})
