package account_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/account"
	accountPostgres "github.com/frahmantamala/tenant-ledger/internal/account/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func ptr(s string) *string { return &s }

var _ = Describe("Account Service", func() {
	var (
		ctx       context.Context
		publisher *recordingPublisher
		service   *account.Service
		acme      account.Actor
		globex    account.Actor
	)

	BeforeEach(func() {
		ctx = context.Background()
		publisher = &recordingPublisher{}
		service = account.NewService(accountPostgres.NewRepository(openDB()), publisher, slog.New(slog.NewTextHandler(io.Discard, nil)))
		acme = account.Actor{CompanyID: "acme", UserID: "u1", MembershipID: "m-acme"}
		globex = account.Actor{CompanyID: "globex", UserID: "u2", MembershipID: "m-globex"}
	})

	Describe("Save", func() {
		It("creates an account recording the acting membership", func() {
			a, created, err := service.Save(ctx, acme, "", account.SaveAccountDTO{
				Name:     " Walmart ",
				UniqueID: ptr("WAL-001"),
				Email:    ptr(" AP@Walmart.test "),
				City:     ptr("   "),
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
			Expect(a.ID).NotTo(BeEmpty())
			Expect(a.Name).To(Equal("Walmart"))
			Expect(*a.Email).To(Equal("ap@walmart.test"))
			Expect(a.City).To(BeNil())
			Expect(a.CreatedByID).To(Equal("m-acme"))
			Expect(a.Balance.IsZero()).To(BeTrue())

			saved := publisher.saved()
			Expect(saved).To(HaveLen(1))
			Expect(saved[0].AccountID).To(Equal(a.ID))
			Expect(saved[0].Created).To(BeTrue())
		})

		It("updates an existing account in place", func() {
			a, _, err := service.Save(ctx, acme, "", account.SaveAccountDTO{Name: "Walmart"})
			Expect(err).NotTo(HaveOccurred())

			editor := acme
			editor.MembershipID = "m-editor"
			updated, created, err := service.Save(ctx, editor, a.ID, account.SaveAccountDTO{Name: "Walmart Inc", Phone: ptr("5551234567")})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(updated.ID).To(Equal(a.ID))
			Expect(updated.Name).To(Equal("Walmart Inc"))
			Expect(*updated.Phone).To(Equal("5551234567"))
			Expect(updated.CreatedByID).To(Equal("m-acme"))

			_, total, err := service.List(ctx, "acme", transport.Pagination{Top: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
		})

		It("creates an account under a caller supplied id", func() {
			a, created, err := service.Save(ctx, acme, "2d7b1f0e-5a9c-4f5e-8f61-0c7b7e1a9b10", account.SaveAccountDTO{Name: "Target"})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())
			Expect(a.ID).To(Equal("2d7b1f0e-5a9c-4f5e-8f61-0c7b7e1a9b10"))
		})

		It("rejects a name already used in the same company", func() {
			_, _, err := service.Save(ctx, acme, "", account.SaveAccountDTO{Name: "Walmart"})
			Expect(err).NotTo(HaveOccurred())

			_, _, err = service.Save(ctx, acme, "", account.SaveAccountDTO{Name: "WALMART"})
			Expect(errors.Is(err, internal.ErrAccountNameTaken)).To(BeTrue())

			_, _, err = service.Save(ctx, globex, "", account.SaveAccountDTO{Name: "Walmart"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("refuses to overwrite another company's account", func() {
			theirs, _, err := service.Save(ctx, globex, "", account.SaveAccountDTO{Name: "Initech"})
			Expect(err).NotTo(HaveOccurred())

			_, _, err = service.Save(ctx, acme, theirs.ID, account.SaveAccountDTO{Name: "Hijacked"})
			Expect(errors.Is(err, internal.ErrAccountNotFound)).To(BeTrue())

			kept, err := service.Get(ctx, "globex", theirs.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(kept.Name).To(Equal("Initech"))
		})

		DescribeTable("validates field lengths",
			func(dto account.SaveAccountDTO, field string) {
				_, _, err := service.Save(ctx, acme, "", dto)
				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.StatusCode).To(Equal(400))
				Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Field).To(Equal(field))
			},
			Entry("short name", account.SaveAccountDTO{Name: "Wa"}, "name"),
			Entry("short unique id", account.SaveAccountDTO{Name: "Walmart", UniqueID: ptr("W1")}, "unique_id"),
			Entry("bad email", account.SaveAccountDTO{Name: "Walmart", Email: ptr("walmart")}, "email"),
			Entry("short phone", account.SaveAccountDTO{Name: "Walmart", Phone: ptr("555")}, "phone"),
			Entry("long address", account.SaveAccountDTO{Name: "Walmart", Address: ptr("1 Very Long Street Name That Goes On And On")}, "address"),
			Entry("short country", account.SaveAccountDTO{Name: "Walmart", Country: ptr("US")}, "country"),
			Entry("short zip", account.SaveAccountDTO{Name: "Walmart", Zip: ptr("123")}, "zip"),
		)
	})

	Describe("Get and List", func() {
		BeforeEach(func() {
			for _, name := range []string{"Costco", "Amazon", "Best Buy"} {
				_, _, err := service.Save(ctx, acme, "", account.SaveAccountDTO{Name: name})
				Expect(err).NotTo(HaveOccurred())
			}
			_, _, err := service.Save(ctx, globex, "", account.SaveAccountDTO{Name: "Aldi"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("lists one company's accounts by name", func() {
			accounts, total, err := service.List(ctx, "acme", transport.Pagination{Skip: 1, Top: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(accounts).To(HaveLen(1))
			Expect(accounts[0].Name).To(Equal("Best Buy"))
		})

		It("hides accounts of other companies", func() {
			accounts, _, err := service.List(ctx, "globex", transport.Pagination{Top: 20})
			Expect(err).NotTo(HaveOccurred())
			Expect(accounts).To(HaveLen(1))

			_, err = service.Get(ctx, "acme", accounts[0].ID)
			Expect(errors.Is(err, internal.ErrAccountNotFound)).To(BeTrue())
		})
	})
})
