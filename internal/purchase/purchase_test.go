package purchase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/events"
	"github.com/frahmantamala/tenant-ledger/internal/purchase"
	purchasePostgres "github.com/frahmantamala/tenant-ledger/internal/purchase/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
)

var _ = Describe("Purchase Service", func() {
	var (
		ctx            context.Context
		acmeSupplier   string
		globexSupplier string
		bus            *events.EventBus
		published      chan events.Event
		service        *purchase.Service
	)

	bill := func(number, payee string) purchase.CreateBillDTO {
		return purchase.CreateBillDTO{
			BillNumber:           number,
			PaidToAccountID:      payee,
			TotalAmount:          decimal.RequireFromString("310.25"),
			TransactionStatusKey: "RECEIVED",
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		db, acme, globex := seed()
		acmeSupplier, globexSupplier = acme, globex

		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		published = make(chan events.Event, 4)
		bus = events.NewEventBus(logger)
		bus.Subscribe(events.EventTypePurchaseBillCreated, func(_ context.Context, e events.Event) error {
			published <- e
			return nil
		})
		service = purchase.NewService(purchasePostgres.NewRepository(db), bus, logger)
	})

	It("records a bill and publishes it", func() {
		b, err := service.Create(ctx, "acme", "m1", bill(" INV-2291 ", acmeSupplier))
		Expect(err).NotTo(HaveOccurred())
		Expect(b.BillNumber).To(Equal("INV-2291"))
		Expect(b.RecordedByID).To(Equal("m1"))
		Expect(b.Status.Label).To(Equal("Received"))
		Expect(b.DateReceived).To(BeTemporally("~", time.Now(), time.Minute))

		var e events.Event
		Eventually(published).Should(Receive(&e))
		Expect(e.(*events.PurchaseBillCreatedEvent).BillID).To(Equal(b.ID))
	})

	It("keeps bill numbers unique per company", func() {
		_, err := service.Create(ctx, "acme", "m1", bill("B-1", acmeSupplier))
		Expect(err).NotTo(HaveOccurred())

		_, err = service.Create(ctx, "acme", "m1", bill("B-1", acmeSupplier))
		Expect(errors.Is(err, internal.ErrBillNumberTaken)).To(BeTrue())

		_, err = service.Create(ctx, "globex", "m2", bill("B-1", globexSupplier))
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a payee from another company", func() {
		_, err := service.Create(ctx, "acme", "m1", bill("B-1", globexSupplier))
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Field).To(Equal("paid_to_account_id"))
	})

	DescribeTable("validates input",
		func(mutate func(*purchase.CreateBillDTO), field string) {
			dto := bill("B-1", acmeSupplier)
			mutate(&dto)
			_, err := service.Create(ctx, "acme", "m1", dto)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Details.(internal.ValidationErrors).Errors[0].Field).To(Equal(field))
		},
		Entry("blank bill number", func(d *purchase.CreateBillDTO) { d.BillNumber = "  " }, "bill_number"),
		Entry("long bill number", func(d *purchase.CreateBillDTO) { d.BillNumber = strings.Repeat("9", 33) }, "bill_number"),
		Entry("negative total", func(d *purchase.CreateBillDTO) { d.TotalAmount = decimal.NewFromInt(-5) }, "total_amount"),
		Entry("unknown status", func(d *purchase.CreateBillDTO) { d.TransactionStatusKey = "SHIPPED" }, "transaction_status_key"),
	)

	It("lists and reads bills of one company only", func() {
		created, err := service.Create(ctx, "acme", "m1", bill("B-1", acmeSupplier))
		Expect(err).NotTo(HaveOccurred())
		_, err = service.Create(ctx, "globex", "m2", bill("G-1", globexSupplier))
		Expect(err).NotTo(HaveOccurred())

		bills, total, err := service.List(ctx, "acme", transport.Pagination{Top: 20})
		Expect(err).NotTo(HaveOccurred())
		Expect(total).To(Equal(int64(1)))
		Expect(bills[0].ID).To(Equal(created.ID))

		_, err = service.Get(ctx, "globex", created.ID)
		Expect(errors.Is(err, internal.ErrPurchaseBillNotFound)).To(BeTrue())
	})

	Describe("Handler", func() {
		var router chi.Router

		serve := func(method, path, body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(method, path, strings.NewReader(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			return w
		}

		BeforeEach(func() {
			h := purchase.NewHandler(transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil))), service)
			asMember := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					ctx := rbac.ContextWithCompanyUser(r.Context(), &rbac.CompanyUser{
						CompanyID: chi.URLParam(r, rbac.CompanyURLParam),
						User:      rbac.UserProjection{ID: "u1", MembershipID: "m1"},
					})
					next.ServeHTTP(w, r.WithContext(ctx))
				})
			}

			router = chi.NewRouter()
			router.Route("/c/{companyId}/purchases/bills", func(r chi.Router) {
				r.Use(asMember)
				r.Post("/", h.CreateBill)
				r.Get("/", h.ListBills)
				r.Get("/{billId}", h.GetBill)
			})
		})

		It("answers 201, then 409 for the same bill number", func() {
			body := `{"bill_number":"B-7","paid_to_account_id":"` + acmeSupplier + `","total_amount":"12.00","transaction_status_key":"APPROVED"}`

			Expect(serve(http.MethodPost, "/c/acme/purchases/bills/", body).Code).To(Equal(http.StatusCreated))

			w := serve(http.MethodPost, "/c/acme/purchases/bills/", body)
			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(w.Body.String()).To(ContainSubstring("BILL_NUMBER_TAKEN"))

			w = serve(http.MethodGet, "/c/acme/purchases/bills/", "")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(ContainSubstring(`"bill_number":"B-7"`))
		})

		It("answers 404 for unknown bills", func() {
			Expect(serve(http.MethodGet, "/c/acme/purchases/bills/missing", "").Code).To(Equal(http.StatusNotFound))
		})
	})
})
