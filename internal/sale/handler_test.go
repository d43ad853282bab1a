package sale_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"github.com/frahmantamala/tenant-ledger/internal/sale"
	salePostgres "github.com/frahmantamala/tenant-ledger/internal/sale/postgres"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Sale Handler", func() {
	var (
		router      chi.Router
		acmeAccount string
	)

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		db, acme, _ := seed()
		acmeAccount = acme
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		h := sale.NewHandler(transport.NewBaseHandler(logger), sale.NewService(salePostgres.NewRepository(db), nil, logger))

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
		router.Route("/c/{companyId}/sales/invoices", func(r chi.Router) {
			r.Use(asMember)
			r.Post("/", h.CreateInvoice)
			r.Get("/", h.ListInvoices)
			r.Get("/{invoiceId}", h.GetInvoice)
		})
	})

	It("creates and reads an invoice", func() {
		w := serve(http.MethodPost, "/c/acme/sales/invoices/",
			`{"issued_to_id":"`+acmeAccount+`","total_amount":"49.90","transaction_status_key":"PAID","description":"Spring order"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))

		var inv sale.Invoice
		Expect(json.Unmarshal(w.Body.Bytes(), &inv)).To(Succeed())
		Expect(inv.InvoiceNumber).To(Equal(int64(1)))
		Expect(inv.Status.Label).To(Equal("Paid"))
		Expect(inv.IssuedByID).To(Equal("m1"))

		Expect(serve(http.MethodGet, "/c/acme/sales/invoices/"+inv.ID, "").Code).To(Equal(http.StatusOK))
		Expect(serve(http.MethodGet, "/c/globex/sales/invoices/"+inv.ID, "").Code).To(Equal(http.StatusNotFound))

		w = serve(http.MethodGet, "/c/acme/sales/invoices/", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var resp sale.InvoicesResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Total).To(Equal(int64(1)))
	})

	It("answers 400 for a non-positive total", func() {
		w := serve(http.MethodPost, "/c/acme/sales/invoices/",
			`{"issued_to_id":"`+acmeAccount+`","total_amount":0,"transaction_status_key":"PAID"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_AMOUNT"))
	})
})
