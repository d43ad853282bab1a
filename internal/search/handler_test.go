package search_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/search"
	"github.com/frahmantamala/tenant-ledger/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Search Handler", func() {
	var (
		repo   *mockRepository
		router chi.Router
	)

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo = newMockRepository()
		repo.accounts = []search.AccountHit{{ID: "a1", Name: "Walmart"}}

		handler := search.NewHandler(transport.NewBaseHandler(logger), search.NewResolver(repo, internal.SearchConfig{}, logger))
		router = chi.NewRouter()
		router.Get("/c/{companyId}/search", handler.Search)
	})

	get := func(target string) map[string]interface{} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusOK))

		var body map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&body)).To(Succeed())
		return body
	}

	It("renders the three categories for a matched query", func() {
		body := get("/c/acme/search?q=walmart")

		Expect(body["matched"]).To(BeTrue())
		Expect(body["query"]).To(Equal("walmart"))
		Expect(body["accounts"]).To(HaveLen(1))
		Expect(body["sale_invoices"]).To(BeEmpty())
		Expect(body["purchase_bills"]).To(BeEmpty())
		Expect(repo.calls[0].companyID).To(Equal("acme"))
	})

	It("accepts the search parameter as an alias", func() {
		body := get("/c/acme/search?search=acc:wal")

		Expect(body["matched"]).To(BeTrue())
		Expect(repo.methods()).To(Equal([]string{"AccountsByName"}))
	})

	It("reports an out-of-bounds query as unmatched", func() {
		body := get("/c/acme/search?q=ab")

		Expect(body["matched"]).To(BeFalse())
		Expect(body).To(HaveKeyWithValue("accounts", BeNil()))
		Expect(repo.calls).To(BeEmpty())
	})
})
