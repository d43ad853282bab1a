package internal_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/frahmantamala/tenant-ledger/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("AppError", func() {
	It("matches sentinels through copies and wrapping", func() {
		err := fmt.Errorf("repo: %w", internal.ErrAccountNotFound.WithCause(errors.New("no rows")))

		Expect(errors.Is(err, internal.ErrAccountNotFound)).To(BeTrue())
		Expect(errors.Is(err, internal.ErrSaleInvoiceNotFound)).To(BeFalse())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusNotFound))
	})

	It("never mutates the sentinel", func() {
		_ = internal.ErrCompanyNotFound.WithCause(errors.New("boom")).WithDetails("x")
		Expect(internal.ErrCompanyNotFound.Cause).To(BeNil())
		Expect(internal.ErrCompanyNotFound.Details).To(BeNil())
	})

	It("surfaces the first field message", func() {
		err := internal.NewValidationFieldError("name", "name is required", internal.ErrCodeValidationFailed)
		Expect(err.Error()).To(Equal("name is required"))
		Expect(err.GetDetailedMessage()).To(Equal("name is required"))
	})

	It("renders without the cause", func() {
		status, body := internal.NewInternalError("internal server error", errors.New("dsn leaked")).ToHTTPResponse()
		Expect(status).To(Equal(http.StatusInternalServerError))

		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).NotTo(ContainSubstring("dsn leaked"))
		Expect(string(raw)).To(ContainSubstring(`"code":"INTERNAL_ERROR"`))
	})
})
