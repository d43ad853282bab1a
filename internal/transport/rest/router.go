package rest

import (
	"log/slog"

	"github.com/frahmantamala/tenant-ledger/api"
	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/account"
	"github.com/frahmantamala/tenant-ledger/internal/auth"
	"github.com/frahmantamala/tenant-ledger/internal/company"
	"github.com/frahmantamala/tenant-ledger/internal/purchase"
	"github.com/frahmantamala/tenant-ledger/internal/rbac"
	"github.com/frahmantamala/tenant-ledger/internal/sale"
	"github.com/frahmantamala/tenant-ledger/internal/search"
	"github.com/frahmantamala/tenant-ledger/internal/transport/middleware"
	"github.com/frahmantamala/tenant-ledger/internal/transport/swagger"
	"github.com/frahmantamala/tenant-ledger/internal/user"
	"github.com/go-chi/chi"
)

// Handlers groups every HTTP handler the router mounts. Nil handlers are skipped.
type Handlers struct {
	Health   *HealthHandler
	Auth     *auth.Handler
	User     *user.Handler
	Company  *company.Handler
	Search   *search.Handler
	Account  *account.Handler
	Sale     *sale.Handler
	Purchase *purchase.Handler
}

// tenantMember asks the company guard for the membership id, which write handlers
// record as the acting member.
var tenantMember = rbac.Select{Membership: true}

func RegisterAllRoutes(router chi.Router, h Handlers, authz *rbac.Authorization, cfg internal.ServerConfig, logger *slog.Logger) {
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	router.Get("/openapi.yml", api.Handler().ServeHTTP)
	router.Handle("/swagger/*", swagger.Handler("/openapi.yml"))

	router.Route("/api/v1", func(r chi.Router) {
		if h.Health != nil {
			r.Get("/health", h.Health.Health)
			r.Get("/ping", h.Health.Ping)
		}

		if h.Auth == nil {
			return
		}

		r.Route("/auth", func(ar chi.Router) {
			ar.Post("/login", h.Auth.Login)
			ar.Post("/refresh", h.Auth.RefreshToken)
			ar.Post("/logout", h.Auth.Logout)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			if h.User != nil {
				pr.Get("/users/me", h.User.GetCurrentUser)
			}

			if h.Company != nil {
				pr.Route("/studio/companies", func(sr chi.Router) {
					sr.Get("/", h.Company.ListMyCompanies)
					sr.Post("/", h.Company.CreateCompany)
				})

				pr.Route("/admin/companies", func(ar chi.Router) {
					ar.With(authz.Role("admin")).Get("/", h.Company.ListCompanies)
					ar.With(authz.Permission("update:company:any")).Patch("/{companyId}/status", h.Company.UpdateStatus)
				})
			}

			pr.Route("/c/{companyId}", func(cr chi.Router) {
				registerTenantRoutes(cr, h, authz)
			})
		})
	})
}

func registerTenantRoutes(r chi.Router, h Handlers, authz *rbac.Authorization) {
	if h.Company != nil {
		r.Get("/", h.Company.GetOverview)
	}

	if h.Search != nil {
		r.With(authz.CompanyPermission("read:company-account")).Get("/search", h.Search.Search)
	}

	if h.Account != nil {
		r.Route("/accounts", func(ar chi.Router) {
			ar.With(authz.CompanyPermission("read:company-account")).Get("/", h.Account.ListAccounts)
			ar.With(authz.CompanyPermission("read:company-account")).Get("/{accountId}", h.Account.GetAccount)
			ar.With(authz.CompanyPermission("create:company-account", tenantMember)).Post("/", h.Account.CreateAccount)
			ar.With(authz.CompanyPermission("update:company-account", tenantMember)).Put("/{accountId}", h.Account.SaveAccount)
		})
	}

	if h.Sale != nil {
		r.Route("/sales/invoices", func(sr chi.Router) {
			sr.With(authz.CompanyPermission("read:company-sale")).Get("/", h.Sale.ListInvoices)
			sr.With(authz.CompanyPermission("read:company-sale")).Get("/{invoiceId}", h.Sale.GetInvoice)
			sr.With(authz.CompanyPermission("create:company-sale", tenantMember)).Post("/", h.Sale.CreateInvoice)
		})
	}

	if h.Purchase != nil {
		r.Route("/purchases/bills", func(pr chi.Router) {
			pr.With(authz.CompanyPermission("read:company-purchase")).Get("/", h.Purchase.ListBills)
			pr.With(authz.CompanyPermission("read:company-purchase")).Get("/{billId}", h.Purchase.GetBill)
			pr.With(authz.CompanyPermission("create:company-purchase", tenantMember)).Post("/", h.Purchase.CreateBill)
		})
	}
}
