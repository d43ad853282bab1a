package search

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/status"
	"golang.org/x/sync/errgroup"
)

// lookup fills one category of res for a keyword-scoped query.
type lookup func(ctx context.Context, r *Resolver, companyID, field string, res *Result) error

var keywords = map[Keyword]lookup{
	KeywordAccount: func(ctx context.Context, r *Resolver, companyID, field string, res *Result) error {
		hits, err := r.repo.AccountsByName(ctx, companyID, field, r.cfg.ResultLimit)
		res.Accounts = orEmpty(hits)
		return err
	},
	KeywordUniqueID: func(ctx context.Context, r *Resolver, companyID, field string, res *Result) error {
		hits, err := r.repo.AccountsByUniqueID(ctx, companyID, field, r.cfg.ResultLimit)
		res.Accounts = orEmpty(hits)
		return err
	},
	KeywordInvoice: func(ctx context.Context, r *Resolver, companyID, field string, res *Result) error {
		number, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return nil
		}
		hits, err := r.repo.SaleInvoicesByNumber(ctx, companyID, number, r.cfg.ResultLimit)
		res.SaleInvoices = decorateInvoices(hits)
		return err
	},
	KeywordBill: func(ctx context.Context, r *Resolver, companyID, field string, res *Result) error {
		hits, err := r.repo.PurchaseBillsByNumber(ctx, companyID, field, r.cfg.ResultLimit)
		res.PurchaseBills = decorateBills(hits)
		return err
	},
}

type Resolver struct {
	repo   RepositoryAPI
	cfg    internal.SearchConfig
	logger *slog.Logger
}

func NewResolver(repo RepositoryAPI, cfg internal.SearchConfig, logger *slog.Logger) *Resolver {
	return &Resolver{
		repo:   repo,
		cfg:    cfg.WithDefaults(),
		logger: logger,
	}
}

// InBounds reports whether the trimmed query length is searchable.
func (r *Resolver) InBounds(rawQuery string) bool {
	n := len([]rune(strings.TrimSpace(rawQuery)))
	return n >= r.cfg.MinQueryLength && n <= r.cfg.MaxQueryLength
}

// Resolve returns nil when the query is out of bounds. Otherwise it returns a fresh Result;
// lookup failures are logged and leave their category empty.
func (r *Resolver) Resolve(ctx context.Context, companyID, rawQuery string) *Result {
	if companyID == "" || !r.InBounds(rawQuery) {
		return nil
	}

	query := strings.TrimSpace(rawQuery)
	res := newResult()

	if keyword, field, ok := strings.Cut(query, keywordSeparator); ok {
		fn, known := keywords[Keyword(strings.ToLower(strings.TrimSpace(keyword)))]
		if !known {
			r.logger.DebugContext(ctx, "search: unknown keyword", "company_id", companyID, "keyword", keyword)
			return res
		}
		if err := fn(ctx, r, companyID, field, res); err != nil {
			r.logger.ErrorContext(ctx, "search: keyword lookup failed",
				"company_id", companyID, "keyword", keyword, "error", err)
			return newResult()
		}
		return res
	}

	r.searchAll(ctx, companyID, query, res)
	return res
}

// searchAll runs the three category lookups concurrently. Each goroutine writes only its
// own slice and never returns an error, so one failed category cannot cancel the others.
func (r *Resolver) searchAll(ctx context.Context, companyID, term string, res *Result) {
	g, gctx := errgroup.WithContext(ctx)
	limit := r.cfg.ResultLimit

	g.Go(func() error {
		hits, err := r.repo.AccountsByNameOrUniqueID(gctx, companyID, term, limit)
		if err != nil {
			r.logFailure(ctx, "accounts", companyID, err)
			return nil
		}
		res.Accounts = orEmpty(hits)
		return nil
	})
	g.Go(func() error {
		hits, err := r.repo.SaleInvoicesByCustomer(gctx, companyID, term, limit)
		if err != nil {
			r.logFailure(ctx, "sale_invoices", companyID, err)
			return nil
		}
		res.SaleInvoices = decorateInvoices(hits)
		return nil
	})
	g.Go(func() error {
		hits, err := r.repo.PurchaseBillsByNumberOrPayee(gctx, companyID, term, limit)
		if err != nil {
			r.logFailure(ctx, "purchase_bills", companyID, err)
			return nil
		}
		res.PurchaseBills = decorateBills(hits)
		return nil
	})

	_ = g.Wait()
}

func (r *Resolver) logFailure(ctx context.Context, category, companyID string, err error) {
	r.logger.ErrorContext(ctx, "search: lookup failed", "category", category, "company_id", companyID, "error", err)
}

func orEmpty(hits []AccountHit) []AccountHit {
	if hits == nil {
		return []AccountHit{}
	}
	return hits
}

func decorateInvoices(hits []SaleInvoiceHit) []SaleInvoiceHit {
	if hits == nil {
		return []SaleInvoiceHit{}
	}
	for i := range hits {
		hits[i].Status = status.TransactionOrUnknown(hits[i].TransactionStatusKey)
	}
	return hits
}

func decorateBills(hits []PurchaseBillHit) []PurchaseBillHit {
	if hits == nil {
		return []PurchaseBillHit{}
	}
	for i := range hits {
		hits[i].Status = status.TransactionOrUnknown(hits[i].TransactionStatusKey)
	}
	return hits
}
