package postgres

import (
	"context"
	"strings"

	"github.com/frahmantamala/tenant-ledger/internal/search"
	"github.com/jmoiron/sqlx"
)

// Queries are written with ? placeholders and rebound for the connection's driver.
// Every statement filters on company_id as its first argument.
const (
	accountColumns = `a.id, a.name, a.unique_id, a.email, a.balance, a.created_at`

	accountsByName = `SELECT ` + accountColumns + `
		FROM accounts a
		WHERE a.company_id = ? AND LOWER(a.name) LIKE ? ESCAPE '\'
		ORDER BY a.created_at ASC
		LIMIT ?`

	accountsByUniqueID = `SELECT ` + accountColumns + `
		FROM accounts a
		WHERE a.company_id = ? AND LOWER(a.unique_id) LIKE ? ESCAPE '\'
		ORDER BY a.created_at ASC
		LIMIT ?`

	accountsByNameOrUniqueID = `SELECT ` + accountColumns + `
		FROM accounts a
		WHERE a.company_id = ?
		  AND (LOWER(a.name) LIKE ? ESCAPE '\' OR LOWER(a.unique_id) LIKE ? ESCAPE '\')
		ORDER BY a.created_at ASC
		LIMIT ?`

	saleInvoiceColumns = `s.id, s.invoice_number, s.issued_to_id, a.name AS issued_to_name,
		s.total_amount, s.transaction_status_key, s.date_issued`

	saleInvoicesByNumber = `SELECT ` + saleInvoiceColumns + `
		FROM sale_invoices s
		JOIN accounts a ON a.id = s.issued_to_id AND a.company_id = s.company_id
		WHERE s.company_id = ? AND s.invoice_number = ?
		LIMIT ?`

	saleInvoicesByCustomer = `SELECT ` + saleInvoiceColumns + `
		FROM sale_invoices s
		JOIN accounts a ON a.id = s.issued_to_id AND a.company_id = s.company_id
		WHERE s.company_id = ?
		  AND (LOWER(a.name) LIKE ? ESCAPE '\' OR LOWER(a.unique_id) LIKE ? ESCAPE '\')
		ORDER BY s.invoice_number DESC
		LIMIT ?`

	purchaseBillColumns = `p.id, p.bill_number, p.paid_to_account_id, a.name AS paid_to_name,
		p.total_amount, p.transaction_status_key, p.date_received`

	purchaseBillsByNumber = `SELECT ` + purchaseBillColumns + `
		FROM purchase_bills p
		JOIN accounts a ON a.id = p.paid_to_account_id AND a.company_id = p.company_id
		WHERE p.company_id = ? AND LOWER(p.bill_number) LIKE ? ESCAPE '\'
		ORDER BY p.date_received DESC
		LIMIT ?`

	purchaseBillsByNumberOrPayee = `SELECT ` + purchaseBillColumns + `
		FROM purchase_bills p
		JOIN accounts a ON a.id = p.paid_to_account_id AND a.company_id = p.company_id
		WHERE p.company_id = ?
		  AND (LOWER(p.bill_number) LIKE ? ESCAPE '\' OR LOWER(a.name) LIKE ? ESCAPE '\')
		ORDER BY p.date_received DESC
		LIMIT ?`
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a lower-cased LIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) search.RepositoryAPI {
	return &Repository{db: db}
}

func (r *Repository) AccountsByName(ctx context.Context, companyID, term string, limit int) ([]search.AccountHit, error) {
	var hits []search.AccountHit
	err := r.db.SelectContext(ctx, &hits, r.db.Rebind(accountsByName), companyID, containsPattern(term), limit)
	return hits, err
}

func (r *Repository) AccountsByUniqueID(ctx context.Context, companyID, term string, limit int) ([]search.AccountHit, error) {
	var hits []search.AccountHit
	err := r.db.SelectContext(ctx, &hits, r.db.Rebind(accountsByUniqueID), companyID, containsPattern(term), limit)
	return hits, err
}

func (r *Repository) AccountsByNameOrUniqueID(ctx context.Context, companyID, term string, limit int) ([]search.AccountHit, error) {
	var hits []search.AccountHit
	pattern := containsPattern(term)
	err := r.db.SelectContext(ctx, &hits, r.db.Rebind(accountsByNameOrUniqueID), companyID, pattern, pattern, limit)
	return hits, err
}

func (r *Repository) SaleInvoicesByNumber(ctx context.Context, companyID string, number int64, limit int) ([]search.SaleInvoiceHit, error) {
	var hits []search.SaleInvoiceHit
	err := r.db.SelectContext(ctx, &hits, r.db.Rebind(saleInvoicesByNumber), companyID, number, limit)
	return hits, err
}

func (r *Repository) SaleInvoicesByCustomer(ctx context.Context, companyID, term string, limit int) ([]search.SaleInvoiceHit, error) {
	var hits []search.SaleInvoiceHit
	pattern := containsPattern(term)
	err := r.db.SelectContext(ctx, &hits, r.db.Rebind(saleInvoicesByCustomer), companyID, pattern, pattern, limit)
	return hits, err
}

func (r *Repository) PurchaseBillsByNumber(ctx context.Context, companyID, term string, limit int) ([]search.PurchaseBillHit, error) {
	var hits []search.PurchaseBillHit
	err := r.db.SelectContext(ctx, &hits, r.db.Rebind(purchaseBillsByNumber), companyID, containsPattern(term), limit)
	return hits, err
}

func (r *Repository) PurchaseBillsByNumberOrPayee(ctx context.Context, companyID, term string, limit int) ([]search.PurchaseBillHit, error) {
	var hits []search.PurchaseBillHit
	pattern := containsPattern(term)
	err := r.db.SelectContext(ctx, &hits, r.db.Rebind(purchaseBillsByNumberOrPayee), companyID, pattern, pattern, limit)
	return hits, err
}
