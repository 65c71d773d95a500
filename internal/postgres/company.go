package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vikasavn/dukaan/internal/domain"
)

// CompanyService implements domain.CompanyService using PostgreSQL.
type CompanyService struct {
	q *Queries
}

// Compile-time check that CompanyService implements domain.CompanyService.
var _ domain.CompanyService = (*CompanyService)(nil)

// NewCompanyService creates a new PostgreSQL-backed company service.
func NewCompanyService(q *Queries) *CompanyService {
	return &CompanyService{q: q}
}

// GetCompany retrieves a company by ID.
func (s *CompanyService) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := s.q.GetCompany(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCompanyNotFound
		}
		return nil, domain.Internal(err, "company.get", "failed to get company")
	}
	return company, nil
}

// ListCompanies returns all active companies for an owner.
func (s *CompanyService) ListCompanies(ctx context.Context, ownerID int64) ([]domain.Company, error) {
	companies, err := s.q.ListCompaniesByOwner(ctx, ownerID)
	if err != nil {
		return nil, domain.Internal(err, "company.list", "failed to list companies")
	}
	return companies, nil
}

// CreateCompany creates a company.
func (s *CompanyService) CreateCompany(ctx context.Context, params domain.CreateCompanyParams) (*domain.Company, error) {
	if params.Name == "" {
		return nil, domain.NewValidationError("company.create", "name", "name is required")
	}
	if params.GSTIN == "" {
		return nil, domain.NewValidationError("company.create", "gstin", "gstin is required")
	}

	company, err := s.q.InsertCompany(ctx, params)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrDuplicateGSTIN
		}
		return nil, domain.Internal(err, "company.create", "failed to create company")
	}
	return company, nil
}

const companyColumns = `id, name, description, address, city, state, pincode, phone, email,
	gstin, pan, state_code, bank_name, bank_account_number, bank_ifsc, bank_branch,
	owner_id, is_active, created_at, updated_at`

func scanCompany(row pgx.Row) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(
		&c.ID, &c.Name, &c.Description, &c.Address, &c.City, &c.State, &c.Pincode,
		&c.Phone, &c.Email, &c.GSTIN, &c.PAN, &c.StateCode,
		&c.BankName, &c.BankAccountNumber, &c.BankIFSC, &c.BankBranch,
		&c.OwnerID, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetCompany fetches one company row.
func (q *Queries) GetCompany(ctx context.Context, id int64) (*domain.Company, error) {
	row := q.db.QueryRow(ctx, `SELECT `+companyColumns+` FROM companies WHERE id = $1`, id)
	return scanCompany(row)
}

// ListCompaniesByOwner fetches all active companies owned by a user.
func (q *Queries) ListCompaniesByOwner(ctx context.Context, ownerID int64) ([]domain.Company, error) {
	rows, err := q.db.Query(ctx, `
		SELECT `+companyColumns+`
		FROM companies
		WHERE owner_id = $1 AND is_active
		ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []domain.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, *c)
	}
	return companies, rows.Err()
}

// InsertCompany creates a company row.
func (q *Queries) InsertCompany(ctx context.Context, params domain.CreateCompanyParams) (*domain.Company, error) {
	row := q.db.QueryRow(ctx, `
		INSERT INTO companies (name, description, address, city, state, pincode, phone, email,
			gstin, pan, state_code, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+companyColumns,
		params.Name, params.Description, params.Address, params.City, params.State,
		params.Pincode, params.Phone, params.Email, params.GSTIN, params.PAN,
		params.StateCode, params.OwnerID,
	)
	return scanCompany(row)
}

// GetUser fetches an operator account with its invoice defaults.
func (q *Queries) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	var u domain.User
	err := q.db.QueryRow(ctx, `
		SELECT id, email, first_name, last_name, phone, role,
			default_tax_rate, default_payment_terms, terms_and_conditions,
			invoice_number_prefix, invoice_number_separator,
			invoice_sequence_padding, invoice_reset_frequency,
			is_active, created_at, updated_at
		FROM users WHERE id = $1`, id).Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &u.Role,
		&u.DefaultTaxRate, &u.DefaultPaymentTerms, &u.TermsAndConditions,
		&u.Numbering.Prefix, &u.Numbering.Separator,
		&u.Numbering.SequencePadding, &u.Numbering.ResetFrequency,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("user.get", "user", strconv.FormatInt(id, 10))
		}
		return nil, err
	}
	return &u, nil
}
