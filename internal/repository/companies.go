package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/identity-cache/api/internal/entity"
)

// ErrCompanyNotFound is returned when no company matches the lookup key.
var ErrCompanyNotFound = errors.New("company not found")

// Canonical company key names.
const (
	CompanyKeyDomain       = "domain"
	CompanyKeyLinkedInSlug = "linkedin_slug"
)

var companyKeyColumns = map[string]string{
	CompanyKeyDomain:       "domain",
	CompanyKeyLinkedInSlug: "linkedin_slug",
}

// CompanyUpdate stages fill-in changes for an existing company. Nil fields
// are left untouched.
type CompanyUpdate struct {
	Domain       *string
	LinkedInSlug *string
	Data         map[string]any
}

// IsEmpty reports whether the update stages no change at all.
func (u CompanyUpdate) IsEmpty() bool {
	return u.Domain == nil && u.LinkedInSlug == nil && u.Data == nil
}

// CompaniesRepository describes persistence operations for companies.
type CompaniesRepository interface {
	FindByKey(ctx context.Context, key, value string) (*entity.Company, error)
	Create(ctx context.Context, company *entity.Company) error
	Update(ctx context.Context, id uuid.UUID, update CompanyUpdate) error
}

// PGXCompaniesRepository implements CompaniesRepository using pgx.
type PGXCompaniesRepository struct {
	pool pgxPool
}

// NewPGXCompaniesRepository wires a pgx backed repository.
func NewPGXCompaniesRepository(pool *pgxpool.Pool) *PGXCompaniesRepository {
	return &PGXCompaniesRepository{pool: pool}
}

const companyColumns = `id, domain, linkedin_slug, data, created_at, updated_at`

// FindByKey fetches a company by an exact match on one canonical key.
func (r *PGXCompaniesRepository) FindByKey(ctx context.Context, key, value string) (*entity.Company, error) {
	column, ok := companyKeyColumns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	query := fmt.Sprintf(`SELECT %s FROM companies WHERE %s = $1`, companyColumns, column)
	row := r.pool.QueryRow(ctx, query, value)

	company, err := scanCompany(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("query company by %s: %w", key, err)
	}
	return company, nil
}

// Create inserts a new company and fills in the generated id and timestamps.
// Unique-index collisions surface as ErrDuplicateKey.
func (r *PGXCompaniesRepository) Create(ctx context.Context, company *entity.Company) error {
	if company == nil {
		return fmt.Errorf("company payload is nil")
	}

	dataJSON, err := marshalData(company.Data)
	if err != nil {
		return fmt.Errorf("marshal company data: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO companies (domain, linkedin_slug, data)
        VALUES ($1, $2, $3::jsonb)
        RETURNING id, created_at, updated_at
    `, company.Domain, company.LinkedInSlug, dataJSON)

	if err := row.Scan(&company.ID, &company.CreatedAt, &company.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// Update applies staged fill-ins and the merged data document to an existing
// company.
func (r *PGXCompaniesRepository) Update(ctx context.Context, id uuid.UUID, update CompanyUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	var (
		sets []string
		args []any
		idx  = 1
	)

	if update.Domain != nil {
		sets = append(sets, fmt.Sprintf("domain = $%d", idx))
		args = append(args, *update.Domain)
		idx++
	}
	if update.LinkedInSlug != nil {
		sets = append(sets, fmt.Sprintf("linkedin_slug = $%d", idx))
		args = append(args, *update.LinkedInSlug)
		idx++
	}
	if update.Data != nil {
		dataJSON, err := marshalData(update.Data)
		if err != nil {
			return fmt.Errorf("marshal company data: %w", err)
		}
		sets = append(sets, fmt.Sprintf("data = $%d::jsonb", idx))
		args = append(args, dataJSON)
		idx++
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE companies SET %s WHERE id = $%d`, strings.Join(sets, ", "), idx)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("update company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var (
		company  entity.Company
		dataJSON []byte
	)
	err := row.Scan(
		&company.ID,
		&company.Domain,
		&company.LinkedInSlug,
		&dataJSON,
		&company.CreatedAt,
		&company.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalData(dataJSON, &company.Data); err != nil {
		return nil, fmt.Errorf("unmarshal company data: %w", err)
	}
	return &company, nil
}
