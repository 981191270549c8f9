package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/identity-cache/api/internal/entity"
)

var (
	// ErrProfileNotFound is returned when no profile matches the lookup key.
	ErrProfileNotFound = errors.New("profile not found")
	// ErrDuplicateKey is returned when an insert or update collides with a
	// unique index on a canonical key.
	ErrDuplicateKey = errors.New("canonical key already in use")
	// ErrUnknownKey is returned for lookup keys outside the canonical set.
	ErrUnknownKey = errors.New("unknown canonical key")
)

// Canonical key names shared by lookups and resolution.
const (
	ProfileKeyEmail        = "email"
	ProfileKeyLinkedInURL  = "linkedin_url"
	ProfileKeyLinkedInSlug = "linkedin_slug"
	ProfileKeyPhone        = "phone_e164"
)

// profileKeyColumns whitelists lookup keys; values are the actual column
// names so key input can never reach SQL verbatim.
var profileKeyColumns = map[string]string{
	ProfileKeyEmail:        "email",
	ProfileKeyLinkedInURL:  "linkedin_url",
	ProfileKeyLinkedInSlug: "linkedin_slug",
	ProfileKeyPhone:        "phone_e164",
}

// ProfileUpdate stages fill-in changes for an existing profile. Nil fields
// are left untouched.
type ProfileUpdate struct {
	Email        *string
	LinkedInSlug *string
	LinkedInURL  *string
	PhoneE164    *string
	Data         map[string]any
}

// IsEmpty reports whether the update stages no change at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Email == nil && u.LinkedInSlug == nil && u.LinkedInURL == nil && u.PhoneE164 == nil && u.Data == nil
}

// ProfilesRepository describes persistence operations for profiles.
type ProfilesRepository interface {
	FindByKey(ctx context.Context, key, value string) (*entity.Profile, error)
	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, id uuid.UUID, update ProfileUpdate) error
}

// PGXProfilesRepository implements ProfilesRepository using pgx.
type PGXProfilesRepository struct {
	pool pgxPool
}

// NewPGXProfilesRepository wires a pgx backed repository.
func NewPGXProfilesRepository(pool *pgxpool.Pool) *PGXProfilesRepository {
	return &PGXProfilesRepository{pool: pool}
}

const profileColumns = `id, email, linkedin_slug, linkedin_url, phone_e164, data, created_at, updated_at`

// FindByKey fetches a profile by an exact match on one canonical key.
func (r *PGXProfilesRepository) FindByKey(ctx context.Context, key, value string) (*entity.Profile, error) {
	column, ok := profileKeyColumns[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}

	query := fmt.Sprintf(`SELECT %s FROM profiles WHERE %s = $1`, profileColumns, column)
	row := r.pool.QueryRow(ctx, query, value)

	profile, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("query profile by %s: %w", key, err)
	}
	return profile, nil
}

// Create inserts a new profile and fills in the generated id and timestamps.
// Unique-index collisions surface as ErrDuplicateKey so callers can treat a
// lost creation race distinctly from generic failures.
func (r *PGXProfilesRepository) Create(ctx context.Context, profile *entity.Profile) error {
	if profile == nil {
		return fmt.Errorf("profile payload is nil")
	}

	dataJSON, err := marshalData(profile.Data)
	if err != nil {
		return fmt.Errorf("marshal profile data: %w", err)
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO profiles (email, linkedin_slug, linkedin_url, phone_e164, data)
        VALUES ($1, $2, $3, $4, $5::jsonb)
        RETURNING id, created_at, updated_at
    `, profile.Email, profile.LinkedInSlug, profile.LinkedInURL, profile.PhoneE164, dataJSON)

	if err := row.Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// Update applies staged fill-ins and the merged data document to an existing
// profile.
func (r *PGXProfilesRepository) Update(ctx context.Context, id uuid.UUID, update ProfileUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	var (
		sets []string
		args []any
		idx  = 1
	)

	appendSet := func(column string, value any) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, idx))
		args = append(args, value)
		idx++
	}

	if update.Email != nil {
		appendSet("email", *update.Email)
	}
	if update.LinkedInSlug != nil {
		appendSet("linkedin_slug", *update.LinkedInSlug)
	}
	if update.LinkedInURL != nil {
		appendSet("linkedin_url", *update.LinkedInURL)
	}
	if update.PhoneE164 != nil {
		appendSet("phone_e164", *update.PhoneE164)
	}
	if update.Data != nil {
		dataJSON, err := marshalData(update.Data)
		if err != nil {
			return fmt.Errorf("marshal profile data: %w", err)
		}
		sets = append(sets, fmt.Sprintf("data = $%d::jsonb", idx))
		args = append(args, dataJSON)
		idx++
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE profiles SET %s WHERE id = $%d`, strings.Join(sets, ", "), idx)
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func scanProfile(row pgx.Row) (*entity.Profile, error) {
	var (
		profile  entity.Profile
		dataJSON []byte
	)
	err := row.Scan(
		&profile.ID,
		&profile.Email,
		&profile.LinkedInSlug,
		&profile.LinkedInURL,
		&profile.PhoneE164,
		&dataJSON,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalData(dataJSON, &profile.Data); err != nil {
		return nil, fmt.Errorf("unmarshal profile data: %w", err)
	}
	return &profile, nil
}

func marshalData(data map[string]any) (string, error) {
	if data == nil {
		data = map[string]any{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalData(raw []byte, target *map[string]any) error {
	if len(raw) == 0 {
		*target = map[string]any{}
		return nil
	}
	return json.Unmarshal(raw, target)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
