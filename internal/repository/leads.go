package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/octobees/leadsite/api/internal/dto"
	"github.com/octobees/leadsite/api/internal/entity"
)

// ErrLeadNotFound is returned when no lead matches the lookup criteria.
var ErrLeadNotFound = errors.New("lead not found")

// NewLead carries the validated, normalized fields for an insert.
type NewLead struct {
	Name        string
	Email       string
	Phone       *string
	Company     *string
	Source      *string
	Message     *string
	UTMSource   string
	UTMMedium   *string
	UTMCampaign *string
}

// LeadsRepository describes persistence operations for leads.
type LeadsRepository interface {
	Insert(ctx context.Context, lead NewLead) (int64, error)
	List(ctx context.Context, filter dto.ListFilter) ([]entity.Lead, int, error)
	FindByID(ctx context.Context, id int64) (*entity.Lead, error)
	UpdateStatus(ctx context.Context, id int64, status entity.Status) error
	CountByStatus(ctx context.Context) (map[entity.Status]int, error)
	CountBySource(ctx context.Context) (map[string]int, error)
}

// pgxPool is the subset of pgxpool.Pool the repository needs; tests provide stubs.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ pgxPool = (*pgxpool.Pool)(nil)

// PGXLeadsRepository implements LeadsRepository using pgx.
type PGXLeadsRepository struct {
	pool pgxPool
}

// NewPGXLeadsRepository wires a pgx backed repository.
func NewPGXLeadsRepository(pool *pgxpool.Pool) *PGXLeadsRepository {
	return &PGXLeadsRepository{pool: pool}
}

// Insert stores a new lead with status New and returns the generated id.
func (r *PGXLeadsRepository) Insert(ctx context.Context, lead NewLead) (int64, error) {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO leads (name, email, phone, company, source, message, utm_source, utm_medium, utm_campaign)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Company,
		lead.Source,
		lead.Message,
		lead.UTMSource,
		lead.UTMMedium,
		lead.UTMCampaign,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("insert lead: %w", err)
	}
	return id, nil
}

const listColumns = "id, name, email, phone, company, source, status, utm_source, created_at"

// List retrieves one page of leads newest first, plus the exact total count
// of rows matching the filter. Both queries share one set of predicate
// clauses so the pagination metadata can never drift from the page window.
func (r *PGXLeadsRepository) List(ctx context.Context, filter dto.ListFilter) ([]entity.Lead, int, error) {
	var (
		clauses []string
		args    []any
		idx     = 1
	)

	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("status = $%d", idx))
		args = append(args, filter.Status)
		idx++
	}
	if filter.Search != "" {
		pattern := fmt.Sprintf("%%%s%%", filter.Search)
		clauses = append(clauses, fmt.Sprintf("(name ILIKE $%d OR email ILIKE $%d OR company ILIKE $%d)", idx, idx+1, idx+2))
		args = append(args, pattern, pattern, pattern)
		idx += 3
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM leads" + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}
	offset := (page - 1) * pageSize

	pageQuery := fmt.Sprintf(
		"SELECT %s FROM leads%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		listColumns, where, idx, idx+1,
	)
	args = append(args, pageSize, offset)

	rows, err := r.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	leads, err := scanLeads(rows)
	if err != nil {
		return nil, 0, err
	}
	return leads, total, nil
}

// FindByID fetches a single lead including its free-text message.
func (r *PGXLeadsRepository) FindByID(ctx context.Context, id int64) (*entity.Lead, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT id, name, email, phone, company, source, message, status, utm_source, utm_medium, utm_campaign, created_at
        FROM leads WHERE id = $1
    `, id)

	var (
		lead        entity.Lead
		phone       sql.NullString
		company     sql.NullString
		source      sql.NullString
		message     sql.NullString
		utmSource   sql.NullString
		utmMedium   sql.NullString
		utmCampaign sql.NullString
	)
	err := row.Scan(
		&lead.ID,
		&lead.Name,
		&lead.Email,
		&phone,
		&company,
		&source,
		&message,
		&lead.Status,
		&utmSource,
		&utmMedium,
		&utmCampaign,
		&lead.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("query lead by id: %w", err)
	}

	lead.Phone = nullStringToPtr(phone)
	lead.Company = nullStringToPtr(company)
	lead.Source = nullStringToPtr(source)
	lead.Message = nullStringToPtr(message)
	lead.UTMSource = nullStringToPtr(utmSource)
	lead.UTMMedium = nullStringToPtr(utmMedium)
	lead.UTMCampaign = nullStringToPtr(utmCampaign)

	return &lead, nil
}

// UpdateStatus persists a status change for exactly one lead.
func (r *PGXLeadsRepository) UpdateStatus(ctx context.Context, id int64, status entity.Status) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE leads SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// CountByStatus returns lead counts grouped by status. Statuses with no rows
// are absent from the map; the service layer zero-fills them.
func (r *PGXLeadsRepository) CountByStatus(ctx context.Context) (map[entity.Status]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT status, COUNT(*) FROM leads GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("count leads by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.Status]int)
	for rows.Next() {
		var (
			status entity.Status
			count  int
		)
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}
	return counts, nil
}

// CountBySource returns lead counts grouped by stored utm_source. NULL
// sources are reported under the empty string key.
func (r *PGXLeadsRepository) CountBySource(ctx context.Context) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `SELECT COALESCE(utm_source, ''), COUNT(*) FROM leads GROUP BY utm_source`)
	if err != nil {
		return nil, fmt.Errorf("count leads by source: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			source string
			count  int
		)
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("scan source count: %w", err)
		}
		counts[source] += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate source counts: %w", err)
	}
	return counts, nil
}

func scanLeads(rows pgx.Rows) ([]entity.Lead, error) {
	var leads []entity.Lead
	for rows.Next() {
		var (
			lead      entity.Lead
			phone     sql.NullString
			company   sql.NullString
			source    sql.NullString
			utmSource sql.NullString
		)
		err := rows.Scan(
			&lead.ID,
			&lead.Name,
			&lead.Email,
			&phone,
			&company,
			&source,
			&lead.Status,
			&utmSource,
			&lead.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}

		lead.Phone = nullStringToPtr(phone)
		lead.Company = nullStringToPtr(company)
		lead.Source = nullStringToPtr(source)
		lead.UTMSource = nullStringToPtr(utmSource)

		leads = append(leads, lead)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leads: %w", err)
	}
	return leads, nil
}

func nullStringToPtr(value sql.NullString) *string {
	if value.Valid {
		val := value.String
		return &val
	}
	return nil
}
