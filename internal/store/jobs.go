package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/nichejobs/internal/types"
)

const uniqueViolation = "23505"

// jobColumns is the scan order used by every SELECT in this file.
const jobColumns = `id, niche, source, source_id, scraped_at, status, fingerprint, tags,
	title, description, date_posted, valid_through, employment_type,
	org_name, org_same_as, org_logo,
	location_address, location_postal, location_region, location_country,
	job_location_type, salary_currency, salary_min, salary_max, salary_unit,
	apply_url, skills, industry`

// InsertJob inserts a job and returns its storage-assigned id. An insert
// that collides on (source, source_id) returns ErrDuplicate: the posting
// was already ingested by an earlier run.
func (s *Store) InsertJob(ctx context.Context, job *types.Job) (string, error) {
	var locAddress, locPostal, locRegion, locCountry *string
	if job.JobLocation != nil {
		locAddress = job.JobLocation.Address
		locPostal = job.JobLocation.PostalCode
		locRegion = job.JobLocation.AddressRegion
		locCountry = job.JobLocation.AddressCountry
	}
	var salCurrency, salUnit *string
	var salMin, salMax *float64
	if job.BaseSalary != nil {
		salCurrency = &job.BaseSalary.Currency
		salMin = job.BaseSalary.MinValue
		salMax = job.BaseSalary.MaxValue
		unit := string(job.BaseSalary.UnitText)
		salUnit = &unit
	}

	var id string
	err := s.pool.QueryRow(ctx,
		`INSERT INTO jobs (
			niche, source, source_id, status, fingerprint, tags,
			title, description, date_posted, valid_through, employment_type,
			org_name, org_same_as, org_logo,
			location_address, location_postal, location_region, location_country,
			job_location_type, salary_currency, salary_min, salary_max, salary_unit,
			apply_url, skills, industry
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11,
			$12, $13, $14,
			$15, $16, $17, $18,
			$19, $20, $21, $22, $23,
			$24, $25, $26
		) RETURNING id`,
		job.Niche, job.Source, job.SourceID, job.Status, job.Fingerprint, job.Tags,
		job.Title, job.Description, job.DatePosted, job.ValidThrough, job.EmploymentType,
		job.HiringOrganization.Name, job.HiringOrganization.SameAs, job.HiringOrganization.Logo,
		locAddress, locPostal, locRegion, locCountry,
		job.JobLocationType, salCurrency, salMin, salMax, salUnit,
		job.ApplyURL, job.Skills, job.Industry,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return "", ErrDuplicate
		}
		return "", fmt.Errorf("failed to insert job %s/%s: %w", job.Source, job.SourceID, err)
	}
	return id, nil
}

// Filters narrow a job listing query. Zero values mean "no constraint".
type Filters struct {
	Niche  string
	Status types.JobStatus
	// Query is matched against title, description, and organization name
	// with websearch semantics ("grant manager", "remote -intern").
	Query  string
	Tags   []string
	Remote *bool
	Limit  int
	Offset int
}

// DefaultLimit and MaxLimit bound a page of results.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// buildListQuery renders the WHERE clause for a filter set. Split out so
// the SQL assembly is testable without a database.
func buildListQuery(f Filters) (string, []any) {
	var clauses []string
	var args []any

	add := func(clause string, arg any) {
		args = append(args, arg)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if f.Niche != "" {
		add("niche = $%d", f.Niche)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Query != "" {
		add("fts @@ websearch_to_tsquery('english', $%d)", f.Query)
	}
	if len(f.Tags) > 0 {
		add("tags @> $%d::jsonb", f.Tags)
	}
	if f.Remote != nil {
		if *f.Remote {
			add("job_location_type = $%d", types.Telecommute)
		} else {
			add("(job_location_type IS DISTINCT FROM $%d)", types.Telecommute)
		}
	}

	if len(clauses) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

// ListJobs returns one page of jobs matching f plus the exact total count
// of matches. Results are newest-posted first; jobs with no posting date
// sort last.
func (s *Store) ListJobs(ctx context.Context, f Filters) ([]types.Job, int, error) {
	if f.Limit <= 0 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	where, args := buildListQuery(f)

	var total int
	if err := s.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT count(*) FROM jobs %s", where), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM jobs %s
		 ORDER BY date_posted DESC NULLS LAST, scraped_at DESC
		 LIMIT $%d OFFSET $%d`,
		jobColumns, where, len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []types.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read jobs: %w", err)
	}
	return jobs, total, nil
}

// GetJob returns one job by id, or ErrNotFound.
func (s *Store) GetJob(ctx context.Context, id string) (*types.Job, error) {
	row := s.pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM jobs WHERE id = $1", jobColumns), id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// ExpireOldJobs flips active jobs whose application deadline has passed to
// expired and returns how many were flipped. Deadlines are stored as ISO
// 8601 strings, which order correctly under text comparison.
func (s *Store) ExpireOldJobs(ctx context.Context, cutoff string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = 'expired'
		 WHERE status = 'active' AND valid_through IS NOT NULL AND valid_through < $1`,
		cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to expire jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanJob(row pgx.Row) (*types.Job, error) {
	var job types.Job
	var locAddress, locPostal, locRegion, locCountry *string
	var salCurrency, salUnit *string
	var salMin, salMax *float64

	err := row.Scan(
		&job.ID, &job.Niche, &job.Source, &job.SourceID, &job.ScrapedAt,
		&job.Status, &job.Fingerprint, &job.Tags,
		&job.Title, &job.Description, &job.DatePosted, &job.ValidThrough, &job.EmploymentType,
		&job.HiringOrganization.Name, &job.HiringOrganization.SameAs, &job.HiringOrganization.Logo,
		&locAddress, &locPostal, &locRegion, &locCountry,
		&job.JobLocationType, &salCurrency, &salMin, &salMax, &salUnit,
		&job.ApplyURL, &job.Skills, &job.Industry,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}

	loc := &types.Location{
		Address:        locAddress,
		PostalCode:     locPostal,
		AddressRegion:  locRegion,
		AddressCountry: locCountry,
	}
	if !loc.Empty() {
		job.JobLocation = loc
	}
	if salCurrency != nil {
		sal := &types.Salary{Currency: *salCurrency, MinValue: salMin, MaxValue: salMax}
		if salUnit != nil {
			sal.UnitText = types.SalaryUnit(*salUnit)
		}
		job.BaseSalary = sal
	}
	return &job, nil
}
