package store

import (
	"context"
	"fmt"
)

// schema is applied idempotently at startup. Flat columns rather than one
// jsonb blob so the query path can index and filter without extraction.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id                 uuid PRIMARY KEY DEFAULT gen_random_uuid(),
	niche              text NOT NULL,
	source             text NOT NULL,
	source_id          text NOT NULL,
	scraped_at         timestamptz NOT NULL DEFAULT now(),
	status             text NOT NULL DEFAULT 'active',
	fingerprint        text NOT NULL,
	tags               jsonb NOT NULL DEFAULT '[]',

	title              text NOT NULL,
	description        text,
	date_posted        text,
	valid_through      text,
	employment_type    text,
	org_name           text NOT NULL,
	org_same_as        text,
	org_logo           text,
	location_address   text,
	location_postal    text,
	location_region    text,
	location_country   text,
	job_location_type  text,
	salary_currency    text,
	salary_min         double precision,
	salary_max         double precision,
	salary_unit        text,
	apply_url          text NOT NULL,
	skills             jsonb NOT NULL DEFAULT '[]',
	industry           text,

	fts tsvector GENERATED ALWAYS AS (
		to_tsvector('english',
			coalesce(title, '') || ' ' || coalesce(description, '') || ' ' || coalesce(org_name, ''))
	) STORED,

	UNIQUE (source, source_id)
);

CREATE INDEX IF NOT EXISTS jobs_niche_status_idx ON jobs (niche, status);
CREATE INDEX IF NOT EXISTS jobs_fingerprint_idx ON jobs (fingerprint);
CREATE INDEX IF NOT EXISTS jobs_fts_idx ON jobs USING GIN (fts);
CREATE INDEX IF NOT EXISTS jobs_tags_idx ON jobs USING GIN (tags);
`

// Migrate creates the jobs table and its indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
