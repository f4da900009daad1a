// internal/store/postgres.go

// Package store provides the data-access implementations behind the
// ranking engine's collaborator interfaces: a Postgres store for
// profiles, content and interactions, and an Elasticsearch-backed
// content store for search-indexed pools.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/lib/pq"

	apperrors "talent-recommender/internal/common/errors"
	"talent-recommender/internal/common/logger"
	"talent-recommender/internal/models"
)

// PostgresStore reads profiles, content pools and interaction history
// from PostgreSQL. It implements ranker.ProfileStore,
// ranker.ContentStore and ranker.InteractionStore.
type PostgresStore struct {
	db  *sql.DB
	log logger.Logger
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &PostgresStore{
		db:  db,
		log: log.WithFields(map[string]interface{}{"component": "postgres_store"}),
	}
}

// GetProfile loads one candidate profile. Absence maps to the
// PROFILE_NOT_FOUND error so callers can route to cold start.
func (s *PostgresStore) GetProfile(ctx context.Context, profileID string) (*models.CandidateProfile, error) {
	const query = `
		SELECT id, skills, interests, COALESCE(location, ''), COALESCE(graduation_year, 0)
		FROM student_profiles
		WHERE id = $1`

	var p models.CandidateProfile
	var skills, interests pq.StringArray
	err := s.db.QueryRowContext(ctx, query, profileID).Scan(
		&p.ID, &skills, &interests, &p.Location, &p.GraduationYear,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewProfileNotFoundError(profileID)
	}
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
	}
	p.Skills = skills
	p.Interests = interests
	return &p, nil
}

// ListRecentSources returns source IDs from the candidate's most
// recent applications and saves, newest first.
func (s *PostgresStore) ListRecentSources(ctx context.Context, profileID string) ([]string, error) {
	const query = `
		SELECT source_id
		FROM interactions
		WHERE profile_id = $1 AND action IN ('apply', 'save')
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, profileID, models.MaxRecentSources)
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
	}
	defer rows.Close()

	var sources []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
		}
		sources = append(sources, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
	}
	return sources, nil
}

// ListCandidates loads the bounded candidate pool for one content kind.
func (s *PostgresStore) ListCandidates(ctx context.Context, kind models.ContentKind, limit int) ([]models.ContentItem, error) {
	query, ok := poolQueries[kind]
	if !ok {
		return nil, apperrors.NewUnknownContentTypeError(string(kind))
	}

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
	}
	defer rows.Close()

	var items []models.ContentItem
	for rows.Next() {
		item, err := scanContentRow(rows, kind)
		if err != nil {
			return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
	}
	return items, nil
}

// GetContent loads one content item by ID.
func (s *PostgresStore) GetContent(ctx context.Context, kind models.ContentKind, contentID string) (*models.ContentItem, error) {
	query, ok := singleQueries[kind]
	if !ok {
		return nil, apperrors.NewUnknownContentTypeError(string(kind))
	}

	rows, err := s.db.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
		}
		return nil, apperrors.NewContentNotFoundError(string(kind), contentID)
	}
	item, err := scanContentRow(rows, kind)
	if err != nil {
		return nil, apperrors.NewCollaboratorUnavailableError("postgres", err)
	}
	return &item, nil
}

// All three content queries project onto the same column shape so one
// scanner serves every kind. Missing optional fields come back as
// defaults rather than NULLs.
const contentColumns = `
	id, source_id, COALESCE(title, ''), requirements, COALESCE(description, ''),
	COALESCE(views, 0), COALESCE(likes, 0), COALESCE(applications, 0), COALESCE(saves, 0),
	created_at, COALESCE(location, ''), COALESCE(targeted_academic_year, 0), COALESCE(verified, false)`

var poolQueries = map[models.ContentKind]string{
	models.KindJob: `
		SELECT ` + contentColumns + `
		FROM jobs
		WHERE status = 'active'
		ORDER BY created_at DESC
		LIMIT $1`,
	models.KindPost: `
		SELECT ` + contentColumns + `
		FROM posts
		WHERE status = 'active'
		ORDER BY created_at DESC
		LIMIT $1`,
	models.KindStartup: `
		SELECT ` + contentColumns + `
		FROM startups
		WHERE status = 'active'
		ORDER BY created_at DESC
		LIMIT $1`,
}

var singleQueries = map[models.ContentKind]string{
	models.KindJob: `
		SELECT ` + contentColumns + `
		FROM jobs
		WHERE id = $1`,
	models.KindPost: `
		SELECT ` + contentColumns + `
		FROM posts
		WHERE id = $1`,
	models.KindStartup: `
		SELECT ` + contentColumns + `
		FROM startups
		WHERE id = $1`,
}

func scanContentRow(rows *sql.Rows, kind models.ContentKind) (models.ContentItem, error) {
	var (
		item         models.ContentItem
		requirements pq.StringArray
		createdAt    time.Time
	)
	err := rows.Scan(
		&item.ID, &item.SourceID, &item.Title, &requirements, &item.Description,
		&item.Engagement.Views, &item.Engagement.Likes,
		&item.Engagement.Applications, &item.Engagement.Saves,
		&createdAt, &item.Location, &item.TargetedAcademicYear, &item.Verified,
	)
	if err != nil {
		return models.ContentItem{}, err
	}
	item.Kind = kind
	item.Requirements = requirements
	item.CreatedAt = createdAt
	return item, nil
}
