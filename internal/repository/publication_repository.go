package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/utepsa-eventos/eventos-api/internal/models"
)

// PublicationRepository handles persistence of shared publications.
type PublicationRepository struct {
	db *sqlx.DB
}

// NewPublicationRepository constructs the repository.
func NewPublicationRepository(db *sqlx.DB) *PublicationRepository {
	return &PublicationRepository{db: db}
}

// FindByShareCode resolves a publication from its public share code.
func (r *PublicationRepository) FindByShareCode(ctx context.Context, code string) (*models.Publication, error) {
	const query = `SELECT id, event_id, share_code, title, body, image_path, published_at
        FROM publications WHERE share_code = $1`
	var pub models.Publication
	if err := r.db.GetContext(ctx, &pub, query, code); err != nil {
		return nil, err
	}
	return &pub, nil
}

// ListByEvent returns the publications of an event, newest first.
func (r *PublicationRepository) ListByEvent(ctx context.Context, eventID string) ([]models.Publication, error) {
	const query = `SELECT id, event_id, share_code, title, body, image_path, published_at
        FROM publications WHERE event_id = $1 ORDER BY published_at DESC`
	var pubs []models.Publication
	if err := r.db.SelectContext(ctx, &pubs, query, eventID); err != nil {
		return nil, err
	}
	return pubs, nil
}
