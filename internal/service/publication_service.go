package service

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/utepsa-eventos/eventos-api/internal/dto"
	"github.com/utepsa-eventos/eventos-api/internal/models"
	"github.com/utepsa-eventos/eventos-api/pkg/config"
	appErrors "github.com/utepsa-eventos/eventos-api/pkg/errors"
	"github.com/utepsa-eventos/eventos-api/pkg/storage"
)

// PublicationRepository abstracts publication persistence.
type PublicationRepository interface {
	FindByShareCode(ctx context.Context, code string) (*models.Publication, error)
	ListByEvent(ctx context.Context, eventID string) ([]models.Publication, error)
}

// PublicationService serves the public micro-site views of shared
// publications. Images are exposed through short-lived signed URLs.
type PublicationService struct {
	publications PublicationRepository
	store        *storage.LocalStorage
	signer       *storage.SignedURLSigner
	logger       *zap.Logger
}

// NewPublicationService constructs the service.
func NewPublicationService(publications PublicationRepository, store *storage.LocalStorage, cfg config.PublicationsConfig, logger *zap.Logger) *PublicationService {
	return &PublicationService{
		publications: publications,
		store:        store,
		signer:       storage.NewSignedURLSigner(cfg.SignedURLSecret, cfg.SignedURLTTL),
		logger:       logger,
	}
}

// GetByShareCode resolves a publication from its public share code.
func (s *PublicationService) GetByShareCode(ctx context.Context, code string) (*dto.PublicationResponse, error) {
	pub, err := s.publications.FindByShareCode(ctx, code)
	if err != nil {
		return nil, notFoundOrInternal(err, "publication not found", "failed to load publication")
	}
	return s.toResponse(pub), nil
}

// ListByEvent returns an event's publications, newest first. An event with
// no publications yields an empty array.
func (s *PublicationService) ListByEvent(ctx context.Context, eventID string) ([]dto.PublicationResponse, error) {
	pubs, err := s.publications.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list publications")
	}
	out := make([]dto.PublicationResponse, 0, len(pubs))
	for i := range pubs {
		out = append(out, *s.toResponse(&pubs[i]))
	}
	return out, nil
}

// OpenImage validates a signed token and opens the stored publication image.
func (s *PublicationService) OpenImage(ctx context.Context, token string) (*os.File, error) {
	pubID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired image token")
	}
	if pubID == "" || relPath == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid image token")
	}
	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "image not found")
	}
	return file, nil
}

func (s *PublicationService) toResponse(pub *models.Publication) *dto.PublicationResponse {
	resp := &dto.PublicationResponse{
		ShareCode:   pub.ShareCode,
		EventID:     pub.EventID,
		Title:       pub.Title,
		Body:        pub.Body,
		PublishedAt: pub.PublishedAt,
	}
	if pub.ImagePath != nil && *pub.ImagePath != "" {
		token, _, err := s.signer.Generate(pub.ID, *pub.ImagePath)
		if err != nil {
			s.logger.Warn("failed to sign publication image URL", zap.String("publication_id", pub.ID), zap.Error(err))
		} else {
			url := fmt.Sprintf("/publications/images/%s", token)
			resp.ImageURL = &url
		}
	}
	return resp
}
