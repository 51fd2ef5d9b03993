package store

import (
	"github.com/ayoisaiah/setsplit/internal/models"
)

// DB is the database storage interface.
type DB interface {
	// SaveReview creates or overwrites the review of a session
	SaveReview(r *models.Review) error
	// GetReview returns the saved review of a session or ErrNotFound
	GetReview(sessionName string) (*models.Review, error)
	// DeleteReview removes the saved review of a session, if any
	DeleteReview(sessionName string) error
	// SaveExtractions records the outcome of cutting tracks. An extraction
	// to a destination that was written before replaces the earlier record
	SaveExtractions(extractions []models.Extraction) error
	// GetExtractions returns the recorded extractions of a session, or of
	// every session if sessionName is empty
	GetExtractions(sessionName string) ([]models.Extraction, error)
	// Close ends the database connection
	Close() error
}
