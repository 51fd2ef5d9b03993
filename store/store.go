// Package store connects to the data store and manages saved reviews and
// extraction history
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/models"
)

const (
	reviewBucket     = "reviews"
	extractionBucket = "extractions"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = &apperr.Error{
		Message: "no saved review for session %q",
	}

	errAlreadyRunning = &apperr.Error{
		Message: "is setsplit already running? Only one instance can use the database at a time",
	}
)

var _ DB = (*Client)(nil)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
}

func (c *Client) SaveReview(r *models.Review) error {
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now()
	}

	value, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(reviewBucket)).Put([]byte(r.Session), value)
	})
}

func (c *Client) GetReview(sessionName string) (*models.Review, error) {
	var r *models.Review

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(reviewBucket)).Get([]byte(sessionName))
		if len(b) == 0 {
			return nil
		}

		r = &models.Review{}

		return json.Unmarshal(b, r)
	})
	if err != nil {
		return nil, err
	}

	if r == nil {
		return nil, ErrNotFound.Fmt(sessionName)
	}

	return r, nil
}

func (c *Client) DeleteReview(sessionName string) error {
	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(reviewBucket)).Delete([]byte(sessionName))
	})
}

func (c *Client) SaveExtractions(extractions []models.Extraction) error {
	return c.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(extractionBucket))

		for i := range extractions {
			e := extractions[i]

			if e.CreatedAt.IsZero() {
				e.CreatedAt = time.Now()
			}

			value, err := json.Marshal(e)
			if err != nil {
				return err
			}

			err = bucket.Put([]byte(e.Dest), value)
			if err != nil {
				return err
			}
		}

		return nil
	})
}

func (c *Client) GetExtractions(
	sessionName string,
) ([]models.Extraction, error) {
	var extractions []models.Extraction

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(extractionBucket)).ForEach(func(_, v []byte) error {
			var e models.Extraction

			err := json.Unmarshal(v, &e)
			if err != nil {
				return err
			}

			if sessionName == "" || e.Session == sessionName {
				extractions = append(extractions, e)
			}

			return nil
		})
	})

	return extractions, err
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAlreadyRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}

	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{reviewBucket, extractionBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	return &Client{
		db,
	}, nil
}
