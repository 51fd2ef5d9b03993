// Package publish uploads cut tracks to Google Cloud Storage
package publish

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/song"
)

var (
	errNewClient = &apperr.Error{
		Message: "unable to connect to cloud storage",
	}

	errUpload = &apperr.Error{
		Message: "uploading %s to %s failed",
	}
)

// Options configures the storage client.
type Options struct {
	Bucket          string
	Prefix          string
	CredentialsFile string
	// Endpoint overrides the storage API endpoint, for emulators.
	Endpoint string
}

// GCS uploads tracks into a bucket as <prefix>/<Artist>/<Album>/<file>.
type GCS struct {
	client *storage.Client
	logger *slog.Logger
	bucket string
	prefix string
	owned  bool
}

// NewGCS connects to cloud storage. Application default credentials are
// used when no credentials file is given.
func NewGCS(
	ctx context.Context,
	opts Options,
	logger *slog.Logger,
) (*GCS, error) {
	var clientOpts []option.ClientOption

	if opts.CredentialsFile != "" {
		clientOpts = append(clientOpts, option.WithCredentialsFile(opts.CredentialsFile))
	}

	if opts.Endpoint != "" {
		clientOpts = append(
			clientOpts,
			option.WithEndpoint(opts.Endpoint),
			option.WithoutAuthentication(),
		)
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, errNewClient.Wrap(err)
	}

	g := NewGCSWithClient(client, opts.Bucket, opts.Prefix, logger)
	g.owned = true

	return g, nil
}

// NewGCSWithClient uploads with an existing client. The client is not
// closed by Close.
func NewGCSWithClient(
	client *storage.Client,
	bucket, prefix string,
	logger *slog.Logger,
) *GCS {
	if logger == nil {
		logger = slog.Default()
	}

	return &GCS{
		client: client,
		logger: logger,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
	}
}

// ObjectName returns the name the track at file is stored under.
func (g *GCS) ObjectName(s song.Song, file string) string {
	rel := filepath.ToSlash(s.RelPath(filepath.Ext(file)))

	if g.prefix == "" {
		return rel
	}

	return path.Join(g.prefix, rel)
}

// Publish uploads the track at file and returns its gs:// URL.
func (g *GCS) Publish(
	ctx context.Context,
	s song.Song,
	file string,
) (string, error) {
	name := g.ObjectName(s, file)
	url := fmt.Sprintf("gs://%s/%s", g.bucket, name)

	f, err := os.Open(file)
	if err != nil {
		return "", errUpload.Fmt(file, url).Wrap(err)
	}

	defer f.Close()

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.Metadata = map[string]string{
		"artist": s.Artist,
		"album":  s.Album,
		"title":  s.Title,
		"track":  fmt.Sprintf("%d", s.Number),
	}

	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()

		return "", errUpload.Fmt(file, url).Wrap(err)
	}

	// the object is only committed on Close
	if err := w.Close(); err != nil {
		return "", errUpload.Fmt(file, url).Wrap(err)
	}

	g.logger.DebugContext(ctx, "track uploaded",
		slog.String("song", s.String()),
		slog.String("url", url),
	)

	return url, nil
}

func (g *GCS) Close() error {
	if !g.owned {
		return nil
	}

	return g.client.Close()
}
