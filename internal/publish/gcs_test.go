package publish

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fsouza/fake-gcs-server/fakestorage"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/setsplit/internal/logging"
	"github.com/ayoisaiah/setsplit/internal/song"
)

const bucket = "live-sets"

var intro = song.Song{
	Number: 1,
	Artist: "Some Band",
	Album:  "Live: Roundhouse",
	Title:  "Intro",
}

func newServer(t *testing.T) *fakestorage.Server {
	t.Helper()

	server, err := fakestorage.NewServerWithOptions(fakestorage.Options{
		NoListener: true,
	})
	if err != nil {
		t.Fatal(err)
	}

	server.CreateBucketWithOpts(fakestorage.CreateBucketOpts{Name: bucket})

	t.Cleanup(server.Stop)

	return server
}

func TestObjectName(t *testing.T) {
	testCases := []struct {
		prefix string
		want   string
	}{
		{prefix: "", want: "Some Band/Live- Roundhouse/01 Intro.flac"},
		{prefix: "sets/2024/", want: "sets/2024/Some Band/Live- Roundhouse/01 Intro.flac"},
		{prefix: "/archive", want: "archive/Some Band/Live- Roundhouse/01 Intro.flac"},
	}

	for _, tc := range testCases {
		g := NewGCSWithClient(nil, bucket, tc.prefix, logging.Discard())

		assert.Equal(t, tc.want, g.ObjectName(intro, "/music/x/01 Intro.flac"))
	}
}

func TestPublish(t *testing.T) {
	server := newServer(t)

	file := filepath.Join(t.TempDir(), "01 Intro.flac")

	err := os.WriteFile(file, []byte("fLaC track data"), 0o600)
	if err != nil {
		t.Fatal(err)
	}

	g := NewGCSWithClient(server.Client(), bucket, "sets", logging.Discard())

	url, err := g.Publish(context.Background(), intro, file)
	if err != nil {
		t.Fatal(err)
	}

	name := "sets/Some Band/Live- Roundhouse/01 Intro.flac"

	assert.Equal(t, "gs://"+bucket+"/"+name, url)

	obj, err := server.GetObject(bucket, name)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []byte("fLaC track data"), obj.Content)
	assert.Equal(t, "Intro", obj.Metadata["title"])

	assert.NoError(t, g.Close())
}

func TestPublishMissingFile(t *testing.T) {
	server := newServer(t)

	g := NewGCSWithClient(server.Client(), bucket, "", logging.Discard())

	_, err := g.Publish(
		context.Background(),
		intro,
		filepath.Join(t.TempDir(), "missing.flac"),
	)
	assert.ErrorIs(t, err, errUpload)
}
