package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/models"
	"github.com/ayoisaiah/setsplit/internal/song"
)

var compareTimes = cmp.Comparer(func(a, b audiotime.AudioTime) bool {
	return a == b
})

func newClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(filepath.Join(t.TempDir(), "setsplit.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestReviewRoundTrip(t *testing.T) {
	c := newClient(t)

	_, err := c.GetReview("live")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)

	r := &models.Review{
		Session:     "live",
		SessionFile: "/sets/live.yml",
		CutTimes: []audiotime.AudioTime{
			audiotime.FromSeconds(10),
			audiotime.FromSeconds(190.25),
		},
		UpdatedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}

	if err := c.SaveReview(r); err != nil {
		t.Fatal(err)
	}

	got, err := c.GetReview("live")
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(r, got, compareTimes); diff != "" {
		t.Errorf("GetReview() mismatch (-want +got):\n%s", diff)
	}

	r.CutTimes[1] = audiotime.FromSeconds(191)
	assert.NoError(t, c.SaveReview(r))

	got, err = c.GetReview("live")
	assert.NoError(t, err)
	assert.Equal(t, audiotime.FromSeconds(191), got.CutTimes[1])

	assert.NoError(t, c.DeleteReview("live"))

	_, err = c.GetReview("live")
	assert.True(t, errors.Is(err, ErrNotFound), "got %v", err)
}

func TestSaveReviewSetsTimestamp(t *testing.T) {
	c := newClient(t)

	r := &models.Review{Session: "side-a"}
	assert.NoError(t, c.SaveReview(r))
	assert.False(t, r.UpdatedAt.IsZero())
}

func TestExtractions(t *testing.T) {
	c := newClient(t)

	first := models.Extraction{
		Session: "live",
		Dest:    "music/Band/Live/01 Intro.flac",
		Song:    song.Song{Title: "Intro", Number: 1, Length: time.Minute},
		Start:   audiotime.FromSeconds(10),
		End:     audiotime.FromSeconds(70),
	}

	other := models.Extraction{
		Session: "side-a",
		Dest:    "music/Band/Side A/01 Opener.flac",
		Error:   "extraction failed",
	}

	err := c.SaveExtractions([]models.Extraction{first, other})
	if err != nil {
		t.Fatal(err)
	}

	all, err := c.GetExtractions("")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	live, err := c.GetExtractions("live")
	assert.NoError(t, err)

	if assert.Len(t, live, 1) {
		assert.Equal(t, first.Dest, live[0].Dest)
		assert.Equal(t, first.Song, live[0].Song)
		assert.False(t, live[0].CreatedAt.IsZero())
		assert.False(t, live[0].Failed())
	}

	// re-cutting the same destination replaces the earlier record
	first.URL = "gs://bucket/01 Intro.flac"
	assert.NoError(t, c.SaveExtractions([]models.Extraction{first}))

	live, err = c.GetExtractions("live")
	assert.NoError(t, err)

	if assert.Len(t, live, 1) {
		assert.Equal(t, first.URL, live[0].URL)
	}
}

func TestSecondClientIsRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setsplit.db")

	c, err := NewClient(path)
	if err != nil {
		t.Fatal(err)
	}

	defer c.Close()

	_, err = NewClient(path)
	assert.True(t, errors.Is(err, errAlreadyRunning), "got %v", err)
}
