package review

import (
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/cut"
	"github.com/ayoisaiah/setsplit/internal/editor"
	"github.com/ayoisaiah/setsplit/internal/envelope"
	"github.com/ayoisaiah/setsplit/internal/session"
	"github.com/ayoisaiah/setsplit/internal/song"
	"github.com/ayoisaiah/setsplit/internal/testutil"
)

type fakeSource struct {
	err    error
	ranges [][2]audiotime.AudioTime
}

func (f *fakeSource) Excerpt(start, end audiotime.AudioTime) (*envelope.Excerpt, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.ranges = append(f.ranges, [2]audiotime.AudioTime{start, end})

	return envelope.NewExcerpt(start, end, make([]float64, 10)), nil
}

func secs(f float64) audiotime.AudioTime {
	return audiotime.FromSeconds(f)
}

var compareTimes = cmp.Comparer(func(a, b audiotime.AudioTime) bool {
	return a == b
})

func newSession() *session.RecordingSession {
	return &session.RecordingSession{
		Name:       "live",
		BufferFile: "set.flac",
		Timestamps: []audiotime.AudioTime{secs(10)},
		Songs: []song.Song{
			{Title: "One", Number: 1, Length: 180 * time.Second},
			{Title: "Two", Number: 2, Length: 240 * time.Second},
		},
	}
}

func build(t *testing.T, src *fakeSource) *Review {
	t.Helper()

	r, err := Build(
		newSession(),
		cut.AccumulatedLengths(0),
		src,
		10*time.Second,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	if err != nil {
		t.Fatal(err)
	}

	return r
}

func TestBuild(t *testing.T) {
	src := &fakeSource{}
	r := build(t, src)

	want := []audiotime.AudioTime{secs(10), secs(190), secs(430)}

	if diff := cmp.Diff(want, r.CutTimes(), compareTimes); diff != "" {
		t.Errorf("CutTimes() mismatch (-want +got):\n%s", diff)
	}

	wantRanges := [][2]audiotime.AudioTime{
		{secs(5), secs(15)},
		{secs(185), secs(195)},
		{secs(425), secs(435)},
	}

	if diff := cmp.Diff(wantRanges, src.ranges, compareTimes); diff != "" {
		t.Errorf("excerpt ranges mismatch (-want +got):\n%s", diff)
	}

	eds := r.Editors()

	assert.Nil(t, eds[0].Excerpt().SongBefore)
	assert.Equal(t, "One", eds[0].Excerpt().SongAfter.Title)
	assert.Equal(t, "One", eds[1].Excerpt().SongBefore.Title)
	assert.Equal(t, "Two", eds[1].Excerpt().SongAfter.Title)
	assert.Equal(t, "Two", eds[2].Excerpt().SongBefore.Title)
	assert.Nil(t, eds[2].Excerpt().SongAfter)
}

func TestBuildClampsExcerptAtRecordingStart(t *testing.T) {
	src := &fakeSource{}

	sess := newSession()
	sess.Timestamps[0] = secs(2)

	_, err := Build(sess, cut.AccumulatedLengths(0), src, 10*time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, audiotime.Zero, src.ranges[0][0])
	assert.Equal(t, secs(7), src.ranges[0][1])
}

func TestBuildLengthsPastRecordingEnd(t *testing.T) {
	src, err := envelope.Open(testutil.WriteWAV(t, "short.wav", 30*time.Second, 0.5), 20)
	if err != nil {
		t.Fatal(err)
	}

	defer src.Close()

	sess := &session.RecordingSession{
		Name:       "short",
		Timestamps: []audiotime.AudioTime{audiotime.Zero},
		Songs: []song.Song{
			{Title: "One", Number: 1, Length: 20 * time.Second},
			{Title: "Two", Number: 2, Length: 20 * time.Second},
		},
	}

	r, err := Build(sess, cut.AccumulatedLengths(0), src, 10*time.Second, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []audiotime.AudioTime{secs(0), secs(20), secs(40)}

	if diff := cmp.Diff(want, r.CutTimes(), compareTimes); diff != "" {
		t.Errorf("CutTimes() mismatch (-want +got):\n%s", diff)
	}

	last := r.Editors()[2].Excerpt().Excerpt

	assert.Equal(t, secs(35), last.AbsoluteTimeByRelativeProgress(0))
	assert.Equal(t, secs(45), last.AbsoluteTimeByRelativeProgress(1))

	for _, v := range last.VolumePlotData() {
		assert.Zero(t, v)
	}

	// the estimate can still be moved back inside the recording
	r.Editors()[2].SetCutTime(secs(38))
	assert.Equal(t, secs(38), r.CutTimes()[2])
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(&session.RecordingSession{}, cut.AccumulatedLengths(0), &fakeSource{}, 0, nil)
	assert.True(t, errors.Is(err, session.ErrInvalidSession), "got %v", err)

	_, err = Build(newSession(), cut.AccumulatedLengths(0), &fakeSource{err: errors.New("boom")}, 0, nil)
	assert.True(t, errors.Is(err, errExcerpt), "got %v", err)
}

func TestMarkFinished(t *testing.T) {
	r := build(t, &fakeSource{})

	r.MarkFinished(r.Session().Songs[0])

	states := []editor.State{}
	for _, e := range r.Editors() {
		states = append(states, e.State())
	}

	assert.Equal(t, []editor.State{
		editor.FullyFinished,
		editor.PartiallyFinished,
		editor.Pending,
	}, states)
}

func TestApply(t *testing.T) {
	r := build(t, &fakeSource{})

	r.Editors()[1].SetCutTime(secs(191.2500004))

	sess, err := r.Apply()
	if err != nil {
		t.Fatal(err)
	}

	want := []audiotime.AudioTime{secs(10), secs(191.25), secs(430)}

	if diff := cmp.Diff(want, sess.Timestamps, compareTimes); diff != "" {
		t.Errorf("Timestamps mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, 181250*time.Millisecond, sess.Songs[0].Length)
	assert.Equal(t, 238750*time.Millisecond, sess.Songs[1].Length)

	// both strategies agree on the applied session
	byLength, err := cut.AccumulatedLengths(0).Windows(sess)
	if err != nil {
		t.Fatal(err)
	}

	byTimestamp, err := cut.TimestampPairs(0).Windows(sess)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(byLength, byTimestamp, compareTimes); diff != "" {
		t.Errorf("strategies disagree (-lengths +timestamps):\n%s", diff)
	}

	// finished tracks still match after their lengths changed
	r.MarkFinished(byLength[0].Song)
	assert.Equal(t, editor.FullyFinished, r.Editors()[0].State())
}

func TestApplyRejectsUnorderedBoundaries(t *testing.T) {
	r := build(t, &fakeSource{})

	r.Editors()[1].SetCutTime(secs(5))

	_, err := r.Apply()
	assert.True(t, errors.Is(err, session.ErrInvalidSession), "got %v", err)
	assert.True(t, errors.Is(err, errUnorderedBoundaries), "got %v", err)

	assert.Equal(t, 180*time.Second, r.Session().Songs[0].Length, "session must be left alone")
}

func TestRestore(t *testing.T) {
	r := build(t, &fakeSource{})

	saved := []audiotime.AudioTime{secs(11), secs(189), secs(429)}

	assert.NoError(t, r.Restore(saved))

	if diff := cmp.Diff(saved, r.CutTimes(), compareTimes); diff != "" {
		t.Errorf("CutTimes() mismatch (-want +got):\n%s", diff)
	}

	err := r.Restore(saved[:2])
	assert.True(t, errors.Is(err, errStaleReview), "got %v", err)
}

func TestApplyTimes(t *testing.T) {
	orig := newSession()

	sess, err := ApplyTimes(orig, []audiotime.AudioTime{secs(12), secs(192), secs(432)})
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, secs(12), sess.Start())
	assert.Equal(t, 180*time.Second, sess.Songs[0].Length)
	assert.Equal(t, secs(10), orig.Start(), "original session must not change")

	_, err = ApplyTimes(orig, []audiotime.AudioTime{secs(12)})
	assert.True(t, errors.Is(err, errStaleReview), "got %v", err)
}
