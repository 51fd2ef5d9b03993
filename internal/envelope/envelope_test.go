package envelope

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
	"github.com/ayoisaiah/setsplit/internal/testutil"
)

func TestNewExcerpt(t *testing.T) {
	e := NewExcerpt(
		audiotime.FromSeconds(10),
		audiotime.FromSeconds(12),
		[]float64{0.1, 0.2, 0.3, 0.4},
	)

	assert.Equal(t, []float64{10, 10.5, 11, 11.5}, e.SampleTimes())
	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4}, e.VolumePlotData())
	assert.Equal(t, 4, e.Len())
	assert.InDelta(t, 0.4, e.Peak(), 1e-12)
}

func TestNewExcerptReversedBounds(t *testing.T) {
	e := NewExcerpt(audiotime.FromSeconds(5), audiotime.FromSeconds(3), []float64{1})

	assert.Equal(t, e.Start(), e.End())
}

func TestSamples(t *testing.T) {
	e := NewExcerpt(audiotime.Zero, audiotime.FromSeconds(3), []float64{1, 2, 3})

	var times, vols []float64

	for tm, v := range e.Samples() {
		times = append(times, tm)
		vols = append(vols, v)
	}

	assert.Equal(t, e.SampleTimes(), times)
	assert.Equal(t, e.VolumePlotData(), vols)

	var seen int

	for range e.Samples() {
		seen++
		if seen == 2 {
			break
		}
	}

	assert.Equal(t, 2, seen)
}

func TestAbsoluteTimeByRelativeProgress(t *testing.T) {
	e := NewExcerpt(audiotime.FromSeconds(185), audiotime.FromSeconds(195), nil)

	cases := []struct {
		Progress float64
		Want     audiotime.AudioTime
	}{
		{Progress: 0, Want: audiotime.FromSeconds(185)},
		{Progress: 0.25, Want: audiotime.FromSeconds(187.5)},
		{Progress: 1, Want: audiotime.FromSeconds(195)},
		{Progress: -3, Want: audiotime.FromSeconds(185)},
		{Progress: 7, Want: audiotime.FromSeconds(195)},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.Want, e.AbsoluteTimeByRelativeProgress(tc.Progress), "progress %v", tc.Progress)
	}
}

func TestReduce(t *testing.T) {
	volumes, read, err := reduce(testutil.Constant(0.5, 1000), 1000, 10)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 1000, read)

	if assert.Len(t, volumes, 10) {
		for _, v := range volumes {
			assert.InDelta(t, 0.5, v, 1e-9)
		}
	}
}

func TestReduceMoreBucketsThanSamples(t *testing.T) {
	volumes, read, err := reduce(testutil.Constant(0.25, 3), 3, 400)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 3, read)
	assert.Len(t, volumes, 3)
}

func TestReduceShortStream(t *testing.T) {
	volumes, read, err := reduce(testutil.Constant(1, 150), 1000, 10)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, 150, read)
	assert.Len(t, volumes, 2)
}

func TestSourceExcerpt(t *testing.T) {
	src, err := Open(testutil.WriteWAV(t, "set.wav", 4*time.Second, 0.5), 20)
	if err != nil {
		t.Fatal(err)
	}

	defer src.Close()

	assert.Equal(t, audiotime.FromSeconds(4), src.Length())

	e, err := src.Excerpt(audiotime.FromSeconds(1), audiotime.FromSeconds(2))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, audiotime.FromSeconds(1), e.Start())
	assert.Equal(t, audiotime.FromSeconds(2), e.End())

	if assert.Len(t, e.VolumePlotData(), 20) {
		assert.InDelta(t, 0.5, e.VolumePlotData()[0], 1e-3)
	}

	// silent past the end of the recording
	e, err = src.Excerpt(audiotime.FromSeconds(3.5), audiotime.FromSeconds(9))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, audiotime.FromSeconds(9), e.End())

	if assert.Len(t, e.VolumePlotData(), 20) {
		assert.InDelta(t, 0.5, e.VolumePlotData()[0], 1e-3)
		assert.Zero(t, e.VolumePlotData()[19])
	}

	e, err = src.Excerpt(audiotime.FromSeconds(5), audiotime.FromSeconds(6))
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, audiotime.FromSeconds(5), e.Start())
	assert.Equal(t, audiotime.FromSeconds(6), e.End())
	assert.Len(t, e.VolumePlotData(), 20)
	assert.Zero(t, e.Peak())

	_, err = src.Excerpt(audiotime.FromSeconds(6), audiotime.FromSeconds(5))
	assert.True(t, errors.Is(err, errEmptyRange), "got %v", err)
}
