// Package envelope summarizes the loudness of a recording over time for
// visual boundary checks
package envelope

import (
	"iter"
	"time"

	"github.com/ayoisaiah/setsplit/internal/audiotime"
)

// Envelope is an amplitude summary of a bounded stretch of a recording.
type Envelope interface {
	// SampleTimes returns the absolute time (in seconds) of every sample in
	// ascending order.
	SampleTimes() []float64
	// VolumePlotData returns the amplitude of every sample, in the same order
	// as SampleTimes.
	VolumePlotData() []float64
	// AbsoluteTimeByRelativeProgress maps 0 to the window start and 1 to the
	// window end, linearly.
	AbsoluteTimeByRelativeProgress(progress float64) audiotime.AudioTime
}

var _ Envelope = (*Excerpt)(nil)

// Excerpt is an in-memory envelope of the window [Start, End).
type Excerpt struct {
	start   audiotime.AudioTime
	end     audiotime.AudioTime
	times   []float64
	volumes []float64
}

// NewExcerpt spreads volumes evenly over [start, end). end is moved to start
// if it comes before it.
func NewExcerpt(start, end audiotime.AudioTime, volumes []float64) *Excerpt {
	if end.Before(start) {
		end = start
	}

	e := &Excerpt{
		start:   start,
		end:     end,
		times:   make([]float64, len(volumes)),
		volumes: append([]float64(nil), volumes...),
	}

	if len(volumes) == 0 {
		return e
	}

	step := end.Sub(start) / time.Duration(len(volumes))

	for i := range volumes {
		e.times[i] = start.Add(step * time.Duration(i)).Seconds()
	}

	return e
}

func (e *Excerpt) Start() audiotime.AudioTime {
	return e.start
}

func (e *Excerpt) End() audiotime.AudioTime {
	return e.end
}

func (e *Excerpt) Len() int {
	return len(e.volumes)
}

func (e *Excerpt) SampleTimes() []float64 {
	return e.times
}

func (e *Excerpt) VolumePlotData() []float64 {
	return e.volumes
}

// Samples yields (time, amplitude) pairs lazily in time order.
func (e *Excerpt) Samples() iter.Seq2[float64, float64] {
	return func(yield func(float64, float64) bool) {
		for i, t := range e.times {
			if !yield(t, e.volumes[i]) {
				return
			}
		}
	}
}

// Peak returns the largest amplitude in the excerpt.
func (e *Excerpt) Peak() float64 {
	var peak float64

	for _, v := range e.volumes {
		peak = max(peak, v)
	}

	return peak
}

func (e *Excerpt) AbsoluteTimeByRelativeProgress(
	progress float64,
) audiotime.AudioTime {
	progress = max(0, min(progress, 1))

	span := e.end.Sub(e.start)

	return e.start.Add(time.Duration(progress * float64(span)))
}
