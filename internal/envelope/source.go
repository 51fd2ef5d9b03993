package envelope

import (
	"math"
	"sync"

	"github.com/gopxl/beep/v2"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/audio"
	"github.com/ayoisaiah/setsplit/internal/audiotime"
)

const (
	DefaultResolution = 400
	chunkSize         = 512
)

var errEmptyRange = &apperr.Error{
	Message: "no audio between %s and %s",
}

// Source renders excerpts of a single recording. It is safe for concurrent
// use.
type Source struct {
	stream     *audio.Stream
	resolution int
	mu         sync.Mutex
}

// Open decodes the recording at path. Every excerpt is reduced to at most
// resolution amplitude values.
func Open(path string, resolution int) (*Source, error) {
	stream, err := audio.Open(path)
	if err != nil {
		return nil, err
	}

	if resolution <= 0 {
		resolution = DefaultResolution
	}

	return &Source{
		stream:     stream,
		resolution: resolution,
	}, nil
}

// Length returns the end of the recording.
func (s *Source) Length() audiotime.AudioTime {
	return audiotime.New(s.stream.Length())
}

// Excerpt returns the RMS envelope of [start, end). The part of the range
// past the end of the recording is silent.
func (s *Source) Excerpt(start, end audiotime.AudioTime) (*Excerpt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sr := s.stream.Format.SampleRate

	want := sr.N(end.Sub(start))
	if want <= 0 {
		return nil, errEmptyRange.Fmt(start, end)
	}

	if err := s.stream.SeekTo(start.Duration()); err != nil {
		return nil, err
	}

	total := max(0, min(want, s.stream.Len()-s.stream.Position()))
	buckets := min(s.resolution, want)

	volumes, _, err := reduce(s.stream, total, max(1, buckets*total/want))
	if err != nil {
		return nil, err
	}

	for len(volumes) < buckets {
		volumes = append(volumes, 0)
	}

	return NewExcerpt(start, end, volumes), nil
}

func (s *Source) Close() error {
	return s.stream.Close()
}

// reduce reads up to total samples from st and returns the RMS amplitude of
// each of the (at most) buckets equal slices, along with the number of
// samples actually read.
func reduce(st beep.Streamer, total, buckets int) ([]float64, int, error) {
	if total <= 0 || buckets <= 0 {
		return nil, 0, nil
	}

	buckets = min(buckets, total)

	var (
		volumes = make([]float64, 0, buckets)
		buf     = make([][2]float64, chunkSize)
		sum     float64
		count   int
		read    int
		bucket  int
		next    = total / buckets
	)

	for read < total {
		n, ok := st.Stream(buf[:min(len(buf), total-read)])

		for _, sample := range buf[:n] {
			mono := (sample[0] + sample[1]) / 2

			sum += mono * mono
			count++
			read++

			if read == next {
				volumes = append(volumes, math.Sqrt(sum/float64(count)))

				sum, count = 0, 0
				bucket++
				next = (bucket + 1) * total / buckets
			}
		}

		if !ok || n == 0 {
			break
		}
	}

	// the stream ran out part way through a bucket
	if count > 0 {
		volumes = append(volumes, math.Sqrt(sum/float64(count)))
	}

	return volumes, read, st.Err()
}
