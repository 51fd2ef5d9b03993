// Package playback plays parts of a recording through the speaker so cut
// points can be checked by ear
package playback

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/ayoisaiah/setsplit/internal/apperr"
	"github.com/ayoisaiah/setsplit/internal/audio"
	"github.com/ayoisaiah/setsplit/internal/audiotime"
)

// bufferSize is the speaker buffer as a fraction of a second.
const bufferSize = 10

var errSpeaker = &apperr.Error{
	Message: "unable to open the audio device",
}

// Device is the audio output. Streamers passed to Play are pulled from a
// separate goroutine while the device lock is held.
type Device interface {
	Init(sr beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerDevice struct{}

func (speakerDevice) Init(sr beep.SampleRate, n int) error {
	return speaker.Init(sr, n)
}

func (speakerDevice) Play(s ...beep.Streamer) {
	speaker.Play(s...)
}

func (speakerDevice) Clear() {
	speaker.Clear()
}

func (speakerDevice) Lock() {
	speaker.Lock()
}

func (speakerDevice) Unlock() {
	speaker.Unlock()
}

// Speaker is the system's default audio output.
func Speaker() Device {
	return speakerDevice{}
}

// Player plays one recording.
type Player struct {
	dev     Device
	stream  *audio.Stream
	gen     atomic.Uint64
	playing atomic.Bool
	ready   atomic.Bool
	once    sync.Once
	initErr error
}

// Open decodes the recording at path for playback on dev.
func Open(path string, dev Device) (*Player, error) {
	stream, err := audio.Open(path)
	if err != nil {
		return nil, err
	}

	return &Player{
		dev:    dev,
		stream: stream,
	}, nil
}

func (p *Player) init() error {
	p.once.Do(func() {
		sr := p.stream.Format.SampleRate

		err := p.dev.Init(sr, sr.N(time.Second/bufferSize))
		if err != nil {
			p.initErr = errSpeaker.Wrap(err)
			return
		}

		p.ready.Store(true)
	})

	return p.initErr
}

// Play starts playing from offset from, replacing whatever is playing. A
// positive d stops playback after that long.
func (p *Player) Play(from audiotime.AudioTime, d time.Duration) error {
	if err := p.init(); err != nil {
		return err
	}

	p.dev.Clear()

	gen := p.gen.Add(1)

	p.dev.Lock()
	err := p.stream.SeekTo(from.Duration())
	p.dev.Unlock()

	if err != nil {
		return err
	}

	var s beep.Streamer = p.stream
	if d > 0 {
		s = beep.Take(p.stream.Format.SampleRate.N(d), p.stream)
	}

	p.playing.Store(true)

	p.dev.Play(beep.Seq(s, beep.Callback(func() {
		// a later Play owns the flag
		if p.gen.Load() == gen {
			p.playing.Store(false)
		}
	})))

	return nil
}

// Position returns the current playback position and whether anything is
// playing.
func (p *Player) Position() (audiotime.AudioTime, bool) {
	if !p.playing.Load() {
		return audiotime.Zero, false
	}

	p.dev.Lock()
	pos := p.stream.Position()
	p.dev.Unlock()

	return audiotime.New(p.stream.Format.SampleRate.D(pos)), p.playing.Load()
}

// Stop silences the player.
func (p *Player) Stop() {
	p.gen.Add(1)
	p.playing.Store(false)

	if p.ready.Load() {
		p.dev.Clear()
	}
}

func (p *Player) Close() error {
	p.Stop()

	return p.stream.Close()
}
