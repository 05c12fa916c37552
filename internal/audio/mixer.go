package audio

import (
	"fmt"
	"io"

	"github.com/hajimehoshi/oto/v2"
	"github.com/rs/zerolog"
)

// Mixer plays cues. Play restarts a cue from its beginning, Resume
// continues a paused loop (or starts it), Pause holds a loop in place and
// Stop silences a cue and forgets its position.
type Mixer interface {
	Play(c Cue, variant int)
	Resume(c Cue)
	Pause(c Cue)
	Stop(c Cue)
}

// slot groups cues that share one voice: a new honk cuts the previous one.
func slot(c Cue) Cue {
	if c == CueBusHonk {
		return CueCarHonk
	}
	return c
}

// OtoMixer renders procedural sounds through an oto context.
type OtoMixer struct {
	ctx     *oto.Context
	log     zerolog.Logger
	master  float64
	samples map[sampleKey][]byte
	voices  map[Cue]oto.Player
}

// NewOtoMixer opens the audio device and renders every sample up front.
// It blocks until the device is ready.
func NewOtoMixer(master float64, log zerolog.Logger) (*OtoMixer, error) {
	ctx, ready, err := oto.NewContext(SampleRate, ChannelCount, oto.FormatFloat32LE)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready
	m := &OtoMixer{
		ctx:     ctx,
		log:     log,
		master:  master,
		samples: generateSamples(),
		voices:  make(map[Cue]oto.Player),
	}
	log.Debug().Int("samples", len(m.samples)).Msg("audio ready")
	return m, nil
}

func (m *OtoMixer) start(c Cue, variant int) {
	data, ok := m.samples[sampleKey{c, variant}]
	if !ok {
		m.log.Warn().Stringer("cue", c).Int("variant", variant).Msg("no sample for cue")
		return
	}
	var r io.Reader = &soundReader{data: data}
	if c.Looping() {
		r = &loopReader{data: data}
	}
	p := m.ctx.NewPlayer(r)
	p.SetVolume(m.master * c.Gain())
	p.Play()
	m.voices[slot(c)] = p
}

func (m *OtoMixer) Play(c Cue, variant int) {
	m.Stop(c)
	m.start(c, variant)
}

func (m *OtoMixer) Resume(c Cue) {
	if p, ok := m.voices[slot(c)]; ok {
		if !p.IsPlaying() {
			p.Play()
		}
		return
	}
	m.start(c, 0)
}

func (m *OtoMixer) Pause(c Cue) {
	if p, ok := m.voices[slot(c)]; ok {
		p.Pause()
	}
}

func (m *OtoMixer) Stop(c Cue) {
	s := slot(c)
	if p, ok := m.voices[s]; ok {
		if err := p.Close(); err != nil {
			m.log.Debug().Err(err).Stringer("cue", c).Msg("closing voice")
		}
		delete(m.voices, s)
	}
}

// Close silences every voice.
func (m *OtoMixer) Close() {
	for c := range m.voices {
		m.Stop(c)
	}
}

// Silent is a Mixer that does nothing, used when audio is disabled or the
// device cannot be opened.
type Silent struct{}

func (Silent) Play(Cue, int) {}
func (Silent) Resume(Cue)    {}
func (Silent) Pause(Cue)     {}
func (Silent) Stop(Cue)      {}
