package effects

import (
	"fmt"

	"github.com/cwbudde/algo-spectral/dsp/buffer"
	"github.com/cwbudde/algo-spectral/dsp/core"
	"github.com/cwbudde/algo-spectral/dsp/parallel"
	"github.com/cwbudde/algo-spectral/dsp/stft"
	"github.com/cwbudde/algo-spectral/dsp/window"
	"github.com/cwbudde/algo-spectral/logging"
)

const defaultWindowSize = 1024

// Option configures a Processor.
type Option func(*config)

type config struct {
	windowSize int
	hop        int
	fftSize    int
	window     window.Function
	workers    int
	transition float64
	logger     logging.Logger
}

// WithWindowSize sets the STFT frame length. Default 1024.
func WithWindowSize(n int) Option {
	return func(c *config) { c.windowSize = n }
}

// WithHopSize sets the analysis hop. Default half the window size.
func WithHopSize(n int) Option {
	return func(c *config) { c.hop = n }
}

// WithFFTSize sets the transform size, a power of two no smaller than the
// window. Default the next power of two.
func WithFFTSize(n int) Option {
	return func(c *config) { c.fftSize = n }
}

// WithWindow sets the window shape. Default periodic Hann.
func WithWindow(w window.Function) Option {
	return func(c *config) { c.window = w }
}

// WithWorkers sets the number of goroutines per call. Default 1; <= 0 uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// WithTransition sets the width in Hz of the raised-cosine edge of the band
// filters. Default 0, a hard mask.
func WithTransition(hz float64) Option {
	return func(c *config) { c.transition = hz }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// Processor applies spectral effects to buffers. It holds no per-call state
// and is safe for concurrent use.
type Processor struct {
	windowSize int
	hop        int
	window     window.Function
	fftSize    int
	transition float64
	exec       *parallel.Executor
	fw         *stft.Framework
	log        logging.Logger
}

// New returns a Processor configured by opts.
func New(opts ...Option) (*Processor, error) {
	cfg := config{windowSize: defaultWindowSize, workers: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.hop == 0 {
		cfg.hop = max(cfg.windowSize/2, 1)
	}
	if !core.IsFinite(cfg.transition) || cfg.transition < 0 {
		return nil, fmt.Errorf("effects: transition must be finite and >= 0: %v: %w", cfg.transition, core.ErrInvalidArgument)
	}

	p := &Processor{
		windowSize: cfg.windowSize,
		hop:        cfg.hop,
		window:     cfg.window,
		fftSize:    cfg.fftSize,
		transition: cfg.transition,
		exec:       parallel.New(cfg.workers),
		log:        logging.OrNoOp(cfg.logger),
	}
	fw, err := p.framework(1, p.exec)
	if err != nil {
		return nil, err
	}
	p.fw = fw
	p.fftSize = fw.FFTSize()
	return p, nil
}

// WindowSize returns the STFT frame length.
func (p *Processor) WindowSize() int { return p.windowSize }

// HopSize returns the analysis hop.
func (p *Processor) HopSize() int { return p.hop }

// FFTSize returns the transform size.
func (p *Processor) FFTSize() int { return p.fftSize }

// Workers returns the number of goroutines used per call.
func (p *Processor) Workers() int { return p.exec.Workers() }

// Transition returns the filter edge width in Hz.
func (p *Processor) Transition() float64 { return p.transition }

func (p *Processor) framework(timeScale float64, exec *parallel.Executor) (*stft.Framework, error) {
	opts := []stft.Option{
		stft.WithFFTSize(p.fftSize),
		stft.WithTimeScale(timeScale),
		stft.WithExecutor(exec),
		stft.WithLogger(p.log),
	}
	if p.window != nil {
		opts = append(opts, stft.WithWindow(p.window))
	}
	fw, err := stft.New(p.windowSize, p.hop, opts...)
	if err != nil {
		return nil, fmt.Errorf("effects: %w", err)
	}
	return fw, nil
}

// checkBuffer validates the buffer shared by every effect and returns its
// sample rate. Samples must be in native byte order to be read as numbers.
func checkBuffer(buf *buffer.Buffer) (float64, error) {
	if buf == nil {
		return 0, fmt.Errorf("effects: nil buffer: %w", core.ErrInvalidArgument)
	}
	if buf.SampleRate() <= 0 {
		return 0, fmt.Errorf("effects: sample rate must be > 0: %d: %w", buf.SampleRate(), core.ErrInvalidArgument)
	}
	if buf.Order() != buffer.NativeEndian() {
		return 0, fmt.Errorf("effects: buffer holds %v samples, want native %v: %w",
			buf.Order(), buffer.NativeEndian(), core.ErrInvalidArgument)
	}
	return float64(buf.SampleRate()), nil
}

// mutateChannels runs the stateless mutation fn over every channel, frames
// in parallel, and commits the result only when every channel succeeded.
func (p *Processor) mutateChannels(buf *buffer.Buffer, effect string, fn stft.SpectralFunc) error {
	channels := buf.Split()
	for ch, data := range channels {
		out, err := p.fw.Process(data, len(data), fn)
		if err != nil {
			return fmt.Errorf("effects: %s: channel %d: %w", effect, ch, err)
		}
		channels[ch] = out
	}
	return p.commit(buf, effect, channels)
}

// vocodeChannels runs a stateful vocoder step over every channel with its
// own VocoderState. Output frames are placed timeScale times as far apart
// as the analysis frames, and step receives the actual distance to the
// previous frame. Channels run in parallel; within a channel frames are
// mutated in order.
func (p *Processor) vocodeChannels(buf *buffer.Buffer, effect string, timeScale float64, outLen int,
	step func(st *VocoderState, advance int, bins []complex128) error,
) error {
	exec := parallel.Serial()
	if buf.Channels() == 1 {
		exec = p.exec
	}
	fw, err := p.framework(timeScale, exec)
	if err != nil {
		return err
	}
	channels := buf.Split()
	err = p.exec.ForEach(len(channels), func(ch int) error {
		st, err := NewVocoderState(fw.FFTSize(), fw.Hop())
		if err != nil {
			return err
		}
		out, err := fw.ProcessSequential(channels[ch], outLen, func(f stft.Frame, bins []complex128) error {
			return step(st, fw.SynthesisAdvance(f.Index), bins)
		})
		if err != nil {
			return fmt.Errorf("effects: %s: channel %d: %w", effect, ch, err)
		}
		channels[ch] = out
		return nil
	})
	if err != nil {
		return err
	}
	return p.commit(buf, effect, channels)
}

func (p *Processor) commit(buf *buffer.Buffer, effect string, channels [][]float64) error {
	frames := len(channels[0])
	buf.Resize(frames)
	for ch, data := range channels {
		if err := buf.SetChannel(ch, data); err != nil {
			return fmt.Errorf("effects: %s: %w", effect, err)
		}
	}
	p.log.Debug("effect applied", logging.Fields{
		"effect":   effect,
		"channels": len(channels),
		"frames":   frames,
		"workers":  p.Workers(),
		"fft":      p.fftSize,
	})
	return nil
}

func (p *Processor) reject(effect string, err error) error {
	p.log.Debug("effect rejected", logging.Fields{"effect": effect, "error": err.Error()})
	return err
}
