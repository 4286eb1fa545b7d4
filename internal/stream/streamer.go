// SPDX-License-Identifier: MIT
package stream

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"bitbrush/internal/analysis"
	"bitbrush/internal/config"
	applog "bitbrush/internal/log"
	"bitbrush/internal/transport"
	"bitbrush/pkg/bitbrush"
)

// Streamer drives a configured pattern generator at a fixed interval,
// wrapping each produced pattern in a Frame and publishing it to the
// attached transports. The underlying sequences are finite; when one is
// exhausted the streamer either restarts it (loop mode) or stops
// emitting. It runs in a separate goroutine managed by Start and Stop.
type Streamer struct {
	brush     *bitbrush.Brush
	generator string
	step      int
	interval  time.Duration
	loop      bool

	transports []transport.Transport

	seq      *bitbrush.Sequence
	frameSeq uint64

	latestMu sync.Mutex
	latest   Frame
	hasFrame bool

	ticker   *time.Ticker
	doneChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	mu       sync.Mutex // Protects ticker and doneChan during Start/Stop.

	// Capture state: frames can be appended to a text file while the
	// stream runs, toggled at any time.
	isCapturing atomic.Bool
	captureMu   sync.Mutex
	captureFile *os.File
}

// NewStreamer creates a Streamer from the configuration. The brush and
// the selected generator are validated eagerly: an unknown generator
// name, a bad width or a non-positive step fail here, never later
// during emission.
func NewStreamer(cfg *config.Config, transports ...transport.Transport) (*Streamer, error) {
	brush, err := bitbrush.New(cfg.Brush.Width)
	if err != nil {
		return nil, fmt.Errorf("streamer: %w", err)
	}

	s := &Streamer{
		brush:      brush,
		generator:  cfg.Brush.Generator,
		step:       cfg.Brush.Step,
		interval:   cfg.Stream.Interval,
		loop:       cfg.Stream.Loop,
		transports: transports,
	}

	// Build the first sequence now so generator and step errors surface
	// at construction.
	s.seq, err = s.newSequence()
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Brush returns the pattern engine the streamer drives.
func (s *Streamer) Brush() *bitbrush.Brush {
	return s.brush
}

// newSequence starts a fresh run of the configured generator.
func (s *Streamer) newSequence() (*bitbrush.Sequence, error) {
	return NewSequence(s.brush, s.generator, s.step)
}

// EmitNext advances the sequence by one pattern, publishes the frame
// and returns it. The second return value is false once the sequence is
// exhausted and looping is disabled.
func (s *Streamer) EmitNext() (Frame, bool) {
	v, ok := s.seq.Next()
	if !ok {
		if !s.loop {
			return Frame{}, false
		}
		// Finite and restartable: start the run over. The generator was
		// validated at construction, so this cannot fail.
		s.seq, _ = s.newSequence()
		v, ok = s.seq.Next()
		if !ok {
			return Frame{}, false
		}
	}

	s.frameSeq++
	frame := Frame{
		Seq:       s.frameSeq,
		Generator: s.generator,
		Width:     s.brush.Width(),
		Value:     v,
		Bits:      s.brush.Visualize(v),
		Popcount:  s.brush.CountOnes(v),
	}

	s.latestMu.Lock()
	s.latest = frame
	s.hasFrame = true
	s.latestMu.Unlock()

	for _, t := range s.transports {
		if err := t.Send(frame); err != nil {
			applog.Errorf("Streamer: transport send failed: %v", err)
		}
	}

	if s.isCapturing.Load() {
		s.writeCaptureLine(frame)
	}

	return frame, true
}

// Latest returns the most recently emitted frame, if any. Used by
// pull-based publishers such as the UDP packet sender.
func (s *Streamer) Latest() (Frame, bool) {
	s.latestMu.Lock()
	defer s.latestMu.Unlock()
	return s.latest, s.hasFrame
}

// Summary runs the configured generator once from the start and
// summarizes the full sequence. Sequences are restartable, so this
// never disturbs the live stream.
func (s *Streamer) Summary() analysis.Summary {
	seq, err := s.newSequence()
	if err != nil {
		return analysis.Summary{}
	}
	return analysis.Summarize(s.brush, seq.Collect())
}

// Start begins emitting frames at the configured interval. It is safe
// to call Start multiple times; subsequent calls are no-ops if already
// running.
func (s *Streamer) Start() {
	s.mu.Lock()
	if s.ticker != nil {
		s.mu.Unlock()
		applog.Warnf("Streamer: Start called but already running.")
		return
	}

	s.ticker = time.NewTicker(s.interval)
	s.doneChan = make(chan struct{})
	s.stopOnce = sync.Once{}

	// Capture local references to avoid racing Start/Stop on the fields.
	ticker := s.ticker
	doneChan := s.doneChan

	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		applog.Infof("Streamer: started (%s, width %d, every %s)", s.generator, s.brush.Width(), s.interval)
		for {
			select {
			case <-ticker.C:
				if _, ok := s.EmitNext(); !ok {
					applog.Infof("Streamer: sequence exhausted, stopping emission")
					return
				}
			case <-doneChan:
				return
			}
		}
	}()
}

// Stop gracefully signals the streamer goroutine to terminate and waits
// for it to exit. Safe to call multiple times.
func (s *Streamer) Stop() error {
	s.mu.Lock()
	if s.ticker == nil {
		s.mu.Unlock()
		applog.Debugf("Streamer: Stop called but not running.")
		return nil
	}

	s.stopOnce.Do(func() {
		close(s.doneChan)
		s.ticker.Stop()
		s.ticker = nil
	})
	s.mu.Unlock()

	s.wg.Wait()
	applog.Infof("Streamer: stopped after %d frames", s.frameSeq)
	return s.StopCapture()
}

// StartCapture begins appending emitted frames to the file at path,
// one frame per line. Returns an error if a capture is already running
// or the file cannot be created.
func (s *Streamer) StartCapture(path string) error {
	s.captureMu.Lock()
	defer s.captureMu.Unlock()

	if s.captureFile != nil {
		return fmt.Errorf("streamer: capture already running")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("streamer: failed to open capture file: %w", err)
	}

	s.captureFile = f
	s.isCapturing.Store(true)
	applog.Infof("Streamer: capturing frames to %s", path)
	return nil
}

// StopCapture stops an active capture and closes the file. A no-op when
// no capture is running.
func (s *Streamer) StopCapture() error {
	s.captureMu.Lock()
	defer s.captureMu.Unlock()

	if s.captureFile == nil {
		return nil
	}

	s.isCapturing.Store(false)
	err := s.captureFile.Close()
	s.captureFile = nil
	if err != nil {
		return fmt.Errorf("streamer: failed to close capture file: %w", err)
	}
	return nil
}

// writeCaptureLine appends one frame to the capture file.
func (s *Streamer) writeCaptureLine(frame Frame) {
	s.captureMu.Lock()
	defer s.captureMu.Unlock()

	if s.captureFile == nil {
		return
	}
	_, err := fmt.Fprintf(s.captureFile, "%d %s %s %d\n", frame.Seq, frame.Generator, frame.Bits, frame.Popcount)
	if err != nil {
		applog.Errorf("Streamer: capture write failed: %v", err)
	}
}
