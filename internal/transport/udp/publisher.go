// SPDX-License-Identifier: MIT
package udp

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	applog "bitbrush/internal/log"
	"bitbrush/internal/stream"
)

// FrameProvider supplies the most recently emitted pattern frame. The
// streamer implements it; the publisher polls it at its own cadence.
type FrameProvider interface {
	Latest() (stream.Frame, bool)
}

// Publisher periodically fetches the latest pattern frame, packs it
// into a fixed binary format and sends it over UDP. It runs in a
// separate goroutine managed by Start and Stop.
type Publisher struct {
	sender   *Sender       // The underlying UDP sender instance.
	frames   FrameProvider // Source of the latest pattern frame.
	interval time.Duration // The interval at which packets are sent.

	ticker   *time.Ticker   // Ticker that triggers packet sending.
	doneChan chan struct{}  // Signals the publisher goroutine to stop.
	stopOnce sync.Once      // Ensures stop logic runs once per Start/Stop cycle.
	wg       sync.WaitGroup // Waits for the goroutine during Stop.
	mu       sync.Mutex     // Protects ticker and doneChan during Start/Stop.

	sequenceNum  uint32        // Monotonically increasing packet sequence number.
	packetBuffer *bytes.Buffer // Reusable buffer for constructing packets.
}

// NewPublisher creates and initializes a Publisher. It requires a valid
// Sender and FrameProvider. An interval <= 0 defaults to 33ms (~30Hz).
func NewPublisher(interval time.Duration, sender *Sender, frames FrameProvider) (*Publisher, error) {
	if sender == nil {
		return nil, fmt.Errorf("udp publisher: sender cannot be nil")
	}
	if frames == nil {
		return nil, fmt.Errorf("udp publisher: frame provider cannot be nil")
	}

	if interval <= 0 {
		interval = 33 * time.Millisecond
		applog.Warnf("UDP Publisher: invalid interval provided, defaulting to %s", interval)
	}

	return &Publisher{
		sender:       sender,
		frames:       frames,
		interval:     interval,
		packetBuffer: new(bytes.Buffer),
	}, nil
}

// Start begins the periodic publishing process. Safe to call multiple
// times; subsequent calls are no-ops if already running.
func (p *Publisher) Start() {
	p.mu.Lock()
	if p.ticker != nil {
		p.mu.Unlock()
		applog.Warnf("UDP Publisher: Start called but already running.")
		return
	}

	p.ticker = time.NewTicker(p.interval)
	p.doneChan = make(chan struct{})
	p.stopOnce = sync.Once{}

	ticker := p.ticker
	doneChan := p.doneChan

	p.mu.Unlock()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		applog.Infof("UDP Publisher: started (interval: %s)", p.interval)
		for {
			select {
			case <-ticker.C:
				p.buildAndSendPacket()
			case <-doneChan:
				return
			}
		}
	}()
}

// Stop gracefully signals the publisher goroutine to terminate and
// waits for it to exit. Safe to call multiple times.
func (p *Publisher) Stop() error {
	p.mu.Lock()
	if p.ticker == nil {
		p.mu.Unlock()
		applog.Debugf("UDP Publisher: Stop called but not running.")
		return nil
	}

	p.stopOnce.Do(func() {
		close(p.doneChan)
		p.ticker.Stop()
		p.ticker = nil
	})
	p.mu.Unlock()

	p.wg.Wait()
	applog.Infof("UDP Publisher: stopped")
	return nil
}

/*
UDP Packet Structure (BigEndian)

+------------------------------------------------------------------------+
| Field             | Data Type | Size (Bytes) | Description             |
|-------------------|-----------|--------------|-------------------------|
| Sequence Number   | uint32    | 4            | Monotonically increasing|
| Timestamp         | int64     | 8            | Nanoseconds since epoch |
| Width             | uint16    | 2            | Bits per pattern        |
| Popcount          | uint16    | 2            | Set bits in the pattern |
| Pattern           | uint64    | 8            | The pattern value       |
+------------------------------------------------------------------------+
*/

// encodePacket writes one frame into buf using the packet layout above.
func encodePacket(buf *bytes.Buffer, seq uint32, timestamp int64, frame stream.Frame) error {
	buf.Reset()

	err := binary.Write(buf, binary.BigEndian, seq)
	if err == nil {
		err = binary.Write(buf, binary.BigEndian, timestamp)
	}
	if err == nil {
		err = binary.Write(buf, binary.BigEndian, uint16(frame.Width))
	}
	if err == nil {
		err = binary.Write(buf, binary.BigEndian, uint16(frame.Popcount))
	}
	if err == nil {
		err = binary.Write(buf, binary.BigEndian, frame.Value)
	}
	return err
}

// buildAndSendPacket fetches the latest frame, packs it and sends it.
// Nothing is sent before the stream has emitted its first frame.
func (p *Publisher) buildAndSendPacket() {
	frame, ok := p.frames.Latest()
	if !ok {
		return
	}

	p.sequenceNum++
	if err := encodePacket(p.packetBuffer, p.sequenceNum, time.Now().UnixNano(), frame); err != nil {
		applog.Errorf("UDP Publisher: error packing frame: %v", err)
		return
	}

	if err := p.sender.Send(p.packetBuffer.Bytes()); err != nil {
		applog.Errorf("UDP Publisher: error sending packet: %v", err)
	}
}
