package stream

import (
	"context"
	"log"
	"time"
)

// A Sink displays frames: an MQTT topic, a terminal, an HTTP snapshot.
type Sink interface {
	Show(f *Frame) error
}

// Streamer is the frame pump. It advances the controller at a fixed rate,
// rotates targets on a slower ticker and applies remote control messages,
// all from the goroutine that calls Run.
type Streamer struct {
	controller    *Controller
	sinks         []Sink
	frameInterval time.Duration
	cycleInterval time.Duration
	control       chan ControlMessage
}

// NewStreamer creates a Streamer. A zero cycle disables target rotation.
func NewStreamer(controller *Controller, frameRate float64, cycle time.Duration, sinks ...Sink) *Streamer {
	s := new(Streamer)
	s.controller = controller
	s.sinks = sinks
	s.frameInterval = time.Duration(float64(time.Second) / frameRate)
	s.cycleInterval = cycle
	s.control = make(chan ControlMessage, 16)
	return s
}

// Control returns the channel remote retargets are delivered on. It is safe
// to send on from any goroutine.
func (s *Streamer) Control() chan<- ControlMessage {
	return s.control
}

// SendFrame calculates one frame and hands it to every sink.
func (s *Streamer) SendFrame() {
	f := s.controller.CalculateFrame()
	for _, sink := range s.sinks {
		if err := sink.Show(f); err != nil {
			log.Printf("Sink %T: %v", sink, err)
		}
	}
}

// Run sends frames until ctx is done.
func (s *Streamer) Run(ctx context.Context) {
	frameTimer := time.NewTicker(s.frameInterval)
	defer frameTimer.Stop()

	var cycle <-chan time.Time
	if s.cycleInterval > 0 {
		cycleTimer := time.NewTicker(s.cycleInterval)
		defer cycleTimer.Stop()
		cycle = cycleTimer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-frameTimer.C:
			s.SendFrame()
		case <-cycle:
			s.controller.Cycle()
		case m := <-s.control:
			if err := s.apply(m); err != nil {
				log.Printf("Control %+v: %v", m, err)
			}
		}
	}
}

func (s *Streamer) apply(m ControlMessage) error {
	switch m.Type {
	case "", ControlRetarget:
		return s.controller.Retarget(m)
	case ControlRestart:
		s.controller.Restart()
	case ControlStop:
		s.controller.Stop()
	case ControlCycle:
		s.controller.Cycle()
	default:
		log.Printf("Ignoring control message of type %q", m.Type)
	}
	return nil
}
