// Package sound provides SoundEngine implementations. Actual playback
// happens in the presenter's browser; the server-side engines only need to
// be observable and must never block or fail.
package sound

import "log"

// LogEngine writes each effect to the process log.
type LogEngine struct{}

func NewLogEngine() LogEngine { return LogEngine{} }

func (LogEngine) Play(event string) {
	log.Printf("sound: %s", event)
}

// Recorder collects effects in order; test helper.
type Recorder struct {
	Events []string
}

func (r *Recorder) Play(event string) {
	r.Events = append(r.Events, event)
}
