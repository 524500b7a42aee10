// Package anim provides a duration-table animator: it owns no frames or
// rendering, only clip timers, and fires a finished notification when the
// playing clip's duration elapses. It implements the combat core's
// Animator interface for headless runs and for the demo app.
package anim

import "log"

// Animator tracks one playing clip at a time
type Animator struct {
	clips map[string]float64

	current   string
	elapsed   float64
	backwards bool
	playing   bool

	onFinished func(name string)
}

// New creates an empty animator
func New() *Animator {
	return &Animator{clips: make(map[string]float64)}
}

// AddClip registers a clip and its duration in seconds
func (a *Animator) AddClip(name string, duration float64) {
	a.clips[name] = duration
}

// SetOnFinished registers the completion callback, typically the state
// machine's AnimationFinished
func (a *Animator) SetOnFinished(fn func(name string)) {
	a.onFinished = fn
}

// HasAnimation reports whether a clip is registered under name
func (a *Animator) HasAnimation(name string) bool {
	_, ok := a.clips[name]
	return ok
}

// Play starts a clip from its beginning
func (a *Animator) Play(name string) {
	a.start(name, false)
}

// PlayBackwards starts a clip from its end
func (a *Animator) PlayBackwards(name string) {
	a.start(name, true)
}

func (a *Animator) start(name string, backwards bool) {
	if _, ok := a.clips[name]; !ok {
		log.Printf("anim: no clip %q", name)
		return
	}
	a.current = name
	a.elapsed = 0
	a.backwards = backwards
	a.playing = true
}

// Playing returns the clip currently playing, or the empty string
func (a *Animator) Playing() string {
	if !a.playing {
		return ""
	}
	return a.current
}

// IsBackwards reports whether the current clip plays in reverse
func (a *Animator) IsBackwards() bool {
	return a.playing && a.backwards
}

// Update advances the playing clip by dt seconds and fires the finished
// callback once its duration elapses. Playback direction does not change
// the clip's duration.
func (a *Animator) Update(dt float64) {
	if !a.playing {
		return
	}
	a.elapsed += dt
	if a.elapsed < a.clips[a.current] {
		return
	}
	a.playing = false
	if a.onFinished != nil {
		a.onFinished(a.current)
	}
}
