// Package visibility notifies subscribers when a named target becomes visible.
//
// The host reports how much of a target is on screen; subscribers are called on the
// transition from hidden to visible, never on repeated reports of the same state.
package visibility

import (
	"log/slog"
	"sync"

	"github.com/tartampluch/go-folio/internal/config"
)

// Notifier is the capability handed to components that react to visibility.
type Notifier interface {
	Subscribe(target string, fn func(), opts ...Option) (unsubscribe func())
}

// Option tunes a subscription.
type Option func(*subscription)

// Once removes the subscription after its first notification.
func Once() Option {
	return func(s *subscription) { s.once = true }
}

type subscription struct {
	id   uint64
	fn   func()
	once bool
}

// Observer tracks the visibility of targets. It is safe for concurrent use.
type Observer struct {
	threshold float64

	mu      sync.Mutex
	nextID  uint64
	subs    map[string][]*subscription
	visible map[string]bool
}

// New returns an observer that treats a target as visible from the given
// on-screen ratio (0..1). A non-positive threshold selects config.VisibilityThreshold.
func New(threshold float64) *Observer {
	if threshold <= 0 || threshold > 1 {
		threshold = config.VisibilityThreshold
	}
	return &Observer{
		threshold: threshold,
		subs:      make(map[string][]*subscription),
		visible:   make(map[string]bool),
	}
}

// Subscribe registers fn for target. When the target is already visible, fn runs
// on the next transition only.
func (o *Observer) Subscribe(target string, fn func(), opts ...Option) func() {
	s := &subscription{fn: fn}
	for _, opt := range opts {
		opt(s)
	}

	o.mu.Lock()
	o.nextID++
	s.id = o.nextID
	o.subs[target] = append(o.subs[target], s)
	o.mu.Unlock()

	return func() { o.remove(target, s.id) }
}

func (o *Observer) remove(target string, id uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	list := o.subs[target]
	for i, s := range list {
		if s.id == id {
			o.subs[target] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(o.subs[target]) == 0 {
		delete(o.subs, target)
	}
}

// Report records the visible ratio of target and notifies subscribers when the
// target crosses from hidden to visible. Callbacks run outside the lock, in
// subscription order.
func (o *Observer) Report(target string, ratio float64) {
	nowVisible := ratio >= o.threshold

	o.mu.Lock()
	wasVisible := o.visible[target]
	o.visible[target] = nowVisible
	if !nowVisible || wasVisible {
		o.mu.Unlock()
		return
	}

	list := o.subs[target]
	fire := make([]func(), 0, len(list))
	keep := list[:0:0]
	for _, s := range list {
		fire = append(fire, s.fn)
		if !s.once {
			keep = append(keep, s)
		}
	}
	if len(keep) == 0 {
		delete(o.subs, target)
	} else {
		o.subs[target] = keep
	}
	o.mu.Unlock()

	slog.Debug(config.MsgSectionVisible,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyTarget, target)

	for _, fn := range fire {
		fn()
	}
}

// Visible reports the last known state of target.
func (o *Observer) Visible(target string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible[target]
}
