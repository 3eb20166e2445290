package shell

import "sync"

// Alerts queues alert messages raised by the controller until the shell
// prints them. It implements controller.Alerter.
type Alerts struct {
	mu      sync.Mutex
	pending []string
}

// NewAlerts returns an empty queue.
func NewAlerts() *Alerts {
	return &Alerts{}
}

// Alert queues message.
func (a *Alerts) Alert(message string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = append(a.pending, message)
}

// Drain returns the queued messages in the order they were raised and
// empties the queue.
func (a *Alerts) Drain() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	msgs := a.pending
	a.pending = nil
	return msgs
}
