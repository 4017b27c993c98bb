package fitcore

import "github.com/lucasjlepore/fitcore/fitio"

// Handler processes one decoded Message of a given message kind.
type Handler func(msg *fitio.Message) error

// Dispatcher normalises each decoded record through the monotone Clock
// pre-step, then routes it to a per-message-kind handler. It is the base
// component ActivityBuilder extends; a caller with simpler needs can
// register its own handler table directly.
type Dispatcher struct {
	Clock    Clock
	handlers map[string]Handler
	other    Handler
}

// NewDispatcher returns an empty Dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: map[string]Handler{}}
}

// On registers the handler for one message kind (by its static-table
// global name, e.g. "session", "record", "lap").
func (d *Dispatcher) On(kind string, h Handler) {
	d.handlers[kind] = h
}

// OnOther registers the fallback handler invoked for message kinds with no
// specific registration.
func (d *Dispatcher) OnOther(h Handler) {
	d.other = h
}

// Dispatch runs the clock pre-step and routes msg to its handler.
func (d *Dispatcher) Dispatch(msg *fitio.Message) error {
	d.Clock.UpdateTimestamp(msg)
	if h, ok := d.handlers[msg.GlobalName]; ok {
		return h(msg)
	}
	if d.other != nil {
		return d.other(msg)
	}
	return nil
}
