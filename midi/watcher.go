package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"fretwork/debug"
)

// PortEvent is emitted when the active output port connects or disconnects
type PortEvent struct {
	Connected bool
	Name      string
}

// PortWatcher monitors available MIDI output ports and maintains a
// connection to the preferred one. It handles hot-plug (port appears) and
// hot-unplug (port disappears) transparently.
type PortWatcher struct {
	mu        sync.RWMutex
	preferred []string
	excluded  []string
	send      func(gomidi.Message) error
	portName  string
	events    chan PortEvent
	pollRate  time.Duration
}

// NewPortWatcher creates a watcher. Ports matching a preferred pattern are
// picked first; excluded patterns are never auto-connected.
func NewPortWatcher(preferred, excluded []string) *PortWatcher {
	return &PortWatcher{
		preferred: preferred,
		excluded:  excluded,
		events:    make(chan PortEvent, 16),
		pollRate:  time.Second,
	}
}

// Events returns a channel of port connect/disconnect events
func (w *PortWatcher) Events() <-chan PortEvent {
	return w.events
}

// Sender returns the active port's send function, or nil when disconnected
func (w *PortWatcher) Sender() func(gomidi.Message) error {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.send
}

// PortName returns the name of the active port ("" when disconnected)
func (w *PortWatcher) PortName() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.portName
}

// Run starts the polling loop (blocking - run in goroutine)
func (w *PortWatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollRate)
	defer ticker.Stop()

	// Initial scan
	w.scan()

	for {
		select {
		case <-ctx.Done():
			w.disconnect()
			close(w.events)
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *PortWatcher) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	var outPorts []drivers.Out
	select {
	case outPorts = <-ch:
	case <-time.After(3 * time.Second):
		// CoreMIDI is hung - skip this scan
		return
	}

	w.mu.RLock()
	current := w.portName
	w.mu.RUnlock()

	if current != "" {
		// Verify the selected port is still present
		for _, p := range outPorts {
			if p.String() == current {
				return
			}
		}
		debug.Log("midi", "output port disappeared: %s", current)
		w.disconnect()
	}

	port, ok := w.pick(outPorts)
	if !ok {
		return
	}
	if err := w.connect(port); err != nil {
		debug.Log("midi", "connect %s failed: %v", port.String(), err)
	}
}

// pick chooses the output port to connect to: first preferred match, then
// the only non-excluded port if exactly one remains
func (w *PortWatcher) pick(ports []drivers.Out) (drivers.Out, bool) {
	var usable []drivers.Out
	for _, p := range ports {
		if !w.isExcluded(p.String()) {
			usable = append(usable, p)
		}
	}
	for _, pat := range w.preferred {
		for _, p := range usable {
			if containsCI(p.String(), pat) {
				return p, true
			}
		}
	}
	if len(usable) == 1 {
		return usable[0], true
	}
	return nil, false
}

func (w *PortWatcher) isExcluded(name string) bool {
	for _, pat := range w.excluded {
		if containsCI(name, pat) {
			return true
		}
	}
	return false
}

func (w *PortWatcher) connect(port drivers.Out) error {
	send, err := gomidi.SendTo(port)
	if err != nil {
		return err
	}

	w.mu.Lock()
	w.send = send
	w.portName = port.String()
	w.mu.Unlock()

	debug.Log("midi", "connected to %s", port.String())
	w.emit(PortEvent{Connected: true, Name: port.String()})
	return nil
}

func (w *PortWatcher) disconnect() {
	w.mu.Lock()
	name := w.portName
	w.send = nil
	w.portName = ""
	w.mu.Unlock()

	if name != "" {
		w.emit(PortEvent{Connected: false, Name: name})
	}
}

// emit never blocks: when nobody is pumping the channel and the buffer is
// full, the event is dropped so shutdown cannot deadlock.
func (w *PortWatcher) emit(ev PortEvent) {
	select {
	case w.events <- ev:
	default:
		debug.Log("midi", "event buffer full, dropped %+v", ev)
	}
}

func containsCI(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
