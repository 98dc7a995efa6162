package midi

import (
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"fretwork/debug"
)

// Player arpeggiates a sequence of MIDI notes through the watcher's active
// output port. Starting a new sequence cancels the one in flight; every
// started note is always released, including on Stop.
type Player struct {
	watcher *PortWatcher
	channel uint8
	noteDur time.Duration

	mu   sync.Mutex
	stop chan struct{}
}

// NewPlayer creates a player sending on the given channel with the given
// per-note duration in milliseconds.
func NewPlayer(watcher *PortWatcher, channel uint8, noteMillis int) *Player {
	return &Player{
		watcher: watcher,
		channel: channel,
		noteDur: time.Duration(noteMillis) * time.Millisecond,
	}
}

// Play starts the sequence in a goroutine and returns immediately. Notes are
// dropped silently when no output port is connected.
func (p *Player) Play(notes []int) {
	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
	}
	stop := make(chan struct{})
	p.stop = stop
	p.mu.Unlock()

	send := p.watcher.Sender()
	if send == nil {
		debug.Log("player", "no output port, %d notes dropped", len(notes))
		return
	}

	go func() {
		for _, n := range notes {
			if n < 0 || n > 127 {
				continue
			}
			key := uint8(n)
			if err := send(gomidi.NoteOn(p.channel, key, 100)); err != nil {
				debug.Log("player", "note on failed: %v", err)
				return
			}
			select {
			case <-stop:
				send(gomidi.NoteOff(p.channel, key))
				return
			case <-time.After(p.noteDur):
			}
			send(gomidi.NoteOff(p.channel, key))
		}
	}()
}

// Stop cancels the sequence in flight, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}
