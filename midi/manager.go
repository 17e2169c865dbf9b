package midi

import (
	"context"
	"slices"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"

	"go-midifx/debug"
)

// PortDir tells inputs from outputs
type PortDir int

const (
	PortIn PortDir = iota
	PortOut
)

func (d PortDir) String() string {
	if d == PortOut {
		return "out"
	}
	return "in"
}

// PortEventType is the kind of hot-plug change
type PortEventType int

const (
	PortAdded PortEventType = iota
	PortRemoved
)

// PortEvent is emitted when a port appears or disappears
type PortEvent struct {
	Type PortEventType
	Dir  PortDir
	Name string
}

// Lister returns the names of the current input and output ports
type Lister func() (in, out []string)

// SystemPorts lists the ports of the registered driver
func SystemPorts() (in, out []string) {
	for _, p := range gomidi.GetInPorts() {
		in = append(in, p.String())
	}
	for _, p := range gomidi.GetOutPorts() {
		out = append(out, p.String())
	}
	return in, out
}

// PortManager polls the port list and reports hot-plug changes
type PortManager struct {
	list     Lister
	inputs   map[string]bool
	outputs  map[string]bool
	mu       sync.RWMutex
	events   chan PortEvent
	pollRate time.Duration
	timeout  time.Duration
}

// NewPortManager creates a manager over list (SystemPorts if nil)
func NewPortManager(list Lister) *PortManager {
	if list == nil {
		list = SystemPorts
	}
	return &PortManager{
		list:     list,
		inputs:   make(map[string]bool),
		outputs:  make(map[string]bool),
		events:   make(chan PortEvent, 16),
		pollRate: time.Second,
		timeout:  3 * time.Second,
	}
}

// Events returns a channel of port add/remove events. It is closed when
// Run returns.
func (pm *PortManager) Events() <-chan PortEvent {
	return pm.events
}

// Inputs returns the known input port names, sorted
func (pm *PortManager) Inputs() []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return sortedKeys(pm.inputs)
}

// Outputs returns the known output port names, sorted
func (pm *PortManager) Outputs() []string {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return sortedKeys(pm.outputs)
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Run starts the polling loop (blocking - run in goroutine)
func (pm *PortManager) Run(ctx context.Context) {
	ticker := time.NewTicker(pm.pollRate)
	defer ticker.Stop()
	defer close(pm.events)

	// Initial scan
	pm.scan()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pm.scan()
		}
	}
}

func (pm *PortManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	type portsResult struct {
		in, out []string
	}

	ch := make(chan portsResult, 1)
	go func() {
		in, out := pm.list()
		ch <- portsResult{in: in, out: out}
	}()

	var result portsResult
	select {
	case result = <-ch:
	case <-time.After(pm.timeout):
		// Driver is hung - skip this scan
		debug.Log("ports", "port listing timed out after %s", pm.timeout)
		return
	}

	pm.mu.Lock()
	changes := diffPorts(pm.inputs, result.in, PortIn)
	changes = append(changes, diffPorts(pm.outputs, result.out, PortOut)...)
	pm.mu.Unlock()

	for _, ev := range changes {
		debug.Log("ports", "%s %s %q", ev.Dir, eventVerb(ev.Type), ev.Name)
		select {
		case pm.events <- ev:
		default:
			debug.Log("ports", "event channel full, dropped %q", ev.Name)
		}
	}
}

// diffPorts updates known to match seen and returns the changes
func diffPorts(known map[string]bool, seen []string, dir PortDir) []PortEvent {
	var changes []PortEvent

	now := make(map[string]bool, len(seen))
	for _, name := range seen {
		now[name] = true
		if !known[name] {
			known[name] = true
			changes = append(changes, PortEvent{Type: PortAdded, Dir: dir, Name: name})
		}
	}

	var gone []string
	for name := range known {
		if !now[name] {
			gone = append(gone, name)
		}
	}
	slices.Sort(gone)
	for _, name := range gone {
		delete(known, name)
		changes = append(changes, PortEvent{Type: PortRemoved, Dir: dir, Name: name})
	}
	return changes
}

func eventVerb(t PortEventType) string {
	if t == PortRemoved {
		return "removed"
	}
	return "added"
}
