package midi

import (
	"fmt"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// Timed is a note event stamped with its arrival time
type Timed struct {
	Event Event
	At    time.Time
}

// Input delivers note events from one input port
type Input struct {
	name     string
	stopFunc func()
	notes    chan Timed
}

// OpenInput starts listening on the named input port
func OpenInput(name string) (*Input, error) {
	port, err := gomidi.FindInPort(name)
	if err != nil {
		return nil, fmt.Errorf("find input %q: %w", name, err)
	}
	return ListenInput(port)
}

// ListenInput starts listening on an already resolved port
func ListenInput(port drivers.In) (*Input, error) {
	in := &Input{
		name:  port.String(),
		notes: make(chan Timed, 64),
	}

	stop, err := gomidi.ListenTo(port, func(msg gomidi.Message, timestampms int32) {
		ev, ok := FromMessage(msg, 0)
		if !ok {
			return
		}
		select {
		case in.notes <- Timed{Event: ev, At: time.Now()}:
		default:
			// Drop if channel full
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	in.stopFunc = stop

	return in, nil
}

// Name returns the port name
func (in *Input) Name() string {
	return in.name
}

// Notes returns the channel of incoming note events
func (in *Input) Notes() <-chan Timed {
	return in.notes
}

// Close stops listening. Notes is not closed, since the driver may still
// be delivering.
func (in *Input) Close() error {
	if in.stopFunc != nil {
		in.stopFunc()
	}
	return nil
}
