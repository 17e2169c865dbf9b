package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// SendFunc writes one message to a port
type SendFunc func(gomidi.Message) error

// OpenOutput opens the named output port for sending
func OpenOutput(name string) (SendFunc, error) {
	port, err := gomidi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("find output %q: %w", name, err)
	}
	send, err := gomidi.SendTo(port)
	if err != nil {
		return nil, fmt.Errorf("open output: %w", err)
	}
	return send, nil
}

// SendEvents writes events in order, stopping at the first error
func SendEvents(send SendFunc, events []Event) error {
	for _, e := range events {
		if err := send(e.Message()); err != nil {
			return err
		}
	}
	return nil
}
