package fx

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseChain builds a chain from a compact description such as
// "transpose:semitones=12,echo:repeats=2:decay=50". Effects are separated
// by commas, parameters follow the kind name after colons.
func ParseChain(desc string) (*Chain, error) {
	c := NewChain()
	for _, item := range strings.Split(desc, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		fields := strings.Split(item, ":")
		kind, err := ParseKind(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, err
		}
		e, err := New(kind)
		if err != nil {
			return nil, err
		}

		for _, kv := range fields[1:] {
			name, raw, ok := strings.Cut(kv, "=")
			if !ok {
				return nil, fmt.Errorf("%s: expected name=value, got %q", e.Name(), kv)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: %w", e.Name(), name, err)
			}
			if !e.SetParam(strings.TrimSpace(name), v) {
				return nil, fmt.Errorf("%w: %s.%s", ErrNoSuchParam, e.Name(), name)
			}
		}

		if err := c.Add(e); err != nil {
			return nil, err
		}
	}
	return c, nil
}
