package fx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned for effect type names outside the closed set
var ErrUnknownKind = errors.New("unknown effect type")

// Kind identifies an effect variant
type Kind int

const (
	KindTranspose Kind = iota
	KindQuantize
	KindSwing
	KindHumanize
	KindChance
	KindEcho
	KindArpeggiator
	KindHarmonizer
)

var kindNames = [...]string{
	KindTranspose:   "Transpose",
	KindQuantize:    "Quantize",
	KindSwing:       "Swing",
	KindHumanize:    "Humanize",
	KindChance:      "Chance",
	KindEcho:        "Echo",
	KindArpeggiator: "Arpeggiator",
	KindHarmonizer:  "Harmonizer",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds lists every effect variant in menu order
func Kinds() []Kind {
	kinds := make([]Kind, len(kindNames))
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// ParseKind looks up a kind by display name (case-insensitive)
func ParseKind(name string) (Kind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// New creates an effect of the given kind with default parameters
func New(kind Kind) (Effect, error) {
	switch kind {
	case KindTranspose:
		return NewTranspose(), nil
	case KindQuantize:
		return NewQuantize(), nil
	case KindSwing:
		return NewSwing(), nil
	case KindHumanize:
		return NewHumanize(), nil
	case KindChance:
		return NewChance(), nil
	case KindEcho:
		return NewEcho(), nil
	case KindArpeggiator:
		return NewArpeggiator(), nil
	case KindHarmonizer:
		return NewHarmonizer(), nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
}
