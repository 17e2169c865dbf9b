package sequencer

import (
	"errors"
	"fmt"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

var (
	ErrTrackNotFound = errors.New("track not found")
	ErrClipNotFound  = errors.New("clip not found")
	ErrNoSaves       = errors.New("no saves found")
)

func trackNotFound(id TrackID) error {
	return fault.Wrap(ErrTrackNotFound,
		fmsg.WithDesc(fmt.Sprintf("track %d", id), fmt.Sprintf("Track %d does not exist", id)),
		ftag.With(ftag.NotFound),
	)
}

func clipNotFound(id ClipID) error {
	return fault.Wrap(ErrClipNotFound,
		fmsg.WithDesc(fmt.Sprintf("clip %d", id), fmt.Sprintf("Clip %d does not exist", id)),
		ftag.With(ftag.NotFound),
	)
}
