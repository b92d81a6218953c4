package display

import (
	"errors"
	"fmt"
	"strings"

	"github.com/swdee/go-kinectviz"
)

// ErrUnknownMode is returned for a display mode that does not exist
var ErrUnknownMode = errors.New("unknown display mode")

// Mode selects what the controller renders
type Mode int

const (
	// Infrared shows the infrared stream
	Infrared Mode = iota
	// Color shows the color stream
	Color
	// Depth shows the depth stream as grey scale
	Depth
	// BodyMask shows color pixels occupied by a tracked body
	BodyMask
	// BodyJoints draws the tracked skeletons
	BodyJoints
	// BackgroundRemoved shows color pixels closer than a depth threshold
	BackgroundRemoved
	// FaceOnColor draws face results over the color stream
	FaceOnColor
	// FaceOnInfrared draws face results over the infrared stream
	FaceOnInfrared
)

var modeNames = [...]string{
	"Infrared", "Color", "Depth", "BodyMask", "BodyJoints",
	"BackgroundRemoved", "FaceOnColor", "FaceOnInfrared",
}

// Modes returns every display mode
func Modes() []Mode {
	modes := make([]Mode, len(modeNames))
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// String returns the mode name
func (m Mode) String() string {
	if !m.valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

func (m Mode) valid() bool {
	return m >= 0 && int(m) < len(modeNames)
}

// ParseMode returns the mode with the given name, matched case insensitively
func ParseMode(name string) (Mode, error) {

	for i, n := range modeNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Mode(i), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownMode)
}

// Sources returns the streams a mode needs from the frame source
func (m Mode) Sources() kinectviz.SourceType {

	switch m {
	case Infrared:
		return kinectviz.SourceInfrared
	case Color:
		return kinectviz.SourceColor
	case Depth:
		return kinectviz.SourceDepth
	case BodyMask:
		return kinectviz.SourceColor | kinectviz.SourceDepth | kinectviz.SourceBodyIndex
	case BodyJoints:
		return kinectviz.SourceBody
	case BackgroundRemoved:
		return kinectviz.SourceColor | kinectviz.SourceDepth
	case FaceOnColor:
		return kinectviz.SourceColor | kinectviz.SourceBody
	case FaceOnInfrared:
		return kinectviz.SourceInfrared | kinectviz.SourceBody
	}

	return 0
}

// displaySource is the stream whose dimensions the displayed image has
func (m Mode) displaySource() kinectviz.SourceType {

	switch m {
	case Infrared, FaceOnInfrared:
		return kinectviz.SourceInfrared
	case Depth, BodyJoints:
		return kinectviz.SourceDepth
	}

	return kinectviz.SourceColor
}
