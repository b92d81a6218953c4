package main

import (
	"context"

	"github.com/swdee/go-kinectviz/display"
)

const keyEscape = 27

// modeKeys maps window key presses to display modes.  Presses are queued
// and applied once the current frame has been presented.
type modeKeys struct {
	ctrl    *display.Controller
	quit    context.CancelFunc
	pending []display.Mode
}

func newModeKeys(quit context.CancelFunc) *modeKeys {
	return &modeKeys{quit: quit}
}

// Press handles a key, '1' selects the first mode
func (k *modeKeys) Press(key int) {

	switch {
	case key == 'q' || key == keyEscape:
		k.quit()

	case key >= '1' && key < '1'+len(display.Modes()):
		k.pending = append(k.pending, display.Modes()[key-'1'])
	}
}

// Present applies queued mode changes
func (k *modeKeys) Present(*display.View) error {

	for _, m := range k.pending {
		if k.ctrl != nil && m != k.ctrl.Mode() {
			if err := k.ctrl.SetMode(m); err != nil {
				return err
			}
		}
	}

	k.pending = k.pending[:0]

	return nil
}
