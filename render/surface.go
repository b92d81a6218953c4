package render

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/swdee/go-kinectviz/display"
)

// ErrWindowClosed is returned by a Window surface once the user closed it
var ErrWindowClosed = errors.New("window closed")

// Window shows views in a GoCV window
type Window struct {
	r   *Renderer
	win *gocv.Window
	img gocv.Mat
	// OnKey is called with every key pressed while the window has focus,
	// after the view has been shown
	OnKey func(key int)
}

// NewWindow opens a window with the given title
func NewWindow(title string, r *Renderer) *Window {
	return &Window{
		r:   r,
		win: gocv.NewWindow(title),
		img: gocv.NewMat(),
	}
}

// Present renders and shows a view
func (w *Window) Present(v *display.View) error {

	if !w.win.IsOpen() {
		return ErrWindowClosed
	}

	if err := w.r.Render(v, &w.img); err != nil {
		return err
	}

	w.win.IMShow(w.img)

	if key := w.win.WaitKey(1); key >= 0 && w.OnKey != nil {
		w.OnKey(key)
	}

	return nil
}

// Close closes the window
func (w *Window) Close() error {
	w.img.Close()
	return w.win.Close()
}

// Snapshot writes every Nth view to an image file
type Snapshot struct {
	r *Renderer
	// pattern is a fmt pattern for the file name given the frame number
	pattern string
	every   int
	count   int
	img     gocv.Mat
}

// NewSnapshot returns a surface saving one in every views to files named
// by pattern, eg: "/tmp/frame-%04d.jpg"
func NewSnapshot(pattern string, every int, r *Renderer) *Snapshot {

	if every < 1 {
		every = 1
	}

	return &Snapshot{
		r:       r,
		pattern: pattern,
		every:   every,
		img:     gocv.NewMat(),
	}
}

// Present renders a view and saves it when due
func (s *Snapshot) Present(v *display.View) error {

	n := s.count
	s.count++

	if n%s.every != 0 {
		return nil
	}

	if err := s.r.Render(v, &s.img); err != nil {
		return err
	}

	file := fmt.Sprintf(s.pattern, n)

	if ok := gocv.IMWrite(file, s.img); !ok {
		return fmt.Errorf("error writing snapshot %s", file)
	}

	return nil
}

// Close frees the snapshot image
func (s *Snapshot) Close() error {
	return s.img.Close()
}

// Fanout presents every view on several surfaces in order
type Fanout []display.Surface

// Present passes the view to each surface, stopping at the first error
func (f Fanout) Present(v *display.View) error {

	for _, s := range f {
		if err := s.Present(v); err != nil {
			return err
		}
	}

	return nil
}
