package render

import (
	"fmt"
	"io"
	"net/http"
	"sync"

	"gocv.io/x/gocv"
	"go.uber.org/zap"

	"github.com/swdee/go-kinectviz/display"
)

// Stream serves presented views to browsers as an MJPEG stream
type Stream struct {
	r   *Renderer
	img gocv.Mat
	log *zap.SugaredLogger

	mu     sync.Mutex
	latest []byte
	// ready is closed and replaced when a new frame is encoded
	ready chan struct{}
}

// NewStream returns a streaming surface, register it as an http.Handler
func NewStream(r *Renderer, log *zap.SugaredLogger) *Stream {

	if log == nil {
		log = zap.NewNop().Sugar()
	}

	return &Stream{
		r:     r,
		img:   gocv.NewMat(),
		log:   log,
		ready: make(chan struct{}),
	}
}

// Present renders a view and encodes it as the latest JPEG frame
func (s *Stream) Present(v *display.View) error {

	if err := s.r.Render(v, &s.img); err != nil {
		return err
	}

	buf, err := gocv.IMEncode(".jpg", s.img)

	if err != nil {
		return fmt.Errorf("error encoding frame: %w", err)
	}

	jpg := append([]byte(nil), buf.GetBytes()...)
	buf.Close()

	s.mu.Lock()
	s.latest = jpg
	close(s.ready)
	s.ready = make(chan struct{})
	s.mu.Unlock()

	return nil
}

// ServeHTTP streams frames to a client until it disconnects
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	s.log.Infow("stream client connected", "remote", r.RemoteAddr)

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	flusher, _ := w.(http.Flusher)

	for {
		s.mu.Lock()
		ready := s.ready
		s.mu.Unlock()

		select {
		case <-r.Context().Done():
			s.log.Infow("stream client disconnected", "remote", r.RemoteAddr)
			return

		case <-ready:
		}

		s.mu.Lock()
		jpg := s.latest
		s.mu.Unlock()

		if err := writePart(w, jpg); err != nil {
			s.log.Debugw("stream write failed", "remote", r.RemoteAddr, "error", err)
			return
		}

		if flusher != nil {
			flusher.Flush()
		}
	}
}

// writePart writes one JPEG part of the multipart stream, stopping at the
// first failed write
func writePart(w io.Writer, jpg []byte) error {

	parts := [][]byte{
		[]byte("--frame\r\n"),
		[]byte("Content-Type: image/jpeg\r\n\r\n"),
		jpg,
		[]byte("\r\n"),
	}

	for _, p := range parts {
		if _, err := w.Write(p); err != nil {
			return err
		}
	}

	return nil
}

// Close frees the stream image
func (s *Stream) Close() error {
	return s.img.Close()
}
