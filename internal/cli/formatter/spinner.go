package formatter

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

// Spinner animates one status line on w until stopped. It is meant for
// plain cobra commands; bubbletea programs use bubbles/spinner directly.
type Spinner struct {
	w       io.Writer
	message string
	style   spinner.Spinner

	once sync.Once
	quit chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner writing to w with the braille dot frames.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		style:   spinner.Dot,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start begins the animation. Call Stop to end it.
func (s *Spinner) Start() {
	fps := s.style.FPS
	if fps <= 0 {
		fps = 100 * time.Millisecond
	}
	go func() {
		defer close(s.done)
		tk := time.NewTicker(fps)
		defer tk.Stop()
		for frame := 0; ; frame++ {
			fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(s.style.Frames[frame%len(s.style.Frames)]), Dim(s.message))
			select {
			case <-s.quit:
				fmt.Fprint(s.w, "\r\033[K")
				return
			case <-tk.C:
			}
		}
	}()
}

// Stop clears the line and waits for the animation to exit. Extra calls
// are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		<-s.done
	})
}

// StartSpinner creates and starts a spinner, returning its Stop function.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
