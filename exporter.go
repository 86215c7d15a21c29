package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/anastasop/iboard/board"
)

// exportRequest is a request to the exporter for a board snapshot.
type exportRequest struct {
	img *image.RGBA // must not be modified after the request
	at  time.Time
}

// exportResult reports where an export went.
type exportResult struct {
	path string
	err  error
}

// Exporter encodes and saves board snapshots in the background, so that
// drawing goes on while a large board is being written.
type Exporter struct {
	dir    string
	plumb  bool
	reqC   chan<- exportRequest
	doneC  chan exportResult
	exited chan struct{}
}

// NewExporter returns an Exporter writing to dir. It starts a goroutine
// that saves the snapshots. Caller must call Close to release it after use.
func NewExporter(dir string, plumb bool) *Exporter {
	x := &Exporter{
		dir:    dir,
		plumb:  plumb,
		doneC:  make(chan exportResult, 4),
		exited: make(chan struct{}),
	}
	x.startWriter()
	return x
}

// Export queues img for saving and reports whether it was accepted. It
// does not wait; the outcome arrives on Done.
func (x *Exporter) Export(img *image.RGBA, at time.Time) bool {
	select {
	case x.reqC <- exportRequest{img, at}:
		return true
	default:
		log.Printf("export: busy, dropped snapshot of %v", at.Format(time.TimeOnly))
		return false
	}
}

// Done delivers the outcome of every export.
func (x *Exporter) Done() <-chan exportResult {
	return x.doneC
}

// Close waits for queued exports and stops the writer. After this the
// exporter is unusable.
func (x *Exporter) Close() {
	if x.reqC != nil {
		close(x.reqC)
		<-x.exited
	}
	x.reqC = nil
}

// startWriter launches the goroutine that saves snapshots.
// All requests should be sent to x.reqC.
func (x *Exporter) startWriter() {
	in := make(chan exportRequest, 2)
	x.reqC = in
	go func() {
		defer close(x.exited)
		for req := range in {
			start := time.Now()
			path, err := x.save(req)
			if *verbose {
				log.Printf("export %s: time %v", path, time.Since(start))
			}
			if err == nil && x.plumb {
				plumbFile(path)
			}
			select {
			case x.doneC <- exportResult{path, err}:
			default:
				log.Printf("export %s: result dropped: %v", path, err)
			}
		}
	}()
}

// save encodes the snapshot and writes it to the output directory.
func (x *Exporter) save(req exportRequest) (string, error) {
	ex, err := board.Encode(req.img, req.at)
	if err != nil {
		return "", err
	}
	path := filepath.Join(x.dir, ex.Name)
	if err := os.WriteFile(path, ex.Data, 0o644); err != nil {
		return "", fmt.Errorf("export: %w", err)
	}
	return path, nil
}
