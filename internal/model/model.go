// Package model holds value types shared across the ingest service that
// don't belong to any single component.
package model

import (
	"fmt"
	"runtime/debug"

	"github.com/khaledhikmat/visiongrid/internal/lgr"
)

// CustomError carries enough context to diagnose a failure that occurred off
// the RPC boundary (inside a capture worker or a backend), without ever
// being marshaled back to a caller.
type CustomError struct {
	Processor  string                 `json:"processor"`
	Inner      error                  `json:"innerError"`
	Message    string                 `json:"message"`
	StackTrace string                 `json:"stackTrace"`
	Misc       map[string]interface{} `json:"misc"`
}

func (e CustomError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("%s: %s: %v", e.Processor, e.Message, e.Inner)
	}
	return fmt.Sprintf("%s: %s", e.Processor, e.Message)
}

func (e CustomError) Unwrap() error {
	return e.Inner
}

// GenError builds a CustomError, capturing the current goroutine's stack.
// A non-nil inner error is run through lgr.Wrap first so it carries its own
// stack trace independent of the debug.Stack() snapshot taken here.
func GenError(proc string, err error, misc map[string]interface{}, messagef string, args ...interface{}) CustomError {
	if err != nil {
		err = lgr.Wrap(err)
	}
	return CustomError{
		Processor:  proc,
		Inner:      err,
		Message:    fmt.Sprintf(messagef, args...),
		StackTrace: string(debug.Stack()),
		Misc:       misc,
	}
}

// SessionStats is the periodic, per-session reporting record emitted by a
// capture/processing worker, in the shape of the teacher's StreamerStats.
type SessionStats struct {
	CameraID    string  `json:"cameraId"`
	Frames      int64   `json:"frames"`
	Errors      int64   `json:"errors"`
	Detections  int64   `json:"detections"`
	Uptime      int64   `json:"uptime"`
	FPS         float64 `json:"fps"`
	AvgProcTime float64 `json:"avgProcTime"`
	Timestamp   int64   `json:"timestamp"`
}
