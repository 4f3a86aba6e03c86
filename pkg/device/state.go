package device

import "sync/atomic"

// ErrorState is a last-error slot. Every operation overwrites it: success
// resets it to KindNone, failure stores the failing Kind.
//
// The slot is updated atomically, but a slot shared by several goroutines can
// still report another goroutine's outcome. Read it right after the call it
// describes, or use the error returned by that call.
type ErrorState struct {
	kind atomic.Int64
}

// Record stores the outcome of err and returns err unchanged.
func (s *ErrorState) Record(err error) error {
	s.kind.Store(int64(KindOf(err)))
	return err
}

func (s *ErrorState) Kind() Kind {
	return Kind(s.kind.Load())
}

// Message maps the current kind to its fixed sentence.
func (s *ErrorState) Message() string {
	return s.Kind().Message()
}

func (s *ErrorState) Reset() {
	s.kind.Store(int64(KindNone))
}
