package core

import (
	"context"
	"errors"
	"fmt"
)

type FaultKind string

const (
	FaultLoad      FaultKind = "load"
	FaultTransport FaultKind = "transport"
	FaultRender    FaultKind = "render"
)

type Fault struct {
	Kind    FaultKind `json:"kind"`
	Message string    `json:"message"`
}

func (f *Fault) Error() string {
	return f.Message
}

const DefaultFaultMessage = "An error occurred"

// ErrSuperseded marks a result the collaborator refused because a newer
// snapshot already reached it.
var ErrSuperseded = errors.New("superseded by a newer snapshot")

type LoadError struct {
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return DefaultFaultMessage
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

type TransportError struct {
	Status  int
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return DefaultFaultMessage
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FaultFrom converts a pipeline error into the fault shown to the user.
func FaultFrom(err error) *Fault {
	if err == nil {
		return nil
	}

	var f *Fault
	if errors.As(err, &f) {
		return f
	}

	var te *TransportError
	if errors.As(err, &te) {
		return &Fault{Kind: FaultTransport, Message: te.Error()}
	}

	var le *LoadError
	if errors.As(err, &le) {
		return &Fault{Kind: FaultLoad, Message: le.Error()}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Fault{Kind: FaultLoad, Message: "loading the component timed out"}
	}

	msg := err.Error()
	if msg == "" {
		msg = DefaultFaultMessage
	}
	return &Fault{Kind: FaultLoad, Message: msg}
}
