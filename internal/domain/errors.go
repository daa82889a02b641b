package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrAlreadyRegistered = errors.New("already registered")
)

// FailureKind discriminates upstream failures so the API layer can map
// them to status codes without string matching.
type FailureKind int

const (
	FailureNetwork FailureKind = iota
	FailureHTTPStatus
	FailureDecode
)

func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureHTTPStatus:
		return "http_status"
	case FailureDecode:
		return "decode"
	}
	return "unknown"
}

// UpstreamError is any failed call to an external service: transport
// error, non-2xx status, or undecodable body.
type UpstreamError struct {
	Service string
	Kind    FailureKind
	Status  int // set for FailureHTTPStatus
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Kind == FailureHTTPStatus {
		return fmt.Sprintf("%s: upstream status %d", e.Service, e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ValidationError lists the required submission fields absent from a
// caller payload. The payload is never forwarded upstream.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
