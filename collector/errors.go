package collector

import "fmt"

// TransportErrorKind classifies what went wrong while talking to an upstream.
// Callers branch on the kind instead of poking at wrapped HTTP details.
type TransportErrorKind string

const (
	TransportAuth             TransportErrorKind = "auth"
	TransportNotFound         TransportErrorKind = "not_found"
	TransportServer           TransportErrorKind = "server"
	TransportUnexpectedStatus TransportErrorKind = "unexpected_status"
	TransportEmptyResponse    TransportErrorKind = "empty_response"
	TransportInvalidJSON      TransportErrorKind = "invalid_json"
	TransportTimeout          TransportErrorKind = "timeout"
	TransportNetwork          TransportErrorKind = "network"
)

// TransportError is the only error type that crosses a source adapter's
// boundary. Anything lower level gets wrapped into one.
type TransportError struct {
	Kind    TransportErrorKind
	Source  string
	Message string
	Cause   error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Source, e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Source, e.Kind, e.Message)
}

func (e *TransportError) Unwrap() error { return e.Cause }

func NewTransportError(kind TransportErrorKind, source, message string, cause error) *TransportError {
	return &TransportError{Kind: kind, Source: source, Message: message, Cause: cause}
}

// MissingFieldError reports that none of the alias keys tried for a required
// field were present. The tried keys are part of the message so upstream
// payload drift is diagnosable from logs alone.
type MissingFieldError struct {
	Field     string
	TriedKeys []string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q, tried keys %v", e.Field, e.TriedKeys)
}

// ValidationError marks a record that parsed fine but failed a plausibility
// check (bad URL prefix, placeholder id, community mismatch).
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// Rejection pairs a dropped record's identity with why it was dropped. Batch
// results carry accepted records and rejections side by side so one bad row
// never fails the run.
type Rejection struct {
	ID     string
	Reason string
}
