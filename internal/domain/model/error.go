package model

import "errors"

// ErrorKind classifies domain failures so the transport layer can pick a status code.
type ErrorKind string

const (
	KindValidation    ErrorKind = "VALIDATION"
	KindGeocode       ErrorKind = "GEOCODE"
	KindAggregation   ErrorKind = "AGGREGATION"
	KindConfiguration ErrorKind = "CONFIGURATION"
	KindNotFound      ErrorKind = "NOT_FOUND"
	KindPersistence   ErrorKind = "PERSISTENCE"
	KindUpstream      ErrorKind = "UPSTREAM"
	KindUnknown       ErrorKind = "UNKNOWN"
)

// DomainError carries a caller-facing message and, optionally, the underlying cause.
type DomainError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) error {
	return &DomainError{Kind: KindValidation, Message: message}
}

func NewGeocodeError(message string, cause error) error {
	return &DomainError{Kind: KindGeocode, Message: message, Err: cause}
}

func NewAggregationError(message string, cause error) error {
	return &DomainError{Kind: KindAggregation, Message: message, Err: cause}
}

func NewConfigurationError(message string) error {
	return &DomainError{Kind: KindConfiguration, Message: message}
}

func NewNotFoundError(message string) error {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// NewUpstreamError reports a provider failure on the quick lookup endpoints.
func NewUpstreamError(message string, cause error) error {
	return &DomainError{Kind: KindUpstream, Message: message, Err: cause}
}

// NewPersistenceError passes the store's message through.
func NewPersistenceError(cause error) error {
	return &DomainError{Kind: KindPersistence, Message: cause.Error(), Err: cause}
}

// KindOf returns the kind of the first DomainError in err's chain.
func KindOf(err error) ErrorKind {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
