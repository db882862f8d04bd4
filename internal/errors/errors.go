package errors

import "errors"

// This package defines the sentinel errors shared by every layer. Services wrap
// them with context (fmt.Errorf("%w: ...", ErrX)) and the API layer maps them to
// HTTP status codes with errors.Is, so no service ever needs to know about HTTP.

var (
	// ErrNotFound signifies that a referenced conversation, branch, message or
	// version does not exist. Mapped to 404.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies bad caller input such as an empty message list
	// or an unsupported role. Mapped to 400.
	ErrValidation = errors.New("validation failed")

	// ErrProvider signifies that an upstream AI provider failed or returned a
	// non-success response. Mapped to 502.
	ErrProvider = errors.New("provider error")

	// ErrConfiguration signifies an unknown provider/model combination or a
	// provider that cannot be used with the current configuration. Mapped to 400.
	ErrConfiguration = errors.New("configuration error")

	// ErrStorage signifies a failure to serialize or deserialize persisted
	// state. Reads degrade to empty values; writes are logged and dropped.
	ErrStorage = errors.New("storage error")

	// ErrStreamConsumed is reported as the error of the single chunk yielded
	// when a chunk sequence is ranged a second time.
	ErrStreamConsumed = errors.New("stream already consumed")

	// ErrInternal is a generic error used to avoid leaking implementation
	// details to the client. Mapped to 500.
	ErrInternal = errors.New("internal server error")
)
