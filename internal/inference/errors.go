package inference

import "errors"

var (
	// ErrInputTooShort means the prepared text is below MinInputLength.
	// It is user-correctable and no provider is invoked.
	ErrInputTooShort = errors.New("input text too short")
	// ErrProviderExhausted means no provider produced a usable answer.
	ErrProviderExhausted = errors.New("all providers exhausted")
	// ErrUnknownTask is a programmer error: no contract exists for the kind.
	ErrUnknownTask = errors.New("unknown task kind")
	// ErrRecoveryFailed means a provider answered but nothing schema-shaped
	// could be recovered from the answer.
	ErrRecoveryFailed = errors.New("could not recover structured payload")
)
