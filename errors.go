package vault

import "errors"

// Sentinel error kinds surfaced by the engine. Check with errors.Is.
var (
	ErrReadOnly            = errors.New("vault: history executor is read-only")
	ErrInvalidCommand      = errors.New("vault: invalid command line")
	ErrUnknownCommand      = errors.New("vault: unknown command")
	ErrInvalidSignature    = errors.New("vault: invalid envelope signature")
	ErrDecryptionFailed    = errors.New("vault: decryption failed")
	ErrDecompressionFailed = errors.New("vault: decompression failed")
)

// CommandExecutionError wraps a failure raised by a command executor,
// carrying the failing short key as context.
type CommandExecutionError struct {
	Short string
	Err   error
}

func (e *CommandExecutionError) Error() string {
	return "vault: command " + e.Short + " failed: " + e.Err.Error()
}

func (e *CommandExecutionError) Unwrap() error { return e.Err }

func wrapExec(short string, err error) error {
	if err == nil {
		return nil
	}
	return &CommandExecutionError{Short: short, Err: err}
}

// the following are the underlying causes CommandExecutionError commonly
// wraps; they are not part of the public "kind" surface (callers match
// CommandExecutionError and inspect .Err with errors.Is against these, or
// just read .Error()).
var (
	errParentNotFound  = errors.New("parent not found")
	errTargetNotFound  = errors.New("target not found")
	errDuplicateID     = errors.New("id already exists")
	errCyclicMove      = errors.New("move would create a cycle")
	errMalformedTokens = errors.New("wrong number of arguments")
)
