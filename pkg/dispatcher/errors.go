package dispatcher

// ErrorKind classifies a hard dispatch failure.
type ErrorKind string

const (
	// KindInternal marks defects inside middleware or the default
	// handler.
	KindInternal ErrorKind = "internal"
	// KindCommand marks a command handler failure.
	KindCommand ErrorKind = "command"
)

// BotError is the hard failure returned by dispatch operations.
// Business-level outcomes (blocked, rate limited, permission denied)
// never surface as a BotError; they become reply text instead.
type BotError struct {
	Kind ErrorKind
	Err  error
}

func (e *BotError) Error() string {
	return string(e.Kind) + " error: " + e.Err.Error()
}

func (e *BotError) Unwrap() error {
	return e.Err
}
