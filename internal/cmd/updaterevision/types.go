package updaterevision

import "fmt"

// ErrorKind classifies a fatal run failure.
type ErrorKind string

const (
	KindConfig  ErrorKind = "config"
	KindResolve ErrorKind = "resolve"
	KindGit     ErrorKind = "git"
	KindData    ErrorKind = "data"
)

// Error wraps a failure with its kind so the command layer (and tests) can
// tell resolution problems from git problems without parsing messages.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configErr(format string, args ...any) error {
	return &Error{Kind: KindConfig, Err: fmt.Errorf(format, args...)}
}

func resolveErr(err error) error {
	return &Error{Kind: KindResolve, Err: err}
}

func gitErr(step string, err error) error {
	return &Error{Kind: KindGit, Err: fmt.Errorf("%s: %w", step, err)}
}

func dataErr(err error) error {
	return &Error{Kind: KindData, Err: err}
}
