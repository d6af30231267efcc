package kafka

import "errors"

// PermanentError marks a handler failure that redelivery cannot fix. The
// consumer logs it and moves past the message without retrying.
type PermanentError struct {
	Err error
}

func (e PermanentError) Error() string {
	if e.Err == nil {
		return "permanent handler failure"
	}
	return e.Err.Error()
}

func (e PermanentError) Unwrap() error { return e.Err }

// Permanent wraps err so the consumer skips retries. Permanent(nil) is nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return PermanentError{Err: err}
}

func isPermanent(err error) bool {
	var perm PermanentError
	return errors.As(err, &perm)
}
