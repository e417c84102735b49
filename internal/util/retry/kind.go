package retry

import "errors"

// Kind reports whether an error belongs to a class of failures.
// A Policy retries only errors matched by one of its kinds.
type Kind func(err error) bool

// ErrorIs matches errors that wrap target.
func ErrorIs(target error) Kind {
	return func(err error) bool {
		return errors.Is(err, target)
	}
}

// ErrorAs matches errors whose chain contains a value of type E.
func ErrorAs[E error]() Kind {
	return func(err error) bool {
		var target E
		return errors.As(err, &target)
	}
}

// AnyError matches every non-nil error.
func AnyError() Kind {
	return func(err error) bool {
		return err != nil
	}
}

// Kinds combines several kinds into one that matches if any of them does.
func Kinds(kinds ...Kind) Kind {
	return func(err error) bool {
		return matchAny(kinds, err)
	}
}

func matchAny(kinds []Kind, err error) bool {
	if err == nil {
		return false
	}
	for _, kind := range kinds {
		if kind != nil && kind(err) {
			return true
		}
	}
	return false
}
