package ns

import (
	"errors"
	"fmt"
)

// ErrImmutable is returned when a mutation is attempted on a frozen
// namespace, notably the Empty sentinel.
var ErrImmutable = errors.New("namespace is immutable")

// ErrCallDepthExceeded is returned when a chain of nested call targets does
// not resolve to a callable within the maximum unwind depth.
var ErrCallDepthExceeded = errors.New("call target chain exceeds maximum depth")

// NoCallTargetError is returned when a namespace without a resolvable call
// target is invoked. The message embeds the namespace's rendering so the
// caller can see which keys were present.
type NoCallTargetError struct {
	Namespace *Namespace
}

func (e *NoCallTargetError) Error() string {
	return fmt.Sprintf("namespace was used as a function, but no call target was specified; the namespace is: %s", e.Namespace)
}

// NotCallableError is returned when call-target resolution ends on a value
// that cannot be invoked.
type NotCallableError struct {
	Value any
}

func (e *NotCallableError) Error() string {
	return fmt.Sprintf("call target of type %T is not callable", e.Value)
}
