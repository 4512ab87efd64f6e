package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")

	ErrIllegalTransition    = errors.New("illegal transition")
	ErrTransientFetch       = errors.New("transient fetch failure")
	ErrMutation             = errors.New("mutation failed")
	ErrNotificationDispatch = errors.New("notification dispatch failed")
)

// sanitize keeps error messages on a single line.
func sanitize(v any) string {
	s := fmt.Sprintf("%v", v)
	return strings.Join(strings.Fields(s), " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError is returned when a requested object does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError is returned when a value fails validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError is returned when a value lies outside [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, min, max any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: min, Max: max}
}

func NewValueIsOutOfRangeErrorWithCause(paramName string, value, min, max any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: min, Max: max, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError is returned when a mandatory value is missing.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// IllegalTransitionError is returned when a status change is not reachable
// from the current state. No local state is modified when it is returned.
type IllegalTransitionError struct {
	Entity string
	ID     any
	From   string
	To     string
}

func NewIllegalTransitionError(entity string, id any, from, to fmt.Stringer) *IllegalTransitionError {
	return &IllegalTransitionError{Entity: entity, ID: id, From: from.String(), To: to.String()}
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("%s: %s %s from %s to %s", ErrIllegalTransition, e.Entity, e.ID, e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// TransientFetchError wraps a snapshot read failure. The cycle is skipped
// and the previous local view is kept.
type TransientFetchError struct {
	Cause error
}

func NewTransientFetchError(cause error) *TransientFetchError {
	return &TransientFetchError{Cause: cause}
}

func (e *TransientFetchError) Error() string {
	return withCause(ErrTransientFetch.Error(), e.Cause)
}

func (e *TransientFetchError) Unwrap() error {
	return ErrTransientFetch
}

// MutationError wraps a durable write failure after the local view has been
// restored to its pre-mutation state.
type MutationError struct {
	Entity string
	ID     any
	Action string
	Cause  error
}

func NewMutationError(entity string, id any, action string, cause error) *MutationError {
	return &MutationError{Entity: entity, ID: id, Action: action, Cause: cause}
}

func (e *MutationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s %s", ErrMutation, e.Action, e.Entity, e.ID), e.Cause)
}

func (e *MutationError) Unwrap() error {
	return ErrMutation
}

// NotificationDispatchError wraps a failed outbound notification.
type NotificationDispatchError struct {
	Channel string
	Cause   error
}

func NewNotificationDispatchError(channel string, cause error) *NotificationDispatchError {
	return &NotificationDispatchError{Channel: channel, Cause: cause}
}

func (e *NotificationDispatchError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrNotificationDispatch, e.Channel), e.Cause)
}

func (e *NotificationDispatchError) Unwrap() error {
	return ErrNotificationDispatch
}
