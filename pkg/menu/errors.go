package menu

import "errors"

var (
	// ErrNotFound is returned when an id, branch or condition does not exist.
	ErrNotFound = errors.New("menu: not found")
	// ErrCapacityExceeded is returned when inserting into a full bounded list.
	ErrCapacityExceeded = errors.New("menu: capacity exceeded")
	// ErrIDInUse is returned when a caller supplied id is already taken.
	ErrIDInUse = errors.New("menu: id is in use")
	// ErrIndexOutOfRange is returned for invalid branch or condition indices.
	ErrIndexOutOfRange = errors.New("menu: index out of range")
	// ErrInvalidTarget is returned when an animation target cannot be resolved.
	ErrInvalidTarget = errors.New("menu: invalid target")
	// ErrInvalidDestination is returned when a destination list cannot accept an item.
	ErrInvalidDestination = errors.New("menu: invalid destination")
	// ErrInvalidMergeState is returned when a merged list does not match Registered.
	ErrInvalidMergeState = errors.New("menu: invalid merge state")
	// ErrInvalidCondition is returned for malformed conditions.
	ErrInvalidCondition = errors.New("menu: invalid condition")
	// ErrInvalidValue is returned for out of range property values.
	ErrInvalidValue = errors.New("menu: invalid value")
	// ErrArgumentNull is returned when a required identifier is empty.
	ErrArgumentNull = errors.New("menu: required argument missing")
)
