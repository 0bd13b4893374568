package app

import (
	"errors"
	"sync"

	"tableflip.dev/facemenu/pkg/menu"
	"tableflip.dev/facemenu/pkg/store"
)

// Code classifies the outcome of a Service operation.
type Code int

const (
	Succeeded Code = iota
	ArgumentNull
	MenuDoesNotExist
	MenuAlreadyExists
	InvalidDestination
	InvalidMenuItem
	InvalidMode
	InvalidGroup
	InvalidBranch
	InvalidCondition
	InvalidTarget
	InvalidMergeState
	InvalidValue
	IDInUse
	Error
)

var codeNames = map[Code]string{
	Succeeded:          "succeeded",
	ArgumentNull:       "argument-null",
	MenuDoesNotExist:   "menu-does-not-exist",
	MenuAlreadyExists:  "menu-already-exists",
	InvalidDestination: "invalid-destination",
	InvalidMenuItem:    "invalid-menu-item",
	InvalidMode:        "invalid-mode",
	InvalidGroup:       "invalid-group",
	InvalidBranch:      "invalid-branch",
	InvalidCondition:   "invalid-condition",
	InvalidTarget:      "invalid-target",
	InvalidMergeState:  "invalid-merge-state",
	InvalidValue:       "invalid-value",
	IDInUse:            "id-in-use",
	Error:              "error",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown"
}

func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Result is what every Service operation hands to its Presenter and returns.
type Result struct {
	Operation string
	Code      Code
	MenuID    string
	// Menu is the menu after the operation, or as loaded when it failed.
	Menu *menu.Menu
	// ID is the item created by add and copy operations.
	ID     string
	Merged *menu.MergedList

	// Matches is filled by Find.
	Matches []Match
	Err     error
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool { return r.Code == Succeeded }

// codeFor maps a domain error onto a result code. Errors that only say
// "not there" take the operation specific fallback.
func codeFor(err error, fallback Code) Code {
	switch {
	case err == nil:
		return Succeeded
	case errors.Is(err, menu.ErrArgumentNull):
		return ArgumentNull
	case errors.Is(err, menu.ErrIDInUse):
		return IDInUse
	case errors.Is(err, menu.ErrInvalidDestination), errors.Is(err, menu.ErrCapacityExceeded):
		if fallback == InvalidMergeState {
			return fallback
		}
		return InvalidDestination
	case errors.Is(err, menu.ErrInvalidMergeState):
		return InvalidMergeState
	case errors.Is(err, menu.ErrInvalidTarget):
		return InvalidTarget
	case errors.Is(err, menu.ErrInvalidCondition):
		return InvalidCondition
	case errors.Is(err, menu.ErrInvalidValue):
		return InvalidValue
	case errors.Is(err, store.ErrMenuNotFound):
		return MenuDoesNotExist
	case errors.Is(err, menu.ErrNotFound), errors.Is(err, menu.ErrIndexOutOfRange):
		return fallback
	default:
		return Error
	}
}

// Presenter receives every completed Result.
type Presenter interface {
	Complete(Result)
}

// PresenterFunc adapts a function to Presenter.
type PresenterFunc func(Result)

func (f PresenterFunc) Complete(r Result) { f(r) }

// Broadcaster fans results out to any number of subscribers. Subscribers that
// fall behind miss results rather than block the Service.
type Broadcaster struct {
	mu     sync.Mutex
	next   int
	subs   map[int]chan Result
	closed bool
}

// Subscribe returns a channel of results and a function that ends the
// subscription and closes the channel.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Result, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch := make(chan Result, buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	if b.subs == nil {
		b.subs = make(map[int]chan Result)
	}
	id := b.next
	b.next++
	b.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

func (b *Broadcaster) Complete(r Result) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- r:
		default:
		}
	}
}

// Close ends every subscription.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	b.closed = true
}
