package domain

import "time"

// EventType defines the category of the event.
type EventType string

const (
	EventTreeChange  EventType = "tree_change"
	EventHistoryMove EventType = "history_move"
	EventFetchStart  EventType = "fetch_start"
	EventFetchDone   EventType = "fetch_done"
	EventFetchError  EventType = "fetch_error"
)

// TreeEvent fires after a mutation committed a new history snapshot. It is
// not fired for deduplicated no-op mutations.
type TreeEvent struct {
	Timestamp   time.Time `json:"timestamp"`
	SnapshotID  int64     `json:"snapshot_id"`
	HistorySize int       `json:"history_size"`
}

// HistoryEvent fires after the cursor moved via undo, redo or jump.
type HistoryEvent struct {
	Timestamp  time.Time `json:"timestamp"`
	SnapshotID int64     `json:"snapshot_id"`
}

// FetchEvent fires on cache loading-state transitions for one key.
type FetchEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Key       string        `json:"key"`
	Records   int           `json:"records,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability. Hooks are
// invoked synchronously after the corresponding state change is visible;
// nil members are skipped.
type LifecycleHooks struct {
	OnTreeChange  func(*TreeEvent)
	OnHistoryMove func(*HistoryEvent)
	OnFetchStart  func(*FetchEvent)
	OnFetchDone   func(*FetchEvent)
	OnFetchError  func(*FetchEvent)
}

// MergeHooks combines two hook sets; both are invoked, a first then b.
func MergeHooks(a, b LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTreeChange:  mergeFn(a.OnTreeChange, b.OnTreeChange),
		OnHistoryMove: mergeFn(a.OnHistoryMove, b.OnHistoryMove),
		OnFetchStart:  mergeFn(a.OnFetchStart, b.OnFetchStart),
		OnFetchDone:   mergeFn(a.OnFetchDone, b.OnFetchDone),
		OnFetchError:  mergeFn(a.OnFetchError, b.OnFetchError),
	}
}

func mergeFn[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return func(e *E) {
			a(e)
			b(e)
		}
	}
}

// FireTreeChange invokes OnTreeChange if set.
func (h LifecycleHooks) FireTreeChange(e *TreeEvent) {
	if h.OnTreeChange != nil {
		h.OnTreeChange(e)
	}
}

// FireHistoryMove invokes OnHistoryMove if set.
func (h LifecycleHooks) FireHistoryMove(e *HistoryEvent) {
	if h.OnHistoryMove != nil {
		h.OnHistoryMove(e)
	}
}

// FireFetchStart invokes OnFetchStart if set.
func (h LifecycleHooks) FireFetchStart(e *FetchEvent) {
	if h.OnFetchStart != nil {
		h.OnFetchStart(e)
	}
}

// FireFetchDone invokes OnFetchDone if set.
func (h LifecycleHooks) FireFetchDone(e *FetchEvent) {
	if h.OnFetchDone != nil {
		h.OnFetchDone(e)
	}
}

// FireFetchError invokes OnFetchError if set.
func (h LifecycleHooks) FireFetchError(e *FetchEvent) {
	if h.OnFetchError != nil {
		h.OnFetchError(e)
	}
}
