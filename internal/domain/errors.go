package domain

import "errors"

var (
	// ErrNotFound indicates the requested record was not found.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated indicates the request carried no valid identity.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrStoreUnavailable indicates a read path failed outright; callers
	// must treat the data as unknown, not empty.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrStaleReference indicates a joined child record vanished. Aggregates
	// drop the entry and log; this never propagates to callers.
	ErrStaleReference = errors.New("stale reference")
	// ErrMutationFailed indicates a write was rejected; no local state was
	// changed ahead of the acknowledgement.
	ErrMutationFailed = errors.New("mutation failed")
	// ErrCheckoutFailed indicates order placement aborted mid-sequence. The
	// remaining cart is preserved; already-created records are not rolled
	// back.
	ErrCheckoutFailed = errors.New("checkout failed")
)
