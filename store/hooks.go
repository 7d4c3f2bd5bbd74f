package store

// Hooks are callbacks for high-signal store events.
// Implementations must be cheap and non-blocking; the store calls them inline
// on Get and Set. Wrap a slow implementation with hooks/async.
type Hooks interface {
	// SelfHeal reports an entry deleted on read.
	// reason is one of ReasonCorrupt, ReasonFormatMismatch, ReasonDecode.
	SelfHeal(storageKey, reason string)

	// SetRejected reports a write the provider declined (ok=false).
	SetRejected(storageKey string, size int)
}

const (
	ReasonCorrupt        = "corrupt"
	ReasonFormatMismatch = "format_mismatch"
	ReasonDecode         = "value_decode"
)

// NopHooks is the default.
type NopHooks struct{}

func (NopHooks) SelfHeal(string, string) {}
func (NopHooks) SetRejected(string, int) {}
