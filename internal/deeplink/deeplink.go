package deeplink

import "net/url"

// Entry is the one-time read of the navigational entry parameters taken when
// a session is created. Both signals come from the same immutable snapshot
// of the query string; nothing reads the parameters again later.
type Entry struct {
	StoreID        string
	PaymentSuccess bool
	// SessionRef is the session the checkout redirect was issued for; the
	// processor echoes it back so the pending snapshot can be located after
	// the round trip.
	SessionRef string
}

// Resolve inspects the entry parameters. A storefront identifier selects the
// storefront destination regardless of the payment signal; the payment
// signal independently starts the verification gate. The two entry modes are
// mutually exclusive in practice but not structurally forbidden.
func Resolve(params url.Values) Entry {
	e := Entry{StoreID: params.Get("store"), SessionRef: params.Get("session")}
	if params.Get("payment") == "success" || params.Get("success") == "true" {
		e.PaymentSuccess = true
	}
	return e
}
