package common

import (
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionName is the cookie session holding flash messages.
const SessionName = "shopdash"

// AddFlash queues a message for the next page render and saves the session.
// It writes a cookie header, so call it before the response body starts.
func AddFlash(store sessions.Store, w http.ResponseWriter, r *http.Request, message string) error {
	if store == nil {
		return nil
	}
	// A cookie that fails to decode still yields a fresh session.
	session, _ := store.Get(r, SessionName)
	session.AddFlash(message)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// PopFlashes returns and clears the queued messages.
func PopFlashes(store sessions.Store, w http.ResponseWriter, r *http.Request) []string {
	if store == nil {
		return nil
	}
	session, _ := store.Get(r, SessionName)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		return nil
	}
	out := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
