package stubapi

import (
	"context"
	"net/http"
)

func withUser(r *http.Request, u *stubUser) context.Context {
	return context.WithValue(r.Context(), userKey, u)
}

func currentUser(r *http.Request) *stubUser {
	u, _ := r.Context().Value(userKey).(*stubUser)
	return u
}
