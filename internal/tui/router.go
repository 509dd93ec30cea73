package tui

import (
	"sync/atomic"

	"github.com/MKhiriev/go-session-keeper/internal/guard"
)

// router exposes the realm of the open page to the route guard, which reads
// it from the session listener goroutine.
type router struct {
	realm atomic.Int32
}

var _ guard.Locator = (*router)(nil)

func newRouter(realm guard.Realm) *router {
	r := &router{}
	r.set(realm)
	return r
}

func (r *router) Realm() guard.Realm {
	return guard.Realm(r.realm.Load())
}

func (r *router) set(realm guard.Realm) {
	r.realm.Store(int32(realm))
}
