package guard

import (
	"github.com/MKhiriev/go-session-keeper/internal/session"
)

// Locator reports the realm of the screen currently shown.
type Locator interface {
	Realm() Realm
}

// Navigator performs a redirect. Navigate is called from the goroutine that
// committed the session change and must not block on the session manager.
type Navigator interface {
	Navigate(target string)
}

// LocatorFunc adapts a function to [Locator].
type LocatorFunc func() Realm

func (f LocatorFunc) Realm() Realm { return f() }

// NavigatorFunc adapts a function to [Navigator].
type NavigatorFunc func(target string)

func (f NavigatorFunc) Navigate(target string) { f(target) }

// Watch evaluates g against the current session and then after every
// committed transition, calling navigator for redirects. Evaluation happens
// in the session listener, outside any render path. The returned function
// stops watching.
func Watch(g *Guard, sessions session.Reader, locator Locator, navigator Navigator) (stop func()) {
	apply := func(d Decision) {
		if d.Action == ActionRedirect {
			navigator.Navigate(d.Target)
		}
	}

	stop = sessions.Subscribe(func(e session.Event) {
		apply(g.Evaluate(e.Current.Status, locator.Realm()))
	})
	apply(g.Evaluate(sessions.Current().Status, locator.Realm()))

	return stop
}
