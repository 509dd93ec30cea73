// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package guard decides navigation redirects from the session status.
//
// The decision is a pure lookup in a transition table keyed by
// (status, realm). [Guard] adds the one piece of state needed to keep
// redirects idempotent: the last (status, realm) pair it redirected for.
// Evaluating the same pair again yields no action until the inputs change.
package guard

import (
	"sync"

	"github.com/MKhiriev/go-session-keeper/models"
)

// Realm is a navigation area gated by the session status.
type Realm int

const (
	// RealmPublic holds screens usable without signing in.
	RealmPublic Realm = iota
	// RealmPrivate holds screens that require a credential.
	RealmPrivate
)

func (r Realm) String() string {
	switch r {
	case RealmPublic:
		return "public"
	case RealmPrivate:
		return "private"
	default:
		return "unknown"
	}
}

// Action is what the front end should do after an evaluation.
type Action int

const (
	// ActionNone leaves the current screen as it is.
	ActionNone Action = iota
	// ActionShowLoading renders a neutral loading indicator. It never
	// navigates.
	ActionShowLoading
	// ActionRedirect navigates to Decision.Target.
	ActionRedirect
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionShowLoading:
		return "show-loading"
	case ActionRedirect:
		return "redirect"
	default:
		return "unknown"
	}
}

// Decision is the result of [Guard.Evaluate].
type Decision struct {
	Action Action
	// Target is the entry screen to navigate to; set only for ActionRedirect.
	Target string
}

// Policy configures the redirect targets.
type Policy struct {
	// PublicEntry is where unauthenticated users in the private realm go.
	PublicEntry string
	// PrivateEntry is where authenticated users in the public realm go.
	PrivateEntry string
	// RedirectAuthenticated sends authenticated users away from public
	// screens. When false they may revisit public screens freely.
	RedirectAuthenticated bool
}

type transitionKey struct {
	status models.Status
	realm  Realm
}

// Guard evaluates the transition table. It is safe for concurrent use.
type Guard struct {
	table map[transitionKey]Decision

	mu sync.Mutex
	// last is the pair of the most recent redirect; valid while redirected
	// is true.
	last       transitionKey
	redirected bool
}

// New builds a Guard for policy.
func New(policy Policy) *Guard {
	onPublicWhenAuthenticated := Decision{Action: ActionNone}
	if policy.RedirectAuthenticated {
		onPublicWhenAuthenticated = Decision{Action: ActionRedirect, Target: policy.PrivateEntry}
	}

	return &Guard{
		table: map[transitionKey]Decision{
			{models.StatusInitializing, RealmPublic}:    {Action: ActionShowLoading},
			{models.StatusInitializing, RealmPrivate}:   {Action: ActionShowLoading},
			{models.StatusUnauthenticated, RealmPublic}: {Action: ActionNone},
			{models.StatusUnauthenticated, RealmPrivate}: {
				Action: ActionRedirect,
				Target: policy.PublicEntry,
			},
			{models.StatusAuthenticated, RealmPublic}:  onPublicWhenAuthenticated,
			{models.StatusAuthenticated, RealmPrivate}: {Action: ActionNone},
		},
	}
}

// Evaluate returns the decision for status in realm. A redirect is returned
// once per (status, realm) pair; evaluating the same pair again returns
// ActionNone. Any non-redirect evaluation re-arms the guard, so returning to
// a forbidden realm later redirects again.
func (g *Guard) Evaluate(status models.Status, realm Realm) Decision {
	key := transitionKey{status: status, realm: realm}
	decision, ok := g.table[key]
	if !ok {
		return Decision{Action: ActionNone}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if decision.Action != ActionRedirect {
		g.redirected = false
		return decision
	}

	if g.redirected && g.last == key {
		return Decision{Action: ActionNone}
	}
	g.last = key
	g.redirected = true
	return decision
}
