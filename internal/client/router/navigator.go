package router

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/teachreach/marketplace/internal/client/model"
	"github.com/teachreach/marketplace/internal/client/session"
)

// Identities is the part of the session store the navigator watches.
type Identities interface {
	Current() *model.Identity
	Subscribe(fn session.Listener)
}

// Navigator tracks the current view and re-checks it after every identity
// change.
type Navigator struct {
	ids Identities
	log zerolog.Logger

	mu    sync.Mutex
	view  View
	param string
}

func NewNavigator(ids Identities, log zerolog.Logger) *Navigator {
	n := &Navigator{ids: ids, log: log, view: Home}
	ids.Subscribe(n.onIdentityChange)
	return n
}

// Current returns the active view and its parameter.
func (n *Navigator) Current() (View, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.view, n.param
}

// Go navigates to v, or to its fallback when denied, and returns where it
// ended up.
func (n *Navigator) Go(v View) View {
	return n.goTo(v, "")
}

// Open navigates to a path.
func (n *Navigator) Open(path string) View {
	v, param := Parse(path)
	return n.goTo(v, param)
}

func (n *Navigator) goTo(v View, param string) View {
	target := Resolve(v, n.ids.Current())
	if target != v {
		param = ""
		n.log.Debug().Str("requested", string(v)).Str("view", string(target)).Msg("navigation redirected")
	}
	n.mu.Lock()
	n.view, n.param = target, param
	n.mu.Unlock()
	return target
}

func (n *Navigator) onIdentityChange(_, next *model.Identity) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if target := Resolve(n.view, next); target != n.view {
		n.log.Debug().Str("from", string(n.view)).Str("view", string(target)).Msg("view no longer allowed")
		n.view, n.param = target, ""
	}
}
