// pkg/domact/domact.go
//
// Package domact executes DOM actions (click, scroll, read, shadow-root
// traversal) against a live browser session by injecting named scripts.
// Transient failures are retried under a shared policy; elements hosted in
// shadow DOM are reached through lazily re-derived search contexts.
package domact

import "context"

// Element is an opaque, session-scoped reference to a single DOM node,
// obtained from the element lookup subsystem. The engine borrows it for the
// lifetime of one action call; if the page navigates or the node detaches,
// any use surfaces as a typed failure.
type Element struct {
	// Name is the human-readable logical name, used only for logging and
	// error messages.
	Name string
	// Kind is a type tag such as "button" or "text field", used only for
	// logging.
	Kind string
	// Ref is the session-scoped handle (for the CDP backend, a remote object
	// id). Only the session that produced it can interpret it.
	Ref any
}

// Strategy selects how a locator query is interpreted.
type Strategy string

const (
	// ByCSS queries with a CSS selector. Supported in every search context.
	ByCSS Strategy = "css"
	// ByXPath queries with an XPath expression. Not supported inside
	// shadow-root search contexts on engines that forbid it; the failure is
	// surfaced verbatim.
	ByXPath Strategy = "xpath"
)

// Locator identifies zero or more DOM nodes within a search context.
type Locator struct {
	Strategy Strategy
	Value    string
}

// State is the visibility state an element must reach before a lookup
// resolves it.
type State string

const (
	// StateExists requires only attachment to the DOM.
	StateExists State = "exists"
	// StateDisplayed additionally requires the element to be rendered.
	// It is the default lookup state.
	StateDisplayed State = "displayed"
)

// SearchContext is the root a locator query starts from: the whole page
// (zero value) or a shadow root obtained from a shadow-expand invocation.
// A shadow-root context is valid only until the host re-renders, which is
// why contexts are re-derived per lookup rather than cached.
type SearchContext struct {
	// Handle is the session-scoped reference to the context root, or nil for
	// the whole page.
	Handle any
}

// IsPage reports whether the context is the whole page.
func (c SearchContext) IsPage() bool { return c.Handle == nil }

// ContextProvider re-derives a search context at resolution time. Lookups
// store the provider, never a resolved context, so a shadow root torn down
// and recreated between calls is re-expanded instead of dereferenced stale.
type ContextProvider func(ctx context.Context) (SearchContext, error)

// PageContext is a ContextProvider for the whole page.
func PageContext(context.Context) (SearchContext, error) {
	return SearchContext{}, nil
}

// Session is the browser session collaborator: a synchronous script-execution
// primitive plus a page-load wait. The engine assumes at most one action is
// in flight against a session at a time; concurrent callers serialize
// externally.
type Session interface {
	// RunScript executes a script body in the page context. args[0] is
	// always the target element handle; remaining entries are
	// action-specific primitives. The returned value is engine-native and
	// loosely typed.
	RunScript(ctx context.Context, body string, args []any) (any, error)
	// WaitForLoad blocks until the current document finishes loading, or
	// fails on its own timeout.
	WaitForLoad(ctx context.Context) error
}

// Supplier optionally wraps a freshly resolved element handle, letting
// callers attach a more specific logical name or type tag before the handle
// is bound to a facade.
type Supplier func(*Element) *Element

// Factory is the element lookup collaborator. It resolves a locator relative
// to whatever context the provider yields at resolution time and blocks until
// the element reaches the required state, subject to its own timeout.
type Factory interface {
	Resolve(ctx context.Context, provider ContextProvider, locator Locator, name string, supplier Supplier, state State) (*Element, error)
}

// ActionLogger receives one structured entry per action phase. It is
// fire-and-forget: implementations must never fail the action.
type ActionLogger interface {
	LogAction(elementType, elementName, messageKey string, args ...any)
}

// ProfileFlags exposes process-wide browser profile switches. The highlight
// flag is read at call time so a profile change takes effect immediately.
type ProfileFlags interface {
	ElementHighlightEnabled() bool
}
