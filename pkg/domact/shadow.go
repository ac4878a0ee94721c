// pkg/domact/shadow.go
package domact

import (
	"context"

	"github.com/qaforge/domact/pkg/scripts"
)

// Navigator resolves elements hosted inside shadow DOM. Expansion goes
// through the retrying executor; lookups receive a provider that re-expands
// the shadow root at resolution time. A shadow host can be re-rendered
// between expansion and descendant lookup, so a cached root reference would
// point at a detached context even while the host element stays valid.
type Navigator struct {
	exec    *Executor
	factory Factory
}

// NewNavigator binds the retrying executor and the element lookup subsystem.
func NewNavigator(exec *Executor, factory Factory) *Navigator {
	return &Navigator{exec: exec, factory: factory}
}

// ExpandShadowRoot executes the shadow-expand script against the host element
// and wraps the returned handle as a new, narrower search context. The
// invocation is retried under the shared policy like any other script.
func (n *Navigator) ExpandShadowRoot(ctx context.Context, host *Element) (SearchContext, error) {
	handle, err := n.exec.ExecuteHandle(ctx, scripts.ExpandShadowRoot, host)
	if err != nil {
		return SearchContext{}, err
	}
	return SearchContext{Handle: handle}, nil
}

// FindInShadowRoot resolves a locator relative to the host element's shadow
// root. The root is re-expanded on every resolution, never cached. Lookup
// failures (descendant never reaches the required state) are surfaced from
// the lookup subsystem as-is.
//
// XPath locators are not supported against shadow-root contexts on some
// engines; that platform limitation is surfaced verbatim, not pre-empted.
func (n *Navigator) FindInShadowRoot(ctx context.Context, host *Element, locator Locator, name string, supplier Supplier, state State) (*Element, error) {
	if host == nil {
		return nil, ErrNilElement
	}
	if state == "" {
		state = StateDisplayed
	}

	provider := func(ctx context.Context) (SearchContext, error) {
		return n.ExpandShadowRoot(ctx, host)
	}
	return n.factory.Resolve(ctx, provider, locator, name, supplier, state)
}
