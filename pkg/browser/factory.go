// pkg/browser/factory.go
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/go-json-experiment/json/jsontext"
	"go.uber.org/zap"

	"github.com/qaforge/domact/internal/config"
	"github.com/qaforge/domact/pkg/domact"
)

// ensure Factory satisfies the engine's lookup contract.
var _ domact.Factory = (*Factory)(nil)

// Lookup scripts run with `this` bound to the search-context root (document
// or a shadow root). XPath evaluation against a shadow root is rejected by
// the engine itself; that failure is surfaced verbatim, not pre-empted here.
const (
	cssLookupScript = `function(selector) {
		return this.querySelector(selector);
	}`

	xpathLookupScript = `function(expression) {
		return document.evaluate(expression, this, null, XPathResult.FIRST_ORDERED_NODE_TYPE, null).singleNodeValue;
	}`

	displayedScript = `function(element) {
		if (!element.isConnected) { return false; }
		var style = window.getComputedStyle(element);
		if (style.display === 'none' || style.visibility === 'hidden') { return false; }
		var rect = element.getBoundingClientRect();
		return rect.width > 0 && rect.height > 0;
	}`
)

// Factory resolves locators to element handles against a live session. Every
// poll iteration re-derives the search context from the provider, so lookups
// inside shadow DOM survive host re-renders between attempts.
type Factory struct {
	session      *Session
	globalConfig *config.Config
	logger       *zap.Logger
}

// NewFactory binds the lookup subsystem to a session.
func NewFactory(session *Session, cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		session:      session,
		globalConfig: cfg,
		logger:       logger.Named("element_factory"),
	}
}

// lookupScript selects the query script for a locator strategy.
func lookupScript(strategy domact.Strategy) (string, error) {
	switch strategy {
	case domact.ByCSS:
		return cssLookupScript, nil
	case domact.ByXPath:
		return xpathLookupScript, nil
	default:
		return "", fmt.Errorf("unsupported locator strategy %q", strategy)
	}
}

// Resolve polls for an element matching the locator until it reaches the
// required state or the find timeout elapses. The provider runs once per
// iteration; its failures end the lookup immediately since they indicate the
// context root itself is gone.
func (f *Factory) Resolve(ctx context.Context, provider domact.ContextProvider, locator domact.Locator, name string, supplier domact.Supplier, state domact.State) (*domact.Element, error) {
	if provider == nil {
		provider = domact.PageContext
	}
	if state == "" {
		state = domact.StateDisplayed
	}

	script, err := lookupScript(locator.Strategy)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(f.globalConfig.Network.FindTimeout)
	for {
		element, found, err := f.lookupOnce(ctx, provider, script, locator, name)
		if err != nil {
			return nil, err
		}
		if found {
			visible := true
			if state == domact.StateDisplayed {
				visible, err = f.isDisplayed(ctx, element)
				if err != nil {
					return nil, err
				}
			}
			if visible {
				if supplier != nil {
					element = supplier(element)
				}
				f.logger.Debug("Element resolved",
					zap.String("name", name),
					zap.String("strategy", string(locator.Strategy)),
					zap.String("value", locator.Value),
				)
				return element, nil
			}
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("element %q (%s=%s) did not reach state %q within %s",
				name, locator.Strategy, locator.Value, state, f.globalConfig.Network.FindTimeout)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.globalConfig.Network.PollInterval):
		}
	}
}

// lookupOnce re-derives the search context and runs one query against it.
// A null query result means "not found yet"; a script exception (e.g. an
// invalid selector, or XPath against a shadow root) is terminal.
func (f *Factory) lookupOnce(ctx context.Context, provider domact.ContextProvider, script string, locator domact.Locator, name string) (*domact.Element, bool, error) {
	sc, err := provider(ctx)
	if err != nil {
		return nil, false, err
	}

	root, err := f.contextRoot(ctx, sc)
	if err != nil {
		return nil, false, err
	}

	remote, err := f.session.callFunctionOn(ctx, script, root, []*runtime.CallArgument{
		mustValueArgument(locator.Value),
	}, false)
	if err != nil {
		return nil, false, err
	}
	if remote == nil || remote.ObjectID == "" {
		return nil, false, nil
	}

	return &domact.Element{Name: name, Kind: "element", Ref: remote.ObjectID}, true, nil
}

// contextRoot resolves the object the lookup script binds to: the document
// for whole-page lookups, otherwise the provided shadow-root handle.
func (f *Factory) contextRoot(ctx context.Context, sc domact.SearchContext) (runtime.RemoteObjectID, error) {
	if sc.IsPage() {
		return f.session.documentHandle(ctx)
	}
	return handleObjectID(sc.Handle)
}

// isDisplayed checks whether a resolved element is rendered.
func (f *Factory) isDisplayed(ctx context.Context, element *domact.Element) (bool, error) {
	id, err := handleObjectID(element.Ref)
	if err != nil {
		return false, err
	}
	remote, err := f.session.callFunctionOn(ctx, displayedScript, id, []*runtime.CallArgument{{ObjectID: id}}, true)
	if err != nil {
		return false, err
	}
	value, err := decodeRemoteObject(remote)
	if err != nil {
		return false, err
	}
	visible, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("visibility check returned %T, want bool", value)
	}
	return visible, nil
}

// mustValueArgument serializes a locator value. Plain strings cannot fail to
// marshal, so the error path collapses.
func mustValueArgument(value string) *runtime.CallArgument {
	raw, _ := json.Marshal(value)
	return &runtime.CallArgument{Value: jsontext.Value(raw)}
}
