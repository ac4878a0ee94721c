// pkg/domact/facade.go
package domact

import (
	"context"
	"math"

	"github.com/qaforge/domact/pkg/retry"
	"github.com/qaforge/domact/pkg/scripts"
)

// Highlight controls whether the highlight script runs before an action.
type Highlight int

const (
	// HighlightDefault follows the process-wide profile flag.
	HighlightDefault Highlight = iota
	// HighlightForce runs the highlight script even when the profile flag is
	// off.
	HighlightForce
	// HighlightSuppress skips the highlight script even when the profile
	// flag is on.
	HighlightSuppress
)

// ActionOption tunes a single facade operation.
type ActionOption func(*actionOptions)

type actionOptions struct {
	highlight Highlight
}

// WithHighlight overrides the profile-driven highlight behavior for one call.
func WithHighlight(h Highlight) ActionOption {
	return func(o *actionOptions) { o.highlight = h }
}

func applyOptions(opts []ActionOption) actionOptions {
	var o actionOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Point is an integer pixel position in the viewport.
type Point struct {
	X int
	Y int
}

// Actions is the public surface of the engine: a set of DOM operations bound
// to one element handle. Every operation follows the same pattern: emit a
// pre-action log entry, optionally highlight the element, then invoke the
// target script through the retrying executor. Value-returning reads log the
// computed value as a second entry.
type Actions struct {
	element *Element
	exec    *Executor
	nav     *Navigator
	logger  ActionLogger
	profile ProfileFlags
}

// NewActions binds an already-resolved element handle to a session, the
// element lookup subsystem, an action logger, the browser profile flags, and
// the shared retry policy. A nil element is a precondition violation.
func NewActions(element *Element, session Session, factory Factory, logger ActionLogger, profile ProfileFlags, policy retry.Policy) (*Actions, error) {
	if element == nil {
		return nil, ErrNilElement
	}
	exec := NewExecutor(session, policy)
	return &Actions{
		element: element,
		exec:    exec,
		nav:     NewNavigator(exec, factory),
		logger:  logger,
		profile: profile,
	}, nil
}

// rebind produces a facade for a nested element reusing the bound
// collaborators.
func (a *Actions) rebind(element *Element) *Actions {
	return &Actions{
		element: element,
		exec:    a.exec,
		nav:     a.nav,
		logger:  a.logger,
		profile: a.profile,
	}
}

// Element returns the bound element handle.
func (a *Actions) Element() *Element { return a.element }

func (a *Actions) log(key string, args ...any) {
	if a.logger == nil {
		return
	}
	a.logger.LogAction(a.element.Kind, a.element.Name, key, args...)
}

// highlightIfNeeded runs the highlight script when the profile flag enables
// it or the per-call override forces it. An explicit override wins both ways.
func (a *Actions) highlightIfNeeded(ctx context.Context, mode Highlight) error {
	run := false
	switch mode {
	case HighlightForce:
		run = true
	case HighlightSuppress:
		run = false
	default:
		run = a.profile != nil && a.profile.ElementHighlightEnabled()
	}
	if !run {
		return nil
	}
	return a.exec.ExecuteVoid(ctx, scripts.Highlight, a.element)
}

// Click clicks the element.
func (a *Actions) Click(ctx context.Context, opts ...ActionOption) error {
	o := applyOptions(opts)
	a.log("loc.clicking.js")
	if err := a.highlightIfNeeded(ctx, o.highlight); err != nil {
		return err
	}
	return a.exec.ExecuteVoid(ctx, scripts.Click, a.element)
}

// ClickAndWait clicks the element, then blocks on the session's page-load
// wait. The wait is never attempted when the click failed.
func (a *Actions) ClickAndWait(ctx context.Context, opts ...ActionOption) error {
	if err := a.Click(ctx, opts...); err != nil {
		return err
	}
	return a.exec.Session().WaitForLoad(ctx)
}

// ScrollIntoView scrolls the element into the visible viewport.
func (a *Actions) ScrollIntoView(ctx context.Context, opts ...ActionOption) error {
	o := applyOptions(opts)
	a.log("loc.scrolling.js")
	if err := a.highlightIfNeeded(ctx, o.highlight); err != nil {
		return err
	}
	return a.exec.ExecuteVoid(ctx, scripts.ScrollIntoView, a.element)
}

// ScrollBy scrolls the element's own scrollable region by a pixel offset.
// The element must own an internal scrollable region; that is a caller
// contract the engine does not validate.
func (a *Actions) ScrollBy(ctx context.Context, x, y int, opts ...ActionOption) error {
	o := applyOptions(opts)
	a.log("loc.scroll.by.js", x, y)
	if err := a.highlightIfNeeded(ctx, o.highlight); err != nil {
		return err
	}
	return a.exec.ExecuteVoid(ctx, scripts.ScrollBy, a.element, x, y)
}

// ScrollToCenter scrolls the window so the element sits mid-viewport.
func (a *Actions) ScrollToCenter(ctx context.Context, opts ...ActionOption) error {
	o := applyOptions(opts)
	a.log("loc.scroll.center.js")
	if err := a.highlightIfNeeded(ctx, o.highlight); err != nil {
		return err
	}
	return a.exec.ExecuteVoid(ctx, scripts.ScrollToCenter, a.element)
}

// SetValue assigns a value to the element and fires input/change events.
func (a *Actions) SetValue(ctx context.Context, value string, opts ...ActionOption) error {
	o := applyOptions(opts)
	a.log("loc.setting.value.js", value)
	if err := a.highlightIfNeeded(ctx, o.highlight); err != nil {
		return err
	}
	return a.exec.ExecuteVoid(ctx, scripts.SetValue, a.element, value)
}

// SetFocus moves keyboard focus to the element.
func (a *Actions) SetFocus(ctx context.Context, opts ...ActionOption) error {
	o := applyOptions(opts)
	a.log("loc.focusing.js")
	if err := a.highlightIfNeeded(ctx, o.highlight); err != nil {
		return err
	}
	return a.exec.ExecuteVoid(ctx, scripts.SetFocus, a.element)
}

// HighlightElement draws a border around the element regardless of the
// profile flag.
func (a *Actions) HighlightElement(ctx context.Context) error {
	a.log("loc.highlighting.js")
	return a.exec.ExecuteVoid(ctx, scripts.Highlight, a.element)
}

// HoverMouse synthesizes pointer-over events on the element.
func (a *Actions) HoverMouse(ctx context.Context, opts ...ActionOption) error {
	o := applyOptions(opts)
	a.log("loc.hover.js")
	if err := a.highlightIfNeeded(ctx, o.highlight); err != nil {
		return err
	}
	return a.exec.ExecuteVoid(ctx, scripts.MouseHover, a.element)
}

// GetText reads the element's rendered text. The value is logged after
// retrieval so empty-text conditions stay observable.
func (a *Actions) GetText(ctx context.Context) (string, error) {
	a.log("loc.get.text.js")
	text, err := a.exec.ExecuteString(ctx, scripts.GetText, a.element)
	if err != nil {
		return "", err
	}
	a.log("loc.text.value", text)
	return text, nil
}

// GetXPath computes the element's absolute XPath and logs it.
func (a *Actions) GetXPath(ctx context.Context) (string, error) {
	a.log("loc.get.xpath.js")
	xpath, err := a.exec.ExecuteString(ctx, scripts.GetXPath, a.element)
	if err != nil {
		return "", err
	}
	a.log("loc.xpath.value", xpath)
	return xpath, nil
}

// IsElementOnScreen reports whether any part of the element is rendered
// inside the viewport, and logs the computed state.
func (a *Actions) IsElementOnScreen(ctx context.Context) (bool, error) {
	a.log("loc.on.screen.js")
	onScreen, err := a.exec.ExecuteBool(ctx, scripts.IsOnScreen, a.element)
	if err != nil {
		return false, err
	}
	a.log("loc.on.screen.value", onScreen)
	return onScreen, nil
}

// ViewportCoordinates returns the element's position relative to the
// viewport origin, rounded half-away-from-zero to integer pixels. The script
// may return stringly-typed numbers; any non-numeric element is a fatal
// parse failure.
func (a *Actions) ViewportCoordinates(ctx context.Context) (Point, error) {
	a.log("loc.get.viewport.coordinates.js")
	coords, err := a.exec.ExecuteNumbers(ctx, scripts.GetViewportCoordinates, a.element)
	if err != nil {
		return Point{}, err
	}
	if len(coords) != 2 {
		return Point{}, &DecodeError{Script: scripts.GetViewportCoordinates.Name, Want: "two-element sequence of numbers", Got: coords}
	}
	return Point{X: roundPixel(coords[0]), Y: roundPixel(coords[1])}, nil
}

// roundPixel rounds half away from zero.
func roundPixel(v float64) int {
	return int(math.Round(v))
}

// ExpandShadowRoot expands the bound element's shadow root into a new search
// context.
func (a *Actions) ExpandShadowRoot(ctx context.Context) (SearchContext, error) {
	a.log("loc.shadow.root.expand.js")
	return a.nav.ExpandShadowRoot(ctx, a.element)
}

// FindInShadowRoot resolves a descendant of the bound element's shadow root
// and returns a facade bound to it. The shadow root is re-expanded on every
// call; state defaults to displayed when empty. The supplier, when non-nil,
// may wrap the resolved handle before binding.
func (a *Actions) FindInShadowRoot(ctx context.Context, locator Locator, name string, supplier Supplier, state State) (*Actions, error) {
	a.log("loc.shadow.root.find.js", name)
	element, err := a.nav.FindInShadowRoot(ctx, a.element, locator, name, supplier, state)
	if err != nil {
		return nil, err
	}
	return a.rebind(element), nil
}
