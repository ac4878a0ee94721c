// pkg/scripts/scripts.go
package scripts

import "fmt"

// Script is an immutable (name, body) pair. The body is a JavaScript function
// declaration taking the target element as its first parameter, followed by
// any action-specific arguments. Scripts are stateless and safe to reuse
// across calls and sessions.
//
// Every script is scoped to the target element and is idempotent: running it
// twice against the same DOM state yields the same outcome. Scripts never
// wait for an element to become visible; that is the caller's job via the
// retry policy.
type Script struct {
	Name string
	Body string
}

var (
	// Click dispatches a native click on the element.
	Click = Script{Name: "click.js", Body: `
function(element) {
	element.click();
}`}

	// ScrollIntoView brings the element into the visible viewport.
	// The optional second argument selects top (true) or bottom alignment.
	ScrollIntoView = Script{Name: "scroll.into.view.js", Body: `
function(element, alignToTop) {
	element.scrollIntoView(alignToTop === undefined ? true : alignToTop);
}`}

	// ScrollBy scrolls the element's own scrollable region by a pixel offset.
	// Behavior is undefined when the element has no scrollable region.
	ScrollBy = Script{Name: "scroll.by.js", Body: `
function(element, x, y) {
	element.scrollBy(x, y);
}`}

	// ScrollToCenter scrolls the window so the element sits in the middle of
	// the viewport.
	ScrollToCenter = Script{Name: "scroll.to.center.js", Body: `
function(element) {
	var rect = element.getBoundingClientRect();
	var top = rect.top + window.pageYOffset - (window.innerHeight / 2) + (rect.height / 2);
	window.scrollTo(0, top);
}`}

	// SetValue assigns the value and fires input/change so framework bindings
	// observe the edit.
	SetValue = Script{Name: "set.value.js", Body: `
function(element, value) {
	element.value = value;
	element.dispatchEvent(new Event('input', { bubbles: true }));
	element.dispatchEvent(new Event('change', { bubbles: true }));
}`}

	// SetFocus moves keyboard focus to the element.
	SetFocus = Script{Name: "set.focus.js", Body: `
function(element) {
	element.focus();
}`}

	// Highlight draws a visible border around the element.
	Highlight = Script{Name: "border.js", Body: `
function(element) {
	element.style.border = '2px solid red';
}`}

	// GetText returns the rendered text of the element.
	GetText = Script{Name: "get.text.js", Body: `
function(element) {
	return element.innerText || element.textContent || '';
}`}

	// GetXPath computes an absolute XPath for the element by walking its
	// ancestor chain.
	GetXPath = Script{Name: "get.xpath.js", Body: `
function(element) {
	var path = '';
	for (var node = element; node && node.nodeType === Node.ELEMENT_NODE; node = node.parentNode) {
		var index = 1;
		for (var sibling = node.previousSibling; sibling; sibling = sibling.previousSibling) {
			if (sibling.nodeType === Node.ELEMENT_NODE && sibling.nodeName === node.nodeName) {
				index++;
			}
		}
		path = '/' + node.nodeName.toLowerCase() + '[' + index + ']' + path;
	}
	return path;
}`}

	// GetViewportCoordinates returns the element's [x, y] position relative
	// to the viewport origin. Values may arrive as stringly-typed numbers
	// depending on the engine; callers parse and round.
	GetViewportCoordinates = Script{Name: "get.viewport.coordinates.js", Body: `
function(element) {
	var rect = element.getBoundingClientRect();
	return [rect.left, rect.top];
}`}

	// MouseHover synthesizes pointer-over events on the element.
	MouseHover = Script{Name: "mouse.hover.js", Body: `
function(element) {
	var opts = { bubbles: true, cancelable: true, view: window };
	element.dispatchEvent(new MouseEvent('mouseover', opts));
	element.dispatchEvent(new MouseEvent('mouseenter', opts));
	element.dispatchEvent(new MouseEvent('mousemove', opts));
}`}

	// ExpandShadowRoot returns the element's open shadow root as a new search
	// context. Returns null when the element hosts no open shadow root.
	ExpandShadowRoot = Script{Name: "expand.shadow.root.js", Body: `
function(element) {
	return element.shadowRoot;
}`}

	// IsOnScreen reports whether any part of the element is rendered inside
	// the current viewport. It never throws on a hidden element.
	IsOnScreen = Script{Name: "is.on.screen.js", Body: `
function(element) {
	var rect = element.getBoundingClientRect();
	if (rect.width <= 0 || rect.height <= 0) {
		return false;
	}
	var style = window.getComputedStyle(element);
	if (style.visibility === 'hidden' || style.display === 'none') {
		return false;
	}
	return rect.bottom > 0 && rect.right > 0 &&
		rect.top < (window.innerHeight || document.documentElement.clientHeight) &&
		rect.left < (window.innerWidth || document.documentElement.clientWidth);
}`}
)

// catalog indexes every known script by name.
var catalog = map[string]Script{
	Click.Name:                  Click,
	ScrollIntoView.Name:         ScrollIntoView,
	ScrollBy.Name:               ScrollBy,
	ScrollToCenter.Name:         ScrollToCenter,
	SetValue.Name:               SetValue,
	SetFocus.Name:               SetFocus,
	Highlight.Name:              Highlight,
	GetText.Name:                GetText,
	GetXPath.Name:               GetXPath,
	GetViewportCoordinates.Name: GetViewportCoordinates,
	MouseHover.Name:             MouseHover,
	ExpandShadowRoot.Name:       ExpandShadowRoot,
	IsOnScreen.Name:             IsOnScreen,
}

// ByName looks a script up by its symbolic name.
func ByName(name string) (Script, error) {
	s, ok := catalog[name]
	if !ok {
		return Script{}, fmt.Errorf("scripts: unknown script %q", name)
	}
	return s, nil
}

// All returns every script in the catalog. The returned map is a copy.
func All() map[string]Script {
	out := make(map[string]Script, len(catalog))
	for k, v := range catalog {
		out[k] = v
	}
	return out
}
