// pkg/locale/locale.go
package locale

import "fmt"

// messages maps action message keys to their English templates. Keys are
// stable identifiers used across logging and tests; templates are
// presentation only.
var messages = map[string]string{
	"loc.clicking.js":                 "Clicking via JavaScript",
	"loc.click.and.wait":              "Clicking via JavaScript and waiting for page load",
	"loc.scrolling.js":                "Scrolling into view via JavaScript",
	"loc.scroll.by.js":                "Scrolling by offset (%v, %v) via JavaScript",
	"loc.scroll.center.js":            "Scrolling to the center of the screen via JavaScript",
	"loc.setting.value.js":            "Setting value '%v' via JavaScript",
	"loc.focusing.js":                 "Setting focus via JavaScript",
	"loc.highlighting.js":             "Highlighting via JavaScript",
	"loc.hover.js":                    "Hovering mouse via JavaScript",
	"loc.get.text.js":                 "Getting text via JavaScript",
	"loc.text.value":                  "Text is '%v'",
	"loc.get.xpath.js":                "Getting XPath via JavaScript",
	"loc.xpath.value":                 "XPath is '%v'",
	"loc.on.screen.js":                "Checking presence on screen via JavaScript",
	"loc.on.screen.value":             "On screen: %v",
	"loc.get.viewport.coordinates.js": "Getting viewport coordinates via JavaScript",
	"loc.shadow.root.expand.js":       "Expanding shadow root via JavaScript",
	"loc.shadow.root.find.js":         "Finding '%v' in shadow root",
}

// Message resolves a message key into localized text. Unknown keys resolve
// to the key itself so a missing translation never fails an action.
func Message(key string, args ...any) string {
	tpl, ok := messages[key]
	if !ok {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprintf("%s %v", key, args)
	}
	if len(args) == 0 {
		return tpl
	}
	return fmt.Sprintf(tpl, args...)
}

// Known reports whether a key has a registered template.
func Known(key string) bool {
	_, ok := messages[key]
	return ok
}
