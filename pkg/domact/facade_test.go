package domact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qaforge/domact/pkg/retry"
	"github.com/qaforge/domact/pkg/scripts"
)

type actionsFixture struct {
	session *fakeSession
	factory *fakeFactory
	logger  *recordingLogger
	actions *Actions
}

func newFixture(t *testing.T, highlightEnabled bool) *actionsFixture {
	t.Helper()
	session := &fakeSession{}
	factory := &fakeFactory{}
	logger := &recordingLogger{}

	actions, err := NewActions(testElement(), session, factory, logger, stubProfile(highlightEnabled), retry.Policy{Attempts: 2})
	require.NoError(t, err)
	return &actionsFixture{session: session, factory: factory, logger: logger, actions: actions}
}

func TestNewActionsRejectsNilElement(t *testing.T) {
	_, err := NewActions(nil, &fakeSession{}, &fakeFactory{}, &recordingLogger{}, stubProfile(false), retry.DefaultPolicy)
	assert.ErrorIs(t, err, ErrNilElement)
}

func TestClickRunsClickScriptOnTargetElement(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.actions.Click(context.Background()))

	runs := f.session.runsFor(scripts.Click.Body)
	require.Len(t, runs, 1)
	assert.Same(t, f.actions.Element(), runs[0].Args[0])
	assert.Equal(t, []string{"loc.clicking.js"}, f.logger.keys())
}

func TestClickAndWaitBlocksOnPageLoad(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.actions.ClickAndWait(context.Background()))
	assert.Equal(t, 1, f.session.waits)
}

func TestClickAndWaitNeverWaitsWhenClickFails(t *testing.T) {
	f := newFixture(t, false)
	f.session.handler = func(call runCall, _ int) (any, error) {
		if call.Body == scripts.Click.Body {
			return nil, errStale
		}
		return nil, nil
	}

	err := f.actions.ClickAndWait(context.Background())
	require.Error(t, err)
	assert.Zero(t, f.session.waits, "page-load wait must not run after a failed click")
}

func TestHighlightMatrix(t *testing.T) {
	tests := []struct {
		name        string
		profileFlag bool
		opts        []ActionOption
		highlighted bool
	}{
		{"profile on, no override", true, nil, true},
		{"profile off, no override", false, nil, false},
		{"profile off, forced", false, []ActionOption{WithHighlight(HighlightForce)}, true},
		{"profile on, suppressed", true, []ActionOption{WithHighlight(HighlightSuppress)}, false},
		{"profile off, suppressed", false, []ActionOption{WithHighlight(HighlightSuppress)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.profileFlag)
			require.NoError(t, f.actions.Click(context.Background(), tt.opts...))

			want := 0
			if tt.highlighted {
				want = 1
			}
			assert.Equal(t, want, f.session.attemptsFor(scripts.Highlight.Body))
			assert.Equal(t, 1, f.session.attemptsFor(scripts.Click.Body))
		})
	}
}

func TestHighlightRunsBeforeTheAction(t *testing.T) {
	f := newFixture(t, true)
	require.NoError(t, f.actions.Click(context.Background()))

	require.Len(t, f.session.runs, 2)
	assert.Equal(t, scripts.Highlight.Body, f.session.runs[0].Body)
	assert.Equal(t, scripts.Click.Body, f.session.runs[1].Body)
}

func TestHighlightElementIgnoresProfileFlag(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.actions.HighlightElement(context.Background()))
	assert.Equal(t, 1, f.session.attemptsFor(scripts.Highlight.Body))
}

func TestSetValuePassesValueAfterElement(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.actions.SetValue(context.Background(), "hello"))

	runs := f.session.runsFor(scripts.SetValue.Body)
	require.Len(t, runs, 1)
	require.Len(t, runs[0].Args, 2)
	assert.Same(t, f.actions.Element(), runs[0].Args[0])
	assert.Equal(t, "hello", runs[0].Args[1])
}

func TestScrollByPassesOffsets(t *testing.T) {
	f := newFixture(t, false)
	require.NoError(t, f.actions.ScrollBy(context.Background(), 10, -20))

	runs := f.session.runsFor(scripts.ScrollBy.Body)
	require.Len(t, runs, 1)
	assert.Equal(t, []any{f.actions.Element(), 10, -20}, runs[0].Args)
}

func TestGetTextLogsPreActionAndValue(t *testing.T) {
	f := newFixture(t, false)
	f.session.handler = func(call runCall, _ int) (any, error) {
		return "Hello", nil
	}

	text, err := f.actions.GetText(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hello", text)

	require.Len(t, f.logger.entries, 2)
	assert.Equal(t, "loc.get.text.js", f.logger.entries[0].Key)
	assert.Empty(t, f.logger.entries[0].Args)
	assert.Equal(t, "loc.text.value", f.logger.entries[1].Key)
	assert.Equal(t, []any{"Hello"}, f.logger.entries[1].Args)

	assert.Equal(t, "button", f.logger.entries[0].ElementType)
	assert.Equal(t, "Login", f.logger.entries[0].ElementName)
}

func TestGetXPathLogsComputedValue(t *testing.T) {
	f := newFixture(t, false)
	f.session.handler = func(runCall, int) (any, error) {
		return "/html[1]/body[1]/button[1]", nil
	}

	xpath, err := f.actions.GetXPath(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/html[1]/body[1]/button[1]", xpath)
	assert.Equal(t, []string{"loc.get.xpath.js", "loc.xpath.value"}, f.logger.keys())
}

func TestIsElementOnScreenLogsComputedValue(t *testing.T) {
	f := newFixture(t, false)
	f.session.handler = func(runCall, int) (any, error) {
		return false, nil
	}

	onScreen, err := f.actions.IsElementOnScreen(context.Background())
	require.NoError(t, err)
	assert.False(t, onScreen)
	assert.Equal(t, []string{"loc.on.screen.js", "loc.on.screen.value"}, f.logger.keys())
	assert.Equal(t, []any{false}, f.logger.entries[1].Args)
}

func TestReadFailureProducesSingleLogEntry(t *testing.T) {
	f := newFixture(t, false)
	f.session.handler = func(runCall, int) (any, error) {
		return nil, errStale
	}

	_, err := f.actions.GetText(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"loc.get.text.js"}, f.logger.keys(), "no value entry on failure")
}

func TestViewportCoordinatesRounding(t *testing.T) {
	tests := []struct {
		name     string
		raw      []any
		expected Point
	}{
		{"round down and up", []any{12.4, 7.6}, Point{X: 12, Y: 8}},
		{"half and negative", []any{12.5, -0.4}, Point{X: 13, Y: 0}},
		{"stringly-typed numbers", []any{"12.4", "7.6"}, Point{X: 12, Y: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.session.handler = func(runCall, int) (any, error) {
				return tt.raw, nil
			}
			got, err := f.actions.ViewportCoordinates(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestViewportCoordinatesRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name string
		raw  any
	}{
		{"non-numeric element", []any{"x", 7.0}},
		{"wrong arity", []any{1.0, 2.0, 3.0}},
		{"not a sequence", "1,2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)
			f.session.handler = func(runCall, int) (any, error) {
				return tt.raw, nil
			}
			_, err := f.actions.ViewportCoordinates(context.Background())
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
		})
	}
}

func TestActionFailureCarriesScriptAndElementName(t *testing.T) {
	f := newFixture(t, false)
	f.session.handler = func(runCall, int) (any, error) {
		return nil, errStale
	}

	err := f.actions.HoverMouse(context.Background())
	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, scripts.MouseHover.Name, actionErr.Script)
	assert.Equal(t, "Login", actionErr.Element)
}
