// pkg/browser/session.go
package browser

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/qaforge/domact/internal/config"
	"github.com/qaforge/domact/pkg/domact"
)

// ensure Session satisfies the engine's session contract.
var _ domact.Session = (*Session)(nil)

// Session is a single, isolated browser tab driven over CDP. It provides the
// synchronous script-execution primitive and page-load wait the action engine
// is built on. A session serves one action at a time; concurrent callers
// serialize externally.
type Session struct {
	id           string
	globalConfig *config.Config
	logger       *zap.Logger

	sessionContext context.Context
	sessionCancel  context.CancelFunc

	onClose  func()
	isClosed bool
	mu       sync.Mutex
}

// newSession creates the browser tab and verifies it responds.
func newSession(ctx context.Context, allocCtx context.Context, cfg *config.Config, logger *zap.Logger) (*Session, error) {
	id := uuid.New().String()

	sessionCtx, cancel := chromedp.NewContext(allocCtx)
	s := &Session{
		id:             id,
		globalConfig:   cfg,
		logger:         logger.With(zap.String("session_id", id[:8])),
		sessionContext: sessionCtx,
		sessionCancel:  cancel,
	}

	initCtx, cancelInit := s.bind(ctx, cfg.Network.NavigationTimeout)
	defer cancelInit()

	if err := chromedp.Run(initCtx, chromedp.Navigate("about:blank")); err != nil {
		cancel()
		return nil, fmt.Errorf("browser tab failed to open: %w", err)
	}

	s.logger.Info("Browser session initialized.")
	return s, nil
}

// ID returns the unique identifier for this session.
func (s *Session) ID() string {
	return s.id
}

// GetContext returns the underlying session context, useful for advanced CDP
// operations.
func (s *Session) GetContext() context.Context {
	return s.sessionContext
}

// bind derives a run context from the session's chromedp context, bounded by
// a timeout and additionally cancelled when the caller's context ends.
// chromedp.Run needs the session context to route commands to the right tab,
// so the caller's context cannot be passed through directly.
func (s *Session) bind(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	runCtx, cancel := context.WithTimeout(s.sessionContext, timeout)
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

// Navigate loads a URL and waits for the document body to be ready.
func (s *Session) Navigate(ctx context.Context, url string) error {
	s.logger.Debug("Navigating", zap.String("url", url))

	runCtx, cancel := s.bind(ctx, s.globalConfig.Network.NavigationTimeout)
	defer cancel()

	return chromedp.Run(runCtx,
		chromedp.ActionFunc(func(ctx context.Context) error {
			if s.globalConfig.Browser.DisableCache {
				return network.SetCacheDisabled(true).Do(ctx)
			}
			return nil
		}),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

// RunScript executes a script body in the page, binding args in order.
// args[0] carries the target element handle; the remaining entries are
// action-specific primitives. The result is decoded to a loosely typed value:
// primitives come back as their JSON forms, DOM nodes as opaque handles.
func (s *Session) RunScript(ctx context.Context, body string, args []any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	target, callArgs, err := buildCallArguments(args)
	if err != nil {
		return nil, err
	}

	remote, err := s.callFunctionOn(ctx, body, target, callArgs, false)
	if err != nil {
		return nil, err
	}

	// DOM nodes stay opaque handles; any other reference result (arrays,
	// plain objects) is fetched by value so callers see plain data.
	if remote != nil && remote.ObjectID != "" && remote.Subtype != runtime.SubtypeNode {
		remote, err = s.callFunctionOn(ctx, "function() { return this; }", remote.ObjectID, nil, true)
		if err != nil {
			return nil, err
		}
	}
	return decodeRemoteObject(remote)
}

// callFunctionOn invokes a function declaration with the given target as
// `this`, returning the raw remote object. Script exceptions become errors.
func (s *Session) callFunctionOn(ctx context.Context, body string, target runtime.RemoteObjectID, args []*runtime.CallArgument, byValue bool) (*runtime.RemoteObject, error) {
	runCtx, cancel := s.bind(ctx, s.globalConfig.Network.ScriptTimeout)
	defer cancel()

	var remote *runtime.RemoteObject
	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		params := runtime.CallFunctionOn(body).
			WithObjectID(target).
			WithReturnByValue(byValue)
		if len(args) > 0 {
			params = params.WithArguments(args)
		}

		res, exception, err := params.Do(ctx)
		if err != nil {
			return err
		}
		if exception != nil {
			return fmt.Errorf("script execution failed: %w", exception)
		}
		remote = res
		return nil
	}))
	if err != nil {
		return nil, err
	}
	return remote, nil
}

// documentHandle resolves a remote object id for the page's document, used as
// the lookup root for whole-page queries.
func (s *Session) documentHandle(ctx context.Context) (runtime.RemoteObjectID, error) {
	runCtx, cancel := s.bind(ctx, s.globalConfig.Network.ScriptTimeout)
	defer cancel()

	var objectID runtime.RemoteObjectID
	err := chromedp.Run(runCtx, chromedp.ActionFunc(func(ctx context.Context) error {
		remote, exception, err := runtime.Evaluate("document").Do(ctx)
		if err != nil {
			return err
		}
		if exception != nil {
			return fmt.Errorf("document lookup failed: %w", exception)
		}
		if remote == nil || remote.ObjectID == "" {
			return fmt.Errorf("document lookup returned no handle")
		}
		objectID = remote.ObjectID
		return nil
	}))
	if err != nil {
		return "", err
	}
	return objectID, nil
}

// WaitForLoad blocks until the current document finishes loading, bounded by
// the configured page-load timeout.
func (s *Session) WaitForLoad(ctx context.Context) error {
	runCtx, cancel := s.bind(ctx, s.globalConfig.Network.PageLoadTimeout)
	defer cancel()

	err := chromedp.Run(runCtx, chromedp.Poll(
		`document.readyState === "complete"`,
		nil,
		chromedp.WithPollingInterval(s.globalConfig.Network.PollInterval),
	))
	if err != nil {
		return fmt.Errorf("page load wait: %w", err)
	}
	return nil
}

// Close terminates the browser tab and releases associated resources. It is
// safe to call more than once.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isClosed {
		return nil
	}
	s.isClosed = true

	s.logger.Debug("Closing browser session.")
	if s.sessionCancel != nil {
		s.sessionCancel()
	}
	if s.onClose != nil {
		s.onClose()
	}
	return nil
}
