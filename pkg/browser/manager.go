// pkg/browser/manager.go
package browser

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/qaforge/domact/internal/config"
)

// Manager owns the headless browser process. Sessions (tabs) are derived from
// its allocator context and tracked so shutdown can wait for in-flight work.
type Manager struct {
	logger       *zap.Logger
	globalConfig *config.Config

	// allocatorCtx manages the entire browser process. All session contexts
	// are derived from this.
	allocatorCtx    context.Context
	allocatorCancel context.CancelFunc

	// wg tracks active sessions for a graceful shutdown.
	wg sync.WaitGroup
}

// NewManager launches the browser process and verifies it is responsive.
func NewManager(ctx context.Context, logger *zap.Logger, cfg *config.Config) (*Manager, error) {
	m := &Manager{
		logger:       logger.Named("browser_manager"),
		globalConfig: cfg,
	}

	if err := m.launchBrowser(ctx); err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return m, nil
}

// launchBrowser prepares allocator options and starts the headless browser process.
func (m *Manager) launchBrowser(ctx context.Context) error {
	m.logger.Info("Initializing browser allocator...")

	opts := m.buildAllocatorOptions()

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	m.allocatorCtx = allocCtx
	m.allocatorCancel = cancel

	// Create a temporary context with a timeout to verify the browser starts
	// and is responsive.
	testCtx, cancelTest := context.WithTimeout(allocCtx, 30*time.Second)
	testCtx, cancelTestCtx := chromedp.NewContext(testCtx)
	defer cancelTestCtx()
	defer cancelTest()

	if err := chromedp.Run(testCtx, chromedp.Navigate("about:blank")); err != nil {
		m.allocatorCancel()
		return fmt.Errorf("browser failed to start or respond: %w", err)
	}

	m.logger.Info("Browser launched successfully and is responsive.")
	return nil
}

// buildAllocatorOptions assembles the process flags for a configurable
// headless browser instance.
func (m *Manager) buildAllocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)

	opts = append(opts,
		chromedp.Flag("headless", m.globalConfig.Browser.Headless),
		chromedp.Flag("ignore-certificate-errors", m.globalConfig.Browser.IgnoreTLSErrors),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-gpu", m.globalConfig.Browser.Headless),
	)

	// Add custom arguments from the configuration.
	for _, arg := range m.globalConfig.Browser.Args {
		parts := strings.SplitN(arg, "=", 2)
		flagName := strings.TrimPrefix(parts[0], "--")

		if len(parts) == 2 {
			opts = append(opts, chromedp.Flag(flagName, parts[1]))
		} else {
			opts = append(opts, chromedp.Flag(flagName, true))
		}
	}

	// Add flags required for running inside containers (e.g., Docker on Linux).
	if runtime.GOOS == "linux" {
		opts = append(opts,
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("disable-setuid-sandbox", true),
		)
	}

	return opts
}

// NewSession opens a new, isolated browser tab. The returned session must be
// closed by the caller; the manager's shutdown waits for it.
func (m *Manager) NewSession(ctx context.Context) (*Session, error) {
	s, err := newSession(ctx, m.allocatorCtx, m.globalConfig, m.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize browser session: %w", err)
	}

	m.wg.Add(1)
	s.onClose = m.wg.Done
	return s, nil
}

// Shutdown waits for all active sessions to complete and then terminates the
// browser process.
func (m *Manager) Shutdown(ctx context.Context) error {
	m.logger.Info("Browser manager shutdown initiated. Waiting for active sessions to complete...")

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		m.logger.Info("All sessions have completed.")
	case <-ctx.Done():
		m.logger.Warn("Shutdown deadline exceeded. Forcing browser termination.", zap.Error(ctx.Err()))
	}

	if m.allocatorCancel != nil {
		m.logger.Info("Shutting down main browser process...")
		m.allocatorCancel()
		<-m.allocatorCtx.Done()
	}
	return nil
}
