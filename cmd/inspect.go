package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/qaforge/domact/internal/observability"
	"github.com/qaforge/domact/pkg/browser"
	"github.com/qaforge/domact/pkg/domact"
	"github.com/qaforge/domact/pkg/retry"
)

// locatorFromFlags builds a locator from the mutually exclusive --css and
// --xpath flags.
func locatorFromFlags(css, xpath string) (domact.Locator, error) {
	switch {
	case css != "" && xpath != "":
		return domact.Locator{}, errors.New("--css and --xpath are mutually exclusive")
	case css != "":
		return domact.Locator{Strategy: domact.ByCSS, Value: css}, nil
	case xpath != "":
		return domact.Locator{Strategy: domact.ByXPath, Value: xpath}, nil
	default:
		return domact.Locator{}, errors.New("one of --css or --xpath is required")
	}
}

// runElementAction boots a browser, navigates to the url, resolves the target
// element and hands the bound action facade to fn.
func runElementAction(ctx context.Context, url string, locator domact.Locator, name string, fn func(context.Context, *domact.Actions) error) error {
	logger := observability.GetLogger()

	manager, err := browser.NewManager(ctx, logger, cfg)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := manager.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Browser shutdown failed", zap.Error(err))
		}
	}()

	session, err := manager.NewSession(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := session.Navigate(ctx, url); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	factory := browser.NewFactory(session, cfg, logger)
	element, err := factory.Resolve(ctx, domact.PageContext, locator, name, nil, domact.StateDisplayed)
	if err != nil {
		return err
	}

	policy := retry.Policy{Attempts: cfg.Retry.Attempts, Interval: cfg.Retry.Interval}
	actions, err := domact.NewActions(element, session, factory, domact.NewZapActionLogger(logger), cfg, policy)
	if err != nil {
		return err
	}

	return fn(ctx, actions)
}

// newInspectCmd creates and configures the `inspect` command.
func newInspectCmd() *cobra.Command {
	var (
		css   string
		xpath string
		name  string
	)

	inspectCmd := &cobra.Command{
		Use:   "inspect [url]",
		Short: "Resolves an element and reports its text, XPath, visibility and position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locator, err := locatorFromFlags(css, xpath)
			if err != nil {
				return err
			}

			return runElementAction(cmd.Context(), args[0], locator, name, func(ctx context.Context, actions *domact.Actions) error {
				text, err := actions.GetText(ctx)
				if err != nil {
					return err
				}
				elementXPath, err := actions.GetXPath(ctx)
				if err != nil {
					return err
				}
				onScreen, err := actions.IsElementOnScreen(ctx)
				if err != nil {
					return err
				}
				point, err := actions.ViewportCoordinates(ctx)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "element:   %s\n", actions.Element().Name)
				fmt.Fprintf(out, "text:      %s\n", text)
				fmt.Fprintf(out, "xpath:     %s\n", elementXPath)
				fmt.Fprintf(out, "on screen: %t\n", onScreen)
				fmt.Fprintf(out, "position:  (%d, %d)\n", point.X, point.Y)
				return nil
			})
		},
	}

	inspectCmd.Flags().StringVar(&css, "css", "", "CSS selector for the target element")
	inspectCmd.Flags().StringVar(&xpath, "xpath", "", "XPath expression for the target element")
	inspectCmd.Flags().StringVar(&name, "name", "element", "logical element name used in logs")

	return inspectCmd
}
