package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/qaforge/domact/pkg/domact"
)

// newClickCmd creates and configures the `click` command.
func newClickCmd() *cobra.Command {
	var (
		css       string
		xpath     string
		name      string
		wait      bool
		highlight bool
	)

	clickCmd := &cobra.Command{
		Use:   "click [url]",
		Short: "Resolves an element and clicks it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locator, err := locatorFromFlags(css, xpath)
			if err != nil {
				return err
			}

			return runElementAction(cmd.Context(), args[0], locator, name, func(ctx context.Context, actions *domact.Actions) error {
				var opts []domact.ActionOption
				if highlight {
					opts = append(opts, domact.WithHighlight(domact.HighlightForce))
				}

				if wait {
					return actions.ClickAndWait(ctx, opts...)
				}
				return actions.Click(ctx, opts...)
			})
		},
	}

	clickCmd.Flags().StringVar(&css, "css", "", "CSS selector for the target element")
	clickCmd.Flags().StringVar(&xpath, "xpath", "", "XPath expression for the target element")
	clickCmd.Flags().StringVar(&name, "name", "element", "logical element name used in logs")
	clickCmd.Flags().BoolVar(&wait, "wait", false, "wait for the page load triggered by the click")
	clickCmd.Flags().BoolVar(&highlight, "highlight", false, "highlight the element before clicking")

	return clickCmd
}
