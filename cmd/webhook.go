package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/notify"
	"github.com/masonpham16/TalkDoc/internal/output"
	"github.com/masonpham16/TalkDoc/internal/runtime"
	"github.com/masonpham16/TalkDoc/internal/validate"
)

// Webhook command flags.
var (
	webhookAddFlagType     string
	webhookAddFlagTemplate string
	webhookTestFlagAll     bool
)

// webhookCmd represents the webhook command.
var webhookCmd = &cobra.Command{
	Use:     "webhook [command]",
	Aliases: []string{"w", "wh", "hook"},
	Short:   "Configure notification webhooks",
	Long: `Configure webhooks for Discord, Slack, or custom endpoints.

Enabled webhooks receive a copy of every fired reminder in addition to
the in-app notification log.

Examples:
  talkdoc webhook add discord https://discord.com/api/webhooks/...
  talkdoc webhook add slack https://hooks.slack.com/services/...
  talkdoc webhook list
  talkdoc webhook test discord
  talkdoc webhook disable slack
  talkdoc webhook remove discord`,
	RunE: runWebhookList,
}

// webhookAddCmd adds a new webhook.
var webhookAddCmd = &cobra.Command{
	Use:   "add NAME URL",
	Short: "Add a new webhook",
	Long: `Add a webhook for receiving fired reminders.

The webhook type is auto-detected from the URL:
  - Discord: discord.com/api/webhooks/...
  - Slack:   hooks.slack.com/services/...
  - Generic: Any other URL

Examples:
  talkdoc webhook add discord https://discord.com/api/webhooks/123/abc
  talkdoc webhook add my-webhook https://example.com/hook --type generic`,
	Args: cobra.ExactArgs(2),
	RunE: runWebhookAdd,
}

// webhookListCmd lists all webhooks.
var webhookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all webhooks",
	RunE:  runWebhookList,
}

// webhookTestCmd tests a webhook.
var webhookTestCmd = &cobra.Command{
	Use:   "test [NAME]",
	Short: "Test a webhook by sending a test notification",
	RunE:  runWebhookTest,
}

// webhookRemoveCmd removes a webhook.
var webhookRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a webhook",
	Args:    cobra.ExactArgs(1),
	RunE:    runWebhookRemove,
}

// webhookEnableCmd enables a webhook.
var webhookEnableCmd = &cobra.Command{
	Use:   "enable NAME",
	Short: "Enable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebhookEnable,
}

// webhookDisableCmd disables a webhook.
var webhookDisableCmd = &cobra.Command{
	Use:   "disable NAME",
	Short: "Disable a webhook",
	Args:  cobra.ExactArgs(1),
	RunE:  runWebhookDisable,
}

func init() {
	webhookAddCmd.Flags().StringVarP(&webhookAddFlagType, "type", "t", "",
		"Webhook type: discord, slack, generic (auto-detected from URL if not specified)")
	webhookAddCmd.Flags().StringVar(&webhookAddFlagTemplate, "template", "",
		"Custom payload template for generic webhooks")

	webhookTestCmd.Flags().BoolVarP(&webhookTestFlagAll, "all", "a", false,
		"Test all enabled webhooks")

	// Dynamic completion for webhook names
	webhookTestCmd.ValidArgsFunction = completeWebhookArgs
	webhookRemoveCmd.ValidArgsFunction = completeWebhookArgs
	webhookEnableCmd.ValidArgsFunction = completeWebhookArgs
	webhookDisableCmd.ValidArgsFunction = completeWebhookArgs

	webhookCmd.AddCommand(webhookAddCmd)
	webhookCmd.AddCommand(webhookListCmd)
	webhookCmd.AddCommand(webhookTestCmd)
	webhookCmd.AddCommand(webhookRemoveCmd)
	webhookCmd.AddCommand(webhookEnableCmd)
	webhookCmd.AddCommand(webhookDisableCmd)

	rootCmd.AddCommand(webhookCmd)
}

// completeWebhookArgs provides completion for webhook names.
func completeWebhookArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) != 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Initialize context for completion
	if ctx == nil {
		opts := runtime.DefaultOptions()
		var err error
		ctx, err = runtime.New(opts)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer ctx.Close()
	}

	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	var names []string
	for _, wh := range webhooks {
		if strings.HasPrefix(wh.Name, toComplete) {
			names = append(names, wh.Name)
		}
	}

	return names, cobra.ShellCompDirectiveNoFileComp
}

// runWebhookAdd handles the webhook add command.
func runWebhookAdd(cmd *cobra.Command, args []string) error {
	name := args[0]
	webhookURL := args[1]

	if !model.IsValidWebhookName(name) {
		return fmt.Errorf("invalid webhook name: must be alphanumeric with dash/underscore, max 50 chars")
	}

	if err := validate.WebhookURL(webhookURL); err != nil {
		return err
	}

	webhookType := webhookAddFlagType
	if webhookType == "" {
		webhookType = model.DetectWebhookType(webhookURL)
	}
	if !model.IsValidWebhookType(webhookType) {
		return fmt.Errorf("invalid webhook type: must be discord, slack, or generic")
	}

	webhook := model.NewWebhook(name, webhookType, webhookURL)
	if webhookAddFlagTemplate != "" {
		webhook.Template = webhookAddFlagTemplate
	}

	if err := ctx.WebhookRepo.Create(webhook); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"name":       webhook.Name,
			"type":       webhook.Type,
			"url":        webhook.MaskedURL(),
			"enabled":    webhook.Enabled,
			"created_at": webhook.CreatedAt,
		})
	}

	ctx.Formatter.Println("Added webhook:", name)
	ctx.Formatter.Printf("  Type: %s\n", webhook.Type)
	ctx.Formatter.Printf("  URL: %s\n", webhook.MaskedURL())
	ctx.Formatter.Printf("  Status: enabled\n")
	ctx.Formatter.Println("")
	ctx.Formatter.Printf("Test with: talkdoc webhook test %s\n", name)

	return nil
}

// runWebhookList handles the webhook list command.
func runWebhookList(cmd *cobra.Command, args []string) error {
	webhooks, err := ctx.WebhookRepo.List()
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"webhooks": webhooks,
			"count":    len(webhooks),
		})
	}

	if len(webhooks) == 0 {
		ctx.Formatter.Println("No webhooks configured.")
		ctx.Formatter.Println("")
		ctx.Formatter.Println("Add one with: talkdoc webhook add discord <url>")
		return nil
	}

	ctx.Formatter.Println("Configured Webhooks:")
	ctx.Formatter.Println("")

	ctx.Formatter.Printf("  %-12s %-10s %-10s %s\n", "Name", "Type", "Status", "Last Used")
	ctx.Formatter.Println("  " + strings.Repeat("-", 50))

	for _, wh := range webhooks {
		status := "enabled"
		if !wh.Enabled {
			status = "disabled"
		}

		lastUsed := "never"
		if !wh.LastUsed.IsZero() {
			lastUsed = output.FormatRelative(wh.LastUsed)
		}

		ctx.Formatter.Printf("  %-12s %-10s %-10s %s\n", wh.Name, wh.Type, status, lastUsed)
	}

	ctx.Formatter.Println("")
	ctx.Formatter.Printf("%d webhooks\n", len(webhooks))

	return nil
}

// runWebhookTest handles the webhook test command.
func runWebhookTest(cmd *cobra.Command, args []string) error {
	dispatcher := notify.NewDispatcher(ctx.WebhookRepo, ctx.Config.HTTP)
	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if webhookTestFlagAll {
		webhooks, err := ctx.WebhookRepo.ListEnabled()
		if err != nil {
			return err
		}

		if len(webhooks) == 0 {
			return fmt.Errorf("no enabled webhooks to test")
		}

		var results []notify.DispatchResult
		for _, wh := range webhooks {
			results = append(results, dispatcher.TestWebhook(c, wh.Name))
		}

		if ctx.IsJSON() {
			return ctx.Formatter.JSON(map[string]interface{}{
				"results": results,
			})
		}

		for _, result := range results {
			if result.Success {
				ctx.Formatter.Printf("✓ %s: Success (%dms)\n", result.WebhookName, result.Duration.Milliseconds())
			} else {
				ctx.Formatter.Printf("✗ %s: Failed - %s\n", result.WebhookName, result.Error)
			}
		}

		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("webhook name required (or use --all)")
	}

	name := args[0]

	ctx.Formatter.Printf("Testing webhook: %s\n", name)
	ctx.Formatter.Println("Sending test notification...")

	result := dispatcher.TestWebhook(c, name)

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"webhook":     name,
			"success":     result.Success,
			"status_code": result.StatusCode,
			"duration_ms": result.Duration.Milliseconds(),
			"error":       errorString(result.Error),
		})
	}

	if result.Success {
		ctx.CLIFormatter().Success(fmt.Sprintf("Delivered in %dms", result.Duration.Milliseconds()))
	} else {
		return fmt.Errorf("delivery failed: %v", result.Error)
	}

	return nil
}

// runWebhookRemove handles the webhook remove command.
func runWebhookRemove(cmd *cobra.Command, args []string) error {
	name := args[0]

	if err := ctx.WebhookRepo.Delete(name); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(&output.StatusOutput{Status: "removed", Message: name})
	}

	ctx.CLIFormatter().Success("Removed webhook: " + name)
	return nil
}

// runWebhookEnable handles the webhook enable command.
func runWebhookEnable(cmd *cobra.Command, args []string) error {
	return setWebhookEnabled(args[0], true)
}

// runWebhookDisable handles the webhook disable command.
func runWebhookDisable(cmd *cobra.Command, args []string) error {
	return setWebhookEnabled(args[0], false)
}

// setWebhookEnabled flips the enabled flag on a webhook.
func setWebhookEnabled(name string, enabled bool) error {
	webhook, err := ctx.WebhookRepo.Get(name)
	if err != nil {
		return err
	}

	webhook.Enabled = enabled
	if err := ctx.WebhookRepo.Update(webhook); err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(&output.StatusOutput{Status: state, Message: name})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Webhook %s %s", name, state))
	return nil
}

// errorString renders an error for JSON output, empty when nil.
func errorString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
