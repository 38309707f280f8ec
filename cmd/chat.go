package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/assistant"
	"github.com/masonpham16/TalkDoc/internal/output"
	"github.com/masonpham16/TalkDoc/internal/speech"
)

// Chat command flags.
var (
	chatFlagSpeak bool
	chatFlagOut   string
)

// chatCmd represents the chat command.
var chatCmd = &cobra.Command{
	Use:   "chat MESSAGE",
	Short: "Ask the health assistant",
	Long: `Send a message to the health assistant and print the reply.

The assistant gives safe general health information and never
diagnoses. Requires GROQ_API_KEY.

Examples:
  talkdoc chat "can I take aspirin with food?"
  talkdoc chat "what is metformin for" --speak --out reply.mp3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatFlagSpeak, "speak", false,
		"Also synthesize the reply to an MP3 file")
	chatCmd.Flags().StringVar(&chatFlagOut, "out", "reply.mp3",
		"Output file for --speak")

	rootCmd.AddCommand(chatCmd)
}

// runChat handles the chat command.
func runChat(cmd *cobra.Command, args []string) error {
	message := strings.Join(args, " ")

	client, err := assistant.NewClient(ctx.Config.Assistant)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	reply, err := client.Complete(c, []assistant.Message{
		{Role: assistant.RoleUser, Content: message},
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		if err := ctx.Formatter.JSON(&output.ChatOutput{Status: "ok", Reply: reply}); err != nil {
			return err
		}
	} else {
		ctx.Formatter.Println(reply)
	}

	if !chatFlagSpeak {
		return nil
	}

	synth, err := speech.NewSynthesizer(ctx.Config.Speech, ctx.Config.HTTP)
	if err != nil {
		return err
	}

	audio, err := synth.Synthesize(c, reply)
	if err != nil {
		return err
	}

	if err := os.WriteFile(chatFlagOut, audio, 0o644); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}

	if !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Wrote " + chatFlagOut)
	}
	return nil
}
