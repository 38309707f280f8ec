package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/output"
	"github.com/masonpham16/TalkDoc/internal/speech"
)

// Speak command flags.
var (
	speakFlagOut string
)

// speakCmd represents the speak command.
var speakCmd = &cobra.Command{
	Use:     "speak TEXT",
	Aliases: []string{"tts", "say"},
	Short:   "Synthesize text to speech",
	Long: `Synthesize text to an MP3 file using the configured voice.

Requires ELEVENLABS_API_KEY and ELEVENLABS_VOICE_ID.

Examples:
  talkdoc speak "Time to take your pill"
  talkdoc speak "Good morning" --out morning.mp3`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSpeak,
}

func init() {
	speakCmd.Flags().StringVar(&speakFlagOut, "out", "speech.mp3",
		"Output MP3 file")

	rootCmd.AddCommand(speakCmd)
}

// runSpeak handles the speak command.
func runSpeak(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")

	synth, err := speech.NewSynthesizer(ctx.Config.Speech, ctx.Config.HTTP)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	audio, err := synth.Synthesize(c, text)
	if err != nil {
		return err
	}

	if err := os.WriteFile(speakFlagOut, audio, 0o644); err != nil {
		return fmt.Errorf("failed to write audio: %w", err)
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(&output.StatusOutput{
			Status:  "ok",
			Message: "wrote " + speakFlagOut,
		})
	}

	ctx.CLIFormatter().Success("Wrote " + speakFlagOut)
	return nil
}
