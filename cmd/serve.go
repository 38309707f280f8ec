package cmd

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/assistant"
	"github.com/masonpham16/TalkDoc/internal/daemon"
	"github.com/masonpham16/TalkDoc/internal/device"
	"github.com/masonpham16/TalkDoc/internal/server"
	"github.com/masonpham16/TalkDoc/internal/speech"
)

// Serve command flags.
var (
	serveFlagAddr string
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP relay",
	Long: `Run the HTTP relay that browser clients call instead of talking
to upstream services directly, so API keys never leave this host.

Routes:
  POST /chat          chat completion relay
  POST /tts           speech synthesis relay
  POST /api/dispense  dispense forwarder
  GET  /api/health    process health report

A route whose credential is not configured reports the configuration
problem instead of failing at startup.

Examples:
  talkdoc serve
  talkdoc serve --addr :9090`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveFlagAddr, "addr", "",
		"Listen address (default from TALKDOC_ADDR or :8080)")

	rootCmd.AddCommand(serveCmd)
}

// runServe handles the serve command.
func runServe(cmd *cobra.Command, args []string) error {
	cfg := ctx.Config.Server
	if serveFlagAddr != "" {
		cfg.Addr = serveFlagAddr
	}

	// Backends stay nil when their credential is missing; the server
	// reports the configuration error per request.
	var chat server.ChatCompleter
	if c, err := assistant.NewClient(ctx.Config.Assistant); err == nil {
		chat = c
	} else if !ctx.IsJSON() {
		ctx.CLIFormatter().Warning("Chat disabled: " + err.Error())
	}

	var synth server.Synthesizer
	if s, err := speech.NewSynthesizer(ctx.Config.Speech, ctx.Config.HTTP); err == nil {
		synth = s
	} else if !ctx.IsJSON() {
		ctx.CLIFormatter().Warning("TTS disabled: " + err.Error())
	}

	var dispenser server.Dispenser
	if d, err := device.NewClient(ctx.Config.Device); err == nil {
		dispenser = d
	} else if !ctx.IsJSON() {
		ctx.CLIFormatter().Warning("Dispense disabled: " + err.Error())
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, chat, synth, dispenser)
	srv.SetHealthChecker(daemon.NewHealthChecker(Version, nil))
	return srv.Run(runCtx)
}
