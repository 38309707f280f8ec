package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/device"
	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/output"
)

// dispenseCmd represents the dispense command.
var dispenseCmd = &cobra.Command{
	Use:   "dispense SLOT",
	Short: "Rotate the dispenser to a slot",
	Long: `Ask the dispenser controller to rotate to a slot and release
its contents.

Requires TALKDOC_DEVICE_URL to point at the controller, e.g.
http://raspberrypi.local:5000.

Examples:
  talkdoc dispense B1
  talkdoc dispense t3`,
	Args: cobra.ExactArgs(1),
	RunE: runDispense,
}

func init() {
	rootCmd.AddCommand(dispenseCmd)
}

// runDispense handles the dispense command.
func runDispense(cmd *cobra.Command, args []string) error {
	slot, err := model.ParseSlot(args[0])
	if err != nil {
		return err
	}

	client, err := device.NewClient(ctx.Config.Device)
	if err != nil {
		return err
	}

	c, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := client.Dispense(c, slot)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(&output.DispenseOutput{
			Status: "ok",
			Slot:   result.Slot,
			Angle:  result.Angle,
		})
	}

	ctx.CLIFormatter().PrintDispensed(result.Slot, result.Angle)
	return nil
}
