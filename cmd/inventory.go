package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/masonpham16/TalkDoc/internal/model"
	"github.com/masonpham16/TalkDoc/internal/output"
)

// inventoryCmd represents the inventory command.
var inventoryCmd = &cobra.Command{
	Use:     "inventory [command]",
	Aliases: []string{"inv", "i"},
	Short:   "Manage the 8 dispenser slots",
	Long: `View and manage the medication loaded into the dispenser slots.

The dispenser has two rows of four slots: T1-T4 on top and B1-B4 on
the bottom.

Examples:
  talkdoc inventory
  talkdoc inventory set B1 "Aspirin" 30
  talkdoc inventory clear B1`,
	RunE: runInventoryList,
}

// inventoryListCmd lists all slots.
var inventoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all slots",
	RunE:  runInventoryList,
}

// inventorySetCmd puts an item into a slot.
var inventorySetCmd = &cobra.Command{
	Use:   "set SLOT NAME [QUANTITY]",
	Short: "Put a medication into a slot",
	Long: `Put a medication into a dispenser slot, replacing whatever was
there before.

Examples:
  talkdoc inventory set B1 "Aspirin" 30
  talkdoc inventory set t2 Metformin`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runInventorySet,
}

// inventoryClearCmd empties a slot.
var inventoryClearCmd = &cobra.Command{
	Use:     "clear SLOT",
	Aliases: []string{"rm", "empty"},
	Short:   "Empty a slot",
	Args:    cobra.ExactArgs(1),
	RunE:    runInventoryClear,
}

func init() {
	inventoryCmd.AddCommand(inventoryListCmd)
	inventoryCmd.AddCommand(inventorySetCmd)
	inventoryCmd.AddCommand(inventoryClearCmd)

	rootCmd.AddCommand(inventoryCmd)
}

// runInventoryList handles the inventory list command.
func runInventoryList(cmd *cobra.Command, args []string) error {
	inv := ctx.InventoryRepo.Load()

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(output.NewInventoryResponse(inv))
	}

	ctx.CLIFormatter().PrintInventory(inv)
	return nil
}

// runInventorySet handles the inventory set command.
func runInventorySet(cmd *cobra.Command, args []string) error {
	slot, err := model.ParseSlot(args[0])
	if err != nil {
		return err
	}

	name := args[1]
	if name == "" {
		return fmt.Errorf("medication name is required")
	}

	quantity := 0
	if len(args) == 3 {
		quantity, err = strconv.Atoi(args[2])
		if err != nil || quantity < 0 {
			return fmt.Errorf("invalid quantity: %q", args[2])
		}
	}

	item := model.InventoryItem{Name: name, Quantity: quantity}
	if err := ctx.InventoryRepo.Set(slot, item); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"slot":     slot,
			"name":     item.Name,
			"quantity": item.Quantity,
		})
	}

	cli := ctx.CLIFormatter()
	cli.Success(fmt.Sprintf("Slot %s: %s (qty %d)", slot, cli.ItemName(item.Name), item.Quantity))
	return nil
}

// runInventoryClear handles the inventory clear command.
func runInventoryClear(cmd *cobra.Command, args []string) error {
	slot, err := model.ParseSlot(args[0])
	if err != nil {
		return err
	}

	if err := ctx.InventoryRepo.Clear(slot); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]interface{}{
			"slot":  slot,
			"empty": true,
		})
	}

	ctx.CLIFormatter().Success(fmt.Sprintf("Slot %s cleared", slot))
	return nil
}
