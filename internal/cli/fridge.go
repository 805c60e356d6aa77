package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"yumyum/internal/app"
	"yumyum/internal/inventory"
)

var (
	listSearch   string
	listCategory string
	listSort     string
	listDesc     bool

	addQuantity int
	addStorage  string
	addExpires  string
)

var fridgeCmd = &cobra.Command{
	Use:   "fridge",
	Short: "Manage the ingredients you own",
}

var fridgeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List fridge contents",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := inventory.ParseCategory(listCategory)
		if err != nil {
			return err
		}
		opts := app.ListOptions{Search: listSearch, Category: category, Desc: listDesc}
		if listSort != "" {
			key, err := inventory.ParseSortKey(listSort)
			if err != nil {
				return err
			}
			opts.Sort = key
		}
		return application.ListInventory(cmd.Context(), opts)
	},
}

var fridgeAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add an item to the fridge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storage, err := inventory.ParseStorage(addStorage)
		if err != nil {
			return err
		}
		return application.AddItem(cmd.Context(), args[0], addQuantity, storage, addExpires)
	},
}

var fridgeSetCmd = &cobra.Command{
	Use:   "set <id> <quantity>",
	Short: "Set an item's quantity (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid quantity %q", args[1])
		}
		return application.SetQuantity(cmd.Context(), id, qty)
	},
}

var fridgeIncCmd = &cobra.Command{
	Use:   "inc <id>",
	Short: "Raise an item's quantity by one",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		return application.AdjustQuantity(cmd.Context(), id, +1)
	},
}

var fridgeDecCmd = &cobra.Command{
	Use:   "dec <id>",
	Short: "Lower an item's quantity by one (removes it at zero)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		return application.AdjustQuantity(cmd.Context(), id, -1)
	},
}

var fridgeRemoveCmd = &cobra.Command{
	Use:   "remove <id> [id...]",
	Short: "Remove one or more items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int, 0, len(args))
		for _, arg := range args {
			id, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid item id %q", arg)
			}
			ids = append(ids, id)
		}
		return application.RemoveItems(cmd.Context(), ids)
	},
}

var fridgeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove everything from the fridge",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.ClearInventory(cmd.Context())
	},
}

var fridgeSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the sample starter items",
	RunE: func(cmd *cobra.Command, args []string) error {
		return application.SeedInventory(cmd.Context())
	},
}

func init() {
	fridgeListCmd.Flags().StringVar(&listSearch, "search", "", "filter by name substring")
	fridgeListCmd.Flags().StringVar(&listCategory, "category", "All", "filter by storage location (All, Fridge, Freezer, Pantry)")
	fridgeListCmd.Flags().StringVar(&listSort, "sort", "", "sort key (name, quantity, added, expires)")
	fridgeListCmd.Flags().BoolVar(&listDesc, "desc", false, "sort descending")

	fridgeAddCmd.Flags().IntVar(&addQuantity, "quantity", 1, "how many")
	fridgeAddCmd.Flags().StringVar(&addStorage, "storage", "Fridge", "storage location (Fridge, Freezer, Pantry)")
	fridgeAddCmd.Flags().StringVar(&addExpires, "expires", "", "expiry date (YYYY-MM-DD)")

	fridgeCmd.AddCommand(
		fridgeListCmd, fridgeAddCmd, fridgeSetCmd, fridgeIncCmd,
		fridgeDecCmd, fridgeRemoveCmd, fridgeClearCmd, fridgeSeedCmd,
	)
	rootCmd.AddCommand(fridgeCmd)
}
