// cmd/tablectl/cart.go
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	cartdom "tableside/internal/domain/cart"
	"tableside/internal/selforder"
)

var (
	flagQty     int
	flagNotes   string
	flagName    string
	flagPrice   int64
	flagOptions []string

	flagUpdateQty   int
	flagUpdateNotes string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := newExecutor(cmd.Context())
		if err != nil {
			return err
		}
		printCart(store.Cart())
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <menuItemId>",
	Short: "Add an item to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, exec, err := newExecutor(cmd.Context())
		if err != nil {
			return err
		}

		name := flagName
		if name == "" {
			name = args[0]
		}
		var notes *string
		if cmd.Flags().Changed("notes") {
			notes = &flagNotes
		}
		customizations := make([]cartdom.Customization, 0, len(flagOptions))
		for _, oid := range flagOptions {
			customizations = append(customizations, cartdom.Customization{OptionID: oid})
		}

		if err := exec.AddItem(cmd.Context(), selforder.AddItemInput{
			MenuItemID:     args[0],
			Name:           name,
			UnitPrice:      cartdom.Cents(flagPrice),
			Quantity:       flagQty,
			Notes:          notes,
			Customizations: customizations,
		}); err != nil {
			return err
		}
		printCart(store.Cart())
		return nil
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <cartItemId>",
	Short: "Update quantity and/or notes of a cart item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, exec, err := newExecutor(cmd.Context())
		if err != nil {
			return err
		}

		in := selforder.UpdateItemInput{CartItemID: args[0]}
		if cmd.Flags().Changed("qty") {
			qty := flagUpdateQty
			in.Quantity = &qty
		}
		if cmd.Flags().Changed("notes") {
			notes := flagUpdateNotes
			in.Notes = &notes
		}

		if err := exec.UpdateItem(cmd.Context(), in); err != nil {
			return err
		}
		printCart(store.Cart())
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <cartItemId>",
	Short: "Remove an item from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, exec, err := newExecutor(cmd.Context())
		if err != nil {
			return err
		}
		if err := exec.RemoveItem(cmd.Context(), args[0]); err != nil {
			return err
		}
		printCart(store.Cart())
		return nil
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, exec, err := newExecutor(cmd.Context())
		if err != nil {
			return err
		}
		if err := exec.ClearCart(cmd.Context()); err != nil {
			return err
		}
		printCart(store.Cart())
		return nil
	},
}

func init() {
	addCmd.Flags().IntVar(&flagQty, "qty", 1, "quantity (>= 1)")
	addCmd.Flags().StringVar(&flagNotes, "notes", "", "free-text notes")
	addCmd.Flags().StringVar(&flagName, "name", "", "cached item name (defaults to the id)")
	addCmd.Flags().Int64Var(&flagPrice, "price", 0, "cached unit price in cents")
	addCmd.Flags().StringArrayVar(&flagOptions, "option", nil, "customization option id (repeatable)")

	updateCmd.Flags().IntVar(&flagUpdateQty, "qty", 0, "new quantity (< 1 removes the item)")
	updateCmd.Flags().StringVar(&flagUpdateNotes, "notes", "", "new notes")
}

func printCart(c *cartdom.Cart) {
	if c == nil {
		fmt.Println("no cart")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tITEM\tQTY\tLINE\tNOTES\n")
	for _, it := range c.Items {
		notes := ""
		if it.Notes != nil {
			notes = *it.Notes
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", it.ID, it.Name, it.Quantity, it.LineTotal(), notes)
		for _, cu := range it.Customizations {
			fmt.Fprintf(w, "\t  + %s\t\t%s\t\n", cu.Name, cu.Price)
		}
	}
	fmt.Fprintf(w, "\tSUBTOTAL\t\t%s\t\n", c.Subtotal)
	w.Flush()
}
