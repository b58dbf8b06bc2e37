package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/digitalbookstore/storefront/internal/storefront"
)

func cartCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the saved cart",
	}

	cmd.AddCommand(
		cartShowCmd(a),
		cartAddCmd(a),
		cartSetCmd(a),
		cartRemoveCmd(a),
		cartClearCmd(a),
	)

	return cmd
}

func cartShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the cart lines and totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printDrawer(cmd.OutOrStdout(), a.storefront.Drawer())
			return nil
		},
	}
}

func cartAddCmd(a *app) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "add <book-id>",
		Short: "Add a book to the cart",
		Long:  `Add a book. A book already in the cart is left unchanged.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.validator.Var("qty", qty, "gte=1"); err != nil {
				return err
			}
			_, err := a.storefront.AddToCart(args[0], qty)
			return err
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "n", 1, "Copies to add")

	return cmd
}

func cartSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set <book-id> <quantity>",
		Short: "Set a line's quantity; zero or less removes it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.validator.Var("quantity", args[1], "required,numeric"); err != nil {
				return err
			}
			qty, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q: %w", args[1], err)
			}
			if err := a.storefront.SetQuantity(args[0], qty); err != nil {
				return err
			}
			printDrawer(cmd.OutOrStdout(), a.storefront.Drawer())
			return nil
		},
	}
}

func cartRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <book-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.storefront.RemoveFromCart(args[0]); err != nil {
				return err
			}
			printDrawer(cmd.OutOrStdout(), a.storefront.Drawer())
			return nil
		},
	}
}

func cartClearCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.storefront.Cart().Clear()
			printDrawer(cmd.OutOrStdout(), a.storefront.Drawer())
			return nil
		},
	}
}

func printDrawer(w io.Writer, d storefront.Drawer) {
	fmt.Fprintln(w, d.Description)
	if d.Empty {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tQTY\tTOTAL")
	for _, l := range d.Lines {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", l.Item.Book.ID, l.Item.Book.Title, l.Item.Quantity, l.Total)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "Subtotal: %s\n", d.Subtotal)
	if d.Discount != "" {
		fmt.Fprintf(w, "Discount: %s\n", d.Discount)
	}
	fmt.Fprintf(w, "Total:    %s\n", d.Total)
}
