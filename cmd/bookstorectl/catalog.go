package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/digitalbookstore/storefront/internal/domain"
	"github.com/digitalbookstore/storefront/internal/storefront"
)

func catalogCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse the catalog",
	}

	cmd.AddCommand(catalogListCmd(a))

	return cmd
}

func catalogListCmd(a *app) *cobra.Command {
	var (
		query string
		desc  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books filtered by title and sorted A to Z",
		Long: `List the catalog. --query keeps books whose title contains the text,
ignoring case. --desc sorts Z to A.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			order := domain.Ascending
			if desc {
				order = domain.Descending
			}

			books := a.storefront.Catalog().Project(query, order, a.collator)
			printBooks(cmd.OutOrStdout(), books, a.storefront.Cart().Contains)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Title search text")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort Z to A")

	return cmd
}

func printBooks(w io.Writer, books []domain.Book, inCart func(id string) bool) {
	if len(books) == 0 {
		fmt.Fprintln(w, "No books match.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tPRICE\tDISCOUNT\tIN CART")
	for _, b := range books {
		discount := "-"
		if b.HasDiscount() {
			discount = fmt.Sprintf("%d%%", b.DiscountPercent())
		}
		mark := ""
		if inCart(b.ID) {
			mark = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			b.ID, b.Title, b.Author, storefront.FormatPrice(b.DiscountedPrice()), discount, mark)
	}
	_ = tw.Flush()
}
