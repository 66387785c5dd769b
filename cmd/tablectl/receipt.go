// cmd/tablectl/receipt.go
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableside/internal/adapters/out/printer"
)

var (
	flagPrint      bool
	flagPrinter    string
	flagCopies     int
	flagPaperWidth int
)

var receiptCmd = &cobra.Command{
	Use:   "receipt",
	Short: "Render the cart as a thermal receipt (optionally print it)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, _, err := newExecutor(cmd.Context())
		if err != nil {
			return err
		}

		text := printer.RenderReceipt(store.Cart(), "TABLESIDE", time.Now(), printer.DefaultReceiptWidth)
		if !flagPrint {
			fmt.Println(text)
			return nil
		}

		res, err := printer.Print(text, printer.Options{
			Printer:      flagPrinter,
			Copies:       flagCopies,
			PaperWidthMM: flagPaperWidth,
		})
		if err != nil {
			return err
		}
		if !res.Success {
			return fmt.Errorf("print failed: %s", res.Error)
		}
		if res.JobID != "" {
			fmt.Println("print job:", res.JobID)
		}
		return nil
	},
}

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "List available printers",
	RunE: func(cmd *cobra.Command, args []string) error {
		printers, err := printer.List()
		if err != nil {
			return err
		}
		for _, p := range printers {
			def := ""
			if p.IsDefault {
				def = " (default)"
			}
			fmt.Printf("%s%s %s\n", p.Name, def, p.Status)
		}
		return nil
	},
}

func init() {
	receiptCmd.Flags().BoolVar(&flagPrint, "print", false, "send to a printer instead of stdout")
	receiptCmd.Flags().StringVar(&flagPrinter, "printer", "", "printer name (default: system default)")
	receiptCmd.Flags().IntVar(&flagCopies, "copies", 1, "number of copies")
	receiptCmd.Flags().IntVar(&flagPaperWidth, "paper-width", 80, "paper width in mm (80 or 58)")

	rootCmd.AddCommand(printersCmd)
}
