// internal/adapters/out/printer/receipt.go
package printer

import (
	"fmt"
	"strings"
	"time"

	cartdom "tableside/internal/domain/cart"
)

// DefaultReceiptWidth is the character width of an 80mm thermal printer.
const DefaultReceiptWidth = 42

// RenderReceipt renders a cart as fixed-width receipt text.
// Layout per line item:
//
//	2x Classic Burger                  23.00
//	   + Extra Cheese                   3.00
//	   * no onions
//
// width below 20 falls back to DefaultReceiptWidth.
func RenderReceipt(c *cartdom.Cart, title string, at time.Time, width int) string {
	if width < 20 {
		width = DefaultReceiptWidth
	}

	var b strings.Builder
	rule := strings.Repeat("-", width)

	if title = strings.TrimSpace(title); title != "" {
		b.WriteString(center(title, width))
		b.WriteByte('\n')
	}
	if !at.IsZero() {
		b.WriteString(center(at.Format("2006-01-02 15:04"), width))
		b.WriteByte('\n')
	}
	if c != nil && c.SessionID != "" {
		b.WriteString(center("session "+c.SessionID, width))
		b.WriteByte('\n')
	}
	b.WriteString(rule)
	b.WriteByte('\n')

	if c.IsEmpty() {
		b.WriteString(center("(empty cart)", width))
		b.WriteByte('\n')
	} else {
		for _, it := range c.Items {
			b.WriteString(priceLine(fmt.Sprintf("%dx %s", it.Quantity, it.Name), it.LineTotal(), width))
			for _, cu := range it.Customizations {
				b.WriteString(priceLine("   + "+cu.Name, cu.Price*cartdom.Cents(it.Quantity), width))
			}
			if it.Notes != nil && strings.TrimSpace(*it.Notes) != "" {
				b.WriteString("   * " + strings.TrimSpace(*it.Notes) + "\n")
			}
		}
	}

	b.WriteString(rule)
	b.WriteByte('\n')
	subtotal := cartdom.Cents(0)
	if c != nil {
		subtotal = c.Subtotal
	}
	b.WriteString(priceLine("SUBTOTAL", subtotal, width))

	return b.String()
}

// priceLine left-aligns label and right-aligns the amount on one line,
// truncating the label when the two would collide.
func priceLine(label string, amount cartdom.Cents, width int) string {
	price := amount.String()
	maxLabel := width - len(price) - 1
	if maxLabel < 1 {
		maxLabel = 1
	}
	if len(label) > maxLabel {
		label = label[:maxLabel]
	}
	pad := width - len(label) - len(price)
	if pad < 1 {
		pad = 1
	}
	return label + strings.Repeat(" ", pad) + price + "\n"
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s
}
