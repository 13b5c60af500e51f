// Package receipt renders a frozen bill snapshot into a document for a
// 58mm thermal printer: 32 monospaced columns, plus the raw ESC/POS
// bytes the hardware bridge forwards to the device.
package receipt

import (
	"encoding/base64"
	"fmt"
	"strings"

	"vajanpos/backend/internal/domain"
)

const Width = 32

// Default identity used when the billing config has no business name.
// Printing is never blocked by missing settings.
const (
	DefaultBusinessName = "Vajan Badhao"
	DefaultAddress      = "Main Road"
	DefaultPhoneNumber  = ""
)

// Render lays out the receipt in fixed section order: identity block,
// bill number and date, item table, count summary, totals, payment mode,
// closing message. The tax line is omitted entirely when no tax applies.
func Render(snap domain.BillSnapshot) domain.Document {
	name := snap.BusinessName
	if strings.TrimSpace(name) == "" {
		name = DefaultBusinessName
	}
	address := snap.Address
	if strings.TrimSpace(address) == "" {
		address = DefaultAddress
	}
	phone := snap.PhoneNumber
	if strings.TrimSpace(phone) == "" {
		phone = DefaultPhoneNumber
	}

	sep := strings.Repeat("-", Width)
	dsep := strings.Repeat("=", Width)

	lines := []string{
		center(name),
		center(address),
	}
	if phone != "" {
		lines = append(lines, center("Ph: "+phone))
	}
	lines = append(lines,
		dsep,
		fmt.Sprintf("Bill No: %d", snap.BillNumber),
		"Date: "+snap.Timestamp.Format("02/01/2006 03:04 PM"),
		sep,
		columns("Item", "Qty", "Rate", "Total"),
		sep,
	)

	for _, line := range snap.Lines {
		lines = append(lines, columns(
			line.Name,
			fmt.Sprintf("%d", line.Quantity),
			line.UnitPrice.StringFixed(2),
			line.LineTotal.StringFixed(2),
		))
	}

	lines = append(lines,
		sep,
		labelValue("Total Items", fmt.Sprintf("%d", snap.ItemCount)),
		labelValue("Total Quantity", fmt.Sprintf("%d", snap.TotalQuantity)),
		sep,
		labelValue("Sub Total", snap.Subtotal.StringFixed(2)),
	)
	if snap.TaxAmount.IsPositive() {
		gstLabel := fmt.Sprintf("GST (%s%%)", snap.GSTPercentage.String())
		lines = append(lines, labelValue(gstLabel, snap.TaxAmount.StringFixed(2)))
	}

	grandTotal := labelValue("TOTAL", snap.GrandTotal.StringFixed(2))
	lines = append(lines,
		dsep,
		grandTotal,
		dsep,
		labelValue("Paid By", paymentLabel(snap.PaymentMode)),
		"",
		center("THANK YOU VISIT AGAIN"),
		"",
	)

	return domain.Document{
		BillNumber:   snap.BillNumber,
		Width:        Width,
		Lines:        lines,
		Text:         strings.Join(lines, "\n"),
		EscposBase64: base64.StdEncoding.EncodeToString(escposBytes(lines, grandTotal)),
	}
}

// escposBytes assembles the raw printer payload. The grand total line
// prints at double width and height so it stands out on paper.
func escposBytes(lines []string, grandTotal string) []byte {
	payload := []byte{0x1b, 0x40}
	for _, line := range lines {
		if line == grandTotal {
			payload = append(payload, 0x1d, 0x21, 0x11)
			payload = append(payload, []byte(line)...)
			payload = append(payload, '\n')
			payload = append(payload, 0x1d, 0x21, 0x00)
			continue
		}
		payload = append(payload, []byte(line)...)
		payload = append(payload, '\n')
	}
	payload = append(payload, []byte{0x1d, 0x56, 0x41, 0x10}...)
	return payload
}

func paymentLabel(mode domain.PaymentMode) string {
	switch mode {
	case domain.PaymentModeElectronic:
		return "Electronic"
	default:
		return "Cash"
	}
}

func center(s string) string {
	s = truncate(s, Width)
	pad := (Width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}

// columns fits the item table into 32 chars: 14 for the name, 4 for the
// quantity, 6 for the rate, 8 for the line total.
func columns(name, qty, rate, total string) string {
	return fmt.Sprintf("%-14s%4s%6s%8s", truncate(name, 14), qty, rate, total)
}

func labelValue(label, value string) string {
	gap := Width - len(label) - len(value)
	if gap < 1 {
		gap = 1
	}
	return label + strings.Repeat(" ", gap) + value
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
