package sales

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
)

const numberAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// GenerateInvoiceNumber builds the business key <prefix>-<YYYY-MM-DD>-<RANDOM6>.
// The prefix is the customer's first name when known, otherwise a fixed tag.
func GenerateInvoiceNumber(prefix string, now time.Time) string {
	buf := make([]byte, 6)
	_, _ = rand.Read(buf)
	for i, b := range buf {
		buf[i] = numberAlphabet[int(b)%len(numberAlphabet)]
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("2006-01-02"), string(buf))
}

// invoiceNumberPrefix derives the number prefix from a customer name: the
// first word, uppercased, or "INV" for anonymous sales.
func invoiceNumberPrefix(customerName string) string {
	name := strings.TrimSpace(customerName)
	if name == "" {
		return "INV"
	}
	if i := strings.IndexByte(name, ' '); i > 0 {
		name = name[:i]
	}
	return strings.ToUpper(name)
}
