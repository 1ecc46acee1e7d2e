package services

import (
	"fmt"
	"strings"
)

// FormatCOP formats an amount as Colombian pesos: "$" prefix, dot thousands
// separators, comma decimal mark, always two decimals (e.g. $1.234.567,89).
func FormatCOP(amount float64) string {
	negative := false
	if amount < 0 {
		negative = true
		amount = -amount
	}

	raw := fmt.Sprintf("%.2f", amount)

	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	result := "$" + groupThousands(intPart) + "," + decPart
	if negative {
		result = "-" + result
	}
	return result
}

// FormatQty formats a quantity with up to two decimals, dropping a trailing
// ",00" so whole quantities read as integers.
func FormatQty(qty float64) string {
	raw := fmt.Sprintf("%.2f", qty)
	parts := strings.SplitN(raw, ".", 2)
	if parts[1] == "00" {
		return groupThousands(parts[0])
	}
	return groupThousands(parts[0]) + "," + parts[1]
}

// FormatPercent renders an integer percent with its sign, e.g. "75%".
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// groupThousands inserts dot separators every 3 digits from the right.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	n := len(s)
	if n > 3 {
		var b strings.Builder
		rem := n % 3
		if rem > 0 {
			b.WriteString(s[:rem])
		}
		for i := rem; i < n; i += 3 {
			if b.Len() > 0 {
				b.WriteString(".")
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}

	if neg {
		return "-" + s
	}
	return s
}
