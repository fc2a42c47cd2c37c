package catalog

import (
	"strings"
	"unicode/utf8"

	cp "github.com/reoring/catalogpatch"
)

// MaxSKULength is the maximum number of characters of a SKU.
const MaxSKULength = 50

// ValidateSKU checks the identity taken from the request path. Every
// violated rule is reported.
func ValidateSKU(sku string) cp.Issues {
	var iss cp.Issues
	at := cp.Root().Field("sku")
	blank := strings.TrimSpace(sku) == ""
	if blank {
		iss = cp.AppendIssues(iss, at.Issue(cp.CodeRequired, "SKU is required"))
	}
	if utf8.RuneCountInString(sku) > MaxSKULength {
		iss = cp.AppendIssues(iss, at.Issue(cp.CodeTooLong, "SKU cannot exceed 50 characters", "max", MaxSKULength))
	}
	if blank {
		iss = cp.AppendIssues(iss, at.Issue(cp.CodeRequired, "SKU cannot be empty or whitespace"))
	}
	if !asciiPrintable(sku) {
		iss = cp.AppendIssues(iss, at.Issue(cp.CodePattern, "SKU can only contain ASCII printable characters"))
	}
	if strings.TrimSpace(sku) != sku {
		iss = cp.AppendIssues(iss, at.Issue(cp.CodePattern, "SKU cannot have leading or trailing whitespace"))
	}
	return iss
}

func asciiPrintable(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 0x20 || s[i] > 0x7e {
			return false
		}
	}
	return true
}
