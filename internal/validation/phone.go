package validation

import (
	"fmt"
	"regexp"
)

var phoneShape = regexp.MustCompile(`^\(\d{2}\) \d{5}-\d{4}$`)

// ValidPhone reports whether phone is exactly in the canonical
// (XX) XXXXX-XXXX form. It does not attempt to recognize other phone
// notations; normalize with FormatPhone first.
func ValidPhone(phone string) bool {
	return phoneShape.MatchString(phone)
}

// FormatPhone normalizes phone to the canonical (XX) XXXXX-XXXX form.
// Inputs that do not contain exactly 11 digits are returned unchanged,
// same pass-through policy as FormatCPF.
func FormatPhone(phone string) string {
	digits := onlyDigits(phone)
	if len(digits) != 11 {
		return phone
	}
	return fmt.Sprintf("(%s) %s-%s", digits[:2], digits[2:7], digits[7:])
}
