// Package validation holds the pure format validators and normalizers for
// Brazilian CPF numbers and phone numbers. Nothing here touches state; the
// service layer decides what to do with a rejected value.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// cpfShape accepts the punctuated form XXX.XXX.XXX-XX as well as the bare
// 11-digit form (each punctuation mark is individually optional).
var cpfShape = regexp.MustCompile(`^\d{3}\.?\d{3}\.?\d{3}-?\d{2}$`)

// ValidCPF reports whether cpf is a structurally and arithmetically valid
// CPF. Both check digits are recomputed from the leading nine digits using
// the standard weighted sums mod 11. Sequences of eleven identical digits
// pass the checksum but are not real CPFs, so they are rejected up front.
func ValidCPF(cpf string) bool {
	if !cpfShape.MatchString(cpf) {
		return false
	}

	digits := onlyDigits(cpf)

	if allDigitsEqual(digits) {
		return false
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += int(digits[i]-'0') * (10 - i)
	}
	if checkDigit(sum) != int(digits[9]-'0') {
		return false
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += int(digits[i]-'0') * (11 - i)
	}
	return checkDigit(sum) == int(digits[10]-'0')
}

// FormatCPF normalizes cpf to the canonical XXX.XXX.XXX-XX form. If the
// input does not contain exactly 11 digits it is returned unchanged, so
// callers must not assume the result is canonical.
func FormatCPF(cpf string) string {
	digits := onlyDigits(cpf)
	if len(digits) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", digits[:3], digits[3:6], digits[6:9], digits[9:])
}

func checkDigit(sum int) int {
	if r := sum % 11; r >= 2 {
		return 11 - r
	}
	return 0
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func allDigitsEqual(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}
