// Package validation содержит проверки реквизитов для выплат.
package validation

import (
	"strings"
	"unicode"
)

// normalizeCard убирает пробелы и дефисы, которыми обычно разделяют группы цифр карты.
func normalizeCard(number string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, number)
}

// IsValidCardNumber проверяет номер банковской карты по алгоритму Луна.
func IsValidCardNumber(number string) bool {
	number = normalizeCard(number)
	if len(number) < 12 || len(number) > 19 {
		return false
	}

	sum := 0
	double := false

	for i := len(number) - 1; i >= 0; i-- {
		ch := rune(number[i])
		if !unicode.IsDigit(ch) {
			return false
		}
		digit := int(ch - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}

	return sum%10 == 0
}
