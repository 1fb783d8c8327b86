package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/mmeshcher/boostmarket/internal/model"
)

// ErrInvalidDestination возвращается для реквизитов, не соответствующих своему типу.
var ErrInvalidDestination = errors.New("invalid payout destination")

var walletPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`),
	regexp.MustCompile(`^bc1[02-9ac-hj-np-z]{11,71}$`),
	regexp.MustCompile(`^[13][1-9A-HJ-NP-Za-km-z]{25,34}$`),
	regexp.MustCompile(`^T[1-9A-HJ-NP-Za-km-z]{33}$`),
}

// Destination проверяет реквизиты выплаты в соответствии с их типом.
func Destination(t model.DestinationType, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: empty destination", ErrInvalidDestination)
	}

	var ok bool
	switch t {
	case model.DestinationPayPal:
		ok = IsValidEmail(value)
	case model.DestinationBankCard:
		ok = IsValidCardNumber(value)
	case model.DestinationIBAN:
		ok = IsValidIBAN(value)
	case model.DestinationCrypto:
		ok = IsValidWallet(value)
	default:
		return fmt.Errorf("%w: unknown destination type %q", ErrInvalidDestination, t)
	}

	if !ok {
		return fmt.Errorf("%w: malformed %s", ErrInvalidDestination, t)
	}
	return nil
}

// IsValidEmail проверяет адрес PayPal-аккаунта.
func IsValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	return at > 0 && strings.Contains(s[at+1:], ".")
}

// IsValidIBAN проверяет IBAN по контрольной сумме mod-97.
func IsValidIBAN(s string) bool {
	iban := strings.ToUpper(strings.ReplaceAll(s, " ", ""))
	if len(iban) < 15 || len(iban) > 34 {
		return false
	}
	for i := 0; i < 2; i++ {
		if iban[i] < 'A' || iban[i] > 'Z' {
			return false
		}
	}
	for i := 2; i < 4; i++ {
		if iban[i] < '0' || iban[i] > '9' {
			return false
		}
	}

	rearranged := iban[4:] + iban[:4]
	rem := 0
	for _, ch := range rearranged {
		switch {
		case ch >= '0' && ch <= '9':
			rem = (rem*10 + int(ch-'0')) % 97
		case ch >= 'A' && ch <= 'Z':
			rem = (rem*100 + int(ch-'A') + 10) % 97
		default:
			return false
		}
	}

	return rem == 1
}

// IsValidWallet проверяет формат адреса криптокошелька (ETH, BTC, TRON).
func IsValidWallet(s string) bool {
	for _, re := range walletPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
