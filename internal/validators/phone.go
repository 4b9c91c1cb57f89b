package validators

import (
	"fmt"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// SanitizePhone keeps digits only and strips the 55 country code.
func SanitizePhone(phone string) string {
	clean := nonDigits.ReplaceAllString(phone, "")
	if strings.HasPrefix(clean, "55") && len(clean) > 11 {
		clean = clean[2:]
	}
	return clean
}

// ValidatePhone checks Brazilian landline/mobile numbers (DDD + 8 or 9
// digits). Accepts formatted input: (11) 98765-4321, +55 11 98765-4321, etc.
func ValidatePhone(phone string) error {
	if phone == "" {
		return fmt.Errorf("phone must not be empty")
	}

	clean := SanitizePhone(phone)

	if len(clean) < 10 || len(clean) > 11 {
		return fmt.Errorf("phone must have 10 or 11 digits including DDD, got %d", len(clean))
	}

	ddd := clean[:2]
	if ddd < "11" || ddd > "99" {
		return fmt.Errorf("invalid DDD: %s", ddd)
	}

	number := clean[2:]
	switch len(number) {
	case 9:
		if number[0] != '9' {
			return fmt.Errorf("mobile number must start with 9")
		}
	case 8:
		if number[0] == '0' || number[0] == '1' {
			return fmt.Errorf("invalid landline number")
		}
	}

	return nil
}
