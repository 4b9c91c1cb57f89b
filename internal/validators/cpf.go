package validators

import "fmt"

// SanitizeCPF strips formatting, leaving digits only.
func SanitizeCPF(cpf string) string {
	return nonDigits.ReplaceAllString(cpf, "")
}

// ValidateCPF accepts the empty string (CPF is optional at intake).
func ValidateCPF(cpf string) error {
	if cpf == "" {
		return nil
	}
	if len(SanitizeCPF(cpf)) != 11 {
		return fmt.Errorf("CPF must have 11 digits")
	}
	return nil
}
