package agro

import "strings"

// TaxIDKind identifies the Brazilian taxpayer document a tax ID encodes
type TaxIDKind string

const (
	TaxIDKindCPF     TaxIDKind = "cpf"
	TaxIDKindCNPJ    TaxIDKind = "cnpj"
	TaxIDKindUnknown TaxIDKind = "unknown"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

var (
	cpfFirstWeights   = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	cpfSecondWeights  = []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// NormalizeTaxID strips every non-digit character, so "123.456.789-09"
// and "12345678909" normalize to the same value.
func NormalizeTaxID(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DetectTaxIDKind classifies a tax ID by the length of its digit-only form.
// It does not verify check digits.
func DetectTaxIDKind(raw string) TaxIDKind {
	switch len(NormalizeTaxID(raw)) {
	case cpfLength:
		return TaxIDKindCPF
	case cnpjLength:
		return TaxIDKindCNPJ
	default:
		return TaxIDKindUnknown
	}
}

// IsValidTaxID reports whether raw is a valid CPF (11 digits) or CNPJ
// (14 digits) once formatting characters are removed.
func IsValidTaxID(raw string) bool {
	digits := NormalizeTaxID(raw)
	switch len(digits) {
	case cpfLength:
		return isValidCPF(digits)
	case cnpjLength:
		return isValidCNPJ(digits)
	default:
		return false
	}
}

func isValidCPF(digits string) bool {
	if repeatedDigit(digits) {
		return false
	}
	d := toInts(digits)
	if checkDigit(d[:9], cpfFirstWeights) != d[9] {
		return false
	}
	return checkDigit(d[:10], cpfSecondWeights) == d[10]
}

func isValidCNPJ(digits string) bool {
	if repeatedDigit(digits) {
		return false
	}
	d := toInts(digits)
	if checkDigit(d[:12], cnpjFirstWeights) != d[12] {
		return false
	}
	return checkDigit(d[:13], cnpjSecondWeights) == d[13]
}

// checkDigit computes the mod-11 verification digit shared by CPF and CNPJ.
func checkDigit(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

// repeatedDigit rejects sequences like 00000000000, which pass the checksum.
func repeatedDigit(digits string) bool {
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			return false
		}
	}
	return true
}

func toInts(digits string) []int {
	out := make([]int, len(digits))
	for i := 0; i < len(digits); i++ {
		out[i] = int(digits[i] - '0')
	}
	return out
}
