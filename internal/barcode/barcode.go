// Package barcode normalizes scanned retail codes and renders labels.
package barcode

import (
	"errors"
	"image/png"
	"io"
	"strings"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/ean"
)

var (
	ErrEmptyCode   = errors.New("barcode is empty")
	ErrNotNumeric  = errors.New("barcode must contain only digits")
	ErrUnsupported = errors.New("barcode cannot be rendered as EAN")
)

// Normalize cleans a scanned code. Scanners report UPC-A as EAN-13 with a
// leading zero; that zero is stripped so both forms resolve to the same
// catalog entry.
func Normalize(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", ErrEmptyCode
	}
	if !isDigits(code) {
		return "", ErrNotNumeric
	}
	if len(code) == 13 && code[0] == '0' {
		code = code[1:]
	}
	return code, nil
}

// Kind names the symbology a normalized code belongs to, or "" for codes of
// other lengths (internal or store codes).
func Kind(code string) string {
	switch len(code) {
	case 8:
		return "EAN-8"
	case 12:
		return "UPC-A"
	case 13:
		return "EAN-13"
	}
	return ""
}

// ValidChecksum reports whether an EAN-8, UPC-A or EAN-13 code carries a
// correct check digit. Codes of other lengths are not checked.
func ValidChecksum(code string) bool {
	if Kind(code) == "" {
		return true
	}
	if !isDigits(code) {
		return false
	}
	body, check := code[:len(code)-1], int(code[len(code)-1]-'0')
	return checkDigit(body) == check
}

// checkDigit computes the GS1 mod-10 check digit. Weights alternate 3,1
// starting from the rightmost body digit.
func checkDigit(body string) int {
	sum := 0
	weight := 3
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * weight
		if weight == 3 {
			weight = 1
		} else {
			weight = 3
		}
	}
	return (10 - sum%10) % 10
}

// WritePNG renders code as an EAN label scaled to width x height.
// UPC-A codes are rendered as their EAN-13 equivalent.
func WritePNG(w io.Writer, code string, width, height int) error {
	switch Kind(code) {
	case "UPC-A":
		code = "0" + code
	case "EAN-8", "EAN-13":
	default:
		return ErrUnsupported
	}

	bc, err := ean.Encode(code)
	if err != nil {
		return err
	}
	scaled, err := barcode.Scale(bc, width, height)
	if err != nil {
		return err
	}
	return png.Encode(w, scaled)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
