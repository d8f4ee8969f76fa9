// Package phone validates and normalizes (country-code, national-number)
// pairs against the E.164 numbering plan. The numbering-plan data itself
// comes from the phonenumbers metadata tables; this package only sequences
// the checks and renders the canonical storage form.
package phone

import (
	"fmt"
	"strconv"
	"strings"

	"screenvault/pkg/apperr"

	"github.com/nyaruka/phonenumbers"
)

var (
	ErrInvalidCountryCode = apperr.Validation("Country code must be numeric.")
	ErrUnknownCountryCode = apperr.Validation("Unknown country calling code.")
	ErrMalformedNumber    = apperr.Validation("Invalid phone number format.")
	ErrNumberNotValid     = apperr.Validation("Invalid phone number for that country.")
)

// unknownRegion is what the metadata tables return for a calling code that
// is not assigned to any region.
const unknownRegion = "ZZ"

var nationalStrip = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "")

// Normalize validates a raw country-code/national-number pair and returns
// the canonical storage form: the numeric calling code without "+", and the
// national rendering of the number with grouping punctuation removed.
//
// It is pure and idempotent: feeding its own output back in returns the
// same output. Registration and profile update both go through here so the
// stored values are canonical regardless of entry point.
func Normalize(countryCode, nationalNumber string) (string, string, error) {
	cc := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(countryCode), "+"))
	nn := strings.TrimSpace(nationalNumber)

	code, err := strconv.Atoi(cc)
	if err != nil || code <= 0 {
		return "", "", ErrInvalidCountryCode
	}

	if phonenumbers.GetRegionCodeForCountryCode(code) == unknownRegion {
		return "", "", ErrUnknownCountryCode
	}

	parsed, err := phonenumbers.Parse(fmt.Sprintf("+%d%s", code, nn), "")
	if err != nil {
		return "", "", ErrMalformedNumber
	}

	if !phonenumbers.IsPossibleNumber(parsed) || !phonenumbers.IsValidNumber(parsed) {
		return "", "", ErrNumberNotValid
	}

	normalizedCode := strconv.Itoa(int(parsed.GetCountryCode()))
	normalizedNumber := nationalStrip.Replace(phonenumbers.Format(parsed, phonenumbers.NATIONAL))

	return normalizedCode, normalizedNumber, nil
}
