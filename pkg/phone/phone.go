package phone

import (
	"errors"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// InvalidMessage is the field error shown for numbers Normalize rejects.
const InvalidMessage = "Enter a valid phone number."

var ErrInvalidNumber = errors.New("phone: invalid number")

type Normalizer struct {
	region string
}

func NewNormalizer(defaultRegion string) *Normalizer {
	if defaultRegion == "" {
		defaultRegion = "IN"
	}
	return &Normalizer{region: strings.ToUpper(defaultRegion)}
}

// Normalize parses raw using the default region and formats it as E.164.
func (n *Normalizer) Normalize(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidNumber
	}

	num, err := phonenumbers.Parse(raw, n.region)
	if err != nil {
		return "", ErrInvalidNumber
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidNumber
	}

	return phonenumbers.Format(num, phonenumbers.E164), nil
}
