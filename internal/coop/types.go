package coop

import (
	"strings"
	"unicode"
)

// cnpjDigits is the number of digits in a Brazilian company tax ID.
const cnpjDigits = 14

// CoopSystem is the parent organizational grouping of a cooperative.
type CoopSystem struct {
	ID        string  `json:"id"        yaml:"id"`
	Name      string  `json:"name"      yaml:"name"`
	CreatedAt string  `json:"createdAt" yaml:"created_at"`
	UpdatedAt string  `json:"updatedAt" yaml:"updated_at"`
	CreatedBy *string `json:"createdBy" yaml:"created_by"`
	UpdatedBy *string `json:"updatedBy" yaml:"updated_by"`
}

// Cooperativa is a single cooperative entity as returned by the API.
type Cooperativa struct {
	ID         string     `json:"id"         yaml:"id"`
	Name       string     `json:"name"       yaml:"name"`
	CNPJ       string     `json:"CNPJ"       yaml:"cnpj"`
	State      string     `json:"state"      yaml:"state"`
	CoopSystem CoopSystem `json:"coopSystem" yaml:"coop_system"`
}

// SystemName returns the name of the cooperative's parent system.
func (c Cooperativa) SystemName() string {
	return c.CoopSystem.Name
}

// FormatCNPJ renders a tax ID as XX.XXX.XXX/XXXX-XX.
// Punctuation already present in the input is ignored. Inputs that do not
// contain exactly 14 digits are returned trimmed but otherwise unchanged.
func FormatCNPJ(cnpj string) string {
	trimmed := strings.TrimSpace(cnpj)

	var digits strings.Builder
	for _, r := range trimmed {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) != cnpjDigits {
		return trimmed
	}

	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}
