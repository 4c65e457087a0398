package types

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrMalformedAttachmentName = errors.New("malformed attachment name")

// AttachmentRef is an (apensada) reference as listed by the detail service,
// e.g. {Name: "PL 1234/2016", Code: "2080512"}.
type AttachmentRef struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// AttachmentTarget is what a listing query needs to find an attached proposition.
type AttachmentTarget struct {
	Sigla  string
	Number string
	Year   string
}

// Target parses Name: sigla is the first token, number is the second token up to
// the slash and year is the last four characters of the second token.
func (r AttachmentRef) Target() (AttachmentTarget, error) {
	return ParseAttachmentName(r.Name)
}

func ParseAttachmentName(name string) (AttachmentTarget, error) {
	tokens := strings.Fields(name)
	if len(tokens) < 2 {
		return AttachmentTarget{}, fmt.Errorf("%w: %q", ErrMalformedAttachmentName, name)
	}

	second := tokens[1]
	slash := strings.Index(second, "/")
	if slash <= 0 || len(second) < 4 {
		return AttachmentTarget{}, fmt.Errorf("%w: %q", ErrMalformedAttachmentName, name)
	}

	target := AttachmentTarget{
		Sigla:  tokens[0],
		Number: second[:slash],
		Year:   second[len(second)-4:],
	}

	if !isDigits(target.Number, 9) || !isDigits(target.Year, 4) {
		return AttachmentTarget{}, fmt.Errorf("%w: %q", ErrMalformedAttachmentName, name)
	}
	return target, nil
}

// Key is only meaningful on a target returned by ParseAttachmentName.
func (t AttachmentTarget) Key() PropositionKey {
	number, _ := strconv.Atoi(t.Number)
	year, _ := strconv.Atoi(t.Year)
	return NewPropositionKey(t.Sigla, number, year)
}

func isDigits(s string, maxLen int) bool {
	if s == "" || len(s) > maxLen {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
