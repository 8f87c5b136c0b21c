package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type SenderRole string

const (
	SenderCustomer SenderRole = "customer"
	SenderAdmin    SenderRole = "admin"
)

const MaxMessageLength = 1000

func (r SenderRole) Valid() bool {
	return r == SenderCustomer || r == SenderAdmin
}

func (r SenderRole) Other() SenderRole {
	if r == SenderAdmin {
		return SenderCustomer
	}
	return SenderAdmin
}

func NormalizeMessageBody(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", fmt.Errorf("%w: message cannot be empty", ErrValidation)
	}
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return "", fmt.Errorf("%w: message exceeds %d characters", ErrValidation, MaxMessageLength)
	}
	return body, nil
}
