package main

import (
	"golang.org/x/crypto/bcrypt"
)

type HashAbs interface {
	Generate(s string) (string, error)
	Compare(hash string, s string) error
}

// Hash stores passwords as bcrypt digests.
type Hash struct{}

func (c *Hash) Generate(s string) (string, error) {
	saltedBytes := []byte(s)
	hashedBytes, err := bcrypt.GenerateFromPassword(saltedBytes, bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (c *Hash) Compare(hash string, s string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(s))
}
