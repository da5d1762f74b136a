package utils

import (
	"fmt"
	"syscall"

	"github.com/pkg/errors"
)

func GetPassphrase(reader PasswordReader) (string, error) {
	return Prompt(reader, "Enter passphrase > ")
}

func Prompt(reader PasswordReader, prompt string) (string, error) {
	fmt.Print(prompt)
	bytePassphrase, err := reader.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(bytePassphrase), nil
}

// GetNewPassphrase asks twice and fails unless both answers match
func GetNewPassphrase(reader PasswordReader) (string, error) {
	first, err := Prompt(reader, "Enter new passphrase > ")
	if err != nil {
		return "", err
	}
	second, err := Prompt(reader, "Repeat new passphrase > ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", errors.New("passphrases do not match")
	}
	return first, nil
}
