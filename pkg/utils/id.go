package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 12
)

// GenerateID gera identificadores públicos curtos e seguros para URL
func GenerateID() (string, error) {
	return gonanoid.Generate(idAlphabet, idLength)
}
