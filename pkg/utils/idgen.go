package utils

import (
	"strings"

	"github.com/google/uuid"
)

// IDGenerator gera o identificador de cada cadastro (também é a chave do documento)
type IDGenerator interface {
	NewID() string
}

// HexUUIDGenerator gera UUID v4 em 32 caracteres hex, sem hífens
type HexUUIDGenerator struct{}

func (HexUUIDGenerator) NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// IDGeneratorFunc permite usar uma função simples como gerador (útil nos testes)
type IDGeneratorFunc func() string

func (f IDGeneratorFunc) NewID() string {
	return f()
}
