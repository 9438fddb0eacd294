package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates opaque IDs for games, picks and posts.
type Generator interface {
	NewID() (string, error)
}

// UUIDGenerator mints UUIDv7 values, so IDs sort by creation time in both
// the memory store and Postgres indexes.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() (string, error) {
	v, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate uuid: %w", err)
	}
	return v.String(), nil
}
