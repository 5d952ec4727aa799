package usecase

import "github.com/google/uuid"

// IDGenerator produces line item ids. Injectable so tests can use
// deterministic ids.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.New().String()
}
