// Package services defines interfaces for domain service contracts.
package services

import "github.com/ochairo/packdesc/internal/domain/entities"

// DescriptorResolver turns declared build intents into a resolved descriptor
type DescriptorResolver interface {
	// Resolve runs a single synchronous pass; creds may be nil
	Resolve(intent *entities.BuildIntent, creds *entities.SigningCredentials) (*entities.Descriptor, error)
}
