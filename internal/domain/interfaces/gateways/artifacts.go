// Package gateways defines contracts for infrastructure used by the domain layer.
package gateways

import (
	"context"
	"io"

	"github.com/ochairo/packdesc/internal/domain/entities"
)

// Checksummer computes and verifies SHA256 digests of files
type Checksummer interface {
	CalculateChecksum(filePath string) (string, error)
	VerifyChecksum(ctx context.Context, filePath, expectedSum string) error
}

// DescriptorEncoder serializes a resolved descriptor
type DescriptorEncoder interface {
	Encode(w io.Writer, d *entities.Descriptor, opts EncodeOptions) error
	Format() string
}

// EncodeOptions controls what an encoder emits
type EncodeOptions struct {
	IncludeSecrets bool
	OmitDisabled   bool
}

// DescriptorSigner produces detached signatures over encoded descriptors
type DescriptorSigner interface {
	SignFile(filePath, sigPath string) error
}

// IntentValidator checks required build intent fields
type IntentValidator interface {
	ValidateIntent(intent *entities.BuildIntent) error
}

// DescriptorVerifier checks the sidecars written next to a descriptor
type DescriptorVerifier interface {
	VerifyChecksumFile(ctx context.Context, filePath, sumPath string) error
	ImportPublicKey(keyPath string) error
	VerifySignature(filePath, sigPath string) (string, error)
}
