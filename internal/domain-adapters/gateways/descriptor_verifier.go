package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/packdesc/internal/domain/interfaces/gateways"
)

// compositeDescriptorVerifier implements gateways.DescriptorVerifier by composing
// the checksum and GPG verifiers
type compositeDescriptorVerifier struct {
	checksumVerifier *checksumVerifier
	gpgVerifier      *gpgVerifier
}

// NewDescriptorVerifier creates a descriptor verifier with default dependencies
func NewDescriptorVerifier() gateways.DescriptorVerifier {
	return &compositeDescriptorVerifier{
		checksumVerifier: NewChecksumVerifier(),
		gpgVerifier:      NewGPGVerifier(),
	}
}

// NewDescriptorVerifierWithDeps creates a descriptor verifier with custom dependencies
func NewDescriptorVerifierWithDeps(checksum *checksumVerifier, gpg *gpgVerifier) gateways.DescriptorVerifier {
	return &compositeDescriptorVerifier{
		checksumVerifier: checksum,
		gpgVerifier:      gpg,
	}
}

// VerifyChecksumFile compares filePath against the digest recorded in sumPath
func (c *compositeDescriptorVerifier) VerifyChecksumFile(ctx context.Context, filePath, sumPath string) error {
	expected, err := c.checksumVerifier.ReadChecksumFile(sumPath)
	if err != nil {
		return err
	}
	return c.checksumVerifier.VerifyChecksum(ctx, filePath, expected)
}

// ImportPublicKey adds a public key used by VerifySignature
func (c *compositeDescriptorVerifier) ImportPublicKey(keyPath string) error {
	return c.gpgVerifier.ImportGPGKeyFromFile(keyPath)
}

// VerifySignature checks a detached signature against the imported keys
func (c *compositeDescriptorVerifier) VerifySignature(filePath, sigPath string) (string, error) {
	if c.gpgVerifier.GetKeyringSize() == 0 {
		return "", fmt.Errorf("no public key imported")
	}
	return c.gpgVerifier.VerifyGPGSignatureFromFile(filePath, sigPath)
}
