// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/packdesc/internal/domain/entities"
)

// ManifestRepository loads declared build intents
type ManifestRepository interface {
	// GetIntent loads the build intent manifest at path
	GetIntent(ctx context.Context, path string) (*entities.BuildIntent, error)
}

// CredentialsRepository loads signing credentials from external property storage
type CredentialsRepository interface {
	// LoadCredentials returns nil credentials and a nil error when the file is absent
	LoadCredentials(ctx context.Context, baseDir, propertiesPath string) (*entities.SigningCredentials, error)
}
