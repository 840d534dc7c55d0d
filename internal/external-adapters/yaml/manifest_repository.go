package yaml

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochairo/packdesc/internal/domain/entities"
)

// Parser decodes manifest bytes of one format
type Parser interface {
	Parse(path string, data []byte) (*entities.BuildIntent, error)
}

// ManifestRepository implements repositories.ManifestRepository, picking a parser by file extension
type ManifestRepository struct {
	parsers map[string]Parser
}

// NewManifestRepository creates a repository that reads .yml/.yaml manifests.
// Additional formats are registered with Register.
func NewManifestRepository() *ManifestRepository {
	yp := NewManifestParser()
	return &ManifestRepository{
		parsers: map[string]Parser{
			".yml":  yp,
			".yaml": yp,
		},
	}
}

// Register adds a parser for a file extension such as ".toml"
func (r *ManifestRepository) Register(ext string, parser Parser) {
	r.parsers[strings.ToLower(ext)] = parser
}

// GetIntent loads the manifest at path
func (r *ManifestRepository) GetIntent(ctx context.Context, path string) (*entities.BuildIntent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	parser, ok := r.parsers[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported manifest format %q (supported: %s)", ext, strings.Join(r.Formats(), ", "))
	}

	//nolint:gosec // G304: path is the manifest named on the command line
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("manifest not found: %s", path)
	}
	if err != nil {
		return nil, &entities.ParseError{Path: path, Err: err}
	}

	return parser.Parse(path, data)
}

// Formats lists the registered extensions in a stable order
func (r *ManifestRepository) Formats() []string {
	exts := make([]string, 0, len(r.parsers))
	for ext := range r.parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
