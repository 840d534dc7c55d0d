// Package properties loads signing credentials from Java-style key.properties files.
package properties

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/magiconair/properties"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"github.com/ochairo/packdesc/internal/domain/interfaces"
	"github.com/ochairo/packdesc/internal/domain/interfaces/gateways"
)

var lineRef = regexp.MustCompile(`(?i)line (\d+)`)

// CredentialsRepository implements repositories.CredentialsRepository using key.properties files
type CredentialsRepository struct {
	checksums gateways.Checksummer
	logger    interfaces.Logger
}

// NewCredentialsRepository creates a new properties-backed credentials repository.
// checksums may be nil, in which case no keystore digest is recorded.
func NewCredentialsRepository(checksums gateways.Checksummer, logger interfaces.Logger) *CredentialsRepository {
	return &CredentialsRepository{
		checksums: checksums,
		logger:    interfaces.LoggerOrNoOp(logger),
	}
}

// LoadCredentials reads the credentials file at propertiesPath, relative to baseDir unless absolute.
// An absent file yields nil credentials and no error.
func (r *CredentialsRepository) LoadCredentials(ctx context.Context, baseDir, propertiesPath string) (*entities.SigningCredentials, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if propertiesPath == "" {
		propertiesPath = entities.DefaultPropertiesFile
	}
	path := resolvePath(baseDir, propertiesPath)

	//nolint:gosec // G304: path is the credentials file named by the build manifest
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		r.logger.Info("No credentials file found, release will be unsigned", interfaces.F("path", path))
		return nil, nil
	}
	if err != nil {
		return nil, &entities.ParseError{Path: path, Err: err}
	}

	props, err := Parse(path, data)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(entities.CredentialKeys))
	for _, key := range entities.CredentialKeys {
		v, ok := props.Get(key)
		if !ok || strings.TrimSpace(v) == "" {
			return nil, &entities.ConfigurationError{
				Field:  key,
				Reason: fmt.Sprintf("missing or empty in %s", path),
			}
		}
		values[key] = v
	}

	creds := &entities.SigningCredentials{
		KeyAlias:      values[entities.KeyAlias],
		KeyPassword:   values[entities.KeyPassword],
		StoreFile:     resolvePath(baseDir, values[entities.StoreFile]),
		StorePassword: values[entities.StorePassword],
	}

	r.fingerprintKeystore(creds)

	r.logger.Debug("Loaded signing credentials",
		interfaces.F("path", path),
		interfaces.F("key_alias", creds.KeyAlias),
		interfaces.F("store_file", creds.StoreFile))

	return creds, nil
}

// fingerprintKeystore records the keystore digest when the file exists.
// A missing keystore is left for the build tool to report at signing time.
func (r *CredentialsRepository) fingerprintKeystore(creds *entities.SigningCredentials) {
	if _, err := os.Stat(creds.StoreFile); err != nil {
		r.logger.Warn("Keystore not found", interfaces.F("store_file", creds.StoreFile))
		return
	}
	if r.checksums == nil {
		return
	}

	sum, err := r.checksums.CalculateChecksum(creds.StoreFile)
	if err != nil {
		r.logger.Warn("Failed to fingerprint keystore",
			interfaces.F("store_file", creds.StoreFile),
			interfaces.F("error", err))
		return
	}
	creds.StoreFileSHA256 = sum
}

// Parse decodes properties data in ISO-8859-1 with no ${} expansion.
// Lexer failures are reported as a ParseError naming the key on the failing line.
func Parse(path string, data []byte) (*properties.Properties, error) {
	loader := &properties.Loader{
		Encoding:         properties.ISO_8859_1,
		DisableExpansion: true,
	}

	props, err := loader.LoadBytes(data)
	if err != nil {
		pe := &entities.ParseError{Path: path, Err: err}
		if m := lineRef.FindStringSubmatch(err.Error()); m != nil {
			if line, convErr := strconv.Atoi(m[1]); convErr == nil {
				pe.Line = line
				pe.Key = keyOnLine(data, line)
			}
		}
		return nil, pe
	}

	return props, nil
}

// keyOnLine returns the key text of a raw properties line (1-based)
func keyOnLine(data []byte, line int) string {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; scanner.Scan(); n++ {
		if n != line {
			continue
		}
		text := strings.TrimLeft(scanner.Text(), " \t\f")
		end := strings.IndexAny(text, "=: \t\f")
		if end < 0 {
			return text
		}
		return text[:end]
	}
	return ""
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
