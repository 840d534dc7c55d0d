// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"github.com/ochairo/packdesc/internal/domain/interfaces"
	"github.com/ochairo/packdesc/internal/domain/interfaces/gateways"
	"github.com/ochairo/packdesc/internal/domain/interfaces/repositories"
	"github.com/ochairo/packdesc/internal/domain/interfaces/services"
)

// ChecksumWriter writes a checksum sidecar for an output file
type ChecksumWriter interface {
	WriteChecksumFile(filePath string) (string, error)
}

// ResolveOrchestrator coordinates the load, resolve, encode and write workflow
type ResolveOrchestrator struct {
	manifests   repositories.ManifestRepository
	credentials repositories.CredentialsRepository
	resolver    services.DescriptorResolver
	checksums   ChecksumWriter
	signer      gateways.DescriptorSigner
	logger      interfaces.Logger
}

// ResolveOrchestratorConfig holds the optional collaborators of the orchestrator
type ResolveOrchestratorConfig struct {
	Checksums ChecksumWriter           // nil skips the .sha256 sidecar
	Signer    gateways.DescriptorSigner // nil skips the detached signature
	Logger    interfaces.Logger
}

// NewResolveOrchestrator creates a new resolve orchestrator
func NewResolveOrchestrator(
	manifests repositories.ManifestRepository,
	credentials repositories.CredentialsRepository,
	resolver services.DescriptorResolver,
	config ResolveOrchestratorConfig,
) *ResolveOrchestrator {
	return &ResolveOrchestrator{
		manifests:   manifests,
		credentials: credentials,
		resolver:    resolver,
		checksums:   config.Checksums,
		signer:      config.Signer,
		logger:      interfaces.LoggerOrNoOp(config.Logger),
	}
}

// ResolveRequest describes one resolution run
type ResolveRequest struct {
	ManifestPath   string
	BaseDir        string // Defaults to the manifest's directory
	PropertiesPath string // Overrides the manifest's properties file when set
	Encoder        gateways.DescriptorEncoder
	OutputPath     string    // Empty writes to Stdout
	Stdout         io.Writer // Used when OutputPath is empty
	IncludeSecrets bool
	OmitDisabled   bool
}

// ResolveResult contains the outcome of a resolution run
type ResolveResult struct {
	Descriptor    *entities.Descriptor
	OutputPath    string
	ChecksumPath  string
	SignaturePath string
	Duration      time.Duration
}

// Resolve executes the complete workflow in a single synchronous pass
func (o *ResolveOrchestrator) Resolve(ctx context.Context, req ResolveRequest) (*ResolveResult, error) {
	start := time.Now()
	result := &ResolveResult{}

	if req.Encoder == nil {
		return nil, fmt.Errorf("no descriptor encoder configured")
	}

	// Step 1: Load declared intents
	intent, err := o.manifests.GetIntent(ctx, req.ManifestPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	baseDir := req.BaseDir
	if baseDir == "" {
		baseDir = filepath.Dir(req.ManifestPath)
	}
	propertiesPath := intent.PropertiesFile
	if req.PropertiesPath != "" {
		propertiesPath = req.PropertiesPath
	}

	// Step 2: Load optional signing credentials
	creds, err := o.credentials.LoadCredentials(ctx, baseDir, propertiesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load signing credentials: %w", err)
	}

	// Step 3: Resolve
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	descriptor, err := o.resolver.Resolve(intent, creds)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve descriptor: %w", err)
	}
	if req.OmitDisabled {
		descriptor.Dependencies = descriptor.Dependencies.WithoutDisabled()
	}
	result.Descriptor = descriptor

	// Step 4: Encode fully before touching the output so failures leave no partial file
	var buf bytes.Buffer
	opts := gateways.EncodeOptions{IncludeSecrets: req.IncludeSecrets, OmitDisabled: req.OmitDisabled}
	if err := req.Encoder.Encode(&buf, descriptor, opts); err != nil {
		return nil, err
	}

	if req.OutputPath == "" {
		out := req.Stdout
		if out == nil {
			out = os.Stdout
		}
		if _, err := out.Write(buf.Bytes()); err != nil {
			return nil, fmt.Errorf("failed to write descriptor: %w", err)
		}
		result.Duration = time.Since(start)
		return result, nil
	}

	// Step 5: Write output and sidecars
	if err := o.writeOutput(req.OutputPath, buf.Bytes(), req.IncludeSecrets); err != nil {
		return nil, err
	}
	result.OutputPath = req.OutputPath

	if o.checksums != nil {
		sumPath, err := o.checksums.WriteChecksumFile(req.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to write checksum: %w", err)
		}
		result.ChecksumPath = sumPath
	}

	if o.signer != nil {
		sigPath := req.OutputPath + ".asc"
		if err := o.signer.SignFile(req.OutputPath, sigPath); err != nil {
			return nil, fmt.Errorf("failed to sign descriptor: %w", err)
		}
		result.SignaturePath = sigPath
	}

	result.Duration = time.Since(start)
	o.logger.Info("Descriptor written",
		interfaces.F("path", result.OutputPath),
		interfaces.F("format", req.Encoder.Format()),
		interfaces.F("id", descriptor.ID),
		interfaces.F("signed", result.SignaturePath != ""))

	return result, nil
}

func (o *ResolveOrchestrator) writeOutput(path string, data []byte, withSecrets bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // G301: output dir is user-chosen
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	perm := os.FileMode(0o644)
	if withSecrets {
		perm = 0o600
	}
	if err := os.WriteFile(path, data, perm); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	return nil
}

// GetResolveSummary returns a human-readable summary of the run
func (r *ResolveResult) GetResolveSummary() string {
	d := r.Descriptor
	signing := "unsigned (no credentials file)"
	if d.Signing(entities.VariantRelease) != nil {
		signing = "signed with config " + entities.ReleaseSigningConfig
	}

	summary := fmt.Sprintf(`Descriptor resolved
Application: %s (%s)
Version: %s (%d)
Release: %s
Dependencies: %d active, %d disabled`,
		d.Identity.ApplicationID,
		d.Identity.Namespace,
		d.Identity.VersionName,
		d.Identity.VersionCode,
		signing,
		len(d.Dependencies.Active()),
		len(d.Dependencies.Disabled()),
	)

	if r.OutputPath != "" {
		summary += "\nOutput: " + r.OutputPath
	}
	if r.ChecksumPath != "" {
		summary += "\nChecksum: " + r.ChecksumPath
	}
	if r.SignaturePath != "" {
		summary += "\nSignature: " + r.SignaturePath
	}

	return summary
}
