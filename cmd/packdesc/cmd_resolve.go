// Package main provides the packdesc CLI for resolving Android packaging descriptors.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ochairo/packdesc/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/packdesc/internal/domain-orchestrators"
	"github.com/ochairo/packdesc/internal/domain/interfaces"
	"github.com/ochairo/packdesc/internal/domain/services"
	"github.com/ochairo/packdesc/internal/external-adapters/encoding"
	"github.com/ochairo/packdesc/internal/external-adapters/gpg"
	"github.com/ochairo/packdesc/internal/external-adapters/properties"
	"github.com/ochairo/packdesc/internal/external-adapters/toml"
	"github.com/ochairo/packdesc/internal/external-adapters/validation"
	"github.com/ochairo/packdesc/internal/external-adapters/yaml"
)

// envSignPassphrase holds the passphrase for an encrypted signing key
const envSignPassphrase = "PACKDESC_SIGN_PASSPHRASE"

type resolveOptions struct {
	manifest       string
	baseDir        string
	propertiesFile string
	format         string
	output         string
	includeSecrets bool
	omitDisabled   bool
	signKey        string
	quiet          bool
}

func runResolve(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("resolve", flag.ExitOnError)
	var (
		opts     resolveOptions
		logLevel = fs.String("log-level", "info", "Log level (debug, info, warn, error)")
		logJSON  = fs.Bool("log-json", false, "Emit logs as JSON lines on stderr")
	)
	fs.StringVar(&opts.manifest, "manifest", "build.yml", "Path to the build manifest (.yml, .yaml or .toml)")
	fs.StringVar(&opts.baseDir, "base-dir", "", "Module directory for relative paths (default: manifest directory)")
	fs.StringVar(&opts.propertiesFile, "properties", "", "Credentials file, overrides the manifest (default: key.properties)")
	fs.StringVar(&opts.format, "format", encoding.FormatYAML, "Output format (yaml, json, toml)")
	fs.StringVar(&opts.output, "output", "", "Write the descriptor to this file instead of stdout")
	fs.BoolVar(&opts.includeSecrets, "include-secrets", false, "Emit signing passwords instead of masking them")
	fs.BoolVar(&opts.omitDisabled, "omit-disabled", false, "Drop disabled dependencies from the descriptor")
	fs.StringVar(&opts.signKey, "sign-key", "", "Armored private key used to sign the written descriptor")
	fs.BoolVar(&opts.quiet, "quiet", false, "Quiet mode - no summary")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: packdesc resolve [options]

Resolve a build manifest and optional key.properties into a descriptor.
When the credentials file is absent the release variant is left unsigned.

Examples:
  packdesc resolve
  packdesc resolve --manifest android/app/build.yml --format json
  packdesc resolve --output dist/descriptor.yaml --sign-key release-signing.asc
  PACKDESC_SIGN_PASSPHRASE=... packdesc resolve --output dist/descriptor.yaml --sign-key encrypted.asc

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(*logLevel, *logJSON)
	if err := executeResolve(ctx, opts, os.Stdout, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeResolve(ctx context.Context, opts resolveOptions, stdout io.Writer, logger interfaces.Logger) error {
	encoder, err := encoding.ForFormat(opts.format)
	if err != nil {
		return err
	}

	manifests := yaml.NewManifestRepository()
	manifests.Register(".toml", toml.NewManifestParser())

	checksums := gateways.NewChecksumVerifier()
	credentials := properties.NewCredentialsRepository(checksums, logger)
	resolver := services.NewResolverService(validation.NewIntentValidator(), logger)

	config := orchestrators.ResolveOrchestratorConfig{
		Checksums: checksums,
		Logger:    logger,
	}
	if opts.signKey != "" {
		if opts.output == "" {
			return fmt.Errorf("--sign-key requires --output")
		}
		signer, err := gpg.NewSignerFromFile(opts.signKey, []byte(os.Getenv(envSignPassphrase)))
		if err != nil {
			return fmt.Errorf("failed to load signing key: %w", err)
		}
		logger.Debug("Loaded signing key", interfaces.F("fingerprint", signer.Fingerprint()))
		config.Signer = signer
	}

	orch := orchestrators.NewResolveOrchestrator(manifests, credentials, resolver, config)

	result, err := orch.Resolve(ctx, orchestrators.ResolveRequest{
		ManifestPath:   opts.manifest,
		BaseDir:        opts.baseDir,
		PropertiesPath: opts.propertiesFile,
		Encoder:        encoder,
		OutputPath:     opts.output,
		Stdout:         stdout,
		IncludeSecrets: opts.includeSecrets,
		OmitDisabled:   opts.omitDisabled,
	})
	if err != nil {
		return err
	}

	// The summary goes to stderr when the descriptor itself is on stdout
	if !opts.quiet {
		fmt.Fprintln(os.Stderr, result.GetResolveSummary())
	}

	return nil
}
