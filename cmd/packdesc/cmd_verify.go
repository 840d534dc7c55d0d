package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ochairo/packdesc/internal/domain-adapters/gateways"
	domaingateways "github.com/ochairo/packdesc/internal/domain/interfaces/gateways"
	"github.com/ochairo/packdesc/internal/external-adapters/gpg"
)

type verifyOptions struct {
	checksumFile string
	signature    string
	publicKey    string
	verifyAll    bool
}

func runVerify(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	var opts verifyOptions
	fs.StringVar(&opts.checksumFile, "checksum", "", "Checksum file to verify against (.sha256)")
	fs.StringVar(&opts.signature, "signature", "", "Detached GPG signature file (.asc)")
	fs.StringVar(&opts.publicKey, "public-key", "", "Armored or binary public key used for --signature")
	fs.BoolVar(&opts.verifyAll, "all", false, "Verify every sidecar found next to the descriptor")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: packdesc verify <descriptor> [options]

Verify the checksum and signature written alongside a descriptor.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  packdesc verify dist/descriptor.yaml --checksum dist/descriptor.yaml.sha256
  packdesc verify dist/descriptor.yaml --signature dist/descriptor.yaml.asc --public-key release.pub.asc
  packdesc verify dist/descriptor.yaml --all --public-key release.pub.asc
`)
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: descriptor path is required\n\n")
		fs.Usage()
		os.Exit(1)
	}

	if err := executeVerify(ctx, fs.Arg(0), opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func executeVerify(ctx context.Context, filePath string, opts verifyOptions, out io.Writer) error {
	if opts.verifyAll {
		if opts.checksumFile == "" && fileExists(filePath+gateways.ChecksumSuffix) {
			opts.checksumFile = filePath + gateways.ChecksumSuffix
		}
		if opts.signature == "" && fileExists(filePath+gpg.SignatureSuffix) {
			opts.signature = filePath + gpg.SignatureSuffix
		}
	}

	if opts.checksumFile == "" && opts.signature == "" {
		return fmt.Errorf("nothing to verify: pass --checksum, --signature or --all")
	}

	verifier := gateways.NewDescriptorVerifier()
	fmt.Fprintf(out, "Verifying %s\n\n", filepath.Base(filePath))
	failed := 0

	if opts.checksumFile != "" {
		if err := verifier.VerifyChecksumFile(ctx, filePath, opts.checksumFile); err != nil {
			fmt.Fprintf(out, "Checksum verification FAILED: %v\n", err)
			failed++
		} else {
			fmt.Fprintf(out, "Checksum verified\n")
		}
	}

	if opts.signature != "" {
		fingerprint, err := verifySignature(verifier, filePath, opts.signature, opts.publicKey)
		if err != nil {
			fmt.Fprintf(out, "GPG signature verification FAILED: %v\n", err)
			failed++
		} else {
			fmt.Fprintf(out, "GPG signature verified (key %s)\n", fingerprint)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d verification(s) failed", failed)
	}
	return nil
}

func verifySignature(verifier domaingateways.DescriptorVerifier, filePath, sigPath, publicKey string) (string, error) {
	if publicKey == "" {
		return "", fmt.Errorf("--public-key is required to verify a signature")
	}
	if err := verifier.ImportPublicKey(publicKey); err != nil {
		return "", err
	}
	return verifier.VerifySignature(filePath, sigPath)
}
