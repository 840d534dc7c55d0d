package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ochairo/packdesc/internal/domain/interfaces"
	"github.com/ochairo/packdesc/internal/external-adapters/logging"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "resolve":
		runResolve(ctx, os.Args[2:])
	case "deps":
		runDeps(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`packdesc - Android application packaging descriptor resolver

Usage:
  packdesc <command> [options]

Commands:
  resolve   Resolve a build manifest and key.properties into a descriptor
  deps      List declared dependencies, active and disabled
  verify    Verify a descriptor's checksum and signature

Use "packdesc <command> --help" for more information about a command.`)
}

func newLogger(level string, jsonOutput bool) interfaces.Logger {
	return logging.New(logging.Config{
		Level: logging.LevelFromEnv(level),
		JSON:  jsonOutput,
	})
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
