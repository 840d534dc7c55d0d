// Package yaml provides YAML-based build manifest parsing and repository implementations.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlManifest represents the raw YAML structure
type yamlManifest struct {
	Application    yamlApplication          `yaml:"application"`
	SDK            yamlSDK                  `yaml:"sdk"`
	CompileOptions yamlCompileOptions       `yaml:"compile_options"`
	Plugins        []string                 `yaml:"plugins"`
	Framework      yamlFramework            `yaml:"framework"`
	Signing        yamlSigning              `yaml:"signing"`
	BuildTypes     map[string]yamlBuildType `yaml:"build_types"`
	Variables      map[string]string        `yaml:"variables"`
	Dependencies   []yamlDependency         `yaml:"dependencies"`
}

type yamlApplication struct {
	ID          string `yaml:"id"`
	Namespace   string `yaml:"namespace"`
	VersionCode int    `yaml:"version_code"`
	VersionName string `yaml:"version_name"`
}

type yamlSDK struct {
	Compile int `yaml:"compile"`
	Min     int `yaml:"min"`
	Target  int `yaml:"target"`
}

type yamlCompileOptions struct {
	SourceCompatibility   string `yaml:"source_compatibility"`
	TargetCompatibility   string `yaml:"target_compatibility"`
	JVMTarget             string `yaml:"jvm_target"`
	CoreLibraryDesugaring bool   `yaml:"core_library_desugaring"`
}

type yamlFramework struct {
	Source string `yaml:"source"`
}

type yamlSigning struct {
	PropertiesFile string `yaml:"properties_file"`
}

type yamlBuildType struct {
	Minify          bool     `yaml:"minify"`
	ShrinkResources bool     `yaml:"shrink_resources"`
	Debuggable      *bool    `yaml:"debuggable"`
	ProguardFiles   []string `yaml:"proguard_files"`
}

type yamlDependency struct {
	Configuration string `yaml:"configuration"`
	Coordinate    string `yaml:"coordinate"`
	Name          string `yaml:"name"`
	Version       string `yaml:"version"`
	Enabled       *bool  `yaml:"enabled"`
	Reason        string `yaml:"reason"`
}

var (
	unknownFieldRef = regexp.MustCompile(`line (\d+): field (\S+) not found`)
	lineRef         = regexp.MustCompile(`line (\d+)`)
)

// ManifestParser parses YAML build manifests
type ManifestParser struct{}

// NewManifestParser creates a new YAML parser
func NewManifestParser() *ManifestParser {
	return &ManifestParser{}
}

// ParseFile parses a YAML manifest file into a BuildIntent entity
func (p *ManifestParser) ParseFile(filePath string) (*entities.BuildIntent, error) {
	//nolint:gosec // G304: filePath is the manifest path given on the command line
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &entities.ParseError{Path: filePath, Err: err}
	}

	return p.Parse(filePath, data)
}

// Parse parses YAML bytes into a BuildIntent entity. Unknown keys are rejected.
func (p *ManifestParser) Parse(path string, data []byte) (*entities.BuildIntent, error) {
	var doc yamlManifest

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, yamlParseError(path, err)
	}

	buildTypes := make(map[entities.VariantName]entities.BuildTypeIntent, len(doc.BuildTypes))
	for name, bt := range doc.BuildTypes {
		buildTypes[entities.VariantName(name)] = entities.BuildTypeIntent{
			Minify:          bt.Minify,
			ShrinkResources: bt.ShrinkResources,
			Debuggable:      bt.Debuggable,
			ProguardFiles:   bt.ProguardFiles,
		}
	}

	intent := &entities.BuildIntent{
		Identity: entities.ApplicationIdentity{
			ApplicationID: doc.Application.ID,
			Namespace:     doc.Application.Namespace,
			VersionCode:   doc.Application.VersionCode,
			VersionName:   doc.Application.VersionName,
		},
		SDK: entities.SDKLevels{
			Compile: doc.SDK.Compile,
			Min:     doc.SDK.Min,
			Target:  doc.SDK.Target,
		},
		CompileOptions: entities.CompileOptions{
			SourceCompatibility:   doc.CompileOptions.SourceCompatibility,
			TargetCompatibility:   doc.CompileOptions.TargetCompatibility,
			JVMTarget:             doc.CompileOptions.JVMTarget,
			CoreLibraryDesugaring: doc.CompileOptions.CoreLibraryDesugaring,
		},
		Plugins:        doc.Plugins,
		Framework:      entities.FrameworkConfig{Source: doc.Framework.Source},
		PropertiesFile: doc.Signing.PropertiesFile,
		BuildTypes:     buildTypes,
		Variables:      doc.Variables,
		Dependencies:   convertDependencies(doc.Dependencies),
	}

	if intent.PropertiesFile == "" {
		intent.PropertiesFile = entities.DefaultPropertiesFile
	}

	return intent, nil
}

func convertDependencies(yds []yamlDependency) []entities.DependencyIntent {
	deps := make([]entities.DependencyIntent, 0, len(yds))
	for _, yd := range yds {
		enabled := true
		if yd.Enabled != nil {
			enabled = *yd.Enabled
		}

		deps = append(deps, entities.DependencyIntent{
			Configuration: yd.Configuration,
			Coordinate:    yd.Coordinate,
			Name:          yd.Name,
			Version:       yd.Version,
			Enabled:       enabled,
			Reason:        yd.Reason,
		})
	}
	return deps
}

// yamlParseError names the offending key when yaml.v3 reports an unknown field
func yamlParseError(path string, err error) *entities.ParseError {
	pe := &entities.ParseError{Path: path, Err: fmt.Errorf("failed to parse YAML: %w", err)}

	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		for _, msg := range typeErr.Errors {
			if m := unknownFieldRef.FindStringSubmatch(msg); m != nil {
				pe.Line, _ = strconv.Atoi(m[1])
				pe.Key = m[2]
				return pe
			}
		}
	}

	if m := lineRef.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}
