// Package toml provides TOML build manifest parsing.
package toml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ochairo/packdesc/internal/domain/entities"
)

type tomlManifest struct {
	Application    tomlApplication          `toml:"application"`
	SDK            tomlSDK                  `toml:"sdk"`
	CompileOptions tomlCompileOptions       `toml:"compile_options"`
	Plugins        []string                 `toml:"plugins"`
	Framework      tomlFramework            `toml:"framework"`
	Signing        tomlSigning              `toml:"signing"`
	BuildTypes     map[string]tomlBuildType `toml:"build_types"`
	Variables      map[string]string        `toml:"variables"`
	Dependencies   []tomlDependency         `toml:"dependencies"`
}

type tomlApplication struct {
	ID          string `toml:"id"`
	Namespace   string `toml:"namespace"`
	VersionCode int    `toml:"version_code"`
	VersionName string `toml:"version_name"`
}

type tomlSDK struct {
	Compile int `toml:"compile"`
	Min     int `toml:"min"`
	Target  int `toml:"target"`
}

type tomlCompileOptions struct {
	SourceCompatibility   string `toml:"source_compatibility"`
	TargetCompatibility   string `toml:"target_compatibility"`
	JVMTarget             string `toml:"jvm_target"`
	CoreLibraryDesugaring bool   `toml:"core_library_desugaring"`
}

type tomlFramework struct {
	Source string `toml:"source"`
}

type tomlSigning struct {
	PropertiesFile string `toml:"properties_file"`
}

type tomlBuildType struct {
	Minify          bool     `toml:"minify"`
	ShrinkResources bool     `toml:"shrink_resources"`
	Debuggable      *bool    `toml:"debuggable"`
	ProguardFiles   []string `toml:"proguard_files"`
}

type tomlDependency struct {
	Configuration string `toml:"configuration"`
	Coordinate    string `toml:"coordinate"`
	Name          string `toml:"name"`
	Version       string `toml:"version"`
	Enabled       *bool  `toml:"enabled"`
	Reason        string `toml:"reason"`
}

// ManifestParser parses TOML build manifests
type ManifestParser struct{}

// NewManifestParser creates a new TOML parser
func NewManifestParser() *ManifestParser {
	return &ManifestParser{}
}

// Parse decodes TOML bytes into a BuildIntent. Unknown keys are rejected.
func (p *ManifestParser) Parse(path string, data []byte) (*entities.BuildIntent, error) {
	var doc tomlManifest

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, tomlParseError(path, err)
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

	deps := make([]entities.DependencyIntent, 0, len(doc.Dependencies))
	for _, td := range doc.Dependencies {
		enabled := td.Enabled == nil || *td.Enabled
		deps = append(deps, entities.DependencyIntent{
			Configuration: td.Configuration,
			Coordinate:    td.Coordinate,
			Name:          td.Name,
			Version:       td.Version,
			Enabled:       enabled,
			Reason:        td.Reason,
		})
	}

	propertiesFile := doc.Signing.PropertiesFile
	if propertiesFile == "" {
		propertiesFile = entities.DefaultPropertiesFile
	}

	return &entities.BuildIntent{
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
		PropertiesFile: propertiesFile,
		BuildTypes:     buildTypes,
		Variables:      doc.Variables,
		Dependencies:   deps,
	}, nil
}

func tomlParseError(path string, err error) *entities.ParseError {
	pe := &entities.ParseError{Path: path, Err: fmt.Errorf("failed to parse TOML: %w", err)}

	var strict *toml.StrictMissingError
	if errors.As(err, &strict) && len(strict.Errors) > 0 {
		first := strict.Errors[0]
		pe.Line, _ = first.Position()
		pe.Key = strings.Join(first.Key(), ".")
		return pe
	}

	var decErr *toml.DecodeError
	if errors.As(err, &decErr) {
		pe.Line, _ = decErr.Position()
		pe.Key = strings.Join(decErr.Key(), ".")
	}
	return pe
}
