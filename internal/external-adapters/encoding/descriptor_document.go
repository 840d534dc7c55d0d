// Package encoding serializes resolved descriptors for the downstream build tool.
package encoding

import (
	"sort"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"github.com/ochairo/packdesc/internal/domain/interfaces/gateways"
)

// descriptorDocument is the wire shape shared by every output format
type descriptorDocument struct {
	ID             string                `json:"id" yaml:"id" toml:"id"`
	Application    applicationDoc        `json:"application" yaml:"application" toml:"application"`
	SDK            sdkDoc                `json:"sdk" yaml:"sdk" toml:"sdk"`
	CompileOptions compileOptionsDoc     `json:"compile_options" yaml:"compile_options" toml:"compile_options"`
	Plugins        []string              `json:"plugins" yaml:"plugins" toml:"plugins"`
	Framework      frameworkDoc          `json:"framework" yaml:"framework" toml:"framework"`
	SigningConfigs []signingConfigDoc    `json:"signing_configs" yaml:"signing_configs" toml:"signing_configs"`
	Variants       []variantDoc          `json:"variants" yaml:"variants" toml:"variants"`
	Dependencies   dependencySetDocument `json:"dependencies" yaml:"dependencies" toml:"dependencies"`
}

type applicationDoc struct {
	ID          string `json:"id" yaml:"id" toml:"id"`
	Namespace   string `json:"namespace" yaml:"namespace" toml:"namespace"`
	VersionCode int    `json:"version_code" yaml:"version_code" toml:"version_code"`
	VersionName string `json:"version_name" yaml:"version_name" toml:"version_name"`
}

type sdkDoc struct {
	Compile int `json:"compile" yaml:"compile" toml:"compile"`
	Min     int `json:"min,omitempty" yaml:"min,omitempty" toml:"min,omitempty"`
	Target  int `json:"target,omitempty" yaml:"target,omitempty" toml:"target,omitempty"`
}

type compileOptionsDoc struct {
	SourceCompatibility   string `json:"source_compatibility,omitempty" yaml:"source_compatibility,omitempty" toml:"source_compatibility,omitempty"`
	TargetCompatibility   string `json:"target_compatibility,omitempty" yaml:"target_compatibility,omitempty" toml:"target_compatibility,omitempty"`
	JVMTarget             string `json:"jvm_target,omitempty" yaml:"jvm_target,omitempty" toml:"jvm_target,omitempty"`
	CoreLibraryDesugaring bool   `json:"core_library_desugaring" yaml:"core_library_desugaring" toml:"core_library_desugaring"`
}

type frameworkDoc struct {
	Source string `json:"source,omitempty" yaml:"source,omitempty" toml:"source,omitempty"`
}

type signingConfigDoc struct {
	Name            string `json:"name" yaml:"name" toml:"name"`
	KeyAlias        string `json:"key_alias" yaml:"key_alias" toml:"key_alias"`
	KeyPassword     string `json:"key_password" yaml:"key_password" toml:"key_password"`
	StoreFile       string `json:"store_file" yaml:"store_file" toml:"store_file"`
	StorePassword   string `json:"store_password" yaml:"store_password" toml:"store_password"`
	StoreFileSHA256 string `json:"store_file_sha256,omitempty" yaml:"store_file_sha256,omitempty" toml:"store_file_sha256,omitempty"`
}

type variantDoc struct {
	Name            string   `json:"name" yaml:"name" toml:"name"`
	SigningConfig   string   `json:"signing_config,omitempty" yaml:"signing_config,omitempty" toml:"signing_config,omitempty"`
	Minify          bool     `json:"minify" yaml:"minify" toml:"minify"`
	ShrinkResources bool     `json:"shrink_resources" yaml:"shrink_resources" toml:"shrink_resources"`
	Debuggable      bool     `json:"debuggable" yaml:"debuggable" toml:"debuggable"`
	ProguardFiles   []string `json:"proguard_files,omitempty" yaml:"proguard_files,omitempty" toml:"proguard_files,omitempty"`
}

type dependencySetDocument struct {
	Active   []dependencyDoc `json:"active" yaml:"active" toml:"active"`
	Disabled []dependencyDoc `json:"disabled,omitempty" yaml:"disabled,omitempty" toml:"disabled,omitempty"`
}

type dependencyDoc struct {
	Configuration string `json:"configuration" yaml:"configuration" toml:"configuration"`
	Name          string `json:"name" yaml:"name" toml:"name"`
	Version       string `json:"version,omitempty" yaml:"version,omitempty" toml:"version,omitempty"`
	Reason        string `json:"reason,omitempty" yaml:"reason,omitempty" toml:"reason,omitempty"`
}

func newDescriptorDocument(d *entities.Descriptor, opts gateways.EncodeOptions) descriptorDocument {
	doc := descriptorDocument{
		ID: d.ID,
		Application: applicationDoc{
			ID:          d.Identity.ApplicationID,
			Namespace:   d.Identity.Namespace,
			VersionCode: d.Identity.VersionCode,
			VersionName: d.Identity.VersionName,
		},
		SDK: sdkDoc{Compile: d.SDK.Compile, Min: d.SDK.Min, Target: d.SDK.Target},
		CompileOptions: compileOptionsDoc{
			SourceCompatibility:   d.CompileOptions.SourceCompatibility,
			TargetCompatibility:   d.CompileOptions.TargetCompatibility,
			JVMTarget:             d.CompileOptions.JVMTarget,
			CoreLibraryDesugaring: d.CompileOptions.CoreLibraryDesugaring,
		},
		Plugins:        append([]string{}, d.Plugins...),
		Framework:      frameworkDoc{Source: d.Framework.Source},
		SigningConfigs: []signingConfigDoc{},
		Variants:       make([]variantDoc, 0, len(d.Variants)),
		Dependencies: dependencySetDocument{
			Active: convertDependencies(d.Dependencies.Active()),
		},
	}

	// Map iteration order is random; sort for reproducible output
	names := make([]string, 0, len(d.SigningConfigs))
	for name := range d.SigningConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := d.SigningConfigs[name]
		if !opts.IncludeSecrets {
			c = c.Redacted()
		}
		doc.SigningConfigs = append(doc.SigningConfigs, signingConfigDoc{
			Name:            name,
			KeyAlias:        c.KeyAlias,
			KeyPassword:     c.KeyPassword,
			StoreFile:       c.StoreFile,
			StorePassword:   c.StorePassword,
			StoreFileSHA256: c.StoreFileSHA256,
		})
	}

	for _, v := range d.Variants {
		vd := variantDoc{
			Name:            string(v.Name),
			Minify:          v.Minify,
			ShrinkResources: v.ShrinkResources,
			Debuggable:      v.Debuggable,
			ProguardFiles:   v.ProguardFiles,
		}
		if v.Signing != nil {
			vd.SigningConfig = v.Signing.Config
		}
		doc.Variants = append(doc.Variants, vd)
	}

	if !opts.OmitDisabled {
		doc.Dependencies.Disabled = convertDependencies(d.Dependencies.Disabled())
	}

	return doc
}

func convertDependencies(deps []entities.Dependency) []dependencyDoc {
	out := make([]dependencyDoc, 0, len(deps))
	for _, dep := range deps {
		out = append(out, dependencyDoc{
			Configuration: dep.Configuration,
			Name:          dep.Name,
			Version:       dep.Version,
			Reason:        dep.Reason,
		})
	}
	return out
}
