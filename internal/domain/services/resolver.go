// Package services implements domain logic for resolving build descriptors.
package services

import (
	"errors"
	"fmt"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"github.com/ochairo/packdesc/internal/domain/interfaces"
	"github.com/ochairo/packdesc/internal/domain/interfaces/gateways"
)

// ResolverService resolves build intents into descriptors
type ResolverService struct {
	validator gateways.IntentValidator
	logger    interfaces.Logger
}

// NewResolverService creates a new resolver service
func NewResolverService(validator gateways.IntentValidator, logger interfaces.Logger) *ResolverService {
	return &ResolverService{
		validator: validator,
		logger:    interfaces.LoggerOrNoOp(logger),
	}
}

// Resolve produces a descriptor from a build intent and optional signing credentials.
// A nil creds leaves every variant without a signing reference.
func (s *ResolverService) Resolve(intent *entities.BuildIntent, creds *entities.SigningCredentials) (*entities.Descriptor, error) {
	if intent == nil {
		return nil, &entities.ConfigurationError{Field: "manifest", Reason: "no build intent provided"}
	}
	if s.validator == nil {
		return nil, errors.New("resolver has no intent validator configured")
	}

	if err := s.validator.ValidateIntent(intent); err != nil {
		return nil, err
	}

	deps, err := ExpandDependencies(intent.Dependencies, intent.Variables)
	if err != nil {
		return nil, err
	}

	variants, err := resolveVariants(intent.BuildTypes, creds != nil)
	if err != nil {
		return nil, err
	}

	signingConfigs := make(map[string]*entities.SigningCredentials)
	if creds != nil {
		c := *creds
		signingConfigs[entities.ReleaseSigningConfig] = &c
	} else {
		s.logger.Warn("No signing credentials available, release variant will be unsigned",
			interfaces.F("application_id", intent.Identity.ApplicationID))
	}

	d := &entities.Descriptor{
		Identity:       intent.Identity,
		SDK:            intent.SDK,
		CompileOptions: intent.CompileOptions,
		Plugins:        append([]string(nil), intent.Plugins...),
		Framework:      intent.Framework,
		SigningConfigs: signingConfigs,
		Variants:       variants,
		Dependencies:   entities.NewDependencySet(deps),
	}
	d.ID = DescriptorID(d)

	s.logger.Debug("Resolved descriptor",
		interfaces.F("id", d.ID),
		interfaces.F("active_dependencies", len(d.Dependencies.Active())),
		interfaces.F("disabled_dependencies", len(d.Dependencies.Disabled())),
		interfaces.F("signed_release", creds != nil))

	return d, nil
}

// resolveVariants builds debug and release from the declared build types
func resolveVariants(declared map[entities.VariantName]entities.BuildTypeIntent, hasCredentials bool) ([]entities.BuildVariant, error) {
	for name := range declared {
		if name != entities.VariantDebug && name != entities.VariantRelease {
			return nil, &entities.ConfigurationError{
				Field:  "buildTypes." + string(name),
				Reason: "unknown build type, want debug or release",
			}
		}
	}

	variants := make([]entities.BuildVariant, 0, len(entities.Variants))
	for _, name := range entities.Variants {
		bt := declared[name]

		if bt.ShrinkResources && !bt.Minify {
			return nil, &entities.ConfigurationError{
				Field:  fmt.Sprintf("buildTypes.%s.shrinkResources", name),
				Reason: "resource shrinking requires minify to be enabled",
			}
		}

		v := entities.BuildVariant{
			Name:            name,
			Minify:          bt.Minify,
			ShrinkResources: bt.ShrinkResources,
			Debuggable:      name == entities.VariantDebug,
			ProguardFiles:   append([]string(nil), bt.ProguardFiles...),
		}
		if bt.Debuggable != nil {
			v.Debuggable = *bt.Debuggable
		}

		// Only release is signed with the credentials file; debug uses the tool's debug key
		if name == entities.VariantRelease && hasCredentials {
			v.Signing = &entities.SigningReference{Config: entities.ReleaseSigningConfig}
		}

		variants = append(variants, v)
	}

	return variants, nil
}
