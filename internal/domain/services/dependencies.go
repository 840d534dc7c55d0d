package services

import (
	"fmt"
	"regexp"

	"github.com/ochairo/packdesc/internal/domain/entities"
)

// DefaultConfiguration is used for dependencies that name no configuration
const DefaultConfiguration = "implementation"

var variableRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// ExpandDependencies turns declared dependencies into resolved entries, preserving order.
// Version strings may reference variables as $name or ${name}.
func ExpandDependencies(intents []entities.DependencyIntent, vars map[string]string) ([]entities.Dependency, error) {
	deps := make([]entities.Dependency, 0, len(intents))

	for i, di := range intents {
		field := fmt.Sprintf("dependencies[%d]", i)

		name, version := di.Name, di.Version
		if di.Coordinate != "" {
			if di.Name != "" {
				return nil, &entities.ConfigurationError{Field: field, Reason: "set either coordinate or name, not both"}
			}

			expanded, err := expandVariables(di.Coordinate, vars)
			if err != nil {
				return nil, err
			}

			var coordVersion string
			name, coordVersion, err = entities.ParseCoordinate(expanded)
			if err != nil {
				return nil, &entities.ConfigurationError{Field: field + ".coordinate", Reason: err.Error()}
			}
			if coordVersion != "" && version != "" {
				return nil, &entities.ConfigurationError{Field: field + ".version", Reason: "version given twice"}
			}
			if coordVersion != "" {
				version = coordVersion
			}
		} else if _, v, err := entities.ParseCoordinate(name); err != nil || v != "" {
			return nil, &entities.ConfigurationError{Field: field + ".name", Reason: "want group:artifact, got " + fmt.Sprintf("%q", name)}
		}

		version, err := expandVariables(version, vars)
		if err != nil {
			return nil, err
		}

		configuration := di.Configuration
		if configuration == "" {
			configuration = DefaultConfiguration
		}

		deps = append(deps, entities.Dependency{
			Configuration: configuration,
			Name:          name,
			Version:       version,
			Enabled:       di.Enabled,
			Reason:        di.Reason,
		})
	}

	return deps, nil
}

func expandVariables(s string, vars map[string]string) (string, error) {
	var missing string
	out := variableRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := variableRef.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		v, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return ref
		}
		return v
	})

	if missing != "" {
		return "", &entities.ConfigurationError{
			Field:  "variables." + missing,
			Reason: fmt.Sprintf("referenced by %q but not defined", s),
		}
	}
	return out, nil
}
