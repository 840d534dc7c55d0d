package entities

// DefaultPropertiesFile is the credentials file looked up when a manifest names none
const DefaultPropertiesFile = "key.properties"

// DependencyIntent is a dependency as declared in a manifest, before variable expansion
type DependencyIntent struct {
	Configuration string
	Coordinate    string // group:artifact:version, alternative to Name/Version
	Name          string
	Version       string // May reference variables as $name or ${name}
	Enabled       bool
	Reason        string
}

// BuildIntent represents the human-declared build configuration from a manifest
type BuildIntent struct {
	Identity       ApplicationIdentity
	SDK            SDKLevels
	CompileOptions CompileOptions
	Plugins        []string
	Framework      FrameworkConfig
	PropertiesFile string
	BuildTypes     map[VariantName]BuildTypeIntent
	Variables      map[string]string
	Dependencies   []DependencyIntent
}
