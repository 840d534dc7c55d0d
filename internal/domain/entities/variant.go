package entities

// VariantName identifies a build variant
type VariantName string

// Supported build variants, in resolution order
const (
	VariantDebug   VariantName = "debug"
	VariantRelease VariantName = "release"
)

// Variants lists every variant the resolver emits
var Variants = []VariantName{VariantDebug, VariantRelease}

// BuildTypeIntent is the declared shape of a build type before resolution
type BuildTypeIntent struct {
	Minify          bool
	ShrinkResources bool
	Debuggable      *bool
	ProguardFiles   []string
}

// BuildVariant is a resolved build type
type BuildVariant struct {
	Name            VariantName
	Signing         *SigningReference // nil means unsigned / build tool default
	Minify          bool
	ShrinkResources bool
	Debuggable      bool
	ProguardFiles   []string
}

// IsSigned reports whether the variant carries a signing reference
func (v BuildVariant) IsSigned() bool {
	return v.Signing != nil
}
