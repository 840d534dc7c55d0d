package entities

// Descriptor is the resolved configuration handed to the downstream build tool
type Descriptor struct {
	ID             string
	Identity       ApplicationIdentity
	SDK            SDKLevels
	CompileOptions CompileOptions
	Plugins        []string
	Framework      FrameworkConfig
	SigningConfigs map[string]*SigningCredentials
	Variants       []BuildVariant
	Dependencies   DependencySet
}

// Variant returns the named variant
func (d *Descriptor) Variant(name VariantName) (BuildVariant, bool) {
	for _, v := range d.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return BuildVariant{}, false
}

// Signing returns the credentials behind a variant's signing reference, if any
func (d *Descriptor) Signing(name VariantName) *SigningCredentials {
	v, ok := d.Variant(name)
	if !ok || v.Signing == nil {
		return nil
	}
	return d.SigningConfigs[v.Signing.Config]
}
