package entities

// ReleaseSigningConfig is the name of the signing config attached to release builds
const ReleaseSigningConfig = "release"

// Recognized key.properties keys
const (
	KeyAlias      = "keyAlias"
	KeyPassword   = "keyPassword"
	StoreFile     = "storeFile"
	StorePassword = "storePassword"
)

// CredentialKeys lists the keys a credentials file must define, in file order
var CredentialKeys = []string{KeyAlias, KeyPassword, StoreFile, StorePassword}

const redactedSecret = "********"

// SigningCredentials represents key material loaded from a credentials file
type SigningCredentials struct {
	KeyAlias      string
	KeyPassword   string
	StoreFile     string // Resolved against the module base directory
	StorePassword string

	// StoreFileSHA256 is empty when the keystore was not present at resolution time
	StoreFileSHA256 string
}

// Redacted returns a copy with both passwords masked
func (c *SigningCredentials) Redacted() *SigningCredentials {
	if c == nil {
		return nil
	}
	out := *c
	if out.KeyPassword != "" {
		out.KeyPassword = redactedSecret
	}
	if out.StorePassword != "" {
		out.StorePassword = redactedSecret
	}
	return &out
}

// SigningReference names the signing config a variant is signed with
type SigningReference struct {
	Config string
}
