package encoding

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"github.com/ochairo/packdesc/internal/domain/interfaces/gateways"
)

func testDescriptor(signed bool) *entities.Descriptor {
	d := &entities.Descriptor{
		ID: "6f1c1c1e-2a77-5d3f-9b1e-3f3b8c8f8a11",
		Identity: entities.ApplicationIdentity{
			ApplicationID: "com.example.app",
			Namespace:     "com.example.app",
			VersionCode:   3,
			VersionName:   "1.1.0",
		},
		SDK:            entities.SDKLevels{Compile: 36, Min: 25, Target: 36},
		CompileOptions: entities.CompileOptions{JVMTarget: "11", CoreLibraryDesugaring: true},
		Plugins:        []string{"com.android.application", "kotlin-android"},
		Framework:      entities.FrameworkConfig{Source: "../.."},
		SigningConfigs: map[string]*entities.SigningCredentials{},
		Variants: []entities.BuildVariant{
			{Name: entities.VariantDebug, Debuggable: true},
			{Name: entities.VariantRelease, ProguardFiles: []string{"proguard-rules.pro"}},
		},
		Dependencies: entities.NewDependencySet([]entities.Dependency{
			{Configuration: "implementation", Name: "com.stripe:stripe-android", Version: "20.34.3", Enabled: true},
			{Configuration: "implementation", Name: "com.google.android.gms:play-services-maps", Version: "18.1.0", Reason: "version conflict"},
		}),
	}
	if signed {
		d.SigningConfigs[entities.ReleaseSigningConfig] = &entities.SigningCredentials{
			KeyAlias:      "upload",
			KeyPassword:   "key-secret",
			StoreFile:     "/work/upload-keystore.jks",
			StorePassword: "store-secret",
		}
		d.Variants[1].Signing = &entities.SigningReference{Config: entities.ReleaseSigningConfig}
	}
	return d
}

func encode(t *testing.T, enc gateways.DescriptorEncoder, d *entities.Descriptor, opts gateways.EncodeOptions) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, d, opts))
	return buf.String()
}

func TestEncoders_Deterministic(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			enc, err := ForFormat(format)
			require.NoError(t, err)
			assert.Equal(t, format, enc.Format())

			first := encode(t, enc, testDescriptor(true), gateways.EncodeOptions{})
			for i := 0; i < 5; i++ {
				assert.Equal(t, first, encode(t, enc, testDescriptor(true), gateways.EncodeOptions{}))
			}
		})
	}
}

func TestEncoders_RedactsSecretsByDefault(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			enc, err := ForFormat(format)
			require.NoError(t, err)

			out := encode(t, enc, testDescriptor(true), gateways.EncodeOptions{})
			assert.NotContains(t, out, "key-secret")
			assert.NotContains(t, out, "store-secret")
			assert.Contains(t, out, "upload-keystore.jks")

			out = encode(t, enc, testDescriptor(true), gateways.EncodeOptions{IncludeSecrets: true})
			assert.Contains(t, out, "key-secret")
			assert.Contains(t, out, "store-secret")
		})
	}
}

func TestEncoders_OmitDisabled(t *testing.T) {
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			enc, err := ForFormat(format)
			require.NoError(t, err)

			out := encode(t, enc, testDescriptor(false), gateways.EncodeOptions{})
			assert.Contains(t, out, "play-services-maps")
			assert.Contains(t, out, "version conflict")

			out = encode(t, enc, testDescriptor(false), gateways.EncodeOptions{OmitDisabled: true})
			assert.NotContains(t, out, "play-services-maps")
			assert.Contains(t, out, "stripe-android")
		})
	}
}

func TestJSONEncoder_Document(t *testing.T) {
	out := encode(t, JSONEncoder{}, testDescriptor(true), gateways.EncodeOptions{})

	var doc descriptorDocument
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "com.example.app", doc.Application.ID)
	assert.Equal(t, 3, doc.Application.VersionCode)
	assert.Equal(t, "1.1.0", doc.Application.VersionName)
	require.Len(t, doc.Variants, 2)
	assert.Equal(t, "debug", doc.Variants[0].Name)
	assert.Empty(t, doc.Variants[0].SigningConfig)
	assert.Equal(t, "release", doc.Variants[1].SigningConfig)
	require.Len(t, doc.SigningConfigs, 1)
	assert.Equal(t, "release", doc.SigningConfigs[0].Name)
	assert.NotEqual(t, "key-secret", doc.SigningConfigs[0].KeyPassword)
	require.Len(t, doc.Dependencies.Active, 1)
	require.Len(t, doc.Dependencies.Disabled, 1)
}

func TestYAMLEncoder_UnsignedRelease(t *testing.T) {
	out := encode(t, YAMLEncoder{}, testDescriptor(false), gateways.EncodeOptions{})

	var doc descriptorDocument
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))

	assert.Empty(t, doc.SigningConfigs)
	for _, v := range doc.Variants {
		assert.Empty(t, v.SigningConfig, "variant %s", v.Name)
	}
	assert.False(t, strings.Contains(out, "signing_config:"))
}

func TestTOMLEncoder_Document(t *testing.T) {
	out := encode(t, TOMLEncoder{}, testDescriptor(true), gateways.EncodeOptions{})

	var doc descriptorDocument
	require.NoError(t, toml.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "com.example.app", doc.Application.Namespace)
	assert.Equal(t, 36, doc.SDK.Compile)
	assert.Equal(t, []string{"com.android.application", "kotlin-android"}, doc.Plugins)
	require.Len(t, doc.Variants, 2)
	assert.Equal(t, "release", doc.Variants[1].SigningConfig)
}

func TestForFormat(t *testing.T) {
	enc, err := ForFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, enc.Format())

	_, err = ForFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json, toml, yaml")
}
