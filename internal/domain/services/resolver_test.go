package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ochairo/packdesc/internal/domain/entities"
	"github.com/ochairo/packdesc/internal/external-adapters/validation"
)

func consumerAppIntent() *entities.BuildIntent {
	return &entities.BuildIntent{
		Identity: entities.ApplicationIdentity{
			ApplicationID: "com.example.app",
			Namespace:     "com.example.app",
			VersionCode:   3,
			VersionName:   "1.1.0",
		},
		SDK: entities.SDKLevels{Compile: 36, Min: 25, Target: 36},
		CompileOptions: entities.CompileOptions{
			SourceCompatibility:   "11",
			TargetCompatibility:   "11",
			JVMTarget:             "11",
			CoreLibraryDesugaring: true,
		},
		Plugins: []string{
			"com.android.application",
			"kotlin-android",
			"dev.flutter.flutter-gradle-plugin",
			"com.google.gms.google-services",
		},
		Framework:      entities.FrameworkConfig{Source: "../.."},
		PropertiesFile: entities.DefaultPropertiesFile,
		BuildTypes: map[entities.VariantName]entities.BuildTypeIntent{
			entities.VariantRelease: {
				ProguardFiles: []string{"proguard-android-optimize.txt", "proguard-rules.pro"},
			},
		},
		Variables: map[string]string{"kotlinVersion": "1.8.22"},
		Dependencies: []entities.DependencyIntent{
			{Coordinate: "org.jetbrains.kotlin:kotlin-stdlib-jdk7:$kotlinVersion", Enabled: true},
			{Configuration: "coreLibraryDesugaring", Coordinate: "com.android.tools:desugar_jdk_libs:2.0.4", Enabled: true},
			{Coordinate: "com.stripe:stripe-android:20.34.3", Enabled: true},
			{Coordinate: "com.google.android.gms:play-services-location:21.0.1", Reason: "version conflict"},
			{Coordinate: "com.google.android.gms:play-services-maps:18.1.0", Reason: "version conflict"},
		},
	}
}

func testCredentials() *entities.SigningCredentials {
	return &entities.SigningCredentials{
		KeyAlias:      "upload",
		KeyPassword:   "key-secret",
		StoreFile:     "/work/android/app/upload-keystore.jks",
		StorePassword: "store-secret",
	}
}

func newTestResolver() *ResolverService {
	return NewResolverService(validation.NewIntentValidator(), nil)
}

func TestResolve_IdentityPassesThrough(t *testing.T) {
	d, err := newTestResolver().Resolve(consumerAppIntent(), nil)
	require.NoError(t, err)

	assert.Equal(t, "com.example.app", d.Identity.ApplicationID)
	assert.Equal(t, 3, d.Identity.VersionCode)
	assert.Equal(t, "1.1.0", d.Identity.VersionName)
	assert.Equal(t, entities.SDKLevels{Compile: 36, Min: 25, Target: 36}, d.SDK)
	assert.Equal(t, "11", d.CompileOptions.JVMTarget)
	assert.True(t, d.CompileOptions.CoreLibraryDesugaring)
	assert.Equal(t, "../..", d.Framework.Source)
	assert.Len(t, d.Plugins, 4)
}

func TestResolve_WithoutCredentialsLeavesReleaseUnsigned(t *testing.T) {
	d, err := newTestResolver().Resolve(consumerAppIntent(), nil)
	require.NoError(t, err)

	release, ok := d.Variant(entities.VariantRelease)
	require.True(t, ok)
	assert.Nil(t, release.Signing)
	assert.Empty(t, d.SigningConfigs)
	assert.Nil(t, d.Signing(entities.VariantRelease))
}

func TestResolve_WithCredentialsSignsReleaseOnly(t *testing.T) {
	creds := testCredentials()
	d, err := newTestResolver().Resolve(consumerAppIntent(), creds)
	require.NoError(t, err)

	release, _ := d.Variant(entities.VariantRelease)
	require.NotNil(t, release.Signing)
	assert.Equal(t, entities.ReleaseSigningConfig, release.Signing.Config)

	debug, _ := d.Variant(entities.VariantDebug)
	assert.Nil(t, debug.Signing)
	assert.True(t, debug.Debuggable)
	assert.False(t, release.Debuggable)

	got := d.Signing(entities.VariantRelease)
	require.NotNil(t, got)
	assert.Equal(t, "upload", got.KeyAlias)

	// The descriptor holds its own copy
	creds.KeyAlias = "changed"
	assert.Equal(t, "upload", d.Signing(entities.VariantRelease).KeyAlias)
}

func TestResolve_VariantsFromBuildTypes(t *testing.T) {
	intent := consumerAppIntent()
	debuggable := true
	intent.BuildTypes[entities.VariantRelease] = entities.BuildTypeIntent{
		Minify:          true,
		ShrinkResources: true,
		Debuggable:      &debuggable,
		ProguardFiles:   []string{"proguard-rules.pro"},
	}

	d, err := newTestResolver().Resolve(intent, nil)
	require.NoError(t, err)

	require.Len(t, d.Variants, 2)
	assert.Equal(t, entities.VariantDebug, d.Variants[0].Name)
	assert.Equal(t, entities.VariantRelease, d.Variants[1].Name)

	release := d.Variants[1]
	assert.True(t, release.Minify)
	assert.True(t, release.ShrinkResources)
	assert.True(t, release.Debuggable)
	assert.Equal(t, []string{"proguard-rules.pro"}, release.ProguardFiles)
}

func TestResolve_ShrinkWithoutMinifyFails(t *testing.T) {
	intent := consumerAppIntent()
	intent.BuildTypes[entities.VariantRelease] = entities.BuildTypeIntent{ShrinkResources: true}

	_, err := newTestResolver().Resolve(intent, nil)

	var ce *entities.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "buildTypes.release.shrinkResources", ce.Field)
}

func TestResolve_UnknownBuildTypeFails(t *testing.T) {
	intent := consumerAppIntent()
	intent.BuildTypes["staging"] = entities.BuildTypeIntent{}

	_, err := newTestResolver().Resolve(intent, nil)

	var ce *entities.ConfigurationError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "buildTypes.staging", ce.Field)
}

func TestResolve_MissingIdentityField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*entities.BuildIntent)
		field  string
	}{
		{"application id", func(i *entities.BuildIntent) { i.Identity.ApplicationID = "" }, "applicationId"},
		{"namespace", func(i *entities.BuildIntent) { i.Identity.Namespace = "" }, "namespace"},
		{"version code", func(i *entities.BuildIntent) { i.Identity.VersionCode = 0 }, "versionCode"},
		{"version name", func(i *entities.BuildIntent) { i.Identity.VersionName = "" }, "versionName"},
		{"compile sdk", func(i *entities.BuildIntent) { i.SDK.Compile = 0 }, "compileSdk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := consumerAppIntent()
			tt.mutate(intent)

			_, err := newTestResolver().Resolve(intent, testCredentials())

			var ce *entities.ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.field, ce.Field)
		})
	}
}

func TestResolve_DisabledDependenciesNeverActive(t *testing.T) {
	d, err := newTestResolver().Resolve(consumerAppIntent(), nil)
	require.NoError(t, err)

	active := d.Dependencies.Active()
	require.Len(t, active, 3)
	for _, dep := range active {
		assert.True(t, dep.Enabled, dep.Name)
		assert.NotContains(t, dep.Name, "play-services")
	}

	assert.Equal(t, "org.jetbrains.kotlin:kotlin-stdlib-jdk7", active[0].Name)
	assert.Equal(t, "1.8.22", active[0].Version)
	assert.Equal(t, "coreLibraryDesugaring", active[1].Configuration)

	disabled := d.Dependencies.Disabled()
	require.Len(t, disabled, 2)
	assert.Equal(t, "version conflict", disabled[0].Reason)
}

func TestResolve_Deterministic(t *testing.T) {
	r := newTestResolver()

	first, err := r.Resolve(consumerAppIntent(), testCredentials())
	require.NoError(t, err)
	second, err := r.Resolve(consumerAppIntent(), testCredentials())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotEmpty(t, first.ID)

	unsigned, err := r.Resolve(consumerAppIntent(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, unsigned.ID, "signing changes the descriptor identity")
}

func TestResolve_IDIgnoresPasswords(t *testing.T) {
	r := newTestResolver()

	a, err := r.Resolve(consumerAppIntent(), testCredentials())
	require.NoError(t, err)

	creds := testCredentials()
	creds.KeyPassword = "rotated"
	b, err := r.Resolve(consumerAppIntent(), creds)
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
}

func TestResolve_NilIntent(t *testing.T) {
	_, err := newTestResolver().Resolve(nil, nil)
	assert.True(t, entities.IsConfigurationError(err))
}

type failingValidator struct{ err error }

func (f failingValidator) ValidateIntent(*entities.BuildIntent) error { return f.err }

func TestResolve_ValidatorErrorReturnedAsIs(t *testing.T) {
	want := errors.New("boom")
	_, err := NewResolverService(failingValidator{err: want}, nil).Resolve(consumerAppIntent(), nil)
	assert.ErrorIs(t, err, want)
}

func TestResolve_NoValidator(t *testing.T) {
	_, err := NewResolverService(nil, nil).Resolve(consumerAppIntent(), nil)
	assert.Error(t, err)
}
