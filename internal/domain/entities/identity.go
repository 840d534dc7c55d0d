// Package entities defines core domain models and data structures.
package entities

// ApplicationIdentity identifies the packaged application
type ApplicationIdentity struct {
	ApplicationID string `validate:"required" field:"applicationId"`
	Namespace     string `validate:"required" field:"namespace"`
	VersionCode   int    `validate:"required,min=1" field:"versionCode"`
	VersionName   string `validate:"required" field:"versionName"`
}

// SDKLevels holds the platform API levels handed to the build tool
type SDKLevels struct {
	Compile int `validate:"required" field:"compileSdk"`
	Min     int `field:"minSdk"`
	Target  int `field:"targetSdk"`
}

// CompileOptions holds Java/Kotlin compatibility levels, passed through unmodified
type CompileOptions struct {
	SourceCompatibility   string
	TargetCompatibility   string
	JVMTarget             string
	CoreLibraryDesugaring bool
}

// FrameworkConfig points the cross-platform framework plugin at its project root
type FrameworkConfig struct {
	Source string
}
