package toml

import (
	"errors"
	"strings"
	"testing"

	"github.com/ochairo/packdesc/internal/domain/entities"
)

const consumerAppManifest = `plugins = ["com.android.application", "kotlin-android", "dev.flutter.flutter-gradle-plugin"]

[application]
id = "com.cvs.consumer_app"
namespace = "com.cvs.consumer_app"
version_code = 3
version_name = "1.1.0"

[sdk]
compile = 36
min = 25
target = 36

[compile_options]
source_compatibility = "11"
target_compatibility = "11"
jvm_target = "11"
core_library_desugaring = true

[framework]
source = "../.."

[build_types.release]
minify = true
shrink_resources = true
debuggable = false
proguard_files = ["proguard-android-optimize.txt", "proguard-rules.pro"]

[variables]
kotlinVersion = "1.8.22"

[[dependencies]]
coordinate = "org.jetbrains.kotlin:kotlin-stdlib-jdk7:$kotlinVersion"

[[dependencies]]
configuration = "coreLibraryDesugaring"
name = "com.android.tools:desugar_jdk_libs"
version = "2.0.4"

[[dependencies]]
coordinate = "com.google.android.gms:play-services-maps:18.1.0"
enabled = false
reason = "dependency version conflict"
`

func TestManifestParser_Parse_Valid(t *testing.T) {
	intent, err := NewManifestParser().Parse("build.toml", []byte(consumerAppManifest))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if intent.Identity != (entities.ApplicationIdentity{
		ApplicationID: "com.cvs.consumer_app",
		Namespace:     "com.cvs.consumer_app",
		VersionCode:   3,
		VersionName:   "1.1.0",
	}) {
		t.Errorf("Identity = %+v", intent.Identity)
	}
	if intent.SDK.Compile != 36 || intent.SDK.Min != 25 {
		t.Errorf("SDK = %+v", intent.SDK)
	}
	if len(intent.Plugins) != 3 {
		t.Errorf("Plugins = %v", intent.Plugins)
	}
	if intent.PropertiesFile != entities.DefaultPropertiesFile {
		t.Errorf("PropertiesFile = %s", intent.PropertiesFile)
	}

	release := intent.BuildTypes[entities.VariantRelease]
	if !release.Minify || !release.ShrinkResources {
		t.Errorf("release = %+v", release)
	}
	if release.Debuggable == nil || *release.Debuggable {
		t.Error("release.Debuggable should be explicitly false")
	}

	if len(intent.Dependencies) != 3 {
		t.Fatalf("Dependencies count = %d, want 3", len(intent.Dependencies))
	}
	if !intent.Dependencies[0].Enabled || !intent.Dependencies[1].Enabled || intent.Dependencies[2].Enabled {
		t.Errorf("Enabled flags = %v %v %v", intent.Dependencies[0].Enabled, intent.Dependencies[1].Enabled, intent.Dependencies[2].Enabled)
	}
	if intent.Dependencies[1].Version != "2.0.4" {
		t.Errorf("Dependencies[1].Version = %s", intent.Dependencies[1].Version)
	}
}

func TestManifestParser_Parse_UnknownKeyNamed(t *testing.T) {
	data := []byte("[application]\nid = \"com.example.app\"\nversion_cod = 3\n")

	_, err := NewManifestParser().Parse("build.toml", data)

	var pe *entities.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want ParseError", err)
	}
	if !strings.HasSuffix(pe.Key, "version_cod") {
		t.Errorf("Key = %q, want it to name version_cod", pe.Key)
	}
	if pe.Line != 3 {
		t.Errorf("Line = %d, want 3", pe.Line)
	}
}

func TestManifestParser_Parse_Malformed(t *testing.T) {
	_, err := NewManifestParser().Parse("build.toml", []byte("[application\nid = \n"))
	if !entities.IsParseError(err) {
		t.Errorf("Parse() error = %v, want ParseError", err)
	}
}
