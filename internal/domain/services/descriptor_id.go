package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/ochairo/packdesc/internal/domain/entities"
)

// DescriptorID derives a name-based UUID from a descriptor's content.
// Passwords are not part of the digest.
func DescriptorID(d *entities.Descriptor) string {
	ns := uuid.NewSHA1(uuid.NameSpaceURL, []byte("packdesc:"+d.Identity.ApplicationID))
	return uuid.NewSHA1(ns, canonicalForm(d)).String()
}

func canonicalForm(d *entities.Descriptor) []byte {
	var b strings.Builder

	id := d.Identity
	fmt.Fprintf(&b, "identity|%s|%s|%d|%s\n", id.ApplicationID, id.Namespace, id.VersionCode, id.VersionName)
	fmt.Fprintf(&b, "sdk|%d|%d|%d\n", d.SDK.Compile, d.SDK.Min, d.SDK.Target)
	co := d.CompileOptions
	fmt.Fprintf(&b, "compile|%s|%s|%s|%t\n", co.SourceCompatibility, co.TargetCompatibility, co.JVMTarget, co.CoreLibraryDesugaring)
	fmt.Fprintf(&b, "plugins|%s\n", strings.Join(d.Plugins, ","))
	fmt.Fprintf(&b, "framework|%s\n", d.Framework.Source)

	names := make([]string, 0, len(d.SigningConfigs))
	for name := range d.SigningConfigs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := d.SigningConfigs[name]
		fmt.Fprintf(&b, "signing|%s|%s|%s|%s\n", name, c.KeyAlias, c.StoreFile, c.StoreFileSHA256)
	}

	for _, v := range d.Variants {
		ref := ""
		if v.Signing != nil {
			ref = v.Signing.Config
		}
		fmt.Fprintf(&b, "variant|%s|%s|%t|%t|%t|%s\n", v.Name, ref, v.Minify, v.ShrinkResources, v.Debuggable,
			strings.Join(v.ProguardFiles, ","))
	}

	for _, dep := range d.Dependencies.All() {
		fmt.Fprintf(&b, "dep|%s|%s|%t\n", dep.Configuration, dep.Coordinate(), dep.Enabled)
	}

	return []byte(b.String())
}
