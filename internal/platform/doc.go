// Package platform defines the native platforms tns can provision and the
// contract each platform's project service implements.
//
// # Definitions
//
// A [Definition] is the immutable description of one platform: its key
// ("ios", "android"), the npm package carrying its project template, the
// display name used for resource folders, the project root under the
// app's platforms directory and the host operating systems it can be built
// on.
//
// # Project services
//
// [ProjectService] covers the platform-specific parts of each workflow:
// toolchain validation, scaffolding a native project from the framework
// template, placeholder interpolation, staging app files and invoking the
// native build. Implementations live in the android and ios subpackages.
//
// # Registry
//
// [Registry] holds the definitions in registration order. It is built once
// and never mutated, so it is safe for concurrent use:
//
//	reg, err := platform.NewDefaultRegistry(proj.PlatformsDir, iosSvc, androidSvc)
//	def, ok := reg.Lookup("android")
package platform
