// Package android implements platform.ProjectService for Android projects
// built with ant and the Android SDK command-line tools.
//
// The framework package ships an Eclipse-style project template whose
// strings.xml, .project and AndroidManifest.xml carry __NAME__,
// __TITLE_ACTIVITY__ and __PACKAGE__ placeholders. CreateProject copies the
// template into the platform root and InterpolateData fills the
// placeholders from the project descriptor.
//
// PrepareProject stages the shared app directory into assets/app, moves
// App_Resources/Android into res and applies the platform-specific file
// resolver so that only Android variants of tagged files remain.
package android
