// Package platformsvc orchestrates the platform workflows of a project:
// adding native platforms, listing installed and available ones, and
// preparing, building and running a platform.
//
// Each workflow validates the requested key against the registry and the
// host OS, then delegates the platform-specific steps to the definition's
// platform.ProjectService. Workflows run sequentially; a failure aborts the
// workflow without rolling back earlier steps.
package platformsvc
