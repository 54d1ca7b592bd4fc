// Package npm fetches framework packages. Installer shells out to the npm
// CLI to download a package into a directory, and Client queries the
// registry's package document for the latest published version.
package npm
