// Package preflight provides readiness checks for the filesystem paths
// a conversion run depends on.
//
// The CLI "config validate" command runs the full set before reporting a
// configuration healthy, and the build command checks the output paths
// before starting a batch so a permissions problem surfaces up front
// instead of after the walk.
package preflight
