// Package runner implements the build-and-stage sequence behind the
// binstage command.
//
// A run is strictly linear: validate, build, check the exit status, create
// the destination directory, copy. The only early exit is a failed build,
// which leaves the filesystem untouched.
package runner
