// Package stage computes the output layout and copies built artifacts into
// their per-binary destination directory.
//
// Layout under the output root:
//
//	<root>/<profile-dir>/<name><suffix>   written by the toolchain
//	<root>/<name>/<name><suffix>          staged copy
package stage
