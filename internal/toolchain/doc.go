// Package toolchain builds and runs the external compiler command.
//
// The toolchain is treated as an opaque process: binstage only decides the
// argument vector (which binary, which profile, where to put artifacts) and
// reads back the exit status. Compiler output is streamed straight through
// to the user's terminal.
package toolchain
