// Package scriptsnoop provides the command-line interface for the scriptsnoop
// tool. It configures subcommands (scan, patterns, baseline, etc.), parses
// flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/scriptsnoop/scriptsnoop/cmd/scriptsnoop"
//	func main() { scriptsnoop.Execute() }
package scriptsnoop
