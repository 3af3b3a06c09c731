// Package config loads scriptsnoop configuration from local and global YAML
// files. CLI code applies the precedence CLI > local > global when mapping
// these values into engine configuration.
package config
