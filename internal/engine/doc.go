// Package engine contains the core scanning logic for scriptsnoop. It selects
// target files under a root, classifies and de-quotes each line, matches the
// pattern catalog in a raw and a de-quoted pass, and returns structured
// findings. External consumers should use the stable facade in pkg/core.
package engine
