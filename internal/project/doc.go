// Package project handles persistence of timeline projects: JSON
// documents describing a sequence, and YAML edit scripts that replay
// catalog operations against one.
package project
