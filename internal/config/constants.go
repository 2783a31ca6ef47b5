package config

// DeclFileExtensions are all recognized declaration file extensions
var DeclFileExtensions = []string{".yaml", ".yml"}

// DefaultMaxResolutionDepth bounds recursive prerequisite resolution.
// Instance constraints can reference the same class recursively
// (e.g. Show<List<a>> requiring Show<a>), so resolution must give up
// at some depth instead of looping.
const DefaultMaxResolutionDepth = 64
