// Package types defines the domain entities, collaborator interfaces, and
// standard errors for the music-map interactive core.
package types
