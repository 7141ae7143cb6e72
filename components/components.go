// Package components defines ECS components for metaball influence sources.
package components
