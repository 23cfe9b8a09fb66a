// Package declare is the boundary layer above the namespace engine: it
// validates externally supplied configuration against an explicit schema of
// refinable attributes, rejects unconsumed keyword arguments, and keeps a
// per-type registry of named shortcut presets for introspection.
package declare
