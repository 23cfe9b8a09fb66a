// Package yaml decodes YAML documents into namespaces using goccy/go-yaml,
// preserving document key order. A colon-separated path can target a
// sub-document, mirroring the navigation convention of configuration
// providers built on these namespaces.
package yaml
