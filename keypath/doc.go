// Package keypath encodes and decodes the flat string keys used to address
// values inside hierarchical namespaces. A path is a sequence of segments
// joined by a fixed multi-character separator ("__"), so "a__b__c" addresses
// the key "c" inside the namespace "b" inside the namespace "a".
//
// The codec is pure and stateless; both the namespace engine and the
// attribute path accessors in objpath share its splitting rule.
package keypath
