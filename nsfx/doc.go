// Package nsfx integrates namespaces with Uber's Fx dependency injection
// framework: each module supplies a named *ns.Namespace into the graph,
// built either from in-process sources or from a YAML file.
package nsfx
