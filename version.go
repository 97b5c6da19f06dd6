// Package variant is a dynamic value type with textual, JSON and YAML renderings, a JSON
// parser and a small badger backed store of named values.
package variant

const (
	// Version of the module and the variant command.
	Version = "v0.1.0"
	// Description is shown in the command help.
	Description = "build, render, parse and store dynamic values"
	// URL is the import path of the module.
	URL = "variant.mleku.dev"
)
