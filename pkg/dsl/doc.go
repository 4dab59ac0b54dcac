/*
Package dsl provides a Go DSL for programmatically constructing automata.

It allows developers to define NFAs with a fluent builder instead of writing
JSON or YAML documents. This is particularly useful for generated automata,
unit tests, and leveraging IDE autocompletion/type-checking.

Example usage:

	package main

	import (
		"github.com/aretw0/quotient/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Add("p").
			On("a", "p", "q").
			On("b", "p")

		b.Add("q").
			Final()

		// The first state added is the start state unless Start says otherwise.
		nfa, err := b.Build()
		// ... pass nfa.Raw() to quotient.Engine.Minimize(...)
	}
*/
package dsl
