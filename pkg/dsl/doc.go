/*
Package dsl provides a Go DSL for programmatically constructing Wayfinder flows.

It builds the same raw parameters a host would store (stepId, requiredFields,
validationRules.rule, ...) using a fluent builder, instead of relying on
external YAML or JSON files. This is particularly useful for unit tests and
for hosts that generate flows at runtime.

Example usage:

	b := dsl.New().
		Bot("Manu da {empresa}").
		Context("empresa", "ACME")

	b.Add("abertura").
		Order(1).
		Name("Abertura").
		Instructions("Cumprimente o cliente em nome da {empresa}.").
		Require("nome", "email").
		Next("vendas")

	b.Add("vendas").
		Name("Fechamento").
		Tools("agendar_visita")

	eng, err := wayfinder.New("", wayfinder.WithSource(b.Build()))
*/
package dsl
