/*
Package wayfinder resolves conversational-flow steps for AI agents.

A flow is a list of steps (instructions, required fields, validation rules and
behavior examples) plus a bot identity. Hosts hand an agent one tool,
get_step_instructions, and Wayfinder answers it: the step ID the agent asks
for is matched exactly, corrected when it is an obvious typo, or answered with
a "did you mean" hint and the full list of valid IDs.

# Concept

Every request normalizes the raw, loosely-typed flow parameters into a
domain.FlowConfiguration, renders {placeholders} from the request context and
resolves the query against it. Nothing is cached between requests, so one
Engine can serve concurrent callers.

Parameters come from a ports.ParameterSource: a YAML/JSON flow document, a
directory of markdown steps (Loam), a Redis hash, or an in-memory map.

# Usage

	eng, err := wayfinder.New("./flows/sales.yaml")
	if err != nil {
		log.Fatal(err)
	}

	answer, err := eng.Lookup(ctx, "abrtura") // auto-corrected to "abertura"
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(answer)

# Transports

The same Engine is served to agents over MCP (pkg/adapters/mcp), over HTTP
(pkg/adapters/http) or over a line-oriented pipe (pkg/runner). The wayfinder
CLI wires all of them.
*/
package wayfinder
