/*
Package ports defines the driven ports (interfaces) for the Wayfinder engine.

These interfaces decouple the core logic from the host that owns the flow
configuration, allowing the engine to read its parameters from memory, files,
markdown repositories or remote key-value stores.

# Key Interfaces

  - ParameterSource: an opaque key-value accessor returning raw, possibly
    malformed, parameter values for a given item.
  - Lookuper: the read-only surface transports (MCP, HTTP) need from the engine.
*/
package ports
