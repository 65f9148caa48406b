/*
Package domain contains the core domain models of the Wayfinder resolver.

It defines the canonical, already-normalized shape of a conversational flow:
the bot identity, the ordered list of steps and the nested validation rules and
behavior scenarios each step owns. This package is kept pure and free of
external dependencies like I/O or persistence, following Hexagonal Architecture
principles. Loosely-typed input never reaches these types directly; it goes
through the normalizer in internal/runtime first.

# Key Entities

  - FlowConfiguration: the root object built once per request (Identity + Steps).
  - Step: one stage of a guided dialogue, looked up by its lower-cased ID.
  - Resolution: the outcome of resolving a query against the steps.
  - LookupHooks: observability callbacks fired by the engine.
*/
package domain
