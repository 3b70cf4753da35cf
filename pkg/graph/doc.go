/*
Package graph defines the domain model for adkflow editor graphs.

A graph is the in-memory representation of a pipeline canvas: nodes
(agents, prompts, tools, variables, probes, groups) connected by edges.
Nodes may nest inside group nodes via a parent reference; the parent
relation is a tree (acyclic, single-parent) by construction of the
editor, and every traversal in this package carries a visited-set guard
so malformed input cannot loop.

The package also provides structural validation, graph diffing for live
update streams, and a fluent Builder for constructing graphs in code.
*/
package graph
