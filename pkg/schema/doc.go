/*
Package schema provides field schemas for node configuration widgets.

Each node kind declares a schema mapping field names to a value type and
a widget hint. The canvas generates configuration widgets from the
hints; the server validates incoming node data payloads against the
types before a manifest is persisted.
*/
package schema
