// Package history persists sync run records to a local SQLite database so
// past batches can be inspected after the fact.
package history
