// Package optgroups provides a small net/http handler that returns the terms
// of a named vocabulary as grouped JSON options, for client-side pickers that
// render the same optgroups as the server-side widget.
//
// The handler responds to GET and HEAD requests and supports vocabulary, query,
// limit and lang parameters. Titles are translated through the configured
// translator for the request locale; groups keep their vocabulary order.
package optgroups
