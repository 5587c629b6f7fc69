// Package server provides HTTP routing, middleware, and the shelf API handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering,
// so patterns may carry wildcards ("/api/games/{id}/tier") resolved with [http.Request.PathValue].
//
// # Shelf API
//
// [ShelfHandler] serves the JSON API behind the serve command: listing the
// shelf, tier and played mutations, board reorders, and triggering imports.
// Import failures map onto HTTP statuses through the shared error taxonomy,
// and response messages come from [importer.UserMessage], so the CLI and the
// API present failures the same way.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
