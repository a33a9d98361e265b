// Package server provides HTTP routing, middleware, and read-only API
// handlers for inspecting packs and album series.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # API
//
// [API] serves pack listings, pack songs, and album series coverage reports
// over JSON. The coverage endpoint rebuilds the tracklist projection on every
// request, so responses always reflect the current store plus catalog state.
package server
