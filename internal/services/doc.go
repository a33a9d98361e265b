// Package services provides HTTP clients for external music catalogs.
//
// [APIService] wraps raw HTTP access to a catalog backend. [CatalogService]
// layers album tracklist and song metadata lookups on top of it, with
// client-credentials auth and request rate limiting.
package services
