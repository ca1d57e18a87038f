// Package cache stores upstream page bodies on disk with a TTL.
//
// Entries are JSON files named by the SHA-256 of the page URL, kept under
// ~/.portalgun/cache/ unless configured otherwise. The cache sits below the
// drain loop: every page is still requested through a Fetcher, and the
// caching Fetcher answers from disk when a fresh entry exists.
package cache
