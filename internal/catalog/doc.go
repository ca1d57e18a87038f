// Package catalog defines the resource kinds served by the upstream catalog API,
// the typed item record each kind decodes into, and the per-kind field tables
// that filtering and sorting consult.
//
// Items are decoded leniently: a JSON null or an absent attribute becomes the
// zero value and is rendered as "N/A". Only structurally broken items (for
// example a bare number where an object is expected) fail to decode.
package catalog
