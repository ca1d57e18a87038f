// Package detail renders the expanded view of one catalog item: every field
// of its kind with a label, and N/A in place of values the upstream omitted.
package detail
