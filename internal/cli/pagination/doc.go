// Package pagination turns CLI query flags into engine specs.
//
// It holds the pieces shared by every command that lists catalog items:
//   - Params: --filter, --sort, --page and --page-size values and their validation
//   - Query: the resolved filter, sort and window for one kind
//   - Footer and help text built from kind metadata
package pagination
