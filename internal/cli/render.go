package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/rshade/portalgun/internal/catalog"
	"github.com/rshade/portalgun/internal/cli/pagination"
	"github.com/rshade/portalgun/internal/config"
	"github.com/rshade/portalgun/internal/engine"
	"github.com/rshade/portalgun/internal/pager"
	"github.com/rshade/portalgun/internal/query"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// tableColumns lists the columns shown per kind in table output.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var tableColumns = map[catalog.Kind][]catalog.Field{
	catalog.Character: {
		catalog.FieldID, catalog.FieldName, catalog.FieldStatus, catalog.FieldSpecies,
		catalog.FieldGender, catalog.FieldOrigin, catalog.FieldLocation, catalog.FieldEpisodes,
	},
	catalog.Location: {
		catalog.FieldID, catalog.FieldName, catalog.FieldType, catalog.FieldDimension, catalog.FieldResidents,
	},
	catalog.Episode: {
		catalog.FieldID, catalog.FieldName, catalog.FieldEpisode, catalog.FieldAirDate, catalog.FieldCharacters,
	},
}

// listOutput is the JSON and YAML shape of a list result.
type listOutput struct {
	Kind       catalog.Kind      `json:"kind"           yaml:"kind"`
	Filter     engine.FilterSpec `json:"filter"         yaml:"filter"`
	Sort       string            `json:"sort,omitempty" yaml:"sort,omitempty"`
	Items      []catalog.Item    `json:"items"          yaml:"items"`
	Pagination engine.PageMeta   `json:"pagination"     yaml:"pagination"`
}

// ndjsonSummary is the first line of NDJSON list output.
type ndjsonSummary struct {
	Type       string          `json:"type"`
	Kind       catalog.Kind    `json:"kind"`
	Pagination engine.PageMeta `json:"pagination"`
}

// errorOutput is the JSON and YAML shape of a failed drain.
type errorOutput struct {
	Error      string `json:"error"                 yaml:"error"`
	Resource   string `json:"resource,omitempty"    yaml:"resource,omitempty"`
	HTTPStatus int    `json:"http_status,omitempty" yaml:"http_status,omitempty"`
}

// isValidOutputFormat reports whether format is one of the list formats.
func isValidOutputFormat(format string) bool {
	switch format {
	case config.FormatTable, config.FormatJSON, config.FormatYAML, config.FormatNDJSON:
		return true
	default:
		return false
	}
}

// resolveOutputFormat returns the flag value, or the configured default when
// the flag is empty.
func resolveOutputFormat(flagValue string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flagValue))
	if format == "" {
		format = config.GetDefaultOutputFormat()
	}
	if !isValidOutputFormat(format) {
		return "", fmt.Errorf("%w: %q (valid: table, json, yaml, ndjson)", config.ErrInvalidFormat, flagValue)
	}
	return format, nil
}

// renderState writes st in format.
func renderState(w io.Writer, format string, st query.State) error {
	switch format {
	case config.FormatJSON:
		return renderJSON(w, newListOutput(st))
	case config.FormatYAML:
		return renderYAML(w, newListOutput(st))
	case config.FormatNDJSON:
		err := renderNDJSON(w, st)
		if isBrokenPipe(err) {
			return nil
		}
		return err
	default:
		return renderTable(w, st)
	}
}

func newListOutput(st query.State) listOutput {
	out := listOutput{
		Kind:       st.Kind,
		Filter:     st.Filter,
		Items:      st.Items,
		Pagination: st.Meta,
	}
	if out.Filter == nil {
		out.Filter = engine.FilterSpec{}
	}
	if st.Sort != nil {
		out.Sort = st.Sort.String()
	}
	return out
}

// renderTable writes the current window as an aligned table with a footer.
func renderTable(w io.Writer, st query.State) error {
	if st.Empty {
		_, err := fmt.Fprintln(w, pagination.Footer(st.Kind, st.Meta))
		return err
	}

	columns := tableColumns[st.Kind]
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)

	headers := make([]string, len(columns))
	dashes := make([]string, len(columns))
	for i, f := range columns {
		headers[i] = strings.ToUpper(catalog.Label(f))
		dashes[i] = strings.Repeat("-", len(headers[i]))
	}
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, it := range st.Items {
		writeItemRow(tw, it, columns)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%s\n", pagination.Footer(st.Kind, st.Meta))
	return err
}

// writeItemRow writes one item to the tabwriter.
func writeItemRow(tw *tabwriter.Writer, it catalog.Item, columns []catalog.Field) {
	cells := make([]string, len(columns))
	for i, f := range columns {
		cells[i] = it.Display(f)
	}
	fmt.Fprintln(tw, strings.Join(cells, "\t"))
}

// renderDetails writes one item's expanded view as label/value rows.
func renderDetails(w io.Writer, it catalog.Item) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	for _, d := range it.Details() {
		fmt.Fprintf(tw, "%s:\t%s\n", d.Label, d.Value)
	}
	return tw.Flush()
}

func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderYAML(w io.Writer, v any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2) //nolint:mnd // Conventional YAML indentation.
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return encoder.Close()
}

// renderNDJSON writes a summary line followed by one line per item.
func renderNDJSON(w io.Writer, st query.State) error {
	encoder := json.NewEncoder(w)
	summary := ndjsonSummary{Type: "summary", Kind: st.Kind, Pagination: st.Meta}
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("encoding NDJSON summary: %w", err)
	}
	for _, it := range st.Items {
		if err := encoder.Encode(it); err != nil {
			return fmt.Errorf("encoding NDJSON: %w", err)
		}
	}
	return nil
}

// renderDrainError writes err in the structured formats so scripted callers
// see the failing resource and status. Table output leaves the message to
// the command's error return.
func renderDrainError(w io.Writer, format string, err error) error {
	out := errorOutput{Error: err.Error()}
	var fe *pager.FetchError
	var pe *pager.ProtocolError
	switch {
	case errors.As(err, &fe):
		out.Resource = fe.Resource
		out.HTTPStatus = fe.HTTPStatus
	case errors.As(err, &pe):
		out.Resource = pe.Resource
	}

	switch format {
	case config.FormatJSON, config.FormatNDJSON:
		return json.NewEncoder(w).Encode(out)
	case config.FormatYAML:
		return renderYAML(w, out)
	default:
		return nil
	}
}

// isBrokenPipe checks if an error is a broken pipe error (SIGPIPE).
// This occurs when output is piped to commands like `head` that close the pipe early.
func isBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return strings.Contains(err.Error(), "broken pipe")
}
