package events

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// TableFormatter provides utilities for formatting tuple sets as tables
type TableFormatter struct {
	// MaxWidth is a column width setting. FormatTuples does not read it;
	// cells are rendered at full length.
	MaxWidth int
	// TruncateString is a truncation marker setting. FormatTuples does not
	// read it; no cell is truncated.
	TruncateString string
}

// NewTableFormatter creates a new table formatter with default settings
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		MaxWidth:       50,
		TruncateString: "...",
	}
}

// FormatTuples formats a slice of tuples as a markdown table. Struct tuples
// are split into one column per field; scalar tuples render as a single
// "value" column.
func (tf *TableFormatter) FormatTuples(tuples []interface{}) string {
	if len(tuples) == 0 {
		return "_Empty result_"
	}

	columns := columnNames(tuples[0])
	rows := make([][]string, 0, len(tuples))
	for _, t := range tuples {
		rows = append(rows, tf.formatRow(t, len(columns)))
	}
	return tf.formatTable(columns, rows)
}

// formatTable formats columns and rows as a markdown table
func (tf *TableFormatter) formatTable(columns []string, rows [][]string) string {
	tableString := &strings.Builder{}

	// Create alignment array with all columns using AlignNone for simple
	// separators
	alignment := make([]tw.Align, len(columns))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	table.Header(columns)
	for _, row := range rows {
		table.Append(row)
	}
	table.Render()

	tableString.WriteString(fmt.Sprintf("\n_%d rows_\n", len(rows)))

	return tableString.String()
}

// columnNames derives header names from a sample tuple.
func columnNames(sample interface{}) []string {
	v := reflect.ValueOf(sample)
	if v.Kind() == reflect.Struct && !isOpaqueStruct(v.Type()) {
		names := make([]string, v.NumField())
		for i := range names {
			names[i] = v.Type().Field(i).Name
		}
		return names
	}
	return []string{"value"}
}

// formatRow renders a tuple into width cells.
func (tf *TableFormatter) formatRow(tuple interface{}, width int) []string {
	v := reflect.ValueOf(tuple)
	if v.Kind() == reflect.Struct && !isOpaqueStruct(v.Type()) && v.NumField() == width {
		row := make([]string, width)
		for i := range row {
			row[i] = tf.formatValue(v.Field(i).Interface())
		}
		return row
	}
	return []string{tf.formatValue(tuple)}
}

// isOpaqueStruct reports whether a struct should be rendered whole instead
// of split into columns. time.Time and structs with unexported fields have
// no useful per-field rendering.
func isOpaqueStruct(t reflect.Type) bool {
	if t == reflect.TypeOf(time.Time{}) {
		return true
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).PkgPath != "" {
			return true
		}
	}
	return t.NumField() == 0
}

// formatValue converts a value to a string representation
func (tf *TableFormatter) formatValue(val interface{}) string {
	if val == nil {
		return "nil"
	}

	switch v := val.(type) {
	case string:
		return v
	case int:
		return fmt.Sprintf("%d", v)
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case time.Time:
		return v.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", v)
	}
}
