package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"task-tracker/internal/domain"
	"task-tracker/internal/errors"
)

// Output formats accepted by --output.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatCSV   = "csv"
)

var taskHeader = []string{"ID", "TITLE", "DESCRIPTION", "STATUS"}

// Printer renders tasks in one of the supported output formats
type Printer struct {
	out    io.Writer
	format string
}

// NewPrinter returns a printer for format, or a validation error if the
// format is not supported.
func NewPrinter(out io.Writer, format string) (*Printer, error) {
	switch format {
	case FormatTable, FormatJSON, FormatCSV:
		return &Printer{out: out, format: format}, nil
	default:
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported output format %q", format), nil)
	}
}

// Task prints a single task
func (p *Printer) Task(task *domain.Task) error {
	if p.format == FormatJSON {
		return p.json(task)
	}
	return p.Tasks([]*domain.Task{task})
}

// Tasks prints a list of tasks
func (p *Printer) Tasks(tasks []*domain.Task) error {
	switch p.format {
	case FormatJSON:
		return p.json(tasks)
	case FormatCSV:
		return p.csv(tasks)
	default:
		return p.table(tasks)
	}
}

// Message prints a plain confirmation line. JSON output stays machine-readable.
func (p *Printer) Message(format string, args ...interface{}) error {
	if p.format == FormatJSON {
		return p.json(map[string]string{"message": fmt.Sprintf(format, args...)})
	}
	_, err := fmt.Fprintf(p.out, format+"\n", args...)
	return err
}

func (p *Printer) json(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *Printer) table(tasks []*domain.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(p.out, "No tasks found")
		return err
	}

	tw := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", taskHeader[0], taskHeader[1], taskHeader[2], taskHeader[3])
	for _, t := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", t.ID, t.Title, t.Description, t.Status)
	}
	return tw.Flush()
}

func (p *Printer) csv(tasks []*domain.Task) error {
	writer := csv.NewWriter(p.out)

	if err := writer.Write(taskHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, t := range tasks {
		row := []string{strconv.FormatInt(t.ID, 10), t.Title, t.Description, t.Status}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
