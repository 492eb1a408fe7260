// Package console is the terminal front end: it prompts, confirms and renders tables.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/unclebandit/simple-crm/internal/listing"
	"github.com/unclebandit/simple-crm/internal/model"
)

// Console reads user input line by line and writes messages and tables.
// It satisfies listing.Confirmer, listing.Notifier and form.Notifier.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// ReadLine returns the next input line. ok is false at end of input.
func (c *Console) ReadLine() (line string, ok bool) {
	if !c.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(c.in.Text()), true
}

// Ask prints a prompt and reads one line.
func (c *Console) Ask(prompt string) (string, bool) {
	fmt.Fprint(c.out, prompt)
	return c.ReadLine()
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (c *Console) Confirm(prompt string) bool {
	answer, ok := c.Ask(prompt + " [y/N]: ")
	if !ok {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.out, "error: "+msg)
}

func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// RenderPage prints the customers of page as a table followed by the pagination footer.
func (c *Console) RenderPage(page listing.Page, filter listing.Filter, search string) {
	fmt.Fprintf(c.out, "Filter: %s", filter)
	if search != "" {
		fmt.Fprintf(c.out, "  Search: %q", search)
	}
	fmt.Fprintln(c.out)

	if len(page.Items) == 0 {
		fmt.Fprintln(c.out, "No customers found.")
		return
	}

	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tPHONE\tSTATUS")
	for _, cu := range page.Items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", cu.ID, cu.Name, cu.Email, cu.Phone, cu.Status)
	}
	_ = tw.Flush()

	if page.ShowControls {
		prev, next := "prev", "next"
		if !page.HasPrev {
			prev = "-"
		}
		if !page.HasNext {
			next = "-"
		}
		fmt.Fprintf(c.out, "Page %d of %d (%d customers)  [%s] [%s]\n", page.Number, page.TotalPages, page.TotalItems, prev, next)
	}
}

// RenderActivity prints an activity log.
func (c *Console) RenderActivity(entries []model.ActivityEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(c.out, "No activity recorded.")
		return
	}
	tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "WHEN\tEVENT\tMESSAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.EventType, e.Message)
	}
	_ = tw.Flush()
}
