package console

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/unclebandit/simple-crm/internal/form"
	"github.com/unclebandit/simple-crm/internal/listing"
	"github.com/unclebandit/simple-crm/internal/model"
)

const helpText = `Commands:
  list                      show the current page
  filter <All|Lead|Active|Inactive>
  search [text]             search name or email, empty clears
  next | prev               change page
  status <id> <status>      update a customer's status
  delete <id>               delete a customer
  refresh                   reload customers from the server
  events <id>               show a customer's activity
  set <name|email|phone> <value>
  draft                     show the new-customer draft
  submit                    create a customer from the draft
  add                       fill in the draft interactively and submit
  help | quit
`

// ActivitySource fetches a customer's activity log.
type ActivitySource interface {
	ListActivity(ctx context.Context, id int) ([]model.ActivityEntry, error)
}

// App wires the form and the list screen to a Console.
type App struct {
	Console  *Console
	Form     *form.Form
	List     *listing.List
	Activity ActivitySource
	// Prompt is printed before each command when non-empty.
	Prompt string
}

// Run loads the list and executes commands until quit or end of input.
func (a *App) Run(ctx context.Context) error {
	if err := a.List.Refresh(ctx); err == nil {
		a.render()
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line, ok := a.Console.Ask(a.Prompt)
		if !ok {
			return nil
		}
		if quit := a.Exec(ctx, line); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the user asked to quit.
func (a *App) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		a.Console.Printf("%s", helpText)
	case "list", "ls":
		a.render()
	case "refresh":
		if err := a.List.Refresh(ctx); err == nil {
			a.render()
		}
	case "filter":
		a.filter(args)
	case "search":
		a.List.SetSearch(strings.Join(args, " "))
		a.render()
	case "next":
		if a.List.NextPage() {
			a.render()
		} else {
			a.Console.Error("already on the last page")
		}
	case "prev":
		if a.List.PrevPage() {
			a.render()
		} else {
			a.Console.Error("already on the first page")
		}
	case "status":
		a.changeStatus(ctx, args)
	case "delete", "rm":
		a.delete(ctx, args)
	case "events":
		a.events(ctx, args)
	case "set":
		a.set(args)
	case "draft":
		a.draft()
	case "submit":
		a.submit(ctx)
	case "add":
		a.add(ctx)
	default:
		a.Console.Error("unknown command " + strconv.Quote(cmd) + ", type help")
	}
	return false
}

func (a *App) render() {
	a.Console.RenderPage(a.List.View(), a.List.Filter(), a.List.Search())
}

func (a *App) filter(args []string) {
	if len(args) != 1 {
		a.Console.Error("usage: filter <All|Lead|Active|Inactive>")
		return
	}
	f, err := listing.ParseFilter(args[0])
	if err != nil {
		a.Console.Error(err.Error())
		return
	}
	a.List.SetFilter(f)
	a.render()
}

func (a *App) changeStatus(ctx context.Context, args []string) {
	if len(args) != 2 {
		a.Console.Error("usage: status <id> <Lead|Active|Inactive>")
		return
	}
	id, ok := a.parseID(args[0])
	if !ok {
		return
	}
	status, err := model.ParseStatus(normalizeStatus(args[1]))
	if err != nil {
		a.Console.Error(err.Error())
		return
	}
	if sent, err := a.List.ChangeStatus(ctx, id, status); sent && err == nil {
		a.render()
	}
}

func (a *App) delete(ctx context.Context, args []string) {
	if len(args) != 1 {
		a.Console.Error("usage: delete <id>")
		return
	}
	id, ok := a.parseID(args[0])
	if !ok {
		return
	}
	if sent, err := a.List.Delete(ctx, id); sent && err == nil {
		a.render()
	}
}

func (a *App) events(ctx context.Context, args []string) {
	if a.Activity == nil {
		a.Console.Error("activity log is not available")
		return
	}
	if len(args) != 1 {
		a.Console.Error("usage: events <id>")
		return
	}
	id, ok := a.parseID(args[0])
	if !ok {
		return
	}
	entries, err := a.Activity.ListActivity(ctx, id)
	if err != nil {
		a.Console.Error("Error loading activity: " + err.Error())
		return
	}
	a.Console.RenderActivity(entries)
}

func (a *App) set(args []string) {
	if len(args) < 2 {
		a.Console.Error("usage: set <name|email|phone> <value>")
		return
	}
	if err := a.Form.SetField(args[0], strings.Join(args[1:], " ")); err != nil {
		a.Console.Error(err.Error())
	}
}

func (a *App) draft() {
	d := a.Form.Draft()
	a.Console.Printf("name:  %s\nemail: %s\nphone: %s\n", d.Name, d.Email, d.Phone)
}

func (a *App) submit(ctx context.Context) {
	if _, err := a.Form.Submit(ctx); errors.Is(err, form.ErrSubmitInFlight) {
		a.Console.Error(err.Error())
	}
}

func (a *App) add(ctx context.Context) {
	for _, field := range []string{"name", "email", "phone"} {
		value, ok := a.Console.Ask(strings.ToUpper(field[:1]) + field[1:] + ": ")
		if !ok {
			return
		}
		if value == "" {
			continue
		}
		// field names are fixed above
		_ = a.Form.SetField(field, value)
	}
	a.submit(ctx)
}

func (a *App) parseID(raw string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		a.Console.Error("invalid customer id " + strconv.Quote(raw))
		return 0, false
	}
	return id, true
}

// normalizeStatus lets users type statuses in any case.
func normalizeStatus(raw string) string {
	for _, s := range model.Statuses {
		if strings.EqualFold(raw, string(s)) {
			return string(s)
		}
	}
	return raw
}
