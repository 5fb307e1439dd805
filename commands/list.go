package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tasktimer/storage"
	"tasktimer/tracker"
)

// LastRunLayout renders the last-run timestamp in listings.
const LastRunLayout = "02/01/2006 15:04:05"

// ListTasks prints the tasks of the selected type followed by their total.
// Without all only running tasks are shown.
func ListTasks(ctx context.Context, env *Env, all, lastRun bool) error {
	return env.Tracker.View(ctx, env.TaskType, func(e *tracker.Engine) error {
		PrintEntries(env.Out, e.Entries(all), all, lastRun)
		return nil
	})
}

// PrintEntries writes one line per entry and a total line. Running tasks
// are prefixed with #.
func PrintEntries(w io.Writer, entries []storage.Entry, all, lastRun bool) {
	if len(entries) == 0 {
		if all {
			fmt.Fprintln(w, "There are no tasks.")
		} else {
			fmt.Fprintln(w, "There are no running tasks.")
		}
		return
	}
	for _, entry := range entries {
		fmt.Fprintln(w, entryLine(entry, lastRun))
	}
	fmt.Fprintf(w, "\nTotal: %s\n", storage.FormatDuration(storage.TotalDisplayed(entries)))
}

func entryLine(entry storage.Entry, lastRun bool) string {
	var b strings.Builder
	if entry.Running {
		b.WriteByte('#')
	}
	fmt.Fprintf(&b, "[%d] '%s': %s", entry.ID, entry.Name, storage.FormatDuration(entry.Displayed))
	if lastRun && entry.LastRun != nil {
		fmt.Fprintf(&b, " - Last time: %s", entry.LastRun.Local().Format(LastRunLayout))
	}
	return b.String()
}

func init() {
	Register(&Command{
		Name:        "/list",
		Description: "List running tasks, -a lists all of them, -l shows when each last ran",
		Params: []Param{
			{Name: "-a", Type: ParamTypeString, Description: "List all tasks"},
			{Name: "-l", Type: ParamTypeString, Description: "Show the last run timestamp"},
		},
		Handler: func(ctx context.Context, env *Env, args []string) (bool, error) {
			var all, lastRun bool
			for _, arg := range args {
				switch arg {
				case "-a", "--all":
					all = true
				case "-l", "--last-run":
					lastRun = true
				case "-al", "-la":
					all, lastRun = true, true
				default:
					return false, usageError("/list")
				}
			}
			return false, ListTasks(ctx, env, all, lastRun)
		},
	})
}
