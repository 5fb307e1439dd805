package logfields

import "log/slog"

// Canonical log field names shared by all packages.
const (
	KeyTaskID    = "task_id"
	KeyTaskName  = "task_name"
	KeyTaskType  = "task_type"
	KeyPath      = "path"
	KeyFormat    = "format"
	KeyCommand   = "command"
	KeySeconds   = "seconds"
	KeyTaskCount = "task_count"
	KeyError     = "error"
)

func TaskID(id int) slog.Attr         { return slog.Int(KeyTaskID, id) }
func TaskName(n string) slog.Attr     { return slog.String(KeyTaskName, n) }
func TaskType(t string) slog.Attr     { return slog.String(KeyTaskType, t) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Format(f string) slog.Attr       { return slog.String(KeyFormat, f) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func Seconds(s int64) slog.Attr       { return slog.Int64(KeySeconds, s) }
func TaskCount(n int) slog.Attr       { return slog.Int(KeyTaskCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
