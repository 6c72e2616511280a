package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskcal/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeSmart  Type = "smart"
	TypeGoto   Type = "goto"
	TypeDone   Type = "done"
	TypeRemove Type = "rm"
	TypeExport Type = "export"
	TypeClear  Type = "clear"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Title    string
	Date     string
	Time     string
	HasAlarm bool
}

type SmartArgs struct {
	Text string
}

// GotoArgs names the month to display. Today is set for "goto today".
type GotoArgs struct {
	Today bool
	Year  int
	Month time.Month
}

type TargetArgs struct {
	ID string
}

type ExportArgs struct {
	Path string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Smart  *SmartArgs
	Goto   *GotoArgs
	Target *TargetArgs
	Export *ExportArgs
}

// Usage lists the palette commands, one per line.
var Usage = []string{
	"add <YYYY-MM-DD> [HH:mm] [!] <title>",
	"smart <text>",
	"goto <YYYY-MM|today>",
	"done <id>",
	"rm <id>",
	"export <path.ics>",
	"clear",
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeSmart:
		text := strings.TrimSpace(strings.Join(args, " "))
		if text == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "smart requires text"}
		}
		return Command{Type: TypeSmart, Raw: input, Smart: &SmartArgs{Text: text}}, nil
	case TypeGoto:
		return parseGoto(input, args)
	case TypeDone, TypeRemove:
		if len(args) != 1 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires one task id", head)}
		}
		return Command{Type: Type(head), Raw: input, Target: &TargetArgs{ID: args[0]}}, nil
	case TypeExport:
		path := strings.TrimSpace(strings.Join(args, " "))
		if path == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "export requires a file path"}
		}
		return Command{Type: TypeExport, Raw: input, Export: &ExportArgs{Path: path}}, nil
	case TypeClear:
		if len(args) != 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear takes no arguments"}
		}
		return Command{Type: TypeClear, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a date and a title"}
	}
	draft := model.Task{Date: args[0]}
	rest := args[1:]
	if len(rest) > 0 && strings.Contains(rest[0], ":") {
		draft.Time = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 && rest[0] == "!" {
		draft.HasAlarm = true
		rest = rest[1:]
	}
	draft.Title = strings.TrimSpace(strings.Join(rest, " "))
	if err := draft.Validate(); err != nil {
		return Command{}, addError(draft, err)
	}
	if draft.HasAlarm && draft.Time == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "an alarm needs a time"}
	}
	clock, err := model.NormalizeClock(draft.Time)
	if err != nil {
		return Command{}, addError(draft, err)
	}
	add := &AddArgs{Title: draft.Title, Date: draft.Date, Time: clock, HasAlarm: draft.HasAlarm}
	return Command{Type: TypeAdd, Raw: raw, Add: add}, nil
}

func addError(draft model.Task, err error) *CommandError {
	switch {
	case errors.Is(err, model.ErrInvalidDate):
		return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid date %q, want YYYY-MM-DD", draft.Date)}
	case errors.Is(err, model.ErrInvalidClock):
		return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid time %q, want HH:mm", draft.Time)}
	case errors.Is(err, model.ErrMissingTitle):
		return &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	default:
		return &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
}

func parseGoto(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "goto requires YYYY-MM or today"}
	}
	if strings.EqualFold(args[0], "today") {
		return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Today: true}}, nil
	}
	month, err := time.Parse("2006-01", args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid month %q, want YYYY-MM", args[0])}
	}
	return Command{Type: TypeGoto, Raw: raw, Goto: &GotoArgs{Year: month.Year(), Month: month.Month()}}, nil
}
