// Package mcpserver exposes the task queue, the schedule and the timer as
// MCP tools so an assistant can plan a day over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/sadopc/timefocus/internal/app"
	"github.com/sadopc/timefocus/internal/export"
	"github.com/sadopc/timefocus/internal/queue"
	"github.com/sadopc/timefocus/internal/schedule"
	"github.com/sadopc/timefocus/internal/timer"
)

const (
	Name    = "TimeFocus"
	Version = "0.1.0"
)

// NewServer registers every tool against a.
func NewServer(a *app.App) *server.MCPServer {
	s := server.NewMCPServer(Name, Version)

	// Task queue
	s.AddTool(mcp.NewTool("list_tasks",
		mcp.WithDescription("List the task queue in order."),
		mcp.WithBoolean("include_completed", mcp.Description("Include completed tasks (default true)")),
	), listTasksHandler(a))

	s.AddTool(mcp.NewTool("add_task",
		mcp.WithDescription("Append a task to the queue."),
		mcp.WithString("description", mcp.Description("Task description"), mcp.Required()),
		mcp.WithNumber("sessions", mcp.Description("Pomodoro sessions (1-10, default 1)")),
	), addTaskHandler(a))

	s.AddTool(mcp.NewTool("import_tasks",
		mcp.WithDescription(`Import one task per line. Lines look like "Write report 2", "Write report [2]" or "2 Write report"; a line without a count gets 1 session.`),
		mcp.WithString("text", mcp.Description("Newline-separated tasks"), mcp.Required()),
	), importTasksHandler(a))

	s.AddTool(mcp.NewTool("breakdown_task",
		mcp.WithDescription("Split a multi-session task into one-session parts."),
		mcp.WithString("task", mcp.Description("Task id or 1-based position"), mcp.Required()),
	), breakdownTaskHandler(a))

	s.AddTool(mcp.NewTool("toggle_task",
		mcp.WithDescription("Toggle a task's completed flag: mark an open task done, or reopen a completed one."),
		mcp.WithString("task", mcp.Description("Task id or 1-based position"), mcp.Required()),
	), toggleTaskHandler(a))

	s.AddTool(mcp.NewTool("move_task",
		mcp.WithDescription("Reorder a task."),
		mcp.WithString("task", mcp.Description("Task id or 1-based position"), mcp.Required()),
		mcp.WithString("direction", mcp.Description("up|down|top|bottom"), mcp.Required()),
	), moveTaskHandler(a))

	s.AddTool(mcp.NewTool("delete_task",
		mcp.WithDescription("Remove a task from the queue."),
		mcp.WithString("task", mcp.Description("Task id or 1-based position"), mcp.Required()),
	), deleteTaskHandler(a))

	// Schedule
	s.AddTool(mcp.NewTool("get_schedule",
		mcp.WithDescription("Project when each active task will run, with totals and the completion time."),
		mcp.WithString("start", mcp.Description("Start time HH:MM (defaults to the saved start time)")),
		mcp.WithString("format", mcp.Description("json|yaml|csv|text (default json)")),
	), getScheduleHandler(a))

	s.AddTool(mcp.NewTool("set_start_time",
		mcp.WithDescription("Save the schedule start time."),
		mcp.WithString("start", mcp.Description(`Start time HH:MM, or "now"`), mcp.Required()),
	), setStartTimeHandler(a))

	// Timer
	s.AddTool(mcp.NewTool("timer_status",
		mcp.WithDescription("Report the timer state, session type and time remaining."),
	), timerStatusHandler(a))

	s.AddTool(mcp.NewTool("start_timer",
		mcp.WithDescription("Start or resume the timer."),
	), startTimerHandler(a))

	s.AddTool(mcp.NewTool("pause_timer",
		mcp.WithDescription("Pause a running timer."),
	), pauseTimerHandler(a))

	s.AddTool(mcp.NewTool("reset_timer",
		mcp.WithDescription("Stop the timer and restore the full session length."),
	), resetTimerHandler(a))

	return s
}

// Serve runs s over r and w until ctx is cancelled or r is closed.
func Serve(ctx context.Context, s *server.MCPServer, r io.Reader, w io.Writer) error {
	return server.NewStdioServer(s).Listen(ctx, r, w)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ============================================================
// Task handlers
// ============================================================

func listTasksHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeCompleted := mcp.ParseBoolean(request, "include_completed", true)
		tasks := a.Tasks()
		if !includeCompleted {
			tasks = queue.Active(tasks)
		}
		if tasks == nil {
			tasks = []queue.Task{}
		}
		return jsonResult(map[string]any{"tasks": tasks})
	}
}

func addTaskHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		description := mcp.ParseString(request, "description", "")
		sessions := mcp.ParseInt(request, "sessions", 1)

		t, err := a.AddTask(description, sessions)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(t)
	}
}

func importTasksHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text := mcp.ParseString(request, "text", "")

		lines, added, err := a.ImportText(text)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		var rejected []queue.ParsedLine
		for _, l := range lines {
			if !l.Valid {
				rejected = append(rejected, l)
			}
		}
		if len(added) == 0 {
			return mcp.NewToolResultError("no valid tasks found"), nil
		}
		return jsonResult(map[string]any{"imported": added, "rejected": rejected})
	}
}

func breakdownTaskHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t, err := a.FindTask(mcp.ParseString(request, "task", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		parts, err := a.BreakdownTask(t.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(map[string]any{"parts": parts})
	}
}

func toggleTaskHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t, err := a.FindTask(mcp.ParseString(request, "task", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		updated, err := a.ToggleTask(t.ID)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return jsonResult(updated)
	}
}

func moveTaskHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dir, ok := queue.ParseDirection(mcp.ParseString(request, "direction", ""))
		if !ok {
			return mcp.NewToolResultError("direction must be one of up, down, top, bottom"), nil
		}
		t, err := a.FindTask(mcp.ParseString(request, "task", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := a.MoveTask(t.ID, dir); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Moved '%s' %s.", t.Description, dir)), nil
	}
}

func deleteTaskHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		t, err := a.FindTask(mcp.ParseString(request, "task", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := a.DeleteTask(t.ID); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Deleted '%s'.", t.Description)), nil
	}
}

// ============================================================
// Schedule handlers
// ============================================================

func getScheduleHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		format, err := export.ParseFormat(mcp.ParseString(request, "format", "json"))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		sched := a.Schedule()
		if start := mcp.ParseString(request, "start", ""); start != "" {
			tod, err := schedule.ParseTimeOfDay(start)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			sched = a.ScheduleFrom(tod)
		}

		var b strings.Builder
		if err := export.Write(&b, format, sched, a.Now()); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(b.String()), nil
	}
}

func setStartTimeHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := mcp.ParseString(request, "start", "")
		if strings.EqualFold(strings.TrimSpace(start), "now") {
			tod, err := a.StartNow()
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return mcp.NewToolResultText("Start time set to " + tod.String()), nil
		}
		tod, err := schedule.ParseTimeOfDay(start)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := a.SetStartTime(tod); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText("Start time set to " + tod.String()), nil
	}
}

// ============================================================
// Timer handlers
// ============================================================

type timerView struct {
	State             string  `json:"state"`
	Session           string  `json:"session"`
	Remaining         string  `json:"remaining"`
	RemainingSeconds  int     `json:"remainingSeconds"`
	CompletedSessions int     `json:"completedSessions"`
	Progress          float64 `json:"progress"`
	CurrentTask       string  `json:"currentTask,omitempty"`
}

func viewOf(st app.TimerStatus) timerView {
	return timerView{
		State:             st.State.String(),
		Session:           string(st.Session),
		Remaining:         timer.FormatClock(st.RemainingSeconds),
		RemainingSeconds:  st.RemainingSeconds,
		CompletedSessions: st.CompletedSessions,
		Progress:          st.Progress,
		CurrentTask:       st.CurrentTask,
	}
}

func timerStatusHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(viewOf(a.TimerStatus()))
	}
}

func startTimerHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a.StartTimer()
		return jsonResult(viewOf(a.TimerStatus()))
	}
}

func pauseTimerHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a.PauseTimer()
		return jsonResult(viewOf(a.TimerStatus()))
	}
}

func resetTimerHandler(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		a.ResetTimer()
		return jsonResult(viewOf(a.TimerStatus()))
	}
}
