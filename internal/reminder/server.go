package reminder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "reminder"
	serverVersion = "1.0.0"
)

// Server exposes a Service as MCP tools.
type Server struct {
	mcpServer *server.MCPServer
	service   *Service
}

// NewServer creates a Reminder MCP server backed by the given service.
func NewServer(service *Service) *Server {
	s := &Server{
		service: service,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("add_reminder",
			mcp.WithDescription("Add a reminder for today with a start time, end time and description"),
			mcp.WithString("start", mcp.Required(), mcp.Description("Start time, HH:MM")),
			mcp.WithString("end", mcp.Required(), mcp.Description("End time, HH:MM")),
			mcp.WithString("description", mcp.Required(), mcp.Description("What to do")),
		),
		s.handleAddReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("list_reminders",
			mcp.WithDescription("List today's pending reminders with their 1-based index"),
		),
		s.handleListReminders,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("complete_reminder",
			mcp.WithDescription("Mark the pending reminder at the given 1-based index as done"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("1-based index from list_reminders")),
		),
		s.handleCompleteReminder,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("check_due",
			mcp.WithDescription("Show pending reminders starting or ending at a given minute (default: now)"),
			mcp.WithString("time", mcp.Description("Optional HH:MM today; defaults to the current minute")),
		),
		s.handleCheckDue,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("reset_day",
			mcp.WithDescription("Delete every reminder, pending and done"),
		),
		s.handleResetDay,
	)
}

type listedReminder struct {
	Index       int    `json:"index"`
	Window      string `json:"window"`
	Description string `json:"description"`
}

func (s *Server) handleAddReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	added, err := s.service.Create(ctx,
		req.GetString("start", ""),
		req.GetString("end", ""),
		req.GetString("description", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add reminder: %v", err)), nil
	}

	output, _ := json.MarshalIndent(added, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListReminders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pending, err := s.service.ListPending(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list reminders: %v", err)), nil
	}

	if len(pending) == 0 {
		return mcp.NewToolResultText("No pending reminders."), nil
	}

	listed := make([]listedReminder, len(pending))
	for i, r := range pending {
		listed[i] = listedReminder{Index: i + 1, Window: r.Window(), Description: r.Description}
	}

	output, _ := json.MarshalIndent(listed, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleCompleteReminder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := req.GetFloat("index", 0)
	if raw != math.Trunc(raw) {
		return mcp.NewToolResultError(fmt.Sprintf("index must be a whole number, got %v", raw)), nil
	}
	index := int(raw)

	done, err := s.service.Complete(ctx, index)
	if err != nil {
		if errors.Is(err, ErrIndex) {
			return mcp.NewToolResultError(fmt.Sprintf("no pending reminder at index %d", index)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to complete reminder: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Reminder %d (%s) marked as done.", index, done)), nil
}

func (s *Server) handleCheckDue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	at := s.service.Now()
	if v := req.GetString("time", ""); v != "" {
		t, err := onDay(at, v)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid time: %v", err)), nil
		}
		at = t
	}

	due, err := s.service.CheckDue(ctx, at)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to check due reminders: %v", err)), nil
	}

	if len(due) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("Nothing due at %s.", at.Format(TimeLayout))), nil
	}

	output, _ := json.MarshalIndent(due, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleResetDay(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	n, err := s.service.ResetDay(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to reset reminders: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Removed %d reminders.", n)), nil
}
