package mcp

import (
	"context"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/traydock/internal/control"
)

const (
	ServerName    = "traydock"
	ServerVersion = "0.1.0"
)

// Sender delivers one control command to the daemon. *control.Client
// satisfies it.
type Sender interface {
	Send(ctx context.Context, cmd control.Command) (string, error)
}

// Server exposes the tray's control commands as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	sender    Sender
	logger    *slog.Logger
}

func NewServer(sender Sender, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		sender: sender,
		logger: logger,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "show_tray",
		Description: "Map the tray window so the docked icons are visible.",
	}, s.commandHandler(control.CommandShow))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "hide_tray",
		Description: "Unmap the tray window. Docked icons stay embedded.",
	}, s.commandHandler(control.CommandHide))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_tray",
		Description: "Hide the tray if it is on screen, otherwise bring it into view. A tray mapped on another desktop is remapped.",
	}, s.commandHandler(control.CommandToggle))

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "quit_tray",
		Description: "Destroy the tray window and stop the daemon. Docked icons are returned to the root window.",
	}, s.commandHandler(control.CommandQuit))
}
