package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/traydock/internal/control"
)

func (s *Server) commandHandler(cmd control.Command) mcpsdk.ToolHandlerFor[TrayInput, TrayOutput] {
	return func(ctx context.Context, _ *mcpsdk.CallToolRequest, _ TrayInput) (*mcpsdk.CallToolResult, TrayOutput, error) {
		out := TrayOutput{Command: string(cmd)}

		reply, err := s.sender.Send(ctx, cmd)
		if err != nil {
			s.logger.Warn("mcp: control request failed", "command", cmd, "error", err)
			return nil, out, fmt.Errorf("failed to send %s: %w", cmd, err)
		}
		out.Reply = reply
		if reply != control.ReplyOK {
			return nil, out, fmt.Errorf("daemon rejected %s: %s", cmd, reply)
		}

		s.logger.Debug("mcp: control request sent", "command", cmd)
		return &mcpsdk.CallToolResult{
			Content: []mcpsdk.Content{
				&mcpsdk.TextContent{Text: fmt.Sprintf("Sent %s to the tray daemon", cmd)},
			},
		}, out, nil
	}
}
