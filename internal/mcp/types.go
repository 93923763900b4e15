package mcp

// TrayInput is the (empty) input shared by the tray tools.
type TrayInput struct{}

// TrayOutput reports what was sent to the daemon and what it answered.
type TrayOutput struct {
	Command string `json:"command"`
	Reply   string `json:"reply"`
}
