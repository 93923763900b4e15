package control

import "unicode/utf8"

// Command is a request frame understood by the control server.
type Command string

const (
	CommandShow   Command = "show"
	CommandHide   Command = "hide"
	CommandToggle Command = "toggle"
	CommandQuit   Command = "quit"
)

// Replies sent back for every request frame.
const (
	ReplyOK  = "ok"
	ReplyErr = "err"
)

// Commands lists every command in the order the CLI documents them.
var Commands = []Command{CommandShow, CommandHide, CommandToggle, CommandQuit}

// ParseCommand returns the command named by name, if any.
func ParseCommand(name string) (Command, bool) {
	for _, c := range Commands {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// decodeFrame validates a request frame. Frames that are not valid UTF-8
// are rejected; any other text is returned as-is, known command or not.
func decodeFrame(frame []byte) (string, bool) {
	if !utf8.Valid(frame) {
		return "", false
	}
	return string(frame), true
}
