package terminal

var NewTerminalPrompterWith = newTerminalPrompter //nolint:gochecknoglobals // test export
