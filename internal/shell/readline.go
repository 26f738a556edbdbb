package shell

import "github.com/chzyer/readline"

// NewReadline returns a line editor with history and command completion.
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "travel> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("login"),
			readline.PcItem("register"),
			readline.PcItem("logout"),
			readline.PcItem("list"),
			readline.PcItem("add"),
			readline.PcItem("delete"),
			readline.PcItem("update", readline.PcItem("poster_url="), readline.PcItem("activities="),
				readline.PcItem("accommodations="), readline.PcItem("transportation=")),
			readline.PcItem("select"),
			readline.PcItem("show"),
			readline.PcItem("help"),
			readline.PcItem("exit"),
		),
	})
}
