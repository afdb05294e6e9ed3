package console

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
)

func (c *Console) readInput() (string, error) {
	line, err := c.rl.Readline()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func setupReadline(historyFile string) (*readline.Instance, error) {
	completer := readline.NewPrefixCompleter(
		readline.PcItem("/add"),
		readline.PcItem("/list"),
		readline.PcItem("/done"),
		readline.PcItem("/start"),
		readline.PcItem("/help"),
		readline.PcItem("/quit"),
	)

	return readline.NewEx(&readline.Config{
		Prompt:              "remind > ",
		HistoryFile:         historyFile,
		AutoComplete:        completer,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt
}
