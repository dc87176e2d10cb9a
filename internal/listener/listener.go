package listener

import (
	"fmt"
	"sync"

	"github.com/chzyer/readline"
)

var rl *readline.Instance
var mu sync.Mutex

func Init() error {
	var err error
	rl, err = readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "",
		EOFPrompt:       "",
	})
	return err
}

func Close() {
	if rl != nil {
		_ = rl.Close()
	}
}

// GetInput blocks for one line of input. Returns ok=false once the
// terminal is closed or interrupted.
func GetInput() (string, bool) {
	if rl == nil {
		return "", false
	}
	line, err := rl.Readline()
	if err != nil {
		return "", false
	}
	return line, true
}

// Println writes above the prompt without breaking the current input line.
func Println(s string) {
	mu.Lock()
	defer mu.Unlock()
	if rl == nil {
		fmt.Println(s)
		return
	}
	_, _ = rl.Write([]byte("\r\n" + s + "\r\n"))
	rl.Refresh()
}
