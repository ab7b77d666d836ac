// internal/console/router.go
//
// 本檔負責指令路由：將指令名稱對應到 handler，並檢查參數個數。
// 與 handler.go 分離：handler 定義「如何處理指令」，router 定義「指令如何被導向」。
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// secrets 為可省略的尾端參數（密碼）；省略時改由 Console 提示輸入，避免留在 shell 歷史與 ps 中。
type command struct {
	usage   string
	args    int
	secrets []string
	run     func(c *Console, ctx context.Context, args []string) error
}

type namedCommand struct {
	name string
	command
}

// commands 依 help 顯示順序排列。help 本身會讀取此表，因此在 init 中建立。
var commands []namedCommand

func init() {
	commands = []namedCommand{
		{"create", command{"create <owner> <balance> [<password> <confirm>]", 4, []string{"password", "confirm"}, (*Console).create}},
		{"show", command{"show <owner>", 1, nil, (*Console).show}},
		{"list", command{"list", 0, nil, (*Console).list}},
		{"deposit", command{"deposit <owner> <amount>", 2, nil, (*Console).deposit}},
		{"withdraw", command{"withdraw <owner> <amount> [<password>]", 3, []string{"password"}, (*Console).withdraw}},
		{"transfer", command{"transfer <from> <to> <amount> [<password>]", 4, []string{"password"}, (*Console).transfer}},
		{"delete", command{"delete <owner> [<password>]", 2, []string{"password"}, (*Console).remove}},
		{"stats", command{"stats", 0, nil, (*Console).stats}},
		{"export", command{"export <file>", 1, nil, (*Console).export}},
		{"import", command{"import <file>", 1, nil, (*Console).importFile}},
		{"help", command{"help", 0, nil, (*Console).help}},
	}
}

func lookup(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c.command, true
		}
	}
	return command{}, false
}

// Exec 執行單一指令（例如 os.Args[1:]）。錯誤會寫到輸出並原樣回傳，供呼叫端決定結束碼。
func (c *Console) Exec(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return nil
	}
	name := strings.ToLower(argv[0])
	cmd, ok := lookup(name)
	if !ok {
		err := fmt.Errorf("%w: %q", errUnknownCommand, argv[0])
		writeErr(c.out, err)
		return err
	}
	args := argv[1:]
	if len(args) == cmd.args-len(cmd.secrets) && len(cmd.secrets) > 0 && c.ask != nil {
		for _, label := range cmd.secrets {
			v, err := c.ask(label)
			if err != nil {
				err = fmt.Errorf("read %s: %w", label, err)
				writeErr(c.out, err)
				return err
			}
			args = append(args, v)
		}
	}
	if len(args) != cmd.args {
		err := fmt.Errorf("%w: %s", errUsage, cmd.usage)
		writeErr(c.out, err)
		return err
	}
	if err := cmd.run(c, ctx, args); err != nil {
		writeErr(c.out, err)
		return err
	}
	return nil
}

// PromptFrom 讓省略的密碼參數改由 in 逐行讀取（單一指令模式使用）。
func (c *Console) PromptFrom(in io.Reader) {
	sc := bufio.NewScanner(in)
	c.ask = scanAsker(c.out, sc)
}

func scanAsker(out io.Writer, sc *bufio.Scanner) func(string) (string, error) {
	return func(label string) (string, error) {
		fmt.Fprintf(out, "%s: ", label)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		return strings.TrimSpace(sc.Text()), nil
	}
}

// Run 逐行讀取 in 並執行指令，直到 EOF、quit/exit 或 ctx 取消。
// 省略的密碼參數會從同一個輸入讀取下一行。
// 單一指令失敗不會中止工作階段；只有讀取錯誤或 ctx 取消會回傳錯誤。
func (c *Console) Run(ctx context.Context, in io.Reader, prompt bool) error {
	sc := bufio.NewScanner(in)
	c.ask = scanAsker(c.out, sc)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if prompt {
			fmt.Fprint(c.out, "> ")
		}
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		argv := strings.Fields(line)
		switch strings.ToLower(argv[0]) {
		case "quit", "exit":
			return nil
		}
		if err := c.Exec(ctx, argv); err != nil && errors.Is(err, context.Canceled) {
			return err
		}
	}
}
