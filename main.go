package main

import (
	"os"
	"runtime/debug"

	"github.com/Tmalone1250/mtk-sale/cmd"
	"github.com/Tmalone1250/mtk-sale/logx"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			_ = logx.Errorf("CLI CRASHED: %v\n%s", r, debug.Stack())
			os.Exit(1)
		}
	}()

	cmd.Execute()
}
