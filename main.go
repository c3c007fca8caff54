package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oakwood-commons/pickx/cmd"
	"github.com/oakwood-commons/pickx/pkg/logger"
	"github.com/oakwood-commons/pickx/pkg/prompt"
)

func main() {
	err := cmd.Execute()
	if err != nil && !errors.Is(err, prompt.ErrCanceled) && !errors.Is(err, cmd.ErrEmptyResult) {
		fmt.Fprintln(os.Stderr, err)
	}

	logger.Sync()
	if code := cmd.ExitCode(err); code != 0 {
		os.Exit(code)
	}
}
