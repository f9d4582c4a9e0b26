package main

import (
	"fmt"
	"os"

	uierrs "github.com/cppforlife/go-cli-ui/errors"

	"github.com/benjaminschreck/go-cardstencil/pkg/cmd"
)

func main() {
	command := cmd.NewDefaultCardstencilCmd()

	err := command.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cardstencil: Error: %s\n", uierrs.NewMultiLineError(err))
		os.Exit(1)
	}
}
