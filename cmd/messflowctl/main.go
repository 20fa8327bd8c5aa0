package main

import (
	"os"

	"github.com/algoplusmessflow-tech/Messflow-sub001/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
