package main

import (
	"os"

	"github.com/pterm/pterm"

	"github.com/tomate-app/tomate/app"
	"github.com/tomate-app/tomate/internal/logutil"
	"github.com/tomate-app/tomate/internal/pathutil"
)

func run(args []string) error {
	err := pathutil.Initialize()
	if err != nil {
		return err
	}

	logutil.Init(pathutil.LogFilePath())

	return app.Get().Run(args)
}

func main() {
	err := run(os.Args)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}
