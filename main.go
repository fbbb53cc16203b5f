package main

import (
	"flag"
	"fmt"
	"os"
	"posterd/internal/di"
	"posterd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the YAML config file")
	flag.StringVar(&flags.EnvPath, "env", ".env", "path to an optional .env file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "mirror logs to stdout")
	flag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(flags *structures.CliFlags) error {
	app, err := di.InitApp(flags)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	defer app.Close()

	return app.Run()
}
