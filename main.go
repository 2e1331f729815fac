package main

import (
	"embed"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/abiiranathan/docsearch/cli"
	"github.com/abiiranathan/docsearch/server"
)

//go:embed all:templates
var viewsFs embed.FS

//go:embed static
var staticFs embed.FS

// Default configuration for the CLI
var config = &cli.DefaultConfig

var log = logrus.New()

func startServer() {
	if err := server.Run(config, viewsFs, staticFs, log); err != nil {
		log.Fatalln(err)
	}
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(os.Getenv("DOCSEARCH_LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	// The file and the environment are loaded before parsing so that
	// flags win over both.
	path, explicit := cli.ConfigPath(os.Args[1:])
	if err := cli.Load(config, path, explicit); err != nil {
		log.Fatalln(err)
	}

	// Parse the command line arguments
	ctx := cli.DefineFlags(config, log, startServer)
	subcmd, err := ctx.Parse(os.Args)
	if err != nil {
		log.Fatalln(err)
	}

	// If the subcommand is nil, print the usage and exit
	if subcmd == nil {
		ctx.PrintUsage(os.Stdout)
		os.Exit(1)
	}

	if err := config.Validate(); err != nil {
		log.Fatalln(err)
	}

	// Run the subcommand
	subcmd.Handler()
}
