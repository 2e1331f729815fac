package cli

import (
	"context"
	"os"

	"github.com/abiiranathan/goflag"
	"github.com/sirupsen/logrus"
)

func DefineFlags(config *Config, log *logrus.Logger, runserver func()) *goflag.Context {
	// Flags required by multiple subcomands
	backendFlag := goflag.Flag{
		FlagType:  goflag.FlagString,
		Name:      "backend",
		ShortName: "b",
		Value:     &config.BackendURL,
		Usage:     "Base url of the upload/search backend",
		Required:  false,
		Validator: nil,
	}

	pageSizeFlag := goflag.Flag{
		FlagType:  goflag.FlagInt,
		Name:      "page-size",
		ShortName: "s",
		Value:     &config.PageSize,
		Usage:     "Results per page",
		Required:  false,
		Validator: nil,
	}

	uploadsFlag := goflag.Flag{
		FlagType:  goflag.FlagString,
		Name:      "uploads",
		ShortName: "u",
		Value:     &config.UploadDir,
		Usage:     "Directory holding uploaded documents",
		Required:  false,
		Validator: nil,
	}

	databaseFlag := goflag.Flag{
		FlagType:  goflag.FlagString,
		Name:      "database",
		ShortName: "d",
		Value:     &config.Database,
		Usage:     "sqlite file caching extracted text",
		Required:  false,
		Validator: nil,
	}

	// Create flag context.
	ctx := goflag.NewContext()

	// global flags
	ctx.AddFlag(goflag.FlagString, "config", "C",
		&config.ConfigFile,
		"yaml configuration file (default docsearch.yaml when present)", false)

	ctx.AddFlag(goflag.FlagInt, "concurrency", "c",
		&config.MaxConcurrency,
		"No of documents extracted at once",
		false, goflag.Min(1), goflag.Max(100))

	// register subcommands
	ctx.AddSubCommand("runserver", "Start the backend api and the web interface", runserver).
		AddFlag(goflag.FlagInt, "port", "p", &config.Port, "The port to run the server on", false).
		AddFlagPtr(&uploadsFlag).
		AddFlagPtr(&databaseFlag).
		AddFlagPtr(&backendFlag).
		AddFlagPtr(&pageSizeFlag)

	ctx.AddSubCommand("upload", "Upload pdf/docx files to the backend", func() {
		if err := Upload(context.Background(), config, os.Stdout, log); err != nil {
			log.Fatalln(err)
		}
	}).AddFlag(goflag.FlagString, "files", "f", &config.Files, "Comma separated files to upload", true).
		AddFlagPtr(&backendFlag)

	ctx.AddSubCommand("search", "Search the uploaded documents for a keyword", func() {
		if err := Search(context.Background(), config, os.Stdout, log); err != nil {
			log.Fatalln(err)
		}
	}).AddFlag(goflag.FlagString, "query", "q", &config.Query, "The keyword to search for", true).
		AddFlag(goflag.FlagString, "choice", "o", &config.Choice, "Document to search or all", false).
		AddFlag(goflag.FlagInt, "page", "n", &config.Page, "Page of results to print", false).
		AddFlagPtr(&pageSizeFlag).
		AddFlagPtr(&backendFlag)

	ctx.AddSubCommand("tui", "Interactive terminal interface", func() {
		if err := TUI(config, log); err != nil {
			log.Fatalln(err)
		}
	}).AddFlagPtr(&backendFlag).
		AddFlagPtr(&pageSizeFlag)

	ctx.AddSubCommand("index", "Extract uploaded documents into the text cache", func() {
		if err := Index(context.Background(), config, os.Stdout, log); err != nil {
			log.Fatalln(err)
		}
	}).AddFlagPtr(&uploadsFlag).
		AddFlagPtr(&databaseFlag)

	return ctx
}
