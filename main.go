package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

var versionCmd = &cli.Command{
	Name:  "version",
	Usage: "print the version",
	Action: func(ctx *cli.Context) error {
		fmt.Println(version)
		return nil
	},
}

var generateCmd = &cli.Command{
	Name:  "generate",
	Usage: "generate typed declarations for the response shape of a graphql operation",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "the directory to start looking for the configuration file in", Value: "."},
		&cli.StringSliceFlag{Name: "schema", Usage: "schema file glob, overrides the configuration file"},
		&cli.StringSliceFlag{Name: "query", Usage: "query file glob, overrides the configuration file"},
		&cli.StringFlag{Name: "namespace", Usage: "root namespace of the generated declarations"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "output directory"},
		&cli.StringFlag{Name: "target-version", Usage: "go version the generated code targets"},
		&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
	},
	Action: func(ctx *cli.Context) error {
		return run(ctx.Context, options{
			configDir:     ctx.String("config"),
			schema:        ctx.StringSlice("schema"),
			query:         ctx.StringSlice("query"),
			namespace:     ctx.String("namespace"),
			output:        ctx.String("output"),
			targetVersion: ctx.String("target-version"),
			logLevel:      ctx.String("log-level"),
		})
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "gqldto"
	app.Description = "Generates typed declarations mirroring the response shape of a graphql operation"
	app.Usage = generateCmd.Usage
	app.DefaultCommand = "generate"
	app.Commands = []*cli.Command{
		versionCmd,
		generateCmd,
	}

	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "%+v\n", err.Error())

		var exitErr *exitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}
