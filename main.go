package main

import (
	"os"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/trackmaster/trackmaster/pkg/commands"
	"github.com/trackmaster/trackmaster/pkg/version"
	"github.com/urfave/cli/v2"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			// log panics forces exit
			if _, ok := r.(*logrus.Entry); ok {
				os.Exit(1)
			}
			panic(r)
		}
	}()

	if err := commands.LoadEnvFile(os.Getenv("ENV_FILE")); err != nil {
		logrus.Fatal(err)
	}

	app := cli.NewApp()
	app.Name = path.Base(os.Args[0])
	app.Usage = "Track visits to your domains"
	app.Version = version.Get().String()

	app.Commands = commands.GetCommands()
	app.CommandNotFound = func(context *cli.Context, command string) {
		logrus.Fatalf("Command %s not found.", command)
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
