package main

import (
	"github.com/alecthomas/kong"

	"foodgram-go/pkg/logger"
)

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("foodgram"),
		kong.Description("Foodgram recipe sharing backend."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&Context{Log: logger.NewFromEnv()})
	ctx.FatalIfErrorf(err)
}
