package main

import (
	"foodgram-go/internal/config"
	"foodgram-go/pkg/logger"
)

type Context struct {
	Log logger.Logger
}

type CLI struct {
	Serve             ServeCmd             `cmd:"" default:"1" help:"Run the HTTP API."`
	Migrate           MigrateCmd           `cmd:"" help:"Apply database migrations."`
	ImportIngredients ImportIngredientsCmd `cmd:"" name:"import-ingredients" help:"Seed the ingredient catalog from a JSON file."`
	Token             TokenCmd             `cmd:"" help:"Issue a signed bearer token for local testing."`
}

func loadConfig(c *Context) (config.Config, error) {
	c.Log.Info("app: loading config")
	return config.Load(c.Log)
}
