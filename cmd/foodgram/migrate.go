package main

import (
	"foodgram-go/internal/app"
)

type MigrateCmd struct{}

func (m *MigrateCmd) Run(c *Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, c.Log)
	if err != nil {
		return err
	}
	defer application.Close()

	applied, err := application.Migrate()
	if err != nil {
		c.Log.Error("db: migrate failed", "err", err)
		return err
	}
	if len(applied) == 0 {
		c.Log.Info("db: schema already up to date")
		return nil
	}
	c.Log.Info("db: migrations applied", "files", applied)
	return nil
}
