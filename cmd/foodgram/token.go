package main

import (
	"fmt"
	"os"
	"time"

	"foodgram-go/internal/transport/httpserver/middleware"
)

type TokenCmd struct {
	UserID    string        `required:"" name:"user-id" help:"Token subject."`
	Email     string        `help:"Email claim."`
	Username  string        `help:"Username claim."`
	FirstName string        `name:"first-name" help:"First name claim."`
	LastName  string        `name:"last-name" help:"Last name claim."`
	TTL       time.Duration `default:"24h" help:"Token lifetime."`
}

func (t *TokenCmd) Run(c *Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	token, err := middleware.SignToken(cfg.Auth, middleware.User{
		ID:        t.UserID,
		Email:     t.Email,
		Username:  t.Username,
		FirstName: t.FirstName,
		LastName:  t.LastName,
	}, t.TTL)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, token)
	return err
}
