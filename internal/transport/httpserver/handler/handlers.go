package handler

import (
	catalogdomain "foodgram-go/internal/domain/catalog"
	recipesdomain "foodgram-go/internal/domain/recipes"
	shoppingdomain "foodgram-go/internal/domain/shopping"
	subscriptionsdomain "foodgram-go/internal/domain/subscriptions"
	userdomain "foodgram-go/internal/domain/user"
	"foodgram-go/pkg/logger"
	"foodgram-go/pkg/validation"
)

type Handlers struct {
	Catalog       *catalogdomain.Service
	Recipes       *recipesdomain.Service
	Shopping      *shoppingdomain.Service
	Subscriptions *subscriptionsdomain.Service
	Users         *userdomain.Service
	validate      *validation.Validator
	log           logger.Logger
}

func New(
	catalog *catalogdomain.Service,
	recipes *recipesdomain.Service,
	shopping *shoppingdomain.Service,
	subscriptions *subscriptionsdomain.Service,
	users *userdomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Catalog:       catalog,
		Recipes:       recipes,
		Shopping:      shopping,
		Subscriptions: subscriptions,
		Users:         users,
		validate:      validation.New(),
		log:           log,
	}
}
