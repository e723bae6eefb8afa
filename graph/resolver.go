package graph

import (
	"github.com/VitaminP8/picshare/internal/auth"
	"github.com/VitaminP8/picshare/internal/post"
	"github.com/VitaminP8/picshare/internal/subscription"
	"github.com/VitaminP8/picshare/internal/user"
)

//go:generate go run github.com/99designs/gqlgen generate

// Resolver служит корневой точкой для всех резолверов.
// Здесь можно внедрять зависимости, например хранилище.
type Resolver struct {
	PostStore           post.PostStorage
	UserStore           user.UserStorage
	Tokens              *auth.TokenIssuer
	SubscriptionManager subscription.Manager
}
