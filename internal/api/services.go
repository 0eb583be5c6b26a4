package api

import (
	"github.com/linkstashapp/linkstash-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth    *service.AuthService
	Account *service.AccountService
	Link    *service.LinkService
	Tag     *service.TagService
	TagLink *service.TagLinkService
}
