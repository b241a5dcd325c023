package service

import (
	"github.com/weatherapp/backend/internal/domain"
)

// UserRepository is re-exported from domain for convenience
type UserRepository = domain.UserRepository
