package middleware

import (
	"testing"

	"github.com/AnshRaj112/aed-backend/internal/services"
	"github.com/AnshRaj112/aed-backend/internal/store"
	"github.com/rs/zerolog"
)

func newTestAccounts(t *testing.T) *services.AccountService {
	t.Helper()
	return services.NewAccountService(store.NewMemoryUserStore(), services.NewTokenIssuer("test-secret"), zerolog.Nop())
}
