package database

import (
	"context"
	"testing"

	"cinema_booking/config"
	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "db", Port: 5433, User: "u", Password: "p", Name: "movieing", SSLMode: "disable"})
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=movieing sslmode=disable TimeZone=UTC", dsn)
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	store := repository.NewGormStore(db)
	cfg := config.AdminConfig{Email: " Admin@Movieing.com ", Password: "admin1234", Name: "admin"}

	created, err := SeedAdmin(ctx, store, cfg)
	require.NoError(t, err)
	assert.True(t, created)
	created, err = SeedAdmin(ctx, store, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	u, err := store.Users().FindByEmail(ctx, "admin@movieing.com")
	require.NoError(t, err)
	assert.Equal(t, constants.ROLE_ADMIN, u.Role)
	assert.True(t, u.IsActive)
	assert.True(t, helper.CheckPasswordHash("admin1234", u.PasswordHash))

	_, err = SeedAdmin(ctx, store, config.AdminConfig{})
	assert.Error(t, err)
}
