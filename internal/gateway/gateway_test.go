package gateway

import (
	"context"
	"strings"
	"testing"

	cerrors "carrental/cli/internal/errors"
	"carrental/cli/internal/session"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGateway(store *fakeStore) *Gateway {
	return New(store, Config{}, nil)
}

func admin() session.Session { return session.New("alice", session.Admin) }
func guest() session.Session { return session.New("bob", session.Guest) }

func corolla(year int) CarInput {
	return CarInput{Brand: "Toyota", Model: "Corolla", Year: year, Price: decimal.RequireFromString("15000.00")}
}

func TestGuestRejectedBeforeStore(t *testing.T) {
	ctx := context.Background()
	sess := guest()

	ops := map[string]func(g *Gateway) error{
		"create database": func(g *Gateway) error { _, err := g.CreateDatabase(ctx, sess, "fleet"); return err },
		"drop database":   func(g *Gateway) error { _, err := g.DropDatabase(ctx, sess, "fleet"); return err },
		"use database":    func(g *Gateway) error { _, err := g.UseDatabase(ctx, sess, "fleet"); return err },
		"create table":    func(g *Gateway) error { return g.CreateTable(ctx, sess) },
		"clear table":     func(g *Gateway) error { _, err := g.ClearTable(ctx, sess); return err },
		"insert car":      func(g *Gateway) error { _, err := g.InsertCar(ctx, sess, corolla(2020)); return err },
		"update car":      func(g *Gateway) error { _, err := g.UpdateCar(ctx, sess, 1, corolla(2021)); return err },
		"delete car":      func(g *Gateway) error { _, err := g.DeleteCarByModel(ctx, sess, "Corolla"); return err },
	}

	for name, run := range ops {
		t.Run(name, func(t *testing.T) {
			store := newFakeStore("postgres", DefaultGuestDatabase)
			err := run(newTestGateway(store))

			require.Error(t, err)
			assert.Equal(t, cerrors.PermissionDenied, cerrors.KindOf(err))
			assert.Contains(t, err.Error(), name)
			assert.Empty(t, store.connects, "no connection may be opened")
		})
	}
}

func TestAuthorize(t *testing.T) {
	g := newTestGateway(newFakeStore())

	assert.NoError(t, g.Authorize(admin(), OpCreateDatabase))
	assert.NoError(t, g.Authorize(guest(), OpViewCars))
	assert.NoError(t, g.Authorize(guest(), OpInitialize))

	err := g.Authorize(guest(), OpCreateDatabase)
	require.Error(t, err)
	assert.Equal(t, cerrors.PermissionDenied, cerrors.KindOf(err))
	assert.Contains(t, err.Error(), string(OpCreateDatabase))
}

func TestUnknownRoleIsConfigurationError(t *testing.T) {
	store := newFakeStore("postgres")
	g := newTestGateway(store)

	_, err := g.ViewCars(context.Background(), session.Session{User: "eve", Role: "root"})
	assert.True(t, cerrors.IsKind(err, cerrors.Configuration), "err = %v", err)
	assert.Empty(t, store.connects)
}

func TestAdminTenantOperationWithoutDatabase(t *testing.T) {
	store := newFakeStore("postgres")
	g := newTestGateway(store)

	err := g.CreateTable(context.Background(), admin())
	require.Error(t, err)
	assert.Equal(t, cerrors.Configuration, cerrors.KindOf(err))
	assert.Empty(t, store.connects)
}

func TestGuestDatabaseMissing(t *testing.T) {
	store := newFakeStore("postgres")
	g := newTestGateway(store)

	_, err := g.SearchCar(context.Background(), guest(), "Camry")
	require.Error(t, err)
	assert.Equal(t, cerrors.NotFound, cerrors.KindOf(err))
	assert.Contains(t, err.Error(), DefaultGuestDatabase)
	assert.Equal(t, []string{"postgres"}, store.connects, "only the catalog lookup may connect")
	assert.Zero(t, store.open)
}

func TestGuestReadsGuestDatabase(t *testing.T) {
	store := newFakeStore("postgres", DefaultGuestDatabase)
	store.seed(DefaultGuestDatabase,
		Car{Brand: "Toyota", Model: "Camry", Year: 2020, Price: decimal.RequireFromString("15000.00")},
		Car{Brand: "Honda", Model: "Civic", Year: 2019, Price: decimal.RequireFromString("12500.50")},
	)
	g := newTestGateway(store)

	// The active database of the session is ignored for guests.
	cars, err := g.ViewCars(context.Background(), guest().WithDatabase("elsewhere"))
	require.NoError(t, err)
	require.Len(t, cars, 2)
	assert.Equal(t, "Camry", cars[0].Model)
	assert.Equal(t, "Civic", cars[1].Model)
	assert.Equal(t, []string{"postgres", DefaultGuestDatabase}, store.connects)
	assert.Zero(t, store.open)
}

func TestCarRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore("postgres")
	g := newTestGateway(store)

	sess, err := g.CreateDatabase(ctx, admin(), "fleet")
	require.NoError(t, err)
	assert.Equal(t, "fleet", sess.Database)

	require.NoError(t, g.CreateTable(ctx, sess))

	cars, err := g.InsertCar(ctx, sess, corolla(2020))
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, int64(1), cars[0].ID)
	assert.True(t, decimal.RequireFromString("15000.00").Equal(cars[0].Price))

	cars, err = g.ViewCars(ctx, sess)
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, "1 | Toyota | Corolla | 2020 | 15000.00", cars[0].String())

	cars, err = g.UpdateCar(ctx, sess, cars[0].ID, corolla(2021))
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, 2021, cars[0].Year)
	assert.Equal(t, "Toyota", cars[0].Brand)
	assert.Equal(t, "Corolla", cars[0].Model)
	assert.True(t, decimal.RequireFromString("15000.00").Equal(cars[0].Price))

	found, err := g.SearchCar(ctx, sess, "Corolla")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 2021, found[0].Year)

	cars, err = g.DeleteCarByModel(ctx, sess, "Corolla")
	require.NoError(t, err)
	assert.Empty(t, cars)

	found, err = g.SearchCar(ctx, sess, "Corolla")
	require.NoError(t, err)
	assert.NotNil(t, found)
	assert.Empty(t, found)

	assert.Zero(t, store.open, "every connection must be released")
}

func TestUpdateMissingIDIsNotAnError(t *testing.T) {
	store := newFakeStore("postgres", "fleet")
	store.seed("fleet")
	g := newTestGateway(store)

	cars, err := g.UpdateCar(context.Background(), admin().WithDatabase("fleet"), 42, corolla(2021))
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestClearTable(t *testing.T) {
	store := newFakeStore("postgres", "fleet")
	store.seed("fleet", Car{Brand: "Toyota", Model: "Camry", Year: 2020, Price: decimal.NewFromInt(1)})
	g := newTestGateway(store)

	cars, err := g.ClearTable(context.Background(), admin().WithDatabase("fleet"))
	require.NoError(t, err)
	assert.Empty(t, cars)
}

func TestExecutionErrorNamesOperation(t *testing.T) {
	store := newFakeStore("postgres", "fleet")
	g := newTestGateway(store)

	_, err := g.InsertCar(context.Background(), admin().WithDatabase("fleet"), corolla(2020))
	require.Error(t, err)
	assert.Equal(t, cerrors.Execution, cerrors.KindOf(err))
	assert.True(t, strings.HasPrefix(err.Error(), "insert car: "), "err = %v", err)
	assert.Contains(t, err.Error(), `relation "cars" does not exist`)
	assert.Zero(t, store.open)
}

func TestReloadFailureIsAttributedToMutation(t *testing.T) {
	store := newFakeStore("postgres", "fleet")
	store.seed("fleet")
	store.failOn = "sp_view_cars"
	g := newTestGateway(store)

	_, err := g.InsertCar(context.Background(), admin().WithDatabase("fleet"), corolla(2020))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "insert car: "), "err = %v", err)
	assert.Contains(t, err.Error(), "reloading the inventory failed")
	assert.Len(t, store.databases["fleet"].cars, 1, "the insert itself went through")
}

func TestConnectFailureIsExecutionError(t *testing.T) {
	store := newFakeStore("postgres")
	g := newTestGateway(store)

	_, err := g.ViewCars(context.Background(), admin().WithDatabase("gone"))
	require.Error(t, err)
	assert.Equal(t, cerrors.Execution, cerrors.KindOf(err))
	assert.Contains(t, err.Error(), `cannot connect to database "gone"`)
}

func TestDatabaseLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore("postgres", "archive")
	g := newTestGateway(store)

	sess, err := g.CreateDatabase(ctx, admin(), "fleet")
	require.NoError(t, err)
	assert.Equal(t, []statement{{database: "postgres", sql: callCreateDatabase, args: []any{"fleet"}}}, store.statements)

	sess, err = g.UseDatabase(ctx, sess, "archive")
	require.NoError(t, err)
	assert.Equal(t, "archive", sess.Database)

	_, err = g.UseDatabase(ctx, sess, "missing")
	assert.True(t, cerrors.IsKind(err, cerrors.NotFound), "err = %v", err)

	// Dropping another database keeps the selection.
	sess, err = g.DropDatabase(ctx, sess, "fleet")
	require.NoError(t, err)
	assert.Equal(t, "archive", sess.Database)

	sess, err = g.DropDatabase(ctx, sess, "archive")
	require.NoError(t, err)
	assert.False(t, sess.HasDatabase())

	_, err = g.CreateDatabase(ctx, sess, "  ")
	assert.True(t, cerrors.IsKind(err, cerrors.Input), "err = %v", err)
	assert.Zero(t, store.open)
}

func TestInlineLiterals(t *testing.T) {
	store := newFakeStore("postgres", "fleet")
	store.seed("fleet")
	g := New(store, Config{InlineLiterals: true}, nil)

	in := CarInput{Brand: "O'Brien", Model: "Roadster", Year: 1999, Price: decimal.RequireFromString("15000.00")}
	_, err := g.InsertCar(context.Background(), admin().WithDatabase("fleet"), in)
	require.NoError(t, err)

	require.NotEmpty(t, store.statements)
	first := store.statements[0]
	assert.Equal(t, "CALL public.sp_insert_car('O''Brien', 'Roadster', 1999, 15000.00)", first.sql)
	assert.Empty(t, first.args)
}

func TestInlineGuestCatalogLookup(t *testing.T) {
	store := newFakeStore("postgres", DefaultGuestDatabase)
	store.seed(DefaultGuestDatabase)
	g := New(store, Config{InlineLiterals: true}, nil)

	_, err := g.SearchCar(context.Background(), guest(), "it's")
	require.NoError(t, err)
	assert.Contains(t, store.statements[0].sql, "datname = 'car_rental'")
	assert.Contains(t, store.statements[1].sql, "sp_search_car('it''s')")
}

func TestVerify(t *testing.T) {
	store := newFakeStore("postgres")
	require.NoError(t, newTestGateway(store).Verify(context.Background()))
	assert.Equal(t, []string{"postgres"}, store.connects)
	assert.Zero(t, store.open)

	err := New(store, Config{SystemDatabase: "template9"}, nil).Verify(context.Background())
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "verify credentials: "), "err = %v", err)
}
