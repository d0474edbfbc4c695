package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/fieldlog/fieldlog/internal/domain"
	"github.com/fieldlog/fieldlog/internal/repo"
	"github.com/fieldlog/fieldlog/migrations"
	"github.com/fieldlog/fieldlog/testutil"
)

// TestMain runs before any test in the repo_test package.
// It applies all pending migrations to the test database so individual tests
// never need to think about schema state.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		// No test DB configured — every test skips cleanly via testutil.
		os.Exit(m.Run())
	}

	// goose needs a plain *sql.DB, not a pgx pool. Constructed manually here
	// because TestMain has no *testing.T to pass.
	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		log.Fatalf("TestMain: create goose provider: %v", err)
	}

	if _, err := provider.Up(context.Background()); err != nil {
		log.Fatalf("TestMain: run migrations: %v", err)
	}

	os.Exit(m.Run())
}

// beginTx opens a transaction against the test database. The transaction is
// rolled back when the test finishes, so every test starts from a clean slate
// with no cleanup SQL. All repos built on the same tx see each other's rows,
// which matters here because trips reference users and species reference trips.
func beginTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})

	return tx
}

// seedUser inserts a user row and returns it. Trips are FK-bound to users, so
// nearly every test in this package starts here.
func seedUser(t *testing.T, tx pgx.Tx, email string) domain.User {
	t.Helper()
	ctx := context.Background()

	user, err := repo.NewUserRepo(tx).Create(ctx, domain.User{
		Name:         "Test Angler",
		Email:        email,
		PasswordHash: "x",
		Role:         domain.RoleUser,
	})
	require.NoError(t, err, "seed user %s", email)
	return user
}

// seedTrip inserts a trip row owned by userID and returns it.
func seedTrip(t *testing.T, tx pgx.Tx, trip domain.Trip) domain.Trip {
	t.Helper()

	created, err := repo.NewTripRepo(tx).Create(context.Background(), trip)
	require.NoError(t, err, "seed trip")
	return created
}
