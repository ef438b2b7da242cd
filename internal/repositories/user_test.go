package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupUserPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()

	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(context.Background(), tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	assert.NoError(t, err)

	host, _ := container.Host(context.Background())
	port, _ := container.MappedPort(context.Background(), "5432")

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	var db *sqlx.DB
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("pgx", dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	assert.NoError(t, err)

	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(100) NOT NULL,
		email VARCHAR(100) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT FALSE,
		is_admin BOOLEAN NOT NULL DEFAULT FALSE,
		login_count BIGINT NOT NULL DEFAULT 0,
		last_login TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	`
	_, err = db.Exec(schema)
	assert.NoError(t, err)

	teardown := func() {
		db.Close()
		container.Terminate(context.Background())
	}

	return db, teardown
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	id, err := repo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)
	assert.Greater(t, id, int64(0))

	var user struct {
		Name         string `db:"name"`
		Email        string `db:"email"`
		PasswordHash string `db:"password_hash"`
		IsVerified   bool   `db:"is_verified"`
		LoginCount   int64  `db:"login_count"`
	}
	err = db.Get(&user, "SELECT name, email, password_hash, is_verified, login_count FROM users WHERE id=$1", id)
	assert.NoError(t, err)

	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
	assert.False(t, user.IsVerified)
	assert.Equal(t, int64(0), user.LoginCount)
}

func TestUserWriteRepository_Save_DuplicateEmail(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	repo := NewUserWriteRepository(db, nil)
	ctx := context.Background()

	_, err := repo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)

	_, err = repo.Save(ctx, "Impostor", "alice@example.com", "$2a$10$other", false)
	assert.Error(t, err)
}

func TestUserReadRepository_GetByEmailAndID(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "Charlie", "charlie@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)

	t.Run("ByEmail", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "charlie@example.com")
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "Charlie", user.Name)
		assert.Equal(t, id, user.ID)
	})

	t.Run("ByID", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "charlie@example.com", user.Email)
	})

	t.Run("EmailNotFound", func(t *testing.T) {
		user, err := readRepo.GetByEmail(ctx, "ghost@x.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("IDNotFound", func(t *testing.T) {
		user, err := readRepo.GetByID(ctx, 99999)
		assert.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestUserWriteRepository_SetVerified(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.SetVerified(ctx, id))

	user, err := readRepo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.True(t, user.IsVerified)

	// Repeat verification keeps the flag set.
	assert.NoError(t, writeRepo.SetVerified(ctx, id))

	user, err = readRepo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.True(t, user.IsVerified)
}

func TestUserWriteRepository_UpdatePassword(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "Alice", "alice@example.com", "$2a$10$old", false)
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.UpdatePassword(ctx, id, "$2a$10$new"))

	user, err := readRepo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "$2a$10$new", user.PasswordHash)
}

func TestUserWriteRepository_IncrementLoginStats(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.IncrementLoginStats(ctx, id))

	user, err := readRepo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), user.LoginCount)
	assert.NotNil(t, user.LastLogin)
}

func TestUserWriteRepository_IncrementLoginStats_Concurrent(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)

	const logins = 10
	done := make(chan error, logins)
	for i := 0; i < logins; i++ {
		go func() {
			done <- writeRepo.IncrementLoginStats(ctx, id)
		}()
	}
	for i := 0; i < logins; i++ {
		assert.NoError(t, <-done)
	}

	user, err := readRepo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(logins), user.LoginCount)
}

func TestUserWriteRepository_Update(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)

	t.Run("NameOnly", func(t *testing.T) {
		name := "Alice Cooper"
		assert.NoError(t, writeRepo.Update(ctx, id, &name, nil))

		user, err := readRepo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, "Alice Cooper", user.Name)
		assert.Equal(t, "alice@example.com", user.Email)
	})

	t.Run("EmailOnly", func(t *testing.T) {
		email := "alice.cooper@example.com"
		assert.NoError(t, writeRepo.Update(ctx, id, nil, &email))

		user, err := readRepo.GetByID(ctx, id)
		assert.NoError(t, err)
		assert.Equal(t, "Alice Cooper", user.Name)
		assert.Equal(t, "alice.cooper@example.com", user.Email)
	})
}

func TestUserWriteRepository_Delete(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	writeRepo := NewUserWriteRepository(db, nil)
	readRepo := NewUserReadRepository(db)
	ctx := context.Background()

	id, err := writeRepo.Save(ctx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)

	assert.NoError(t, writeRepo.Delete(ctx, id))

	user, err := readRepo.GetByID(ctx, id)
	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserWriteRepository_TxRollback(t *testing.T) {
	db, teardown := setupUserPostgresContainer(t)
	defer teardown()

	ctx := context.Background()

	tx, err := db.Beginx()
	assert.NoError(t, err)

	type txKey struct{}
	txCtx := context.WithValue(ctx, txKey{}, tx)

	writeRepo := NewUserWriteRepository(db, func(ctx context.Context) *sqlx.Tx {
		got, _ := ctx.Value(txKey{}).(*sqlx.Tx)
		return got
	})
	readRepo := NewUserReadRepository(db)

	_, err = writeRepo.Save(txCtx, "Alice", "alice@example.com", "$2a$10$hash", false)
	assert.NoError(t, err)

	assert.NoError(t, tx.Rollback())

	user, err := readRepo.GetByEmail(ctx, "alice@example.com")
	assert.NoError(t, err)
	assert.Nil(t, user)
}
