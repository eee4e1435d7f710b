package pg

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/itchan-dev/simpleboard/shared/config"
	"github.com/itchan-dev/simpleboard/shared/domain"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var storage *Storage

func TestMain(m *testing.M) {
	ctx := context.Background()
	var container *postgres.PostgresContainer
	storage, container = mustSetup(ctx)

	exitCode := m.Run()
	teardown(ctx, storage, container)
	os.Exit(exitCode)
}

func mustSetup(ctx context.Context) (*Storage, *postgres.PostgresContainer) {
	dbName := "simpleboard"
	dbUser := "user"
	dbPassword := "password"
	container, err := postgres.Run(ctx,
		"postgres:15.3-alpine",
		postgres.WithInitScripts(filepath.Join("migrations", "init.sql")),
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			// the container restarts once after the init scripts run
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start container: %s", err)
	}
	containerPort, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to obtain container port: %s", err)
	}
	port, err := strconv.Atoi(containerPort.Port())
	if err != nil {
		log.Fatalf("failed to obtain int container port: %s", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to obtain container host: %s", err)
	}

	storage, err := New(ctx, config.Pg{Host: host, Port: port, User: dbUser, Password: dbPassword, Dbname: dbName})
	if err != nil {
		log.Fatalf("failed to connect to postgres container: %s", err)
	}
	return storage, container
}

func teardown(ctx context.Context, storage *Storage, container *postgres.PostgresContainer) {
	if err := storage.Cleanup(); err != nil {
		log.Printf("failed to close storage connection: %s", err)
	}
	if err := container.Terminate(ctx); err != nil {
		log.Printf("failed to terminate container: %s", err)
	}
}

// Helpers

func generateString(t *testing.T) string {
	t.Helper()
	return uuid.NewString()[:8]
}

func createTestBoard(t *testing.T) domain.Board {
	t.Helper()
	id := generateString(t)
	board, err := storage.CreateBoard(context.Background(), domain.BoardCreationData{Id: id, Title: "Board " + id, CreatedBy: "creator"})
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = storage.DeleteBoard(context.Background(), id) })
	return board
}

func createTestCategory(t *testing.T, boardId domain.BoardId, name string) domain.Category {
	t.Helper()
	category, err := storage.CreateCategory(context.Background(), domain.CategoryCreationData{
		BoardId: boardId, Name: name, Color: domain.DefaultCategoryColor, CreatedBy: "admin",
	})
	require.NoError(t, err)
	return category
}

func createTestItem(t *testing.T, boardId domain.BoardId, categoryId *domain.CategoryId, owner domain.Identity) domain.ContentItem {
	t.Helper()
	item, err := storage.CreateContentItem(context.Background(), domain.ContentItemCreationData{
		BoardId: boardId, CategoryId: categoryId, Type: domain.ContentText, Content: "hello", OwnerIdentifier: owner,
	})
	require.NoError(t, err)
	return item
}
