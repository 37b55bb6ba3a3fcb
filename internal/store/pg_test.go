package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/landledger/registry-indexer/internal/domain"
	"github.com/landledger/registry-indexer/internal/store/schema"
)

var (
	testDB      *gorm.DB
	pgContainer *postgres.PostgresContainer
)

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	// Check if we should use an external database (for CI or local development)
	dbHost := os.Getenv("TEST_DB_HOST")

	var dsn string
	var err error

	if dbHost != "" {
		dbPort := os.Getenv("TEST_DB_PORT")
		dbUser := os.Getenv("TEST_DB_USER")
		dbPassword := os.Getenv("TEST_DB_PASSWORD")
		dbName := os.Getenv("TEST_DB_NAME")
		if dbPort == "" {
			dbPort = "5432"
		}
		if dbUser == "" {
			dbUser = "postgres"
		}
		if dbPassword == "" {
			dbPassword = "postgres"
		}
		if dbName == "" {
			dbName = "test_db"
		}

		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			dbHost, dbPort, dbUser, dbPassword, dbName)
	} else {
		// Start a PostgreSQL container for testing
		pgContainer, err = postgres.Run(ctx,
			"postgres:18-alpine",
			postgres.WithDatabase("test_db"),
			postgres.WithUsername("postgres"),
			postgres.WithPassword("postgres"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			fmt.Printf("Failed to start PostgreSQL container: %v\n", err)
			os.Exit(1)
		}

		dsn, err = pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			fmt.Printf("Failed to get connection string: %v\n", err)
			terminateContainer(ctx)
			os.Exit(1)
		}
	}

	testDB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	if err := testDB.AutoMigrate(&schema.PropertyRecord{}); err != nil {
		fmt.Printf("Failed to migrate schema: %v\n", err)
		terminateContainer(ctx)
		os.Exit(1)
	}

	code := m.Run()

	terminateContainer(ctx)
	os.Exit(code)
}

func terminateContainer(ctx context.Context) {
	if pgContainer != nil {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
		}
	}
}

// initPGTestStore returns a store backed by a clean table
func initPGTestStore(t *testing.T) Store {
	t.Helper()
	require.NoError(t, testDB.Exec("TRUNCATE property_records RESTART IDENTITY").Error)
	return NewPGStore(testDB)
}

func testRecord(txHash string) *schema.PropertyRecord {
	return &schema.PropertyRecord{
		TransactionHash: txHash,
		BlockNumber:     "100",
		PropertyID:      1,
		Location:        "Plot A",
		Area:            500,
		Owner:           "0x1111111111111111111111111111111111111111",
		Timestamp:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestInsertPropertyRecord_RoundTrip(t *testing.T) {
	s := initPGTestStore(t)
	ctx := context.Background()

	record := testRecord("0x" + fmt.Sprintf("%064x", 1))
	require.NoError(t, s.InsertPropertyRecord(ctx, record))

	records, err := s.ListPropertyRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, record.TransactionHash, got.TransactionHash)
	assert.Equal(t, "100", got.BlockNumber)
	assert.EqualValues(t, 1, got.PropertyID)
	assert.Equal(t, "Plot A", got.Location)
	assert.EqualValues(t, 500, got.Area)
	assert.Equal(t, "0x1111111111111111111111111111111111111111", got.Owner)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestInsertPropertyRecord_DuplicateHash(t *testing.T) {
	s := initPGTestStore(t)
	ctx := context.Background()

	txHash := "0x" + fmt.Sprintf("%064x", 2)
	first := testRecord(txHash)
	require.NoError(t, s.InsertPropertyRecord(ctx, first))

	// A second insert for the same hash must fail without touching the
	// first row, even when the payload differs.
	second := testRecord(txHash)
	second.Location = "Plot B"
	err := s.InsertPropertyRecord(ctx, second)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRecordAlreadyExists)

	got, err := s.GetPropertyRecordByTxHash(ctx, txHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Plot A", got.Location)

	records, err := s.ListPropertyRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestListPropertyRecords_NewestFirst(t *testing.T) {
	s := initPGTestStore(t)
	ctx := context.Background()

	// Three inserts at distinct creation times
	for i := 1; i <= 3; i++ {
		record := testRecord("0x" + fmt.Sprintf("%064x", 10+i))
		record.PropertyID = int64(i)
		require.NoError(t, s.InsertPropertyRecord(ctx, record))
		time.Sleep(10 * time.Millisecond)
	}

	records, err := s.ListPropertyRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.EqualValues(t, 3, records[0].PropertyID)
	assert.EqualValues(t, 2, records[1].PropertyID)
	assert.EqualValues(t, 1, records[2].PropertyID)
	assert.True(t, !records[0].CreatedAt.Before(records[1].CreatedAt))
	assert.True(t, !records[1].CreatedAt.Before(records[2].CreatedAt))
}

func TestGetPropertyRecordByTxHash_NotFound(t *testing.T) {
	s := initPGTestStore(t)

	got, err := s.GetPropertyRecordByTxHash(context.Background(), "0x"+fmt.Sprintf("%064x", 999))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestInsertPropertyRecord_TimestampInstantPreserved(t *testing.T) {
	s := initPGTestStore(t)
	ctx := context.Background()

	instant := time.Date(2024, 6, 15, 12, 30, 45, 0, time.UTC)
	record := testRecord("0x" + fmt.Sprintf("%064x", 42))
	record.Timestamp = instant
	require.NoError(t, s.InsertPropertyRecord(ctx, record))

	got, err := s.GetPropertyRecordByTxHash(ctx, record.TransactionHash)
	require.NoError(t, err)
	require.NotNil(t, got)
	// timestamptz preserves the instant regardless of session time zone
	assert.True(t, got.Timestamp.Equal(instant))
}
