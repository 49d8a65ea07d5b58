package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/pkg/database"
	"github.com/cmlabs-hris/employee-hub-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

var (
	testDB      *database.DB
	testDBErr   error
	testDBSetup sync.Once
)

// newTestDatabase connects to TEST_DATABASE_URL, applies the migrations and
// empties every table. Tests are skipped when the variable is unset.
func newTestDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	testDBSetup.Do(func() {
		if testDBErr = database.MigrateUp(dsn); testDBErr != nil {
			return
		}
		testDB, testDBErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, testDBErr)

	truncateAllTables(t)
	return testDB
}

func truncateAllTables(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	tables := []string{"documents", "announcements", "leaves", "employees", "users"}
	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "truncate %s", table)
	}
}

func newID(t *testing.T) string {
	t.Helper()
	id, err := uuid.NewV7()
	require.NoError(t, err)
	return id.String()
}

func createTestUser(t *testing.T, db *database.DB, email string, role user.Role) user.User {
	t.Helper()
	u, err := postgresql.NewUserRepository(db).Create(context.Background(), user.User{
		ID:           newID(t),
		Email:        email,
		PasswordHash: "$2a$10$not-a-real-hash",
		Role:         role,
	})
	require.NoError(t, err)
	return u
}

func createTestEmployee(t *testing.T, db *database.DB, u user.User, firstName, lastName string, department *string) employee.Employee {
	t.Helper()
	hireDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	e, err := postgresql.NewEmployeeRepository(db).Create(context.Background(), employee.Employee{
		ID:         newID(t),
		UserID:     u.ID,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      u.Email,
		Department: department,
		HireDate:   &hireDate,
	})
	require.NoError(t, err)
	return e
}

func strPtr(s string) *string { return &s }
