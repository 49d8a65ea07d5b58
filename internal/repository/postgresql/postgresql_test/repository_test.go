package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/announcement"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/document"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/employee"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/leave"
	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/cmlabs-hris/employee-hub-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)

	created := createTestUser(t, db, "alice@co.com", user.RoleEmployee)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := repo.GetByEmail(ctx, "alice@co.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, user.RoleEmployee, got.Role)

	_, err = repo.GetByID(ctx, newID(t))
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	email := "alice@co.com"
	exists, err := repo.ExistsByIDOrEmail(ctx, nil, &email)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.Create(ctx, user.User{ID: newID(t), Email: "alice@co.com", PasswordHash: "x", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewUserRepository(db)
	transactor := postgresql.NewTransactor(db)

	boom := errors.New("boom")
	err := transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		_, err := repo.Create(txCtx, user.User{ID: newID(t), Email: "ghost@co.com", PasswordHash: "x", Role: user.RoleEmployee})
		require.NoError(t, err)

		// nested call joins the outer transaction
		return transactor.WithinTransaction(txCtx, func(context.Context) error { return boom })
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByEmail(ctx, "ghost@co.com")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestEmployeeRepository(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(db)

	alice := createTestUser(t, db, "alice@co.com", user.RoleEmployee)
	bob := createTestUser(t, db, "bob@co.com", user.RoleEmployee)
	aliceEmp := createTestEmployee(t, db, alice, "Alice", "Smith", strPtr("Engineering"))
	createTestEmployee(t, db, bob, "Bob", "100%", strPtr("Sales"))

	t.Run("one profile per user", func(t *testing.T) {
		_, err := repo.Create(ctx, employee.Employee{ID: newID(t), UserID: alice.ID, FirstName: "A", LastName: "B", Email: alice.Email})
		assert.ErrorIs(t, err, employee.ErrProfileAlreadyExists)
	})

	t.Run("get by user id", func(t *testing.T) {
		got, err := repo.GetByUserID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, aliceEmp.ID, got.ID)
		require.NotNil(t, got.HireDate)
		assert.Equal(t, "2024-03-01", got.HireDate.Format(time.DateOnly))

		_, err = repo.GetByUserID(ctx, newID(t))
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("list filters", func(t *testing.T) {
		list, total, err := repo.List(ctx, employee.EmployeeFilter{Search: strPtr("SMI"), Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, list, 1)
		assert.Equal(t, "Alice", list[0].FirstName)

		// wildcards in the search text are literal
		list, _, err = repo.List(ctx, employee.EmployeeFilter{Search: strPtr("%"), Limit: 100})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, "Bob", list[0].FirstName)

		list, total, err = repo.List(ctx, employee.EmployeeFilter{Department: strPtr("Sales"), Limit: 100})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, list, 1)

		list, total, err = repo.List(ctx, employee.EmployeeFilter{Skip: 1, Limit: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, list, 1)
	})

	t.Run("partial update", func(t *testing.T) {
		require.NoError(t, repo.Update(ctx, aliceEmp.ID, employee.UpdateEmployeeRequest{Position: strPtr("Tech Lead")}))
		got, err := repo.GetByID(ctx, aliceEmp.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Position)
		assert.Equal(t, "Tech Lead", *got.Position)
		assert.Equal(t, "Smith", got.LastName)
		require.NotNil(t, got.Department)
		assert.Equal(t, "Engineering", *got.Department)

		err = repo.Update(ctx, newID(t), employee.UpdateEmployeeRequest{Position: strPtr("x")})
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, aliceEmp.ID))
		_, err := repo.GetByID(ctx, aliceEmp.ID)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, aliceEmp.ID), employee.ErrEmployeeNotFound)
	})
}

func createTestLeave(t *testing.T, repo leave.LeaveRepository, employeeID string) leave.Leave {
	t.Helper()
	l, err := repo.Create(context.Background(), leave.Leave{
		ID:         newID(t),
		EmployeeID: employeeID,
		LeaveType:  leave.LeaveTypeVacation,
		StartDate:  time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)
	return l
}

func TestLeaveRepository_DecideOnce(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRepository(db)

	emp := createTestEmployee(t, db, createTestUser(t, db, "e@co.com", user.RoleEmployee), "E", "Mployee", nil)
	mgr := createTestEmployee(t, db, createTestUser(t, db, "m@co.com", user.RoleManager), "M", "Anager", nil)
	l := createTestLeave(t, repo, emp.ID)
	assert.Equal(t, 3, l.TotalDays())

	// concurrent approvers: exactly one wins
	const approvers = 5
	results := make([]error, approvers)
	var wg sync.WaitGroup
	for i := 0; i < approvers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.UpdateStatusIfPending(ctx, l.ID, leave.StatusApproved, &mgr.ID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
		}
	}
	assert.Equal(t, 1, wins)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	require.NotNil(t, got.ApprovedBy)
	assert.Equal(t, mgr.ID, *got.ApprovedBy)
	assert.NotNil(t, got.UpdatedAt)

	_, err = repo.UpdateStatusIfPending(ctx, newID(t), leave.StatusRejected, nil)
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)
}

func TestLeaveRepository_DeleteAndList(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewLeaveRepository(db)

	emp := createTestEmployee(t, db, createTestUser(t, db, "e@co.com", user.RoleEmployee), "E", "Mployee", nil)
	other := createTestEmployee(t, db, createTestUser(t, db, "o@co.com", user.RoleEmployee), "O", "Ther", nil)

	processed := createTestLeave(t, repo, emp.ID)
	_, err := repo.UpdateStatusIfPending(ctx, processed.ID, leave.StatusRejected, nil)
	require.NoError(t, err)
	pending := createTestLeave(t, repo, emp.ID)
	createTestLeave(t, repo, other.ID)

	list, total, err := repo.List(ctx, leave.LeaveFilter{EmployeeID: &emp.ID, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, pending.ID, list[0].ID)

	status := leave.StatusPending
	_, total, err = repo.List(ctx, leave.LeaveFilter{Status: &status, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	assert.ErrorIs(t, repo.Delete(ctx, processed.ID, true), leave.ErrCannotDeleteProcessed)
	assert.NoError(t, repo.Delete(ctx, processed.ID, false))
	assert.NoError(t, repo.Delete(ctx, pending.ID, true))
	assert.ErrorIs(t, repo.Delete(ctx, pending.ID, true), leave.ErrLeaveRequestNotFound)

	// removing an employee removes their leaves
	require.NoError(t, postgresql.NewEmployeeRepository(db).Delete(ctx, other.ID))
	_, total, err = repo.List(ctx, leave.LeaveFilter{Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestAnnouncementRepository_Expiry(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewAnnouncementRepository(db)
	author := createTestUser(t, db, "m@co.com", user.RoleManager)

	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	for _, a := range []announcement.Announcement{
		{Title: "expired", ExpiresAt: &past, Priority: announcement.PriorityLow},
		{Title: "upcoming", ExpiresAt: &future, Priority: announcement.PriorityHigh},
		{Title: "forever", Priority: announcement.PriorityMedium},
	} {
		a.ID = newID(t)
		a.Content = "content"
		a.AuthorID = author.ID
		_, err := repo.Create(ctx, a)
		require.NoError(t, err)
	}

	active, total, err := repo.List(ctx, announcement.AnnouncementFilter{Limit: 100, Now: now})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, active, 2)
	assert.Equal(t, "forever", active[0].Title)

	_, total, err = repo.List(ctx, announcement.AnnouncementFilter{Limit: 100, Now: now, IncludeExpired: true})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	high := announcement.PriorityHigh
	list, _, err := repo.List(ctx, announcement.AnnouncementFilter{Limit: 100, Now: now, Priority: &high})
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated := list[0]
	updated.Title = "renamed"
	updated.ExpiresAt = nil
	got, err := repo.Update(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)
	assert.Nil(t, got.ExpiresAt)

	require.NoError(t, repo.Delete(ctx, got.ID))
	_, err = repo.GetByID(ctx, got.ID)
	assert.ErrorIs(t, err, announcement.ErrAnnouncementNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, got.ID), announcement.ErrAnnouncementNotFound)
}

func TestDocumentRepository(t *testing.T) {
	db := newTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewDocumentRepository(db)
	uploader := createTestUser(t, db, "u@co.com", user.RoleEmployee)

	handbook, err := repo.Create(ctx, document.Document{
		ID:          newID(t),
		Name:        "Handbook",
		Description: strPtr("Company policies"),
		FilePath:    "documents/a.pdf",
		Category:    strPtr("Policy"),
		UploadedBy:  uploader.ID,
	})
	require.NoError(t, err)
	_, err = repo.Create(ctx, document.Document{
		ID:         newID(t),
		Name:       "Expense template",
		FilePath:   "documents/b.xlsx",
		Category:   strPtr("Finance"),
		UploadedBy: uploader.ID,
	})
	require.NoError(t, err)

	list, total, err := repo.List(ctx, document.DocumentFilter{Search: strPtr("POLICIES"), Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, handbook.ID, list[0].ID)

	_, total, err = repo.List(ctx, document.DocumentFilter{Category: strPtr("Finance"), Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)

	require.NoError(t, repo.Delete(ctx, handbook.ID))
	_, err = repo.GetByID(ctx, handbook.ID)
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)
}
