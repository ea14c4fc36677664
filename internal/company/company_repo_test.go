package company_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go-crm/internal/company"
	"go-crm/internal/employee"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) (*gorm.DB, company.Repository) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to open test database")

	require.NoError(t, db.AutoMigrate(&company.Company{}, &employee.Employee{}))

	return db, company.NewRepository(db)
}

func TestRepository_CreateAndFindByID(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()

	comp := &company.Company{
		ID:      uuid.New(),
		Name:    "Acme",
		Website: "https://acme.test",
	}
	require.NoError(t, repo.Create(ctx, comp))

	got, err := repo.FindByID(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "https://acme.test", got.Website)
	assert.Empty(t, got.Email)
}

func TestRepository_FindByIDMissing(t *testing.T) {
	_, repo := setupRepoTest(t)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_FindPage(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		comp := &company.Company{
			ID:        uuid.New(),
			Name:      fmt.Sprintf("Company %02d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, comp))
	}

	page1, total, err := repo.FindPage(ctx, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, page1, 10)
	assert.Equal(t, "Company 00", page1[0].Name)
	assert.Equal(t, "Company 09", page1[9].Name)

	page2, total, err := repo.FindPage(ctx, 2, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 12, total)
	require.Len(t, page2, 2)
	assert.Equal(t, "Company 10", page2[0].Name)
}

func TestRepository_FindOptions(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Acme", "Mint"} {
		require.NoError(t, repo.Create(ctx, &company.Company{ID: uuid.New(), Name: name}))
	}

	options, err := repo.FindOptions(ctx)
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, "Acme", options[0].Name)
	assert.Equal(t, "Mint", options[1].Name)
	assert.Equal(t, "Zeta", options[2].Name)
}

func TestRepository_UpdateAndDelete(t *testing.T) {
	_, repo := setupRepoTest(t)
	ctx := context.Background()

	comp := &company.Company{ID: uuid.New(), Name: "Before"}
	require.NoError(t, repo.Create(ctx, comp))

	comp.Name = "After"
	comp.Logo = "company-logos/x.png"
	require.NoError(t, repo.Update(ctx, comp))

	got, err := repo.FindByID(ctx, comp.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Name)
	assert.Equal(t, "company-logos/x.png", got.Logo)

	require.NoError(t, repo.Delete(ctx, comp.ID))
	_, err = repo.FindByID(ctx, comp.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteEmployeesByCompany(t *testing.T) {
	db, repo := setupRepoTest(t)
	ctx := context.Background()

	acme := &company.Company{ID: uuid.New(), Name: "Acme"}
	other := &company.Company{ID: uuid.New(), Name: "Other"}
	require.NoError(t, repo.Create(ctx, acme))
	require.NoError(t, repo.Create(ctx, other))

	emplRepo := employee.NewRepository(db)
	for i := 0; i < 3; i++ {
		require.NoError(t, emplRepo.Create(ctx, &employee.Employee{
			ID:        uuid.New(),
			CompanyID: acme.ID,
			FirstName: "Ann",
			LastName:  fmt.Sprintf("Lee %d", i),
		}))
	}
	require.NoError(t, emplRepo.Create(ctx, &employee.Employee{
		ID:        uuid.New(),
		CompanyID: other.ID,
		FirstName: "Ben",
		LastName:  "Ray",
	}))

	removed, err := repo.DeleteEmployeesByCompany(ctx, acme.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, removed)

	// The other company's employee survives.
	remaining, total, err := emplRepo.FindPage(ctx, nil, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].CompanyID)
}
