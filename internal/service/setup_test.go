package service

import (
	"context"
	"testing"
	"time"

	"handloom_market/internal/model"
	"handloom_market/internal/repository"
	"handloom_market/pkg/database"
)

// ==================== 测试辅助 ====================

var fixedNow = time.Date(2024, 5, 14, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func setupRepos(t *testing.T) (*Repositories, *repository.Records) {
	t.Helper()
	records := repository.NewRecords(database.NewMemoryStore())
	return NewRepositories(records), records
}

func seedAccounts(t *testing.T, repos *Repositories, accounts ...model.Account) {
	t.Helper()
	repos.Accounts.Save(context.Background(), accounts)
}

func testAccounts() []model.Account {
	return []model.Account{
		{ID: "u_admin", Email: "admin@x.com", Password: "secret1", Role: model.RoleAdmin, Status: model.AccountActive, Name: "Admin", RegistrationDate: "2024-01-01"},
		{ID: "u_meera", Email: "meera@x.com", Password: "loom123", Role: model.RoleArtisan, Status: model.AccountActive, Name: "Meera Weaves", RegistrationDate: "2024-02-01"},
		{ID: "u_ravi", Email: "ravi@x.com", Password: "loom456", Role: model.RoleArtisan, Status: model.AccountPending, Name: "Ravi", RegistrationDate: "2024-05-10"},
		{ID: "u_asha", Email: "asha@x.com", Password: "buy123", Role: model.RoleBuyer, Status: model.AccountActive, Name: "Asha", RegistrationDate: "2024-05-12"},
		{ID: "u_neel", Email: "neel@x.com", Password: "mkt123", Role: model.RoleMarketing, Status: model.AccountSuspended, Name: "Neel", RegistrationDate: "2024-03-03"},
	}
}
