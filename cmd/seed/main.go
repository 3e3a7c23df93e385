// Seeds the development database with two tenants and their users. Safe to
// run repeatedly: existing rows are matched by slug/email and left alone.
package main

import (
	"fmt"
	"os"

	"gorm.io/gorm"

	"notes-service/internal/auth"
	"notes-service/internal/model"
	"notes-service/pkg/config"
	"notes-service/pkg/database"
)

type seedUser struct {
	email string
	role  string
	first string
	last  string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}
	if err := database.Init(cfg); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize database:", err)
		os.Exit(1)
	}
	db := database.GetDB()

	// All seeded accounts share this password.
	passwordHash, err := auth.HashPassword("password")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to hash password:", err)
		os.Exit(1)
	}

	tenants := map[string]string{
		"acme":   "Acme Corporation",
		"globex": "Globex Corporation",
	}

	for slug, name := range tenants {
		tenant := model.Tenant{Name: name, Slug: slug, SubscriptionPlan: model.PlanFree}
		if err := db.Where(model.Tenant{Slug: slug}).FirstOrCreate(&tenant).Error; err != nil {
			fmt.Fprintln(os.Stderr, "Failed to seed tenant", slug, ":", err)
			os.Exit(1)
		}

		users := []seedUser{
			{email: "admin@" + slug + ".test", role: model.RoleAdmin, first: "Admin", last: name},
			{email: "user@" + slug + ".test", role: model.RoleMember, first: "User", last: name},
		}
		for _, u := range users {
			if err := seedOneUser(db, &tenant, u, passwordHash); err != nil {
				fmt.Fprintln(os.Stderr, "Failed to seed user", u.email, ":", err)
				os.Exit(1)
			}
		}

		fmt.Printf("Seeded tenant %q (%s) with %d users\n", name, slug, len(users))
	}
}

func seedOneUser(db *gorm.DB, tenant *model.Tenant, u seedUser, passwordHash string) error {
	user := model.User{
		TenantID:     tenant.ID,
		Email:        u.email,
		PasswordHash: passwordHash,
		Role:         u.role,
		FirstName:    u.first,
		LastName:     u.last,
	}
	return db.Where(model.User{Email: u.email}).FirstOrCreate(&user).Error
}
