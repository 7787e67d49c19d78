package database

import (
	"context"
	"log"

	"stockroom/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	Username string
	Password string
	Role     string
}

var defaultUsers = []seedUser{
	{Username: "admin", Password: "adminpass", Role: models.RoleAdmin},
	{Username: "emp", Password: "emppass", Role: models.RoleEmployee},
	{Username: "supp", Password: "supppass", Role: models.RoleSupplier},
}

// SeedUsers creates the default demo accounts if they do not exist yet.
// Intended for development setups; production deployments manage users
// out of band.
func SeedUsers(ctx context.Context, pool *pgxpool.Pool) error {
	for _, u := range defaultUsers {
		var exists bool
		err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, u.Username).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		_, err = pool.Exec(ctx,
			`INSERT INTO users (id, username, password_hash, role) VALUES ($1, $2, $3, $4)`,
			uuid.New(), u.Username, string(hash), u.Role)
		if err != nil {
			return err
		}
		log.Printf("Seeded user %s (%s)", u.Username, u.Role)
	}
	return nil
}
