package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	getUserByIDQuery = `
		SELECT id, email, password, "firstName", "lastName", phone, "birthDate", description, photo, "createdAt", "updatedAt"
		FROM users
		WHERE id = $1
	`
	getUserByEmailQuery = `
		SELECT id, email, password, "firstName", "lastName", phone, "birthDate", description, photo, "createdAt", "updatedAt"
		FROM users
		WHERE email = $1
	`
	insertUserQuery = `
		INSERT INTO users (email, password, "firstName", "lastName", phone, "birthDate", description, photo, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	updateUserQuery = `
		UPDATE users
		SET email = $1,
			"firstName" = $2,
			"lastName" = $3,
			phone = $4,
			"birthDate" = $5,
			description = $6,
			photo = $7,
			"updatedAt" = $8
		WHERE id = $9
	`
	deleteUserQuery = `DELETE FROM users WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	u, err := scanUser(r.db.QueryRow(getUserByEmailQuery, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(u User) (User, error) {
	var id int
	err := r.db.QueryRow(
		insertUserQuery,
		u.Email,
		u.Password,
		u.FirstName,
		u.LastName,
		u.Phone,
		nullableString(u.BirthDate),
		nullableString(u.Description),
		nullableString(u.Photo),
		u.CreatedAt,
		u.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return User{}, err
	}

	u.ID = id
	return u, nil
}

func (r *PostgresRepository) Update(id int, upd User) (User, error) {
	result, err := r.db.Exec(
		updateUserQuery,
		upd.Email,
		upd.FirstName,
		upd.LastName,
		upd.Phone,
		nullableString(upd.BirthDate),
		nullableString(upd.Description),
		nullableString(upd.Photo),
		upd.UpdatedAt,
		id,
	)
	if err != nil {
		return User{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return User{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteUserQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row rowScanner) (User, error) {
	var (
		u         User
		birthDate sql.NullString
		desc      sql.NullString
		photo     sql.NullString
	)
	err := row.Scan(&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.Phone, &birthDate, &desc, &photo, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return User{}, err
	}
	if birthDate.Valid {
		u.BirthDate = &birthDate.String
	}
	if desc.Valid {
		u.Description = &desc.String
	}
	if photo.Valid {
		u.Photo = &photo.String
	}
	return u, nil
}

// nullableString maps a nil pointer to a SQL NULL argument.
func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
