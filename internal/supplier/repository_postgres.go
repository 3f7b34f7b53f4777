package supplier

import (
	"database/sql"
	"fmt"
	"strconv"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	supplierColumns = `id, "companyName", "contactPerson", "registrationNumber", phone, description, email, password, address, logo, "createdAt", "updatedAt"`

	getSupplierByIDQuery = `
		SELECT s.id, s."companyName", s."contactPerson", s."registrationNumber", s.phone, s.description, s.email, s.password, s.address, s.logo, s."createdAt", s."updatedAt",
		       COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0) AS "averageRating",
		       COUNT(r.id) AS "reviewCount"
		FROM suppliers s
		LEFT JOIN supplier_reviews r ON r."supplierId" = s.id
		WHERE s.id = $1
		GROUP BY s.id
	`
	insertSupplierQuery = `
		INSERT INTO suppliers ("companyName", "contactPerson", "registrationNumber", phone, description, email, password, address, logo, "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`
	updateSupplierQuery = `
		UPDATE suppliers
		SET "companyName" = $1,
			"contactPerson" = $2,
			"registrationNumber" = $3,
			phone = $4,
			description = $5,
			email = $6,
			password = $7,
			address = $8,
			logo = $9,
			"updatedAt" = $10
		WHERE id = $11
	`
	deleteSupplierQuery = `DELETE FROM suppliers WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Supplier, error) {
	s, err := scanSupplierWithAggregates(r.db.QueryRow(getSupplierByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Supplier{}, ErrNotFound
		}
		return Supplier{}, err
	}
	return s, nil
}

func (r *PostgresRepository) GetByEmail(email string) (Supplier, error) {
	q := `SELECT ` + supplierColumns + ` FROM suppliers WHERE email = $1`
	s, err := scanSupplier(r.db.QueryRow(q, email))
	if err != nil {
		if err == sql.ErrNoRows {
			return Supplier{}, ErrNotFound
		}
		return Supplier{}, err
	}
	return s, nil
}

// List applies the optional filters and returns suppliers with their
// computed review aggregates, ordered by company name.
func (r *PostgresRepository) List(filter ListFilter) ([]Supplier, int, error) {
	query := `
		SELECT s.id, s."companyName", s."contactPerson", s."registrationNumber", s.phone, s.description, s.email, s.password, s.address, s.logo, s."createdAt", s."updatedAt",
		       COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0) AS "averageRating",
		       COUNT(r.id) AS "reviewCount"
		FROM suppliers s
		LEFT JOIN supplier_reviews r ON r."supplierId" = s.id
	`
	args := []any{}
	where := ""
	if filter.CompanyName != "" {
		args = append(args, "%"+filter.CompanyName+"%")
		where += ` AND s."companyName" ILIKE $` + strconv.Itoa(len(args))
	}
	if filter.Address != "" {
		args = append(args, "%"+filter.Address+"%")
		where += ` AND s.address ILIKE $` + strconv.Itoa(len(args))
	}
	if where != "" {
		query += " WHERE " + where[len(" AND "):]
	}
	query += ` GROUP BY s.id`
	if filter.AverageRating > 0 {
		args = append(args, filter.AverageRating)
		query += ` HAVING COALESCE(ROUND(AVG(r.rating)::numeric, 1), 0) >= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY s."companyName" ASC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]Supplier, 0)
	for rows.Next() {
		s, err := scanSupplierWithAggregates(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}

	return out, len(out), rows.Err()
}

func (r *PostgresRepository) Create(s Supplier) (Supplier, error) {
	var id int
	err := r.db.QueryRow(
		insertSupplierQuery,
		s.CompanyName,
		s.ContactPerson,
		s.RegistrationNumber,
		s.Phone,
		nullableString(s.Description),
		s.Email,
		s.Password,
		s.Address,
		nullableString(s.Logo),
		s.CreatedAt,
		s.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Supplier{}, err
	}

	s.ID = id
	return s, nil
}

func (r *PostgresRepository) Update(id int, upd Supplier) (Supplier, error) {
	result, err := r.db.Exec(
		updateSupplierQuery,
		upd.CompanyName,
		upd.ContactPerson,
		upd.RegistrationNumber,
		upd.Phone,
		nullableString(upd.Description),
		upd.Email,
		upd.Password,
		upd.Address,
		nullableString(upd.Logo),
		upd.UpdatedAt,
		id,
	)
	if err != nil {
		return Supplier{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Supplier{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteSupplierQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSupplier(row rowScanner) (Supplier, error) {
	var (
		s    Supplier
		desc sql.NullString
		logo sql.NullString
	)
	err := row.Scan(&s.ID, &s.CompanyName, &s.ContactPerson, &s.RegistrationNumber, &s.Phone, &desc, &s.Email, &s.Password, &s.Address, &logo, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return Supplier{}, err
	}
	if desc.Valid {
		s.Description = &desc.String
	}
	if logo.Valid {
		s.Logo = &logo.String
	}
	return s, nil
}

func scanSupplierWithAggregates(row rowScanner) (Supplier, error) {
	var (
		s    Supplier
		desc sql.NullString
		logo sql.NullString
	)
	err := row.Scan(&s.ID, &s.CompanyName, &s.ContactPerson, &s.RegistrationNumber, &s.Phone, &desc, &s.Email, &s.Password, &s.Address, &logo, &s.CreatedAt, &s.UpdatedAt, &s.AverageRating, &s.ReviewCount)
	if err != nil {
		return Supplier{}, err
	}
	if desc.Valid {
		s.Description = &desc.String
	}
	if logo.Valid {
		s.Logo = &logo.String
	}
	return s, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
