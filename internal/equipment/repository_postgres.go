package equipment

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
	equipmentSelect = `
		SELECT e.id, e."supplierId", e.name, e.model, e.description, e.price, e.photo, e."serialNumber", e."createdAt", e."updatedAt",
		       s.id, s."companyName", s.address, s.phone, s.logo
		FROM equipment e
		JOIN suppliers s ON s.id = e."supplierId"
	`
	getEquipmentByIDQuery     = equipmentSelect + ` WHERE e.id = $1`
	listEquipmentQuery        = equipmentSelect + ` ORDER BY e.id`
	listBySupplierQuery       = equipmentSelect + ` WHERE e."supplierId" = $1 ORDER BY e.id`
	insertEquipmentQuery      = `
		INSERT INTO equipment ("supplierId", name, model, description, price, photo, "serialNumber", "createdAt", "updatedAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	updateEquipmentQuery = `
		UPDATE equipment
		SET name = $1,
			model = $2,
			description = $3,
			price = $4,
			photo = $5,
			"serialNumber" = $6,
			"updatedAt" = $7
		WHERE id = $8
	`
	deleteEquipmentQuery = `DELETE FROM equipment WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Equipment, error) {
	e, err := scanEquipment(r.db.QueryRow(getEquipmentByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Equipment{}, ErrNotFound
		}
		return Equipment{}, err
	}
	return e, nil
}

func (r *PostgresRepository) List() ([]Equipment, error) {
	return r.queryMany(listEquipmentQuery)
}

func (r *PostgresRepository) ListBySupplier(supplierID int) ([]Equipment, error) {
	return r.queryMany(listBySupplierQuery, supplierID)
}

func (r *PostgresRepository) Create(e Equipment) (Equipment, error) {
	var id int
	err := r.db.QueryRow(
		insertEquipmentQuery,
		e.SupplierID,
		e.Name,
		e.Model,
		e.Description,
		e.Price,
		nullableString(e.Photo),
		e.SerialNumber,
		e.CreatedAt,
		e.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return Equipment{}, err
	}

	e.ID = id
	return e, nil
}

func (r *PostgresRepository) Update(id int, upd Equipment) (Equipment, error) {
	result, err := r.db.Exec(
		updateEquipmentQuery,
		upd.Name,
		upd.Model,
		upd.Description,
		upd.Price,
		nullableString(upd.Photo),
		upd.SerialNumber,
		upd.UpdatedAt,
		id,
	)
	if err != nil {
		return Equipment{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Equipment{}, ErrNotFound
	}

	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteEquipmentQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) queryMany(query string, args ...any) ([]Equipment, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Equipment, 0)
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEquipment(row rowScanner) (Equipment, error) {
	var (
		e     Equipment
		photo sql.NullString
		info  SupplierInfo
		logo  sql.NullString
	)
	err := row.Scan(
		&e.ID, &e.SupplierID, &e.Name, &e.Model, &e.Description, &e.Price, &photo, &e.SerialNumber, &e.CreatedAt, &e.UpdatedAt,
		&info.ID, &info.CompanyName, &info.Address, &info.Phone, &logo,
	)
	if err != nil {
		return Equipment{}, err
	}
	if photo.Valid {
		e.Photo = &photo.String
	}
	if logo.Valid {
		info.Logo = &logo.String
	}
	e.Supplier = &info
	return e, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
