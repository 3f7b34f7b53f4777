package review

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
	reviewSelect = `
		SELECT r.id, r."userId", r."orderId", r."supplierId", r.rating, r."shortReview", r.description, r."createdAt",
		       u."firstName", u."lastName"
		FROM supplier_reviews r
		JOIN users u ON u.id = r."userId"
	`
	getReviewByIDQuery    = reviewSelect + ` WHERE r.id = $1`
	getReviewByOrderQuery = reviewSelect + ` WHERE r."orderId" = $1`
	listBySupplierQuery   = reviewSelect + ` WHERE r."supplierId" = $1 ORDER BY r."createdAt" DESC`

	insertReviewQuery = `
		INSERT INTO supplier_reviews ("userId", "orderId", "supplierId", rating, "shortReview", description, "createdAt")
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	updateReviewQuery = `
		UPDATE supplier_reviews
		SET rating = $1, "shortReview" = $2, description = $3
		WHERE id = $4
	`
	deleteReviewQuery = `DELETE FROM supplier_reviews WHERE id = $1`

	averageRatingQuery = `
		SELECT COALESCE(ROUND(AVG(rating)::numeric, 1), 0)
		FROM supplier_reviews
		WHERE "supplierId" = $1
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (Review, error) {
	rev, err := scanReview(r.db.QueryRow(getReviewByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepository) GetByOrder(orderID int) (Review, error) {
	rev, err := scanReview(r.db.QueryRow(getReviewByOrderQuery, orderID))
	if err != nil {
		if err == sql.ErrNoRows {
			return Review{}, ErrNotFound
		}
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepository) ListBySupplier(supplierID int) ([]Review, error) {
	rows, err := r.db.Query(listBySupplierQuery, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Create(rev Review) (Review, error) {
	err := r.db.QueryRow(
		insertReviewQuery,
		rev.UserID,
		rev.OrderID,
		rev.SupplierID,
		rev.Rating,
		rev.ShortReview,
		rev.Description,
		rev.CreatedAt,
	).Scan(&rev.ID)
	if err != nil {
		return Review{}, err
	}
	return rev, nil
}

func (r *PostgresRepository) Update(id int, rating int, shortReview string, description string) (Review, error) {
	result, err := r.db.Exec(updateReviewQuery, rating, shortReview, description, id)
	if err != nil {
		return Review{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Review{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	result, err := r.db.Exec(deleteReviewQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) AverageForSupplier(supplierID int) (float64, error) {
	var avg float64
	if err := r.db.QueryRow(averageRatingQuery, supplierID).Scan(&avg); err != nil {
		return 0, err
	}
	return avg, nil
}

func scanReview(row rowScanner) (Review, error) {
	var (
		rev      Review
		reviewer ReviewerInfo
	)
	err := row.Scan(&rev.ID, &rev.UserID, &rev.OrderID, &rev.SupplierID, &rev.Rating, &rev.ShortReview, &rev.Description, &rev.CreatedAt, &reviewer.FirstName, &reviewer.LastName)
	if err != nil {
		return Review{}, err
	}
	rev.Reviewer = &reviewer
	return rev, nil
}
