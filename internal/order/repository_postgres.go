package order

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

type rowScanner interface {
	Scan(dest ...any) error
}

const (
	orderColumns = `id, "userId", "supplierId", "deliveryAddress", "totalCost", status, "completionTime", "orderName", description, "dateOfOrdering"`

	insertOrderQuery = `
		INSERT INTO orders ("userId", "supplierId", "deliveryAddress", "totalCost", status, "orderName", description, "dateOfOrdering")
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	insertOrderItemQuery = `
		INSERT INTO order_items ("orderId", "equipmentId", quantity)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	clearCartItemsQuery = `DELETE FROM cart_items WHERE "cartId" = $1`

	getOrderByIDQuery    = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	listByUserQuery      = `SELECT ` + orderColumns + ` FROM orders WHERE "userId" = $1 ORDER BY "dateOfOrdering" DESC`
	listBySupplierQuery  = `
		SELECT o.id, o."userId", o."supplierId", o."deliveryAddress", o."totalCost", o.status, o."completionTime", o."orderName", o.description, o."dateOfOrdering",
		       u."firstName", u."lastName", u.phone
		FROM orders o
		JOIN users u ON u.id = o."userId"
		WHERE o."supplierId" = $1
		ORDER BY o."dateOfOrdering" DESC
	`
	listItemsForOrdersQuery = `
		SELECT oi.id, oi."orderId", oi."equipmentId", oi.quantity,
		       e.id, e.name, COALESCE(e.price, 0), e.photo
		FROM order_items oi
		LEFT JOIN equipment e ON e.id = oi."equipmentId"
		WHERE oi."orderId" = ANY($1::int[])
		ORDER BY oi.id
	`
	listReviewsForOrdersQuery = `
		SELECT r."orderId", r.id, r.rating, r."shortReview", r.description, u."firstName", u."lastName"
		FROM supplier_reviews r
		JOIN users u ON u.id = r."userId"
		WHERE r."orderId" = ANY($1::int[])
	`
	updateStatusQuery         = `UPDATE orders SET status = $2 WHERE id = $1`
	updateCompletionTimeQuery = `UPDATE orders SET "completionTime" = $2 WHERE id = $1`
	deleteOrderItemsQuery     = `DELETE FROM order_items WHERE "orderId" = $1`
	deleteOrderQuery          = `DELETE FROM orders WHERE id = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// CreateFromCart runs the whole checkout write inside one transaction.
// The cart-item delete's affected-row count must match the snapshot; a
// mismatch means another checkout got there first and the transaction
// rolls back without creating an order.
func (r *PostgresRepository) CreateFromCart(ord Order, cartID int) (Order, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		insertOrderQuery,
		ord.UserID,
		ord.SupplierID,
		ord.DeliveryAddress,
		ord.TotalCost,
		ord.Status,
		ord.OrderName,
		nullableString(ord.Description),
		ord.DateOfOrdering,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, err
	}

	for i := range ord.Items {
		err = tx.QueryRow(insertOrderItemQuery, ord.ID, ord.Items[i].EquipmentID, ord.Items[i].Quantity).Scan(&ord.Items[i].ID)
		if err != nil {
			return Order{}, err
		}
	}

	result, err := tx.Exec(clearCartItemsQuery, cartID)
	if err != nil {
		return Order{}, err
	}
	if n, err := result.RowsAffected(); err == nil && int(n) != len(ord.Items) {
		return Order{}, ErrCartConflict
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}

	return ord, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderByIDQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, ErrNotFound
		}
		return Order{}, err
	}

	orders := []Order{ord}
	if err := r.attachItems(orders); err != nil {
		return Order{}, err
	}
	if err := r.attachReviews(orders); err != nil {
		return Order{}, err
	}
	return orders[0], nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(listByUserQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	if err := r.attachReviews(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) ListBySupplier(supplierID int) ([]Order, error) {
	rows, err := r.db.Query(listBySupplierQuery, supplierID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		var (
			ord      Order
			complete sql.NullString
			desc     sql.NullString
			customer CustomerInfo
		)
		err := rows.Scan(
			&ord.ID, &ord.UserID, &ord.SupplierID, &ord.DeliveryAddress, &ord.TotalCost, &ord.Status, &complete, &ord.OrderName, &desc, &ord.DateOfOrdering,
			&customer.FirstName, &customer.LastName, &customer.Phone,
		)
		if err != nil {
			return nil, err
		}
		if complete.Valid {
			ord.CompletionTime = &complete.String
		}
		if desc.Valid {
			ord.Description = &desc.String
		}
		ord.Customer = &customer
		orders = append(orders, ord)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateStatus(id int, status string) (Order, error) {
	result, err := r.db.Exec(updateStatusQuery, id, status)
	if err != nil {
		return Order{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) UpdateCompletionTime(id int, value string) (Order, error) {
	result, err := r.db.Exec(updateCompletionTimeQuery, id, value)
	if err != nil {
		return Order{}, err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(id)
}

func (r *PostgresRepository) Delete(id int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(deleteOrderItemsQuery, id); err != nil {
		return err
	}
	result, err := tx.Exec(deleteOrderQuery, id)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return tx.Commit()
}

// attachItems loads the items for every order in one query.
func (r *PostgresRepository) attachItems(orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, 0, len(orders))
	byID := make(map[int]*Order, len(orders))
	for i := range orders {
		orders[i].Items = []OrderItem{}
		ids = append(ids, orders[i].ID)
		byID[orders[i].ID] = &orders[i]
	}

	rows, err := r.db.Query(listItemsForOrdersQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item    OrderItem
			orderID int
			eqID    sql.NullInt64
			name    sql.NullString
			price   sql.NullInt64
			photo   sql.NullString
		)
		if err := rows.Scan(&item.ID, &orderID, &item.EquipmentID, &item.Quantity, &eqID, &name, &price, &photo); err != nil {
			return err
		}
		if eqID.Valid {
			item.Equipment = ItemEquipment{ID: int(eqID.Int64), Name: name.String, Price: int(price.Int64)}
			if photo.Valid {
				item.Equipment.Photo = &photo.String
			}
		}
		if ord, ok := byID[orderID]; ok {
			ord.Items = append(ord.Items, item)
		}
	}

	return rows.Err()
}

func (r *PostgresRepository) attachReviews(orders []Order) error {
	if len(orders) == 0 {
		return nil
	}

	ids := make([]int, 0, len(orders))
	byID := make(map[int]*Order, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].ID)
		byID[orders[i].ID] = &orders[i]
	}

	rows, err := r.db.Query(listReviewsForOrdersQuery, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int
			rev     ReviewInfo
		)
		if err := rows.Scan(&orderID, &rev.ID, &rev.Rating, &rev.ShortReview, &rev.Description, &rev.FirstName, &rev.LastName); err != nil {
			return err
		}
		if ord, ok := byID[orderID]; ok {
			review := rev
			ord.Review = &review
		}
	}

	return rows.Err()
}

func scanOrder(row rowScanner) (Order, error) {
	var (
		ord      Order
		complete sql.NullString
		desc     sql.NullString
	)
	err := row.Scan(&ord.ID, &ord.UserID, &ord.SupplierID, &ord.DeliveryAddress, &ord.TotalCost, &ord.Status, &complete, &ord.OrderName, &desc, &ord.DateOfOrdering)
	if err != nil {
		return Order{}, err
	}
	if complete.Valid {
		ord.CompletionTime = &complete.String
	}
	if desc.Valid {
		ord.Description = &desc.String
	}
	return ord, nil
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
