package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getCartQuery    = `SELECT id FROM carts WHERE "userId" = $1`
	insertCartQuery = `INSERT INTO carts ("userId") VALUES ($1) RETURNING id`

	// LEFT JOIN keeps items whose equipment row has been deleted; their
	// price contributes 0 to the cart total.
	listItemsQuery = `
		SELECT ci.id, ci."equipmentId", ci.quantity,
		       e.id, e.name, COALESCE(e.price, 0), e."supplierId", e.photo
		FROM cart_items ci
		LEFT JOIN equipment e ON e.id = ci."equipmentId"
		WHERE ci."cartId" = $1
		ORDER BY ci.id
	`
	upsertItemQuery = `
		INSERT INTO cart_items ("cartId", "equipmentId", quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT ("cartId", "equipmentId")
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING id, quantity
	`
	updateItemQuery = `
		UPDATE cart_items
		SET quantity = $3
		WHERE "cartId" = $1 AND "equipmentId" = $2
		RETURNING id, quantity
	`
	removeItemQuery = `DELETE FROM cart_items WHERE "cartId" = $1 AND "equipmentId" = $2`
	clearItemsQuery = `DELETE FROM cart_items WHERE "cartId" = $1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrCreate(userID int) (Cart, error) {
	var cartID int
	err := r.db.QueryRow(getCartQuery, userID).Scan(&cartID)
	if err == sql.ErrNoRows {
		err = r.db.QueryRow(insertCartQuery, userID).Scan(&cartID)
	}
	if err != nil {
		return Cart{}, err
	}

	items, err := r.listItems(cartID)
	if err != nil {
		return Cart{}, err
	}

	return Cart{ID: cartID, UserID: userID, Items: items}, nil
}

func (r *PostgresRepository) AddItem(cartID int, eq ItemEquipment, quantity int) (CartItem, error) {
	item := CartItem{EquipmentID: eq.ID, Equipment: eq}
	err := r.db.QueryRow(upsertItemQuery, cartID, eq.ID, quantity).Scan(&item.ID, &item.Quantity)
	if err != nil {
		return CartItem{}, err
	}
	return item, nil
}

func (r *PostgresRepository) UpdateItemQuantity(cartID int, equipmentID int, quantity int) (CartItem, error) {
	item := CartItem{EquipmentID: equipmentID}
	err := r.db.QueryRow(updateItemQuery, cartID, equipmentID, quantity).Scan(&item.ID, &item.Quantity)
	if err != nil {
		if err == sql.ErrNoRows {
			return CartItem{}, ErrItemNotFound
		}
		return CartItem{}, err
	}
	return item, nil
}

func (r *PostgresRepository) RemoveItem(cartID int, equipmentID int) error {
	result, err := r.db.Exec(removeItemQuery, cartID, equipmentID)
	if err != nil {
		return err
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Clear(cartID int) error {
	_, err := r.db.Exec(clearItemsQuery, cartID)
	return err
}

func (r *PostgresRepository) listItems(cartID int) ([]CartItem, error) {
	rows, err := r.db.Query(listItemsQuery, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CartItem, 0)
	for rows.Next() {
		var (
			item       CartItem
			eqID       sql.NullInt64
			name       sql.NullString
			price      sql.NullInt64
			supplierID sql.NullInt64
			photo      sql.NullString
		)
		if err := rows.Scan(&item.ID, &item.EquipmentID, &item.Quantity, &eqID, &name, &price, &supplierID, &photo); err != nil {
			return nil, err
		}
		if eqID.Valid {
			item.Equipment = ItemEquipment{
				ID:         int(eqID.Int64),
				Name:       name.String,
				Price:      int(price.Int64),
				SupplierID: int(supplierID.Int64),
			}
			if photo.Valid {
				item.Equipment.Photo = &photo.String
			}
		}
		items = append(items, item)
	}

	return items, rows.Err()
}
