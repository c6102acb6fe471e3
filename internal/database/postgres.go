package database

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TemirB/order-pipeline/internal/config"
	"github.com/TemirB/order-pipeline/internal/domain"
)

type Repo struct {
	pool   *pgxpool.Pool
	tables config.Tables
	sb     sq.StatementBuilderType
}

func New(pool *pgxpool.Pool, t config.Tables) *Repo {
	return &Repo{
		pool:   pool,
		tables: t,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *Repo) qt(tbl string) string { return fmt.Sprintf(`"%s"."%s"`, r.tables.Schema, tbl) }

// snapshotRead makes the order row and its items come from one snapshot.
var snapshotRead = pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly}

var orderColumns = []string{
	"id", "notes", "order_status", "created_at", "updated_at", "contact_phone", "user_id",
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		o      domain.Order
		status string
	)
	err := row.Scan(&o.ID, &o.Notes, &status, &o.CreatedAt, &o.UpdatedAt, &o.ContactPhone, &o.UserID)
	o.Status = domain.Status(status)
	return o, err
}

func (r *Repo) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	const op = "database.FindByID"

	query, args, err := r.sb.Select(orderColumns...).
		From(r.qt(r.tables.Order)).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	tx, err := r.pool.BeginTx(ctx, snapshotRead)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	o, err := scanOrder(tx.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFound(op, domain.MsgOrderNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items, err := r.itemsOf(ctx, tx, []int64{id})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}
	o.Items = itemsOrEmpty(items[id])
	return &o, nil
}

// FindByUserID returns the user's orders by ascending id. No orders is an empty slice.
func (r *Repo) FindByUserID(ctx context.Context, userID int64) ([]domain.Order, error) {
	const op = "database.FindByUserID"

	query, args, err := r.sb.Select(orderColumns...).
		From(r.qt(r.tables.Order)).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: build query: %w", op, err)
	}

	tx, err := r.pool.BeginTx(ctx, snapshotRead)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	ids := []int64{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	rows.Close()
	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.itemsOf(ctx, tx, ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}
	for i := range orders {
		orders[i].Items = itemsOrEmpty(items[orders[i].ID])
	}
	return orders, nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *Repo) itemsOf(ctx context.Context, q querier, orderIDs []int64) (map[int64][]domain.Item, error) {
	query, args, err := r.sb.Select("id", "order_id", "product_id", "quantity").
		From(r.qt(r.tables.Item)).
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build items query: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[int64][]domain.Item, len(orderIDs))
	for rows.Next() {
		var (
			it      domain.Item
			orderID int64
		)
		if err := rows.Scan(&it.ID, &orderID, &it.ProductID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}

// Save inserts the order when its id is zero and updates it otherwise. The item
// collection is replaced as a whole in the same transaction. The stored order,
// with generated ids, is returned.
func (r *Repo) Save(ctx context.Context, o *domain.Order) (*domain.Order, error) {
	const op = "database.Save"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	saved := *o
	if saved.ID == 0 {
		query, args, err := r.sb.Insert(r.qt(r.tables.Order)).
			Columns(orderColumns[1:]...).
			Values(o.Notes, string(o.Status), o.CreatedAt, o.UpdatedAt, o.ContactPhone, o.UserID).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%s: build insert: %w", op, err)
		}
		if err := tx.QueryRow(ctx, query, args...).Scan(&saved.ID); err != nil {
			return nil, fmt.Errorf("%s: insert order: %w", op, err)
		}
	} else {
		query, args, err := r.sb.Update(r.qt(r.tables.Order)).
			Set("notes", o.Notes).
			Set("order_status", string(o.Status)).
			Set("updated_at", o.UpdatedAt).
			Set("contact_phone", o.ContactPhone).
			Where(sq.Eq{"id": o.ID}).
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%s: build update: %w", op, err)
		}
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return nil, fmt.Errorf("%s: update order: %w", op, err)
		}
		if tag.RowsAffected() == 0 {
			return nil, domain.NotFound(op, domain.MsgOrderNotFound, o.ID)
		}

		del, args, err := r.sb.Delete(r.qt(r.tables.Item)).Where(sq.Eq{"order_id": o.ID}).ToSql()
		if err != nil {
			return nil, fmt.Errorf("%s: build delete items: %w", op, err)
		}
		if _, err := tx.Exec(ctx, del, args...); err != nil {
			return nil, fmt.Errorf("%s: delete items: %w", op, err)
		}
	}

	saved.Items = make([]domain.Item, len(o.Items))
	if len(o.Items) > 0 {
		batch := &pgx.Batch{}
		for _, it := range o.Items {
			query, args, err := r.sb.Insert(r.qt(r.tables.Item)).
				Columns("order_id", "product_id", "quantity").
				Values(saved.ID, it.ProductID, it.Quantity).
				Suffix("RETURNING id").
				ToSql()
			if err != nil {
				return nil, fmt.Errorf("%s: build insert item: %w", op, err)
			}
			batch.Queue(query, args...)
		}
		br := tx.SendBatch(ctx, batch)
		for i, it := range o.Items {
			saved.Items[i] = domain.Item{ProductID: it.ProductID, Quantity: it.Quantity}
			if err := br.QueryRow().Scan(&saved.Items[i].ID); err != nil {
				br.Close()
				return nil, fmt.Errorf("%s: insert item: %w", op, err)
			}
		}
		if err := br.Close(); err != nil {
			return nil, fmt.Errorf("%s: insert items: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}
	return &saved, nil
}

// Delete removes the order and its items in one transaction.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	const op = "database.Delete"

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	delItems, args, err := r.sb.Delete(r.qt(r.tables.Item)).Where(sq.Eq{"order_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: build delete items: %w", op, err)
	}
	if _, err := tx.Exec(ctx, delItems, args...); err != nil {
		return fmt.Errorf("%s: delete items: %w", op, err)
	}

	delOrder, args, err := r.sb.Delete(r.qt(r.tables.Order)).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: build delete order: %w", op, err)
	}
	tag, err := tx.Exec(ctx, delOrder, args...)
	if err != nil {
		return fmt.Errorf("%s: delete order: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound(op, domain.MsgOrderNotFound, id)
	}
	return tx.Commit(ctx)
}

func itemsOrEmpty(items []domain.Item) []domain.Item {
	if items == nil {
		return []domain.Item{}
	}
	return items
}
