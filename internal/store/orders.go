package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sipstop/backend/internal/entity"
	gerr "github.com/sipstop/backend/internal/errors"
	"github.com/tidwall/buntdb"
)

func (db *BuntDB) GetAllOrders(_ context.Context) ([]entity.Order, error) {
	orders := []entity.Order{}
	err := db.orders.View(func(tx *buntdb.Tx) error {
		var iterErr error
		tx.Ascend("", func(_, val string) bool {
			var o entity.Order
			if iterErr = json.Unmarshal([]byte(val), &o); iterErr != nil {
				return false
			}
			orders = append(orders, o)
			return true
		})
		return iterErr
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list orders: %w", err)
	}
	return orders, nil
}

func (db *BuntDB) GetOrderById(_ context.Context, id int) (*entity.Order, error) {
	o := &entity.Order{}
	err := db.orders.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(recordKey(id))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(val), o)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, gerr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot get order %d: %w", id, err)
	}
	return o, nil
}

// AddOrder stores a new order. Status strings are the trust boundary here:
// anything outside the closed status set is rejected so the analytics engine
// downstream only ever sees known variants.
func (db *BuntDB) AddOrder(_ context.Context, o *entity.Order) (*entity.Order, error) {
	if len(o.Items) == 0 {
		return nil, gerr.ErrEmptyOrder
	}
	if o.Total.IsNegative() {
		return nil, fmt.Errorf("negative order total %s", o.Total)
	}
	if o.Status == "" {
		o.Status = entity.Pending
	}
	if !entity.ValidOrderStatusNames[o.Status] {
		return nil, fmt.Errorf("%w: %q", gerr.ErrInvalidOrderStatus, o.Status)
	}
	if o.Date.IsZero() {
		o.Date = time.Now().UTC()
	}
	if o.OrderNumber == "" {
		o.OrderNumber = newOrderNumber()
	}

	err := db.orders.Update(func(tx *buntdb.Tx) error {
		id, err := nextID(tx)
		if err != nil {
			return err
		}
		o.Id = id

		bs, err := json.Marshal(o)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(recordKey(id), string(bs), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cannot add order: %w", err)
	}
	return o, nil
}

func newOrderNumber() string {
	return "ORD-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
