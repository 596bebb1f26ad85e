package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sipstop/backend/internal/entity"
	gerr "github.com/sipstop/backend/internal/errors"
	"github.com/tidwall/buntdb"
)

func (db *BuntDB) GetAllProducts(_ context.Context) ([]entity.Product, error) {
	products := []entity.Product{}
	err := db.products.View(func(tx *buntdb.Tx) error {
		var iterErr error
		tx.Ascend("", func(_, val string) bool {
			var p entity.Product
			if iterErr = json.Unmarshal([]byte(val), &p); iterErr != nil {
				return false
			}
			products = append(products, p)
			return true
		})
		return iterErr
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list products: %w", err)
	}
	return products, nil
}

func (db *BuntDB) GetProductById(_ context.Context, id int) (*entity.Product, error) {
	p := &entity.Product{}
	err := db.products.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(recordKey(id))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(val), p)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, gerr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot get product %d: %w", id, err)
	}
	return p, nil
}

func (db *BuntDB) AddProduct(_ context.Context, p *entity.Product) (int, error) {
	err := db.products.Update(func(tx *buntdb.Tx) error {
		id, err := nextID(tx)
		if err != nil {
			return err
		}
		p.Id = id

		bs, err := json.Marshal(p)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(recordKey(id), string(bs), nil)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("cannot add product: %w", err)
	}
	return p.Id, nil
}

func (db *BuntDB) UpdateProduct(ctx context.Context, id int, p *entity.Product) (*entity.Product, error) {
	if _, err := db.GetProductById(ctx, id); err != nil {
		return nil, err
	}
	p.Id = id

	bs, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	err = db.products.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(recordKey(id), string(bs), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cannot update product %d: %w", id, err)
	}
	return p, nil
}

func (db *BuntDB) DeleteProductById(_ context.Context, id int) error {
	err := db.products.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(recordKey(id))
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return gerr.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("cannot delete product %d: %w", id, err)
	}
	return nil
}
