package store

import (
	"fmt"
	"strconv"

	"github.com/sipstop/backend/internal/dependency"
	"github.com/tidwall/buntdb"
)

// Config defines the flat-file locations of the record collections.
// Use ":memory:" for ephemeral stores in tests.
type Config struct {
	UsersPath    string `mapstructure:"users_path"`
	ProductsPath string `mapstructure:"products_path"`
	OrdersPath   string `mapstructure:"orders_path"`
	MailPath     string `mapstructure:"mail_path"`
}

// BuntDB implements the record store over one buntdb file per collection.
// Records are JSON values keyed by zero-padded ids, so lexical key order is
// ascending id order.
type BuntDB struct {
	users    *buntdb.DB
	products *buntdb.DB
	orders   *buntdb.DB
	mail     *buntdb.DB
}

// New opens all collections.
func New(c Config) (*BuntDB, error) {
	db := &BuntDB{}
	var err error

	db.users, err = buntdb.Open(c.UsersPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open users collection: %w", err)
	}
	db.products, err = buntdb.Open(c.ProductsPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open products collection: %w", err)
	}
	db.orders, err = buntdb.Open(c.OrdersPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open orders collection: %w", err)
	}
	db.mail, err = buntdb.Open(c.MailPath)
	if err != nil {
		return nil, fmt.Errorf("cannot open mail collection: %w", err)
	}

	return db, nil
}

func (db *BuntDB) Users() dependency.Users       { return db }
func (db *BuntDB) Products() dependency.Products { return db }
func (db *BuntDB) Orders() dependency.Orders     { return db }
func (db *BuntDB) Mail() dependency.Mail         { return db }

// Close closes all collections.
func (db *BuntDB) Close() {
	for _, d := range []*buntdb.DB{db.users, db.products, db.orders, db.mail} {
		if d != nil {
			d.Close()
		}
	}
}

// recordKey pads ids so that buntdb's lexical iteration order matches
// ascending numeric order.
func recordKey(id int) string {
	return fmt.Sprintf("%012d", id)
}

// nextID returns max(id)+1 within the transaction, 1 for an empty collection.
func nextID(tx *buntdb.Tx) (int, error) {
	maxID := 0
	err := tx.Descend("", func(key, _ string) bool {
		if id, err := strconv.Atoi(key); err == nil {
			maxID = id
		}
		return false
	})
	if err != nil {
		return 0, err
	}
	return maxID + 1, nil
}
