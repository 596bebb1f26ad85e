package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sipstop/backend/internal/entity"
	gerr "github.com/sipstop/backend/internal/errors"
	"github.com/tidwall/buntdb"
)

func (db *BuntDB) GetAllUsers(_ context.Context) ([]entity.User, error) {
	users := []entity.User{}
	err := db.users.View(func(tx *buntdb.Tx) error {
		var iterErr error
		tx.Ascend("", func(_, val string) bool {
			var u entity.User
			if iterErr = json.Unmarshal([]byte(val), &u); iterErr != nil {
				return false
			}
			users = append(users, u)
			return true
		})
		return iterErr
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list users: %w", err)
	}
	return users, nil
}

func (db *BuntDB) GetUserById(_ context.Context, id int) (*entity.User, error) {
	u := &entity.User{}
	err := db.users.View(func(tx *buntdb.Tx) error {
		val, err := tx.Get(recordKey(id))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(val), u)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return nil, gerr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot get user %d: %w", id, err)
	}
	return u, nil
}

func (db *BuntDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	email = strings.ToLower(email)
	var found *entity.User
	err := db.users.View(func(tx *buntdb.Tx) error {
		tx.Ascend("", func(_, val string) bool {
			var u entity.User
			if json.Unmarshal([]byte(val), &u) != nil {
				return true
			}
			if strings.ToLower(u.Email) == email {
				found = &u
				return false
			}
			return true
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan users: %w", err)
	}
	if found == nil {
		return nil, gerr.ErrNotFound
	}
	return found, nil
}

func (db *BuntDB) AddUser(_ context.Context, u *entity.User) (int, error) {
	if !entity.ValidUserRoles[u.Role] {
		u.Role = entity.Customer
	}
	u.Email = strings.ToLower(u.Email)

	err := db.users.Update(func(tx *buntdb.Tx) error {
		taken := false
		tx.Ascend("", func(_, val string) bool {
			var existing entity.User
			if json.Unmarshal([]byte(val), &existing) != nil {
				return true
			}
			if strings.ToLower(existing.Email) == u.Email {
				taken = true
				return false
			}
			return true
		})
		if taken {
			return gerr.ErrEmailTaken
		}

		id, err := nextID(tx)
		if err != nil {
			return err
		}
		u.Id = id

		bs, err := json.Marshal(u)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(recordKey(id), string(bs), nil)
		return err
	})
	if err != nil {
		return 0, err
	}
	return u.Id, nil
}

func (db *BuntDB) UpdateUser(ctx context.Context, id int, upd *entity.UserUpdate) (*entity.User, error) {
	u, err := db.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}

	// Id, role and password hash are immutable through this path.
	if upd.Name != "" {
		u.Name = upd.Name
	}
	if upd.Email != "" && strings.ToLower(upd.Email) != u.Email {
		if _, err := db.GetUserByEmail(ctx, upd.Email); !errors.Is(err, gerr.ErrNotFound) {
			if err == nil {
				return nil, gerr.ErrEmailTaken
			}
			return nil, err
		}
		u.Email = strings.ToLower(upd.Email)
	}

	bs, err := json.Marshal(u)
	if err != nil {
		return nil, err
	}
	err = db.users.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(recordKey(id), string(bs), nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("cannot update user %d: %w", id, err)
	}
	return u, nil
}
