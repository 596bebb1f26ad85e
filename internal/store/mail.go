package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sipstop/backend/internal/entity"
	gerr "github.com/sipstop/backend/internal/errors"
	"github.com/tidwall/buntdb"
)

func (db *BuntDB) AddMail(_ context.Context, req *entity.MailRequest) (int, error) {
	err := db.mail.Update(func(tx *buntdb.Tx) error {
		id, err := nextID(tx)
		if err != nil {
			return err
		}
		req.Id = id

		bs, err := json.Marshal(req)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(recordKey(id), string(bs), nil)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("cannot add mail: %w", err)
	}
	return req.Id, nil
}

func (db *BuntDB) GetAllUnsent(_ context.Context) ([]entity.MailRequest, error) {
	unsent := []entity.MailRequest{}
	err := db.mail.View(func(tx *buntdb.Tx) error {
		var iterErr error
		tx.Ascend("", func(_, val string) bool {
			var req entity.MailRequest
			if iterErr = json.Unmarshal([]byte(val), &req); iterErr != nil {
				return false
			}
			if !req.Sent {
				unsent = append(unsent, req)
			}
			return true
		})
		return iterErr
	})
	if err != nil {
		return nil, fmt.Errorf("cannot list unsent mail: %w", err)
	}
	return unsent, nil
}

func (db *BuntDB) UpdateSent(ctx context.Context, id int) error {
	return db.updateMail(ctx, id, func(req *entity.MailRequest) {
		now := time.Now().UTC()
		req.Sent = true
		req.SentAt = &now
		req.ErrMsg = ""
	})
}

func (db *BuntDB) AddError(ctx context.Context, id int, errMsg string) error {
	return db.updateMail(ctx, id, func(req *entity.MailRequest) {
		req.ErrMsg = errMsg
	})
}

func (db *BuntDB) updateMail(_ context.Context, id int, apply func(*entity.MailRequest)) error {
	err := db.mail.Update(func(tx *buntdb.Tx) error {
		val, err := tx.Get(recordKey(id))
		if err != nil {
			return err
		}
		var req entity.MailRequest
		if err := json.Unmarshal([]byte(val), &req); err != nil {
			return err
		}
		apply(&req)
		bs, err := json.Marshal(&req)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(recordKey(id), string(bs), nil)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return gerr.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("cannot update mail %d: %w", id, err)
	}
	return nil
}
