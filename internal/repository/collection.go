package repository

import (
	"errors"
	"fmt"
	"slices"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/store"
	"go-inventory-ledger/pkg/validator"

	"github.com/sirupsen/logrus"
)

var (
	ErrAlreadyExists = errors.New("record already exists")
	ErrInvalidRecord = errors.New("invalid record")
)

// errNothingChanged aborts a store transaction without writing
var errNothingChanged = errors.New("nothing changed")

// collection implements the add/get/remove/update contract shared by every manager
type collection[T model.Record] struct {
	store *store.Store
	name  string
	pick  func(doc *store.Document) (*[]T, error)
	log   logrus.FieldLogger
}

func newCollection[T model.Record](s *store.Store, log logrus.FieldLogger, name string, pick func(*store.Document) (*[]T, error)) collection[T] {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return collection[T]{store: s, name: name, pick: pick, log: log.WithField("collection", name)}
}

func indexOf[T model.Record](list []T, id string) int {
	return slices.IndexFunc(list, func(r T) bool { return r.GetID() == id })
}

func (c collection[T]) getAll() ([]T, error) {
	doc, err := c.store.Read()
	if err != nil {
		return nil, err
	}
	list, err := c.pick(doc)
	if err != nil {
		return nil, err
	}
	return *list, nil
}

func (c collection[T]) findTx(doc *store.Document, id string) (T, bool, error) {
	var zero T
	list, err := c.pick(doc)
	if err != nil {
		return zero, false, err
	}
	if i := indexOf(*list, id); i >= 0 {
		return (*list)[i], true, nil
	}
	return zero, false, nil
}

func (c collection[T]) find(id string) (T, bool, error) {
	doc, err := c.store.Read()
	if err != nil {
		var zero T
		return zero, false, err
	}
	return c.findTx(doc, id)
}

func (c collection[T]) addTx(doc *store.Document, rec T) error {
	list, err := c.pick(doc)
	if err != nil {
		return err
	}
	if errs := validator.ValidateStruct(rec); len(errs) > 0 {
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrInvalidRecord, errs[0].FailedField, errs[0].Tag)
	}
	if indexOf(*list, rec.GetID()) >= 0 {
		return fmt.Errorf("%w: %s %q", ErrAlreadyExists, c.name, rec.GetID())
	}
	*list = append(*list, rec)
	return nil
}

func (c collection[T]) add(rec T) error {
	return c.store.Transaction(func(doc *store.Document) error {
		return c.addTx(doc, rec)
	})
}

func (c collection[T]) removeTx(doc *store.Document, id string) (bool, error) {
	list, err := c.pick(doc)
	if err != nil {
		return false, err
	}
	i := indexOf(*list, id)
	if i < 0 {
		c.log.WithField("id", id).Warn("Record not found")
		return false, nil
	}
	*list = slices.Delete(*list, i, i+1)
	return true, nil
}

func (c collection[T]) remove(id string) (bool, error) {
	return c.commitIfFound(func(doc *store.Document) (bool, error) {
		return c.removeTx(doc, id)
	})
}

func (c collection[T]) updateTx(doc *store.Document, id string, apply func(*T)) (bool, error) {
	list, err := c.pick(doc)
	if err != nil {
		return false, err
	}
	i := indexOf(*list, id)
	if i < 0 {
		c.log.WithField("id", id).Warn("Record not found")
		return false, nil
	}
	apply(&(*list)[i])
	return true, nil
}

func (c collection[T]) update(id string, apply func(*T)) (bool, error) {
	return c.commitIfFound(func(doc *store.Document) (bool, error) {
		return c.updateTx(doc, id, apply)
	})
}

// commitIfFound persists only when op reports a match
func (c collection[T]) commitIfFound(op func(doc *store.Document) (bool, error)) (bool, error) {
	err := c.store.Transaction(func(doc *store.Document) error {
		found, err := op(doc)
		if err != nil {
			return err
		}
		if !found {
			return errNothingChanged
		}
		return nil
	})
	if errors.Is(err, errNothingChanged) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
