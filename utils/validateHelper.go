package utils

import (
	"context"
	"errors"
	"reflect"

	"github.com/vyasarsoft/invoices_backend/config"
)

func ValidateUnique[T any](ctx context.Context, userId int, column string, value interface{}, exceptId interface{}) error {
	var count int64
	var err error
	if reflect.ValueOf(exceptId).IsZero() {
		count, err = ResourceCountWhere[T](ctx, userId, column+" = ?", value)
	} else {
		count, err = ResourceCountWhere[T](ctx, userId, column+" = ? AND NOT id = ?", value, exceptId)
	}

	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("duplicate " + column)
	}
	return nil
}

// count records, using WHERE user_id = ? AND $condition
// user_id can be zero for unscoped checks
func ResourceCountWhere[T any](ctx context.Context, userId int, condition string, value ...interface{}) (int64, error) {
	var model T

	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Model(&model)
	var count int64
	if userId > 0 {
		dbCtx.Where("user_id = ?", userId)
	}
	dbCtx.Where(condition, value...)
	if err := dbCtx.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
