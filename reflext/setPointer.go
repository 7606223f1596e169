// Package reflext copies values into result pointers, the way caches hand
// stored values back to callers.
package reflext

import (
	"reflect"

	"github.com/pkg/errors"
)

// SetPointer stores srcValue into the variable dstPtr points to. The value must
// be assignable to that variable; a nil value stores the zero value.
func SetPointer(dstPtr, srcValue interface{}) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch rerr := r.(type) {
			case error:
				err = rerr
			case string:
				err = errors.New(rerr)
			default:
				err = errors.Errorf("Panic in reflective code: %s", rerr)
			}
		}
	}()

	dstPtrRv := reflect.ValueOf(dstPtr)
	if dstPtrRv.Kind() != reflect.Ptr || dstPtrRv.IsNil() {
		return errors.Errorf("Result must be a non nil pointer, got %T", dstPtr)
	}
	dst := dstPtrRv.Elem()

	if srcValue == nil {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	valueRv := reflect.ValueOf(srcValue)
	if !valueRv.Type().AssignableTo(dst.Type()) {
		return errors.Errorf("Cannot store %s into %s", valueRv.Type(), dst.Type())
	}
	dst.Set(valueRv)
	return nil
}
