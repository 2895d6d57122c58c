// Package validator gin binding 验证器封装
package validator

import (
	"reflect"
	"sync"

	"github.com/haierkeys/notes-web-client/internal/domain"

	"github.com/gin-gonic/gin/binding"
	val "github.com/go-playground/validator/v10"
)

// CustomValidator implements gin binding.StructValidator
// CustomValidator 实现 gin 的 binding.StructValidator
type CustomValidator struct {
	once     sync.Once
	validate *val.Validate
}

func NewCustomValidator() *CustomValidator {
	return &CustomValidator{}
}

var _ binding.StructValidator = (*CustomValidator)(nil)

func (v *CustomValidator) ValidateStruct(obj interface{}) error {
	if kindOfData(obj) == reflect.Struct {
		v.lazyinit()
		if err := v.validate.Struct(obj); err != nil {
			return err
		}
	}
	return nil
}

func (v *CustomValidator) Engine() interface{} {
	v.lazyinit()
	return v.validate
}

func (v *CustomValidator) lazyinit() {
	v.once.Do(func() {
		v.validate = val.New()
		v.validate.SetTagName("binding")
	})
}

func kindOfData(data interface{}) reflect.Kind {
	value := reflect.ValueOf(data)
	valueType := value.Kind()
	if valueType == reflect.Ptr {
		valueType = value.Elem().Kind()
	}
	return valueType
}

// RegisterCustom registers project custom validation rules
// RegisterCustom 注册项目自定义验证规则
func RegisterCustom() {
	validate, ok := binding.Validator.Engine().(*val.Validate)
	if !ok {
		return
	}
	// note_status: 笔记状态枚举
	validate.RegisterValidation("note_status", func(fl val.FieldLevel) bool {
		return domain.NoteStatus(fl.Field().String()).IsKnown()
	})
}
