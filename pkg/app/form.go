package app

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
	val "github.com/go-playground/validator/v10"
)

type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

// ErrorsToString 所有错误信息拼接为字符串
func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// Maps 以字段名为 key 返回错误信息
func (v ValidErrors) Maps() map[string]string {
	m := make(map[string]string, len(v))
	for _, err := range v {
		m[err.Key] = err.Message
	}
	return m
}

// MapsToString 以 "key: message" 形式拼接错误信息
func (v ValidErrors) MapsToString() string {
	var parts []string
	for _, err := range v {
		parts = append(parts, err.Key+": "+err.Message)
	}
	return strings.Join(parts, ", ")
}

// BindAndValid binds request params and validates them
// BindAndValid 绑定请求参数并验证
// 验证错误信息经由请求上下文中的翻译器本地化
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err != nil {
		verrs, ok := err.(val.ValidationErrors)
		if !ok {
			errs = append(errs, &ValidError{
				Key:     "body",
				Message: err.Error(),
			})
			return false, errs
		}

		tValue, _ := c.Get("trans")
		trans, transOK := tValue.(ut.Translator)

		for _, verr := range verrs {
			message := verr.Error()
			if transOK {
				message = verr.Translate(trans)
			}
			errs = append(errs, &ValidError{
				Key:     verr.Field(),
				Message: message,
			})
		}
		return false, errs
	}

	return true, nil
}
