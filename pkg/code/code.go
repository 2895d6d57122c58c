package code

import (
	"fmt"
	"net/http"
)

// Code 统一的业务状态码
// 同时实现 error 接口，服务层可直接返回
type Code struct {
	// 状态码
	code int
	// 状态
	status bool
	// 消息文本（多语言）
	Lang lang
	// 数据
	data     interface{}
	haveData bool
	// 错误详细信息
	details     []string
	haveDetails bool
}

var codes = map[int]string{}
var sussCodes = map[int]string{}

// NewError 注册一个错误码
// 重复注册同一个码会直接 panic，避免码表冲突
func NewError(code int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, status: false, Lang: l}
}

// NewSuss 注册一个成功码
func NewSuss(code int, l lang) *Code {
	if _, ok := sussCodes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	sussCodes[code] = l.GetMessage()
	return &Code{code: code, status: true, Lang: l}
}

// Error 实现 error 接口
func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Msgf(args []interface{}) string {
	return fmt.Sprintf(e.Msg(), args...)
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

func (e *Code) HaveData() bool {
	return e.haveData
}

// WithData 附加数据并返回自身（链式调用）
func (e *Code) WithData(data interface{}) *Code {
	e.haveData = true
	e.data = data
	return e
}

// WithDetails 附加详情并返回自身（链式调用）
func (e *Code) WithDetails(details ...string) *Code {
	e.haveDetails = true
	e.details = []string{}
	e.details = append(e.details, details...)
	return e
}

// StatusCode HTTP 状态码
// 业务状态通过 code 字段表达，HTTP 层统一返回 200
func (e *Code) StatusCode() int {
	return http.StatusOK
}
