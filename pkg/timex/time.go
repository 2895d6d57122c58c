// Package timex 提供 JSON 友好的时间类型
package timex

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeFormat 序列化使用的时间格式
const TimeFormat = "2006-01-02 15:04:05"

// Time 可 JSON 序列化、可入库的时间类型
type Time time.Time

// Now 获取当前时间
func Now() Time {
	return Time(time.Now())
}

// Time 转换为标准库时间
func (t Time) Time() time.Time {
	return time.Time(t)
}

// IsZero 是否零值时间
func (t Time) IsZero() bool {
	return time.Time(t).IsZero()
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(TimeFormat)
}

// MarshalJSON 实现 json.Marshaler
// 零值序列化为 null
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(fmt.Sprintf("%q", t.String())), nil
}

// UnmarshalJSON 实现 json.Unmarshaler
// 同时兼容 RFC3339（远端 API 的时间格式）与本地格式
func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" || s == `""` {
		*t = Time(time.Time{})
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	for _, layout := range []string{TimeFormat, time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			*t = Time(parsed)
			return nil
		}
	}
	return fmt.Errorf("timex: cannot parse %q", s)
}

// Value 实现 driver.Valuer，供 gorm 写库
func (t Time) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return time.Time(t), nil
}

// Scan 实现 sql.Scanner，供 gorm 读库
func (t *Time) Scan(v interface{}) error {
	switch value := v.(type) {
	case nil:
		*t = Time(time.Time{})
		return nil
	case time.Time:
		*t = Time(value)
		return nil
	case string:
		return t.UnmarshalJSON([]byte(fmt.Sprintf("%q", value)))
	case []byte:
		return t.UnmarshalJSON([]byte(fmt.Sprintf("%q", string(value))))
	}
	return fmt.Errorf("timex: cannot scan type %T into timex.Time", v)
}
