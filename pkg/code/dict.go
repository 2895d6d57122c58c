package code

// 成功码
var (
	Success = NewSuss(0, lang{en: "Success", zh_cn: "成功"})
)

// 通用错误码 10xxx
var (
	ErrorServerInternal  = NewError(10000, lang{en: "Server Internal Error", zh_cn: "服务内部错误"})
	ErrorInvalidParams   = NewError(10001, lang{en: "Invalid Parameters", zh_cn: "入参错误"})
	ErrorNotFoundAPI     = NewError(10002, lang{en: "API Not Found", zh_cn: "找不到对应接口"})
	ErrorTooManyRequests = NewError(10003, lang{en: "Too Many Requests", zh_cn: "请求过多"})
	ErrorRequestTimeout  = NewError(10004, lang{en: "Request Timeout", zh_cn: "请求超时"})
)

// 会话与认证错误码 20xxx
var (
	ErrorNotUserAuthToken     = NewError(20001, lang{en: "Login Required", zh_cn: "需要登录"})
	ErrorInvalidUserAuthToken = NewError(20002, lang{en: "Invalid Auth Token", zh_cn: "认证凭证无效"})
	ErrorUserLoginFailed      = NewError(20003, lang{en: "Login Failed", zh_cn: "登录失败"})
	ErrorUserRegisterFailed   = NewError(20004, lang{en: "Register Failed", zh_cn: "注册失败"})
	ErrorUserUsernameNotValid = NewError(20005, lang{en: "Invalid Username Format", zh_cn: "用户名格式不正确"})
	ErrorSessionStorage       = NewError(20006, lang{en: "Session Storage Error", zh_cn: "会话存储错误"})
)

// 远端笔记服务错误码 30xxx
var (
	ErrorRemoteAPI         = NewError(30000, lang{en: "Remote API Error", zh_cn: "远端服务错误"})
	ErrorRemoteUnreachable = NewError(30001, lang{en: "Remote API Unreachable", zh_cn: "远端服务不可达"})
	ErrorNoteNotFound      = NewError(30002, lang{en: "Note Not Found", zh_cn: "笔记不存在"})
	ErrorNoteSaveFailed    = NewError(30003, lang{en: "Note Save Failed", zh_cn: "笔记保存失败"})
	ErrorNoteDeleteFailed  = NewError(30004, lang{en: "Note Delete Failed", zh_cn: "笔记删除失败"})
	ErrorUserListFailed    = NewError(30005, lang{en: "User List Failed", zh_cn: "获取用户列表失败"})
)
