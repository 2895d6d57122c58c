package web_router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/haierkeys/notes-web-client/internal/app"
	"github.com/haierkeys/notes-web-client/internal/dao"
	"github.com/haierkeys/notes-web-client/internal/middleware"
	"github.com/haierkeys/notes-web-client/pkg/code"
	"github.com/haierkeys/notes-web-client/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type resEnvelope struct {
	Code    int             `json:"code"`
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Details string          `json:"details"`
}

func signAccessToken(t *testing.T, uid int64, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid": uid,
		"exp": time.Now().Add(ttl).Unix(),
	})
	signed, err := token.SignedString([]byte("remote-secret"))
	require.NoError(t, err)
	return signed
}

// newFakeRemote 模拟远端笔记 API
func newFakeRemote(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": signAccessToken(t, 7, time.Hour),
			"user": map[string]any{
				"id":       7,
				"username": body.Username,
				"email":    body.Email,
			},
		})
	})

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if body.Password != "secret123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Incorrect email or password"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": signAccessToken(t, 7, time.Hour),
			"user": map[string]any{
				"id":       7,
				"username": "walter",
				"email":    body.Email,
			},
		})
	})

	mux.HandleFunc("/notes", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
			return
		}
		switch r.Method {
		case http.MethodPost:
			var payload struct {
				Title   string `json:"title"`
				Content string `json:"content"`
				Tags    string `json:"tags"`
				Status  string `json:"status"`
			}
			if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"id":      101,
				"title":   payload.Title,
				"content": payload.Content,
				"tags":    payload.Tags,
				"status":  payload.Status,
				"user": map[string]any{
					"id":       7,
					"username": "walter",
					"email":    "walter@example.com",
				},
			})
		case http.MethodGet:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte("[]"))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	return httptest.NewServer(mux)
}

// newTestRouter 构建带会话中间件的测试路由
func newTestRouter(t *testing.T, remoteURL string) (*gin.Engine, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.RegisterCustom()

	cfg := &app.AppConfig{}
	cfg.Remote.BaseURL = remoteURL
	cfg.Remote.Timeout = "5s"

	db, err := dao.NewDBEngineWithConfig(dao.DatabaseConfig{
		Type: "sqlite",
		Path: ":memory:",
	})
	require.NoError(t, err)

	a, err := app.NewApp(cfg, zap.NewNop(), db)
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	handler := NewHandler(a)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/user/register", handler.Register)
	api.POST("/user/login", handler.Login)
	api.GET("/user/session", handler.Session)

	auth := api.Group("")
	auth.Use(middleware.SessionAuth(a.Session))
	auth.POST("/user/logout", handler.Logout)
	auth.POST("/notes", handler.NoteCreate)
	auth.GET("/notes", handler.NoteList)

	return r, a
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *resEnvelope {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	res := &resEnvelope{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), res))
	return res
}

func TestRegisterThenCreateNote(t *testing.T) {
	remote := newFakeRemote(t)
	defer remote.Close()

	r, a := newTestRouter(t, remote.URL)

	// 注册后立即进入已登录状态
	res := doJSON(t, r, http.MethodPost, "/api/user/register",
		`{"username":"walter","email":"walter@example.com","password":"secret123"}`)
	assert.True(t, res.Status, res.Message)
	assert.True(t, a.Session.IsAuthenticated())

	var sessionData struct {
		Authenticated bool `json:"authenticated"`
		User          *struct {
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &sessionData))
	assert.True(t, sessionData.Authenticated)
	require.NotNil(t, sessionData.User)
	assert.Equal(t, "walter", sessionData.User.Username)

	// 注册产生的会话可以直接创建笔记，所有者即注册用户
	res = doJSON(t, r, http.MethodPost, "/api/notes",
		`{"title":"First","content":"hello","tags":"x,y","status":"private"}`)
	assert.True(t, res.Status, res.Message)

	var noteData struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
		Owner *struct {
			Username string `json:"username"`
		} `json:"owner"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &noteData))
	assert.Equal(t, "First", noteData.Title)
	require.NotNil(t, noteData.Owner)
	assert.Equal(t, "walter", noteData.Owner.Username)
}

func TestLogoutEndsSession(t *testing.T) {
	remote := newFakeRemote(t)
	defer remote.Close()

	r, a := newTestRouter(t, remote.URL)

	doJSON(t, r, http.MethodPost, "/api/user/register",
		`{"username":"kim","email":"kim@example.com","password":"secret123"}`)
	require.True(t, a.Session.IsAuthenticated())

	res := doJSON(t, r, http.MethodPost, "/api/user/logout", "")
	assert.True(t, res.Status)
	assert.False(t, a.Session.IsAuthenticated())

	// 注销后会话接口仍可访问，返回未登录状态
	res = doJSON(t, r, http.MethodGet, "/api/user/session", "")
	assert.True(t, res.Status)

	var sessionData struct {
		Authenticated bool            `json:"authenticated"`
		User          json.RawMessage `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &sessionData))
	assert.False(t, sessionData.Authenticated)
	assert.Empty(t, sessionData.User)
}

// 会话状态查询不走认证中间件，未登录返回 authenticated=false
func TestSessionEndpointWithoutLogin(t *testing.T) {
	remote := newFakeRemote(t)
	defer remote.Close()

	r, _ := newTestRouter(t, remote.URL)

	res := doJSON(t, r, http.MethodGet, "/api/user/session", "")
	assert.True(t, res.Status, res.Message)

	var sessionData struct {
		Authenticated bool            `json:"authenticated"`
		User          json.RawMessage `json:"user"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &sessionData))
	assert.False(t, sessionData.Authenticated)
	assert.Empty(t, sessionData.User)
}

// 登录接口的远端 401 表示账号或密码错误，不得打掉已有会话
func TestLoginWrongPasswordKeepsSession(t *testing.T) {
	remote := newFakeRemote(t)
	defer remote.Close()

	r, a := newTestRouter(t, remote.URL)

	doJSON(t, r, http.MethodPost, "/api/user/register",
		`{"username":"walter","email":"walter@example.com","password":"secret123"}`)
	require.True(t, a.Session.IsAuthenticated())

	res := doJSON(t, r, http.MethodPost, "/api/user/login",
		`{"email":"walter@example.com","password":"wrong-password"}`)
	assert.False(t, res.Status)
	assert.Equal(t, code.ErrorUserLoginFailed.Code(), res.Code)
	assert.Contains(t, res.Details, "Incorrect email or password")

	// 远端拒绝登录不影响本地已有会话
	assert.True(t, a.Session.IsAuthenticated())
}

func TestRegisterRejectsMalformedUsername(t *testing.T) {
	remote := newFakeRemote(t)
	defer remote.Close()

	r, a := newTestRouter(t, remote.URL)

	res := doJSON(t, r, http.MethodPost, "/api/user/register",
		`{"username":"no spaces!","email":"walter@example.com","password":"secret123"}`)
	assert.False(t, res.Status)
	assert.Equal(t, code.ErrorUserUsernameNotValid.Code(), res.Code)
	assert.False(t, a.Session.IsAuthenticated())
}
