package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/linkdeck/linkdeck/db"
	"github.com/linkdeck/linkdeck/internal/auth"
	"github.com/linkdeck/linkdeck/internal/types"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=1"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))

	return NewRouter(db.NewWithDB(gdb))
}

func do(t *testing.T, r *gin.Engine, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)

	return w, env
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"12345"}`, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, types.CodeValidationError, env.Code)

	// No row was created.
	w, env = do(t, r, http.MethodGet, "/api/user/list", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &users))
	assert.Empty(t, users)
}

func TestRegisterLoginFlow(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"secret123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, env.Success)

	var payload struct {
		User  map[string]interface{} `json:"user"`
		Token string                 `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, "alice", payload.User["username"])
	assert.Equal(t, "alice", payload.User["nickname"])
	assert.NotEmpty(t, payload.Token)
	assert.NotContains(t, payload.User, "password")

	// The token round-trips to the same user id.
	userID, ok := auth.VerifyToken(payload.Token)
	require.True(t, ok)
	assert.Equal(t, payload.User["id"], userID)

	// Second registration with the same username fails.
	w, env = do(t, r, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"secret456"}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, types.CodeValidationError, env.Code)
	assert.Contains(t, env.Error, "already exists")

	// Wrong password: 401 with the validation code clients expect.
	w, env = do(t, r, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"wrong-password"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, types.CodeValidationError, env.Code)

	w, env = do(t, r, http.MethodPost, "/api/auth/login",
		`{"username":"alice","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	// Logout has no server state to clear and always succeeds.
	w, env = do(t, r, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)
}

func TestGroupSiteLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/groups/create", `{"name":"Work"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var group struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &group))
	require.NotZero(t, group.ID)

	body := fmt.Sprintf(`{"group_id":%d,"name":"Mail","url":"https://mail.example","order_num":0}`, group.ID)
	w, env = do(t, r, http.MethodPost, "/api/sites/create", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var site struct {
		ID      uint `json:"id"`
		GroupID uint `json:"group_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &site))
	assert.Equal(t, group.ID, site.GroupID)

	// The site list is bearer-guarded; any decodable token passes.
	headers := map[string]string{"Authorization": "Bearer " + auth.GenerateToken("anyone")}

	w, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/sites/list?groupId=%d", group.ID), "", headers)
	require.Equal(t, http.StatusOK, w.Code)

	var sites []struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &sites))
	require.Len(t, sites, 1)
	assert.Equal(t, "Mail", sites[0].Name)

	w, _ = do(t, r, http.MethodGet, "/api/sites/list", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Deleting the group cascades to its sites.
	w, _ = do(t, r, http.MethodDelete, fmt.Sprintf("/api/groups/%d", group.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/sites/%d", site.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, types.CodeNotFound, env.Code)
}

func TestGroupListMeta(t *testing.T) {
	r := newTestRouter(t)

	for i := 0; i < 7; i++ {
		w, _ := do(t, r, http.MethodPost, "/api/groups/create",
			fmt.Sprintf(`{"name":"group-%d","order_num":%d}`, i, i), nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w, env := do(t, r, http.MethodGet, "/api/groups/list?pageNum=1&pageSize=3", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var meta types.PageMeta
	require.NoError(t, json.Unmarshal(env.Meta, &meta))
	assert.Equal(t, int64(7), meta.Total)
	assert.Equal(t, 1, meta.PageNum)
	assert.Equal(t, 3, meta.PageSize)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestGroupOrderEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/groups/create", `{"name":"first"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var first struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &first))

	w, env = do(t, r, http.MethodPost, "/api/groups/create", `{"name":"second"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var second struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &second))

	// An item missing order_num rejects the whole batch before any write.
	w, env = do(t, r, http.MethodPut, "/api/groups/order",
		fmt.Sprintf(`[{"id":%d}]`, first.ID), nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, types.CodeValidationError, env.Code)

	body := fmt.Sprintf(`[{"id":%d,"order_num":5},{"id":%d,"order_num":3}]`, first.ID, second.ID)
	w, _ = do(t, r, http.MethodPut, "/api/groups/order", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, fmt.Sprintf("/api/groups/%d", second.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		OrderNum int `json:"order_num"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, 3, got.OrderNum)
}

func TestGroupInvalidID(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodGet, "/api/groups/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, types.CodeValidationError, env.Code)
}

func TestConfigsBulkUpsertSkipsNonStrings(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodPost, "/api/configs",
		`{"site.name":"My Nav","ignored":42}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(t, r, http.MethodGet, "/api/configs", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var configs map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &configs))
	assert.Equal(t, "My Nav", configs["site.name"])
	assert.NotContains(t, configs, "ignored")
}

func TestConfigSingleKeyLifecycle(t *testing.T) {
	r := newTestRouter(t)

	// PUT creates the row when absent.
	w, _ := do(t, r, http.MethodPut, "/api/configs/theme", `{"value":"dark"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Non-string value is a validation error.
	w, env := do(t, r, http.MethodPut, "/api/configs/theme", `{"value":7}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, types.CodeValidationError, env.Code)

	w, env = do(t, r, http.MethodGet, "/api/configs/theme", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var config struct {
		Key   string `json:"key"`
		Value string `json:"value"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &config))
	assert.Equal(t, "dark", config.Value)

	w, _ = do(t, r, http.MethodDelete, "/api/configs/theme", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodDelete, "/api/configs/theme", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, types.CodeNotFound, env.Code)
}

func TestProfileRequiresBearerToken(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPut, "/api/user/profile", `{"nickname":"x"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, types.CodeUnauthorized, env.Code)
}

func TestProfileUpdate(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/auth/register",
		`{"username":"alice","password":"secret123"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &payload))

	headers := map[string]string{"Authorization": "Bearer " + payload.Token}

	w, env = do(t, r, http.MethodPut, "/api/user/profile",
		`{"nickname":"Allie","email":"alice@example.com"}`, headers)
	require.Equal(t, http.StatusOK, w.Code)

	var user struct {
		Nickname string `json:"nickname"`
		Email    string `json:"email"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Equal(t, "Allie", user.Nickname)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "alice", user.Username)
}

func TestDataExportImportEndpoints(t *testing.T) {
	r := newTestRouter(t)

	w, env := do(t, r, http.MethodPost, "/api/groups/create", `{"name":"Work"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var group struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &group))

	body := fmt.Sprintf(`{"group_id":%d,"name":"Mail","url":"https://mail.example"}`, group.ID)
	w, _ = do(t, r, http.MethodPost, "/api/sites/create", body, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/data/export", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	exported := env.Data

	// Import the snapshot into a fresh instance.
	fresh := newTestRouter(t)

	w, env = do(t, fresh, http.MethodPost, "/api/data/import", string(exported), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var result struct {
		GroupsCount  int `json:"groupsCount"`
		SitesCount   int `json:"sitesCount"`
		ConfigsCount int `json:"configsCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, 1, result.GroupsCount)
	assert.Equal(t, 1, result.SitesCount)
	assert.Equal(t, 0, result.ConfigsCount)
}

func TestUserCreateHasNoLengthCheck(t *testing.T) {
	r := newTestRouter(t)

	// A three-character password is fine on this route.
	w, env := do(t, r, http.MethodPost, "/api/user/create",
		`{"username":"shorty","password":"abc"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	// Duplicates are not pre-checked here: the unique index reports a
	// server error, unlike register's 400.
	w, env = do(t, r, http.MethodPost, "/api/user/create",
		`{"username":"shorty","password":"abc"}`, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, types.CodeServerError, env.Code)
}

func TestHealthEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, _ := do(t, r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
