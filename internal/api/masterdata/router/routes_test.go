package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pos_commerce/config"
	basehdl "pos_commerce/internal/api/base/handler"
	basemodels "pos_commerce/internal/api/base/models"
	"pos_commerce/internal/api/base/service/storetest"
	mdmodels "pos_commerce/internal/api/masterdata/models"
	mdsvc "pos_commerce/internal/api/masterdata/service"
	"pos_commerce/internal/api/middleware"
	apirouter "pos_commerce/internal/api/router"
	"pos_commerce/internal/global"
	"pos_commerce/internal/logger"
)

const testSecret = "test-secret"

func TestMain(m *testing.M) {
	_ = logger.Init(&logger.LogConfig{Level: "error", Format: "text", Output: "stdout", BufferSize: 64})
	global.InitValidator()
	code := m.Run()
	logger.Shutdown()
	os.Exit(code)
}

type envelope struct {
	Success   bool                           `json:"success"`
	Code      int                            `json:"code"`
	Message   string                         `json:"message"`
	Data      json.RawMessage                `json:"data"`
	Metadata  *basemodels.PaginationMetadata `json:"metadata"`
	Operation string                         `json:"operation"`
	ErrorCode string                         `json:"error_code"`
}

type testServer struct {
	app   *fiber.App
	items *storetest.MemStore[mdmodels.ItemCommon]
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	categories := storetest.NewMemStore[mdmodels.CategoryDiscount]("category_code")
	stores := storetest.NewMemStore[mdmodels.StoreDiscount]("discount_code")
	books := storetest.NewMemStore[mdmodels.ItemBook]("item_book_id")
	items := storetest.NewMemStore[mdmodels.ItemCommon]("item_code")
	itemStores := storetest.NewMemStore[mdmodels.ItemStore]("item_code")

	svc := &mdsvc.Services{
		CategoryDiscounts: mdsvc.NewCategoryDiscountService(categories, stores),
		StoreDiscounts:    mdsvc.NewStoreDiscountService(stores),
		ItemBooks:         mdsvc.NewItemBookService(books, items, itemStores, nil, nil),
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler, StrictRouting: true})
	auth := middleware.NewTenantAuth(&config.Configuration{
		Auth_Enabled: true,
		JwtSecret:    testSecret,
		ApiKeys:      "T1:key-t1,T2:key-t2",
	})
	r := apirouter.NewRouter(app, auth.AuthMiddleware())
	register := func(v1 fiber.Router, r *apirouter.Router) error {
		RegisterHandlers(r.Tenants(v1), NewHandlers(basehdl.NewBaseHandler(100, 1000), svc))
		return nil
	}
	require.NoError(t, apirouter.SetupRoutes(r, register))
	return &testServer{app: app, items: items}
}

func (s *testServer) do(t *testing.T, method, path, apiKey, body string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set(middleware.HeaderApiKey, apiKey)
	}
	return s.send(t, req)
}

func (s *testServer) send(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	resp, err := s.app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env), "body: %s", raw)
	return resp.StatusCode, env
}

func TestCategoryDiscountCRUDOverHTTP(t *testing.T) {
	s := newTestServer(t)
	base := "/api/v1/tenants/T1/category_discounts"

	status, env := s.do(t, http.MethodPost, base, "key-t1", `{"category_code":"C1","discount_code":"D1","description":"Drinks"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.True(t, env.Success)
	assert.Equal(t, "create_category_discount", env.Operation)

	status, env = s.do(t, http.MethodPost, base, "key-t1", `{"category_code":"C1","discount_code":"D2"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, env.Success)

	status, env = s.do(t, http.MethodGet, base+"/C1", "key-t1", "")
	require.Equal(t, http.StatusOK, status)
	var got mdmodels.CategoryDiscount
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "D1", got.DiscountCode)

	status, env = s.do(t, http.MethodPut, base+"/C1", "key-t1", `{"description":"Cold drinks"}`)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Cold drinks", got.Description)
	assert.Equal(t, "D1", got.DiscountCode)

	// T2 không thấy dữ liệu của T1
	status, _ = s.do(t, http.MethodGet, "/api/v1/tenants/T2/category_discounts/C1", "key-t2", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodDelete, base+"/C1", "key-t1", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodDelete, base+"/C1", "key-t1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAuthentication(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/tenants/T1/store_discounts"

	status, env := s.do(t, http.MethodGet, path, "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)

	status, _ = s.do(t, http.MethodGet, path, "wrong-key", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = s.do(t, http.MethodGet, path, "key-t2", "")
	assert.Equal(t, http.StatusForbidden, status, "key của T2 không được đọc T1")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id": "T1",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	status, env = s.send(t, req)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	forged, err := token.SignedString([]byte("other-secret"))
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	status, _ = s.send(t, req)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestListPaginationMetadata(t *testing.T) {
	s := newTestServer(t)
	base := "/api/v1/tenants/T1/store_discounts"
	for _, code := range []string{"A", "B", "C"} {
		status, _ := s.do(t, http.MethodPost, base, "key-t1", `{"discount_code":"`+code+`","discount_value":10}`)
		require.Equal(t, http.StatusCreated, status)
	}

	status, env := s.do(t, http.MethodGet, base+"?limit=2&page=1&sort=discount_code:1", "key-t1", "")
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.Metadata)
	assert.Equal(t, int64(3), env.Metadata.TotalCount)
	assert.Equal(t, int64(2), env.Metadata.TotalPages)
	assert.True(t, env.Metadata.HasNext)
	assert.False(t, env.Metadata.HasPrevious)
	assert.Equal(t, "discount_code:1", env.Metadata.Sort)

	var items []mdmodels.StoreDiscount
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].DiscountCode)

	status, _ = s.do(t, http.MethodGet, base+"?sort=discount_code:up", "key-t1", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodGet, base+"?page=0", "key-t1", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestStoreDiscountValueValidation(t *testing.T) {
	s := newTestServer(t)
	base := "/api/v1/tenants/T1/store_discounts"

	status, env := s.do(t, http.MethodPost, base, "key-t1", `{"discount_code":"BAD","discount_value":100.01}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, env.Success)

	status, _ = s.do(t, http.MethodPost, base, "key-t1", `{"discount_code":"NOVALUE"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = s.do(t, http.MethodPost, base, "key-t1", `{"discount_code":"OK","discount_value":100}`)
	assert.Equal(t, http.StatusCreated, status)

	status, _ = s.do(t, http.MethodPost, base, "key-t1", `not json`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCategoryDiscountDetailOverHTTP(t *testing.T) {
	s := newTestServer(t)
	base := "/api/v1/tenants/T1"

	status, env := s.do(t, http.MethodGet, base+"/category_discounts/NOPE/detail?terminal_id=TERM1", "key-t1", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	status, _ = s.do(t, http.MethodPost, base+"/category_discounts", "key-t1", `{"category_code":"C1","discount_code":"D1","description_short":"10%"}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = s.do(t, http.MethodGet, base+"/category_discounts/C1/detail", "key-t1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodPost, base+"/store_discounts", "key-t1", `{"discount_code":"D1","discount_value":12.5}`)
	require.Equal(t, http.StatusCreated, status)

	status, env = s.do(t, http.MethodGet, base+"/category_discounts/C1/detail?terminal_id=TERM1", "key-t1", "")
	require.Equal(t, http.StatusOK, status)
	var detail mdmodels.CategoryDiscountDetail
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	assert.Equal(t, 12.5, detail.DiscountValue)
	assert.Equal(t, "10%", detail.DescriptionShort)
}

func TestItemBookNestedEditingOverHTTP(t *testing.T) {
	s := newTestServer(t)
	base := "/api/v1/tenants/T1/item_books"

	status, env := s.do(t, http.MethodPost, base, "key-t1", `{"title":"Lunch"}`)
	require.Equal(t, http.StatusCreated, status)
	var book mdmodels.ItemBook
	require.NoError(t, json.Unmarshal(env.Data, &book))
	require.NotEmpty(t, book.ItemBookID)
	bookPath := base + "/" + book.ItemBookID

	status, _ = s.do(t, http.MethodPost, bookPath+"/categories", "key-t1", `{"category_number":1,"title":"Drinks"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodPost, bookPath+"/categories/1/tabs", "key-t1", `{"tab_number":1,"title":"Hot"}`)
	require.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodPost, bookPath+"/categories/1/tabs/1/buttons", "key-t1", `{"pos_x":0,"pos_y":0,"item_code":"COFFEE","size":"Single"}`)
	require.Equal(t, http.StatusOK, status)

	status, _ = s.do(t, http.MethodPost, bookPath+"/categories/1/tabs/1/buttons", "key-t1", `{"pos_x":0,"pos_y":0,"item_code":"TEA"}`)
	assert.Equal(t, http.StatusConflict, status, "trùng vị trí")

	status, _ = s.do(t, http.MethodPost, bookPath+"/categories/1/tabs/1/buttons", "key-t1", `{"pos_x":1,"pos_y":0,"size":"Huge"}`)
	assert.Equal(t, http.StatusBadRequest, status, "size không hợp lệ")

	status, env = s.do(t, http.MethodPut, bookPath+"/categories/9/tabs/1", "key-t1", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, env.Message, "category_number 9")

	status, _ = s.do(t, http.MethodPut, bookPath+"/categories/abc", "key-t1", `{"title":"x"}`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, env = s.do(t, http.MethodPut, bookPath+"/categories/1/tabs/1/buttons/pos_x/0/pos_y/0", "key-t1", `{"color_text":"#000"}`)
	require.Equal(t, http.StatusOK, status)

	status, env = s.do(t, http.MethodGet, bookPath, "key-t1", "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &book))
	require.Len(t, book.Categories, 1)
	require.Len(t, book.Categories[0].Tabs, 1)
	require.Len(t, book.Categories[0].Tabs[0].Buttons, 1)
	button := book.Categories[0].Tabs[0].Buttons[0]
	assert.Equal(t, "COFFEE", button.ItemCode)
	assert.Equal(t, "#000", button.ColorText)

	status, _ = s.do(t, http.MethodDelete, bookPath+"/categories/1/tabs/1/buttons/pos_x/0/pos_y/0", "key-t1", "")
	require.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodDelete, bookPath+"/categories/1/tabs/1/buttons/pos_x/0/pos_y/0", "key-t1", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = s.do(t, http.MethodGet, bookPath+"/detail", "key-t1", "")
	assert.Equal(t, http.StatusBadRequest, status, "detail yêu cầu store_code")

	status, _ = s.do(t, http.MethodDelete, bookPath, "key-t1", "")
	assert.Equal(t, http.StatusOK, status)
	status, _ = s.do(t, http.MethodGet, bookPath, "key-t1", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	s := newTestServer(t)
	status, env := s.do(t, http.MethodGet, "/api/v1/nothing-here", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Success)
}
