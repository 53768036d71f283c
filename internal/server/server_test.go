package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	catalogdomain "github.com/warungkita/pos/internal/catalog/domain"
	"github.com/warungkita/pos/internal/clock"
	"github.com/warungkita/pos/internal/config"
	labeldomain "github.com/warungkita/pos/internal/label/domain"
	orderdomain "github.com/warungkita/pos/internal/order/domain"
	"github.com/warungkita/pos/internal/storage"
	"go.uber.org/zap"
)

type fakeCatalogService struct {
	createCalls int
	createErr   error
	lastCreate  catalogdomain.CreateProductRequest
	updateCalls int
	updateErr   error
	lastUpdate  catalogdomain.UpdateProductRequest
	getProduct  *catalogdomain.Product
	getErr      error
}

func (f *fakeCatalogService) Create(ctx context.Context, req catalogdomain.CreateProductRequest) (*catalogdomain.Product, error) {
	f.createCalls++
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &catalogdomain.Product{UUID: "p-1", Name: req.Name, Price: req.Price, Active: true}, nil
}

func (f *fakeCatalogService) List(ctx context.Context, req catalogdomain.ListProductsRequest) (catalogdomain.ListProductsResponse, error) {
	return catalogdomain.ListProductsResponse{}, nil
}

func (f *fakeCatalogService) All(ctx context.Context) ([]catalogdomain.Product, error) {
	return nil, nil
}

func (f *fakeCatalogService) Get(ctx context.Context, uuid string) (*catalogdomain.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if f.getProduct != nil {
		return f.getProduct, nil
	}
	return &catalogdomain.Product{UUID: uuid, Name: "Kopi Susu", Price: 18000, Active: true}, nil
}

func (f *fakeCatalogService) Update(ctx context.Context, uuid string, req catalogdomain.UpdateProductRequest) (*catalogdomain.Product, error) {
	f.updateCalls++
	f.lastUpdate = req
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &catalogdomain.Product{UUID: uuid, Name: req.Name, Price: req.Price}, nil
}

func (f *fakeCatalogService) Delete(ctx context.Context, uuid string) (*catalogdomain.Product, error) {
	return &catalogdomain.Product{UUID: uuid}, nil
}

func (f *fakeCatalogService) Restore(ctx context.Context, uuid string) (*catalogdomain.Product, error) {
	return &catalogdomain.Product{UUID: uuid}, nil
}

func (f *fakeCatalogService) ForceDelete(ctx context.Context, uuid string) error {
	return nil
}

type fakeOrderService struct {
	createCalls int
	createErr   error
	getErr      error
}

func (f *fakeOrderService) Create(ctx context.Context, req orderdomain.CreateOrderRequest) (*orderdomain.Order, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &orderdomain.Order{UUID: "o-1", OrderNo: "ORD-2503008", Status: orderdomain.StatusPending}, nil
}

func (f *fakeOrderService) List(ctx context.Context, req orderdomain.ListOrdersRequest) (orderdomain.ListOrdersResponse, error) {
	return orderdomain.ListOrdersResponse{}, nil
}

func (f *fakeOrderService) Get(ctx context.Context, uuid string) (*orderdomain.Order, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &orderdomain.Order{UUID: uuid, OrderNo: "ORD-2503008"}, nil
}

func (f *fakeOrderService) GetByOrderNo(ctx context.Context, orderNo string) (*orderdomain.Order, error) {
	return &orderdomain.Order{OrderNo: orderNo}, nil
}

func (f *fakeOrderService) Update(ctx context.Context, uuid string, req orderdomain.UpdateOrderRequest) (*orderdomain.Order, error) {
	return &orderdomain.Order{UUID: uuid, OrderNo: "ORD-2503008"}, nil
}

func (f *fakeOrderService) Delete(ctx context.Context, orderNo string) error {
	return nil
}

type fakeLabelService struct {
	printErr error
}

func (f *fakeLabelService) Print(ctx context.Context, orderNo string) (*labeldomain.PrintResult, error) {
	if f.printErr != nil {
		return nil, f.printErr
	}
	return &labeldomain.PrintResult{
		FileName: orderNo + ".pdf",
		FilePath: "export/" + orderNo + ".pdf",
		FileURL:  "http://localhost:8080/storage/export/" + orderNo + ".pdf",
	}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Code    int             `json:"code"`
}

func newTestServer(t *testing.T) (*Server, *fakeCatalogService, *fakeOrderService, *fakeLabelService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())

	cfg := config.Config{
		StorageDir:    t.TempDir(),
		UploadDir:     "product",
		ExportDir:     "export",
		PublicBaseURL: "http://localhost:8080",
	}
	store := storage.New(storage.Params{
		Cfg:   cfg,
		Clock: clock.NewFakeClock(time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)),
		Log:   zap.NewNop(),
	})

	catalogSvc := &fakeCatalogService{}
	orderSvc := &fakeOrderService{}
	labelSvc := &fakeLabelService{}

	srv := NewServer(ServerParams{
		Gin:        engine,
		Cfg:        cfg,
		Store:      store,
		CatalogSvc: catalogSvc,
		OrderSvc:   orderSvc,
		LabelSvc:   labelSvc,
	})
	return srv, catalogSvc, orderSvc, labelSvc
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestCreateOrder_Envelope(t *testing.T) {
	srv, _, orders, _ := newTestServer(t)

	rec, env := doJSON(t, srv, http.MethodPost, "/v1/app/order", gin.H{
		"order_package": []gin.H{
			{"products": []gin.H{{"uuid": "p-1", "qty": 2}}},
		},
		"total_payment": 50000,
		"grand_total":   36000,
		"change":        14000,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Transaksi berhasil", env.Message)
	assert.Equal(t, http.StatusCreated, env.Code)
	assert.Equal(t, 1, orders.createCalls)

	var order orderdomain.Order
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.Equal(t, "ORD-2503008", order.OrderNo)
}

func TestCreateOrder_EmptyOrderIsBadRequest(t *testing.T) {
	srv, _, orders, _ := newTestServer(t)
	orders.createErr = orderdomain.ErrEmptyOrder

	rec, env := doJSON(t, srv, http.MethodPost, "/v1/app/order", gin.H{"order_package": []gin.H{}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusBadRequest, env.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	srv, _, orders, _ := newTestServer(t)
	orders.getErr = orderdomain.ErrNotFound

	rec, env := doJSON(t, srv, http.MethodGet, "/v1/app/order/o-404", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Data tidak ditemukan", env.Message)
	assert.Equal(t, http.StatusNotFound, env.Code)
}

func TestPrintLabel(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec, env := doJSON(t, srv, http.MethodPost, "/v1/app/order/ORD-2503008/print-label", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Label printed successfully", env.Message)

	var result labeldomain.PrintResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "ORD-2503008.pdf", result.FileName)
}

func TestPrintLabel_OrderNotFound(t *testing.T) {
	srv, _, _, labels := newTestServer(t)
	labels.printErr = labeldomain.ErrOrderNotFound

	rec, env := doJSON(t, srv, http.MethodPost, "/v1/app/order/ORD-0000000/print-label", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestCreateProduct_MultipartForm(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("name", "Kopi Susu"))
	require.NoError(t, writer.WriteField("price", "18000"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/app/master-data/product", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Product created successfully.", env.Message)
	assert.Equal(t, 1, catalog.createCalls)
	assert.Equal(t, "Kopi Susu", catalog.lastCreate.Name)
	assert.Equal(t, int64(18000), catalog.lastCreate.Price)
}

func TestCreateProduct_InvalidPrice(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("name", "Kopi Susu"))
	require.NoError(t, writer.WriteField("price", "banyak"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/app/master-data/product", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Zero(t, catalog.createCalls)
}

func TestCreateProduct_RejectsNonImageUpload(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	require.NoError(t, writer.WriteField("name", "Kopi Susu"))
	require.NoError(t, writer.WriteField("price", "18000"))
	part, err := writer.CreateFormFile("image", "menu.gif")
	require.NoError(t, err)
	_, err = part.Write([]byte("GIF89a"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/app/master-data/product", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, catalog.createCalls)
}

func doMultipart(t *testing.T, srv *Server, method, path string, fields map[string]string, imageName string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for field, value := range fields {
		require.NoError(t, writer.WriteField(field, value))
	}
	if imageName != "" {
		part, err := writer.CreateFormFile("image", imageName)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func seedStoredImage(t *testing.T, srv *Server, name string) string {
	t.Helper()
	dir := filepath.Join(srv.cfg.StorageDir, "product")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("old-image"), 0o644))
	return "product/" + name
}

func uploadNames(t *testing.T, srv *Server) []string {
	t.Helper()
	entries, err := os.ReadDir(filepath.Join(srv.cfg.StorageDir, "product"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestUpdateProduct_BlankNameKeepsStoredImage(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)
	rel := seedStoredImage(t, srv, "kopi-susu_1.jpg")
	catalog.getProduct = &catalogdomain.Product{UUID: "p-1", Name: "Kopi Susu", Price: 18000, Active: true, Image: &rel}

	rec, env := doMultipart(t, srv, http.MethodPut, "/v1/app/master-data/product/p-1", map[string]string{
		"name":  "   ",
		"price": "20000",
	}, "baru.png")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Zero(t, catalog.updateCalls)

	// A rejected request must not touch the stored image and must not
	// leave a stray upload behind.
	assert.Equal(t, []string{"kopi-susu_1.jpg"}, uploadNames(t, srv))
}

func TestUpdateProduct_FailedUpdateKeepsStoredImage(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)
	rel := seedStoredImage(t, srv, "kopi-susu_1.jpg")
	catalog.getProduct = &catalogdomain.Product{UUID: "p-1", Name: "Kopi Susu", Price: 18000, Active: true, Image: &rel}
	catalog.updateErr = catalogdomain.ErrNotFound

	rec, _ := doMultipart(t, srv, http.MethodPut, "/v1/app/master-data/product/p-1", map[string]string{
		"name":  "Kopi Gula Aren",
		"price": "20000",
	}, "baru.png")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, catalog.updateCalls)
	assert.Equal(t, []string{"kopi-susu_1.jpg"}, uploadNames(t, srv))
}

func TestUpdateProduct_ReplacesImageOnSuccess(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)
	rel := seedStoredImage(t, srv, "kopi-susu_1.jpg")
	catalog.getProduct = &catalogdomain.Product{UUID: "p-1", Name: "Kopi Susu", Price: 18000, Active: true, Image: &rel}

	rec, env := doMultipart(t, srv, http.MethodPut, "/v1/app/master-data/product/p-1", map[string]string{
		"name":  "Kopi Gula Aren",
		"price": "20000",
	}, "baru.png")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	require.NotNil(t, catalog.lastUpdate.Image)

	names := uploadNames(t, srv)
	require.Len(t, names, 1)
	assert.NotEqual(t, "kopi-susu_1.jpg", names[0])
}

func TestCreateProduct_FailedCreateRemovesUpload(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)
	catalog.createErr = errors.New("insert failed")

	rec, _ := doMultipart(t, srv, http.MethodPost, "/v1/app/master-data/product", map[string]string{
		"name":  "Kopi Susu",
		"price": "18000",
	}, "menu.png")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, uploadNames(t, srv))
}

func TestCreateProduct_MalformedBodyIsRejected(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)

	// A multipart content type without a boundary cannot be parsed, so
	// nothing must reach the service or the upload directory.
	req := httptest.NewRequest(http.MethodPost, "/v1/app/master-data/product", strings.NewReader("name=Kopi"))
	req.Header.Set("Content-Type", "multipart/form-data")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, catalog.createCalls)
	assert.Empty(t, uploadNames(t, srv))
}

func TestCreateProduct_FormWithoutImage(t *testing.T) {
	srv, catalog, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/app/master-data/product", strings.NewReader("name=Kopi+Susu&price=18000"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, catalog.createCalls)
	assert.Nil(t, catalog.lastCreate.Image)
}

func TestDeleteOrder_Envelope(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rec, env := doJSON(t, srv, http.MethodDelete, "/v1/app/order/ORD-2503008", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Delete Order Successfully", env.Message)
}
