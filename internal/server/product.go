package server

import (
	"errors"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/warungkita/pos/internal/catalog/domain"
	"github.com/warungkita/pos/pkg/db/pagination"
)

func (s *Server) registerProductRoutes() {
	master := s.engine.Group("/v1/app/master-data")

	master.GET("/product", s.ListProducts)
	master.POST("/product", s.CreateProduct)
	master.GET("/product/:uuid", s.GetProduct)
	master.PUT("/product/:uuid", s.UpdateProduct)
	master.PATCH("/product/:uuid", s.UpdateProduct)
	master.DELETE("/product/:uuid", s.DeleteProduct)

	master.GET("/all-products", s.AllProducts)
	master.GET("/all-product-with-deleted", s.ListProductsWithDeleted)
	master.GET("/product-deleted", s.ListProductsDeleted)
	master.POST("/product/:uuid/restore", s.RestoreProduct)
	master.DELETE("/product/:uuid/force", s.ForceDeleteProduct)
}

func (s *Server) ListProducts(c *gin.Context) {
	s.listProductsScoped(c, catalogdomain.ScopeDefault)
}

func (s *Server) ListProductsWithDeleted(c *gin.Context) {
	s.listProductsScoped(c, catalogdomain.ScopeWithDeleted)
}

func (s *Server) ListProductsDeleted(c *gin.Context) {
	s.listProductsScoped(c, catalogdomain.ScopeOnlyDeleted)
}

func (s *Server) listProductsScoped(c *gin.Context, scope catalogdomain.Scope) {
	var page pagination.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		AbortWithError(c, newValidationError("page", "invalid_pagination", "invalid pagination"))
		return
	}

	resp, err := s.catalogSvc.List(c.Request.Context(), catalogdomain.ListProductsRequest{
		Scope: scope,
		Page:  page,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "OK", resp)
}

func (s *Server) AllProducts(c *gin.Context) {
	products, err := s.catalogSvc.All(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "OK", products)
}

func (s *Server) CreateProduct(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		AbortWithError(c, newValidationError("name", "required", "name is required"))
		return
	}
	price, err := parsePrice(c.PostForm("price"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	image, err := s.saveProductImage(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	product, err := s.catalogSvc.Create(c.Request.Context(), catalogdomain.CreateProductRequest{
		Name:  name,
		Price: price,
		Image: image,
	})
	if err != nil {
		// A failed create must not leave the upload behind.
		if image != nil {
			_ = s.store.Remove(*image)
		}
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Product created successfully.", product)
}

func (s *Server) GetProduct(c *gin.Context) {
	product, err := s.catalogSvc.Get(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Show Product Successfully", product)
}

func (s *Server) UpdateProduct(c *gin.Context) {
	productUUID := c.Param("uuid")

	existing, err := s.catalogSvc.Get(c.Request.Context(), productUUID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		AbortWithError(c, newValidationError("name", "required", "name is required"))
		return
	}
	price, err := parsePrice(c.PostForm("price"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	active, err := parseOptionalBool(c.PostForm("active"))
	if err != nil {
		AbortWithError(c, newValidationError("active", "invalid_active", "invalid active"))
		return
	}

	image, err := s.saveProductImage(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	product, err := s.catalogSvc.Update(c.Request.Context(), productUUID, catalogdomain.UpdateProductRequest{
		Name:   name,
		Price:  price,
		Active: active,
		Image:  image,
	})
	if err != nil {
		// A failed update must not leave the new upload behind.
		if image != nil {
			_ = s.store.Remove(*image)
		}
		AbortWithError(c, err)
		return
	}

	// The previous image goes only once the replacement is persisted,
	// so rejected requests never destroy the stored file.
	if image != nil && existing.Image != nil {
		_ = s.store.Remove(*existing.Image)
	}

	respond(c, http.StatusOK, "Update Product Successfully", product)
}

func (s *Server) DeleteProduct(c *gin.Context) {
	product, err := s.catalogSvc.Delete(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Delete Product Successfully", product)
}

func (s *Server) RestoreProduct(c *gin.Context) {
	product, err := s.catalogSvc.Restore(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Product Restored Successfully", product)
}

func (s *Server) ForceDeleteProduct(c *gin.Context) {
	if err := s.catalogSvc.ForceDelete(c.Request.Context(), c.Param("uuid")); err != nil {
		AbortWithError(c, err)
		return
	}

	respond(c, http.StatusOK, "Product permanently deleted", nil)
}

// saveProductImage stores an uploaded image when the form carries one
// and returns its relative path, or nil when the field is absent.
func (s *Server) saveProductImage(c *gin.Context) (*string, error) {
	file, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, newValidationError("image", "invalid_image", "invalid image upload")
	}

	if err := validImageUpload(file); err != nil {
		return nil, err
	}

	rel, err := s.store.SaveUpload(file)
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

func validImageUpload(file *multipart.FileHeader) error {
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".jpg", ".jpeg", ".png":
		return nil
	default:
		return newValidationError("image", "invalid_image", "image must be jpg, jpeg or png")
	}
}

func parsePrice(raw string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, newValidationError("price", "required", "price is required")
	}
	price, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil || price < 0 {
		return 0, newValidationError("price", "invalid_price", "invalid price")
	}
	return price, nil
}

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
