package catalog

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	httperr "github.com/shopadmin/shopadmin/internal/core/errors"
	"github.com/shopadmin/shopadmin/internal/core/storage"
)

// apiError carries the structured HTTP error shape from a helper back to the handler.
type apiError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *apiError) Error() string {
	return e.message
}

// toAPIError maps service errors onto HTTP responses.
func toAPIError(message string, err error) *apiError {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidInputError,
			message:    message,
			details:    err.Error(),
		}
	case errors.Is(err, storage.ErrNotFound):
		return &apiError{
			statusCode: http.StatusNotFound,
			errorType:  httperr.HttpNotFoundError,
			message:    message,
			details:    err.Error(),
		}
	default:
		slog.Error("[Catalog] Request failed", "message", message, "error", err)
		return &apiError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    message,
		}
	}
}

// writeError serializes an apiError as the JSON HTTP response.
func writeError(c *gin.Context, err *apiError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}

// bindJSON decodes a size-limited JSON body into v.
func (s *Service) bindJSON(c *gin.Context, v interface{}) *apiError {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxBodySizeBytes)
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			slog.Warn("Request body exceeds maximum size", "max", s.maxBodySizeBytes)
			return &apiError{
				statusCode: http.StatusRequestEntityTooLarge,
				errorType:  httperr.HttpInvalidJsonError,
				message:    "Request body exceeds maximum allowed size",
				details: map[string]interface{}{
					"max_size_mb": s.maxBodySizeBytes / (1024 * 1024),
				},
			}
		}
		return &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Invalid JSON body",
			details:    err.Error(),
		}
	}
	return nil
}

// --- products ---

// HandleNewProduct handles POST /product/new
func (s *Service) HandleNewProduct(c *gin.Context) {
	var in ProductInput
	if err := s.bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	p, err := s.NewProduct(c.Request.Context(), in)
	if err != nil {
		writeError(c, toAPIError("Failed to create product", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product created", "product": p})
}

// HandleLatestProducts handles GET /product/latest
func (s *Service) HandleLatestProducts(c *gin.Context) {
	products, err := s.LatestProducts(c.Request.Context())
	if err != nil {
		writeError(c, toAPIError("Failed to load latest products", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// HandleCategories handles GET /product/categories
func (s *Service) HandleCategories(c *gin.Context) {
	categories, err := s.Categories(c.Request.Context())
	if err != nil {
		writeError(c, toAPIError("Failed to load categories", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "categories": categories})
}

// HandleAdminProducts handles GET /product/admin-products
func (s *Service) HandleAdminProducts(c *gin.Context) {
	products, err := s.AdminProducts(c.Request.Context())
	if err != nil {
		writeError(c, toAPIError("Failed to load products", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

// HandleSearchProducts handles GET /product/all
// Query parameters: search, category, price, sort, page
func (s *Service) HandleSearchProducts(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeError(c, &apiError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidInputError,
			message:    "Invalid query parameters",
			details:    err.Error(),
		})
		return
	}
	res, err := s.SearchProducts(c.Request.Context(), q)
	if err != nil {
		writeError(c, toAPIError("Failed to search products", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": res.Products, "totalPage": res.TotalPage})
}

// HandleGetProduct handles GET /product/:id
func (s *Service) HandleGetProduct(c *gin.Context) {
	p, err := s.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, toAPIError("Product not found", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": p})
}

// HandleUpdateProduct handles PUT /product/:id
func (s *Service) HandleUpdateProduct(c *gin.Context) {
	var patch ProductPatch
	if err := s.bindJSON(c, &patch); err != nil {
		writeError(c, err)
		return
	}
	p, err := s.UpdateProduct(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		writeError(c, toAPIError("Failed to update product", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated", "product": p})
}

// HandleDeleteProduct handles DELETE /product/:id
func (s *Service) HandleDeleteProduct(c *gin.Context) {
	if err := s.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, toAPIError("Failed to delete product", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted"})
}

// --- orders ---

// HandleNewOrder handles POST /order/new
func (s *Service) HandleNewOrder(c *gin.Context) {
	var in OrderInput
	if err := s.bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	o, err := s.NewOrder(c.Request.Context(), in)
	if err != nil {
		writeError(c, toAPIError("Failed to place order", err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Order placed", "order": o})
}

// HandleMyOrders handles GET /order/my?id=<userId>
func (s *Service) HandleMyOrders(c *gin.Context) {
	orders, err := s.MyOrders(c.Request.Context(), c.Query("id"))
	if err != nil {
		writeError(c, toAPIError("Failed to load orders", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// HandleAllOrders handles GET /order/all
func (s *Service) HandleAllOrders(c *gin.Context) {
	orders, err := s.AllOrders(c.Request.Context())
	if err != nil {
		writeError(c, toAPIError("Failed to load orders", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// HandleGetOrder handles GET /order/:id
func (s *Service) HandleGetOrder(c *gin.Context) {
	o, err := s.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, toAPIError("Order not found", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": o})
}

// HandleProcessOrder handles PUT /order/:id
func (s *Service) HandleProcessOrder(c *gin.Context) {
	o, err := s.ProcessOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, toAPIError("Failed to process order", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order processed", "order": o})
}

// HandleDeleteOrder handles DELETE /order/:id
func (s *Service) HandleDeleteOrder(c *gin.Context) {
	if err := s.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, toAPIError("Failed to delete order", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order deleted"})
}

// --- users ---

// HandleNewUser handles POST /user/new
func (s *Service) HandleNewUser(c *gin.Context) {
	var in UserInput
	if err := s.bindJSON(c, &in); err != nil {
		writeError(c, err)
		return
	}
	u, created, err := s.NewUser(c.Request.Context(), in)
	if err != nil {
		writeError(c, toAPIError("Failed to register user", err))
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Welcome back, " + u.Name})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Welcome, " + u.Name})
}

// HandleAllUsers handles GET /user/all
func (s *Service) HandleAllUsers(c *gin.Context) {
	users, err := s.AllUsers(c.Request.Context())
	if err != nil {
		writeError(c, toAPIError("Failed to load users", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "users": users})
}

// HandleGetUser handles GET /user/:id
func (s *Service) HandleGetUser(c *gin.Context) {
	u, err := s.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, toAPIError("User not found", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u})
}

// HandleDeleteUser handles DELETE /user/:id
func (s *Service) HandleDeleteUser(c *gin.Context) {
	if err := s.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, toAPIError("Failed to delete user", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User deleted"})
}
