package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront/internal/domain"
	"storefront/internal/services"

	"storefront/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const productsCacheKey = "products:all"

type Handler struct {
	accounts  *services.AccountService
	customers *services.CustomerService
	products  *services.ProductService
	orders    *services.OrderService
	cart      *services.CartService
	uploads   *services.UploadService
	dashboard *services.DashboardService
	issuer    *auth.TokenIssuer
	rdb       *redis.Client
}

func NewHandler(
	accounts *services.AccountService,
	customers *services.CustomerService,
	products *services.ProductService,
	orders *services.OrderService,
	cart *services.CartService,
	uploads *services.UploadService,
	dashboard *services.DashboardService,
	issuer *auth.TokenIssuer,
	rdb *redis.Client,
) *Handler {
	return &Handler{
		accounts:  accounts,
		customers: customers,
		products:  products,
		orders:    orders,
		cart:      cart,
		uploads:   uploads,
		dashboard: dashboard,
		issuer:    issuer,
		rdb:       rdb,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.Use(Authenticate(h.issuer))

	r.GET("/", h.Home)

	api := r.Group("/api")

	api.POST("/account/register", h.Register)
	api.POST("/account/login", h.Login)
	api.GET("/account/access-denied", h.AccessDenied)

	api.GET("/products", h.ListProducts)
	api.GET("/products/search", h.SearchProducts)
	api.GET("/products/:id", h.GetProduct)

	authed := api.Group("", RequireRoles(domain.RoleAdmin, domain.RoleCustomer))
	authed.POST("/account/logout", h.Logout)
	authed.GET("/account/profile", h.Profile)
	authed.GET("/orders", h.ListOrders)
	authed.GET("/orders/:id", h.GetOrder)
	authed.POST("/orders", h.CreateOrder)
	authed.GET("/uploads", h.ListUploads)
	authed.POST("/uploads", h.CreateUpload)
	authed.GET("/uploads/:id", h.GetUpload)
	authed.DELETE("/uploads/:id", h.DeleteUpload)
	authed.GET("/uploads/:id/download", h.DownloadUpload)

	customer := api.Group("", RequireRoles(domain.RoleCustomer))
	customer.GET("/cart", h.GetCart)
	customer.POST("/cart", h.AddToCart)
	customer.DELETE("/cart/:id", h.RemoveCartItem)
	customer.POST("/cart/clear", h.ClearCart)
	customer.POST("/cart/checkout", h.Checkout)

	admin := api.Group("", RequireRoles(domain.RoleAdmin))
	admin.GET("/admin/dashboard", h.AdminDashboard)
	admin.POST("/products", h.CreateProduct)
	admin.PUT("/products/:id", h.UpdateProduct)
	admin.DELETE("/products/:id", h.DeleteProduct)
	admin.GET("/customers", h.ListCustomers)
	admin.POST("/customers", h.CreateCustomer)
	admin.GET("/customers/:id", h.GetCustomer)
	admin.PUT("/customers/:id", h.UpdateCustomer)
	admin.DELETE("/customers/:id", h.DeleteCustomer)
	admin.PUT("/orders/:id/status", h.UpdateOrderStatus)
	admin.DELETE("/orders/:id", h.DeleteOrder)
}

// ----- Account -----

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Register(c.Request.Context(), req.Username, req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":     user,
		"message":  "Registration successful! Please login with your credentials.",
		"redirect": "/account/login",
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.accounts.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrAccountDisabled) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Your account has been deactivated. Please contact support."})
			return
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
			return
		}
		h.respondError(c, err)
		return
	}

	token, expiry, err := h.issuer.Issue(user, req.RememberMe)
	if err != nil {
		h.respondError(c, err)
		return
	}
	setSessionCookie(c, token, expiry)

	redirect := "/"
	if user.Role == domain.RoleAdmin {
		redirect = "/admin"
	} else if isLocalURL(req.ReturnURL) {
		redirect = req.ReturnURL
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"redirect": redirect,
		"message":  "Welcome back, " + user.FirstName + "!",
	})
}

func (h *Handler) Logout(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	clearSessionCookie(c)
	log.Printf("user %q logged out", identity.Username)
	c.JSON(http.StatusOK, gin.H{
		"message":  "You have been logged out successfully.",
		"redirect": "/",
	})
}

func (h *Handler) Profile(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	c.JSON(http.StatusOK, identity)
}

func (h *Handler) AccessDenied(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	log.Printf("access denied page for user %q", identity.Username)
	c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource."})
}

// ----- Dashboards -----

func (h *Handler) Home(c *gin.Context) {
	summary, err := h.dashboard.HomeSummary(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) AdminDashboard(c *gin.Context) {
	dash, err := h.dashboard.Admin(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// ----- Products -----

func (h *Handler) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	if h.rdb != nil {
		if b, err := h.rdb.Get(ctx, productsCacheKey).Result(); err == nil {
			var products []domain.Product
			if json.Unmarshal([]byte(b), &products) == nil {
				c.JSON(http.StatusOK, products)
				return
			}
		}
	}

	products, err := h.products.List()
	if err != nil {
		h.respondError(c, err)
		return
	}

	if h.rdb != nil {
		if data, err := json.Marshal(products); err == nil {
			h.rdb.Set(ctx, productsCacheKey, data, 10*time.Second)
		}
	}

	c.JSON(http.StatusOK, products)
}

func (h *Handler) SearchProducts(c *gin.Context) {
	query := c.Query("query")

	products, err := h.products.Search(query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	log.Printf("product search for %q returned %d results", query, len(products))
	c.JSON(http.StatusOK, gin.H{
		"query":    query,
		"count":    len(products),
		"products": products,
	})
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.products.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Create(&domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateProductCache(c.Request.Context())
	c.JSON(http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.products.Update(c.Param("id"), &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.invalidateProductCache(c.Request.Context())
	c.JSON(http.StatusOK, product)
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.products.Delete(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	h.invalidateProductCache(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully!", "redirect": "/products"})
}

func (h *Handler) invalidateProductCache(ctx context.Context) {
	if h.rdb != nil {
		h.rdb.Del(ctx, productsCacheKey)
	}
}

// ----- Customers (admin) -----

func (h *Handler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.List()
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c *gin.Context) {
	customer, err := h.customers.Get(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customers.Create(&domain.Customer{
		Name:            req.Name,
		Surname:         req.Surname,
		Username:        req.Username,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *Handler) UpdateCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customer, err := h.customers.Update(c.Param("id"), &domain.Customer{
		Name:            req.Name,
		Surname:         req.Surname,
		Username:        req.Username,
		Email:           req.Email,
		ShippingAddress: req.ShippingAddress,
		IsActive:        req.IsActive,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.customers.Delete(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully!", "redirect": "/customers"})
}

// ----- Orders -----

func (h *Handler) ListOrders(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	orders, err := h.orders.List(identity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetOrder(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	order, err := h.orders.Get(identity, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Create(c.Request.Context(), req.CustomerID, req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order":    order,
		"message":  "Order created successfully!",
		"redirect": "/orders",
	})
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orders.UpdateStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status)); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order status updated to " + req.Status + " successfully!"})
}

func (h *Handler) DeleteOrder(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	if err := h.orders.Delete(c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	log.Printf("order %s deleted by admin %q", c.Param("id"), identity.Username)
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully!", "redirect": "/orders"})
}

// ----- Cart -----

func (h *Handler) GetCart(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	items, err := h.cart.Items(identity.Username)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) AddToCart(c *gin.Context) {
	identity, _ := CurrentIdentity(c)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.cart.Add(c.Request.Context(), identity.Username, req.ProductID, req.Quantity)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"item":    item,
		"message": "Product added to cart successfully!",
	})
}

func (h *Handler) RemoveCartItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item id"})
		return
	}

	if err := h.cart.Remove(id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully!"})
}

func (h *Handler) ClearCart(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	if err := h.cart.Clear(identity.Username); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully!"})
}

func (h *Handler) Checkout(c *gin.Context) {
	identity, _ := CurrentIdentity(c)

	orders, err := h.cart.Checkout(c.Request.Context(), identity.Username)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Your cart is empty!"})
			return
		}
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"orders":   orders,
		"message":  "Checkout successful! Your orders have been placed.",
		"redirect": "/orders",
	})
}

// ----- Uploads -----

func (h *Handler) ListUploads(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	uploads, err := h.uploads.List(identity)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, uploads)
}

func (h *Handler) CreateUpload(c *gin.Context) {
	identity, _ := CurrentIdentity(c)

	fileHeader, err := c.FormFile("proofOfPayment")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrFileRequired.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	upload, err := h.uploads.Save(c.Request.Context(), identity, file, fileHeader.Filename, fileHeader.Size,
		c.PostForm("orderId"), c.PostForm("customerName"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"upload":  upload,
		"message": "Proof of payment uploaded successfully!",
	})
}

func (h *Handler) GetUpload(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	upload, err := h.uploads.Get(identity, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}

func (h *Handler) DeleteUpload(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	if err := h.uploads.Delete(identity, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Upload deleted successfully!"})
}

func (h *Handler) DownloadUpload(c *gin.Context) {
	identity, _ := CurrentIdentity(c)
	filename, err := h.uploads.Download(identity, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Download initiated for: " + filename, "filename": filename})
}

// ----- Error mapping -----

// respondError translates service errors into the three user-facing
// signal categories: message, error and redirect target. Anything not in
// the taxonomy is logged in full and surfaced generically.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAccessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied", "redirect": "/account/access-denied"})
	case errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUploadNotFound),
		errors.Is(err, services.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidQuantity),
		errors.Is(err, services.ErrInvalidPrice),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrFileRequired),
		errors.Is(err, services.ErrFileTooLarge),
		errors.Is(err, services.ErrFileTypeInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("unexpected error on %s: %v", c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred"})
	}
}

func isLocalURL(u string) bool {
	return u != "" && strings.HasPrefix(u, "/") && !strings.HasPrefix(u, "//") && !strings.HasPrefix(u, "/\\")
}
