package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-manager/internal/domain/stock"
	"github.com/BruksfildServices01/salon-manager/internal/dto"
	"github.com/BruksfildServices01/salon-manager/internal/httperr"
	"github.com/BruksfildServices01/salon-manager/internal/httpresp"
	"github.com/BruksfildServices01/salon-manager/internal/store"
)

const expiringWindow = 30 * 24 * time.Hour

type StockHandler struct {
	stock     *store.StockStore
	suppliers *store.SupplierStore
	now       func() time.Time
}

func NewStockHandler(stores *store.Set) *StockHandler {
	return &StockHandler{stock: stores.Stock, suppliers: stores.Suppliers, now: time.Now}
}

// ======================================================
// PRODUCTS
// ======================================================

// ListProducts accepts ?low=true, ?expiring=true, ?category= and
// ?supplier_id= as filters.
func (h *StockHandler) ListProducts(c *gin.Context) {
	low := c.Query("low") == "true"
	expiring := c.Query("expiring") == "true"
	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	supplierID := c.Query("supplier_id")
	now := h.now()

	out := make([]stock.Product, 0)
	for _, p := range h.stock.Products() {
		if low && !p.LowStock() {
			continue
		}
		if expiring && !p.ExpiresWithin(now, expiringWindow) {
			continue
		}
		if category != "" && strings.ToLower(p.Category) != category {
			continue
		}
		if supplierID != "" && p.SupplierID != supplierID {
			continue
		}
		out = append(out, p)
	}
	httpresp.List(c, out)
}

func (h *StockHandler) GetProduct(c *gin.Context) {
	p, ok := h.stock.Product(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}
	httpresp.OK(c, dto.ProductDetail{
		Product:   p,
		LowStock:  p.LowStock(),
		Movements: h.stock.Movements(p.ID),
	})
}

func (h *StockHandler) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	p := req.ToDomain()

	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		httperr.BadRequest(c, "name_required", "Nome é obrigatório.")
		return
	}
	if p.PurchasePrice < 0 || p.SalePrice < 0 || p.MinQuantity < 0 {
		httperr.BadRequest(c, "invalid_values", "Valores não podem ser negativos.")
		return
	}
	if !h.supplierExists(p.SupplierID) {
		httperr.BadRequest(c, "supplier_not_found", "Fornecedor não encontrado.")
		return
	}

	id, err := h.stock.CreateProduct(c.Request.Context(), p)
	if err != nil {
		respondError(c, err)
		return
	}
	httpresp.Created(c, id)
}

func (h *StockHandler) supplierExists(id string) bool {
	if id == "" {
		return true
	}
	for _, s := range h.suppliers.Items() {
		if s.ID == id {
			return true
		}
	}
	return false
}

func (h *StockHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.stock.Product(id); !ok {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}

	var req dto.ProductPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	p := req.ToDomain()
	if p.SupplierID != nil && !h.supplierExists(*p.SupplierID) {
		httperr.BadRequest(c, "supplier_not_found", "Fornecedor não encontrado.")
		return
	}

	if err := h.stock.UpdateProduct(c.Request.Context(), id, p); err != nil {
		respondError(c, err)
		return
	}
	updated, _ := h.stock.Product(id)
	httpresp.OK(c, updated)
}

func (h *StockHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.stock.Product(id); !ok {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}
	if err := h.stock.DeleteProduct(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ======================================================
// MOVEMENTS
// ======================================================

func (h *StockHandler) ListMovements(c *gin.Context) {
	httpresp.List(c, h.stock.Movements(c.Param("id")))
}

func (h *StockHandler) RegisterMovement(c *gin.Context) {
	id := c.Param("id")
	if _, ok := h.stock.Product(id); !ok {
		httperr.NotFound(c, "product_not_found", "Produto não encontrado.")
		return
	}

	var req dto.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	movementID, err := h.stock.RegisterMovement(c.Request.Context(), req.ToDomain(id))
	if err != nil {
		respondError(c, err)
		return
	}

	p, _ := h.stock.Product(id)
	c.JSON(http.StatusCreated, gin.H{
		"id":       movementID,
		"quantity": p.Quantity,
	})
}
