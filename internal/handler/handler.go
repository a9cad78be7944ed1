// Package handler exposes the site's JSON API over gin. Handlers stay thin:
// parse, call the service, map error kinds to the wire responses the front
// end expects.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"novaition/internal/cloudinary"
	"novaition/internal/model"
	"novaition/internal/order"
	"novaition/internal/registration"
)

// ExistenceChecker answers the duplicate-check queries for one collection.
// Both the attendee and the order store satisfy it.
type ExistenceChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	NICExists(ctx context.Context, nic string) (bool, error)
}

// Registrar registers a new attendee.
type Registrar interface {
	Register(ctx context.Context, a model.Attendee) (string, error)
}

// OrderSubmitter persists a new pre-order.
type OrderSubmitter interface {
	Submit(ctx context.Context, o model.Order) (string, error)
}

// Uploader forwards image bytes to the media host.
type Uploader interface {
	Upload(ctx context.Context, data []byte, filename string) (*cloudinary.UploadResult, error)
}

// Handler carries the injected collaborators for every endpoint.
type Handler struct {
	users    ExistenceChecker
	orders   ExistenceChecker
	reg      Registrar
	orderSvc OrderSubmitter
	cloud    Uploader // nil when Cloudinary is not configured
	log      zerolog.Logger
}

// New creates the API handler. cloud may be nil.
func New(users, orders ExistenceChecker, reg Registrar, orderSvc OrderSubmitter, cloud Uploader, log zerolog.Logger) *Handler {
	return &Handler{users: users, orders: orders, reg: reg, orderSvc: orderSvc, cloud: cloud, log: log}
}

// Routes mounts the API endpoints under /api, on the paths the front end
// calls.
func (h *Handler) Routes(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/check-email1", h.checkEmail(h.users))
	api.POST("/check-email2", h.checkEmail(h.orders))
	api.POST("/check-id1", h.checkNIC(h.users))
	api.POST("/check-id2", h.checkNIC(h.orders))
	api.POST("/register", h.register)
	api.POST("/submit-order", h.submitOrder)
	api.POST("/upload", h.upload)
}

// ---------- Duplicate checks ----------

func (h *Handler) checkEmail(store ExistenceChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" {
			failMessage(c, http.StatusBadRequest, "Email is required")
			return
		}
		exists, err := store.EmailExists(c.Request.Context(), req.Email)
		if err != nil {
			h.log.Error().Err(err).Msg("email check failed")
			failMessage(c, http.StatusInternalServerError, "Failed to check email")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "exists": exists})
	}
}

func (h *Handler) checkNIC(store ExistenceChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			ID string `json:"id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
			failMessage(c, http.StatusBadRequest, "ID is required")
			return
		}
		exists, err := store.NICExists(c.Request.Context(), req.ID)
		if err != nil {
			h.log.Error().Err(err).Msg("nic check failed")
			failMessage(c, http.StatusInternalServerError, "Failed to check ID")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "exists": exists})
	}
}

// ---------- Registration ----------

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	University string `json:"university"`
	NIC        string `json:"nic"`
	Attend     string `json:"attend"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failMessage(c, http.StatusBadRequest, registration.ErrMissingFields.Error())
		return
	}

	userID, err := h.reg.Register(c.Request.Context(), model.Attendee{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		University: req.University,
		NIC:        req.NIC,
		Attend:     req.Attend,
	})
	if err != nil {
		switch {
		case errors.Is(err, registration.ErrMissingFields),
			errors.Is(err, registration.ErrEmailRegistered),
			errors.Is(err, registration.ErrNICRegistered):
			failMessage(c, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Msg("registration failed")
			failMessage(c, http.StatusInternalServerError, "Something went wrong")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Registration and Email sent!",
		"userId":  userID,
	})
}

// ---------- Orders ----------

type orderRequest struct {
	Name          string `json:"name"`
	PhoneNumber   string `json:"phoneNumber"`
	Email         string `json:"email"`
	ID            string `json:"id"`
	ClothType     string `json:"clothType"`
	Amount        int    `json:"amount"`
	Address       string `json:"address"`
	PaymentStatus string `json:"paymentStatus"`
	ImageURL      string `json:"imageUrl"`
}

func (h *Handler) submitOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failError(c, http.StatusBadRequest, order.ErrMissingFields.Error())
		return
	}

	id, err := h.orderSvc.Submit(c.Request.Context(), model.Order{
		Name:          req.Name,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		NIC:           req.ID,
		ClothType:     req.ClothType,
		Amount:        req.Amount,
		Address:       req.Address,
		PaymentStatus: req.PaymentStatus,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, order.ErrMissingFields),
			errors.Is(err, order.ErrEmailOrdered),
			errors.Is(err, order.ErrNICOrdered):
			failError(c, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Msg("order save failed")
			failError(c, http.StatusInternalServerError, "Failed to save order")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// ---------- Upload ----------

func (h *Handler) upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer file.Close()

	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.log.Error().Err(err).Msg("upload read failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	result, err := h.cloud.Upload(c.Request.Context(), data, header.Filename)
	if err != nil {
		h.log.Error().Err(err).Msg("cloudinary upload failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"url":       result.SecureURL,
		"public_id": result.PublicID,
	})
}
