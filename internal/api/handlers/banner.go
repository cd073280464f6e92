package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dom/banner-admin/internal/api/render"
	"github.com/dom/banner-admin/internal/domain"
	"github.com/dom/banner-admin/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type BannerHandler struct {
	bannerService *service.BannerService
}

func NewBannerHandler(bannerService *service.BannerService) *BannerHandler {
	return &BannerHandler{bannerService: bannerService}
}

type CreateBannerRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Link        string `json:"link"`
	Visible     bool   `json:"visible"`
	Countdown   int    `json:"countdown"`
}

// UpdateBannerRequest is a partial update; omitted fields keep their value.
type UpdateBannerRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Link        *string `json:"link"`
	Visible     *bool   `json:"visible"`
	Countdown   *int    `json:"countdown"`
}

type BannerResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Link        string    `json:"link"`
	Visible     bool      `json:"visible"`
	Countdown   int       `json:"countdown"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toBannerResponse(b *domain.Banner) BannerResponse {
	return BannerResponse{
		ID:          b.ID.String(),
		Title:       b.Title,
		Description: b.Description,
		ImageURL:    b.ImageURL,
		Link:        b.Link,
		Visible:     b.Visible,
		Countdown:   b.Countdown,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (h *BannerHandler) List(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [banner.List]: %v", err)
		render.Error(w, http.StatusInternalServerError, "Failed to fetch banners")
		return
	}

	resp := make([]BannerResponse, len(banners))
	for i, b := range banners {
		resp[i] = toBannerResponse(b)
	}

	render.JSON(w, http.StatusOK, resp)
}

func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	banner, err := h.bannerService.Create(r.Context(), service.CreateBannerInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Link:        req.Link,
		Visible:     req.Visible,
		Countdown:   req.Countdown,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCountdown) {
			render.Error(w, http.StatusBadRequest, "Countdown must be non-negative")
			return
		}
		log.Printf("ERROR [banner.Create]: %v", err)
		render.Error(w, http.StatusInternalServerError, "Failed to create banner")
		return
	}

	render.JSON(w, http.StatusCreated, toBannerResponse(banner))
}

func (h *BannerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid banner ID")
		return
	}

	banner, err := h.bannerService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrBannerNotFound) {
			render.Error(w, http.StatusNotFound, "Banner not found")
			return
		}
		log.Printf("ERROR [banner.Get] bannerID=%s: %v", id, err)
		render.Error(w, http.StatusInternalServerError, "Failed to fetch banner")
		return
	}

	render.JSON(w, http.StatusOK, toBannerResponse(banner))
}

func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid banner ID")
		return
	}

	var req UpdateBannerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	banner, err := h.bannerService.Update(r.Context(), id, service.UpdateBannerInput{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Link:        req.Link,
		Visible:     req.Visible,
		Countdown:   req.Countdown,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBannerNotFound):
			render.Error(w, http.StatusNotFound, "Banner not found")
		case errors.Is(err, domain.ErrInvalidCountdown):
			render.Error(w, http.StatusBadRequest, "Countdown must be non-negative")
		default:
			log.Printf("ERROR [banner.Update] bannerID=%s: %v", id, err)
			render.Error(w, http.StatusInternalServerError, "Failed to update banner")
		}
		return
	}

	render.JSON(w, http.StatusOK, toBannerResponse(banner))
}
