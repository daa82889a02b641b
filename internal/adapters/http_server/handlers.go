package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"dealerhub/internal/app"
	"dealerhub/internal/domain"
)

const sessionCookie = "sessionid"

type Handlers struct {
	Dealers   *app.DealerService
	Catalog   *app.CatalogService
	Inventory *app.InventoryService
	Auth      *app.AuthService
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Route("/api", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
		r.Post("/register", h.register)
		r.Get("/dealers", h.listDealers)
		r.Get("/dealers/{state}", h.listDealers)
		r.Get("/dealer/{id}", h.dealerDetail)
		r.Get("/reviews/dealer/{id}", h.dealerReviews)
		r.Post("/add_review", h.addReview)
		r.Get("/get_cars", h.getCars)
		r.Get("/inventory/{id}", h.inventory)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

func (h *Handlers) session(r *http.Request) domain.Session {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return domain.Session{}
	}
	sess, err := h.Auth.Authenticate(r.Context(), c.Value)
	if err != nil {
		return domain.Session{}
	}
	return sess
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ---- authentication ----

type credentials struct {
	UserName  string `json:"userName"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

func (h *Handlers) login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON format"})
		return
	}
	token, err := h.Auth.Login(r.Context(), in.UserName, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"status": "Failed"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Internal Server Error"})
		return
	}
	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"userName": in.UserName, "status": "Authenticated"})
}

func (h *Handlers) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if err := h.Auth.Logout(r.Context(), c.Value); err != nil {
			log.Error().Err(err).Msg("session revoke failed")
		}
	}
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]any{"userName": ""})
}

func (h *Handlers) register(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON format"})
		return
	}
	u := domain.User{
		Username:  in.UserName,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
	}
	token, err := h.Auth.Register(r.Context(), u, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"userName": in.UserName, "error": "Already Registered"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Registration failed"})
		return
	}
	setSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{"userName": in.UserName, "status": "Authenticated"})
}

// ---- dealers & reviews ----

func (h *Handlers) listDealers(w http.ResponseWriter, r *http.Request) {
	state := chi.URLParam(r, "state")
	dealers, err := h.Dealers.ListDealers(r.Context(), state)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": 500, "error": "Failed to fetch dealers"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": 200, "dealers": dealers})
}

func (h *Handlers) dealerDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "error": "Invalid dealer id"})
		return
	}
	dealer, err := h.Dealers.GetDealer(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"status": 404, "error": "Dealer not found"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": 500, "error": "Internal Server Error"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"status": 200, "dealer": dealer})
	}
}

func (h *Handlers) dealerReviews(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "error": "Invalid dealer id"})
		return
	}
	reviews, err := h.Dealers.GetDealerReviews(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"status": 404, "error": "No reviews found"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": 500, "error": "Internal Server Error"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"status": 200, "reviews": reviews})
	}
}

func (h *Handlers) addReview(w http.ResponseWriter, r *http.Request) {
	sess := h.session(r)
	if sess.Username == "" {
		writeJSON(w, http.StatusForbidden, map[string]any{"status": 403, "message": "Unauthorized"})
		return
	}

	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "message": "Invalid JSON format"})
		return
	}

	err := h.Dealers.SubmitReview(r.Context(), sess, payload)
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "message": ve.Error()})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": 500, "message": "Error in posting review"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"status": 200, "message": "Review posted successfully"})
	}
}

// ---- car catalog & inventory ----

func (h *Handlers) getCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.Catalog.GetCars(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "Failed to retrieve car models"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"CarModels": cars})
}

func (h *Handlers) inventory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": 400, "message": "Bad Request"})
		return
	}
	cars, err := h.Inventory.SearchCars(r.Context(), id, r.URL.Query())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]any{"status": 404, "message": "No cars found"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": 500, "message": "Internal Server Error"})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"status": 200, "cars": cars})
	}
}
