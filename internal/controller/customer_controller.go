// internal/controller/customer_controller.go
package controller

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/unclebandit/simple-crm/internal/model"
	"github.com/unclebandit/simple-crm/internal/service"
)

type CustomerController struct {
	CustomerService *service.CustomerService
	Logger          *zap.Logger
}

func NewCustomerController(svc *service.CustomerService, logger *zap.Logger) *CustomerController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CustomerController{CustomerService: svc, Logger: logger}
}

// Routes mounts the customer endpoints on r.
func (c *CustomerController) Routes(r chi.Router) {
	r.Get("/customers", c.ListCustomers)
	r.Post("/customers", c.CreateCustomer)
	r.Put("/customers/{id}/status", c.UpdateStatus)
	r.Delete("/customers/{id}", c.DeleteCustomer)
	r.Get("/customers/{id}/events", c.ListActivity)
}

func (c *CustomerController) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := c.CustomerService.ListCustomers(r.Context())
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (c *CustomerController) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var body model.CreateCustomer
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := c.CustomerService.CreateCustomer(r.Context(), body)
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}

	c.Logger.Info("customer created", zap.Int("customer_id", customer.ID))
	writeJSON(w, http.StatusCreated, customer)
}

func (c *CustomerController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	var body model.UpdateStatus
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customer, err := c.CustomerService.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (c *CustomerController) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	if err := c.CustomerService.DeleteCustomer(r.Context(), id); err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Customer deleted successfully")
}

func (c *CustomerController) ListActivity(w http.ResponseWriter, r *http.Request) {
	id, ok := customerID(w, r)
	if !ok {
		return
	}

	entries, err := c.CustomerService.ListActivity(r.Context(), id)
	if err != nil {
		writeError(w, c.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func customerID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		writeMessage(w, http.StatusBadRequest, "invalid customer id")
		return 0, false
	}
	return id, true
}
