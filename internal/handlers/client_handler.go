package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/ClinicaVitaBR/crm-followup/internal/domain/followup"
	"github.com/ClinicaVitaBR/crm-followup/internal/httperr"
)

type ClientHandler struct {
	repo domain.Repository
}

func NewClientHandler(repo domain.Repository) *ClientHandler {
	return &ClientHandler{repo: repo}
}

// ======================================================
// LIST CLIENTS
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.repo.ListClients(c.Request.Context(), c.Query("query"))
	if err != nil {
		httperr.Internal(c, "failed_to_list_clients", "Erro ao listar clientes.")
		return
	}

	c.JSON(http.StatusOK, clients)
}

// ======================================================
// GET CLIENT
// ======================================================
func (h *ClientHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_client_id", "ID inválido.")
		return
	}

	cl, err := h.repo.GetClientByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_client", "Erro ao buscar cliente.")
		return
	}

	c.JSON(http.StatusOK, cl)
}
