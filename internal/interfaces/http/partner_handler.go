package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/JahongirOfficial/climart-sub004/internal/application/catalog"
	"github.com/JahongirOfficial/climart-sub004/internal/application/dto"
	"github.com/JahongirOfficial/climart-sub004/internal/domain/entity"
)

// PartnerHandler maneja las peticiones HTTP para Partner (protegido).
type PartnerHandler struct {
	uc *catalog.PartnerUseCase
}

// NewPartnerHandler construye el handler.
func NewPartnerHandler(uc *catalog.PartnerUseCase) *PartnerHandler {
	return &PartnerHandler{uc: uc}
}

func partnerToResponse(p *entity.Partner) dto.PartnerResponse {
	return dto.PartnerResponse{
		ID:        p.ID,
		Name:      p.Name,
		Type:      p.Type,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
	}
}

// Create godoc
// @Summary      Crear tercero (proveedor o cliente)
// @Tags         partners
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePartnerRequest  true  "Datos del tercero"
// @Success      201   {object}  dto.PartnerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/partners [post]
func (h *PartnerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePartnerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(partnerToResponse(out))
}

// List godoc
// @Summary      Listar terceros
// @Tags         partners
// @Security     Bearer
// @Produce      json
// @Param        type    query  string  false  "SUPPLIER, CUSTOMER o BOTH"
// @Param        limit   query  int     false  "Límite (default 50)"
// @Param        offset  query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.PartnerResponse
// @Router       /api/partners [get]
func (h *PartnerHandler) List(c *fiber.Ctx) error {
	partnerType := c.Query("type")
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)
	partners, err := h.uc.List(c.Context(), partnerType, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.PartnerResponse, 0, len(partners))
	for _, p := range partners {
		out = append(out, partnerToResponse(p))
	}
	return c.JSON(out)
}
