package controller

import (
	"greenwatch-be/internal/dto"
	"greenwatch-be/internal/pkg/serverutils"
	"greenwatch-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IIntakeController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	ShowSession(ctx *fiber.Ctx) error
	GetMessages(ctx *fiber.Ctx) error
	SendMessage(ctx *fiber.Ctx) error
	AttachDocument(ctx *fiber.Ctx) error
	DetachDocument(ctx *fiber.Ctx) error
	ResetSession(ctx *fiber.Ctx) error
	DeleteSession(ctx *fiber.Ctx) error
	ListLogs(ctx *fiber.Ctx) error
	Schema(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	ListEvents(ctx *fiber.Ctx) error
}

type intakeController struct {
	service      service.IIntakeService
	auditService service.IAuditService
	auth         fiber.Handler
	stream       fiber.Handler
}

// NewIntakeController wires the intake routes. auditService and stream may
// be nil, in which case their routes are not registered.
func NewIntakeController(service service.IIntakeService, auditService service.IAuditService, auth fiber.Handler, stream fiber.Handler) IIntakeController {
	return &intakeController{
		service:      service,
		auditService: auditService,
		auth:         auth,
		stream:       stream,
	}
}

func (c *intakeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/intake/v1")
	h.Get("/health", c.Health)
	h.Get("/schema", c.Schema)

	if c.stream != nil {
		// Auth runs inside the stream handler, browsers cannot set headers.
		h.Get("/sessions/:id/stream", c.stream)
	}

	s := h.Group("/sessions", c.auth)
	s.Post("", c.CreateSession)
	s.Get("/:id", c.ShowSession)
	s.Delete("/:id", c.DeleteSession)
	s.Get("/:id/messages", c.GetMessages)
	s.Post("/:id/messages", c.SendMessage)
	s.Post("/:id/document", c.AttachDocument)
	s.Delete("/:id/document", c.DetachDocument)
	s.Post("/:id/reset", c.ResetSession)

	h.Get("/logs", c.auth, c.ListLogs)
	if c.auditService != nil {
		h.Get("/events", c.auth, c.ListEvents)
	}
}

func (c *intakeController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	// An empty body starts a plain chat session.
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.CreateSession(ctx.UserContext(), serverutils.UserID(ctx), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *intakeController) ShowSession(ctx *fiber.Ctx) error {
	res, err := c.service.GetSession(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *intakeController) GetMessages(ctx *fiber.Ctx) error {
	res, err := c.service.GetMessages(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages", res))
}

func (c *intakeController) SendMessage(ctx *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *intakeController) AttachDocument(ctx *fiber.Ctx) error {
	var req dto.AttachDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.AttachDocument(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success attach document", res))
}

func (c *intakeController) DetachDocument(ctx *fiber.Ctx) error {
	res, err := c.service.DetachDocument(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success detach document", res))
}

func (c *intakeController) ResetSession(ctx *fiber.Ctx) error {
	res, err := c.service.ResetSession(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reset session", res))
}

func (c *intakeController) DeleteSession(ctx *fiber.Ctx) error {
	err := c.service.DeleteSession(ctx.UserContext(), serverutils.UserID(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete session", nil))
}

func (c *intakeController) ListLogs(ctx *fiber.Ctx) error {
	res, err := c.service.ListLogs(ctx.UserContext(), serverutils.UserID(ctx), ctx.QueryInt("limit", 20), ctx.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}

func (c *intakeController) Schema(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get schema", c.service.Schema(ctx.UserContext())))
}

func (c *intakeController) Health(ctx *fiber.Ctx) error {
	res, err := c.service.Health(ctx.UserContext())
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Runner unavailable")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success check health", res))
}

func (c *intakeController) ListEvents(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.auditService.ListEvents(ctx.UserContext(), ctx.Query("level"), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get events", res))
}
