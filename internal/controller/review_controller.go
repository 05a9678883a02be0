package controller

import (
	"pii-redaction-be/internal/dto"
	"pii-redaction-be/internal/pkg/serverutils"
	"pii-redaction-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router)
	StartSession(ctx *fiber.Ctx) error
	State(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reject(ctx *fiber.Ctx) error
	BulkApprove(ctx *fiber.Ctx) error
	BulkReject(ctx *fiber.Ctx) error
	AddCustomRedaction(ctx *fiber.Ctx) error
	RemoveCustomRedaction(ctx *fiber.Ctx) error
	ModifyEntity(ctx *fiber.Ctx) error
	Undo(ctx *fiber.Ctx) error
	Redo(ctx *fiber.Ctx) error
	ResolvePositions(ctx *fiber.Ctx) error
	Apply(ctx *fiber.Ctx) error
}

type reviewController struct {
	reviewService    service.IReviewService
	redactionService service.IRedactionService
}

func NewReviewController(
	reviewService service.IReviewService,
	redactionService service.IRedactionService,
) IReviewController {
	return &reviewController{
		reviewService:    reviewService,
		redactionService: redactionService,
	}
}

func (c *reviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/review/v1/:documentId")
	h.Post("session", c.StartSession)
	h.Get("state", c.State)
	h.Post("approve", c.Approve)
	h.Post("reject", c.Reject)
	h.Post("bulk-approve", c.BulkApprove)
	h.Post("bulk-reject", c.BulkReject)
	h.Post("custom-redactions", c.AddCustomRedaction)
	h.Delete("custom-redactions/:redactionId", c.RemoveCustomRedaction)
	h.Post("modify", c.ModifyEntity)
	h.Post("undo", c.Undo)
	h.Post("redo", c.Redo)
	h.Post("resolve-positions", c.ResolvePositions)
	h.Post("apply", c.Apply)
}

func (c *reviewController) documentId(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("documentId"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid document id")
	}
	return id, nil
}

func (c *reviewController) StartSession(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	res, err := c.reviewService.StartSession(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start review session", res))
}

func (c *reviewController) State(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	res, err := c.reviewService.State(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show review state", res))
}

func (c *reviewController) Approve(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	var req dto.EntityStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.reviewService.Approve(ctx.Context(), id, req.EntityId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success approve entity", nil))
}

func (c *reviewController) Reject(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	var req dto.EntityStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.reviewService.Reject(ctx.Context(), id, req.EntityId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success reject entity", nil))
}

func (c *reviewController) BulkApprove(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	var req dto.BulkEntityStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.reviewService.BulkApprove(ctx.Context(), id, req.EntityIds); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success bulk approve entities", nil))
}

func (c *reviewController) BulkReject(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	var req dto.BulkEntityStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.reviewService.BulkReject(ctx.Context(), id, req.EntityIds); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success bulk reject entities", nil))
}

func (c *reviewController) AddCustomRedaction(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	var req dto.AddCustomRedactionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.AddCustomRedaction(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add custom redaction", res))
}

func (c *reviewController) RemoveCustomRedaction(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	redactionId, err := uuid.Parse(ctx.Params("redactionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid redaction id")
	}

	if err := c.reviewService.RemoveCustomRedaction(ctx.Context(), id, redactionId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success remove custom redaction", nil))
}

func (c *reviewController) ModifyEntity(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	var req dto.ModifyEntityRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.reviewService.ModifyEntity(ctx.Context(), id, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success modify entity", nil))
}

func (c *reviewController) Undo(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	res, err := c.reviewService.Undo(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success undo", res))
}

func (c *reviewController) Redo(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	res, err := c.reviewService.Redo(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success redo", res))
}

func (c *reviewController) ResolvePositions(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	var req dto.ResolvePositionsRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.reviewService.ResolvePositions(ctx.Context(), id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success resolve positions", res))
}

func (c *reviewController) Apply(ctx *fiber.Ctx) error {
	id, err := c.documentId(ctx)
	if err != nil {
		return err
	}

	res, err := c.redactionService.Apply(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success apply redactions", res))
}
