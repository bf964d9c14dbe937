package http

import (
	"github.com/AdamHerman69/backranq-sub002/internal/core"

	"github.com/gofiber/fiber/v2"
)

// ListPuzzles returns the user's puzzles, optionally filtered by game
func (h *HTTPHandler) ListPuzzles(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	gameID := c.Query("gameId")
	if gameID != "" && !isValidUUID(gameID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "gameId must be a valid UUID",
		})
	}

	puzzles, err := h.svc.ListPuzzles(userID, gameID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"puzzles": puzzles})
}

// GetPuzzle retrieves one puzzle
func (h *HTTPHandler) GetPuzzle(c *fiber.Ctx) error {
	puzzleID := c.Params("puzzleId")
	if !isValidUUID(puzzleID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid puzzle ID format",
			Code:    core.ErrInvalidRequest,
			Details: "puzzle ID must be a valid UUID",
		})
	}

	userID := c.Locals("userID").(string)

	puzzle, err := h.svc.GetPuzzle(userID, puzzleID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(puzzle)
}

// SubmitAttempt grades a solution attempt against a puzzle
func (h *HTTPHandler) SubmitAttempt(c *fiber.Ctx) error {
	puzzleID := c.Params("puzzleId")
	if !isValidUUID(puzzleID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid puzzle ID format",
			Code:    core.ErrInvalidRequest,
			Details: "puzzle ID must be a valid UUID",
		})
	}

	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation bypass detected",
			Code:  core.ErrInternalError,
		})
	}

	validatedBody := c.Locals("validatedBody")
	if validatedBody == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: "validation data missing",
			Code:  core.ErrInternalError,
		})
	}
	req := *(validatedBody.(*core.AttemptRequest))

	userID := c.Locals("userID").(string)

	resp, err := h.svc.SubmitAttempt(userID, puzzleID, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetAttemptStats returns the user's aggregate for one puzzle
func (h *HTTPHandler) GetAttemptStats(c *fiber.Ctx) error {
	puzzleID := c.Params("puzzleId")
	if !isValidUUID(puzzleID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid puzzle ID format",
			Code:    core.ErrInvalidRequest,
			Details: "puzzle ID must be a valid UUID",
		})
	}

	userID := c.Locals("userID").(string)

	stats, err := h.svc.GetAttemptStats(userID, puzzleID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(stats)
}
