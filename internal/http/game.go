package http

import (
	"github.com/AdamHerman69/backranq-sub002/internal/core"

	"github.com/gofiber/fiber/v2"
)

// ImportGame stores a completed game for later analysis
func (h *HTTPHandler) ImportGame(c *fiber.Ctx) error {
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
	req := *(validatedBody.(*core.ImportGameRequest))

	userID := c.Locals("userID").(string)

	resp, err := h.svc.ImportGame(c.Context(), userID, req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListGames returns the user's imported games
func (h *HTTPHandler) ListGames(c *fiber.Ctx) error {
	userID := c.Locals("userID").(string)

	games, err := h.svc.ListGames(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"games": games})
}

// GetGame retrieves one imported game
func (h *HTTPHandler) GetGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
	}

	userID := c.Locals("userID").(string)

	game, err := h.svc.GetGame(userID, gameID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(game)
}

// DeleteGame removes a game and its puzzles
func (h *HTTPHandler) DeleteGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
	}

	userID := c.Locals("userID").(string)

	if err := h.svc.DeleteGame(userID, gameID); err != nil {
		return serviceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// AnalyzeGame runs extraction for a stored game and replaces its puzzles
func (h *HTTPHandler) AnalyzeGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
	}

	// Body is optional; an empty config analyzes with server defaults
	var req core.AnalyzeRequest
	if validatedBody := c.Locals("validatedBody"); validatedBody != nil {
		req = *(validatedBody.(*core.AnalyzeRequest))
	}

	userID := c.Locals("userID").(string)

	resp, err := h.svc.AnalyzeGame(c.Context(), userID, gameID, req.Config)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(resp)
}

// ListGamePuzzles returns the puzzle set of one game
func (h *HTTPHandler) ListGamePuzzles(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	if !isValidUUID(gameID) {
		return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
			Error:   "invalid game ID format",
			Code:    core.ErrInvalidRequest,
			Details: "game ID must be a valid UUID",
		})
	}

	userID := c.Locals("userID").(string)

	puzzles, err := h.svc.ListPuzzles(userID, gameID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"puzzles": puzzles})
}
