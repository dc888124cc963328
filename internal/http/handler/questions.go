package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"pollbuilder/internal/model"
	"pollbuilder/internal/service"
)

type questionsResponse struct {
	Questions   []model.Question    `json:"questions"`
	Stats       model.LibraryStats  `json:"stats"`
	Sources     []model.SourceCount `json:"sources"`
	Categories  map[string]string   `json:"categories"`
	LastUpdated time.Time           `json:"lastUpdated"`
}

// ListQuestions returns the library, optionally filtered by ?category=a,b and ?q=text.
// Stats and sources always describe the whole library.
//
//	@Summary	List library questions
//	@Tags		questions
//	@Param		category	query		string	false	"comma separated categories"
//	@Param		q			query		string	false	"text or source substring"
//	@Success	200			{object}	questionsResponse
//	@Failure	400			{object}	errorPayload
//	@Router		/questions [get]
func ListQuestions(lib service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var filter service.QuestionFilter
		for _, raw := range strings.Split(c.Query("category"), ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			cat := model.Category(strings.ToLower(raw))
			if !cat.Valid() {
				return writeError(c, fiber.StatusBadRequest, "INVALID_CATEGORY", "unknown category "+raw)
			}
			filter.Categories = append(filter.Categories, cat)
		}
		filter.Query = c.Query("q")

		ctx := c.UserContext()
		library, err := lib.Get(ctx)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		questions, err := lib.Search(ctx, filter)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		sources, err := lib.Sources(ctx)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if sources == nil {
			sources = []model.SourceCount{}
		}
		return c.JSON(questionsResponse{
			Questions:   questions,
			Stats:       library.Stats,
			Sources:     sources,
			Categories:  model.CategoryLabels(),
			LastUpdated: library.LastUpdated,
		})
	}
}
