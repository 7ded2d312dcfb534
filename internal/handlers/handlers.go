package handlers

import (
	"github.com/alexedwards/scs/v2"
	"gorm.io/gorm"

	"github.com/larsreed/recipes-sub000/internal/repository"
	"github.com/larsreed/recipes-sub000/internal/service"
)

var (
	sessionManager     *scs.SessionManager
	recipeService      *service.RecipeService
	sourceService      *service.SourceService
	attachmentService  *service.AttachmentService
	conversionService  *service.ConversionService
	temperatureService *service.TemperatureService
)

// Configure installs the shared dependencies used by the HTTP handlers. A nil
// database leaves the API resources answering 503.
func Configure(sm *scs.SessionManager, db *gorm.DB, attachmentMaxBytes int64) {
	sessionManager = sm
	if db == nil {
		recipeService = nil
		sourceService = nil
		attachmentService = nil
		conversionService = nil
		temperatureService = nil
		return
	}

	recipes := repository.NewRecipeRepository(db)
	sources := repository.NewSourceRepository(db)

	recipeService = service.NewRecipeService(recipes, sources)
	sourceService = service.NewSourceService(sources)
	attachmentService = service.NewAttachmentService(repository.NewAttachmentRepository(db), recipes, attachmentMaxBytes)
	conversionService = service.NewConversionService(repository.NewConversionRepository(db))
	temperatureService = service.NewTemperatureService(repository.NewTemperatureRepository(db))
}
