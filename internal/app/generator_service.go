package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"appfab/internal/ai"
	"appfab/internal/model"
	"appfab/internal/repository"
)

var (
	ErrPromptEmpty        = errors.New("prompt is empty")
	ErrInsufficientCredit = errors.New("not enough credits")
	ErrAppNotFound        = errors.New("app not found")
)

const maxDescriptionLen = 100

// CodeGenerator is the boundary around the remote completion endpoint.
type CodeGenerator interface {
	Generate(ctx context.Context, cfg ai.CodegenConfig, prompt string) (string, error)
}

// EventPublisher ships generation audit events to the queue. Publishing is
// best-effort: a broker outage must not fail a request that already spent a
// credit.
type EventPublisher interface {
	Publish(ctx context.Context, event model.GenerationEvent) error
}

// GalleryCache caches the public gallery listing. Cache errors degrade to a
// direct database read.
type GalleryCache interface {
	Get(ctx context.Context) ([]model.App, bool, error)
	Set(ctx context.Context, apps []model.App) error
	Invalidate(ctx context.Context) error
}

type GeneratorService struct {
	userRepo  *repository.UserRepository
	appRepo   *repository.AppRepository
	generator CodeGenerator
	publisher EventPublisher
	gallery   GalleryCache
	llm       ai.CodegenConfig
}

type GenerateInput struct {
	UserID   string
	Prompt   string
	Name     string
	IsPublic bool
}

type GenerateResult struct {
	App         *model.App `json:"app"`
	Code        string     `json:"code"`
	CreditsLeft int        `json:"credits_left"`
	IsPro       bool       `json:"is_pro"`
}

func NewGeneratorService(
	userRepo *repository.UserRepository,
	appRepo *repository.AppRepository,
	generator CodeGenerator,
	publisher EventPublisher,
	gallery GalleryCache,
	llm ai.CodegenConfig,
) *GeneratorService {
	return &GeneratorService{
		userRepo:  userRepo,
		appRepo:   appRepo,
		generator: generator,
		publisher: publisher,
		gallery:   gallery,
		llm:       llm,
	}
}

// Generate runs the credit-gated workflow in strict order: validate, admit
// (deduct), call the generator, persist. The deduction happens before the
// remote call and is not refunded when that call fails.
func (s *GeneratorService) Generate(ctx context.Context, input GenerateInput) (*GenerateResult, error) {
	if input.UserID == "" {
		return nil, ErrInvalidInput
	}
	prompt := strings.TrimSpace(input.Prompt)
	if prompt == "" {
		return nil, ErrPromptEmpty
	}

	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	creditsLeft := user.Credits
	if !user.IsPro {
		deducted, err := s.userRepo.DeductCredit(user.UserID)
		if err != nil {
			return nil, err
		}
		if !deducted {
			return nil, ErrInsufficientCredit
		}
		creditsLeft = user.Credits - 1
	}

	started := time.Now()
	code, err := s.generator.Generate(ctx, s.llm, prompt)
	if err != nil {
		s.publishEvent(ctx, model.GenerationEvent{
			UserID:     user.UserID,
			Status:     model.GenerationFailed,
			Detail:     err.Error(),
			DurationMS: time.Since(started).Milliseconds(),
		})
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "My App"
	}

	app := &model.App{
		AppID:       "app_" + uuid.NewString(),
		UserID:      user.UserID,
		Name:        name,
		Description: truncate(prompt, maxDescriptionLen),
		Prompt:      prompt,
		Code:        code,
		IsPublic:    input.IsPublic,
	}
	if err := s.appRepo.Create(app); err != nil {
		return nil, err
	}

	if app.IsPublic && s.gallery != nil {
		if err := s.gallery.Invalidate(ctx); err != nil {
			log.Printf("invalidate gallery cache failed: %v", err)
		}
	}
	s.publishEvent(ctx, model.GenerationEvent{
		UserID:     user.UserID,
		AppID:      app.AppID,
		Status:     model.GenerationSucceeded,
		DurationMS: time.Since(started).Milliseconds(),
	})

	return &GenerateResult{
		App:         app,
		Code:        code,
		CreditsLeft: creditsLeft,
		IsPro:       user.IsPro,
	}, nil
}

func (s *GeneratorService) ListUserApps(userID string) ([]model.App, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.appRepo.ListByUserID(userID)
}

// Gallery lists public apps ordered by likes, read through the cache.
func (s *GeneratorService) Gallery(ctx context.Context) ([]model.App, error) {
	if s.gallery != nil {
		if cached, hit, err := s.gallery.Get(ctx); err == nil && hit {
			return cached, nil
		}
	}

	apps, err := s.appRepo.ListPublic()
	if err != nil {
		return nil, err
	}
	if s.gallery != nil {
		if err := s.gallery.Set(ctx, apps); err != nil {
			log.Printf("set gallery cache failed: %v", err)
		}
	}
	return apps, nil
}

// GetApp returns an app visible to the requester: their own, or any public
// one. Hidden apps read as not found.
func (s *GeneratorService) GetApp(userID, appID string) (*model.App, error) {
	if appID == "" {
		return nil, ErrInvalidInput
	}
	app, err := s.appRepo.GetByID(appID)
	if err != nil {
		return nil, err
	}
	if app == nil || (app.UserID != userID && !app.IsPublic) {
		return nil, ErrAppNotFound
	}
	return app, nil
}

func (s *GeneratorService) publishEvent(ctx context.Context, event model.GenerationEvent) {
	if s.publisher == nil {
		return
	}
	event.CreatedAt = time.Now()
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("publish generation event failed: %v", err)
	}
}

// truncate cuts on a rune boundary so a multi-byte character is never split
// into invalid UTF-8.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
