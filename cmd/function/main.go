package main

import (
	"context"
	"net/http"
	"sync"

	"github.com/ivanoskov/smartbalance_bot/internal/app"
	"github.com/ivanoskov/smartbalance_bot/internal/bot"
	"github.com/ivanoskov/smartbalance_bot/internal/config"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Компоненты собираются один раз на экземпляр функции, иначе
// сессии диалогов и кэш курсов терялись бы между вызовами
var (
	initOnce sync.Once
	instance *app.App
	initErr  error
)

func setup(ctx context.Context) (*app.App, error) {
	initOnce.Do(func() {
		var cfg *config.Config
		cfg, initErr = config.LoadConfig()
		if initErr != nil {
			return
		}
		if initErr = cfg.Validate(); initErr != nil {
			return
		}
		// Экземпляр функции живет недолго, данные в памяти пропадут
		if initErr = cfg.ValidatePersistent(); initErr != nil {
			return
		}
		// После ответа экземпляр может быть заморожен, поэтому результат
		// отчета отправляется до возврата из Handler
		instance, initErr = app.New(context.WithoutCancel(ctx), cfg, app.NewLogger(cfg),
			bot.WithBlockingInterstitial())
	})
	return instance, initErr
}

func Handler(ctx context.Context, request Request) (*Response, error) {
	a, err := setup(ctx)
	if err != nil {
		return errorResponse(err)
	}

	// Обработка webhook-обновления
	if err := a.Bot.HandleWebhook(ctx, []byte(request.Body)); err != nil {
		log.New(log.DefaultConfig()).ErrorContext(ctx, "update failed", log.FieldError, err)
	}

	return &Response{
		StatusCode: http.StatusOK,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: http.StatusInternalServerError,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
