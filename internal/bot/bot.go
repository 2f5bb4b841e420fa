package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ivanoskov/smartbalance_bot/internal/dialogue"
	"github.com/ivanoskov/smartbalance_bot/internal/log"
	"github.com/ivanoskov/smartbalance_bot/internal/service"
)

// Sender часть tgbotapi.BotAPI, через которую бот отправляет сообщения
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Dialogue машина состояний диалогов
type Dialogue interface {
	Handle(ctx context.Context, ev dialogue.Event) (*dialogue.Reply, error)
}

// Charts генератор графиков к отчетам
type Charts interface {
	CategoryPie(lang string, stats []service.CategoryAmount, currency string) ([]byte, error)
	BalanceChart(lang, title string, totals service.Totals) ([]byte, error)
	MonthlyChart(lang string, report *service.MonthlyReport) ([]byte, error)
}

// Сколько обновлений long polling обрабатывается одновременно.
// Обновления одного пользователя все равно идут по очереди.
const maxConcurrentUpdates = 64

type Bot struct {
	api      *tgbotapi.BotAPI
	sender   Sender
	dialogue Dialogue
	charts   Charts
	logger   *log.Logger

	// реклама перед результатом отчета
	adURL   string
	adDelay time.Duration
	// результат после паузы отправляется до возврата из HandleUpdate
	blockingAd bool

	pending sync.WaitGroup
	quit    chan struct{}
	stop    sync.Once
}

type Option func(*Bot)

func WithLogger(logger *log.Logger) Option {
	return func(b *Bot) { b.logger = logger }
}

// WithCharts включает отправку графиков вместе с отчетами
func WithCharts(charts Charts) Option {
	return func(b *Bot) { b.charts = charts }
}

// WithInterstitial показывает ссылку на рекламу и открывает результат через delay.
// Пустой url отключает паузу.
func WithInterstitial(url string, delay time.Duration) Option {
	return func(b *Bot) {
		b.adURL = url
		b.adDelay = delay
	}
}

// WithBlockingInterstitial ждет рекламную паузу внутри обработки обновления.
// Нужен там, где процесс может быть заморожен сразу после ответа на запрос.
func WithBlockingInterstitial() Option {
	return func(b *Bot) { b.blockingAd = true }
}

// NewBot подключается к Telegram по токену
func NewBot(token string, dialogue Dialogue, opts ...Option) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot api: %w", err)
	}
	b := NewWithAPI(api, dialogue, opts...)
	b.logger.Info("authorized", "username", api.Self.UserName)
	return b, nil
}

// NewWithAPI собирает бота поверх готового подключения к Telegram
func NewWithAPI(api *tgbotapi.BotAPI, dialogue Dialogue, opts ...Option) *Bot {
	b := New(api, dialogue, opts...)
	b.api = api
	return b
}

// New собирает бота поверх готового Sender
func New(sender Sender, dialogue Dialogue, opts ...Option) *Bot {
	b := &Bot{
		sender:   sender,
		dialogue: dialogue,
		logger:   log.Nop(),
		quit:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.WithComponent(log.ComponentBot)
	return b
}

// Start запускает бота в режиме long polling и блокируется до отмены ctx.
// Обновления разных пользователей обрабатываются параллельно, перед выходом
// Start дожидается уже начатых обработчиков.
func (b *Bot) Start(ctx context.Context) error {
	if b.api == nil {
		return fmt.Errorf("long polling requires a telegram connection")
	}
	if _, err := b.sender.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("failed to delete webhook: %w", err)
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("long polling started")

	// Обработчики доводят начатое до конца и после отмены ctx
	handleCtx := context.WithoutCancel(ctx)
	var handlers errgroup.Group
	handlers.SetLimit(maxConcurrentUpdates)
	defer handlers.Wait()

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			handlers.Go(func() error {
				if err := b.HandleUpdate(handleCtx, update); err != nil {
					// Логируем ошибку, но продолжаем работу
					b.logger.ErrorContext(handleCtx, "error handling update",
						"update_id", update.UpdateID,
						log.FieldError, err)
				}
				return nil
			})
		}
	}
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(ctx context.Context, body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to decode update: %w", err)
	}
	return b.HandleUpdate(ctx, update)
}

// SetWebhook регистрирует адрес вебхука в Telegram
func (b *Bot) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := b.sender.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}
	b.logger.Info("webhook registered")
	return nil
}

// Shutdown досылает отложенные результаты без ожидания рекламной паузы
func (b *Bot) Shutdown() {
	b.stop.Do(func() { close(b.quit) })
	b.pending.Wait()
}

func (b *Bot) send(ctx context.Context, c tgbotapi.Chattable) (tgbotapi.Message, bool) {
	msg, err := b.sender.Send(c)
	if err != nil {
		b.logger.ErrorContext(ctx, "failed to send message", log.FieldError, err)
		return msg, false
	}
	return msg, true
}
