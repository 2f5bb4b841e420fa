package bot

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/ivanoskov/smartbalance_bot/internal/currency"
	"github.com/ivanoskov/smartbalance_bot/internal/dialogue"
	"github.com/ivanoskov/smartbalance_bot/internal/locale"
	"github.com/ivanoskov/smartbalance_bot/internal/model"
	"github.com/ivanoskov/smartbalance_bot/internal/repository"
	"github.com/ivanoskov/smartbalance_bot/internal/service"
)

const (
	testUser int64 = 7
	testChat int64 = 700
)

type fakeSender struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) messages() []tgbotapi.Chattable {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]tgbotapi.Chattable(nil), f.sent...)
}

type fakeCharts struct{}

func (fakeCharts) CategoryPie(string, []service.CategoryAmount, string) ([]byte, error) {
	return []byte("pie"), nil
}

func (fakeCharts) BalanceChart(string, string, service.Totals) ([]byte, error) {
	return []byte("bars"), nil
}

func (fakeCharts) MonthlyChart(string, *service.MonthlyReport) ([]byte, error) {
	return []byte("bars"), nil
}

type fixture struct {
	bot     *Bot
	sender  *fakeSender
	tracker *service.ExpenseTracker
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	tracker := service.NewExpenseTracker(repository.NewMemoryRepository(), currency.NewConverter(nil),
		service.WithClock(func() time.Time { return time.Date(2024, 12, 15, 10, 0, 0, 0, time.UTC) }))
	machine := dialogue.NewMachine(tracker, dialogue.NewMemoryStore(0, 0))
	sender := &fakeSender{}
	return &fixture{bot: New(sender, machine, opts...), sender: sender, tracker: tracker}
}

func (f *fixture) register(t *testing.T) {
	t.Helper()
	if _, err := f.tracker.Register(context.Background(), testUser, locale.English, "USD"); err != nil {
		t.Fatal(err)
	}
}

func textUpdate(text string) tgbotapi.Update {
	msg := &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUser, LanguageCode: "en"},
		Chat:      &tgbotapi.Chat{ID: testChat},
		Text:      text,
	}
	if strings.HasPrefix(text, "/") {
		msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}}
	}
	return tgbotapi.Update{UpdateID: 1, Message: msg}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{UpdateID: 2, CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: testUser, LanguageCode: "en"},
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: testChat}},
		Data:    data,
	}}
}

func lastMessage(t *testing.T, f *fixture) tgbotapi.MessageConfig {
	t.Helper()
	sent := f.sender.messages()
	if len(sent) == 0 {
		t.Fatal("nothing was sent")
	}
	msg, ok := sent[len(sent)-1].(tgbotapi.MessageConfig)
	if !ok {
		t.Fatalf("last sent = %T, want MessageConfig", sent[len(sent)-1])
	}
	return msg
}

func TestCallbackDataRoundTrip(t *testing.T) {
	tests := []struct {
		cmd dialogue.Command
		arg string
	}{
		{dialogue.CmdLanguage, "ru"},
		{dialogue.CmdCurrency, "USD"},
		{dialogue.CmdMonth, "2024-12"},
		{dialogue.CmdUtilityCategory, "electricity"},
		{dialogue.CmdDebtAdd, string(model.TheyOwe)},
		{dialogue.CmdDebtList, string(model.IOwe)},
		{dialogue.CmdDebtList, dialogue.DebtListAll},
		{dialogue.CmdDebtPay, "5f0c6a1e-7d2b-4f7e-9d61-0f3b1c2a9e88"},
		{dialogue.CmdDebtFull, "id"},
		{dialogue.CmdDebtPartial, "id"},
		{dialogue.CmdUtilityAdd, ""},
		{dialogue.CmdUtilityStats, ""},
		{dialogue.CmdUtilityMonthly, ""},
		{dialogue.CmdSettingsLanguage, ""},
		{dialogue.CmdSettingsCurrency, ""},
	}
	for _, tt := range tests {
		data := callbackData(tt.cmd, tt.arg)
		if len(data) > 64 {
			t.Errorf("callbackData(%s) = %d bytes, Telegram allows 64", tt.cmd, len(data))
		}
		cmd, arg, ok := parseCallback(data)
		if !ok || cmd != tt.cmd || arg != tt.arg {
			t.Errorf("parseCallback(%q) = %s, %q, %v; want %s, %q", data, cmd, arg, ok, tt.cmd, tt.arg)
		}
	}

	for _, data := range []string{"", "unknown", "lang_"} {
		if _, _, ok := parseCallback(data); ok {
			t.Errorf("parseCallback(%q) should fail", data)
		}
	}
}

func TestEventFromMessage(t *testing.T) {
	tests := []struct {
		text string
		cmd  dialogue.Command
		arg  string
	}{
		{"/start", dialogue.CmdStart, ""},
		{"/menu", dialogue.CmdMenu, ""},
		{"📊 Статистика", dialogue.CmdMenu, string(locale.MenuStats)},
		{"💸 Xarajat", dialogue.CmdMenu, string(locale.MenuExpense)},
		{"  50000 breakfast ", dialogue.CmdText, "50000 breakfast"},
	}
	for _, tt := range tests {
		ev, ok := eventFromMessage(textUpdate(tt.text).Message)
		if !ok || ev.Command != tt.cmd || ev.Arg != tt.arg || ev.UserID != testUser {
			t.Errorf("eventFromMessage(%q) = %+v, %v; want %s %q", tt.text, ev, ok, tt.cmd, tt.arg)
		}
	}

	if _, ok := eventFromMessage(textUpdate("").Message); ok {
		t.Error("empty message must be ignored")
	}
}

func TestStartAsksForLanguage(t *testing.T) {
	f := newFixture(t)

	if err := f.bot.HandleUpdate(context.Background(), textUpdate("/start")); err != nil {
		t.Fatalf("HandleUpdate() error = %v", err)
	}
	msg := lastMessage(t, f)
	if msg.ChatID != testChat || msg.Text != locale.T(locale.English, locale.ChooseLanguage) {
		t.Errorf("message = %d %q", msg.ChatID, msg.Text)
	}
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if !ok || len(kb.InlineKeyboard) != len(locale.Languages) {
		t.Fatalf("ReplyMarkup = %#v, want language keyboard", msg.ReplyMarkup)
	}
	if data := *kb.InlineKeyboard[0][0].CallbackData; data != "lang_uz" {
		t.Errorf("first button = %q, want lang_uz", data)
	}
}

func TestRegistrationThroughCallbacks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_ = f.bot.HandleUpdate(ctx, textUpdate("/start"))
	if err := f.bot.HandleUpdate(ctx, callbackUpdate("lang_ru")); err != nil {
		t.Fatal(err)
	}
	if len(f.sender.requests) != 1 {
		t.Errorf("callback answers = %d, want 1", len(f.sender.requests))
	}
	if msg := lastMessage(t, f); msg.Text != locale.T(locale.Russian, locale.ChooseCurrency) {
		t.Errorf("text = %q, want currency prompt", msg.Text)
	}

	_ = f.bot.HandleUpdate(ctx, callbackUpdate("cur_UZS"))
	msg := lastMessage(t, f)
	if msg.Text != locale.T(locale.Russian, locale.Welcome) {
		t.Errorf("text = %q, want welcome", msg.Text)
	}
	kb, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	if !ok || kb.Keyboard[0][0].Text != locale.T(locale.Russian, locale.MenuExpense) {
		t.Errorf("ReplyMarkup = %#v, want russian main menu", msg.ReplyMarkup)
	}
}

func TestTransactionConversation(t *testing.T) {
	f := newFixture(t)
	f.register(t)
	ctx := context.Background()

	_ = f.bot.HandleUpdate(ctx, textUpdate(locale.T(locale.English, locale.MenuIncome)))
	_ = f.bot.HandleUpdate(ctx, textUpdate("salary"))
	if msg := lastMessage(t, f); msg.Text != locale.T(locale.English, locale.HintAmountDesc) {
		t.Errorf("text = %q, want hint", msg.Text)
	}

	_ = f.bot.HandleUpdate(ctx, textUpdate("salary 1200.5"))
	_ = f.bot.HandleUpdate(ctx, callbackUpdate("cur_USD"))
	msg := lastMessage(t, f)
	if !strings.Contains(msg.Text, "salary: 1,200.50 $") {
		t.Errorf("text = %q, want saved transaction", msg.Text)
	}
}

func TestReportWithoutInterstitial(t *testing.T) {
	f := newFixture(t, WithCharts(fakeCharts{}))
	f.register(t)

	_ = f.bot.HandleUpdate(context.Background(), textUpdate(locale.T(locale.English, locale.MenuStats)))

	sent := f.sender.messages()
	if len(sent) != 2 {
		t.Fatalf("sent %d messages, want text and chart", len(sent))
	}
	msg := sent[0].(tgbotapi.MessageConfig)
	if !strings.HasPrefix(msg.Text, locale.T(locale.English, locale.TotalIncome)) {
		t.Errorf("text = %q", msg.Text)
	}
	if _, ok := sent[1].(tgbotapi.PhotoConfig); !ok {
		t.Errorf("second message = %T, want PhotoConfig", sent[1])
	}
}

func TestInterstitialReplacesWaitMessage(t *testing.T) {
	f := newFixture(t, WithInterstitial("https://ads.example.com/block", time.Hour))
	f.register(t)

	_ = f.bot.HandleUpdate(context.Background(), textUpdate(locale.T(locale.English, locale.MenuStats)))

	wait := lastMessage(t, f)
	if wait.Text != locale.T(locale.English, locale.PleaseWait) {
		t.Errorf("first text = %q, want wait message", wait.Text)
	}
	kb := wait.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	if url := kb.InlineKeyboard[0][0].URL; url == nil || *url != "https://ads.example.com/block" {
		t.Errorf("ad button url = %v", url)
	}

	f.bot.Shutdown()

	sent := f.sender.messages()
	edit, ok := sent[len(sent)-1].(tgbotapi.EditMessageTextConfig)
	if !ok {
		t.Fatalf("last sent = %T, want EditMessageTextConfig", sent[len(sent)-1])
	}
	if edit.MessageID != 1 || !strings.HasPrefix(edit.Text, locale.T(locale.English, locale.TotalIncome)) {
		t.Errorf("edit = %d %q", edit.MessageID, edit.Text)
	}
}

func TestCompose(t *testing.T) {
	debt := &model.Debt{ID: "d", Person: "Ali", Amount: decimal.NewFromInt(60), Currency: "USD", Direction: model.TheyOwe}

	tests := []struct {
		name  string
		reply *dialogue.Reply
		want  string
	}{
		{
			"partial payment",
			&dialogue.Reply{Prompt: dialogue.PromptDebtPaid, Language: locale.English, Debt: debt},
			"✅ Payment saved. Remaining: 60.00 $",
		},
		{
			"empty day",
			&dialogue.Reply{Prompt: dialogue.PromptDailyReport, Language: locale.English,
				Daily: &service.DailyReport{Currency: "USD", Items: []service.DailyItem{}}},
			"🤷 No data",
		},
		{
			"conversion",
			&dialogue.Reply{Prompt: dialogue.PromptConverted, Language: locale.English,
				Conversion: &dialogue.Conversion{Amount: decimal.NewFromInt(100), From: "EUR", Result: decimal.NewFromInt(110), To: "USD"}},
			"💱 Converted:\n100.00 € = 110.00 $",
		},
		{
			"hint",
			&dialogue.Reply{Prompt: dialogue.PromptInvalid, Language: locale.Russian, Hint: locale.HintDay},
			"❌ Введите число (1-31)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, _ := compose(tt.reply); got != tt.want {
				t.Errorf("compose() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMonthKeyboard(t *testing.T) {
	kb := monthKeyboard(locale.English, 2025)
	if len(kb.InlineKeyboard) != 4 {
		t.Fatalf("rows = %d, want 4", len(kb.InlineKeyboard))
	}
	last := kb.InlineKeyboard[3][2]
	if last.Text != "December" || *last.CallbackData != "month_2025-12" {
		t.Errorf("last button = %q %q", last.Text, *last.CallbackData)
	}
}

func TestFormatDebtsMarksDirections(t *testing.T) {
	debts := []model.Debt{
		{Person: "Ali", Amount: decimal.NewFromInt(60), Currency: "USD", Direction: model.TheyOwe},
		{Person: "Olga", Amount: decimal.NewFromInt(5), Currency: "USD", Direction: model.IOwe},
	}

	all := formatDebts(locale.English, "", debts)
	if !strings.Contains(all, "1. 🟢 Ali") || !strings.Contains(all, "2. 🔴 Olga") {
		t.Errorf("all debts text = %q, want direction markers", all)
	}

	theyOwe := formatDebts(locale.English, model.TheyOwe, debts[:1])
	if strings.Contains(theyOwe, "1. 🟢") {
		t.Errorf("directed list text = %q, want no per-line markers", theyOwe)
	}
	if !strings.Contains(theyOwe, locale.T(locale.English, locale.TheyOwe)) {
		t.Errorf("directed list text = %q, want direction in header", theyOwe)
	}
}

func TestDebtMenuOffersAllDebts(t *testing.T) {
	kb := debtMenuKeyboard(locale.English)
	last := kb.InlineKeyboard[len(kb.InlineKeyboard)-1][0]
	if last.CallbackData == nil {
		t.Fatal("all debts button has no callback data")
	}
	ev, ok := eventFromCallback(&tgbotapi.CallbackQuery{From: &tgbotapi.User{ID: testUser}, Data: *last.CallbackData})
	if !ok || ev.Command != dialogue.CmdDebtList || ev.Arg != dialogue.DebtListAll {
		t.Errorf("event = %+v ok=%v, want debt_list all", ev, ok)
	}
}
