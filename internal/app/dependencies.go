package app

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/opsdesk/opsdesk/internal/config"
	"github.com/opsdesk/opsdesk/internal/event_bus"
	"github.com/opsdesk/opsdesk/internal/storage"
	"github.com/opsdesk/opsdesk/internal/utils"
	"github.com/opsdesk/opsdesk/pkg/bridge"
	"github.com/opsdesk/opsdesk/pkg/calendar"
	"github.com/opsdesk/opsdesk/pkg/chat"
	"github.com/opsdesk/opsdesk/pkg/client"
	"github.com/opsdesk/opsdesk/pkg/expenses"
	"github.com/opsdesk/opsdesk/pkg/finance"
	"github.com/opsdesk/opsdesk/pkg/notification"
	"github.com/opsdesk/opsdesk/pkg/prefs"
	"github.com/opsdesk/opsdesk/pkg/sales"
	"github.com/opsdesk/opsdesk/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Snapshots storage.Snapshots
	Bus       *event_bus.EventBus
	Clock     utils.Clock

	Tokens      *user.TokenIssuer
	UserService user.Service
	UserHandler *user.Handler

	CalendarService *calendar.Service
	CalendarHandler *calendar.Handler

	NotificationService *notification.Service
	NotificationHandler *notification.Handler

	FinanceService *finance.Service
	FinanceHandler *finance.Handler

	ClientService *client.Service
	ClientHandler *client.Handler

	SalesService *sales.Service
	SalesHandler *sales.Handler

	ExpensesService *expenses.Service
	ExpensesHandler *expenses.Handler

	ChatService *chat.Service
	ChatHandler *chat.Handler

	BridgeRelay   *bridge.Relay
	BridgeHandler *bridge.Handler

	PrefsService *prefs.Service
	PrefsHandler *prefs.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Snapshots = storage.NewSnapshotStore(db)
	deps.Bus = event_bus.NewEventBus()
	deps.Clock = &utils.SystemClock{}

	deps.Tokens = user.NewTokenIssuer(cfg.Auth.TokenSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)
	deps.UserService = user.NewUserService(user.NewUserRepo(db), deps.Tokens)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.CalendarService = calendar.NewService(calendar.NewRepository(deps.Snapshots), deps.Bus)
	deps.CalendarHandler = calendar.NewHandler(deps.CalendarService)

	deps.NotificationService = notification.NewService(
		calendar.NewRepository(deps.Snapshots),
		notification.NewRepository(deps.Snapshots),
		deps.Clock,
	)
	deps.NotificationHandler = notification.NewHandler(deps.NotificationService)
	deps.Bus.Subscribe(event_bus.CalendarEventsChanged, deps.NotificationService.HandleCalendarChange)

	deps.FinanceService = finance.NewService(finance.NewRepository(deps.Snapshots), deps.Clock)
	deps.FinanceHandler = finance.NewHandler(deps.FinanceService)

	deps.ClientService = client.NewService(client.NewRepository(deps.Snapshots), deps.Clock)
	deps.ClientHandler = client.NewHandler(deps.ClientService, deps.FinanceService)

	deps.SalesService = sales.NewService(sales.NewRepository(deps.Snapshots), deps.ClientService, deps.Clock)
	deps.SalesHandler = sales.NewHandler(deps.SalesService)

	deps.ExpensesService = expenses.NewService(expenses.NewRepository(deps.Snapshots))
	deps.ExpensesHandler = expenses.NewHandler(deps.ExpensesService)

	deps.ChatService = chat.NewService(deps.Clock, chat.DefaultReplyDelay)
	deps.ChatHandler = chat.NewHandler(deps.ChatService)

	pairer := bridge.NewSimulatedPairer(time.Duration(cfg.Bridge.SimulatedLatencyMs) * time.Millisecond)
	deps.BridgeRelay = bridge.NewRelay(pairer)
	deps.BridgeHandler = bridge.NewHandler(deps.BridgeRelay)

	deps.PrefsService = prefs.NewService(deps.Snapshots)
	deps.PrefsHandler = prefs.NewHandler(deps.PrefsService)

	return deps
}
